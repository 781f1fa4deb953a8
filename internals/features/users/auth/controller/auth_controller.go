package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "classcheck_backend/internals/features/users/auth/service"
	userModel "classcheck_backend/internals/features/users/users/model"
	helper "classcheck_backend/internals/helpers"
	helperAuth "classcheck_backend/internals/middlewares/auth"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

var validate = validator.New()

type loginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

// POST /api/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := ctrl.DB.WithContext(c.Context()).Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "E-mail ou senha incorretos")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno")
	}

	if !authService.ConferirSenha(user.Senha, req.Senha) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "E-mail ou senha incorretos")
	}
	if !user.Ativo {
		return helper.JsonError(c, fiber.StatusForbidden, "Conta desativada")
	}
	if user.Status == userModel.StatusPendente {
		return helper.JsonError(c, fiber.StatusForbidden, "Cadastro aguardando aprovação do administrador")
	}

	token, err := authService.GerarToken(user.Email)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao gerar token")
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	_ = ctrl.DB.WithContext(c.Context()).Model(&user).Update("last_login", now).Error

	return helper.JsonOK(c, fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

// GET /api/auth/me
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	user, err := helperAuth.CurrentUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, user)
}

type firstAccessRequest struct {
	Nome      string  `json:"nome" validate:"required,min=3"`
	Email     string  `json:"email" validate:"required,email"`
	Senha     string  `json:"senha" validate:"required,min=6"`
	Tipo      string  `json:"tipo" validate:"required,oneof=instrutor pedagogo monitor"`
	UnidadeID *string `json:"unidade_id"`
	CursoID   *string `json:"curso_id"`
	Telefone  *string `json:"telefone"`
}

// POST /api/auth/first-access
// Auto-cadastro: a conta nasce pendente até um admin aprovar.
func (ctrl *AuthController) FirstAccess(c *fiber.Ctx) error {
	var req firstAccessRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var count int64
	ctrl.DB.WithContext(c.Context()).Model(&userModel.UserModel{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "E-mail já cadastrado")
	}

	hash, err := authService.HashSenha(req.Senha)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao processar senha")
	}

	user := userModel.UserModel{
		Nome:      req.Nome,
		Email:     req.Email,
		Senha:     hash,
		Tipo:      req.Tipo,
		Status:    userModel.StatusPendente,
		UnidadeID: req.UnidadeID,
		CursoID:   req.CursoID,
		Telefone:  req.Telefone,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao criar cadastro")
	}

	return helper.JsonCreated(c, fiber.Map{
		"message": "Cadastro enviado. Aguarde a aprovação do administrador.",
		"user_id": user.ID,
	})
}

type changePasswordRequest struct {
	SenhaAtual string `json:"senha_atual" validate:"required"`
	NovaSenha  string `json:"nova_senha" validate:"required,min=6"`
}

// POST /api/auth/change-password
func (ctrl *AuthController) ChangePassword(c *fiber.Ctx) error {
	user, err := helperAuth.CurrentUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if !authService.ConferirSenha(user.Senha, req.SenhaAtual) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Senha atual incorreta")
	}

	hash, err := authService.HashSenha(req.NovaSenha)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao processar senha")
	}

	if err := ctrl.DB.WithContext(c.Context()).Model(user).Updates(map[string]interface{}{
		"senha":           hash,
		"primeiro_acesso": false,
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao atualizar senha")
	}

	return helper.JsonMessage(c, "Senha alterada com sucesso")
}

type resetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// POST /api/auth/reset-password-request
// Resposta sempre 200 para não vazar quais e-mails existem.
func (ctrl *AuthController) ResetPasswordRequest(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	err := ctrl.DB.WithContext(c.Context()).Where("email = ?", req.Email).First(&user).Error
	if err == nil {
		if err := ctrl.DB.WithContext(c.Context()).Model(&user).Update("primeiro_acesso", true).Error; err == nil {
			// O admin vê a conta marcada e emite a senha provisória.
		}
	}

	return helper.JsonMessage(c, "Se o e-mail estiver cadastrado, o administrador será notificado para redefinir a senha.")
}
