package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "classcheck_backend/internals/features/users/auth/service"
	"classcheck_backend/internals/features/users/users/dto"
	userModel "classcheck_backend/internals/features/users/users/model"
	helper "classcheck_backend/internals/helpers"
	helperAuth "classcheck_backend/internals/middlewares/auth"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

var validate = validator.New()

/* =========================== CREATE =========================== */
// POST /api/users — apenas admin. A senha inicial é provisória e o usuário
// troca no primeiro acesso.
func (ctrl *UserController) Create(c *fiber.Ctx) error {
	if _, err := helperAuth.RequireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if req.Tipo != userModel.TipoAdmin && req.UnidadeID == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Instrutores, pedagogos e monitores precisam de unidade")
	}

	var count int64
	ctrl.DB.WithContext(c.Context()).Model(&userModel.UserModel{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "E-mail já cadastrado")
	}

	temp := authService.SenhaTemporaria(10)
	hash, err := authService.HashSenha(temp)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao processar senha")
	}

	m := req.ToModel()
	m.Senha = hash
	if err := ctrl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao criar usuário")
	}

	return helper.JsonCreated(c, fiber.Map{
		"user":             m,
		"senha_temporaria": temp,
	})
}

/* =========================== LIST =========================== */
// GET /api/users?skip=&limit=&tipo=&unidade_id=
func (ctrl *UserController) List(c *fiber.Ctx) error {
	if _, err := helperAuth.RequireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 100, 500)
	q := ctrl.DB.WithContext(c.Context()).Model(&userModel.UserModel{})
	if tipo := c.Query("tipo"); tipo != "" {
		q = q.Where("tipo = ?", tipo)
	}
	if unidadeID := c.Query("unidade_id"); unidadeID != "" {
		q = q.Where("unidade_id = ?", unidadeID)
	}

	var users []userModel.UserModel
	if err := q.Order("created_at DESC").Offset(paging.Skip).Limit(paging.Limit).Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar usuários")
	}
	return helper.JsonOK(c, users)
}

// GET /api/users/pending — contas aguardando aprovação
func (ctrl *UserController) ListPending(c *fiber.Ctx) error {
	if _, err := helperAuth.RequireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	var users []userModel.UserModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("status = ?", userModel.StatusPendente).
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		// Lista secundária: degrada para vazio em vez de travar a tela.
		return helper.JsonOK(c, []userModel.UserModel{})
	}
	return helper.JsonOK(c, users)
}

// GET /api/professores — alias somente-leitura usado pelos filtros do painel
func (ctrl *UserController) ListProfessores(c *fiber.Ctx) error {
	var users []userModel.UserModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("tipo = ? AND ativo = ?", userModel.TipoInstrutor, true).
		Order("nome ASC").
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar professores")
	}
	return helper.JsonOK(c, users)
}

/* =========================== UPDATE =========================== */
// PUT /api/users/:id
func (ctrl *UserController) Update(c *fiber.Ctx) error {
	current, err := helperAuth.CurrentUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id := c.Params("id")
	if !current.IsAdmin() && current.ID != id {
		return helper.JsonError(c, fiber.StatusForbidden, "Você só pode editar o próprio cadastro")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := ctrl.DB.WithContext(c.Context()).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Usuário não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno")
	}

	changes := req.Changes()
	if len(changes) == 0 {
		return helper.JsonOK(c, user)
	}
	if err := ctrl.DB.WithContext(c.Context()).Model(&user).Updates(changes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao atualizar usuário")
	}
	return helper.JsonOK(c, user)
}

// PUT /api/users/:id/approve
func (ctrl *UserController) Approve(c *fiber.Ctx) error {
	if _, err := helperAuth.RequireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	var user userModel.UserModel
	if err := ctrl.DB.WithContext(c.Context()).Where("id = ?", c.Params("id")).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Usuário não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno")
	}
	if user.Status != userModel.StatusPendente {
		return helper.JsonError(c, fiber.StatusBadRequest, "Usuário não está pendente de aprovação")
	}

	if err := ctrl.DB.WithContext(c.Context()).Model(&user).Updates(map[string]interface{}{
		"status": userModel.StatusAtivo,
		"ativo":  true,
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao aprovar usuário")
	}
	return helper.JsonMessage(c, "Usuário aprovado com sucesso")
}

// POST /api/users/:id/reset-password — admin emite senha provisória
func (ctrl *UserController) ResetPassword(c *fiber.Ctx) error {
	if _, err := helperAuth.RequireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	var user userModel.UserModel
	if err := ctrl.DB.WithContext(c.Context()).Where("id = ?", c.Params("id")).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Usuário não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno")
	}

	temp := authService.SenhaTemporaria(10)
	hash, err := authService.HashSenha(temp)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao processar senha")
	}
	if err := ctrl.DB.WithContext(c.Context()).Model(&user).Updates(map[string]interface{}{
		"senha":           hash,
		"primeiro_acesso": true,
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao redefinir senha")
	}

	return helper.JsonOK(c, fiber.Map{"senha_temporaria": temp})
}

/* =========================== DELETE (soft) =========================== */
// DELETE /api/users/:id — desativa, nunca apaga
func (ctrl *UserController) Delete(c *fiber.Ctx) error {
	current, err := helperAuth.RequireAdmin(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id := c.Params("id")
	if current.ID == id {
		return helper.JsonError(c, fiber.StatusBadRequest, "Você não pode desativar a própria conta")
	}

	res := ctrl.DB.WithContext(c.Context()).Model(&userModel.UserModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"ativo": false, "status": userModel.StatusInativo})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao desativar usuário")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Usuário não encontrado")
	}
	return helper.JsonMessage(c, "Usuário desativado")
}
