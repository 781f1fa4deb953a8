package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"classcheck_backend/internals/features/school/unidades/dto"
	unidadeModel "classcheck_backend/internals/features/school/unidades/model"
	helper "classcheck_backend/internals/helpers"
	helperAuth "classcheck_backend/internals/middlewares/auth"
)

type UnidadeController struct {
	DB *gorm.DB
}

func NewUnidadeController(db *gorm.DB) *UnidadeController {
	return &UnidadeController{DB: db}
}

var validate = validator.New()

// POST /api/units
func (ctrl *UnidadeController) Create(c *fiber.Ctx) error {
	if _, err := helperAuth.RequireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateUnidadeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := ctrl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao criar unidade")
	}
	return helper.JsonCreated(c, m)
}

// GET /api/units (e alias /api/unidades)
func (ctrl *UnidadeController) List(c *fiber.Ctx) error {
	var unidades []unidadeModel.UnidadeModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("ativo = ?", true).
		Order("nome ASC").
		Find(&unidades).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar unidades")
	}
	return helper.JsonOK(c, unidades)
}

// PUT /api/units/:id
func (ctrl *UnidadeController) Update(c *fiber.Ctx) error {
	if _, err := helperAuth.RequireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateUnidadeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var m unidadeModel.UnidadeModel
	if err := ctrl.DB.WithContext(c.Context()).Where("id = ?", c.Params("id")).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Unidade não encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno")
	}

	changes := req.Changes()
	if len(changes) > 0 {
		if err := ctrl.DB.WithContext(c.Context()).Model(&m).Updates(changes).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao atualizar unidade")
		}
	}
	return helper.JsonOK(c, m)
}

// DELETE /api/units/:id — soft delete
func (ctrl *UnidadeController) Delete(c *fiber.Ctx) error {
	if _, err := helperAuth.RequireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	res := ctrl.DB.WithContext(c.Context()).Model(&unidadeModel.UnidadeModel{}).
		Where("id = ?", c.Params("id")).
		Update("ativo", false)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao desativar unidade")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Unidade não encontrada")
	}
	return helper.JsonMessage(c, "Unidade desativada")
}
