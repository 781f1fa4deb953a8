package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"classcheck_backend/internals/features/school/cursos/dto"
	cursoModel "classcheck_backend/internals/features/school/cursos/model"
	helper "classcheck_backend/internals/helpers"
	helperAuth "classcheck_backend/internals/middlewares/auth"
)

type CursoController struct {
	DB *gorm.DB
}

func NewCursoController(db *gorm.DB) *CursoController {
	return &CursoController{DB: db}
}

var validate = validator.New()

// POST /api/courses
func (ctrl *CursoController) Create(c *fiber.Ctx) error {
	if _, err := helperAuth.RequireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateCursoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := ctrl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao criar curso")
	}
	return helper.JsonCreated(c, m)
}

// GET /api/courses
func (ctrl *CursoController) List(c *fiber.Ctx) error {
	var cursos []cursoModel.CursoModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("ativo = ?", true).
		Order("nome ASC").
		Find(&cursos).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar cursos")
	}
	return helper.JsonOK(c, cursos)
}

// PUT /api/courses/:id
func (ctrl *CursoController) Update(c *fiber.Ctx) error {
	if _, err := helperAuth.RequireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateCursoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var m cursoModel.CursoModel
	if err := ctrl.DB.WithContext(c.Context()).Where("id = ?", c.Params("id")).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Curso não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno")
	}

	changes := req.Changes()
	if len(changes) > 0 {
		if err := ctrl.DB.WithContext(c.Context()).Model(&m).Updates(changes).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao atualizar curso")
		}
	}
	return helper.JsonOK(c, m)
}

// DELETE /api/courses/:id — soft delete
func (ctrl *CursoController) Delete(c *fiber.Ctx) error {
	if _, err := helperAuth.RequireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	res := ctrl.DB.WithContext(c.Context()).Model(&cursoModel.CursoModel{}).
		Where("id = ?", c.Params("id")).
		Update("ativo", false)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao desativar curso")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Curso não encontrado")
	}
	return helper.JsonMessage(c, "Curso desativado")
}
