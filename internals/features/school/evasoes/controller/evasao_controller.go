package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	alunoModel "classcheck_backend/internals/features/school/alunos/model"
	"classcheck_backend/internals/features/school/evasoes/dto"
	evasaoModel "classcheck_backend/internals/features/school/evasoes/model"
	turmaModel "classcheck_backend/internals/features/school/turmas/model"
	userModel "classcheck_backend/internals/features/users/users/model"
	helper "classcheck_backend/internals/helpers"
	helperAuth "classcheck_backend/internals/middlewares/auth"
)

type EvasaoController struct {
	DB *gorm.DB
}

func NewEvasaoController(db *gorm.DB) *EvasaoController {
	return &EvasaoController{DB: db}
}

var validate = validator.New()

var agora = time.Now

/* =========================== CREATE =========================== */
// POST /api/evasoes (e /api/dropouts)
//
// Registrar evasão vira o status do aluno para "desistente" na mesma
// transação; o histórico em `evasoes` nunca é editado depois.
func (ctrl *EvasaoController) Create(c *fiber.Ctx) error {
	user, err := helperAuth.CurrentUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	switch user.Tipo {
	case userModel.TipoAdmin, userModel.TipoInstrutor, userModel.TipoPedagogo:
	default:
		return helper.JsonError(c, fiber.StatusForbidden, "Sem permissão para registrar evasão")
	}

	var req dto.CreateEvasaoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var aluno alunoModel.AlunoModel
	if err := ctrl.DB.WithContext(c.Context()).Where("id = ?", req.AlunoID).First(&aluno).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Aluno não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno")
	}
	if aluno.Status == alunoModel.StatusDesistente {
		return helper.JsonError(c, fiber.StatusBadRequest, "Aluno já está marcado como desistente")
	}

	evasao := evasaoModel.EvasaoModel{
		AlunoID:       req.AlunoID,
		Motivo:        req.Motivo,
		Categoria:     evasaoModel.CategoriaDoMotivo(ctrl.DB, req.Motivo),
		DataEvasao:    helper.DateOnly(agora()),
		RegistradoPor: user.ID,
	}
	if req.TurmaID != "" {
		evasao.TurmaID = &req.TurmaID
	}
	if req.Observacao != "" {
		evasao.Observacao = &req.Observacao
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&evasao).Error; err != nil {
			return err
		}
		return tx.Model(&alunoModel.AlunoModel{}).
			Where("id = ?", req.AlunoID).
			Update("status", alunoModel.StatusDesistente).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao registrar evasão")
	}

	return helper.JsonCreated(c, evasao)
}

/* =========================== LIST =========================== */
// GET /api/evasoes?categoria=&motivo=&periodo_dias=&turma=&unidade=&curso=
func (ctrl *EvasaoController) List(c *fiber.Ctx) error {
	if _, err := helperAuth.CurrentUser(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	q := ctrl.DB.WithContext(c.Context()).Model(&evasaoModel.EvasaoModel{})
	if categoria := c.Query("categoria"); categoria != "" {
		q = q.Where("categoria = ?", categoria)
	}
	if motivo := c.Query("motivo"); motivo != "" {
		q = q.Where("motivo = ?", motivo)
	}
	if dias := c.QueryInt("periodo_dias"); dias > 0 {
		corte := helper.DateOnly(agora().AddDate(0, 0, -dias))
		q = q.Where("data_evasao >= ?", corte)
	}
	if turma := c.Query("turma"); turma != "" {
		q = q.Where("turma_id = ?", turma)
	}
	// unidade/curso restringem pelas turmas correspondentes
	if unidade, curso := c.Query("unidade"), c.Query("curso"); unidade != "" || curso != "" {
		turmaQ := ctrl.DB.WithContext(c.Context()).Model(&turmaModel.TurmaModel{}).Select("id")
		if unidade != "" {
			turmaQ = turmaQ.Where("unidade_id = ?", unidade)
		}
		if curso != "" {
			turmaQ = turmaQ.Where("curso_id = ?", curso)
		}
		q = q.Where("turma_id IN (?)", turmaQ)
	}

	var evasoes []evasaoModel.EvasaoModel
	if err := q.Order("created_at DESC").Find(&evasoes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar evasões")
	}
	return helper.JsonOK(c, evasoes)
}

/* =========================== MOTIVOS =========================== */
// GET /api/motivos-evasao
func (ctrl *EvasaoController) ListMotivos(c *fiber.Ctx) error {
	if _, err := helperAuth.CurrentUser(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	var motivos []evasaoModel.MotivoEvasaoModel
	if err := ctrl.DB.WithContext(c.Context()).Order("id").Find(&motivos).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar motivos")
	}
	return helper.JsonOK(c, motivos)
}
