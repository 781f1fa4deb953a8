package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"classcheck_backend/internals/features/school/chamadas/dto"
	chamadaModel "classcheck_backend/internals/features/school/chamadas/model"
	turmaModel "classcheck_backend/internals/features/school/turmas/model"
	userModel "classcheck_backend/internals/features/users/users/model"
	helper "classcheck_backend/internals/helpers"
	helperAuth "classcheck_backend/internals/middlewares/auth"
)

type ChamadaController struct {
	DB *gorm.DB
}

func NewChamadaController(db *gorm.DB) *ChamadaController {
	return &ChamadaController{DB: db}
}

var validate = validator.New()

// agora é sobrescrito nos testes para fixar o relógio.
var agora = time.Now

/* =========================== CREATE =========================== */
// POST /api/attendance
//
// Regras que o backend garante de forma autoritativa (o guard do cliente é
// só açúcar de UX): a data precisa ser o dia corrente e só existe uma
// chamada por turma por dia.
func (ctrl *ChamadaController) Create(c *fiber.Ctx) error {
	user, err := helperAuth.CurrentUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateChamadaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	hoje := agora()
	hojeISO := helper.DateOnly(hoje)
	if req.Data != hojeISO {
		return helper.JsonError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Só é possível fazer chamada da data atual (%s)", hoje.Format("02/01/2006")))
	}

	var existente chamadaModel.ChamadaModel
	err = ctrl.DB.WithContext(c.Context()).
		Where("turma_id = ? AND data = ?", req.TurmaID, hojeISO).
		First(&existente).Error
	if err == nil {
		return helper.JsonError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Chamada já foi realizada para esta turma hoje (%s)", hoje.Format("02/01/2006")))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno")
	}

	var turma turmaModel.TurmaModel
	if err := ctrl.DB.WithContext(c.Context()).Where("id = ?", req.TurmaID).First(&turma).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Turma não encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno")
	}
	if err := podeFazerChamada(user, &turma); err != nil {
		return helper.FromFiberError(c, err)
	}

	// Hora de registro só para quem está presente
	horaAtual := helper.HoraMinuto(hoje)
	presencas := make(map[string]chamadaModel.Presenca, len(req.Presencas))
	totalPresentes := 0
	for alunoID, p := range req.Presencas {
		registro := chamadaModel.Presenca{
			Presente:      p.Presente,
			Justificativa: p.Justificativa,
			AtestadoID:    p.AtestadoID,
		}
		if p.Presente {
			registro.HoraRegistro = horaAtual
			totalPresentes++
		}
		presencas[alunoID] = registro
	}

	chamada := chamadaModel.ChamadaModel{
		TurmaID:         req.TurmaID,
		InstrutorID:     user.ID,
		Data:            hojeISO,
		Horario:         req.Horario,
		ObservacoesAula: req.ObservacoesAula,
		Presencas:       datatypes.NewJSONType(presencas),
		TotalPresentes:  totalPresentes,
		TotalFaltas:     len(presencas) - totalPresentes,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&chamada).Error; err != nil {
		// Corrida entre a pré-checagem e o insert: o índice único
		// idx_chamadas_turma_data barra o segundo envio.
		var vencedora chamadaModel.ChamadaModel
		if segErr := ctrl.DB.WithContext(c.Context()).
			Where("turma_id = ? AND data = ?", req.TurmaID, hojeISO).
			First(&vencedora).Error; segErr == nil {
			return helper.JsonError(c, fiber.StatusBadRequest,
				fmt.Sprintf("Chamada já foi realizada para esta turma hoje (%s)", hoje.Format("02/01/2006")))
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao registrar chamada")
	}

	return helper.JsonCreated(c, chamada)
}

func podeFazerChamada(user *userModel.UserModel, turma *turmaModel.TurmaModel) error {
	switch user.Tipo {
	case userModel.TipoAdmin:
		return nil
	case userModel.TipoInstrutor:
		if turma.InstrutorID != user.ID {
			return fiber.NewError(fiber.StatusForbidden, "Você só pode fazer chamada das suas turmas")
		}
		return nil
	case userModel.TipoPedagogo, userModel.TipoMonitor:
		if user.CursoID != nil && turma.CursoID != *user.CursoID {
			return fiber.NewError(fiber.StatusForbidden, "Acesso negado: turma fora do seu curso/unidade")
		}
		if user.UnidadeID != nil && turma.UnidadeID != *user.UnidadeID {
			return fiber.NewError(fiber.StatusForbidden, "Acesso negado: turma fora do seu curso/unidade")
		}
		return nil
	default:
		return fiber.NewError(fiber.StatusForbidden, "Acesso negado")
	}
}

/* =========================== LIST =========================== */
// GET /api/classes/:id/attendance
func (ctrl *ChamadaController) ListByTurma(c *fiber.Ctx) error {
	if _, err := helperAuth.CurrentUser(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	var chamadas []chamadaModel.ChamadaModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("turma_id = ?", c.Params("id")).
		Order("data DESC").
		Find(&chamadas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar chamadas")
	}
	return helper.JsonOK(c, chamadas)
}
