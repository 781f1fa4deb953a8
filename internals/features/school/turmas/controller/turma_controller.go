package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	alunoModel "classcheck_backend/internals/features/school/alunos/model"
	"classcheck_backend/internals/features/school/turmas/dto"
	turmaModel "classcheck_backend/internals/features/school/turmas/model"
	userModel "classcheck_backend/internals/features/users/users/model"
	helper "classcheck_backend/internals/helpers"
	helperAuth "classcheck_backend/internals/middlewares/auth"
)

type TurmaController struct {
	DB *gorm.DB
}

func NewTurmaController(db *gorm.DB) *TurmaController {
	return &TurmaController{DB: db}
}

var validate = validator.New()

// EscopoTurmas aplica a visibilidade por papel: instrutor vê as próprias
// turmas, pedagogo/monitor vê as do seu curso/unidade, admin vê tudo.
func EscopoTurmas(q *gorm.DB, user *userModel.UserModel) *gorm.DB {
	switch user.Tipo {
	case userModel.TipoInstrutor:
		return q.Where("instrutor_id = ?", user.ID)
	case userModel.TipoPedagogo, userModel.TipoMonitor:
		if user.CursoID != nil {
			q = q.Where("curso_id = ?", *user.CursoID)
		}
		if user.UnidadeID != nil {
			q = q.Where("unidade_id = ?", *user.UnidadeID)
		}
		return q
	default:
		return q
	}
}

/* =========================== CREATE =========================== */
// POST /api/classes
func (ctrl *TurmaController) Create(c *fiber.Ctx) error {
	if _, err := helperAuth.RequireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateTurmaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var instrutor userModel.UserModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("id = ? AND tipo = ?", req.InstrutorID, userModel.TipoInstrutor).
		First(&instrutor).Error; err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Instrutor não encontrado")
	}

	m := req.ToModel()
	if err := ctrl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao criar turma")
	}
	return helper.JsonCreated(c, m)
}

/* =========================== LIST / GET =========================== */
// GET /api/classes (e alias /api/turmas com filtros unidade/curso/professor)
func (ctrl *TurmaController) List(c *fiber.Ctx) error {
	user, err := helperAuth.CurrentUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	q := ctrl.DB.WithContext(c.Context()).Model(&turmaModel.TurmaModel{}).Where("ativo = ?", true)
	q = EscopoTurmas(q, user)

	if v := c.Query("unidade"); v != "" {
		q = q.Where("unidade_id = ?", v)
	}
	if v := c.Query("curso"); v != "" {
		q = q.Where("curso_id = ?", v)
	}
	if v := c.Query("professor"); v != "" {
		q = q.Where("instrutor_id = ?", v)
	}

	var turmas []turmaModel.TurmaModel
	if err := q.Order("nome ASC").Find(&turmas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar turmas")
	}
	return helper.JsonOK(c, turmas)
}

// GET /api/turmas/:id
func (ctrl *TurmaController) Get(c *fiber.Ctx) error {
	var m turmaModel.TurmaModel
	if err := ctrl.DB.WithContext(c.Context()).Where("id = ?", c.Params("id")).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Turma não encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno")
	}
	return helper.JsonOK(c, m)
}

// GET /api/classes/:id/students — roster de alunos ativos da turma
func (ctrl *TurmaController) ListStudents(c *fiber.Ctx) error {
	var turma turmaModel.TurmaModel
	if err := ctrl.DB.WithContext(c.Context()).Where("id = ?", c.Params("id")).First(&turma).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Turma não encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno")
	}

	if len(turma.AlunosIDs) == 0 {
		return helper.JsonOK(c, []alunoModel.AlunoModel{})
	}

	var alunos []alunoModel.AlunoModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("id IN ? AND ativo = ?", []string(turma.AlunosIDs), true).
		Order("nome ASC").
		Find(&alunos).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar alunos da turma")
	}
	return helper.JsonOK(c, alunos)
}

/* =========================== UPDATE =========================== */
// PUT /api/classes/:id
func (ctrl *TurmaController) Update(c *fiber.Ctx) error {
	if _, err := helperAuth.RequireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateTurmaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var m turmaModel.TurmaModel
	if err := ctrl.DB.WithContext(c.Context()).Where("id = ?", c.Params("id")).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Turma não encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno")
	}

	changes := req.Changes()
	if vagas, ok := changes["vagas_total"].(int); ok && vagas < len(m.AlunosIDs) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Total de vagas menor que o número de alunos matriculados")
	}
	if len(changes) > 0 {
		if err := ctrl.DB.WithContext(c.Context()).Model(&m).Updates(changes).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao atualizar turma")
		}
	}
	return helper.JsonOK(c, m)
}

/* =========================== MATRÍCULAS =========================== */
// PUT /api/classes/:id/students/:studentId — matricula respeitando vagas
func (ctrl *TurmaController) AddAluno(c *fiber.Ctx) error {
	if _, err := helperAuth.CurrentUser(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	turmaID := c.Params("id")
	alunoID := c.Params("studentId")

	var aluno alunoModel.AlunoModel
	if err := ctrl.DB.WithContext(c.Context()).Where("id = ? AND ativo = ?", alunoID, true).First(&aluno).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Aluno não encontrado")
	}

	err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var turma turmaModel.TurmaModel
		if err := tx.Where("id = ?", turmaID).First(&turma).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Turma não encontrada")
			}
			return err
		}
		if turma.Matriculado(alunoID) {
			return fiber.NewError(fiber.StatusBadRequest, "Aluno já matriculado nesta turma")
		}
		if !turma.TemVaga() {
			return fiber.NewError(fiber.StatusBadRequest, "Turma sem vagas disponíveis")
		}

		ids := append([]string(turma.AlunosIDs), alunoID)
		return tx.Model(&turma).Updates(map[string]interface{}{
			"alunos_ids":     datatypes.NewJSONSlice(ids),
			"vagas_ocupadas": len(ids),
		}).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonMessage(c, "Aluno matriculado na turma")
}

// DELETE /api/classes/:id/students/:studentId
func (ctrl *TurmaController) RemoveAluno(c *fiber.Ctx) error {
	if _, err := helperAuth.CurrentUser(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	turmaID := c.Params("id")
	alunoID := c.Params("studentId")

	err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var turma turmaModel.TurmaModel
		if err := tx.Where("id = ?", turmaID).First(&turma).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Turma não encontrada")
			}
			return err
		}
		if !turma.Matriculado(alunoID) {
			return fiber.NewError(fiber.StatusBadRequest, "Aluno não está matriculado nesta turma")
		}

		ids := make([]string, 0, len(turma.AlunosIDs))
		for _, id := range turma.AlunosIDs {
			if id != alunoID {
				ids = append(ids, id)
			}
		}
		return tx.Model(&turma).Updates(map[string]interface{}{
			"alunos_ids":     datatypes.NewJSONSlice(ids),
			"vagas_ocupadas": len(ids),
		}).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonMessage(c, "Aluno removido da turma")
}

/* =========================== DELETE (soft) =========================== */
// DELETE /api/classes/:id
func (ctrl *TurmaController) Delete(c *fiber.Ctx) error {
	if _, err := helperAuth.RequireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	res := ctrl.DB.WithContext(c.Context()).Model(&turmaModel.TurmaModel{}).
		Where("id = ?", c.Params("id")).
		Update("ativo", false)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao desativar turma")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Turma não encontrada")
	}
	return helper.JsonMessage(c, "Turma desativada")
}
