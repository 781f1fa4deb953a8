package controller

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"classcheck_backend/internals/features/school/alunos/dto"
	alunoModel "classcheck_backend/internals/features/school/alunos/model"
	chamadaModel "classcheck_backend/internals/features/school/chamadas/model"
	turmaModel "classcheck_backend/internals/features/school/turmas/model"
	helper "classcheck_backend/internals/helpers"
	helperAuth "classcheck_backend/internals/middlewares/auth"
)

type AlunoController struct {
	DB *gorm.DB
}

func NewAlunoController(db *gorm.DB) *AlunoController {
	return &AlunoController{DB: db}
}

var validate = validator.New()

/* =========================== CREATE =========================== */
// POST /api/students
func (ctrl *AlunoController) Create(c *fiber.Ctx) error {
	if _, err := helperAuth.CurrentUser(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateAlunoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var count int64
	ctrl.DB.WithContext(c.Context()).Model(&alunoModel.AlunoModel{}).Where("cpf = ?", req.CPF).Count(&count)
	if count > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "CPF já cadastrado no sistema")
	}

	m := req.ToModel()
	if err := ctrl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao criar aluno")
	}
	return helper.JsonCreated(c, m)
}

/* =========================== LIST =========================== */
// GET /api/students — listagem simples usada nos formulários
func (ctrl *AlunoController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 100, 1000)

	q := ctrl.DB.WithContext(c.Context()).Model(&alunoModel.AlunoModel{}).Where("ativo = ?", true)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var alunos []alunoModel.AlunoModel
	if err := q.Order("nome ASC").Offset(paging.Skip).Limit(paging.Limit).Find(&alunos).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar alunos")
	}
	return helper.JsonOK(c, alunos)
}

// GET /api/alunos — listagem filtrada do painel de evasão
// Filtros: unidade, curso, turma, status, presenca_min, presenca_max
func (ctrl *AlunoController) ListFiltrado(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.Context())

	// 1) Restringe por turmas quando houver filtro de unidade/curso/turma
	turmaQ := db.Model(&turmaModel.TurmaModel{}).Where("ativo = ?", true)
	restringePorTurma := false
	if v := c.Query("unidade"); v != "" {
		turmaQ = turmaQ.Where("unidade_id = ?", v)
		restringePorTurma = true
	}
	if v := c.Query("curso"); v != "" {
		turmaQ = turmaQ.Where("curso_id = ?", v)
		restringePorTurma = true
	}
	if v := c.Query("turma"); v != "" {
		turmaQ = turmaQ.Where("id = ?", v)
		restringePorTurma = true
	}

	var idsPermitidos map[string]bool
	var turmaIDs []string
	if restringePorTurma {
		var turmas []turmaModel.TurmaModel
		if err := turmaQ.Find(&turmas).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao filtrar turmas")
		}
		idsPermitidos = map[string]bool{}
		for _, t := range turmas {
			turmaIDs = append(turmaIDs, t.ID)
			for _, alunoID := range t.AlunosIDs {
				idsPermitidos[alunoID] = true
			}
		}
	}

	// 2) Filtro direto de status
	alunoQ := db.Model(&alunoModel.AlunoModel{})
	if status := c.Query("status"); status != "" {
		alunoQ = alunoQ.Where("status = ?", status)
	}

	var alunos []alunoModel.AlunoModel
	if err := alunoQ.Order("nome ASC").Find(&alunos).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar alunos")
	}

	if idsPermitidos != nil {
		filtrados := alunos[:0]
		for _, a := range alunos {
			if idsPermitidos[a.ID] {
				filtrados = append(filtrados, a)
			}
		}
		alunos = filtrados
	}

	// 3) Faixa de presença (percentual 0..100 calculado sobre as chamadas)
	presencaMin, temMin := parseFloatQuery(c, "presenca_min")
	presencaMax, temMax := parseFloatQuery(c, "presenca_max")
	if temMin || temMax {
		taxas, err := taxaPresencaPorAluno(db, turmaIDs)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao calcular presença")
		}
		filtrados := alunos[:0]
		for _, a := range alunos {
			taxa, ok := taxas[a.ID]
			if !ok {
				// sem chamadas registradas: considera presença plena
				taxa = 100
			}
			if temMin && taxa < presencaMin {
				continue
			}
			if temMax && taxa > presencaMax {
				continue
			}
			filtrados = append(filtrados, a)
		}
		alunos = filtrados
	}

	return helper.JsonOK(c, alunos)
}

// GET /api/alunos/:id
func (ctrl *AlunoController) Get(c *fiber.Ctx) error {
	var m alunoModel.AlunoModel
	if err := ctrl.DB.WithContext(c.Context()).Where("id = ?", c.Params("id")).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Aluno não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno")
	}
	return helper.JsonOK(c, m)
}

/* =========================== UPDATE =========================== */
// PUT /api/students/:id
func (ctrl *AlunoController) Update(c *fiber.Ctx) error {
	if _, err := helperAuth.CurrentUser(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateAlunoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var m alunoModel.AlunoModel
	if err := ctrl.DB.WithContext(c.Context()).Where("id = ?", c.Params("id")).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Aluno não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno")
	}

	changes := req.Changes()
	if len(changes) > 0 {
		if err := ctrl.DB.WithContext(c.Context()).Model(&m).Updates(changes).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao atualizar aluno")
		}
	}
	return helper.JsonOK(c, m)
}

// PATCH /api/alunos/:id/status?status=
func (ctrl *AlunoController) UpdateStatus(c *fiber.Ctx) error {
	if _, err := helperAuth.CurrentUser(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	status := c.Query("status")
	if !alunoModel.StatusValido(status) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Status inválido")
	}

	res := ctrl.DB.WithContext(c.Context()).Model(&alunoModel.AlunoModel{}).
		Where("id = ?", c.Params("id")).
		Update("status", status)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao atualizar status")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Aluno não encontrado")
	}
	return helper.JsonMessage(c, "Status atualizado")
}

/* =========================== helpers =========================== */

func parseFloatQuery(c *fiber.Ctx, key string) (float64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// taxaPresencaPorAluno varre as chamadas (opcionalmente restritas a um
// conjunto de turmas) e devolve o percentual de presença por aluno.
func taxaPresencaPorAluno(db *gorm.DB, turmaIDs []string) (map[string]float64, error) {
	q := db.Model(&chamadaModel.ChamadaModel{})
	if len(turmaIDs) > 0 {
		q = q.Where("turma_id IN ?", turmaIDs)
	}

	var chamadas []chamadaModel.ChamadaModel
	if err := q.Find(&chamadas).Error; err != nil {
		return nil, err
	}

	presentes := map[string]int{}
	total := map[string]int{}
	for _, ch := range chamadas {
		for alunoID, p := range ch.Presencas.Data() {
			total[alunoID]++
			if p.Presente {
				presentes[alunoID]++
			}
		}
	}

	taxas := make(map[string]float64, len(total))
	for alunoID, n := range total {
		taxas[alunoID] = float64(presentes[alunoID]) / float64(n) * 100
	}
	return taxas, nil
}
