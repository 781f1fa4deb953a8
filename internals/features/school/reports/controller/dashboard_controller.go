package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	alunoModel "classcheck_backend/internals/features/school/alunos/model"
	chamadaModel "classcheck_backend/internals/features/school/chamadas/model"
	cursoModel "classcheck_backend/internals/features/school/cursos/model"
	evasaoModel "classcheck_backend/internals/features/school/evasoes/model"
	turmaCtrl "classcheck_backend/internals/features/school/turmas/controller"
	turmaModel "classcheck_backend/internals/features/school/turmas/model"
	unidadeModel "classcheck_backend/internals/features/school/unidades/model"
	userModel "classcheck_backend/internals/features/users/users/model"
	helper "classcheck_backend/internals/helpers"
	helperAuth "classcheck_backend/internals/middlewares/auth"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

var agora = time.Now

/* =========================== DASHBOARD =========================== */
// GET /api/dashboard/stats
//
// Números do painel, sempre restritos ao escopo do usuário logado.
func (ctrl *ReportController) DashboardStats(c *fiber.Ctx) error {
	user, err := helperAuth.CurrentUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	var turmas []turmaModel.TurmaModel
	if err := turmaCtrl.EscopoTurmas(db.Model(&turmaModel.TurmaModel{}), user).
		Where("ativo = ?", true).Find(&turmas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar turmas")
	}

	turmaIDs := make([]string, 0, len(turmas))
	alunosUnicos := map[string]struct{}{}
	for _, t := range turmas {
		turmaIDs = append(turmaIDs, t.ID)
		for _, id := range t.AlunosIDs {
			alunosUnicos[id] = struct{}{}
		}
	}

	var chamadasHoje int64
	if len(turmaIDs) > 0 {
		if err := db.Model(&chamadaModel.ChamadaModel{}).
			Where("turma_id IN ? AND data = ?", turmaIDs, helper.DateOnly(agora())).
			Count(&chamadasHoje).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar chamadas")
		}
	}

	taxa, err := taxaPresencaMedia(db, turmaIDs)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao calcular presença")
	}

	return helper.JsonOK(c, fiber.Map{
		"total_turmas":        len(turmas),
		"total_alunos":        len(alunosUnicos),
		"chamadas_hoje":       chamadasHoje,
		"taxa_presenca_media": taxa,
	})
}

/* =========================== ADMIN =========================== */
// GET /api/dashboard/admin
func (ctrl *ReportController) AdminDashboard(c *fiber.Ctx) error {
	if _, err := helperAuth.RequireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	var totalUnidades, totalCursos, turmasAtivas, alunosAtivos, usuariosPendentes int64
	contagens := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&totalUnidades, db.Model(&unidadeModel.UnidadeModel{}).Where("ativo = ?", true)},
		{&totalCursos, db.Model(&cursoModel.CursoModel{}).Where("ativo = ?", true)},
		{&turmasAtivas, db.Model(&turmaModel.TurmaModel{}).Where("ativo = ?", true)},
		{&alunosAtivos, db.Model(&alunoModel.AlunoModel{}).Where("status = ?", alunoModel.StatusAtivo)},
		{&usuariosPendentes, db.Model(&userModel.UserModel{}).Where("status = ?", userModel.StatusPendente)},
	}
	for _, cont := range contagens {
		if err := cont.query.Count(cont.dst).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao montar o painel")
		}
	}

	corte := helper.DateOnly(agora().AddDate(0, 0, -30))
	var evasoes30 int64
	if err := db.Model(&evasaoModel.EvasaoModel{}).
		Where("data_evasao >= ?", corte).Count(&evasoes30).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao montar o painel")
	}

	// Ocupação por unidade
	var turmas []turmaModel.TurmaModel
	if err := db.Where("ativo = ?", true).Find(&turmas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao montar o painel")
	}
	type ocupacao struct {
		Turmas     int `json:"turmas"`
		VagasTotal int `json:"vagas_total"`
		Ocupadas   int `json:"vagas_ocupadas"`
	}
	porUnidade := map[string]*ocupacao{}
	for _, t := range turmas {
		o := porUnidade[t.UnidadeID]
		if o == nil {
			o = &ocupacao{}
			porUnidade[t.UnidadeID] = o
		}
		o.Turmas++
		o.VagasTotal += t.VagasTotal
		o.Ocupadas += len(t.AlunosIDs)
	}

	return helper.JsonOK(c, fiber.Map{
		"total_unidades":     totalUnidades,
		"total_cursos":       totalCursos,
		"turmas_ativas":      turmasAtivas,
		"alunos_ativos":      alunosAtivos,
		"usuarios_pendentes": usuariosPendentes,
		"evasoes_30_dias":    evasoes30,
		"ocupacao_unidades":  porUnidade,
	})
}

/* =========================== PROFESSOR =========================== */
// GET /api/dashboard/professor/:id e GET /api/reports/teacher-stats
func (ctrl *ReportController) ProfessorDashboard(c *fiber.Ctx) error {
	user, err := helperAuth.CurrentUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	professorID := c.Params("id", user.ID)
	if professorID != user.ID && !user.IsAdmin() {
		return helper.JsonError(c, fiber.StatusForbidden, "Sem permissão para ver o painel de outro professor")
	}

	db := ctrl.DB.WithContext(c.Context())

	var turmas []turmaModel.TurmaModel
	if err := db.Where("instrutor_id = ? AND ativo = ?", professorID, true).Find(&turmas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar turmas")
	}

	turmaIDs := make([]string, 0, len(turmas))
	totalAlunos := 0
	for _, t := range turmas {
		turmaIDs = append(turmaIDs, t.ID)
		totalAlunos += len(t.AlunosIDs)
	}

	var chamadasRealizadas int64
	if len(turmaIDs) > 0 {
		if err := db.Model(&chamadaModel.ChamadaModel{}).
			Where("turma_id IN ?", turmaIDs).Count(&chamadasRealizadas).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar chamadas")
		}
	}

	taxa, err := taxaPresencaMedia(db, turmaIDs)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao calcular presença")
	}

	return helper.JsonOK(c, fiber.Map{
		"professor_id":        professorID,
		"total_turmas":        len(turmas),
		"total_alunos":        totalAlunos,
		"chamadas_realizadas": chamadasRealizadas,
		"taxa_presenca_media": taxa,
	})
}

// taxaPresencaMedia agrega as presenças de todas as chamadas das turmas.
// Sem chamada registrada a taxa é 100, seguindo a regra de não punir
// turma recém-criada.
func taxaPresencaMedia(db *gorm.DB, turmaIDs []string) (float64, error) {
	if len(turmaIDs) == 0 {
		return 100, nil
	}
	var chamadas []chamadaModel.ChamadaModel
	if err := db.Where("turma_id IN ?", turmaIDs).Find(&chamadas).Error; err != nil {
		return 0, err
	}
	totalRegistros, totalPresentes := 0, 0
	for _, ch := range chamadas {
		totalRegistros += ch.TotalPresentes + ch.TotalFaltas
		totalPresentes += ch.TotalPresentes
	}
	if totalRegistros == 0 {
		return 100, nil
	}
	return 100 * float64(totalPresentes) / float64(totalRegistros), nil
}
