package controller

import (
	"github.com/gofiber/fiber/v2"

	chamadaModel "classcheck_backend/internals/features/school/chamadas/model"
	evasaoModel "classcheck_backend/internals/features/school/evasoes/model"
	turmaCtrl "classcheck_backend/internals/features/school/turmas/controller"
	turmaModel "classcheck_backend/internals/features/school/turmas/model"
	helper "classcheck_backend/internals/helpers"
	helperAuth "classcheck_backend/internals/middlewares/auth"
)

// Abaixo desse percentual o aluno entra na lista de risco.
const limiteRisco = 75.0

/* =========================== INSIGHTS =========================== */
// GET /api/insights?periodo_dias=
//
// Agrega evasões por categoria e motivo e aponta alunos com frequência
// abaixo do limite, dentro do escopo do usuário.
func (ctrl *ReportController) Insights(c *fiber.Ctx) error {
	user, err := helperAuth.CurrentUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	q := db.Model(&evasaoModel.EvasaoModel{})
	if dias := c.QueryInt("periodo_dias"); dias > 0 {
		corte := helper.DateOnly(agora().AddDate(0, 0, -dias))
		q = q.Where("data_evasao >= ?", corte)
	}
	var evasoes []evasaoModel.EvasaoModel
	if err := q.Find(&evasoes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar evasões")
	}

	porCategoria := map[string]int{}
	porMotivo := map[string]int{}
	porMes := map[string]int{}
	for _, e := range evasoes {
		porCategoria[e.Categoria]++
		porMotivo[e.Motivo]++
		if len(e.DataEvasao) >= 7 {
			porMes[e.DataEvasao[:7]]++ // "2025-03"
		}
	}

	var turmas []turmaModel.TurmaModel
	if err := turmaCtrl.EscopoTurmas(db.Model(&turmaModel.TurmaModel{}), user).
		Where("ativo = ?", true).Find(&turmas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar turmas")
	}

	type alunoRisco struct {
		AlunoID      string  `json:"aluno_id"`
		TurmaID      string  `json:"turma_id"`
		TaxaPresenca float64 `json:"taxa_presenca"`
	}
	emRisco := []alunoRisco{}
	for _, turma := range turmas {
		var chamadas []chamadaModel.ChamadaModel
		if err := db.Where("turma_id = ?", turma.ID).Find(&chamadas).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar chamadas")
		}
		if len(chamadas) == 0 {
			continue
		}
		presentes := map[string]int{}
		registros := map[string]int{}
		for _, ch := range chamadas {
			for alunoID, p := range ch.Presencas.Data() {
				registros[alunoID]++
				if p.Presente {
					presentes[alunoID]++
				}
			}
		}
		for alunoID, total := range registros {
			taxa := 100 * float64(presentes[alunoID]) / float64(total)
			if taxa < limiteRisco {
				emRisco = append(emRisco, alunoRisco{
					AlunoID:      alunoID,
					TurmaID:      turma.ID,
					TaxaPresenca: taxa,
				})
			}
		}
	}

	return helper.JsonOK(c, fiber.Map{
		"total_evasoes":         len(evasoes),
		"evasoes_por_categoria": porCategoria,
		"evasoes_por_motivo":    porMotivo,
		"evasoes_por_mes":       porMes,
		"alunos_em_risco":       emRisco,
	})
}
