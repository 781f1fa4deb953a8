package controller

import (
	"github.com/gofiber/fiber/v2"

	chamadaModel "classcheck_backend/internals/features/school/chamadas/model"
	turmaCtrl "classcheck_backend/internals/features/school/turmas/controller"
	turmaModel "classcheck_backend/internals/features/school/turmas/model"
	helper "classcheck_backend/internals/helpers"
	helperAuth "classcheck_backend/internals/middlewares/auth"
)

type PendenciaChamada struct {
	TurmaID    string `json:"turma_id"`
	TurmaNome  string `json:"turma_nome"`
	Data       string `json:"data"`
	DiasAtraso int    `json:"dias_atraso"`
	Prioridade string `json:"prioridade"`
}

/* =========================== PENDÊNCIAS =========================== */
// GET /api/notifications/pending-calls
//
// Olha os últimos três dias letivos possíveis (hoje, ontem, anteontem) e
// aponta as turmas do usuário sem chamada registrada nesses dias.
func (ctrl *ChamadaController) PendingCalls(c *fiber.Ctx) error {
	user, err := helperAuth.CurrentUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	q := turmaCtrl.EscopoTurmas(ctrl.DB.WithContext(c.Context()).Model(&turmaModel.TurmaModel{}), user)
	var turmas []turmaModel.TurmaModel
	if err := q.Where("ativo = ?", true).Find(&turmas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar turmas")
	}

	prioridades := []string{"alta", "media", "baixa"}
	hoje := agora()

	pendencias := []PendenciaChamada{}
	for _, turma := range turmas {
		for atraso := 0; atraso <= 2; atraso++ {
			dia := hoje.AddDate(0, 0, -atraso)
			if !helper.EhDiaDeAula(dia, turma.DiasSemana) {
				continue
			}
			dataISO := helper.DateOnly(dia)

			var total int64
			if err := ctrl.DB.WithContext(c.Context()).
				Model(&chamadaModel.ChamadaModel{}).
				Where("turma_id = ? AND data = ?", turma.ID, dataISO).
				Count(&total).Error; err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao verificar chamadas")
			}
			if total == 0 {
				pendencias = append(pendencias, PendenciaChamada{
					TurmaID:    turma.ID,
					TurmaNome:  turma.Nome,
					Data:       dataISO,
					DiasAtraso: atraso,
					Prioridade: prioridades[atraso],
				})
			}
		}
	}

	return helper.JsonOK(c, fiber.Map{
		"total":      len(pendencias),
		"pendencias": pendencias,
	})
}
