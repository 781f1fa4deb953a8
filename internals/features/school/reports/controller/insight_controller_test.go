package controller_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	chamadaModel "classcheck_backend/internals/features/school/chamadas/model"
	evasaoModel "classcheck_backend/internals/features/school/evasoes/model"
	turmaModel "classcheck_backend/internals/features/school/turmas/model"
	userModel "classcheck_backend/internals/features/users/users/model"
	"classcheck_backend/internals/testutil"
)

type respostaInsights struct {
	TotalEvasoes int            `json:"total_evasoes"`
	PorCategoria map[string]int `json:"evasoes_por_categoria"`
	PorMotivo    map[string]int `json:"evasoes_por_motivo"`
	PorMes       map[string]int `json:"evasoes_por_mes"`
	EmRisco      []struct {
		AlunoID      string  `json:"aluno_id"`
		TurmaID      string  `json:"turma_id"`
		TaxaPresenca float64 `json:"taxa_presenca"`
	} `json:"alunos_em_risco"`
}

func seedTurmaVazia(t *testing.T, db *gorm.DB, instrutorID string, alunos []string) *turmaModel.TurmaModel {
	t.Helper()

	turma := &turmaModel.TurmaModel{
		Nome:          "Administração 2025.1",
		UnidadeID:     uuid.NewString(),
		CursoID:       uuid.NewString(),
		InstrutorID:   instrutorID,
		AlunosIDs:     datatypes.NewJSONSlice(alunos),
		DataInicio:    time.Now().AddDate(0, -1, 0),
		DataFim:       time.Now().AddDate(0, 5, 0),
		HorarioInicio: "13:00",
		HorarioFim:    "17:00",
		DiasSemana:    datatypes.NewJSONSlice([]string{"terca"}),
		VagasTotal:    30,
		Ativo:         true,
	}
	assert.NoError(t, db.Create(turma).Error)
	return turma
}

func seedChamadaDoDia(t *testing.T, db *gorm.DB, turma *turmaModel.TurmaModel, data string, presentes map[string]bool) {
	t.Helper()

	registro := map[string]chamadaModel.Presenca{}
	total := 0
	for alunoID, presente := range presentes {
		registro[alunoID] = chamadaModel.Presenca{Presente: presente}
		if presente {
			total++
		}
	}
	ch := chamadaModel.ChamadaModel{
		TurmaID:        turma.ID,
		InstrutorID:    turma.InstrutorID,
		Data:           data,
		Horario:        "08:00",
		Presencas:      datatypes.NewJSONType(registro),
		TotalPresentes: total,
		TotalFaltas:    len(presentes) - total,
	}
	assert.NoError(t, db.Create(&ch).Error)
}

func TestInsightsApontamAlunoAbaixoDoLimite(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	instrutor, token := testutil.CriarUsuario(t, db, "João", "joao@ios.org.br", userModel.TipoInstrutor)

	risco := uuid.NewString()
	assiduo := uuid.NewString()
	turma := seedTurmaVazia(t, db, instrutor.ID, []string{risco, assiduo})

	// Duas chamadas: o primeiro aluno faltou em uma (50%), o segundo veio às
	// duas (100%).
	seedChamadaDoDia(t, db, turma, "2025-03-10", map[string]bool{risco: false, assiduo: true})
	seedChamadaDoDia(t, db, turma, "2025-03-11", map[string]bool{risco: true, assiduo: true})

	// Turma sem nenhuma chamada: seus alunos não entram na lista de risco.
	semChamada := uuid.NewString()
	seedTurmaVazia(t, db, instrutor.ID, []string{semChamada})

	var corpo respostaInsights
	assert.Equal(t, http.StatusOK, getJSON(t, app, token, "/api/insights", &corpo))

	assert.Len(t, corpo.EmRisco, 1)
	assert.Equal(t, risco, corpo.EmRisco[0].AlunoID)
	assert.Equal(t, turma.ID, corpo.EmRisco[0].TurmaID)
	assert.InDelta(t, 50.0, corpo.EmRisco[0].TaxaPresenca, 0.01)
	for _, r := range corpo.EmRisco {
		assert.NotEqual(t, semChamada, r.AlunoID)
		assert.NotEqual(t, assiduo, r.AlunoID)
	}
}

func TestInsightsAgregamEvasoesPorCategoriaMotivoEMes(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	admin, token := testutil.CriarUsuario(t, db, "Admin", "admin@ios.org.br", userModel.TipoAdmin)

	hoje := time.Now().Format("2006-01-02")
	registrar := func(motivo, categoria, data string) {
		ev := evasaoModel.EvasaoModel{
			AlunoID:       uuid.NewString(),
			Motivo:        motivo,
			Categoria:     categoria,
			DataEvasao:    data,
			RegistradoPor: admin.ID,
		}
		assert.NoError(t, db.Create(&ev).Error)
	}
	registrar("trabalho", evasaoModel.CategoriaExterno, hoje)
	registrar("trabalho", evasaoModel.CategoriaExterno, hoje)
	registrar("saude", evasaoModel.CategoriaPessoal, "2024-01-15")

	var corpo respostaInsights
	assert.Equal(t, http.StatusOK, getJSON(t, app, token, "/api/insights", &corpo))

	assert.Equal(t, 3, corpo.TotalEvasoes)
	assert.Equal(t, 2, corpo.PorCategoria[evasaoModel.CategoriaExterno])
	assert.Equal(t, 1, corpo.PorCategoria[evasaoModel.CategoriaPessoal])
	assert.Equal(t, 2, corpo.PorMotivo["trabalho"])
	assert.Equal(t, 1, corpo.PorMotivo["saude"])
	assert.Equal(t, 2, corpo.PorMes[time.Now().Format("2006-01")])
	assert.Equal(t, 1, corpo.PorMes["2024-01"])

	// O recorte por período deixa a evasão antiga de fora.
	corpo = respostaInsights{}
	assert.Equal(t, http.StatusOK, getJSON(t, app, token, "/api/insights?periodo_dias=30", &corpo))
	assert.Equal(t, 2, corpo.TotalEvasoes)
	assert.Zero(t, corpo.PorMes["2024-01"])
}
