package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	alunoModel "classcheck_backend/internals/features/school/alunos/model"
	evasaoModel "classcheck_backend/internals/features/school/evasoes/model"
	userModel "classcheck_backend/internals/features/users/users/model"
	"classcheck_backend/internals/testutil"
)

func criarAluno(t *testing.T, db *gorm.DB, status string) *alunoModel.AlunoModel {
	t.Helper()
	aluno := &alunoModel.AlunoModel{
		Nome:   "Maria",
		CPF:    uuid.NewString()[:14],
		Status: status,
	}
	assert.NoError(t, db.Create(aluno).Error)
	return aluno
}

func postEvasao(t *testing.T, app *fiber.App, token string, payload map[string]interface{}) *http.Response {
	t.Helper()

	raw, err := json.Marshal(payload)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/evasoes/", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	testutil.Autorizar(req, token)

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func TestRegistrarEvasaoViraStatusDesistente(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	registrador, token := testutil.CriarUsuario(t, db, "Paula", "paula@ios.org.br", userModel.TipoPedagogo)
	aluno := criarAluno(t, db, alunoModel.StatusAtivo)

	resp := postEvasao(t, app, token, map[string]interface{}{
		"id_aluno":   aluno.ID,
		"motivo":     "trabalho",
		"observacao": "conseguiu estágio no período da aula",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var atualizado alunoModel.AlunoModel
	assert.NoError(t, db.Where("id = ?", aluno.ID).First(&atualizado).Error)
	assert.Equal(t, alunoModel.StatusDesistente, atualizado.Status)

	var evasao evasaoModel.EvasaoModel
	assert.NoError(t, db.Where("aluno_id = ?", aluno.ID).First(&evasao).Error)
	assert.Equal(t, "trabalho", evasao.Motivo)
	assert.Equal(t, evasaoModel.CategoriaExterno, evasao.Categoria, "categoria vem do catálogo")
	assert.Equal(t, registrador.ID, evasao.RegistradoPor)
	assert.NotEmpty(t, evasao.DataEvasao)
}

func TestRegistrarEvasaoDeDesistenteFalha(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	_, token := testutil.CriarUsuario(t, db, "Paula", "paula@ios.org.br", userModel.TipoAdmin)
	aluno := criarAluno(t, db, alunoModel.StatusDesistente)

	resp := postEvasao(t, app, token, map[string]interface{}{
		"id_aluno": aluno.ID,
		"motivo":   "trabalho",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var total int64
	assert.NoError(t, db.Model(&evasaoModel.EvasaoModel{}).Count(&total).Error)
	assert.Zero(t, total)
}

func TestMotivoForaDoCatalogoCaiEmDesconhecido(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	_, token := testutil.CriarUsuario(t, db, "Paula", "paula@ios.org.br", userModel.TipoInstrutor)
	aluno := criarAluno(t, db, alunoModel.StatusAtivo)

	resp := postEvasao(t, app, token, map[string]interface{}{
		"id_aluno": aluno.ID,
		"motivo":   "motivo inventado",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var evasao evasaoModel.EvasaoModel
	assert.NoError(t, db.Where("aluno_id = ?", aluno.ID).First(&evasao).Error)
	assert.Equal(t, evasaoModel.CategoriaDesconhecido, evasao.Categoria)
}

func TestMonitorNaoRegistraEvasao(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	_, token := testutil.CriarUsuario(t, db, "Mono", "mono@ios.org.br", userModel.TipoMonitor)
	aluno := criarAluno(t, db, alunoModel.StatusAtivo)

	resp := postEvasao(t, app, token, map[string]interface{}{
		"id_aluno": aluno.ID,
		"motivo":   "trabalho",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestListarMotivosTrazCatalogoSemeado(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	_, token := testutil.CriarUsuario(t, db, "Paula", "paula@ios.org.br", userModel.TipoAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/motivos-evasao", nil)
	testutil.Autorizar(req, token)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var motivos []evasaoModel.MotivoEvasaoModel
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&motivos))
	assert.GreaterOrEqual(t, len(motivos), 10)

	ids := map[string]bool{}
	for _, m := range motivos {
		ids[m.ID] = true
	}
	assert.True(t, ids["trabalho"])
	assert.True(t, ids["desconhecido"])
}

func TestListarEvasoesFiltraPorCategoria(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	_, token := testutil.CriarUsuario(t, db, "Paula", "paula@ios.org.br", userModel.TipoAdmin)

	a1 := criarAluno(t, db, alunoModel.StatusAtivo)
	a2 := criarAluno(t, db, alunoModel.StatusAtivo)

	resp := postEvasao(t, app, token, map[string]interface{}{"id_aluno": a1.ID, "motivo": "trabalho"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = postEvasao(t, app, token, map[string]interface{}{"id_aluno": a2.ID, "motivo": "saude"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/evasoes/?categoria=pessoal", nil)
	testutil.Autorizar(req, token)
	httpResp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, httpResp.StatusCode)

	var evasoes []evasaoModel.EvasaoModel
	assert.NoError(t, json.NewDecoder(httpResp.Body).Decode(&evasoes))
	assert.Len(t, evasoes, 1)
	assert.Equal(t, a2.ID, evasoes[0].AlunoID)
}
