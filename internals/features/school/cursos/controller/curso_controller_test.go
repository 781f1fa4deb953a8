package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	cursoModel "classcheck_backend/internals/features/school/cursos/model"
	userModel "classcheck_backend/internals/features/users/users/model"
	"classcheck_backend/internals/testutil"
)

func criarCurso(t *testing.T, app *fiber.App, token, nome string) cursoModel.CursoModel {
	t.Helper()

	raw, err := json.Marshal(map[string]interface{}{
		"nome":          nome,
		"carga_horaria": 120,
	})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/courses/", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	testutil.Autorizar(req, token)

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var m cursoModel.CursoModel
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return m
}

func listarCursos(t *testing.T, app *fiber.App, token string) []cursoModel.CursoModel {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/courses/", nil)
	testutil.Autorizar(req, token)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var lista []cursoModel.CursoModel
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&lista))
	return lista
}

func TestDeleteCursoDesativaSemRemoverLinha(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	_, token := testutil.CriarUsuario(t, db, "Admin", "admin@ios.org.br", userModel.TipoAdmin)

	curso := criarCurso(t, app, token, "Logística")
	assert.Len(t, listarCursos(t, app, token), 1)

	req := httptest.NewRequest(http.MethodDelete, "/api/courses/"+curso.ID, nil)
	testutil.Autorizar(req, token)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A linha continua no banco, só desativada.
	var m cursoModel.CursoModel
	assert.NoError(t, db.Where("id = ?", curso.ID).First(&m).Error)
	assert.False(t, m.Ativo)

	// E some da listagem.
	assert.Empty(t, listarCursos(t, app, token))
}

func TestDeleteCursoExigeAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	_, admin := testutil.CriarUsuario(t, db, "Admin", "admin@ios.org.br", userModel.TipoAdmin)
	_, pedagogo := testutil.CriarUsuario(t, db, "Maria", "maria@ios.org.br", userModel.TipoPedagogo)

	curso := criarCurso(t, app, admin, "Administração")

	req := httptest.NewRequest(http.MethodDelete, "/api/courses/"+curso.ID, nil)
	testutil.Autorizar(req, pedagogo)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var m cursoModel.CursoModel
	assert.NoError(t, db.Where("id = ?", curso.ID).First(&m).Error)
	assert.True(t, m.Ativo)
}

func TestDeleteCursoInexistente(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	_, token := testutil.CriarUsuario(t, db, "Admin", "admin@ios.org.br", userModel.TipoAdmin)

	req := httptest.NewRequest(http.MethodDelete, "/api/courses/inexistente", nil)
	testutil.Autorizar(req, token)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
