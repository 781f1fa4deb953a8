package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	unidadeModel "classcheck_backend/internals/features/school/unidades/model"
	userModel "classcheck_backend/internals/features/users/users/model"
	"classcheck_backend/internals/testutil"
)

func criarUnidade(t *testing.T, app *fiber.App, token, nome string) unidadeModel.UnidadeModel {
	t.Helper()

	raw, err := json.Marshal(map[string]interface{}{
		"nome":     nome,
		"endereco": "Rua das Flores, 100",
	})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/units/", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	testutil.Autorizar(req, token)

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var m unidadeModel.UnidadeModel
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return m
}

func listarUnidades(t *testing.T, app *fiber.App, token string) []unidadeModel.UnidadeModel {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/units/", nil)
	testutil.Autorizar(req, token)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var lista []unidadeModel.UnidadeModel
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&lista))
	return lista
}

func TestDeleteUnidadeDesativaSemRemoverLinha(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	_, token := testutil.CriarUsuario(t, db, "Admin", "admin@ios.org.br", userModel.TipoAdmin)

	unidade := criarUnidade(t, app, token, "Unidade Centro")
	assert.Len(t, listarUnidades(t, app, token), 1)

	req := httptest.NewRequest(http.MethodDelete, "/api/units/"+unidade.ID, nil)
	testutil.Autorizar(req, token)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A linha continua no banco, só desativada.
	var m unidadeModel.UnidadeModel
	assert.NoError(t, db.Where("id = ?", unidade.ID).First(&m).Error)
	assert.False(t, m.Ativo)

	// E some da listagem.
	assert.Empty(t, listarUnidades(t, app, token))
}

func TestDeleteUnidadeExigeAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	_, admin := testutil.CriarUsuario(t, db, "Admin", "admin@ios.org.br", userModel.TipoAdmin)
	_, instrutor := testutil.CriarUsuario(t, db, "João", "joao@ios.org.br", userModel.TipoInstrutor)

	unidade := criarUnidade(t, app, admin, "Unidade Norte")

	req := httptest.NewRequest(http.MethodDelete, "/api/units/"+unidade.ID, nil)
	testutil.Autorizar(req, instrutor)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var m unidadeModel.UnidadeModel
	assert.NoError(t, db.Where("id = ?", unidade.ID).First(&m).Error)
	assert.True(t, m.Ativo)
}

func TestDeleteUnidadeInexistente(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	_, token := testutil.CriarUsuario(t, db, "Admin", "admin@ios.org.br", userModel.TipoAdmin)

	req := httptest.NewRequest(http.MethodDelete, "/api/units/inexistente", nil)
	testutil.Autorizar(req, token)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
