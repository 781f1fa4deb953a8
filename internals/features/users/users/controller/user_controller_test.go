package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	userModel "classcheck_backend/internals/features/users/users/model"
	"classcheck_backend/internals/testutil"
)

func TestAprovarCadastroPendente(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	_, tokenAdmin := testutil.CriarUsuario(t, db, "Admin", "admin@ios.org.br", userModel.TipoAdmin)
	pendente, _ := testutil.CriarUsuario(t, db, "Nova", "nova@ios.org.br", userModel.TipoPedagogo)
	assert.NoError(t, db.Model(pendente).Update("status", userModel.StatusPendente).Error)

	req := httptest.NewRequest(http.MethodPut, "/api/users/"+pendente.ID+"/approve", nil)
	testutil.Autorizar(req, tokenAdmin)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var aprovado userModel.UserModel
	assert.NoError(t, db.Where("id = ?", pendente.ID).First(&aprovado).Error)
	assert.Equal(t, userModel.StatusAtivo, aprovado.Status)
	assert.True(t, aprovado.Ativo)

	// aprovar de novo falha
	req = httptest.NewRequest(http.MethodPut, "/api/users/"+pendente.ID+"/approve", nil)
	testutil.Autorizar(req, tokenAdmin)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAprovacaoExigeAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	_, token := testutil.CriarUsuario(t, db, "João", "joao@ios.org.br", userModel.TipoInstrutor)
	pendente, _ := testutil.CriarUsuario(t, db, "Nova", "nova@ios.org.br", userModel.TipoPedagogo)

	req := httptest.NewRequest(http.MethodPut, "/api/users/"+pendente.ID+"/approve", nil)
	testutil.Autorizar(req, token)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestResetPasswordDevolveSenhaTemporaria(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	_, tokenAdmin := testutil.CriarUsuario(t, db, "Admin", "admin@ios.org.br", userModel.TipoAdmin)
	alvo, _ := testutil.CriarUsuario(t, db, "João", "joao@ios.org.br", userModel.TipoInstrutor)

	req := httptest.NewRequest(http.MethodPost, "/api/users/"+alvo.ID+"/reset-password", nil)
	testutil.Autorizar(req, tokenAdmin)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var corpo struct {
		SenhaTemporaria string `json:"senha_temporaria"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&corpo))
	assert.Len(t, corpo.SenhaTemporaria, 10)

	var atualizado userModel.UserModel
	assert.NoError(t, db.Where("id = ?", alvo.ID).First(&atualizado).Error)
	assert.True(t, atualizado.PrimeiroAcesso, "conta volta a exigir troca de senha")

	// senha antiga deixa de valer
	raw, _ := json.Marshal(map[string]string{"email": "joao@ios.org.br", "senha": "senha123"})
	loginReq := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(raw))
	loginReq.Header.Set("Content-Type", "application/json")
	loginResp, err := app.Test(loginReq, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, loginResp.StatusCode)
}

func TestAdminNaoDesativaAPropriaConta(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	admin, tokenAdmin := testutil.CriarUsuario(t, db, "Admin", "admin@ios.org.br", userModel.TipoAdmin)

	req := httptest.NewRequest(http.MethodDelete, "/api/users/"+admin.ID, nil)
	testutil.Autorizar(req, tokenAdmin)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteUsuarioDesativaSemRemoverLinha(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	_, tokenAdmin := testutil.CriarUsuario(t, db, "Admin", "admin@ios.org.br", userModel.TipoAdmin)
	alvo, _ := testutil.CriarUsuario(t, db, "João", "joao@ios.org.br", userModel.TipoInstrutor)

	req := httptest.NewRequest(http.MethodDelete, "/api/users/"+alvo.ID, nil)
	testutil.Autorizar(req, tokenAdmin)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A linha continua no banco, só desativada.
	var m userModel.UserModel
	assert.NoError(t, db.Where("id = ?", alvo.ID).First(&m).Error)
	assert.False(t, m.Ativo)
	assert.Equal(t, userModel.StatusInativo, m.Status)
}
