package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	userModel "classcheck_backend/internals/features/users/users/model"
	"classcheck_backend/internals/testutil"
)

func login(t *testing.T, app *fiber.App, email, senha string) *http.Response {
	t.Helper()

	raw, err := json.Marshal(map[string]string{"email": email, "senha": senha})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func TestLoginDevolveTokenEUsuario(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	testutil.CriarUsuario(t, db, "João", "joao@ios.org.br", userModel.TipoInstrutor)

	resp := login(t, app, "joao@ios.org.br", "senha123")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var corpo struct {
		AccessToken string             `json:"access_token"`
		TokenType   string             `json:"token_type"`
		User        userModel.UserModel `json:"user"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&corpo))
	assert.NotEmpty(t, corpo.AccessToken)
	assert.Equal(t, "bearer", corpo.TokenType)
	assert.Equal(t, "joao@ios.org.br", corpo.User.Email)
	assert.Empty(t, corpo.User.Senha, "hash de senha nunca sai na resposta")
}

func TestLoginComSenhaErrada(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	testutil.CriarUsuario(t, db, "João", "joao@ios.org.br", userModel.TipoInstrutor)

	resp := login(t, app, "joao@ios.org.br", "senha-errada")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginBloqueiaCadastroPendente(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	user, _ := testutil.CriarUsuario(t, db, "Nova", "nova@ios.org.br", userModel.TipoPedagogo)
	assert.NoError(t, db.Model(user).Update("status", userModel.StatusPendente).Error)

	resp := login(t, app, "nova@ios.org.br", "senha123")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var corpo struct {
		Detail string `json:"detail"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&corpo))
	assert.Equal(t, "Cadastro aguardando aprovação do administrador", corpo.Detail)
}

func TestMeExigeToken(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMeComTokenValido(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	_, token := testutil.CriarUsuario(t, db, "João", "joao@ios.org.br", userModel.TipoInstrutor)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	testutil.Autorizar(req, token)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var devolvido userModel.UserModel
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&devolvido))
	assert.Equal(t, "joao@ios.org.br", devolvido.Email)
}

func TestFirstAccessNascePendente(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp(db)

	raw, err := json.Marshal(map[string]string{
		"nome":  "Carlos Souza",
		"email": "carlos@ios.org.br",
		"senha": "senha123",
		"tipo":  "instrutor",
	})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/first-access", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var user userModel.UserModel
	assert.NoError(t, db.Where("email = ?", "carlos@ios.org.br").First(&user).Error)
	assert.Equal(t, userModel.StatusPendente, user.Status)

	// pendente ainda não entra
	resp = login(t, app, "carlos@ios.org.br", "senha123")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
