// Package testutil concentra o bootstrap dos testes de API: banco sqlite
// em memória migrado, app Fiber com as rotas reais e fábrica de usuários
// autenticados.
package testutil

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"classcheck_backend/internals/configs"
	database "classcheck_backend/internals/databases"
	authService "classcheck_backend/internals/features/users/auth/service"
	userModel "classcheck_backend/internals/features/users/users/model"
	routes "classcheck_backend/internals/route"
)

var dbSeq atomic.Int64

// NewDB abre um sqlite em memória exclusivo do teste, já migrado.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:teste%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	assert.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// NewApp monta o app Fiber com todas as rotas reais sobre o banco dado.
func NewApp(db *gorm.DB) *fiber.App {
	configs.JWTSecret = "segredo-de-teste"
	app := fiber.New()
	routes.SetupRoutes(app, db)
	return app
}

// CriarUsuario grava um usuário ativo e devolve o modelo e um bearer
// token válido para ele.
func CriarUsuario(t *testing.T, db *gorm.DB, nome, email, tipo string) (*userModel.UserModel, string) {
	t.Helper()
	configs.JWTSecret = "segredo-de-teste"

	hash, err := authService.HashSenha("senha123")
	assert.NoError(t, err)

	user := &userModel.UserModel{
		Nome:   nome,
		Email:  email,
		Senha:  hash,
		Tipo:   tipo,
		Ativo:  true,
		Status: userModel.StatusAtivo,
	}
	assert.NoError(t, db.Create(user).Error)

	token, err := authService.GerarToken(email)
	assert.NoError(t, err)
	return user, token
}

// Autorizar adiciona o bearer token na requisição.
func Autorizar(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
