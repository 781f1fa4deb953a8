package service

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"classcheck_backend/internals/configs"
)

const accessTTL = 24 * time.Hour

// GerarToken emite o bearer token de acesso. O `sub` carrega o e-mail.
func GerarToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"sub": email,
		"exp": time.Now().UTC().Add(accessTTL).Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
