package service

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

func HashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func ConferirSenha(hash, senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}

const tempAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"

// SenhaTemporaria gera a senha provisória usada no reset feito pelo admin.
func SenhaTemporaria(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(tempAlphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			b[i] = tempAlphabet[0]
			continue
		}
		b[i] = tempAlphabet[idx.Int64()]
	}
	return string(b)
}
