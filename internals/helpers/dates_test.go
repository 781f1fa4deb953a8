package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNomeDia(t *testing.T) {
	casos := []struct {
		data time.Time
		nome string
	}{
		{time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "segunda"},
		{time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), "terca"},
		{time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), "quarta"},
		{time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), "quinta"},
		{time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), "sexta"},
		{time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), "sabado"},
		{time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), "domingo"},
	}
	for _, caso := range casos {
		assert.Equal(t, caso.nome, NomeDia(caso.data))
	}
}

func TestEhDiaDeAula(t *testing.T) {
	dias := []string{"segunda", "quarta"}

	segunda := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	terca := segunda.AddDate(0, 0, 1)

	assert.True(t, EhDiaDeAula(segunda, dias))
	assert.False(t, EhDiaDeAula(terca, dias))
	assert.False(t, EhDiaDeAula(segunda, nil))
}

func TestFormatosDeDataEHora(t *testing.T) {
	instante := time.Date(2025, 3, 10, 8, 5, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-10", DateOnly(instante))
	assert.Equal(t, "08:05", HoraMinuto(instante))
}
