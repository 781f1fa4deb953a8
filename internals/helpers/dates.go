package helper

import "time"

// Nomes dos dias usados em cursos.dias_aula e turmas.dias_semana.
var diasSemana = map[time.Weekday]string{
	time.Monday:    "segunda",
	time.Tuesday:   "terca",
	time.Wednesday: "quarta",
	time.Thursday:  "quinta",
	time.Friday:    "sexta",
	time.Saturday:  "sabado",
	time.Sunday:    "domingo",
}

func NomeDia(d time.Time) string {
	return diasSemana[d.Weekday()]
}

// EhDiaDeAula verifica se a data cai em um dos dias de aula configurados.
func EhDiaDeAula(data time.Time, diasAula []string) bool {
	nome := NomeDia(data)
	for _, d := range diasAula {
		if d == nome {
			return true
		}
	}
	return false
}

// DateOnly formata a data no padrão ISO usado no campo `data` das chamadas.
func DateOnly(t time.Time) string {
	return t.Format("2006-01-02")
}

// HoraMinuto formata o horário "HH:MM" usado em chamadas e turmas.
func HoraMinuto(t time.Time) string {
	return t.Format("15:04")
}
