package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TurmaModel representa a tabela `turmas`
type TurmaModel struct {
	ID   string `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	Nome string `json:"nome" gorm:"column:nome;type:varchar(120);not null"`

	UnidadeID   string  `json:"unidade_id" gorm:"column:unidade_id;type:uuid;not null"`
	CursoID     string  `json:"curso_id" gorm:"column:curso_id;type:uuid;not null"`
	InstrutorID string  `json:"instrutor_id" gorm:"column:instrutor_id;type:uuid;not null"`
	PedagogoID  *string `json:"pedagogo_id,omitempty" gorm:"column:pedagogo_id;type:uuid"`
	MonitorID   *string `json:"monitor_id,omitempty" gorm:"column:monitor_id;type:uuid"`

	// Matrículas: lista ordenada de ids de alunos
	AlunosIDs datatypes.JSONSlice[string] `json:"alunos_ids" gorm:"column:alunos_ids"`

	DataInicio time.Time `json:"data_inicio" gorm:"column:data_inicio;type:date;not null"`
	DataFim    time.Time `json:"data_fim" gorm:"column:data_fim;type:date;not null"`

	HorarioInicio string `json:"horario_inicio" gorm:"column:horario_inicio;type:varchar(5);not null"` // "08:00"
	HorarioFim    string `json:"horario_fim" gorm:"column:horario_fim;type:varchar(5);not null"`       // "17:00"

	DiasSemana datatypes.JSONSlice[string] `json:"dias_semana" gorm:"column:dias_semana"`

	VagasTotal    int `json:"vagas_total" gorm:"column:vagas_total;not null;default:30"`
	VagasOcupadas int `json:"vagas_ocupadas" gorm:"column:vagas_ocupadas;not null;default:0"`

	// Rótulo de período, ex: "01/2025"
	Ciclo *string `json:"ciclo,omitempty" gorm:"column:ciclo;type:varchar(20)"`

	Ativo     bool      `json:"ativo" gorm:"column:ativo;not null;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;not null;autoCreateTime"`
}

func (TurmaModel) TableName() string {
	return "turmas"
}

func (m *TurmaModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// TemVaga informa se ainda cabe aluno na turma.
func (m *TurmaModel) TemVaga() bool {
	return len(m.AlunosIDs) < m.VagasTotal
}

// Matriculado informa se o aluno já está na turma.
func (m *TurmaModel) Matriculado(alunoID string) bool {
	for _, id := range m.AlunosIDs {
		if id == alunoID {
			return true
		}
	}
	return false
}
