package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DiasAulaPadrao é o conjunto de dias de aula usado quando o curso não define o seu.
var DiasAulaPadrao = []string{"segunda", "terca", "quarta", "quinta"}

// CursoModel representa a tabela `cursos`
type CursoModel struct {
	ID   string `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	Nome string `json:"nome" gorm:"column:nome;type:varchar(120);not null"`

	Descricao     *string `json:"descricao,omitempty" gorm:"column:descricao;type:text"`
	CargaHoraria  int     `json:"carga_horaria" gorm:"column:carga_horaria;not null"`
	Categoria     *string `json:"categoria,omitempty" gorm:"column:categoria;type:varchar(60)"`
	PreRequisitos *string `json:"pre_requisitos,omitempty" gorm:"column:pre_requisitos;type:text"`

	// Dias da semana em que o curso tem aula ("segunda".."domingo")
	DiasAula datatypes.JSONSlice[string] `json:"dias_aula" gorm:"column:dias_aula"`

	Ativo     bool      `json:"ativo" gorm:"column:ativo;not null;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;not null;autoCreateTime"`
}

func (CursoModel) TableName() string {
	return "cursos"
}

func (m *CursoModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if len(m.DiasAula) == 0 {
		m.DiasAula = datatypes.NewJSONSlice(DiasAulaPadrao)
	}
	return nil
}
