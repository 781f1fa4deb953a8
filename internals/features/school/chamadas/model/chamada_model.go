package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Presenca é o registro de um aluno dentro de uma chamada.
type Presenca struct {
	Presente      bool   `json:"presente"`
	Justificativa string `json:"justificativa"`
	AtestadoID    string `json:"atestado_id"`
	HoraRegistro  string `json:"hora_registro"`
}

// ChamadaModel representa a tabela `chamadas`. Uma chamada por turma por dia;
// registros são append-only.
type ChamadaModel struct {
	ID          string `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	TurmaID     string `json:"turma_id" gorm:"column:turma_id;type:uuid;not null;index:idx_chamadas_turma_data,unique"`
	InstrutorID string `json:"instrutor_id" gorm:"column:instrutor_id;type:uuid;not null"`

	// Data ISO "2006-01-02"; junto com turma_id forma a unicidade por dia.
	Data    string `json:"data" gorm:"column:data;type:varchar(10);not null;index:idx_chamadas_turma_data,unique"`
	Horario string `json:"horario" gorm:"column:horario;type:varchar(5);not null"`

	ObservacoesAula string `json:"observacoes_aula" gorm:"column:observacoes_aula;type:text"`

	// aluno_id -> {presente, justificativa, atestado_id, hora_registro}
	Presencas datatypes.JSONType[map[string]Presenca] `json:"presencas" gorm:"column:presencas"`

	TotalPresentes int `json:"total_presentes" gorm:"column:total_presentes;not null;default:0"`
	TotalFaltas    int `json:"total_faltas" gorm:"column:total_faltas;not null;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;not null;autoCreateTime"`
}

func (ChamadaModel) TableName() string {
	return "chamadas"
}

func (m *ChamadaModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
