package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status possíveis de um aluno. Alunos nunca são apagados: eles transitam
// entre estes estados.
const (
	StatusAtivo      = "ativo"
	StatusDesistente = "desistente"
	StatusConcluido  = "concluido"
	StatusSuspenso   = "suspenso"
)

func StatusValido(s string) bool {
	switch s {
	case StatusAtivo, StatusDesistente, StatusConcluido, StatusSuspenso:
		return true
	}
	return false
}

// AlunoModel representa a tabela `alunos`
type AlunoModel struct {
	ID   string `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	Nome string `json:"nome" gorm:"column:nome;type:varchar(160);not null"`
	CPF  string `json:"cpf" gorm:"column:cpf;type:varchar(14);not null;uniqueIndex"`

	DataNascimento *time.Time `json:"data_nascimento,omitempty" gorm:"column:data_nascimento;type:date"`
	RG             *string    `json:"rg,omitempty" gorm:"column:rg;type:varchar(20)"`
	Genero         *string    `json:"genero,omitempty" gorm:"column:genero;type:varchar(20)"`
	Telefone       *string    `json:"telefone,omitempty" gorm:"column:telefone;type:varchar(20)"`
	Email          *string    `json:"email,omitempty" gorm:"column:email;type:varchar(160)"`
	Endereco       *string    `json:"endereco,omitempty" gorm:"column:endereco;type:text"`

	NomeResponsavel     *string `json:"nome_responsavel,omitempty" gorm:"column:nome_responsavel;type:varchar(160)"`
	TelefoneResponsavel *string `json:"telefone_responsavel,omitempty" gorm:"column:telefone_responsavel;type:varchar(20)"`
	Observacoes         *string `json:"observacoes,omitempty" gorm:"column:observacoes;type:text"`

	Ativo     bool      `json:"ativo" gorm:"column:ativo;not null;default:true"`
	Status    string    `json:"status" gorm:"column:status;type:varchar(20);not null;default:ativo"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;not null;autoCreateTime"`
}

func (AlunoModel) TableName() string {
	return "alunos"
}

func (m *AlunoModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
