package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UnidadeModel representa a tabela `unidades`
type UnidadeModel struct {
	ID       string `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	Nome     string `json:"nome" gorm:"column:nome;type:varchar(120);not null"`
	Endereco string `json:"endereco" gorm:"column:endereco;type:text;not null"`

	Telefone    *string `json:"telefone,omitempty" gorm:"column:telefone;type:varchar(20)"`
	Responsavel *string `json:"responsavel,omitempty" gorm:"column:responsavel;type:varchar(120)"`
	Email       *string `json:"email,omitempty" gorm:"column:email;type:varchar(160)"`

	Ativo     bool      `json:"ativo" gorm:"column:ativo;not null;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;not null;autoCreateTime"`
}

func (UnidadeModel) TableName() string {
	return "unidades"
}

func (u *UnidadeModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
