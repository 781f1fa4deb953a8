package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Papéis aceitos no sistema
const (
	TipoAdmin     = "admin"
	TipoInstrutor = "instrutor"
	TipoPedagogo  = "pedagogo"
	TipoMonitor   = "monitor"
)

// Situação da conta
const (
	StatusAtivo    = "ativo"
	StatusPendente = "pendente"
	StatusInativo  = "inativo"
)

// UserModel representa a tabela `usuarios`
type UserModel struct {
	ID    string `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	Nome  string `json:"nome" gorm:"column:nome;type:varchar(120);not null"`
	Email string `json:"email" gorm:"column:email;type:varchar(160);not null;uniqueIndex"`
	Senha string `json:"-" gorm:"column:senha;type:text;not null"`

	// admin | instrutor | pedagogo | monitor
	Tipo string `json:"tipo" gorm:"column:tipo;type:varchar(20);not null"`

	Ativo          bool   `json:"ativo" gorm:"column:ativo;not null;default:true"`
	Status         string `json:"status" gorm:"column:status;type:varchar(20);not null;default:ativo"`
	PrimeiroAcesso bool   `json:"primeiro_acesso" gorm:"column:primeiro_acesso;not null;default:true"`

	// Instrutores/pedagogos/monitores carregam unidade e curso; admin não.
	UnidadeID *string `json:"unidade_id,omitempty" gorm:"column:unidade_id;type:uuid"`
	CursoID   *string `json:"curso_id,omitempty" gorm:"column:curso_id;type:uuid"`
	Telefone  *string `json:"telefone,omitempty" gorm:"column:telefone;type:varchar(20)"`

	CreatedAt time.Time  `json:"created_at" gorm:"column:created_at;not null;autoCreateTime"`
	LastLogin *time.Time `json:"last_login,omitempty" gorm:"column:last_login"`
}

func (UserModel) TableName() string {
	return "usuarios"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u *UserModel) IsAdmin() bool {
	return u.Tipo == TipoAdmin
}
