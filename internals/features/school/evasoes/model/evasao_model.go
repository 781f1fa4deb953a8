package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Categorias de evasão
const (
	CategoriaExterno      = "externo"
	CategoriaInterno      = "interno"
	CategoriaPessoal      = "pessoal"
	CategoriaFinanceiro   = "financeiro"
	CategoriaDesconhecido = "desconhecido"
)

// EvasaoModel representa a tabela `evasoes`. Registros são append-only:
// um por transição do aluno para o status desistente.
type EvasaoModel struct {
	ID      string  `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	AlunoID string  `json:"id_aluno" gorm:"column:aluno_id;type:uuid;not null;index"`
	TurmaID *string `json:"turma_id,omitempty" gorm:"column:turma_id;type:uuid"`

	Motivo    string `json:"motivo" gorm:"column:motivo;type:varchar(120);not null"`
	Categoria string `json:"categoria" gorm:"column:categoria;type:varchar(20);not null"`

	Observacao *string `json:"observacao,omitempty" gorm:"column:observacao;type:text"`

	DataEvasao     string `json:"data_evasao" gorm:"column:data_evasao;type:varchar(10);not null"`
	RegistradoPor  string `json:"registrado_por" gorm:"column:registrado_por;type:uuid;not null"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;not null;autoCreateTime"`
}

func (EvasaoModel) TableName() string {
	return "evasoes"
}

func (m *EvasaoModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// MotivoEvasaoModel é o catálogo de motivos exposto em /api/motivos-evasao.
type MotivoEvasaoModel struct {
	ID        string `json:"id" gorm:"column:id;type:varchar(60);primaryKey"`
	Label     string `json:"label" gorm:"column:label;type:varchar(120);not null"`
	Categoria string `json:"categoria" gorm:"column:categoria;type:varchar(20);not null"`
}

func (MotivoEvasaoModel) TableName() string {
	return "motivos_evasao"
}

var motivosPadrao = []MotivoEvasaoModel{
	{ID: "trabalho", Label: "Conseguiu trabalho", Categoria: CategoriaExterno},
	{ID: "mudanca", Label: "Mudança de cidade", Categoria: CategoriaExterno},
	{ID: "transporte", Label: "Dificuldade de transporte", Categoria: CategoriaExterno},
	{ID: "desinteresse", Label: "Desinteresse pelo curso", Categoria: CategoriaInterno},
	{ID: "dificuldade_conteudo", Label: "Dificuldade com o conteúdo", Categoria: CategoriaInterno},
	{ID: "conflito_horario", Label: "Conflito de horário", Categoria: CategoriaInterno},
	{ID: "saude", Label: "Problemas de saúde", Categoria: CategoriaPessoal},
	{ID: "familia", Label: "Questões familiares", Categoria: CategoriaPessoal},
	{ID: "financeiro", Label: "Dificuldade financeira", Categoria: CategoriaFinanceiro},
	{ID: "desconhecido", Label: "Motivo desconhecido", Categoria: CategoriaDesconhecido},
}

// SeedMotivos garante o catálogo mínimo de motivos.
func SeedMotivos(db *gorm.DB) error {
	for _, m := range motivosPadrao {
		var existente MotivoEvasaoModel
		err := db.Where("id = ?", m.ID).First(&existente).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&m).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// CategoriaDoMotivo resolve a categoria a partir do catálogo; motivos fora
// do catálogo caem em "desconhecido".
func CategoriaDoMotivo(db *gorm.DB, motivo string) string {
	var m MotivoEvasaoModel
	if err := db.Where("id = ? OR label = ?", motivo, motivo).First(&m).Error; err == nil {
		return m.Categoria
	}
	return CategoriaDesconhecido
}
