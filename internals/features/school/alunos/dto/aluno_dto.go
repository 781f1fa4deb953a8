package dto

import (
	"time"

	alunoModel "classcheck_backend/internals/features/school/alunos/model"
)

type CreateAlunoRequest struct {
	Nome           string  `json:"nome" validate:"required,min=3"`
	CPF            string  `json:"cpf" validate:"required,min=11,max=14"`
	DataNascimento string  `json:"data_nascimento" validate:"required,datetime=2006-01-02"`
	RG             *string `json:"rg"`
	Genero         *string `json:"genero"`
	Telefone       *string `json:"telefone"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Endereco       *string `json:"endereco"`

	NomeResponsavel     *string `json:"nome_responsavel"`
	TelefoneResponsavel *string `json:"telefone_responsavel"`
	Observacoes         *string `json:"observacoes"`
}

func (r *CreateAlunoRequest) ToModel() *alunoModel.AlunoModel {
	nascimento, _ := time.Parse("2006-01-02", r.DataNascimento)
	return &alunoModel.AlunoModel{
		Nome:                r.Nome,
		CPF:                 r.CPF,
		DataNascimento:      &nascimento,
		RG:                  r.RG,
		Genero:              r.Genero,
		Telefone:            r.Telefone,
		Email:               r.Email,
		Endereco:            r.Endereco,
		NomeResponsavel:     r.NomeResponsavel,
		TelefoneResponsavel: r.TelefoneResponsavel,
		Observacoes:         r.Observacoes,
	}
}

type UpdateAlunoRequest struct {
	Nome                *string `json:"nome" validate:"omitempty,min=3"`
	Telefone            *string `json:"telefone"`
	Email               *string `json:"email" validate:"omitempty,email"`
	Endereco            *string `json:"endereco"`
	NomeResponsavel     *string `json:"nome_responsavel"`
	TelefoneResponsavel *string `json:"telefone_responsavel"`
	Observacoes         *string `json:"observacoes"`
	Status              *string `json:"status" validate:"omitempty,oneof=ativo desistente concluido suspenso"`
}

func (r *UpdateAlunoRequest) Changes() map[string]interface{} {
	ch := map[string]interface{}{}
	if r.Nome != nil {
		ch["nome"] = *r.Nome
	}
	if r.Telefone != nil {
		ch["telefone"] = *r.Telefone
	}
	if r.Email != nil {
		ch["email"] = *r.Email
	}
	if r.Endereco != nil {
		ch["endereco"] = *r.Endereco
	}
	if r.NomeResponsavel != nil {
		ch["nome_responsavel"] = *r.NomeResponsavel
	}
	if r.TelefoneResponsavel != nil {
		ch["telefone_responsavel"] = *r.TelefoneResponsavel
	}
	if r.Observacoes != nil {
		ch["observacoes"] = *r.Observacoes
	}
	if r.Status != nil {
		ch["status"] = *r.Status
	}
	return ch
}
