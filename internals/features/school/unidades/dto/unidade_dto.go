package dto

import (
	unidadeModel "classcheck_backend/internals/features/school/unidades/model"
)

type CreateUnidadeRequest struct {
	Nome        string  `json:"nome" validate:"required,min=2"`
	Endereco    string  `json:"endereco" validate:"required"`
	Telefone    *string `json:"telefone"`
	Responsavel *string `json:"responsavel"`
	Email       *string `json:"email" validate:"omitempty,email"`
}

func (r *CreateUnidadeRequest) ToModel() *unidadeModel.UnidadeModel {
	return &unidadeModel.UnidadeModel{
		Nome:        r.Nome,
		Endereco:    r.Endereco,
		Telefone:    r.Telefone,
		Responsavel: r.Responsavel,
		Email:       r.Email,
	}
}

type UpdateUnidadeRequest struct {
	Nome        *string `json:"nome" validate:"omitempty,min=2"`
	Endereco    *string `json:"endereco"`
	Telefone    *string `json:"telefone"`
	Responsavel *string `json:"responsavel"`
	Email       *string `json:"email" validate:"omitempty,email"`
}

func (r *UpdateUnidadeRequest) Changes() map[string]interface{} {
	ch := map[string]interface{}{}
	if r.Nome != nil {
		ch["nome"] = *r.Nome
	}
	if r.Endereco != nil {
		ch["endereco"] = *r.Endereco
	}
	if r.Telefone != nil {
		ch["telefone"] = *r.Telefone
	}
	if r.Responsavel != nil {
		ch["responsavel"] = *r.Responsavel
	}
	if r.Email != nil {
		ch["email"] = *r.Email
	}
	return ch
}
