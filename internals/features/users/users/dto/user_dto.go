package dto

import (
	userModel "classcheck_backend/internals/features/users/users/model"
)

type CreateUserRequest struct {
	Nome      string  `json:"nome" validate:"required,min=3"`
	Email     string  `json:"email" validate:"required,email"`
	Tipo      string  `json:"tipo" validate:"required,oneof=admin instrutor pedagogo monitor"`
	UnidadeID *string `json:"unidade_id"`
	CursoID   *string `json:"curso_id"`
	Telefone  *string `json:"telefone"`
}

func (r *CreateUserRequest) ToModel() *userModel.UserModel {
	return &userModel.UserModel{
		Nome:      r.Nome,
		Email:     r.Email,
		Tipo:      r.Tipo,
		UnidadeID: r.UnidadeID,
		CursoID:   r.CursoID,
		Telefone:  r.Telefone,
	}
}

type UpdateUserRequest struct {
	Nome      *string `json:"nome" validate:"omitempty,min=3"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Telefone  *string `json:"telefone"`
	Ativo     *bool   `json:"ativo"`
	UnidadeID *string `json:"unidade_id"`
	CursoID   *string `json:"curso_id"`
}

// Changes monta o map de colunas alteradas; ponteiro nulo = campo não enviado.
func (r *UpdateUserRequest) Changes() map[string]interface{} {
	ch := map[string]interface{}{}
	if r.Nome != nil {
		ch["nome"] = *r.Nome
	}
	if r.Email != nil {
		ch["email"] = *r.Email
	}
	if r.Telefone != nil {
		ch["telefone"] = *r.Telefone
	}
	if r.Ativo != nil {
		ch["ativo"] = *r.Ativo
	}
	if r.UnidadeID != nil {
		ch["unidade_id"] = *r.UnidadeID
	}
	if r.CursoID != nil {
		ch["curso_id"] = *r.CursoID
	}
	return ch
}
