package dto

import (
	"gorm.io/datatypes"

	cursoModel "classcheck_backend/internals/features/school/cursos/model"
)

type CreateCursoRequest struct {
	Nome          string   `json:"nome" validate:"required,min=2"`
	Descricao     *string  `json:"descricao"`
	CargaHoraria  int      `json:"carga_horaria" validate:"required,gt=0"`
	Categoria     *string  `json:"categoria"`
	PreRequisitos *string  `json:"pre_requisitos"`
	DiasAula      []string `json:"dias_aula" validate:"omitempty,dive,oneof=segunda terca quarta quinta sexta sabado domingo"`
}

func (r *CreateCursoRequest) ToModel() *cursoModel.CursoModel {
	return &cursoModel.CursoModel{
		Nome:          r.Nome,
		Descricao:     r.Descricao,
		CargaHoraria:  r.CargaHoraria,
		Categoria:     r.Categoria,
		PreRequisitos: r.PreRequisitos,
		DiasAula:      datatypes.NewJSONSlice(r.DiasAula),
	}
}

type UpdateCursoRequest struct {
	Nome          *string  `json:"nome" validate:"omitempty,min=2"`
	Descricao     *string  `json:"descricao"`
	CargaHoraria  *int     `json:"carga_horaria" validate:"omitempty,gt=0"`
	Categoria     *string  `json:"categoria"`
	PreRequisitos *string  `json:"pre_requisitos"`
	DiasAula      []string `json:"dias_aula" validate:"omitempty,dive,oneof=segunda terca quarta quinta sexta sabado domingo"`
}

func (r *UpdateCursoRequest) Changes() map[string]interface{} {
	ch := map[string]interface{}{}
	if r.Nome != nil {
		ch["nome"] = *r.Nome
	}
	if r.Descricao != nil {
		ch["descricao"] = *r.Descricao
	}
	if r.CargaHoraria != nil {
		ch["carga_horaria"] = *r.CargaHoraria
	}
	if r.Categoria != nil {
		ch["categoria"] = *r.Categoria
	}
	if r.PreRequisitos != nil {
		ch["pre_requisitos"] = *r.PreRequisitos
	}
	if r.DiasAula != nil {
		ch["dias_aula"] = datatypes.NewJSONSlice(r.DiasAula)
	}
	return ch
}
