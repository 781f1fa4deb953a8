package dto

import (
	"time"

	"gorm.io/datatypes"

	turmaModel "classcheck_backend/internals/features/school/turmas/model"
)

type CreateTurmaRequest struct {
	Nome        string  `json:"nome" validate:"required,min=2"`
	UnidadeID   string  `json:"unidade_id" validate:"required,uuid"`
	CursoID     string  `json:"curso_id" validate:"required,uuid"`
	InstrutorID string  `json:"instrutor_id" validate:"required,uuid"`
	PedagogoID  *string `json:"pedagogo_id" validate:"omitempty,uuid"`
	MonitorID   *string `json:"monitor_id" validate:"omitempty,uuid"`

	DataInicio string `json:"data_inicio" validate:"required,datetime=2006-01-02"`
	DataFim    string `json:"data_fim" validate:"required,datetime=2006-01-02"`

	HorarioInicio string `json:"horario_inicio" validate:"required,datetime=15:04"`
	HorarioFim    string `json:"horario_fim" validate:"required,datetime=15:04"`

	DiasSemana []string `json:"dias_semana" validate:"required,min=1,dive,oneof=segunda terca quarta quinta sexta sabado domingo"`

	VagasTotal int     `json:"vagas_total" validate:"omitempty,gt=0"`
	Ciclo      *string `json:"ciclo"`
}

func (r *CreateTurmaRequest) ToModel() *turmaModel.TurmaModel {
	inicio, _ := time.Parse("2006-01-02", r.DataInicio)
	fim, _ := time.Parse("2006-01-02", r.DataFim)

	vagas := r.VagasTotal
	if vagas == 0 {
		vagas = 30
	}

	return &turmaModel.TurmaModel{
		Nome:          r.Nome,
		UnidadeID:     r.UnidadeID,
		CursoID:       r.CursoID,
		InstrutorID:   r.InstrutorID,
		PedagogoID:    r.PedagogoID,
		MonitorID:     r.MonitorID,
		DataInicio:    inicio,
		DataFim:       fim,
		HorarioInicio: r.HorarioInicio,
		HorarioFim:    r.HorarioFim,
		DiasSemana:    datatypes.NewJSONSlice(r.DiasSemana),
		VagasTotal:    vagas,
		Ciclo:         r.Ciclo,
	}
}

type UpdateTurmaRequest struct {
	Nome          *string  `json:"nome" validate:"omitempty,min=2"`
	DataInicio    *string  `json:"data_inicio" validate:"omitempty,datetime=2006-01-02"`
	DataFim       *string  `json:"data_fim" validate:"omitempty,datetime=2006-01-02"`
	HorarioInicio *string  `json:"horario_inicio" validate:"omitempty,datetime=15:04"`
	HorarioFim    *string  `json:"horario_fim" validate:"omitempty,datetime=15:04"`
	DiasSemana    []string `json:"dias_semana" validate:"omitempty,dive,oneof=segunda terca quarta quinta sexta sabado domingo"`
	VagasTotal    *int     `json:"vagas_total" validate:"omitempty,gt=0"`
	Ciclo         *string  `json:"ciclo"`
}

func (r *UpdateTurmaRequest) Changes() map[string]interface{} {
	ch := map[string]interface{}{}
	if r.Nome != nil {
		ch["nome"] = *r.Nome
	}
	if r.DataInicio != nil {
		if d, err := time.Parse("2006-01-02", *r.DataInicio); err == nil {
			ch["data_inicio"] = d
		}
	}
	if r.DataFim != nil {
		if d, err := time.Parse("2006-01-02", *r.DataFim); err == nil {
			ch["data_fim"] = d
		}
	}
	if r.HorarioInicio != nil {
		ch["horario_inicio"] = *r.HorarioInicio
	}
	if r.HorarioFim != nil {
		ch["horario_fim"] = *r.HorarioFim
	}
	if r.DiasSemana != nil {
		ch["dias_semana"] = datatypes.NewJSONSlice(r.DiasSemana)
	}
	if r.VagasTotal != nil {
		ch["vagas_total"] = *r.VagasTotal
	}
	if r.Ciclo != nil {
		ch["ciclo"] = *r.Ciclo
	}
	return ch
}
