package dto

type CreateEvasaoRequest struct {
	AlunoID    string `json:"id_aluno" validate:"required,uuid"`
	TurmaID    string `json:"turma_id" validate:"omitempty,uuid"`
	Motivo     string `json:"motivo" validate:"required,min=2,max=80"`
	Observacao string `json:"observacao" validate:"max=500"`
}
