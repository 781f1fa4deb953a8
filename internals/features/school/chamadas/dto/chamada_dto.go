package dto

// PresencaRequest é o registro enviado pelo operador para um aluno.
type PresencaRequest struct {
	Presente      bool   `json:"presente"`
	Justificativa string `json:"justificativa"`
	AtestadoID    string `json:"atestado_id"`
}

type CreateChamadaRequest struct {
	TurmaID         string                     `json:"turma_id" validate:"required,uuid"`
	Data            string                     `json:"data" validate:"required,datetime=2006-01-02"`
	Horario         string                     `json:"horario" validate:"required,datetime=15:04"`
	ObservacoesAula string                     `json:"observacoes_aula"`
	Presencas       map[string]PresencaRequest `json:"presencas" validate:"required,min=1"`
}
