package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Estados do fluxo de chamada.
type EstadoChamada int

const (
	EstadoOcioso EstadoChamada = iota
	EstadoCarregandoRoster
	EstadoRosterPronto
	EstadoValidando
	EstadoEnviando
	EstadoConcluido
)

func (e EstadoChamada) String() string {
	switch e {
	case EstadoOcioso:
		return "ocioso"
	case EstadoCarregandoRoster:
		return "carregando_roster"
	case EstadoRosterPronto:
		return "roster_pronto"
	case EstadoValidando:
		return "validando"
	case EstadoEnviando:
		return "enviando"
	case EstadoConcluido:
		return "concluido"
	default:
		return "desconhecido"
	}
}

var (
	ErrSemTurmaSelecionada = errors.New("nenhuma turma selecionada")
	ErrAlunoForaDoRoster   = errors.New("aluno não está no roster carregado")
	ErrFluxoOcupado        = errors.New("já existe uma operação de chamada em andamento")
)

// sobrescrito nos testes para fixar o relógio
var agora = time.Now

// RegistroPresenca é o estado local de um aluno antes do envio.
type RegistroPresenca struct {
	Presente      bool
	Justificativa string
	AtestadoID    string
}

// FluxoChamada conduz a chamada de uma turma do carregamento do roster até
// o envio. Marcações são locais até Enviar: nada toca a rede no meio do
// caminho. O conjunto de turmas já enviadas vive só nesta sessão e serve
// de açúcar de UX; quem barra duplicata de verdade é o servidor.
type FluxoChamada struct {
	mu sync.Mutex

	api *Client

	estado    EstadoChamada
	turmaID   string
	roster    []Aluno
	presencas map[string]RegistroPresenca

	observacoes string

	enviadasNaSessao map[string]struct{}
}

func NovoFluxoChamada(api *Client) *FluxoChamada {
	return &FluxoChamada{
		api:              api,
		estado:           EstadoOcioso,
		enviadasNaSessao: map[string]struct{}{},
	}
}

// Estado devolve o estado corrente do fluxo.
func (f *FluxoChamada) Estado() EstadoChamada {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.estado
}

// TurmasSelecionaveis filtra as turmas já enviadas nesta sessão.
func (f *FluxoChamada) TurmasSelecionaveis(ctx context.Context) ([]Turma, error) {
	turmas, err := f.api.ListTurmas(ctx)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	selecionaveis := make([]Turma, 0, len(turmas))
	for _, t := range turmas {
		if _, enviada := f.enviadasNaSessao[t.ID]; !enviada {
			selecionaveis = append(selecionaveis, t)
		}
	}
	return selecionaveis, nil
}

// SelecionarTurma carrega o roster da turma e marca todo mundo presente
// por padrão; o operador só toca em quem faltou.
func (f *FluxoChamada) SelecionarTurma(ctx context.Context, turmaID string) error {
	f.mu.Lock()
	if f.estado == EstadoCarregandoRoster || f.estado == EstadoEnviando {
		f.mu.Unlock()
		return ErrFluxoOcupado
	}
	f.estado = EstadoCarregandoRoster
	f.turmaID = turmaID
	f.mu.Unlock()

	roster, err := f.api.Roster(ctx, turmaID)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.estado = EstadoOcioso
		f.turmaID = ""
		return err
	}

	f.roster = roster
	f.presencas = make(map[string]RegistroPresenca, len(roster))
	for _, aluno := range roster {
		f.presencas[aluno.ID] = RegistroPresenca{Presente: true}
	}
	f.observacoes = ""
	f.estado = EstadoRosterPronto
	return nil
}

// Roster devolve uma cópia do roster carregado.
func (f *FluxoChamada) Roster() []Aluno {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Aluno, len(f.roster))
	copy(out, f.roster)
	return out
}

// Presenca devolve a marcação local do aluno.
func (f *FluxoChamada) Presenca(alunoID string) (RegistroPresenca, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.presencas[alunoID]
	return p, ok
}

// MarcarFalta marca um aluno como ausente, com justificativa opcional.
// Operação puramente local.
func (f *FluxoChamada) MarcarFalta(alunoID, justificativa, atestadoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.estado != EstadoRosterPronto {
		return ErrSemTurmaSelecionada
	}
	if _, ok := f.presencas[alunoID]; !ok {
		return ErrAlunoForaDoRoster
	}
	f.presencas[alunoID] = RegistroPresenca{
		Presente:      false,
		Justificativa: justificativa,
		AtestadoID:    atestadoID,
	}
	return nil
}

// MarcarPresenca desfaz uma falta marcada localmente.
func (f *FluxoChamada) MarcarPresenca(alunoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.estado != EstadoRosterPronto {
		return ErrSemTurmaSelecionada
	}
	if _, ok := f.presencas[alunoID]; !ok {
		return ErrAlunoForaDoRoster
	}
	f.presencas[alunoID] = RegistroPresenca{Presente: true}
	return nil
}

// Observacoes registra a anotação livre da aula.
func (f *FluxoChamada) Observacoes(texto string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observacoes = texto
}

// TotalFaltas conta as faltas marcadas até agora.
func (f *FluxoChamada) TotalFaltas() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	faltas := 0
	for _, p := range f.presencas {
		if !p.Presente {
			faltas++
		}
	}
	return faltas
}

// Enviar valida a data no relógio local antes de tocar a rede e então
// registra a chamada. Sucesso zera o fluxo e anota a turma como enviada
// nesta sessão; rejeição do servidor preserva as marcações para o
// operador corrigir e reenviar.
func (f *FluxoChamada) Enviar(ctx context.Context, data string) error {
	f.mu.Lock()
	if f.estado != EstadoRosterPronto {
		f.mu.Unlock()
		return ErrSemTurmaSelecionada
	}
	f.estado = EstadoValidando

	hoje := agora()
	if data != hoje.Format("2006-01-02") {
		f.estado = EstadoRosterPronto
		f.mu.Unlock()
		return &APIError{
			Status: 400,
			Detail: fmt.Sprintf("Só é possível fazer chamada da data atual (%s)", hoje.Format("02/01/2006")),
		}
	}

	envio := ChamadaEnvio{
		TurmaID:         f.turmaID,
		Data:            data,
		Horario:         hoje.Format("15:04"),
		ObservacoesAula: f.observacoes,
		Presencas:       make(map[string]PresencaEnvio, len(f.presencas)),
	}
	for alunoID, p := range f.presencas {
		envio.Presencas[alunoID] = PresencaEnvio{
			Presente:      p.Presente,
			Justificativa: p.Justificativa,
			AtestadoID:    p.AtestadoID,
		}
	}
	f.estado = EstadoEnviando
	turmaID := f.turmaID
	f.mu.Unlock()

	err := f.api.EnviarChamada(ctx, envio)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		// marcações ficam como estavam
		f.estado = EstadoRosterPronto
		return err
	}

	f.enviadasNaSessao[turmaID] = struct{}{}
	f.reset()
	f.estado = EstadoConcluido
	return nil
}

// Cancelar abandona a turma corrente sem enviar nada.
func (f *FluxoChamada) Cancelar() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

// reset exige o lock tomado.
func (f *FluxoChamada) reset() {
	f.turmaID = ""
	f.roster = nil
	f.presencas = nil
	f.observacoes = ""
	f.estado = EstadoOcioso
}
