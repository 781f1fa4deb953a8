// Package client é o consumidor Go da API do ClassCheck: autenticação,
// fluxo de chamada, filtros persistentes e polling do painel.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// APIError carrega o status HTTP e o campo `detail` devolvido pela API.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Detail)
}

// Client fala com o backend. O token é por instância: nada de estado
// global de autenticação.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token string
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken define o bearer token usado nas próximas requisições.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token devolve o bearer token corrente (vazio se não autenticado).
func (c *Client) Token() string {
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := sonic.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var desc struct {
			Detail string `json:"detail"`
		}
		if err := sonic.Unmarshal(raw, &desc); err != nil || desc.Detail == "" {
			desc.Detail = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Detail: desc.Detail}
	}

	if out != nil {
		return sonic.Unmarshal(raw, out)
	}
	return nil
}

/* =========================== AUTH =========================== */

type Usuario struct {
	ID        string  `json:"id"`
	Nome      string  `json:"nome"`
	Email     string  `json:"email"`
	Tipo      string  `json:"tipo"`
	UnidadeID *string `json:"unidade_id,omitempty"`
	CursoID   *string `json:"curso_id,omitempty"`
}

type loginResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        Usuario `json:"user"`
}

// Login autentica e guarda o token na própria instância.
func (c *Client) Login(ctx context.Context, email, senha string) (*Usuario, error) {
	body := map[string]string{"email": email, "senha": senha}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}
	c.token = resp.AccessToken
	return &resp.User, nil
}

/* =========================== TURMAS =========================== */

type Turma struct {
	ID            string   `json:"id"`
	Nome          string   `json:"nome"`
	UnidadeID     string   `json:"unidade_id"`
	CursoID       string   `json:"curso_id"`
	InstrutorID   string   `json:"instrutor_id"`
	AlunosIDs     []string `json:"alunos_ids"`
	HorarioInicio string   `json:"horario_inicio"`
	HorarioFim    string   `json:"horario_fim"`
	DiasSemana    []string `json:"dias_semana"`
	VagasTotal    int      `json:"vagas_total"`
}

type Aluno struct {
	ID     string `json:"id"`
	Nome   string `json:"nome"`
	Status string `json:"status"`
}

// ListTurmas traz as turmas visíveis para o usuário logado.
func (c *Client) ListTurmas(ctx context.Context) ([]Turma, error) {
	var turmas []Turma
	if err := c.do(ctx, http.MethodGet, "/api/turmas/", nil, &turmas); err != nil {
		return nil, err
	}
	return turmas, nil
}

// Roster traz os alunos ativos matriculados na turma.
func (c *Client) Roster(ctx context.Context, turmaID string) ([]Aluno, error) {
	var alunos []Aluno
	if err := c.do(ctx, http.MethodGet, "/api/classes/"+turmaID+"/students", nil, &alunos); err != nil {
		return nil, err
	}
	return alunos, nil
}

/* =========================== CHAMADA =========================== */

type PresencaEnvio struct {
	Presente      bool   `json:"presente"`
	Justificativa string `json:"justificativa"`
	AtestadoID    string `json:"atestado_id"`
}

type ChamadaEnvio struct {
	TurmaID         string                   `json:"turma_id"`
	Data            string                   `json:"data"`
	Horario         string                   `json:"horario"`
	ObservacoesAula string                   `json:"observacoes_aula"`
	Presencas       map[string]PresencaEnvio `json:"presencas"`
}

// EnviarChamada registra a chamada do dia.
func (c *Client) EnviarChamada(ctx context.Context, envio ChamadaEnvio) error {
	return c.do(ctx, http.MethodPost, "/api/attendance", envio, nil)
}

/* =========================== EVASÃO =========================== */

var ErrMotivoObrigatorio = errors.New("motivo da evasão é obrigatório")

type EvasaoEnvio struct {
	AlunoID    string `json:"id_aluno"`
	Motivo     string `json:"motivo"`
	Observacao string `json:"observacao"`
}

// RegistrarEvasao envia o registro de evasão. Sem motivo nada vai à rede.
func (c *Client) RegistrarEvasao(ctx context.Context, envio EvasaoEnvio) error {
	if strings.TrimSpace(envio.Motivo) == "" {
		return ErrMotivoObrigatorio
	}
	return c.do(ctx, http.MethodPost, "/api/evasoes/", envio, nil)
}

/* =========================== PAINEL =========================== */

type DashboardStats struct {
	TotalTurmas       int     `json:"total_turmas"`
	TotalAlunos       int     `json:"total_alunos"`
	ChamadasHoje      int     `json:"chamadas_hoje"`
	TaxaPresencaMedia float64 `json:"taxa_presenca_media"`
}

func (c *Client) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
