package client

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bytedance/sonic"
)

// Chave fixa sob a qual os filtros do painel são persistidos.
const ChaveFiltros = "filtros_ios"

// rótulos dos chips exibidos no painel
var rotulosFiltro = map[string]string{
	"unidade":      "Unidade",
	"curso":        "Curso",
	"turma":        "Turma",
	"status":       "Status",
	"presenca_min": "Presença mín",
	"presenca_max": "Presença máx",
	"categoria":    "Categoria",
	"motivo":       "Motivo",
	"periodo_dias": "Período",
}

// ArmazemFiltros abstrai onde o blob de filtros vive.
type ArmazemFiltros interface {
	Carregar(chave string) ([]byte, error)
	Salvar(chave string, dados []byte) error
	Remover(chave string) error
}

// ArmazemArquivo guarda cada chave como um arquivo JSON dentro de um
// diretório.
type ArmazemArquivo struct {
	Dir string
}

func NovoArmazemArquivo(dir string) (*ArmazemArquivo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ArmazemArquivo{Dir: dir}, nil
}

func (a *ArmazemArquivo) caminho(chave string) string {
	return filepath.Join(a.Dir, chave+".json")
}

func (a *ArmazemArquivo) Carregar(chave string) ([]byte, error) {
	return os.ReadFile(a.caminho(chave))
}

func (a *ArmazemArquivo) Salvar(chave string, dados []byte) error {
	return os.WriteFile(a.caminho(chave), dados, 0o644)
}

func (a *ArmazemArquivo) Remover(chave string) error {
	err := os.Remove(a.caminho(chave))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Chip é um filtro ativo pronto para exibição.
type Chip struct {
	Campo  string `json:"campo"`
	Rotulo string `json:"rotulo"`
	Valor  string `json:"valor"`
}

// Filtros gerencia o conjunto de filtros ativos do painel e o mantém
// persistido sob a chave fixa. Blob corrompido no armazém é tratado como
// conjunto vazio, nunca como erro.
type Filtros struct {
	mu      sync.Mutex
	armazem ArmazemFiltros
	ativos  map[string]string
}

func NovosFiltros(armazem ArmazemFiltros) *Filtros {
	f := &Filtros{armazem: armazem, ativos: map[string]string{}}
	f.carregar()
	return f
}

func (f *Filtros) carregar() {
	raw, err := f.armazem.Carregar(ChaveFiltros)
	if err != nil {
		return
	}
	restaurado := map[string]string{}
	if err := sonic.Unmarshal(raw, &restaurado); err != nil {
		// blob corrompido: começa do zero
		return
	}
	f.ativos = restaurado
}

// persistir exige o lock tomado.
func (f *Filtros) persistir() error {
	raw, err := sonic.Marshal(f.ativos)
	if err != nil {
		return err
	}
	return f.armazem.Salvar(ChaveFiltros, raw)
}

// Aplicar liga (ou substitui) um filtro e persiste o conjunto.
func (f *Filtros) Aplicar(campo, valor string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ativos[campo] = valor
	return f.persistir()
}

// Remover desliga um filtro; remover campo ausente é no-op.
func (f *Filtros) Remover(campo string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.ativos[campo]; !ok {
		return nil
	}
	delete(f.ativos, campo)
	return f.persistir()
}

// Limpar zera o conjunto e apaga a persistência.
func (f *Filtros) Limpar() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ativos = map[string]string{}
	return f.armazem.Remover(ChaveFiltros)
}

// Valor devolve o valor ativo do campo.
func (f *Filtros) Valor(campo string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.ativos[campo]
	return v, ok
}

// Ativos devolve uma cópia do conjunto corrente.
func (f *Filtros) Ativos() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.ativos))
	for k, v := range f.ativos {
		out[k] = v
	}
	return out
}

// Chips monta a lista exibível, em ordem estável de campo. Campos sem
// rótulo conhecido usam o próprio nome.
func (f *Filtros) Chips() []Chip {
	f.mu.Lock()
	defer f.mu.Unlock()

	campos := make([]string, 0, len(f.ativos))
	for campo := range f.ativos {
		campos = append(campos, campo)
	}
	sort.Strings(campos)

	chips := make([]Chip, 0, len(campos))
	for _, campo := range campos {
		rotulo, ok := rotulosFiltro[campo]
		if !ok {
			rotulo = campo
		}
		chips = append(chips, Chip{Campo: campo, Rotulo: rotulo, Valor: f.ativos[campo]})
	}
	return chips
}

// QueryString monta a querystring correspondente aos filtros ativos,
// pronta para as listagens de alunos e evasões.
func (f *Filtros) QueryString() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	valores := url.Values{}
	for campo, valor := range f.ativos {
		valores.Set(campo, valor)
	}
	return valores.Encode()
}
