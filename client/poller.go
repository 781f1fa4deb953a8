package client

import (
	"context"
	"time"
)

// AtualizacaoStats é um tick do poller: ou Stats ou Err preenchido.
type AtualizacaoStats struct {
	Stats *DashboardStats
	Err   error
}

// PollerStats busca os números do painel em intervalo fixo até o contexto
// ser cancelado. Cada requisição herda o cancelamento do contexto, então
// parar o poller nunca deixa chamada pendurada.
type PollerStats struct {
	api       *Client
	intervalo time.Duration
}

func NovoPollerStats(api *Client, intervalo time.Duration) *PollerStats {
	if intervalo <= 0 {
		intervalo = 30 * time.Second
	}
	return &PollerStats{api: api, intervalo: intervalo}
}

// Executar emite uma atualização imediata e depois uma por intervalo.
// O canal é fechado quando o contexto termina.
func (p *PollerStats) Executar(ctx context.Context) <-chan AtualizacaoStats {
	saida := make(chan AtualizacaoStats)

	go func() {
		defer close(saida)

		ticker := time.NewTicker(p.intervalo)
		defer ticker.Stop()

		emitir := func() bool {
			stats, err := p.api.Stats(ctx)
			select {
			case saida <- AtualizacaoStats{Stats: stats, Err: err}:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emitir() {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !emitir() {
					return
				}
			}
		}
	}()

	return saida
}
