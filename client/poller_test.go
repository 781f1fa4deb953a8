package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPollerEmiteEParaNoCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(DashboardStats{
			TotalTurmas:       2,
			TotalAlunos:       41,
			ChamadasHoje:      1,
			TaxaPresencaMedia: 88.5,
		})
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	poller := NovoPollerStats(New(srv.URL), 10*time.Millisecond)
	saida := poller.Executar(ctx)

	primeiro := <-saida
	assert.NoError(t, primeiro.Err)
	assert.Equal(t, 2, primeiro.Stats.TotalTurmas)
	assert.InDelta(t, 88.5, primeiro.Stats.TaxaPresencaMedia, 0.01)

	segundo := <-saida
	assert.NoError(t, segundo.Err)

	cancel()

	// canal fecha depois do cancel
	for range saida {
	}
}

func TestPollerPropagaErroSemParar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Erro interno"})
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	poller := NovoPollerStats(New(srv.URL), 10*time.Millisecond)
	saida := poller.Executar(ctx)

	tick := <-saida
	assert.Error(t, tick.Err)

	var apiErr *APIError
	assert.ErrorAs(t, tick.Err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)

	// próximo tick ainda chega
	tick = <-saida
	assert.Error(t, tick.Err)
}
