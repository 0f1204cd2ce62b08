package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yacsu77/tortamaria-go/config"
	"github.com/Yacsu77/tortamaria-go/internal/domain"
)

type backendState struct {
	failOrderInsert bool

	pointsRemoved int32
	pointsAdded   int32
	ordersCreated int32
}

func fakeBackend(state *backendState) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/sacola/listar/itens/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"ID_secao":7,"Produto":10,"nome_produto":"torta","preco_produto":"100.00"}]`))
	})
	mux.HandleFunc("/api/sacola/listar/combos/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/api/sacola/listar/pontos/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":2,"ID_secao":7,"Produto_pontos":20,"custo_pontos":300}]`))
	})
	mux.HandleFunc("/api/pontos/pontos/remover", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&state.pointsRemoved, 1)
		_, _ = w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/api/pontos/pontos/adicionar", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&state.pointsAdded, 1)
		_, _ = w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/api/pedido/inserir", func(w http.ResponseWriter, r *http.Request) {
		if state.failOrderInsert {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"erro":"falha ao inserir"}`))
			return
		}
		atomic.AddInt32(&state.ordersCreated, 1)
		_, _ = w.Write([]byte(`{"id_pedido":321}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	return mux
}

func newTestApp(t *testing.T, state *backendState) *Application {
	t.Helper()
	server := httptest.NewServer(fakeBackend(state))
	t.Cleanup(server.Close)

	cfg := config.LoadConfig("")
	cfg.System.Workdir = t.TempDir()
	cfg.Backend = config.BackendConfig{BaseURL: server.URL, Timeout: config.Duration(5 * time.Second)}
	cfg.Logger.Mode = "development"

	a := NewApplication(cfg)
	require.NoError(t, a.Init())
	t.Cleanup(a.Release)

	require.NoError(t, a.Sessions().SaveUser(&domain.User{
		CPF: "52998224725", Name: "Maria", Email: "maria@example.com",
	}))
	require.NoError(t, a.Sessions().SaveSection(&domain.Section{
		ID: 7, Fulfillment: domain.FulfillmentPickup,
	}))
	return a
}

func insideHours() time.Time {
	return time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
}

func TestCheckout(t *testing.T) {
	state := &backendState{}
	a := newTestApp(t, state)

	result, err := a.Checkout(context.Background(), insideHours())
	require.NoError(t, err)

	assert.Equal(t, int64(321), result.OrderID)
	assert.True(t, result.Summary.Total.Equal(result.Summary.Subtotal))
	assert.Equal(t, int64(300), result.Summary.Points)
	assert.Equal(t, int32(1), atomic.LoadInt32(&state.pointsRemoved), "points debited before the order")
	assert.Equal(t, int32(1), atomic.LoadInt32(&state.ordersCreated))

	_, err = a.Sessions().CurrentSection()
	assert.Error(t, err, "section cleared after the order")
}

func TestCheckout_OutsideBusinessHours(t *testing.T) {
	state := &backendState{}
	a := newTestApp(t, state)

	at := time.Date(2026, 8, 31, 9, 59, 0, 0, time.Local)
	_, err := a.Checkout(context.Background(), at)
	assert.ErrorIs(t, err, ErrClosed)

	at = time.Date(2026, 8, 31, 19, 0, 0, 0, time.Local)
	_, err = a.Checkout(context.Background(), at)
	assert.ErrorIs(t, err, ErrClosed)

	assert.Equal(t, int32(0), atomic.LoadInt32(&state.pointsRemoved))
}

func TestCheckout_RefundsPointsWhenOrderFails(t *testing.T) {
	state := &backendState{failOrderInsert: true}
	a := newTestApp(t, state)

	_, err := a.Checkout(context.Background(), insideHours())
	require.Error(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&state.pointsRemoved))
	assert.Equal(t, int32(1), atomic.LoadInt32(&state.pointsAdded), "removed points credited back")

	_, sectionErr := a.Sessions().CurrentSection()
	assert.NoError(t, sectionErr, "section stays open after a failed order")
}

func TestCheckout_RequiresLogin(t *testing.T) {
	state := &backendState{}
	a := newTestApp(t, state)
	require.NoError(t, a.Sessions().Logout())

	_, err := a.Checkout(context.Background(), insideHours())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
