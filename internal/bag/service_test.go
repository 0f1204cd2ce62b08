package bag

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yacsu77/tortamaria-go/config"
	"github.com/Yacsu77/tortamaria-go/internal/api"
	"github.com/Yacsu77/tortamaria-go/internal/domain"
)

func newTestService(t *testing.T, handler http.Handler) (*Service, EventBus.Bus) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := api.NewClient(config.BackendConfig{BaseURL: server.URL, Timeout: config.Duration(5 * time.Second)})
	bus := EventBus.New()
	return NewService(client, bus), bus
}

func bagHandler(items, combos, redemptions string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/sacola/listar/itens/"):
			_, _ = w.Write([]byte(items))
		case strings.HasPrefix(r.URL.Path, "/api/sacola/listar/combos/"):
			_, _ = w.Write([]byte(combos))
		case strings.HasPrefix(r.URL.Path, "/api/sacola/listar/pontos/"):
			_, _ = w.Write([]byte(redemptions))
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	})
}

func TestService_SummarizeUpdatesCount(t *testing.T) {
	service, _ := newTestService(t, bagHandler(
		`[{"id":1,"ID_secao":7,"Produto":10,"preco_produto":"18.00"},
		  {"id":2,"ID_secao":7,"Produto":10,"preco_produto":"18.00"}]`,
		`[{"Id":3,"ID_secao":7}]`,
		`[]`,
	))

	section := &domain.Section{ID: 7, Fulfillment: domain.FulfillmentPickup}
	summary, contents := service.Summarize(context.Background(), section, nil)

	require.NoError(t, contents.Err())
	require.Len(t, summary.Groups, 1)
	assert.Equal(t, 2, summary.Groups[0].Quantity)
	assert.Equal(t, int64(3), service.Count(), "badge counts items plus combos")
}

func TestService_LoadKeepsPartialResults(t *testing.T) {
	service, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/sacola/listar/combos/") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[{"id":1,"ID_secao":7,"Produto":10,"preco_produto":"18.00"}]`))
	}))

	contents := service.Load(context.Background(), 7)

	assert.Error(t, contents.Err())
	assert.Error(t, contents.CombosErr)
	assert.NoError(t, contents.ItemsErr)
	assert.Len(t, contents.Items, 1, "a failing category does not discard the others")
}

func TestService_SummarizeKeepsCountOnPartialLoad(t *testing.T) {
	var fail atomic.Bool
	service, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() && strings.HasPrefix(r.URL.Path, "/api/sacola/listar/itens/") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if strings.HasPrefix(r.URL.Path, "/api/sacola/listar/itens/") {
			_, _ = w.Write([]byte(`[{"id":1,"ID_secao":7,"Produto":10,"preco_produto":"18.00"},
				{"id":2,"ID_secao":7,"Produto":11,"preco_produto":"22.00"}]`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))

	section := &domain.Section{ID: 7, Fulfillment: domain.FulfillmentPickup}
	_, contents := service.Summarize(context.Background(), section, nil)
	require.NoError(t, contents.Err())
	require.Equal(t, int64(2), service.Count())

	fail.Store(true)
	_, contents = service.Summarize(context.Background(), section, nil)
	assert.Error(t, contents.Err())
	assert.Equal(t, int64(2), service.Count(), "a failed load never shrinks the badge")
}

func TestService_MutationsPublishChange(t *testing.T) {
	service, bus := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))

	var changes int32
	require.NoError(t, bus.Subscribe(TopicChanged, func(sectionID int64) {
		atomic.AddInt32(&changes, 1)
	}))

	ctx := context.Background()
	require.NoError(t, service.AddItem(ctx, 7, 10))
	require.NoError(t, service.AddCombo(ctx, 7, 1, 5))
	require.NoError(t, service.AddRedemption(ctx, 7, 20))
	require.NoError(t, service.RemoveUnit(ctx, ItemGroup{SectionID: 7, RowIDs: []int64{1}}))
	require.NoError(t, service.RemoveLine(ctx, ItemGroup{SectionID: 7, RowIDs: []int64{2, 3}}))
	require.NoError(t, service.RemoveCombo(ctx, domain.ComboRow{ID: 4, SectionID: 7}))
	require.NoError(t, service.RemoveRedemption(ctx, domain.RedemptionRow{ID: 5, SectionID: 7}))

	bus.WaitAsync()
	assert.Equal(t, int32(7), atomic.LoadInt32(&changes))
}

func TestService_RemoveUnitDeletesFirstRow(t *testing.T) {
	var deleted []string
	service, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deleted = append(deleted, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{}`))
	}))

	group := ItemGroup{SectionID: 7, ProductID: 10, RowIDs: []int64{11, 12, 13}}
	require.NoError(t, service.RemoveUnit(context.Background(), group))

	require.Len(t, deleted, 1)
	assert.Equal(t, "/api/sacola/deletar/itens/11", deleted[0])
}

func TestService_RemoveUnitEmptyGroupIsNoop(t *testing.T) {
	var calls int32
	service, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{}`))
	}))

	require.NoError(t, service.RemoveUnit(context.Background(), ItemGroup{SectionID: 7}))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestService_RefreshCountToleratesFailure(t *testing.T) {
	service, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	assert.Equal(t, int64(0), service.RefreshCount(context.Background(), 7))
	assert.Equal(t, int64(0), service.Count())
}
