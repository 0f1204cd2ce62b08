package coupon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yacsu77/tortamaria-go/config"
	"github.com/Yacsu77/tortamaria-go/internal/api"
	"github.com/Yacsu77/tortamaria-go/internal/bag"
	"github.com/Yacsu77/tortamaria-go/internal/domain"
)

func newTestService(t *testing.T, handler http.Handler) (*Service, EventBus.Bus) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := api.NewClient(config.BackendConfig{BaseURL: server.URL, Timeout: config.Duration(5 * time.Second)})
	bus := EventBus.New()
	service, err := NewService(client, bus)
	require.NoError(t, err)
	return service, bus
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/cupom/validar":
			_, _ = w.Write([]byte(`{"codigo":"DEZ","tipo":"percentual","valor":"10"}`))
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	})
}

func TestService_ValidateAndActivate(t *testing.T) {
	service, _ := newTestService(t, okHandler())

	coupon, err := service.Validate(context.Background(), "DEZ", "52998224725")
	require.NoError(t, err)
	assert.Equal(t, "DEZ", coupon.Code)
	assert.Equal(t, domain.CouponPercentage, coupon.Type)

	assert.Nil(t, service.Active(), "validation alone does not apply")

	require.NoError(t, service.Activate(context.Background(), coupon, "52998224725"))
	require.NotNil(t, service.Active())
	assert.Equal(t, "DEZ", service.Active().Code)
}

func TestService_ValidateRejection(t *testing.T) {
	service, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"erro":"cupom ja utilizado"}`))
	}))

	_, err := service.Validate(context.Background(), "DEZ", "52998224725")
	require.Error(t, err)
	assert.True(t, api.IsBusinessError(err))
}

func TestService_Preview(t *testing.T) {
	service, _ := newTestService(t, okHandler())

	coupon := &domain.Coupon{Code: "DEZ", Type: domain.CouponPercentage, Value: decimal.NewFromInt(10)}
	discount := service.Preview(coupon, decimal.NewFromFloat(115.00))
	assert.True(t, discount.Equal(decimal.NewFromFloat(11.50)))

	assert.True(t, service.Preview(nil, decimal.NewFromFloat(115.00)).IsZero())
}

func TestService_BagChangeClearsActiveCoupon(t *testing.T) {
	var removed int32
	service, bus := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/cupom/remover" {
			atomic.AddInt32(&removed, 1)
		}
		_, _ = w.Write([]byte(`{}`))
	}))

	coupon := &domain.Coupon{Code: "DEZ", Type: domain.CouponPercentage, Value: decimal.NewFromInt(10)}
	require.NoError(t, service.Activate(context.Background(), coupon, "52998224725"))
	require.NotNil(t, service.Active())

	bus.Publish(bag.TopicChanged, int64(7))
	bus.WaitAsync()

	assert.Nil(t, service.Active())
	assert.Equal(t, int32(1), atomic.LoadInt32(&removed))
}

func TestService_BagChangeWithoutCouponIsNoop(t *testing.T) {
	var removed int32
	service, bus := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/cupom/remover" {
			atomic.AddInt32(&removed, 1)
		}
		_, _ = w.Write([]byte(`{}`))
	}))

	bus.Publish(bag.TopicChanged, int64(7))
	bus.WaitAsync()

	assert.Nil(t, service.Active())
	assert.Equal(t, int32(0), atomic.LoadInt32(&removed))
}
