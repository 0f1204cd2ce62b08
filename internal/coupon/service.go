// Package coupon drives the discount-code flow: validate, preview, activate,
// and the silent removal that any bag mutation forces.
package coupon

import (
	"context"
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Yacsu77/tortamaria-go/internal/api"
	"github.com/Yacsu77/tortamaria-go/internal/bag"
	"github.com/Yacsu77/tortamaria-go/internal/domain"
)

// Service holds at most one active coupon for the logged-in customer.
//
// Activation is one-time and non-reversible per customer/coupon pair: the
// backend marks the code consumed, and removing it from the current order
// never gives it back. That is the business rule, not an accident.
type Service struct {
	api *api.Client
	bus EventBus.Bus

	mu     sync.Mutex
	cpf    string
	active *domain.Coupon
}

// NewService wires the coupon flow to the bag-changed topic so that any cart
// mutation invalidates the active discount rather than recomputing it.
func NewService(client *api.Client, bus EventBus.Bus) (*Service, error) {
	s := &Service{api: client, bus: bus}
	if err := bus.Subscribe(bag.TopicChanged, s.onBagChanged); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks a code for the customer and returns its metadata. A
// business rejection (unknown, already used, expired) surfaces as an
// api.APIError carrying the backend's reason.
func (s *Service) Validate(ctx context.Context, code, cpf string) (*domain.Coupon, error) {
	return s.api.ValidateCoupon(ctx, code, cpf)
}

// Preview computes the discount the coupon would take off the given subtotal,
// for the confirmation prompt.
func (s *Service) Preview(coupon *domain.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	if coupon == nil {
		return decimal.Zero
	}
	return coupon.Discount(subtotal)
}

// Activate consumes the coupon server-side and applies it locally.
func (s *Service) Activate(ctx context.Context, coupon *domain.Coupon, cpf string) error {
	if err := s.api.ActivateCoupon(ctx, coupon.Code, cpf); err != nil {
		return err
	}
	s.mu.Lock()
	s.cpf = cpf
	s.active = coupon
	s.mu.Unlock()
	zap.L().Info("coupon: activated", zap.String("code", coupon.Code))
	return nil
}

// Active returns the coupon currently applied, or nil.
func (s *Service) Active() *domain.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Clear drops the local discount and detaches the coupon from the order.
// Errors from the remove call are logged only: the local state is already
// gone and the coupon was consumed at activation either way.
func (s *Service) Clear(ctx context.Context) {
	s.mu.Lock()
	active, cpf := s.active, s.cpf
	s.active = nil
	s.mu.Unlock()
	if active == nil {
		return
	}
	if err := s.api.RemoveCoupon(ctx, active.Code, cpf); err != nil {
		zap.L().Warn("coupon: remove after bag change failed",
			zap.String("code", active.Code), zap.Error(err))
	}
}

// onBagChanged invalidates the active discount whenever the bag mutates.
// The customer must re-validate a (different) coupon afterwards.
func (s *Service) onBagChanged(sectionID int64) {
	if s.Active() == nil {
		return
	}
	zap.L().Info("coupon: bag changed, clearing discount", zap.Int64("section_id", sectionID))
	s.Clear(context.Background())
}
