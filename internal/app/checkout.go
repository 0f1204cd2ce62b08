package app

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Yacsu77/tortamaria-go/internal/bag"
	"github.com/Yacsu77/tortamaria-go/internal/domain"
	"github.com/Yacsu77/tortamaria-go/internal/payment"
)

// Ordering window. Orders outside it are refused before anything is
// committed on the backend.
const (
	OpeningHour = 10
	ClosingHour = 19
)

var (
	ErrNotLoggedIn   = errors.New("nenhum cliente logado")
	ErrClosed        = errors.New("a loja funciona das 10h as 19h")
	ErrEmptyBag      = errors.New("a sacola esta vazia")
	ErrOrderNotFound = errors.New("pedido nao encontrado")
)

// CheckoutResult captures what the order flow produced so the caller
// can move on to payment.
type CheckoutResult struct {
	OrderID int64
	Summary bag.Summary
}

// Checkout turns the open section's bag into an order. Redeemed points
// are debited before the order is inserted and credited back if the
// insert fails. On success the section is closed locally so a fresh one
// starts the next purchase.
func (a *Application) Checkout(ctx context.Context, now time.Time) (*CheckoutResult, error) {
	user := a.sessions.User()
	if user == nil {
		return nil, ErrNotLoggedIn
	}
	section, err := a.sessions.CurrentSection()
	if err != nil {
		return nil, err
	}
	if now.Hour() < OpeningHour || now.Hour() >= ClosingHour {
		return nil, ErrClosed
	}

	summary, contents := a.bagSvc.Summarize(ctx, section, a.couponSvc.Active())
	if err := contents.Err(); err != nil {
		return nil, err
	}
	if summary.Empty() {
		return nil, ErrEmptyBag
	}
	if !summary.Total.IsPositive() && summary.Points == 0 {
		return nil, ErrEmptyBag
	}

	if summary.Points > 0 {
		if err := a.apiClient.RemovePoints(ctx, user.CPF, summary.Points); err != nil {
			return nil, errors.Wrap(err, "debitar pontos")
		}
	}

	orderID, err := a.apiClient.CreateOrder(ctx, domain.CreateOrderRequest{
		SectionID: section.ID,
		Type:      int(section.Fulfillment),
		Date:      now.Format(time.DateOnly),
		Time:      now.Format(time.TimeOnly),
		Total:     summary.Total,
		Situation: int(domain.OrderAwaitingPayment),
	})
	if err != nil {
		if summary.Points > 0 {
			if backErr := a.apiClient.AddPoints(ctx, user.CPF, summary.Points); backErr != nil {
				zap.L().Error("points refund failed",
					zap.String("cpf", user.CPF),
					zap.Int64("points", summary.Points),
					zap.Error(backErr))
			}
		}
		return nil, err
	}

	a.couponSvc.Clear(ctx)
	if err := a.sessions.ClearSection(); err != nil {
		zap.L().Warn("section not cleared after order", zap.Error(err))
	}

	zap.L().Info("order created",
		zap.Int64("order_id", orderID),
		zap.Int64("section_id", section.ID),
		zap.String("total", summary.Total.StringFixed(2)))
	return &CheckoutResult{OrderID: orderID, Summary: summary}, nil
}

// PayWithCard tokenizes the card, charges it and moves the order on to
// the store queue when the charge is approved.
func (a *Application) PayWithCard(ctx context.Context, orderID int64, card payment.Card) (*payment.Payment, error) {
	user := a.sessions.User()
	if user == nil {
		return nil, ErrNotLoggedIn
	}
	order, err := a.apiClient.OrderDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	token, err := a.gateway.TokenizeCard(ctx, card)
	if err != nil {
		return nil, err
	}
	pay, err := a.gateway.CreateCardPayment(ctx, order.Total, token, orderID, user.Email, user.CPF)
	if err != nil {
		return nil, err
	}
	if pay.Status == payment.StatusApproved {
		if err := a.apiClient.UpdateOrderStatus(ctx, orderID, domain.OrderAwaitingAccept); err != nil {
			zap.L().Error("order status update failed", zap.Int64("order_id", orderID), zap.Error(err))
		}
	}
	return pay, nil
}

// StartPIXPayment creates the PIX charge and returns it together with a
// poller that watches the payment until it settles or ctx is cancelled.
func (a *Application) StartPIXPayment(ctx context.Context, orderID int64) (*payment.PIXCharge, *payment.Poller, error) {
	user := a.sessions.User()
	if user == nil {
		return nil, nil, ErrNotLoggedIn
	}
	order, err := a.apiClient.OrderDetails(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, ErrOrderNotFound
	}

	charge, err := a.gateway.CreatePIXPayment(ctx, order.Total, orderID, user.Email, user.CPF)
	if err != nil {
		return nil, nil, err
	}
	return charge, payment.NewPoller(a.gateway, charge.PaymentID), nil
}

// ConfirmPayment is called when a watched payment reaches a terminal
// status. Approved payments move the order on to the store queue.
func (a *Application) ConfirmPayment(ctx context.Context, orderID int64, status string) error {
	if status != payment.StatusApproved {
		return nil
	}
	return a.apiClient.UpdateOrderStatus(ctx, orderID, domain.OrderAwaitingAccept)
}
