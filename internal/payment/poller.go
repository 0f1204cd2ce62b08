package payment

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StatusUpdate is one observation of a payment's state.
type StatusUpdate struct {
	Status   string
	Detail   string
	Terminal bool
}

// Poller watches a PIX payment until it reaches a terminal status. It is an
// explicit, cancellable timer task: cancelling the context stops it
// deterministically, so a caller leaving the screen never receives a stale
// update afterwards.
type Poller struct {
	gateway   *Gateway
	paymentID int64
	interval  time.Duration
}

func NewPoller(gateway *Gateway, paymentID int64) *Poller {
	interval := gateway.cfg.PollInterval.Std()
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Poller{gateway: gateway, paymentID: paymentID, interval: interval}
}

// Run polls until ctx is cancelled or the payment reaches a terminal status.
// Updates arrive on the returned channel, which closes when polling stops.
// Poll failures are logged and skipped; the next tick retries naturally.
func (p *Poller) Run(ctx context.Context) <-chan StatusUpdate {
	updates := make(chan StatusUpdate, 1)
	go func() {
		defer close(updates)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		last := ""
		for {
			select {
			case <-ctx.Done():
				zap.L().Debug("payment: poller cancelled", zap.Int64("payment_id", p.paymentID))
				return
			case <-ticker.C:
			}

			payment, err := p.gateway.PaymentStatus(ctx, p.paymentID)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				zap.L().Warn("payment: status poll failed",
					zap.Int64("payment_id", p.paymentID), zap.Error(err))
				continue
			}

			if payment.Status == last && !Terminal(payment.Status) {
				continue
			}
			last = payment.Status

			update := StatusUpdate{
				Status:   payment.Status,
				Detail:   payment.StatusDetail,
				Terminal: Terminal(payment.Status),
			}
			select {
			case updates <- update:
			case <-ctx.Done():
				return
			}
			if update.Terminal {
				return
			}
		}
	}()
	return updates
}
