package api

import (
	"context"

	"github.com/Yacsu77/tortamaria-go/internal/domain"
)

// ValidateCoupon checks a code against a customer. A business rejection
// (unknown code, already used, outside its window) comes back as an APIError
// with the backend's reason; the caller shows it verbatim.
func (c *Client) ValidateCoupon(ctx context.Context, code, cpf string) (*domain.Coupon, error) {
	var coupon domain.Coupon
	err := c.post(ctx, "/api/cupom/validar", domain.CouponRequest{
		Code:        code,
		CustomerCPF: cpf,
	}, &coupon)
	if err != nil {
		return nil, err
	}
	if coupon.Code == "" {
		coupon.Code = code
	}
	return &coupon, nil
}

// ActivateCoupon marks the coupon consumed for the customer. This is a
// one-time, non-reversible action per customer/coupon pair.
func (c *Client) ActivateCoupon(ctx context.Context, code, cpf string) error {
	return c.post(ctx, "/api/cupom/ativar", domain.CouponRequest{
		Code:        code,
		CustomerCPF: cpf,
	}, nil)
}

// RemoveCoupon detaches the coupon from the current order. It does not return
// the coupon to the customer: activation already consumed it.
func (c *Client) RemoveCoupon(ctx context.Context, code, cpf string) error {
	return c.post(ctx, "/api/cupom/remover", domain.CouponRequest{
		Code:        code,
		CustomerCPF: cpf,
	}, nil)
}
