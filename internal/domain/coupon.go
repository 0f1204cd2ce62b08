package domain

import "github.com/shopspring/decimal"

// CouponType distinguishes a fixed-amount discount from a percentage one.
type CouponType string

const (
	CouponFixed      CouponType = "fixo"
	CouponPercentage CouponType = "percentual"
)

// Coupon is the metadata the validate endpoint returns for a code. Activation
// state lives server-side and is one-time per customer: once consumed the
// coupon can never be applied again, even if removed from the current order.
type Coupon struct {
	Code  string          `json:"codigo"`
	Type  CouponType      `json:"tipo"`
	Value decimal.Decimal `json:"valor"`
}

// Discount computes the coupon's discount against a subtotal. Fixed coupons
// are not clamped to the subtotal; the caller clamps the final total at zero.
func (c Coupon) Discount(subtotal decimal.Decimal) decimal.Decimal {
	switch c.Type {
	case CouponPercentage:
		return subtotal.Mul(c.Value).Div(decimal.NewFromInt(100))
	case CouponFixed:
		return c.Value
	default:
		return decimal.Zero
	}
}

// CouponRequest identifies a coupon operation: the code plus the customer it
// is tied to.
type CouponRequest struct {
	Code        string `json:"codigo"`
	CustomerCPF string `json:"Cliente_CPF"`
}
