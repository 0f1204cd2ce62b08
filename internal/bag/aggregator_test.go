package bag

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yacsu77/tortamaria-go/internal/domain"
)

func money(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func itemRow(id, productID int64, name, price string) domain.ItemRow {
	return domain.ItemRow{
		ID:        id,
		SectionID: 7,
		ProductID: productID,
		Name:      name,
		Price:     money(price),
	}
}

func TestGroupItems(t *testing.T) {
	rows := []domain.ItemRow{
		itemRow(1, 10, "fatia de chocolate", "18.00"),
		itemRow(2, 11, "suco de laranja", "9.50"),
		itemRow(3, 10, "fatia de chocolate", "18.00"),
		itemRow(4, 10, "fatia de chocolate", "18.00"),
	}

	groups := GroupItems(rows)
	require.Len(t, groups, 2)

	assert.Equal(t, int64(10), groups[0].ProductID)
	assert.Equal(t, 3, groups[0].Quantity)
	assert.Equal(t, []int64{1, 3, 4}, groups[0].RowIDs)
	assert.True(t, groups[0].LineTotal().Equal(money("54.00")))

	assert.Equal(t, int64(11), groups[1].ProductID)
	assert.Equal(t, 1, groups[1].Quantity)
}

func TestGroupItems_SameProductDifferentSection(t *testing.T) {
	rows := []domain.ItemRow{
		{ID: 1, SectionID: 1, ProductID: 10, Price: money("5.00")},
		{ID: 2, SectionID: 2, ProductID: 10, Price: money("5.00")},
	}
	assert.Len(t, GroupItems(rows), 2)
}

func TestComboPrice(t *testing.T) {
	combo := domain.ComboRow{
		FirstSurcharge:  money("5.00"),
		SecondSurcharge: money("0.00"),
	}
	assert.True(t, ComboPrice(combo).Equal(money("58.00")))
}

func TestSummarize_PickupNoFee(t *testing.T) {
	rows := []domain.ItemRow{itemRow(1, 10, "torta", "100.00")}

	s := Summarize(rows, nil, nil, domain.FulfillmentPickup, nil)

	assert.True(t, s.DeliveryFee.IsZero())
	assert.True(t, s.Subtotal.Equal(money("100.00")))
	assert.True(t, s.Total.Equal(money("100.00")))
}

func TestSummarize_DeliveryFeeOnce(t *testing.T) {
	rows := []domain.ItemRow{
		itemRow(1, 10, "torta", "60.00"),
		itemRow(2, 11, "suco", "40.00"),
	}
	combos := []domain.ComboRow{{FirstSurcharge: money("5.00")}}

	s := Summarize(rows, combos, nil, domain.FulfillmentDelivery, nil)

	assert.True(t, s.DeliveryFee.Equal(money("15.00")))
	assert.True(t, s.Subtotal.Equal(money("173.00")), "subtotal %s", s.Subtotal)
	assert.True(t, s.Total.Equal(money("173.00")))
}

func TestSummarize_DeliveryFeeSkippedForRedemptionsOnly(t *testing.T) {
	redemptions := []domain.RedemptionRow{{ID: 1, PointCost: 300}}

	s := Summarize(nil, nil, redemptions, domain.FulfillmentDelivery, nil)

	assert.True(t, s.DeliveryFee.IsZero())
	assert.True(t, s.Total.IsZero())
	assert.Equal(t, int64(300), s.Points)
	assert.False(t, s.Empty())
}

func TestSummarize_PercentageCouponAfterFee(t *testing.T) {
	rows := []domain.ItemRow{itemRow(1, 10, "torta", "100.00")}
	coupon := &domain.Coupon{Code: "DEZ", Type: domain.CouponPercentage, Value: money("10")}

	s := Summarize(rows, nil, nil, domain.FulfillmentDelivery, coupon)

	assert.True(t, s.Subtotal.Equal(money("115.00")))
	assert.True(t, s.Discount.Equal(money("11.50")), "discount %s", s.Discount)
	assert.True(t, s.Total.Equal(money("103.50")), "total %s", s.Total)
}

func TestSummarize_FixedCouponClampsTotalOnly(t *testing.T) {
	rows := []domain.ItemRow{itemRow(1, 10, "cafe", "8.00")}
	coupon := &domain.Coupon{Code: "VINTE", Type: domain.CouponFixed, Value: money("20.00")}

	s := Summarize(rows, nil, nil, domain.FulfillmentPickup, coupon)

	assert.True(t, s.Discount.Equal(money("20.00")), "discount is not clamped")
	assert.True(t, s.Total.IsZero(), "total is clamped at zero")
}

func TestSummarize_PointsIndependentOfCurrency(t *testing.T) {
	rows := []domain.ItemRow{itemRow(1, 10, "torta", "50.00")}
	redemptions := []domain.RedemptionRow{
		{ID: 1, PointCost: 200},
		{ID: 2, PointCost: 150},
	}
	coupon := &domain.Coupon{Code: "DEZ", Type: domain.CouponPercentage, Value: money("10")}

	s := Summarize(rows, nil, redemptions, domain.FulfillmentPickup, coupon)

	assert.Equal(t, int64(350), s.Points)
	assert.True(t, s.Total.Equal(money("45.00")))
}

func TestSummary_Empty(t *testing.T) {
	assert.True(t, Summarize(nil, nil, nil, domain.FulfillmentPickup, nil).Empty())
}
