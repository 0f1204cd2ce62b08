package bag

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Yacsu77/tortamaria-go/internal/domain"
)

// Pricing constants the backend also applies. The client computes totals for
// display only; the order the backend accepts is the authoritative record.
var (
	// ComboBasePrice is the fixed price of a combo before surcharges.
	ComboBasePrice = decimal.NewFromFloat(53.00)
	// DeliveryFee is charged once per order on delivery sections.
	DeliveryFee = decimal.NewFromFloat(15.00)
)

// ItemGroup is one display line: every raw row sharing (section, product)
// collapsed into a quantity. RowIDs keeps insertion order so removing one
// unit deletes the first row; removing the line deletes them all.
type ItemGroup struct {
	SectionID   int64
	ProductID   int64
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	ImageURL    string
	Quantity    int
	RowIDs      []int64
}

// LineTotal is unit price times grouped quantity.
func (g ItemGroup) LineTotal() decimal.Decimal {
	return g.UnitPrice.Mul(decimal.NewFromInt(int64(g.Quantity)))
}

// GroupItems collapses raw bag rows into display groups, preserving the
// order in which products first appear.
func GroupItems(rows []domain.ItemRow) []ItemGroup {
	index := make(map[string]int, len(rows))
	groups := make([]ItemGroup, 0, len(rows))
	for _, row := range rows {
		key := fmt.Sprintf("%d_%d", row.SectionID, row.ProductID)
		if i, ok := index[key]; ok {
			groups[i].Quantity++
			groups[i].RowIDs = append(groups[i].RowIDs, row.ID)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, ItemGroup{
			SectionID:   row.SectionID,
			ProductID:   row.ProductID,
			Name:        row.Name,
			Description: row.Description,
			UnitPrice:   row.Price,
			ImageURL:    row.ImageURL,
			Quantity:    1,
			RowIDs:      []int64{row.ID},
		})
	}
	return groups
}

// ComboPrice is the fixed base plus whichever component surcharges exist.
// The salad component is part of the base and never priced.
func ComboPrice(combo domain.ComboRow) decimal.Decimal {
	price := ComboBasePrice
	price = price.Add(combo.FirstSurcharge)
	price = price.Add(combo.SecondSurcharge)
	return price
}

// Summary is the display-ready aggregation of a section's bag.
type Summary struct {
	Groups      []ItemGroup
	Combos      []domain.ComboRow
	Redemptions []domain.RedemptionRow

	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
	Points      int64
}

// Empty reports whether nothing at all is in the bag.
func (s Summary) Empty() bool {
	return len(s.Groups) == 0 && len(s.Combos) == 0 && len(s.Redemptions) == 0
}

// hasPriced reports whether any currency-priced entry exists. Redemptions
// alone never trigger the delivery fee.
func (s Summary) hasPriced() bool {
	return len(s.Groups) > 0 || len(s.Combos) > 0
}

// Summarize aggregates raw bag contents into totals.
//
// The delivery fee is added exactly once, only on delivery sections with a
// non-empty priced bag. A fixed coupon's discount is applied as-is without
// clamping to the subtotal, but the final total never goes below zero. The
// point total is independent of the currency total.
func Summarize(
	items []domain.ItemRow,
	combos []domain.ComboRow,
	redemptions []domain.RedemptionRow,
	mode domain.Fulfillment,
	coupon *domain.Coupon,
) Summary {
	s := Summary{
		Groups:      GroupItems(items),
		Combos:      combos,
		Redemptions: redemptions,
	}

	subtotal := decimal.Zero
	for _, group := range s.Groups {
		subtotal = subtotal.Add(group.LineTotal())
	}
	for _, combo := range combos {
		subtotal = subtotal.Add(ComboPrice(combo))
	}

	if mode == domain.FulfillmentDelivery && s.hasPriced() {
		s.DeliveryFee = DeliveryFee
		subtotal = subtotal.Add(DeliveryFee)
	}
	s.Subtotal = subtotal

	if coupon != nil {
		s.Discount = coupon.Discount(subtotal)
	}

	total := subtotal.Sub(s.Discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	s.Total = total

	for _, r := range redemptions {
		s.Points += r.PointCost
	}
	return s
}
