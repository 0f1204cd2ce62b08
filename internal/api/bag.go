package api

import (
	"context"
	"fmt"

	"github.com/Yacsu77/tortamaria-go/internal/domain"
)

// ListBagItems returns the raw item rows of a section, one row per unit.
func (c *Client) ListBagItems(ctx context.Context, sectionID int64) ([]domain.ItemRow, error) {
	var rows []domain.ItemRow
	path := fmt.Sprintf("/api/sacola/listar/itens/%d", sectionID)
	if err := c.get(ctx, path, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListBagCombos returns the combo rows of a section.
func (c *Client) ListBagCombos(ctx context.Context, sectionID int64) ([]domain.ComboRow, error) {
	var rows []domain.ComboRow
	path := fmt.Sprintf("/api/sacola/listar/combos/%d", sectionID)
	if err := c.get(ctx, path, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListBagRedemptions returns the point-redemption rows of a section.
func (c *Client) ListBagRedemptions(ctx context.Context, sectionID int64) ([]domain.RedemptionRow, error) {
	var rows []domain.RedemptionRow
	path := fmt.Sprintf("/api/sacola/listar/pontos/%d", sectionID)
	if err := c.get(ctx, path, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// AddBagItem inserts a single unit of a product into the section's bag.
func (c *Client) AddBagItem(ctx context.Context, sectionID, productID int64) error {
	return c.post(ctx, "/api/sacola/inseri/item", domain.AddItemRequest{
		SectionID: sectionID,
		ProductID: productID,
	}, nil)
}

// AddBagCombo records a completed combo for the section. The backend is the
// sole authority on the persisted combo price.
func (c *Client) AddBagCombo(ctx context.Context, sectionID, firstID, secondID int64) error {
	return c.post(ctx, "/api/sacola/inseri/combo", domain.AddComboRequest{
		SectionID: sectionID,
		FirstID:   firstID,
		SecondID:  secondID,
	}, nil)
}

// AddBagRedemption inserts a point redemption into the section's bag.
func (c *Client) AddBagRedemption(ctx context.Context, sectionID, productID int64) error {
	return c.post(ctx, "/api/sacola/inseri/pontos", domain.AddRedemptionRequest{
		SectionID: sectionID,
		ProductID: productID,
	}, nil)
}

// DeleteBagItem removes one item row, which decrements the displayed
// quantity of its group by exactly one.
func (c *Client) DeleteBagItem(ctx context.Context, rowID int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/sacola/deletar/itens/%d", rowID))
}

// DeleteBagCombo removes one combo row. The backend route joins the id to the
// path without a separator.
func (c *Client) DeleteBagCombo(ctx context.Context, comboID int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/sacola/deletar/combo%d", comboID))
}

// DeleteBagRedemption removes one redemption row.
func (c *Client) DeleteBagRedemption(ctx context.Context, rowID int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/sacola/deletar/pontos/%d", rowID))
}
