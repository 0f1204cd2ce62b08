package api

import (
	"context"
	"fmt"

	"github.com/Yacsu77/tortamaria-go/internal/domain"
)

// ListProducts returns the full catalog, independent of store stock.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.get(ctx, "/api/produtos/Produtos/Listar", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListCategories returns the product categories. The backend route carries a
// historical typo ("Categiria") that is part of its public surface.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.get(ctx, "/api/produtos/Categiria/Listar", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

type stockResponse struct {
	Products []domain.StockProduct `json:"produtos"`
}

// ListStock returns only the products in stock at one store, converted to the
// common catalog shape.
func (c *Client) ListStock(ctx context.Context, cnpj string) ([]domain.Product, error) {
	var resp stockResponse
	path := fmt.Sprintf("/api/produtos/Estoque/Listar/%s", cnpj)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(resp.Products))
	for _, s := range resp.Products {
		products = append(products, s.Product())
	}
	return products, nil
}

// ListComboCategories returns the categories used by the combo builder.
func (c *Client) ListComboCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.get(ctx, "/api/sacola/listar/categorias-combo", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListComboProducts returns every combo-eligible product with its surcharge.
func (c *Client) ListComboProducts(ctx context.Context) ([]domain.ComboProduct, error) {
	var products []domain.ComboProduct
	if err := c.get(ctx, "/api/sacola/listar/produtos-combo", &products); err != nil {
		return nil, err
	}
	return products, nil
}
