package api

import (
	"context"
	"fmt"

	"github.com/Yacsu77/tortamaria-go/internal/domain"
)

// ListStores returns every store available for ordering.
func (c *Client) ListStores(ctx context.Context) ([]domain.Store, error) {
	var stores []domain.Store
	if err := c.get(ctx, "/api/loja/Lojas/Listar", &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

// GatewayCredentials are the per-store payment gateway credentials issued by
// the backend. Earlier app revisions embedded these in the client; they are
// now always fetched here and held only in memory.
type GatewayCredentials struct {
	PublicKey   string `json:"public_key"`
	AccessToken string `json:"access_token"`
}

// StoreCredentials fetches the payment gateway credentials for one store.
func (c *Client) StoreCredentials(ctx context.Context, cnpj string) (*GatewayCredentials, error) {
	var creds GatewayCredentials
	path := fmt.Sprintf("/api/loja/credenciais/%s", cnpj)
	if err := c.get(ctx, path, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// CreateSection opens a checkout session for a customer at a store. The
// backend enforces one open section per customer.
func (c *Client) CreateSection(ctx context.Context, cpf, cnpj string, mode domain.Fulfillment) (*domain.Section, error) {
	var section domain.Section
	err := c.post(ctx, "/api/secao/secao/criar", domain.CreateSectionRequest{
		CustomerCPF: cpf,
		StoreCNPJ:   cnpj,
		Situation:   1,
		Fulfillment: int(mode),
	}, &section)
	if err != nil {
		return nil, err
	}
	section.Fulfillment = mode
	return &section, nil
}

// CloseSection cancels an open section without creating an order.
func (c *Client) CloseSection(ctx context.Context, sectionID int64) error {
	return c.post(ctx, fmt.Sprintf("/api/secao/secao/fechar/%d", sectionID), nil, nil)
}
