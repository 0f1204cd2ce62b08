package api

import (
	"context"
	"fmt"

	"github.com/Yacsu77/tortamaria-go/internal/domain"
)

type pointsBalance struct {
	Points int64 `json:"pontos"`
}

type pointsMutation struct {
	CustomerCPF string `json:"Cliente_CPF"`
	Points      int64  `json:"Pontos"`
}

// PointsBalance returns a customer's current loyalty point balance.
func (c *Client) PointsBalance(ctx context.Context, cpf string) (int64, error) {
	var balance pointsBalance
	path := fmt.Sprintf("/api/pontos/pontos/consultar/%s", cpf)
	if err := c.get(ctx, path, &balance); err != nil {
		return 0, err
	}
	return balance.Points, nil
}

// RemovePoints debits points from a customer, used when an order consumes
// redemptions. The backend rejects a debit beyond the balance.
func (c *Client) RemovePoints(ctx context.Context, cpf string, points int64) error {
	return c.post(ctx, "/api/pontos/pontos/remover", pointsMutation{
		CustomerCPF: cpf,
		Points:      points,
	}, nil)
}

// AddPoints credits points to a customer.
func (c *Client) AddPoints(ctx context.Context, cpf string, points int64) error {
	return c.post(ctx, "/api/pontos/pontos/adicionar", pointsMutation{
		CustomerCPF: cpf,
		Points:      points,
	}, nil)
}

// ListRewardCategories returns the categories of the points catalog.
func (c *Client) ListRewardCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.get(ctx, "/api/pontos/Categoria/Listar", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListRewards returns the catalog entries redeemable with points.
func (c *Client) ListRewards(ctx context.Context) ([]domain.RewardProduct, error) {
	var rewards []domain.RewardProduct
	if err := c.get(ctx, "/api/pontos/prontos/Listar", &rewards); err != nil {
		return nil, err
	}
	return rewards, nil
}
