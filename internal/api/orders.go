package api

import (
	"context"
	"fmt"
	"time"

	"github.com/araddon/dateparse"

	"github.com/Yacsu77/tortamaria-go/internal/domain"
)

type createOrderResponse struct {
	OrderID int64 `json:"id_pedido"`
}

// CreateOrder inserts a new order built from a section's bag contents and
// returns the order id the backend assigned.
func (c *Client) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (int64, error) {
	var resp createOrderResponse
	if err := c.post(ctx, "/api/pedido/inserir", req, &resp); err != nil {
		return 0, err
	}
	if resp.OrderID == 0 {
		return 0, &APIError{StatusCode: 200, Message: "pedido criado sem id retornado"}
	}
	return resp.OrderID, nil
}

// ListOrders returns a customer's orders, newest first as the backend sends
// them. Dates arrive in whatever format the backend revision emits, so they
// are normalized here.
func (c *Client) ListOrders(ctx context.Context, cpf string) ([]domain.Order, error) {
	var orders []domain.Order
	path := fmt.Sprintf("/api/pedido/listar/cliente/%s", cpf)
	if err := c.get(ctx, path, &orders); err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Date = normalizeOrderDate(orders[i].Date)
	}
	return orders, nil
}

// UpdateOrderStatus asks the backend to transition an order.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	path := fmt.Sprintf("/api/pedido/atualizar-situacao/%d", orderID)
	return c.put(ctx, path, map[string]interface{}{
		"novaSituacao": int(status),
	}, nil)
}

// CancelOrder transitions an order to cancelled.
func (c *Client) CancelOrder(ctx context.Context, orderID int64) error {
	return c.UpdateOrderStatus(ctx, orderID, domain.OrderCancelled)
}

// OrderDetails returns the line-level detail of one order.
func (c *Client) OrderDetails(ctx context.Context, orderID int64) (*domain.OrderDetails, error) {
	var details domain.OrderDetails
	if err := c.get(ctx, fmt.Sprintf("/api/pedidos/detalhes/%d", orderID), &details); err != nil {
		return nil, err
	}
	details.Date = normalizeOrderDate(details.Date)
	return &details, nil
}

func normalizeOrderDate(raw string) string {
	if raw == "" {
		return raw
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return raw
	}
	return t.Format(time.DateOnly)
}
