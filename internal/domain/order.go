package domain

import "github.com/shopspring/decimal"

// OrderStatus is the order state enum the backend drives. The client only
// displays statuses and requests transitions (pay, cancel).
type OrderStatus int

const (
	OrderCancelled       OrderStatus = 0
	OrderAwaitingPayment OrderStatus = 1
	OrderAwaitingAccept  OrderStatus = 2
	OrderReady           OrderStatus = 3
)

// Label returns the display text shown to the customer.
func (s OrderStatus) Label() string {
	switch s {
	case OrderCancelled:
		return "Cancelado"
	case OrderAwaitingPayment:
		return "Aguardando Pagamento"
	case OrderAwaitingAccept:
		return "Aguardando Aceitação"
	case OrderReady:
		return "Pronto para Envio"
	default:
		return "Status Desconhecido"
	}
}

// Order is the finalized record created from a section's bag contents.
type Order struct {
	ID        int64           `json:"id"`
	SectionID int64           `json:"id_secao"`
	Type      int             `json:"Tipo_Pedido"`
	Date      string          `json:"Data_pedido"`
	Time      string          `json:"Hora_Pedido"`
	Total     decimal.Decimal `json:"Valor_pedido"`
	Status    OrderStatus     `json:"Situacao"`
}

// OrderLine is one priced line of a finalized order, already grouped by the
// backend (unlike bag rows, which arrive one per unit).
type OrderLine struct {
	Name      string          `json:"nome_produto"`
	Quantity  int             `json:"quantidade"`
	UnitPrice decimal.Decimal `json:"preco_unitario"`
}

// LineTotal is this line's contribution to the order total.
func (l OrderLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderDetails is one order with its lines and section label.
type OrderDetails struct {
	Order
	SectionName string      `json:"nome_secao"`
	Lines       []OrderLine `json:"itens"`
}

// CreateOrderRequest inserts a new order for a section. Date is sent as
// YYYY-MM-DD and time as HH:mm:ss.
type CreateOrderRequest struct {
	SectionID int64           `json:"id_secao"`
	Type      int             `json:"Tipo_Pedido"`
	Date      string          `json:"Data_pedido"`
	Time      string          `json:"Hora_Pedido"`
	Total     decimal.Decimal `json:"Valor_pedido"`
	Situation int             `json:"Situacao"`
}
