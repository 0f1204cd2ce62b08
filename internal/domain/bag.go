package domain

import "github.com/shopspring/decimal"

// ItemRow is one raw bag row as the backend stores it: one row per unit
// purchased. Quantity is never stored, it is derived by counting rows that
// share the same (section, product) key.
type ItemRow struct {
	ID          int64           `json:"id"`
	SectionID   int64           `json:"ID_secao"`
	ProductID   int64           `json:"Produto"`
	Name        string          `json:"nome_produto"`
	Description string          `json:"descricao_produto"`
	Price       decimal.Decimal `json:"preco_produto"`
	ImageURL    string          `json:"URL_image"`
}

// ComboRow is one combo instance in the bag. The base price is fixed; each
// chosen component may carry a surcharge. The salad is implicit and free.
type ComboRow struct {
	ID              int64           `json:"Id"`
	SectionID       int64           `json:"ID_secao"`
	FirstName       string          `json:"primeiro_produto_nome"`
	FirstImageURL   string          `json:"primeiro_produto_imagem"`
	FirstSurcharge  decimal.Decimal `json:"primeiro_produto_acrescimo"`
	SecondName      string          `json:"segundo_produto_nome"`
	SecondImageURL  string          `json:"segundo_produto_imagem"`
	SecondSurcharge decimal.Decimal `json:"segundo_produto_acrescimo"`
}

// RedemptionRow is a point-redemption entry in the bag; it costs points, not
// currency, and never participates in the money total.
type RedemptionRow struct {
	ID          int64  `json:"id"`
	SectionID   int64  `json:"ID_secao"`
	ProductID   int64  `json:"Produto_pontos"`
	Name        string `json:"nome_Promocao"`
	Description string `json:"descricao_promocao"`
	ImageURL    string `json:"URL_image"`
	PointCost   int64  `json:"custo_pontos"`
}

// AddItemRequest inserts one unit of a product into a section's bag.
type AddItemRequest struct {
	SectionID int64 `json:"ID_secao"`
	ProductID int64 `json:"Produto"`
}

// AddComboRequest records a built combo. Only the two chosen component ids
// travel; the backend owns combo pricing.
type AddComboRequest struct {
	SectionID int64 `json:"ID_secao"`
	FirstID   int64 `json:"primeiro_produto"`
	SecondID  int64 `json:"Segundo_produto"`
}

// AddRedemptionRequest inserts a point redemption into a section's bag.
type AddRedemptionRequest struct {
	SectionID int64 `json:"ID_secao"`
	ProductID int64 `json:"Produto_pontos"`
}
