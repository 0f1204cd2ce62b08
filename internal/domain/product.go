package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry as the listing endpoints return it.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"nome_produto"`
	Description string          `json:"descricao_produto"`
	Price       decimal.Decimal `json:"preco_produto"`
	ImageURL    string          `json:"URL_image"`
	CategoryID  int64           `json:"categoria_id"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

// StockProduct is the per-store stock listing shape; the stock endpoint names
// its fields differently from the plain catalog.
type StockProduct struct {
	ID          int64           `json:"id"`
	Name        string          `json:"nome"`
	Description string          `json:"descricao"`
	Price       decimal.Decimal `json:"preco"`
	ImageURL    string          `json:"imagem"`
	CategoryID  int64           `json:"categoria"`
}

// Product converts a stock row into the common catalog shape.
func (s StockProduct) Product() Product {
	return Product{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		ImageURL:    s.ImageURL,
		CategoryID:  s.CategoryID,
	}
}

// ComboProduct is a combo-eligible product. Category 1 holds slices,
// category 2 holds sides; the surcharge is added on top of the combo base.
type ComboProduct struct {
	ID         int64           `json:"id"`
	Name       string          `json:"Produto"`
	ImageURL   string          `json:"URL_imagem"`
	CategoryID int64           `json:"categoria_id"`
	Surcharge  decimal.Decimal `json:"acrecimo_valor"`
}

const (
	ComboCategorySlice int64 = 1
	ComboCategorySide  int64 = 2
)

// RewardProduct is a catalog entry redeemable with points instead of money.
type RewardProduct struct {
	ID          int64  `json:"id"`
	Name        string `json:"nome_Promocao"`
	Description string `json:"descricao_promocao"`
	ImageURL    string `json:"URL_image"`
	PointCost   int64  `json:"custo_pontos"`
	CategoryID  int64  `json:"categoria_id"`
}
