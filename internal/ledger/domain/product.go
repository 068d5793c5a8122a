package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxDescriptionLength caps product descriptions.
const MaxDescriptionLength = 1000

// Product is a catalog entry. The ID is the snapshot map key and is not
// serialized inside the record itself.
type Product struct {
	ID           string          `json:"-"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	SupplierCost decimal.Decimal `json:"supplier_cost"`
	Stock        int             `json:"stock"`
	ProfitMargin decimal.Decimal `json:"profit_margin"`
	CreatedAt    time.Time       `json:"created_at"`
	Active       bool            `json:"active"`
}

// NewProduct builds a product and derives its profit margin from price and
// supplier cost. The margin is rounded to two places and stored; it is not
// recomputed when stock or price change later.
func NewProduct(id, name, description string, price, cost decimal.Decimal, stock int) Product {
	margin := decimal.Zero
	if price.IsPositive() {
		margin = price.Sub(cost).Div(price).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return Product{
		ID:           id,
		Name:         name,
		Description:  description,
		Price:        price,
		SupplierCost: cost,
		Stock:        stock,
		ProfitMargin: margin,
		CreatedAt:    time.Now().UTC(),
		Active:       true,
	}
}

// UnitProfit is the per-unit profit at the current price and cost.
func (p Product) UnitProfit() decimal.Decimal {
	return p.Price.Sub(p.SupplierCost)
}
