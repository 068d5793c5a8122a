package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every valid status in workflow order.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// ParseOrderStatus validates a raw status value. Transitions between
// statuses are unrestricted; only membership is checked.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	for _, s := range OrderStatuses {
		if OrderStatus(raw) == s {
			return s, nil
		}
	}
	return "", &ValidationError{Field: "status", Value: raw, Reason: "unknown order status"}
}

// Order records a customer purchase. ProductName, Total and Profit are
// snapshots taken at order time; they do not follow later product changes,
// and ProductID may dangle after the product is deleted.
type Order struct {
	ID              string          `json:"-"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Quantity        int             `json:"quantity"`
	Total           decimal.Decimal `json:"total"`
	Profit          decimal.Decimal `json:"profit"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	ShippingAddress string          `json:"shipping_address"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	CreatedBy       string          `json:"created_by"`
}

// Customer carries the buyer details captured on the order form.
type Customer struct {
	Name            string
	Email           string
	ShippingAddress string
}

// NewOrder builds a pending order for qty units of p, pricing it from the
// product's current price and supplier cost.
func NewOrder(id string, p Product, qty int, c Customer, actorID string) Order {
	q := decimal.NewFromInt(int64(qty))
	return Order{
		ID:              id,
		ProductID:       p.ID,
		ProductName:     p.Name,
		Quantity:        qty,
		Total:           p.Price.Mul(q),
		Profit:          p.UnitProfit().Mul(q),
		CustomerName:    c.Name,
		CustomerEmail:   c.Email,
		ShippingAddress: c.ShippingAddress,
		Status:          StatusPending,
		CreatedAt:       time.Now().UTC(),
		CreatedBy:       actorID,
	}
}
