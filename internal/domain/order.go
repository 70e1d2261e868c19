package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const OrderStatusNew OrderStatus = "new"

// LineItem captures one cart line at commit time. Price and line total are a
// snapshot, decoupled from later catalog price changes.
type LineItem struct {
	Slug      string          `json:"slug"`
	Qty       int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartSnapshot is the cart resolved against the catalog at a point in time.
type CartSnapshot struct {
	Items      []LineItem      `json:"items"`
	Total      decimal.Decimal `json:"total"`
	CapturedAt time.Time       `json:"captured_at"`
}

func (s CartSnapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

// CheckoutInfo is the buyer-supplied part of an order.
type CheckoutInfo struct {
	BuyerName    string
	BuyerContact string
	Address      string
	Note         string
	Lang         string
}

// Order is immutable once committed. The ledger only ever prepends new
// orders; nothing in the normal flow mutates or deletes an existing one.
type Order struct {
	ID           string          `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	BuyerName    string          `json:"buyer_name"`
	BuyerContact string          `json:"buyer_contact"`
	Address      string          `json:"address"`
	Note         string          `json:"note"`
	LineItems    []LineItem      `json:"line_items"`
	Total        decimal.Decimal `json:"total"`
	Status       OrderStatus     `json:"status"`
	Lang         string          `json:"lang"`
}
