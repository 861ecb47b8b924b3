package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Messages published to the loyalty_topic exchange.

type CardIssuedEvent struct {
	CardID       int       `json:"card_id"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Points       int       `json:"points"`
	IssuedAt     time.Time `json:"issued_at"`
}

type OrderPlacedEvent struct {
	OrderID      int             `json:"order_id"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Total        decimal.Decimal `json:"total"`
	PointsEarned int             `json:"points_earned"`
	PlacedAt     time.Time       `json:"placed_at"`
}
