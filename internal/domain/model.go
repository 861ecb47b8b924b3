package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Password     string    `json:"password"` // stored verbatim, compared verbatim
	RegisteredAt time.Time `json:"registered_at"`
}

// CardDetails is what the customer fills in when requesting a card.
type CardDetails struct {
	IdentityDocument string `json:"identity_document"`
	Phone            string `json:"phone"`
	DeliveryMethod   string `json:"delivery_method"` // pickup | courier
	Branch           string `json:"branch"`          // pickup branch or delivery address
	Bank             string `json:"bank"`
}

type Card struct {
	ID               int       `json:"id"`
	CustomerID       string    `json:"customer_id"`
	CustomerName     string    `json:"customer_name"` // display only, not a key
	IdentityDocument string    `json:"identity_document"`
	Phone            string    `json:"phone"`
	DeliveryMethod   string    `json:"delivery_method"`
	Branch           string    `json:"branch"`
	Bank             string    `json:"bank"`
	Points           int       `json:"points"`
	IssuedAt         time.Time `json:"issued_at"`
	FrontImage       string    `json:"front_image,omitempty"`
	BackImage        string    `json:"back_image,omitempty"`
	QRImage          string    `json:"qr_image,omitempty"`
}

type OrderItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category,omitempty"`
}

type Order struct {
	ID           int             `json:"id"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Items        []OrderItem     `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Bank         string          `json:"bank,omitempty"`
	PlacedAt     time.Time       `json:"placed_at"`
}

type MenuItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

type Promotion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}
