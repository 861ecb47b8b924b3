package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token      string `json:"token"`
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
}

type RequestCardRequest struct {
	IdentityDocument string `json:"identity_document"`
	Phone            string `json:"phone"`
	DeliveryMethod   string `json:"delivery_method"`
	Branch           string `json:"branch"`
	Bank             string `json:"bank"`
}

type RequestCardResponse struct {
	CardID     int       `json:"card_id"`
	Points     int       `json:"points"`
	Created    bool      `json:"created"` // false when the existing card was returned
	IssuedAt   time.Time `json:"issued_at"`
	FrontImage string    `json:"front_image,omitempty"`
	BackImage  string    `json:"back_image,omitempty"`
	QRImage    string    `json:"qr_image,omitempty"`
}

type PlaceOrderItem struct {
	Name string `json:"name"`
}

type PlaceOrderRequest struct {
	Items []PlaceOrderItem `json:"items"`
	Bank  string           `json:"bank,omitempty"`
}

type PlaceOrderResponse struct {
	OrderID      int             `json:"order_id"`
	Total        decimal.Decimal `json:"total"`
	PointsEarned int             `json:"points_earned"`
	PointBalance int             `json:"point_balance"`
	PlacedAt     time.Time       `json:"placed_at"`
}
