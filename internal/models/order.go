package models

import (
	"time"

	"github.com/gocql/gocql"
)

type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type Order struct {
	ID              gocql.UUID  `json:"id" db:"order_id"`
	UserID          gocql.UUID  `json:"userId" db:"user_id"`
	Items           []OrderItem `json:"items"`
	Total           float64     `json:"total" db:"total"`
	Status          string      `json:"status" db:"status"`
	PaymentIntentID string      `json:"paymentIntentId,omitempty" db:"payment_intent_id"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
}
