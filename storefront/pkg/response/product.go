package response

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	InStock     bool            `json:"in_stock"`
}

type Products struct {
	Products []Product `json:"products"`
}

type Categories struct {
	Categories []string `json:"categories"`
}

type Conversation struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	Message       string    `json:"message"`
	Response      *string   `json:"response"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type Conversations struct {
	Conversations []Conversation `json:"conversations"`
}
