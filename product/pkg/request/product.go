package request

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	Name        string          `validate:"required"       json:"name"`
	Category    string          `validate:"required"       json:"category"`
	Description string          `                          json:"description"`
	Price       decimal.Decimal `validate:"gte=0"          json:"price"`
	ImageURL    string          `validate:"omitempty,url"  json:"image_url"`
	InStock     bool            `                          json:"in_stock"`
}
