package request

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ProductID   string          `json:"product_id"   validate:"required"`
	ProductName string          `json:"product_name" validate:"required"`
	Quantity    int             `json:"quantity"     validate:"required,gte=1"`
	Price       decimal.Decimal `json:"price"        validate:"gte=0"`
}

type OrderRequest struct {
	CustomerName    string          `json:"customer_name"    validate:"required"`
	CustomerPhone   string          `json:"customer_phone"   validate:"required"`
	CustomerAddress string          `json:"customer_address" validate:"required"`
	Notes           string          `json:"notes"`
	Items           []OrderItem     `json:"items"            validate:"required,gt=0,dive"`
	TotalAmount     decimal.Decimal `json:"total_amount"     validate:"gte=0"`
}

// MarshalJSON writes Price as a JSON number.
func (i OrderItem) MarshalJSON() ([]byte, error) {
	type item OrderItem
	return json.Marshal(struct {
		item
		Price json.Number `json:"price"`
	}{item: item(i), Price: json.Number(i.Price.String())})
}

// MarshalJSON writes TotalAmount as a JSON number.
func (r OrderRequest) MarshalJSON() ([]byte, error) {
	type order OrderRequest
	return json.Marshal(struct {
		order
		TotalAmount json.Number `json:"total_amount"`
	}{order: order(r), TotalAmount: json.Number(r.TotalAmount.String())})
}

// OrderForm holds the customer fields typed into the order form.
type OrderForm struct {
	CustomerName    string `validate:"required"`
	CustomerPhone   string `validate:"required"`
	CustomerAddress string `validate:"required"`
	Notes           string
}
