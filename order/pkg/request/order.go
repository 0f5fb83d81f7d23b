package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateOrder struct {
	CustomerName    string          `validate:"required"            json:"customer_name"`
	CustomerPhone   string          `validate:"required"            json:"customer_phone"`
	CustomerAddress string          `validate:"required"            json:"customer_address"`
	Notes           string          `                               json:"notes"`
	Items           []OrderItem     `validate:"required,gt=0,dive"  json:"items"`
	TotalAmount     decimal.Decimal `validate:"gte=0"               json:"total_amount"`
}

type OrderItem struct {
	ProductID   uuid.UUID       `validate:"required"       json:"product_id"`
	ProductName string          `validate:"required"       json:"product_name"`
	Quantity    int32           `validate:"required,gte=1" json:"quantity"`
	Price       decimal.Decimal `validate:"gte=0"          json:"price"`
}
