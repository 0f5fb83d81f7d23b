package repository

import (
	"encoding/json"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	conversationResponse "github.com/Alturino/pharmacy/conversation/pkg/response"
	orderResponse "github.com/Alturino/pharmacy/order/pkg/response"
	productResponse "github.com/Alturino/pharmacy/product/pkg/response"
)

func NumericFromDecimal(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Int:              d.Coefficient(),
		Exp:              d.Exponent(),
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}
}

func DecimalFromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func (p Product) Response() productResponse.Product {
	return productResponse.Product{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       DecimalFromNumeric(p.Price),
		ImageURL:    p.ImageUrl,
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt.Time,
	}
}

func (o Order) Response(items []orderResponse.OrderItem) orderResponse.Order {
	if items == nil {
		items = []orderResponse.OrderItem{}
	}
	return orderResponse.Order{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		Notes:           o.Notes,
		Items:           items,
		TotalAmount:     DecimalFromNumeric(o.TotalAmount),
		Status:          o.Status,
		CreatedAt:       o.CreatedAt.Time,
	}
}

func (o FindOrdersRow) Response() (orderResponse.Order, error) {
	orderItems := []orderResponse.OrderItem{}
	err := json.Unmarshal(o.OrderItems, &orderItems)
	if err != nil {
		return orderResponse.Order{}, err
	}
	return Order{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		Notes:           o.Notes,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
	}.Response(orderItems), nil
}

func (c Conversation) Response() conversationResponse.Conversation {
	var response *string
	if c.Reply.Valid {
		text := c.Reply.String
		response = &text
	}
	return conversationResponse.Conversation{
		ID:            c.ID,
		CustomerName:  c.CustomerName,
		CustomerPhone: c.CustomerPhone,
		Message:       c.Message,
		Response:      response,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt.Time,
	}
}
