package errors

import (
	"errors"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyOrderItems      = errors.New("order has no items")
	ErrInvalidPayload       = errors.New("invalid payload")
)
