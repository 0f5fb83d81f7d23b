package response

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusResponded = "responded"
)

type Conversation struct {
	ID            uuid.UUID `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	Message       string    `json:"message"`
	Response      *string   `json:"response"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
