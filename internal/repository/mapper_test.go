package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationResponse(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		reply pgtype.Text
		want  *string
	}{
		{
			name:  "pending conversation has no reply",
			reply: pgtype.Text{},
			want:  nil,
		},
		{
			name:  "responded conversation carries the reply",
			reply: pgtype.Text{String: "Oui, en stock.", Valid: true},
			want:  func() *string { s := "Oui, en stock."; return &s }(),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			id := uuid.New()
			row := Conversation{
				ID:            id,
				CustomerName:  "Amina",
				CustomerPhone: "0555123456",
				Message:       "Avez-vous du paracétamol ?",
				Reply:         test.reply,
				Status:        "pending",
				CreatedAt:     pgtype.Timestamptz{Time: createdAt, Valid: true},
			}

			res := row.Response()

			assert.Equal(t, id, res.ID)
			assert.Equal(t, "Amina", res.CustomerName)
			assert.Equal(t, "Avez-vous du paracétamol ?", res.Message)
			assert.True(t, createdAt.Equal(res.CreatedAt))
			if test.want == nil {
				assert.Nil(t, res.Response)
				return
			}
			require.NotNil(t, res.Response)
			assert.Equal(t, *test.want, *res.Response)
		})
	}
}
