package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/pharmacy/conversation/pkg/request"
	"github.com/Alturino/pharmacy/conversation/pkg/response"
	"github.com/Alturino/pharmacy/internal/constants"
	inErrors "github.com/Alturino/pharmacy/internal/errors"
	"github.com/Alturino/pharmacy/internal/event"
	"github.com/Alturino/pharmacy/internal/metrics"
	"github.com/Alturino/pharmacy/internal/repository"
)

type memoryRepository struct {
	rows []repository.Conversation
	err  error
}

func (m *memoryRepository) InsertConversation(c context.Context, arg repository.InsertConversationParams) (repository.Conversation, error) {
	if m.err != nil {
		return repository.Conversation{}, m.err
	}
	row := repository.Conversation{
		ID:            arg.ID,
		CustomerName:  arg.CustomerName,
		CustomerPhone: arg.CustomerPhone,
		Message:       arg.Message,
		Status:        arg.Status,
		CreatedAt:     pgtype.Timestamptz{Time: time.Now().Add(time.Duration(len(m.rows)) * time.Second), Valid: true},
	}
	m.rows = append(m.rows, row)
	return row, nil
}

func (m *memoryRepository) FindConversations(c context.Context) ([]repository.Conversation, error) {
	if m.err != nil {
		return nil, m.err
	}
	rows := append([]repository.Conversation{}, m.rows...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.Time.After(rows[j].CreatedAt.Time) })
	return rows, nil
}

func (m *memoryRepository) RespondConversation(c context.Context, arg repository.RespondConversationParams) (repository.Conversation, error) {
	for i := range m.rows {
		if m.rows[i].ID == arg.ID {
			m.rows[i].Reply = pgtype.Text{String: arg.Response, Valid: true}
			m.rows[i].Status = arg.Status
			return m.rows[i], nil
		}
	}
	return repository.Conversation{}, pgx.ErrNoRows
}

func newService(t *testing.T, repo *memoryRepository) (*ConversationService, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewConversationService(repo, client), client
}

func TestCreateConversation(t *testing.T) {
	svc, client := newService(t, &memoryRepository{})
	c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pubsub := client.Subscribe(c, constants.ChannelConversationCreated)
	defer pubsub.Close()
	_, err := pubsub.Receive(c)
	require.NoError(t, err)

	before := testutil.ToFloat64(metrics.ConversationsCreated)
	created, err := svc.CreateConversation(c, request.CreateConversation{
		CustomerName:  "Karim",
		CustomerPhone: "0661 00 00 00",
		Message:       "Avez-vous du sirop ?",
	})
	require.NoError(t, err)
	assert.Equal(t, response.StatusPending, created.Status)
	assert.Nil(t, created.Response)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ConversationsCreated))

	msg, err := pubsub.ReceiveMessage(c)
	require.NoError(t, err)
	_, e, err := event.Decode(c, msg.Payload)
	require.NoError(t, err)
	published := response.Conversation{}
	require.NoError(t, json.Unmarshal(e.Payload, &published))
	assert.Equal(t, created.ID, published.ID)
}

func TestCreateConversationRepositoryError(t *testing.T) {
	svc, _ := newService(t, &memoryRepository{err: errors.New("connection reset")})

	_, err := svc.CreateConversation(context.Background(), request.CreateConversation{
		CustomerName:  "Karim",
		CustomerPhone: "0661",
		Message:       "Bonjour",
	})
	assert.Error(t, err)
}

func TestFindAndRespondConversations(t *testing.T) {
	repo := &memoryRepository{}
	svc, _ := newService(t, repo)
	c := context.Background()

	first, err := svc.CreateConversation(c, request.CreateConversation{CustomerName: "A", CustomerPhone: "1", Message: "premier"})
	require.NoError(t, err)
	second, err := svc.CreateConversation(c, request.CreateConversation{CustomerName: "B", CustomerPhone: "2", Message: "second"})
	require.NoError(t, err)

	conversations, err := svc.FindConversations(c)
	require.NoError(t, err)
	require.Len(t, conversations, 2)
	assert.Equal(t, second.ID, conversations[0].ID)

	tests := []struct {
		name        string
		id          uuid.UUID
		expectedErr error
	}{
		{name: "existing conversation", id: first.ID},
		{name: "unknown conversation", id: uuid.New(), expectedErr: inErrors.ErrConversationNotFound},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			responded, err := svc.RespondConversation(c, test.id, request.RespondConversation{Response: "Oui, en stock."})
			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, response.StatusResponded, responded.Status)
			require.NotNil(t, responded.Response)
			assert.Equal(t, "Oui, en stock.", *responded.Response)
		})
	}
}
