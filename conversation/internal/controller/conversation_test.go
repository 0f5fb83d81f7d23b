package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/pharmacy/conversation/internal/service"
	"github.com/Alturino/pharmacy/internal/repository"
)

type fakeRepository struct {
	rows []repository.Conversation
}

func (f *fakeRepository) InsertConversation(c context.Context, arg repository.InsertConversationParams) (repository.Conversation, error) {
	row := repository.Conversation{
		ID:            arg.ID,
		CustomerName:  arg.CustomerName,
		CustomerPhone: arg.CustomerPhone,
		Message:       arg.Message,
		Status:        arg.Status,
		CreatedAt:     pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	f.rows = append([]repository.Conversation{row}, f.rows...)
	return row, nil
}

func (f *fakeRepository) FindConversations(c context.Context) ([]repository.Conversation, error) {
	return f.rows, nil
}

func (f *fakeRepository) RespondConversation(c context.Context, arg repository.RespondConversationParams) (repository.Conversation, error) {
	for i := range f.rows {
		if f.rows[i].ID == arg.ID {
			f.rows[i].Reply = pgtype.Text{String: arg.Response, Valid: true}
			f.rows[i].Status = arg.Status
			return f.rows[i], nil
		}
	}
	return repository.Conversation{}, pgx.ErrNoRows
}

func newRouter(t *testing.T) *mux.Router {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	router := mux.NewRouter()
	svc := service.NewConversationService(&fakeRepository{}, client)
	AttachConversationController(router.PathPrefix("/api").Subrouter(), svc)
	return router
}

func serve(router *mux.Router, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	decoded := map[string]interface{}{}
	_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	return rec, decoded
}

func TestConversationController(t *testing.T) {
	router := newRouter(t)

	rec, body := serve(router, http.MethodPost, "/api/conversations",
		`{"customer_name":"Karim","customer_phone":"0661","message":"Avez-vous du sirop ?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Message envoyé avec succès", body["message"])
	id, ok := body["conversation_id"].(string)
	require.True(t, ok)

	rec, body = serve(router, http.MethodGet, "/api/conversations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	conversations, ok := body["conversations"].([]interface{})
	require.True(t, ok)
	assert.Len(t, conversations, 1)

	tests := []struct {
		name           string
		path           string
		body           string
		expectedStatus int
	}{
		{
			name:           "respond to existing conversation",
			path:           "/api/conversations/" + id + "/respond",
			body:           `{"response":"Oui, en stock."}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "respond to unknown conversation",
			path:           "/api/conversations/" + uuid.NewString() + "/respond",
			body:           `{"response":"Oui"}`,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "empty response is rejected",
			path:           "/api/conversations/" + id + "/respond",
			body:           `{"response":""}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed id is rejected",
			path:           "/api/conversations/abc/respond",
			body:           `{"response":"Oui"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec, _ := serve(router, http.MethodPut, test.path, test.body)
			assert.Equal(t, test.expectedStatus, rec.Code)
		})
	}
}

func TestCreateConversationRejectsMissingFields(t *testing.T) {
	router := newRouter(t)

	rec, body := serve(router, http.MethodPost, "/api/conversations", `{"customer_name":"Karim","message":"Bonjour"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "failed", body["status"])
}
