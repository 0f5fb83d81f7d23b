package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJsonResponse(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteJsonResponse(
		context.Background(),
		rec,
		map[string]string{HeaderRequestID: "req-1"},
		map[string]interface{}{
			"status":     StatusSuccess,
			"statusCode": http.StatusCreated,
			"categories": []string{"Médicaments"},
		},
	)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, HeaderValueJson, rec.Header().Get(HeaderContentType))
	assert.Equal(t, "req-1", rec.Header().Get(HeaderRequestID))

	body := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, []interface{}{"Médicaments"}, body["categories"])
}

func TestWriteFailedResponse(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteFailedResponse(context.Background(), rec, http.StatusNotFound, errors.New("product not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, StatusFailed, body["status"])
	assert.Equal(t, "product not found", body["message"])
}
