package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"

	inHttp "github.com/Alturino/pharmacy/internal/http"
	"github.com/Alturino/pharmacy/internal/log"
	inOtel "github.com/Alturino/pharmacy/internal/otel"
	"github.com/Alturino/pharmacy/storefront/internal/otel"
	"github.com/Alturino/pharmacy/storefront/pkg/request"
	"github.com/Alturino/pharmacy/storefront/pkg/response"
)

var ErrUnexpectedStatus = errors.New("unexpected status")

// BackendClient talks to the pharmacy REST api.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewBackendClient(baseURL string, timeout time.Duration) *BackendClient {
	return &BackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
	}
}

func (b *BackendClient) GetProducts(c context.Context) ([]response.Product, error) {
	body := response.Products{}
	if err := b.do(c, http.MethodGet, "/api/products", nil, &body); err != nil {
		return nil, err
	}
	return body.Products, nil
}

func (b *BackendClient) GetCategories(c context.Context) ([]string, error) {
	body := response.Categories{}
	if err := b.do(c, http.MethodGet, "/api/categories", nil, &body); err != nil {
		return nil, err
	}
	return body.Categories, nil
}

func (b *BackendClient) GetConversations(c context.Context) ([]response.Conversation, error) {
	body := response.Conversations{}
	if err := b.do(c, http.MethodGet, "/api/conversations", nil, &body); err != nil {
		return nil, err
	}
	return body.Conversations, nil
}

func (b *BackendClient) PostOrder(c context.Context, order request.OrderRequest) error {
	return b.do(c, http.MethodPost, "/api/orders", order, nil)
}

func (b *BackendClient) PostConversation(c context.Context, message request.ContactMessage) error {
	return b.do(c, http.MethodPost, "/api/conversations", message, nil)
}

// do sends payload as JSON when non-nil and decodes the response into out when non-nil.
// Any status outside 2xx is an error.
func (b *BackendClient) do(c context.Context, method, path string, payload interface{}, out interface{}) error {
	c, span := otel.Tracer.Start(c, "BackendClient "+method+" "+path)
	defer span.End()

	url := b.baseURL + path
	span.SetAttributes(attribute.String(log.KeyRequestMethod, method), attribute.String(log.KeyRequestURL, url))
	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "BackendClient do").
		Str(log.KeyRequestMethod, method).
		Str(log.KeyRequestURL, url).
		Logger()

	var reader io.Reader
	if payload != nil {
		logger = logger.With().Str(log.KeyProcess, "encoding request body").Logger()
		logger.Trace().Msg("encoding request body")
		encoded, err := json.Marshal(payload)
		if err != nil {
			err = fmt.Errorf("failed encoding request body with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
		reader = bytes.NewReader(encoded)
		logger.Trace().Msg("encoded request body")
	}

	logger = logger.With().Str(log.KeyProcess, "sending request").Logger()
	logger.Trace().Msg("sending request")
	req, err := http.NewRequestWithContext(c, method, url, reader)
	if err != nil {
		err = fmt.Errorf("failed creating request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	req.Header.Set("Accept", inHttp.HeaderValueJson)
	if payload != nil {
		req.Header.Set(inHttp.HeaderContentType, inHttp.HeaderValueJson)
	}
	if requestID := log.RequestIDFromContext(c); requestID != "" {
		req.Header.Set(inHttp.HeaderRequestID, requestID)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed sending request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int(log.KeyResponseStatus, resp.StatusCode))
	logger = logger.With().Int(log.KeyResponseStatus, resp.StatusCode).Logger()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		err = fmt.Errorf("failed %s %s with error=%w status=%d", method, path, ErrUnexpectedStatus, resp.StatusCode)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("sent request")

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	logger = logger.With().Str(log.KeyProcess, "decoding response body").Logger()
	logger.Trace().Msg("decoding response body")
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		err = fmt.Errorf("failed decoding response body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("decoded response body")

	return nil
}
