package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/pharmacy/internal/repository"
	"github.com/Alturino/pharmacy/product/internal/service"
)

type fakeRepository struct {
	products []repository.Product
}

func (f fakeRepository) FindProducts(c context.Context) ([]repository.Product, error) {
	return f.products, nil
}

func (f fakeRepository) FindProductById(c context.Context, id uuid.UUID) (repository.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return repository.Product{}, pgx.ErrNoRows
}

func (f fakeRepository) FindProductsByCategory(c context.Context, category string) ([]repository.Product, error) {
	found := []repository.Product{}
	for _, p := range f.products {
		if p.Category == category {
			found = append(found, p)
		}
	}
	return found, nil
}

func (f fakeRepository) FindCategories(c context.Context) ([]string, error) {
	return []string{"Cosmétiques", "Médicaments"}, nil
}

func (f fakeRepository) CountProducts(c context.Context) (int64, error) {
	return int64(len(f.products)), nil
}

func (f fakeRepository) InsertProduct(c context.Context, arg repository.InsertProductParams) (repository.Product, error) {
	return repository.Product{}, nil
}

func newRouter(t *testing.T, products ...repository.Product) *mux.Router {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	router := mux.NewRouter()
	svc := service.NewProductService(fakeRepository{products: products}, client, time.Minute)
	AttachProductController(router.PathPrefix("/api").Subrouter(), svc)
	return router
}

func TestProductController(t *testing.T) {
	paracetamol := repository.Product{
		ID:       uuid.New(),
		Name:     "Paracétamol 500mg",
		Category: "Médicaments",
		Price:    repository.NumericFromDecimal(decimal.NewFromInt(150)),
		InStock:  true,
	}
	creme := repository.Product{
		ID:       uuid.New(),
		Name:     "Crème Hydratante",
		Category: "Cosmétiques",
		Price:    repository.NumericFromDecimal(decimal.NewFromInt(1200)),
		InStock:  true,
	}

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		assertBody     func(t *testing.T, body map[string]json.RawMessage)
	}{
		{
			name:           "list products",
			path:           "/api/products",
			expectedStatus: http.StatusOK,
			assertBody: func(t *testing.T, body map[string]json.RawMessage) {
				products := []map[string]interface{}{}
				require.NoError(t, json.Unmarshal(body["products"], &products))
				assert.Len(t, products, 2)
			},
		},
		{
			name:           "list products by category",
			path:           "/api/products/category/Cosm%C3%A9tiques",
			expectedStatus: http.StatusOK,
			assertBody: func(t *testing.T, body map[string]json.RawMessage) {
				products := []map[string]interface{}{}
				require.NoError(t, json.Unmarshal(body["products"], &products))
				require.Len(t, products, 1)
				assert.Equal(t, "Crème Hydratante", products[0]["name"])
			},
		},
		{
			name:           "get product by id",
			path:           "/api/products/" + paracetamol.ID.String(),
			expectedStatus: http.StatusOK,
			assertBody: func(t *testing.T, body map[string]json.RawMessage) {
				product := map[string]interface{}{}
				require.NoError(t, json.Unmarshal(body["product"], &product))
				assert.Equal(t, paracetamol.ID.String(), product["id"])
			},
		},
		{
			name:           "unknown product is not found",
			path:           "/api/products/" + uuid.NewString(),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed product id is a bad request",
			path:           "/api/products/not-a-uuid",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "list categories",
			path:           "/api/categories",
			expectedStatus: http.StatusOK,
			assertBody: func(t *testing.T, body map[string]json.RawMessage) {
				categories := []string{}
				require.NoError(t, json.Unmarshal(body["categories"], &categories))
				assert.Equal(t, []string{"Cosmétiques", "Médicaments"}, categories)
			},
		},
	}

	router := newRouter(t, paracetamol, creme)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, test.path, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, test.expectedStatus, rec.Code)
			body := map[string]json.RawMessage{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if test.assertBody != nil {
				test.assertBody(t, body)
			}
		})
	}
}
