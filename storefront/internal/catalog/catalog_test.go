package catalog

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/pharmacy/storefront/pkg/response"
)

type fakeSource struct {
	products      []response.Product
	categories    []string
	productsErr   error
	categoriesErr error
	onFetch       func()
}

func (f *fakeSource) GetProducts(c context.Context) ([]response.Product, error) {
	if f.onFetch != nil {
		f.onFetch()
	}
	return f.products, f.productsErr
}

func (f *fakeSource) GetCategories(c context.Context) ([]string, error) {
	return f.categories, f.categoriesErr
}

var aspirin = response.Product{ID: "1", Name: "Aspirin", Category: "Medicine", Price: decimal.RequireFromString("12.5")}

func TestLoad(t *testing.T) {
	source := &fakeSource{products: []response.Product{aspirin}, categories: []string{"Medicine"}}
	catalog := New(source)

	require.NoError(t, catalog.Load(context.Background()))
	assert.Equal(t, []response.Product{aspirin}, catalog.Products())
	assert.Equal(t, []string{"Medicine"}, catalog.Categories())

	product, ok := catalog.Product("1")
	assert.True(t, ok)
	assert.Equal(t, "Aspirin", product.Name)
	_, ok = catalog.Product("2")
	assert.False(t, ok)
}

func TestLoadFailureKeepsPreviousState(t *testing.T) {
	tests := []struct {
		name               string
		productsErr        error
		categoriesErr      error
		expectedProducts   int
		expectedCategories []string
	}{
		{name: "products failure", productsErr: errors.New("timeout"), expectedProducts: 1, expectedCategories: []string{"Soins"}},
		{name: "categories failure", categoriesErr: errors.New("502"), expectedProducts: 0, expectedCategories: []string{"Medicine"}},
		{name: "both fail", productsErr: errors.New("a"), categoriesErr: errors.New("b"), expectedProducts: 1, expectedCategories: []string{"Medicine"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buffer := &bytes.Buffer{}
			c := zerolog.New(buffer).WithContext(context.Background())

			source := &fakeSource{products: []response.Product{aspirin}, categories: []string{"Medicine"}}
			catalog := New(source)
			require.NoError(t, catalog.Load(c))

			source.products = []response.Product{}
			source.categories = []string{"Soins"}
			source.productsErr = test.productsErr
			source.categoriesErr = test.categoriesErr

			err := catalog.Load(c)
			assert.Error(t, err)
			assert.Len(t, catalog.Products(), test.expectedProducts)
			assert.Equal(t, test.expectedCategories, catalog.Categories())
			assert.Contains(t, buffer.String(), `"level":"error"`)
		})
	}
}

func TestInitialFailureLeavesEmpty(t *testing.T) {
	catalog := New(&fakeSource{productsErr: errors.New("down"), categoriesErr: errors.New("down")})

	assert.Error(t, catalog.Load(context.Background()))
	assert.Empty(t, catalog.Products())
	assert.Empty(t, catalog.Categories())
}

func TestLoadDiscardsAfterCancel(t *testing.T) {
	c, cancel := context.WithCancel(context.Background())
	source := &fakeSource{products: []response.Product{aspirin}, categories: []string{"Medicine"}, onFetch: cancel}
	catalog := New(source)

	err := catalog.Load(c)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, catalog.Products())
	assert.Empty(t, catalog.Categories())
}
