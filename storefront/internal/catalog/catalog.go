package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Alturino/pharmacy/internal/log"
	inOtel "github.com/Alturino/pharmacy/internal/otel"
	"github.com/Alturino/pharmacy/storefront/internal/otel"
	"github.com/Alturino/pharmacy/storefront/pkg/response"
)

type Source interface {
	GetProducts(c context.Context) ([]response.Product, error)
	GetCategories(c context.Context) ([]string, error)
}

// Catalog holds the last successfully fetched products and categories.
type Catalog struct {
	source Source

	mu         sync.RWMutex
	products   []response.Product
	categories []string
}

func New(source Source) *Catalog {
	return &Catalog{source: source}
}

// Load fetches products and categories concurrently. A failed fetch keeps the previous list
// and is only logged; the returned error joins both failures for callers that report them.
// Results arriving after c is cancelled are dropped.
func (s *Catalog) Load(c context.Context) error {
	c, span := otel.Tracer.Start(c, "Catalog Load")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "Catalog Load").
		Str(log.KeyProcess, "loading catalog").
		Logger()
	logger.Trace().Msg("loading catalog")
	c = logger.WithContext(c)

	var (
		wg                         sync.WaitGroup
		products                   []response.Product
		categories                 []string
		productsErr, categoriesErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		products, productsErr = s.source.GetProducts(c)
	}()
	go func() {
		defer wg.Done()
		categories, categoriesErr = s.source.GetCategories(c)
	}()
	wg.Wait()

	if err := c.Err(); err != nil {
		err = fmt.Errorf("discarded catalog load with error=%w", err)
		logger.Debug().Err(err).Msg(err.Error())
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if productsErr != nil {
		productsErr = fmt.Errorf("failed fetching products with error=%w", productsErr)
		inOtel.RecordError(productsErr, span)
		logger.Error().Err(productsErr).Msg(productsErr.Error())
	} else {
		s.products = products
		logger.Info().Int(log.KeyProducts, len(products)).Msg("fetched products")
	}
	if categoriesErr != nil {
		categoriesErr = fmt.Errorf("failed fetching categories with error=%w", categoriesErr)
		inOtel.RecordError(categoriesErr, span)
		logger.Error().Err(categoriesErr).Msg(categoriesErr.Error())
	} else {
		s.categories = categories
		logger.Info().Int(log.KeyCategories, len(categories)).Msg("fetched categories")
	}

	return errors.Join(productsErr, categoriesErr)
}

func (s *Catalog) Products() []response.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]response.Product, len(s.products))
	copy(products, s.products)
	return products
}

func (s *Catalog) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	categories := make([]string, len(s.categories))
	copy(categories, s.categories)
	return categories
}

func (s *Catalog) Product(id string) (response.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, product := range s.products {
		if product.ID == id {
			return product, true
		}
	}
	return response.Product{}, false
}
