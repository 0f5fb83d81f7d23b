package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/pharmacy/internal/errors"
	"github.com/Alturino/pharmacy/internal/log"
	"github.com/Alturino/pharmacy/internal/metrics"
	inOtel "github.com/Alturino/pharmacy/internal/otel"
	"github.com/Alturino/pharmacy/internal/repository"
	"github.com/Alturino/pharmacy/internal/validate"
	"github.com/Alturino/pharmacy/product/internal/cache"
	"github.com/Alturino/pharmacy/product/internal/otel"
	"github.com/Alturino/pharmacy/product/pkg/request"
	"github.com/Alturino/pharmacy/product/pkg/response"
)

type ProductRepository interface {
	FindProducts(c context.Context) ([]repository.Product, error)
	FindProductById(c context.Context, id uuid.UUID) (repository.Product, error)
	FindProductsByCategory(c context.Context, category string) ([]repository.Product, error)
	FindCategories(c context.Context) ([]string, error)
	CountProducts(c context.Context) (int64, error)
	InsertProduct(c context.Context, arg repository.InsertProductParams) (repository.Product, error)
}

type ProductService struct {
	queries ProductRepository
	cache   *redis.Client
	ttl     time.Duration
}

func NewProductService(
	queries ProductRepository,
	cache *redis.Client,
	ttl time.Duration,
) *ProductService {
	return &ProductService{queries: queries, cache: cache, ttl: ttl}
}

func (svc *ProductService) FindProducts(c context.Context) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "ProductService FindProducts").
		Str(log.KeyCacheKey, cache.KeyProducts).
		Logger()

	products := []response.Product{}
	c = logger.WithContext(c)
	if svc.getCache(c, cache.KeyProducts, &products) {
		span.AddEvent("found products in cache")
		return products, nil
	}

	logger = logger.With().Str(log.KeyProcess, "finding products in database").Logger()
	logger.Trace().Msg("finding products in database")
	span.AddEvent("finding products in database")
	rows, err := svc.queries.FindProducts(c)
	if err != nil {
		err = fmt.Errorf("failed finding products in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	for _, row := range rows {
		products = append(products, row.Response())
	}
	span.AddEvent("found products in database")
	logger.Info().Int(log.KeyProducts, len(products)).Msg("found products in database")

	c = logger.WithContext(c)
	svc.setCache(c, cache.KeyProducts, products)
	return products, nil
}

func (svc *ProductService) FindProductById(
	c context.Context,
	id uuid.UUID,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	cacheKey := cache.KeyProductPrefix + id.String()
	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "ProductService FindProductById").
		Str(log.KeyProductID, id.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	product := response.Product{}
	c = logger.WithContext(c)
	if svc.getCache(c, cacheKey, &product) {
		span.AddEvent("found product in cache")
		return product, nil
	}

	logger = logger.With().Str(log.KeyProcess, "finding product in database").Logger()
	logger.Trace().Msg("finding product in database")
	span.AddEvent("finding product in database")
	row, err := svc.queries.FindProductById(c, id)
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("failed finding product id=%s with error=%w", id.String(), inErrors.ErrProductNotFound)
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	if err != nil {
		err = fmt.Errorf("failed finding product in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	product = row.Response()
	span.AddEvent("found product in database")
	logger.Info().Any(log.KeyProduct, product).Msg("found product in database")

	c = logger.WithContext(c)
	svc.setCache(c, cacheKey, product)
	return product, nil
}

func (svc *ProductService) FindProductsByCategory(
	c context.Context,
	category string,
) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductsByCategory")
	defer span.End()

	cacheKey := cache.KeyCategoryProducts + category
	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "ProductService FindProductsByCategory").
		Str(log.KeyCategory, category).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	products := []response.Product{}
	c = logger.WithContext(c)
	if svc.getCache(c, cacheKey, &products) {
		span.AddEvent("found products in cache")
		return products, nil
	}

	logger = logger.With().Str(log.KeyProcess, "finding products by category in database").Logger()
	logger.Trace().Msg("finding products by category in database")
	rows, err := svc.queries.FindProductsByCategory(c, category)
	if err != nil {
		err = fmt.Errorf("failed finding products by category in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	for _, row := range rows {
		products = append(products, row.Response())
	}
	logger.Info().Int(log.KeyProducts, len(products)).Msg("found products by category in database")

	c = logger.WithContext(c)
	svc.setCache(c, cacheKey, products)
	return products, nil
}

func (svc *ProductService) FindCategories(c context.Context) ([]string, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindCategories")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "ProductService FindCategories").
		Str(log.KeyCacheKey, cache.KeyCategories).
		Logger()

	categories := []string{}
	c = logger.WithContext(c)
	if svc.getCache(c, cache.KeyCategories, &categories) {
		span.AddEvent("found categories in cache")
		return categories, nil
	}

	logger = logger.With().Str(log.KeyProcess, "finding categories in database").Logger()
	logger.Trace().Msg("finding categories in database")
	categories, err := svc.queries.FindCategories(c)
	if err != nil {
		err = fmt.Errorf("failed finding categories in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Strs(log.KeyCategories, categories).Msg("found categories in database")

	c = logger.WithContext(c)
	svc.setCache(c, cache.KeyCategories, categories)
	return categories, nil
}

// SeedProducts inserts products only when the catalog is empty and returns how many rows
// were written.
func (svc *ProductService) SeedProducts(c context.Context, products []request.Product) (int, error) {
	c, span := otel.Tracer.Start(c, "ProductService SeedProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "ProductService SeedProducts").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "counting products").Logger()
	logger.Trace().Msg("counting products")
	count, err := svc.queries.CountProducts(c)
	if err != nil {
		err = fmt.Errorf("failed counting products with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return 0, err
	}
	if count > 0 {
		logger.Info().Int64(log.KeyProducts, count).Msg("catalog already seeded")
		return 0, nil
	}
	logger.Info().Msg("catalog is empty")

	logger = logger.With().Str(log.KeyProcess, "seeding products").Logger()
	logger.Info().Msg("seeding products")
	v := validate.New()
	inserted := 0
	for _, p := range products {
		if err := v.StructCtx(c, p); err != nil {
			err = fmt.Errorf("failed validating product name=%s with error=%w", p.Name, err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return inserted, err
		}
		_, err := svc.queries.InsertProduct(c, repository.InsertProductParams{
			Name:        p.Name,
			Category:    p.Category,
			Description: p.Description,
			Price:       repository.NumericFromDecimal(p.Price),
			ImageUrl:    p.ImageURL,
			InStock:     p.InStock,
		})
		if err != nil {
			err = fmt.Errorf("failed inserting product name=%s with error=%w", p.Name, err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return inserted, err
		}
		inserted++
	}
	logger.Info().Int(log.KeyProducts, inserted).Msg("seeded products")

	c = logger.WithContext(c)
	svc.invalidateCache(c)
	return inserted, nil
}

func (svc *ProductService) getCache(c context.Context, key string, dst interface{}) bool {
	logger := zerolog.Ctx(c).With().Ctx(c).Str(log.KeyProcess, "finding in cache").Logger()
	logger.Trace().Msg("finding in cache")

	jsonCache, err := svc.cache.Get(c, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			err = fmt.Errorf("failed getting cache with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
		}
		metrics.CacheRequests.WithLabelValues(key, metrics.CacheMiss).Inc()
		logger.Debug().Msg("cache miss")
		return false
	}

	if err := json.Unmarshal([]byte(jsonCache), dst); err != nil {
		err = fmt.Errorf("failed unmarshalling cache with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		metrics.CacheRequests.WithLabelValues(key, metrics.CacheMiss).Inc()
		return false
	}
	metrics.CacheRequests.WithLabelValues(key, metrics.CacheHit).Inc()
	logger.Debug().Msg("cache hit")
	return true
}

func (svc *ProductService) setCache(c context.Context, key string, value interface{}) {
	logger := zerolog.Ctx(c).With().Ctx(c).Str(log.KeyProcess, "inserting to cache").Logger()
	logger.Trace().Msg("inserting to cache")

	data, err := json.Marshal(value)
	if err != nil {
		err = fmt.Errorf("failed marshalling cache value with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	if err := svc.cache.Set(c, key, data, svc.ttl).Err(); err != nil {
		err = fmt.Errorf("failed inserting to cache with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Debug().Msg("inserted to cache")
}

func (svc *ProductService) invalidateCache(c context.Context) {
	logger := zerolog.Ctx(c).With().Ctx(c).Str(log.KeyProcess, "invalidating cache").Logger()
	logger.Trace().Msg("invalidating cache")

	keys := []string{cache.KeyProducts, cache.KeyCategories}
	for _, pattern := range []string{cache.KeyProductPrefix + "*", cache.KeyCategoryProducts + "*"} {
		found, err := svc.cache.Keys(c, pattern).Result()
		if err != nil {
			err = fmt.Errorf("failed listing cache keys with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			continue
		}
		keys = append(keys, found...)
	}
	if err := svc.cache.Del(c, keys...).Err(); err != nil {
		err = fmt.Errorf("failed invalidating cache with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Debug().Strs(log.KeyCacheKey, keys).Msg("invalidated cache")
}
