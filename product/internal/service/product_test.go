package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/pharmacy/internal/errors"
	"github.com/Alturino/pharmacy/internal/repository"
	"github.com/Alturino/pharmacy/product/internal/cache"
	"github.com/Alturino/pharmacy/product/pkg/request"
)

type stubRepository struct {
	products []repository.Product
	err      error
	calls    map[string]int
}

func newStubRepository(products ...repository.Product) *stubRepository {
	return &stubRepository{products: products, calls: map[string]int{}}
}

func (s *stubRepository) FindProducts(c context.Context) ([]repository.Product, error) {
	s.calls["FindProducts"]++
	if s.err != nil {
		return nil, s.err
	}
	return append([]repository.Product{}, s.products...), nil
}

func (s *stubRepository) FindProductById(c context.Context, id uuid.UUID) (repository.Product, error) {
	s.calls["FindProductById"]++
	if s.err != nil {
		return repository.Product{}, s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return repository.Product{}, pgx.ErrNoRows
}

func (s *stubRepository) FindProductsByCategory(c context.Context, category string) ([]repository.Product, error) {
	s.calls["FindProductsByCategory"]++
	if s.err != nil {
		return nil, s.err
	}
	found := []repository.Product{}
	for _, p := range s.products {
		if p.Category == category {
			found = append(found, p)
		}
	}
	return found, nil
}

func (s *stubRepository) FindCategories(c context.Context) ([]string, error) {
	s.calls["FindCategories"]++
	if s.err != nil {
		return nil, s.err
	}
	seen := map[string]bool{}
	categories := []string{}
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories, nil
}

func (s *stubRepository) CountProducts(c context.Context) (int64, error) {
	s.calls["CountProducts"]++
	return int64(len(s.products)), s.err
}

func (s *stubRepository) InsertProduct(c context.Context, arg repository.InsertProductParams) (repository.Product, error) {
	s.calls["InsertProduct"]++
	if s.err != nil {
		return repository.Product{}, s.err
	}
	p := repository.Product{
		ID:          uuid.New(),
		Name:        arg.Name,
		Category:    arg.Category,
		Description: arg.Description,
		Price:       arg.Price,
		ImageUrl:    arg.ImageUrl,
		InStock:     arg.InStock,
		CreatedAt:   pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	s.products = append(s.products, p)
	return p, nil
}

func product(name, category, price string) repository.Product {
	return repository.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: category,
		Price:    repository.NumericFromDecimal(decimal.RequireFromString(price)),
		InStock:  true,
	}
}

func setup(t *testing.T, repo *stubRepository) (*ProductService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewProductService(repo, client, time.Minute), mr
}

func TestFindProducts(t *testing.T) {
	t.Run("second call is served from cache", func(t *testing.T) {
		repo := newStubRepository(
			product("Paracétamol 500mg", "Médicaments", "150"),
			product("Crème Hydratante", "Cosmétiques", "1200.50"),
		)
		svc, mr := setup(t, repo)
		c := context.Background()

		first, err := svc.FindProducts(c)
		require.NoError(t, err)
		require.Len(t, first, 2)
		assert.True(t, mr.Exists(cache.KeyProducts))
		assert.Equal(t, time.Minute, mr.TTL(cache.KeyProducts))

		second, err := svc.FindProducts(c)
		require.NoError(t, err)
		assert.Equal(t, 1, repo.calls["FindProducts"])
		require.Len(t, second, 2)
		assert.Equal(t, first[0].ID, second[0].ID)
		assert.True(t, first[1].Price.Equal(second[1].Price))
	})

	t.Run("database error is returned", func(t *testing.T) {
		repo := newStubRepository()
		repo.err = errors.New("connection refused")
		svc, mr := setup(t, repo)

		_, err := svc.FindProducts(context.Background())
		assert.Error(t, err)
		assert.False(t, mr.Exists(cache.KeyProducts))
	})

	t.Run("corrupt cache entry falls back to database", func(t *testing.T) {
		repo := newStubRepository(product("Sirop pour la Toux", "Médicaments", "300"))
		svc, mr := setup(t, repo)
		require.NoError(t, mr.Set(cache.KeyProducts, "{not json"))

		products, err := svc.FindProducts(context.Background())
		require.NoError(t, err)
		assert.Len(t, products, 1)
		assert.Equal(t, 1, repo.calls["FindProducts"])
	})
}

func TestFindProductById(t *testing.T) {
	known := product("Sérum Anti-Âge", "Cosmétiques", "2500")
	tests := []struct {
		name        string
		id          uuid.UUID
		expectedErr error
	}{
		{name: "known product", id: known.ID},
		{name: "unknown product", id: uuid.New(), expectedErr: inErrors.ErrProductNotFound},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			svc, _ := setup(t, newStubRepository(known))

			p, err := svc.FindProductById(context.Background(), test.id)
			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, known.Name, p.Name)
		})
	}
}

func TestFindProductsByCategoryAndCategories(t *testing.T) {
	repo := newStubRepository(
		product("Paracétamol 500mg", "Médicaments", "150"),
		product("Vitamines C 1000mg", "Compléments", "800"),
		product("Ibuprofène 400mg", "Médicaments", "200"),
	)
	svc, _ := setup(t, repo)
	c := context.Background()

	medicines, err := svc.FindProductsByCategory(c, "Médicaments")
	require.NoError(t, err)
	assert.Len(t, medicines, 2)

	_, err = svc.FindProductsByCategory(c, "Médicaments")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls["FindProductsByCategory"])

	categories, err := svc.FindCategories(c)
	require.NoError(t, err)
	assert.Equal(t, []string{"Médicaments", "Compléments"}, categories)

	_, err = svc.FindCategories(c)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls["FindCategories"])
}

func TestSeedProducts(t *testing.T) {
	t.Run("empty catalog is seeded and cache invalidated", func(t *testing.T) {
		repo := newStubRepository()
		svc, mr := setup(t, repo)
		require.NoError(t, mr.Set(cache.KeyProducts, "[]"))
		require.NoError(t, mr.Set(cache.KeyCategoryProducts+"Médicaments", "[]"))

		inserted, err := svc.SeedProducts(context.Background(), SampleProducts)
		require.NoError(t, err)
		assert.Equal(t, len(SampleProducts), inserted)
		assert.Len(t, repo.products, 6)
		assert.False(t, mr.Exists(cache.KeyProducts))
		assert.False(t, mr.Exists(cache.KeyCategoryProducts+"Médicaments"))
	})

	t.Run("non empty catalog is left untouched", func(t *testing.T) {
		repo := newStubRepository(product("Paracétamol 500mg", "Médicaments", "150"))
		svc, _ := setup(t, repo)

		inserted, err := svc.SeedProducts(context.Background(), SampleProducts)
		require.NoError(t, err)
		assert.Equal(t, 0, inserted)
		assert.Equal(t, 0, repo.calls["InsertProduct"])
	})

	t.Run("invalid product stops seeding", func(t *testing.T) {
		repo := newStubRepository()
		svc, _ := setup(t, repo)

		inserted, err := svc.SeedProducts(context.Background(), []request.Product{
			{Name: "Négatif", Category: "Médicaments", Price: decimal.NewFromInt(-1)},
		})
		assert.Error(t, err)
		assert.Equal(t, 0, inserted)
	})
}
