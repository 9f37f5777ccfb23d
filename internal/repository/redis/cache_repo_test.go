package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/fitting-backend/internal/cfg"
	"github.com/DRSN-tech/fitting-backend/internal/domain"
	"github.com/DRSN-tech/fitting-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/fitting-backend/pkg/clients"
	"github.com/DRSN-tech/fitting-backend/pkg/e"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

func setupRepo(t *testing.T) (*miniredis.Miniredis, *CacheRepo) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	redisCfg := &cfg.RedisCfg{
		Enabled:    true,
		Addr:       mr.Addr(),
		DefaultTTL: 30 * time.Minute,
	}

	client := clients.NewRedisClient(redisCfg)
	t.Cleanup(func() { _ = client.Client.Close() })

	return mr, NewCacheRepo(client, converter.NewProductRecordConverter(), redisCfg, nopLogger{})
}

func testVector(seed float32) []float32 {
	v := make([]float32, domain.EmbeddingDim)
	for i := range v {
		v[i] = seed
	}

	return v
}

func testRecord(pos int64) *domain.ProductRecord {
	updated := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

	return &domain.ProductRecord{
		Pos:        pos,
		Title:      "denim jacket",
		Brand:      "acme",
		Price:      decimal.NewFromFloat(79.90),
		Category:   "man_outer",
		Gender:     "male",
		ProductURL: "https://example.com/p/1",
		ImageURL:   "https://example.com/i/1.jpg",
		Tags:       []string{"denim", "casual"},
		CreatedAt:  time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC),
		UpdatedAt:  &updated,
	}
}

func TestCacheVector(t *testing.T) {
	ctx := context.Background()
	mr, repo := setupRepo(t)

	t.Run("round trip with ttl", func(t *testing.T) {
		vec := testVector(0.25)
		require.NoError(t, repo.CacheVector(ctx, 42, vec, 0))

		got, err := repo.GetCachedVector(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, vec, got)

		assert.Greater(t, mr.TTL("vector:42"), time.Duration(0))
	})

	t.Run("overwrite is last write wins", func(t *testing.T) {
		require.NoError(t, repo.CacheVector(ctx, 42, testVector(0.1), 0))
		require.NoError(t, repo.CacheVector(ctx, 42, testVector(0.9), 0))

		got, err := repo.GetCachedVector(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, float32(0.9), got[0])
	})

	t.Run("explicit ttl overrides default", func(t *testing.T) {
		require.NoError(t, repo.CacheVector(ctx, 43, testVector(0.4), 10*time.Minute))
		assert.Equal(t, 10*time.Minute, mr.TTL("vector:43"))

		require.NoError(t, repo.CacheProduct(ctx, testRecord(43), 5*time.Minute))
		assert.Equal(t, 5*time.Minute, mr.TTL("product:43"))
	})

	t.Run("wrong dimension rejected", func(t *testing.T) {
		err := repo.CacheVector(ctx, 7, []float32{1, 2, 3}, 0)
		assert.ErrorIs(t, err, e.ErrInvalidVectorDim)
	})

	t.Run("miss returns nil without error", func(t *testing.T) {
		got, err := repo.GetCachedVector(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestCacheProduct(t *testing.T) {
	ctx := context.Background()
	_, repo := setupRepo(t)

	t.Run("round trip normalizes fields", func(t *testing.T) {
		record := testRecord(5)
		require.NoError(t, repo.CacheProduct(ctx, record, 0))

		got, err := repo.GetCachedProduct(ctx, 5)
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, record.Pos, got.Pos)
		assert.Equal(t, record.Title, got.Title)
		assert.Equal(t, record.Tags, got.Tags)
		assert.True(t, got.CreatedAt.Equal(record.CreatedAt))
		require.NotNil(t, got.UpdatedAt)
		assert.True(t, got.UpdatedAt.Equal(*record.UpdatedAt))
		assert.InDelta(t, 79.90, got.Price.InexactFloat64(), 1e-6)
	})

	t.Run("miss returns nil without error", func(t *testing.T) {
		got, err := repo.GetCachedProduct(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestSearchCachedVectors(t *testing.T) {
	ctx := context.Background()
	_, repo := setupRepo(t)

	query := testVector(0.0)

	t.Run("empty cache gives empty slice", func(t *testing.T) {
		results, err := repo.SearchCachedVectors(ctx, query, 10)
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})

	t.Run("nearest pair first, incomplete pairs skipped", func(t *testing.T) {
		// близкий вектор с товаром
		require.NoError(t, repo.CacheVector(ctx, 1, testVector(0.01), 0))
		require.NoError(t, repo.CacheProduct(ctx, testRecord(1), 0))

		// дальний вектор с товаром
		require.NoError(t, repo.CacheVector(ctx, 2, testVector(0.5), 0))
		require.NoError(t, repo.CacheProduct(ctx, testRecord(2), 0))

		// вектор без товара — не попадает в выдачу
		require.NoError(t, repo.CacheVector(ctx, 3, testVector(0.02), 0))

		results, err := repo.SearchCachedVectors(ctx, query, 10)
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, int64(1), results[0].Record.Pos)
		assert.Equal(t, int64(2), results[1].Record.Pos)
		assert.Greater(t, results[0].Similarity, results[1].Similarity)
		assert.Equal(t, testVector(0.01), results[0].Vector)
	})

	t.Run("limit truncates", func(t *testing.T) {
		results, err := repo.SearchCachedVectors(ctx, query, 1)
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("invalid query vector rejected", func(t *testing.T) {
		_, err := repo.SearchCachedVectors(ctx, []float32{1, 2}, 10)
		assert.ErrorIs(t, err, e.ErrInvalidVectorDim)
	})
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	_, repo := setupRepo(t)

	require.NoError(t, repo.CacheVector(ctx, 1, testVector(0.1), 0))
	require.NoError(t, repo.CacheVector(ctx, 2, testVector(0.2), 0))
	require.NoError(t, repo.CacheProduct(ctx, testRecord(1), 0))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats["total_vectors"])
	assert.Equal(t, 1, stats["total_products"])
	assert.Equal(t, int64(3), stats["total_keys"])
	assert.Equal(t, int(30*time.Minute.Seconds()), stats["default_ttl"])
}

func TestStats_BackendUnreachable(t *testing.T) {
	mr, repo := setupRepo(t)
	mr.Close()

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stats)
}
