package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/fitting-backend/internal/domain"
)

func newSearchUC(cache *fakeCache, emb *fakeEmbeddings, prod *fakeProducts, cacheEnabled bool) *SearchUseCase {
	return NewSearchUseCase(nopLogger{}, cache, emb, prod, CacheCapability{Enabled: cacheEnabled})
}

func TestSearchSimilarProducts_SourceMatrix(t *testing.T) {
	ctx := context.Background()

	pgResults := []SearchResult{
		{Record: testRecord(1, "jacket", "man_outer", 100), Similarity: 0.9, Vector: testVector(0.1)},
	}
	cacheResults := []SearchResult{
		{Record: testRecord(2, "shirt", "man_top", 50), Similarity: 0.8, Vector: testVector(0.2)},
	}

	t.Run("cache hit", func(t *testing.T) {
		cache := newFakeCache()
		cache.searchResults = cacheResults
		uc := newSearchUC(cache, &fakeEmbeddings{searchResults: pgResults}, &fakeProducts{}, true)

		res := uc.SearchSimilarProducts(ctx, NewSearchReq(testVector(0.1), 10, true))
		assert.Equal(t, SourceCache, res.Source)
		assert.Equal(t, 1, res.ResultCount)
		assert.Equal(t, int64(2), res.Results[0].Record.Pos)
		assert.Empty(t, res.Error)
	})

	t.Run("empty cache falls through to postgres", func(t *testing.T) {
		cache := newFakeCache()
		uc := newSearchUC(cache, &fakeEmbeddings{searchResults: pgResults}, &fakeProducts{}, true)

		res := uc.SearchSimilarProducts(ctx, NewSearchReq(testVector(0.1), 10, true))
		assert.Equal(t, SourcePostgres, res.Source)
		assert.Equal(t, 1, res.ResultCount)
	})

	t.Run("cache error marks fallback", func(t *testing.T) {
		cache := newFakeCache()
		cache.searchErr = errors.New("redis down")
		uc := newSearchUC(cache, &fakeEmbeddings{searchResults: pgResults}, &fakeProducts{}, true)

		res := uc.SearchSimilarProducts(ctx, NewSearchReq(testVector(0.1), 10, true))
		assert.Equal(t, SourceCacheErrorFallback, res.Source)
		assert.Equal(t, 1, res.ResultCount)
	})

	t.Run("cache disabled goes straight to postgres", func(t *testing.T) {
		cache := newFakeCache()
		cache.searchResults = cacheResults
		uc := newSearchUC(cache, &fakeEmbeddings{searchResults: pgResults}, &fakeProducts{}, false)

		res := uc.SearchSimilarProducts(ctx, NewSearchReq(testVector(0.1), 10, true))
		assert.Equal(t, SourcePostgres, res.Source)
	})

	t.Run("use_cache false skips cache", func(t *testing.T) {
		cache := newFakeCache()
		cache.searchErr = errors.New("must not be called")
		uc := newSearchUC(cache, &fakeEmbeddings{searchResults: pgResults}, &fakeProducts{}, true)

		res := uc.SearchSimilarProducts(ctx, NewSearchReq(testVector(0.1), 10, false))
		assert.Equal(t, SourcePostgres, res.Source)
	})

	t.Run("postgres error yields structured error", func(t *testing.T) {
		cache := newFakeCache()
		uc := newSearchUC(cache, &fakeEmbeddings{err: errors.New("store down")}, &fakeProducts{}, false)

		res := uc.SearchSimilarProducts(ctx, NewSearchReq(testVector(0.1), 10, true))
		assert.Equal(t, SourceError, res.Source)
		assert.Zero(t, res.ResultCount)
		assert.NotEmpty(t, res.Error)
		assert.NotNil(t, res.Results)
	})

	t.Run("invalid vector is rejected before backends", func(t *testing.T) {
		uc := newSearchUC(newFakeCache(), &fakeEmbeddings{}, &fakeProducts{}, true)

		res := uc.SearchSimilarProducts(ctx, NewSearchReq([]float32{1, 2, 3}, 10, true))
		assert.Equal(t, SourceError, res.Source)
		assert.NotEmpty(t, res.Error)
	})
}

func TestSearchSimilarProducts_WriteBack(t *testing.T) {
	ctx := context.Background()

	pgResults := []SearchResult{
		{Record: testRecord(7, "coat", "woman_outer", 200), Similarity: 0.95, Vector: testVector(0.3)},
	}

	t.Run("fallback results are cached", func(t *testing.T) {
		cache := newFakeCache()
		uc := newSearchUC(cache, &fakeEmbeddings{searchResults: pgResults}, &fakeProducts{}, true)

		res := uc.SearchSimilarProducts(ctx, NewSearchReq(testVector(0.1), 10, true))
		require.Equal(t, SourcePostgres, res.Source)
		assert.Contains(t, cache.vectors, int64(7))
		assert.Contains(t, cache.products, int64(7))
	})

	t.Run("write back skipped when caching not requested", func(t *testing.T) {
		cache := newFakeCache()
		uc := newSearchUC(cache, &fakeEmbeddings{searchResults: pgResults}, &fakeProducts{}, true)

		res := uc.SearchSimilarProducts(ctx, NewSearchReq(testVector(0.1), 10, false))
		require.Equal(t, SourcePostgres, res.Source)
		assert.Empty(t, cache.vectors)
		assert.Empty(t, cache.products)
	})

	t.Run("write back failures do not affect response", func(t *testing.T) {
		cache := newFakeCache()
		cache.failWrites = true
		uc := newSearchUC(cache, &fakeEmbeddings{searchResults: pgResults}, &fakeProducts{}, true)

		res := uc.SearchSimilarProducts(ctx, NewSearchReq(testVector(0.1), 10, true))
		assert.Equal(t, SourcePostgres, res.Source)
		assert.Equal(t, 1, res.ResultCount)
	})
}

func TestGetProductDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit", func(t *testing.T) {
		cache := newFakeCache()
		record := testRecord(3, "boots", "man_shoes", 80)
		cache.products[3] = record

		uc := newSearchUC(cache, &fakeEmbeddings{}, &fakeProducts{}, true)

		got, source, err := uc.GetProductDetail(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, SourceCache, source)
		assert.Equal(t, record.Title, got.Title)
	})

	t.Run("miss reads postgres and caches", func(t *testing.T) {
		cache := newFakeCache()
		prod := &fakeProducts{byPos: map[int64]domain.ProductRecord{
			4: testRecord(4, "item", "man_top", 10),
		}}

		uc := newSearchUC(cache, &fakeEmbeddings{}, prod, true)

		got, source, err := uc.GetProductDetail(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, SourcePostgres, source)
		assert.Equal(t, int64(4), got.Pos)
		assert.Contains(t, cache.products, int64(4))
	})

	t.Run("invalid position", func(t *testing.T) {
		uc := newSearchUC(newFakeCache(), &fakeEmbeddings{}, &fakeProducts{}, false)

		_, source, err := uc.GetProductDetail(ctx, 0)
		assert.Error(t, err)
		assert.Equal(t, SourceError, source)
	})

	t.Run("missing record is not found", func(t *testing.T) {
		uc := newSearchUC(newFakeCache(), &fakeEmbeddings{}, &fakeProducts{}, false)

		got, source, err := uc.GetProductDetail(ctx, 6)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
		assert.Nil(t, got)
		assert.Equal(t, SourceError, source)
	})

	t.Run("unreachable store yields absent, not error", func(t *testing.T) {
		prod := &fakeProducts{err: errors.New("store down")}
		uc := newSearchUC(newFakeCache(), &fakeEmbeddings{}, prod, false)

		got, source, err := uc.GetProductDetail(ctx, 5)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Equal(t, SourceError, source)
	})
}
