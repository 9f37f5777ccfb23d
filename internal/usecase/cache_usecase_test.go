package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/fitting-backend/internal/domain"
	"github.com/DRSN-tech/fitting-backend/pkg/e"
)

func warmUpFixture(n int64) (*fakeEmbeddings, *fakeProducts, []int64) {
	emb := &fakeEmbeddings{byPos: make(map[int64][]float32)}
	prod := &fakeProducts{byPos: make(map[int64]domain.ProductRecord)}

	positions := make([]int64, 0, n)
	for pos := int64(1); pos <= n; pos++ {
		positions = append(positions, pos)
		emb.byPos[pos] = testVector(float32(pos))
		prod.byPos[pos] = testRecord(pos, "item", "man_top", 10)
	}

	return emb, prod, positions
}

func TestWarmUp(t *testing.T) {
	ctx := context.Background()

	t.Run("splits positions into batches", func(t *testing.T) {
		emb, prod, positions := warmUpFixture(250)
		cache := newFakeCache()
		uc := NewCacheUseCase(nopLogger{}, cache, emb, prod, CacheCapability{Enabled: true})

		res, err := uc.WarmUp(ctx, NewWarmUpReq(positions, 50))
		require.NoError(t, err)

		assert.Equal(t, 250, res.Vectors)
		assert.Equal(t, 250, res.Products)
		assert.Zero(t, res.Errors)
		require.Len(t, emb.batchCalls, 5)
		for _, batch := range emb.batchCalls {
			assert.Len(t, batch, 50)
		}
	})

	t.Run("failing batch is tallied and warm up continues", func(t *testing.T) {
		emb, prod, positions := warmUpFixture(250)
		emb.failBatch = 2
		cache := newFakeCache()
		uc := NewCacheUseCase(nopLogger{}, cache, emb, prod, CacheCapability{Enabled: true})

		res, err := uc.WarmUp(ctx, NewWarmUpReq(positions, 50))
		require.NoError(t, err)

		assert.Equal(t, 200, res.Vectors)
		assert.Equal(t, 250, res.Products)
		assert.Equal(t, 50, res.Errors)
	})

	t.Run("batch size is clamped", func(t *testing.T) {
		emb, prod, positions := warmUpFixture(30)
		cache := newFakeCache()
		uc := NewCacheUseCase(nopLogger{}, cache, emb, prod, CacheCapability{Enabled: true})

		_, err := uc.WarmUp(ctx, NewWarmUpReq(positions, 1))
		require.NoError(t, err)

		// минимум 10 на батч
		require.Len(t, emb.batchCalls, 3)
	})

	t.Run("rejects empty positions", func(t *testing.T) {
		uc := NewCacheUseCase(nopLogger{}, newFakeCache(), &fakeEmbeddings{}, &fakeProducts{}, CacheCapability{Enabled: true})

		_, err := uc.WarmUp(ctx, NewWarmUpReq(nil, 50))
		assert.ErrorIs(t, err, e.ErrNoPositions)
	})

	t.Run("rejects more than limit positions", func(t *testing.T) {
		_, _, positions := warmUpFixture(MaxWarmUpIDs + 1)
		uc := NewCacheUseCase(nopLogger{}, newFakeCache(), &fakeEmbeddings{}, &fakeProducts{}, CacheCapability{Enabled: true})

		_, err := uc.WarmUp(ctx, NewWarmUpReq(positions, 50))
		assert.ErrorIs(t, err, e.ErrTooManyWarmUpIDs)
	})

	t.Run("rejects when cache disabled", func(t *testing.T) {
		uc := NewCacheUseCase(nopLogger{}, newFakeCache(), &fakeEmbeddings{}, &fakeProducts{}, CacheCapability{Enabled: false})

		_, err := uc.WarmUp(ctx, NewWarmUpReq([]int64{1}, 50))
		assert.ErrorIs(t, err, e.ErrCacheDisabled)
	})
}

func TestCacheStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		uc := NewCacheUseCase(nopLogger{}, newFakeCache(), &fakeEmbeddings{}, &fakeProducts{}, CacheCapability{Enabled: false})

		res := uc.Status(ctx)
		assert.Equal(t, "disabled", res.Status)
		assert.False(t, res.Enabled)
	})

	t.Run("healthy with stats", func(t *testing.T) {
		uc := NewCacheUseCase(nopLogger{}, newFakeCache(), &fakeEmbeddings{}, &fakeProducts{}, CacheCapability{Enabled: true})

		res := uc.Status(ctx)
		assert.Equal(t, "healthy", res.Status)
		assert.True(t, res.Enabled)
		assert.NotNil(t, res.Stats)
	})
}
