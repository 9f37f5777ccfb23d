package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/fitting-backend/internal/cfg"
	"github.com/DRSN-tech/fitting-backend/internal/domain"
	"github.com/DRSN-tech/fitting-backend/pkg/e"
)

func defaultIndexCfg() *cfg.IndexCfg {
	return &cfg.IndexCfg{
		ExactWeight:    1.0,
		PartialWeight:  0.5,
		ScoreThreshold: 0.0,
		MaxPerCategory: 10,
	}
}

func newIndex(products []domain.ProductRecord) *ProductIndex {
	return NewProductIndex(nopLogger{}, &fakeCatalog{products: products, available: true}, defaultIndexCfg())
}

func TestFindSimilar_Scoring(t *testing.T) {
	products := []domain.ProductRecord{
		testRecord(1, "casual cotton shirt", "man_top", 30, "casual"),
		testRecord(2, "formal shirt", "man_top", 60, "formal"),
		testRecord(3, "running shoes", "man_shoes", 90, "sport"),
	}
	idx := newIndex(products)

	buckets, err := idx.FindSimilar([]string{"casual", "shirt"}, FindSimilarOpts{MaxPerCategory: 10, IncludeScore: true})
	require.NoError(t, err)

	tops := buckets["top"]
	require.Len(t, tops, 2)

	// "casual cotton shirt" совпадает по обоим ключам, "formal shirt" — по одному
	assert.Equal(t, "1", tops[0].ID)
	assert.Equal(t, "2", tops[1].ID)
	require.NotNil(t, tops[0].Score)
	require.NotNil(t, tops[1].Score)
	assert.Greater(t, *tops[0].Score, *tops[1].Score)

	// обувь не совпала ни по одному ключу
	assert.NotContains(t, buckets, "shoes")
}

func TestFindSimilar_TieKeepsCatalogOrder(t *testing.T) {
	products := []domain.ProductRecord{
		testRecord(10, "blue shirt", "man_top", 10),
		testRecord(11, "red shirt", "man_top", 10),
		testRecord(12, "green shirt", "man_top", 10),
	}
	idx := newIndex(products)

	buckets, err := idx.FindSimilar([]string{"shirt"}, FindSimilarOpts{MaxPerCategory: 10})
	require.NoError(t, err)

	tops := buckets["top"]
	require.Len(t, tops, 3)
	assert.Equal(t, []string{"10", "11", "12"}, []string{tops[0].ID, tops[1].ID, tops[2].ID})
}

func TestFindSimilar_PartialTokenMatch(t *testing.T) {
	products := []domain.ProductRecord{
		testRecord(1, "denim jacket", "man_outer", 70),
	}
	idx := newIndex(products)

	// ключ целиком не входит, но токен "jacket" совпадает
	buckets, err := idx.FindSimilar([]string{"leather jacket"}, FindSimilarOpts{MaxPerCategory: 10, IncludeScore: true})
	require.NoError(t, err)

	outer := buckets["outer"]
	require.Len(t, outer, 1)
	assert.InDelta(t, 0.5, *outer[0].Score, 1e-9)
}

func TestFindSimilar_Filters(t *testing.T) {
	products := []domain.ProductRecord{
		testRecord(1, "cheap shirt", "man_top", 10),
		testRecord(2, "mid shirt", "man_top", 50),
		testRecord(3, "pricey shirt", "man_top", 500, "luxury"),
	}
	idx := newIndex(products)

	minPrice := int64(20)
	maxPrice := int64(100)
	buckets, err := idx.FindSimilar([]string{"shirt"}, FindSimilarOpts{
		MaxPerCategory: 10,
		MinPrice:       &minPrice,
		MaxPrice:       &maxPrice,
		ExcludeTags:    []string{"luxury"},
	})
	require.NoError(t, err)

	tops := buckets["top"]
	require.Len(t, tops, 1)
	assert.Equal(t, "2", tops[0].ID)
}

func TestFindSimilar_MaxPerCategoryClamp(t *testing.T) {
	products := make([]domain.ProductRecord, 0, 60)
	for pos := int64(1); pos <= 60; pos++ {
		products = append(products, testRecord(pos, "shirt", "man_top", 10))
	}
	idx := newIndex(products)

	buckets, err := idx.FindSimilar([]string{"shirt"}, FindSimilarOpts{MaxPerCategory: 300})
	require.NoError(t, err)
	assert.Len(t, buckets["top"], MaxPerCategory)
}

func TestFindSimilar_CatalogUnavailable(t *testing.T) {
	idx := NewProductIndex(nopLogger{}, &fakeCatalog{available: false}, defaultIndexCfg())

	_, err := idx.FindSimilar([]string{"shirt"}, FindSimilarOpts{MaxPerCategory: 10})
	assert.ErrorIs(t, err, e.ErrCatalogUnavailable)
}

func TestRandomProducts(t *testing.T) {
	products := []domain.ProductRecord{
		testRecord(1, "a", "man_top", 10),
		testRecord(2, "b", "man_top", 10),
		testRecord(3, "c", "man_top", 10),
	}
	idx := newIndex(products)

	items, err := idx.RandomProducts(context.Background(), 2, "", "")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	seen := map[string]bool{}
	for _, item := range items {
		assert.False(t, seen[item.ID], "duplicate %s", item.ID)
		seen[item.ID] = true
	}
}

func TestRandomProducts_CategoryFilter(t *testing.T) {
	products := []domain.ProductRecord{
		testRecord(1, "a", "man_top", 10),
		testRecord(2, "b", "woman_top", 10),
		testRecord(3, "c", "man_shoes", 10),
	}
	idx := newIndex(products)

	items, err := idx.RandomProducts(context.Background(), 18, "top", "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "top", item.Category)
	}
}

func TestRandomProducts_GenderFilter(t *testing.T) {
	male := testRecord(1, "a", "man_top", 10)
	male.Gender = "man"
	female := testRecord(2, "b", "woman_top", 10)
	female.Gender = "여성"
	idx := newIndex([]domain.ProductRecord{male, female})

	items, err := idx.RandomProducts(context.Background(), 18, "", "female")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ID)
}

func TestCatalogStats(t *testing.T) {
	products := []domain.ProductRecord{
		testRecord(1, "a", "man_top", 10),
		testRecord(2, "b", "woman_top", 30),
		testRecord(3, "c", "man_shoes", 80),
	}
	idx := newIndex(products)

	stats, err := idx.Stats()
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 2, stats.Categories["top"])
	assert.Equal(t, 1, stats.Categories["shoes"])
	assert.Equal(t, int64(10), stats.PriceRange.Min)
	assert.Equal(t, int64(80), stats.PriceRange.Max)
	assert.Equal(t, int64(40), stats.PriceRange.Average)
}

func TestCatalogStats_EmptyCatalog(t *testing.T) {
	idx := newIndex(nil)

	stats, err := idx.Stats()
	require.NoError(t, err)

	assert.Zero(t, stats.TotalProducts)
	assert.Zero(t, stats.PriceRange.Min)
	assert.Zero(t, stats.PriceRange.Max)
	assert.Zero(t, stats.PriceRange.Average)
}
