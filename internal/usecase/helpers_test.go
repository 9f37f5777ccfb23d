package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/DRSN-tech/fitting-backend/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

func testRecord(pos int64, title, category string, price int64, tags ...string) domain.ProductRecord {
	return domain.ProductRecord{
		Pos:      pos,
		Title:    title,
		Price:    decimal.NewFromInt(price),
		Category: category,
		Tags:     tags,
	}
}

func testVector(seed float32) []float32 {
	v := make([]float32, domain.EmbeddingDim)
	for i := range v {
		v[i] = seed
	}

	return v
}

// fakeCache реализует VectorCacheRepository в памяти.
type fakeCache struct {
	vectors  map[int64][]float32
	products map[int64]domain.ProductRecord

	searchResults []SearchResult
	searchErr     error
	failWrites    bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		vectors:  make(map[int64][]float32),
		products: make(map[int64]domain.ProductRecord),
	}
}

func (f *fakeCache) CacheVector(_ context.Context, pos int64, vector []float32, _ time.Duration) error {
	if f.failWrites {
		return errors.New("write failed")
	}

	f.vectors[pos] = vector
	return nil
}

func (f *fakeCache) CacheProduct(_ context.Context, record *domain.ProductRecord, _ time.Duration) error {
	if f.failWrites {
		return errors.New("write failed")
	}

	f.products[record.Pos] = *record
	return nil
}

func (f *fakeCache) GetCachedVector(_ context.Context, pos int64) ([]float32, error) {
	return f.vectors[pos], nil
}

func (f *fakeCache) GetCachedProduct(_ context.Context, pos int64) (*domain.ProductRecord, error) {
	record, ok := f.products[pos]
	if !ok {
		return nil, nil
	}

	return &record, nil
}

func (f *fakeCache) SearchCachedVectors(_ context.Context, _ []float32, _ int) ([]SearchResult, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}

	return f.searchResults, nil
}

func (f *fakeCache) Stats(_ context.Context) (map[string]any, error) {
	return map[string]any{"total_vectors": len(f.vectors)}, nil
}

func (f *fakeCache) Ping(_ context.Context) error {
	return nil
}

// fakeEmbeddings реализует EmbeddingRepository в памяти.
type fakeEmbeddings struct {
	byPos         map[int64][]float32
	searchResults []SearchResult
	err           error

	batchCalls [][]int64
	failBatch  int // номер вызова GetEmbeddingsByPos, который упадет; 0 — без сбоев
}

func (f *fakeEmbeddings) SearchSimilar(_ context.Context, _ []float32, _ int) ([]SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.searchResults, nil
}

func (f *fakeEmbeddings) GetEmbeddingsByPos(_ context.Context, positions []int64) ([]domain.Embedding, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.batchCalls = append(f.batchCalls, positions)
	if f.failBatch > 0 && len(f.batchCalls) == f.failBatch {
		return nil, errors.New("batch failed")
	}

	out := make([]domain.Embedding, 0, len(positions))
	for _, pos := range positions {
		if v, ok := f.byPos[pos]; ok {
			out = append(out, domain.Embedding{Pos: pos, Vector: v})
		}
	}

	return out, nil
}

// fakeProducts реализует ProductRepository в памяти.
type fakeProducts struct {
	byPos map[int64]domain.ProductRecord
	err   error
}

func (f *fakeProducts) GetProductByPos(_ context.Context, pos int64) (*domain.ProductRecord, error) {
	if f.err != nil {
		return nil, f.err
	}

	record, ok := f.byPos[pos]
	if !ok {
		return nil, pgx.ErrNoRows
	}

	return &record, nil
}

func (f *fakeProducts) GetProductsByPos(_ context.Context, positions []int64) ([]domain.ProductRecord, error) {
	if f.err != nil {
		return nil, f.err
	}

	out := make([]domain.ProductRecord, 0, len(positions))
	for _, pos := range positions {
		if record, ok := f.byPos[pos]; ok {
			out = append(out, record)
		}
	}

	return out, nil
}

func (f *fakeProducts) ListProducts(_ context.Context) ([]domain.ProductRecord, error) {
	if f.err != nil {
		return nil, f.err
	}

	out := make([]domain.ProductRecord, 0, len(f.byPos))
	for _, record := range f.byPos {
		out = append(out, record)
	}

	return out, nil
}

// fakeCatalog реализует CatalogSource поверх фиксированного среза.
type fakeCatalog struct {
	products  []domain.ProductRecord
	available bool
}

func (f *fakeCatalog) Available() bool {
	return f.available
}

func (f *fakeCatalog) Products() []domain.ProductRecord {
	return f.products
}

func (f *fakeCatalog) Reload(_ context.Context) error {
	return nil
}

// fakeAnalyzer реализует StyleAnalyzerInfra.
type fakeAnalyzer struct {
	available bool
	profile   *domain.StyleProfile
	err       error
}

func (f *fakeAnalyzer) Available() bool {
	return f.available
}

func (f *fakeAnalyzer) AnalyzeStyle(_ context.Context, _ []StyleImage) (*domain.StyleProfile, error) {
	return f.profile, f.err
}

// fakeReranker реализует RerankerInfra.
type fakeReranker struct {
	available bool
	ranked    map[string][]string
	err       error
	calls     int
}

func (f *fakeReranker) Available() bool {
	return f.available
}

func (f *fakeReranker) Rerank(_ context.Context, _ *domain.StyleProfile,
	_ map[string][]RecommendationItem, _ int) (map[string][]string, error) {
	f.calls++
	return f.ranked, f.err
}
