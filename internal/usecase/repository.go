package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/fitting-backend/internal/domain"
)

// VectorCacheRepository — кэш векторов и записей каталога с TTL.
// Нулевой ttl означает TTL по умолчанию из конфигурации.
type VectorCacheRepository interface {
	CacheVector(ctx context.Context, pos int64, vector []float32, ttl time.Duration) error
	CacheProduct(ctx context.Context, record *domain.ProductRecord, ttl time.Duration) error
	GetCachedVector(ctx context.Context, pos int64) ([]float32, error)
	GetCachedProduct(ctx context.Context, pos int64) (*domain.ProductRecord, error)
	// SearchCachedVectors выполняет линейный поиск по всем закэшированным векторам.
	// Пустой срез без ошибки означает пустой кэш, а не отсутствие совпадений.
	SearchCachedVectors(ctx context.Context, queryVector []float32, limit int) ([]SearchResult, error)
	Stats(ctx context.Context) (map[string]any, error)
	Ping(ctx context.Context) error
}

// EmbeddingRepository — доступ к векторам в Postgres/pgvector.
type EmbeddingRepository interface {
	// SearchSimilar возвращает ближайшие записи по L2-дистанции вместе с их векторами.
	SearchSimilar(ctx context.Context, queryVector []float32, limit int) ([]SearchResult, error)
	GetEmbeddingsByPos(ctx context.Context, positions []int64) ([]domain.Embedding, error)
}

// ProductRepository — доступ к записям каталога в Postgres.
type ProductRepository interface {
	GetProductByPos(ctx context.Context, pos int64) (*domain.ProductRecord, error)
	GetProductsByPos(ctx context.Context, positions []int64) ([]domain.ProductRecord, error)
	ListProducts(ctx context.Context) ([]domain.ProductRecord, error)
}

// CatalogSource — снапшот каталога в памяти для рекомендаций.
type CatalogSource interface {
	Available() bool
	Products() []domain.ProductRecord
	Reload(ctx context.Context) error
}
