package usecase

import (
	"context"

	"github.com/DRSN-tech/fitting-backend/internal/domain"
)

// Search — векторный поиск похожих товаров с прозрачным кэшированием.
type Search interface {
	SearchSimilarProducts(ctx context.Context, req *SearchReq) *SearchRes
	GetProductDetail(ctx context.Context, pos int64) (*domain.ProductRecord, string, error)
	Status(ctx context.Context) map[string]any
}

// Cache — административные операции над кэшем.
type Cache interface {
	WarmUp(ctx context.Context, req *WarmUpReq) (*WarmUpRes, error)
	Status(ctx context.Context) *CacheStatusRes
}

// Recommend — подбор рекомендаций по профилю стиля.
type Recommend interface {
	RecommendProducts(ctx context.Context, req *RecommendReq) (*RecommendRes, error)
	RandomProducts(ctx context.Context, limit int, category, gender string) ([]RecommendationItem, error)
	CatalogStats(ctx context.Context) (*CatalogStats, error)
	Status(ctx context.Context) map[string]any
}
