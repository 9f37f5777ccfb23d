package usecase

import (
	"context"

	"github.com/DRSN-tech/fitting-backend/internal/domain"
)

// StyleAnalyzerInfra — анализ стиля по изображениям через внешний LLM.
type StyleAnalyzerInfra interface {
	Available() bool
	AnalyzeStyle(ctx context.Context, images []StyleImage) (*domain.StyleProfile, error)
}

// RerankerInfra — переупорядочивание кандидатов через внешний LLM.
// Возвращает отображение категория -> идентификаторы в предпочтительном порядке.
type RerankerInfra interface {
	Available() bool
	Rerank(ctx context.Context, profile *domain.StyleProfile, candidates map[string][]RecommendationItem, topK int) (map[string][]string, error)
}
