package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jimlawless/whereami"

	"github.com/DRSN-tech/fitting-backend/internal/domain"
	"github.com/DRSN-tech/fitting-backend/pkg/e"
	"github.com/DRSN-tech/fitting-backend/pkg/logger"
)

// SearchUseCase координирует поиск похожих товаров: сначала кэш, затем Postgres,
// с best-effort обратной записью результатов в кэш.
type SearchUseCase struct {
	log        logger.Logger
	cache      VectorCacheRepository
	embeddings EmbeddingRepository
	products   ProductRepository
	capability CacheCapability
}

func NewSearchUseCase(
	log logger.Logger,
	cache VectorCacheRepository,
	embeddings EmbeddingRepository,
	products ProductRepository,
	capability CacheCapability,
) *SearchUseCase {
	return &SearchUseCase{
		log:        log,
		cache:      cache,
		embeddings: embeddings,
		products:   products,
		capability: capability,
	}
}

// SearchSimilarProducts выполняет поиск и всегда возвращает структурированный
// результат: сбои выражаются полями Source и Error, а не ошибкой.
func (uc *SearchUseCase) SearchSimilarProducts(ctx context.Context, req *SearchReq) *SearchRes {
	start := time.Now()

	if err := domain.ValidateVector(req.QueryVector); err != nil {
		return errorRes(start, err)
	}

	limit := ClampLimit(req.Limit)

	if req.UseCache && uc.capability.Enabled {
		results, err := uc.cache.SearchCachedVectors(ctx, req.QueryVector, limit)
		if err != nil {
			uc.log.Warnf("поиск в кэше не удался, переключаемся на postgres: %v", err)

			return uc.searchPostgres(ctx, start, req, limit, SourceCacheErrorFallback)
		}

		if len(results) > 0 {
			return okRes(start, results, SourceCache)
		}
	}

	return uc.searchPostgres(ctx, start, req, limit, SourcePostgres)
}

func (uc *SearchUseCase) searchPostgres(ctx context.Context, start time.Time, req *SearchReq, limit int, source string) *SearchRes {
	results, err := uc.embeddings.SearchSimilar(ctx, req.QueryVector, limit)
	if err != nil {
		uc.log.Errorf(err, "поиск в postgres не удался")

		return errorRes(start, err)
	}

	if req.UseCache && uc.capability.Enabled {
		uc.writeBack(ctx, results)
	}

	return okRes(start, results, source)
}

// writeBack кэширует результаты поиска. Сбои записи не влияют на ответ.
func (uc *SearchUseCase) writeBack(ctx context.Context, results []SearchResult) {
	for i := range results {
		r := &results[i]
		if r.Vector != nil {
			if err := uc.cache.CacheVector(ctx, r.Record.Pos, r.Vector, 0); err != nil {
				uc.log.Warnf("не удалось закэшировать вектор pos=%d: %v", r.Record.Pos, err)
			}
		}

		if err := uc.cache.CacheProduct(ctx, &r.Record, 0); err != nil {
			uc.log.Warnf("не удалось закэшировать товар pos=%d: %v", r.Record.Pos, err)
		}
	}
}

// GetProductDetail возвращает запись каталога и источник, из которого она получена.
func (uc *SearchUseCase) GetProductDetail(ctx context.Context, pos int64) (*domain.ProductRecord, string, error) {
	if pos <= 0 {
		return nil, SourceError, e.Wrap(whereami.WhereAmI(), e.ErrInvalidPosition)
	}

	if uc.capability.Enabled {
		record, err := uc.cache.GetCachedProduct(ctx, pos)
		if err != nil {
			uc.log.Warnf("чтение товара из кэша не удалось pos=%d: %v", pos, err)
		} else if record != nil {
			return record, SourceCache, nil
		}
	}

	record, err := uc.products.GetProductByPos(ctx, pos)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, SourceError, e.Wrap(whereami.WhereAmI(), err)
		}

		// Недоступное хранилище при бесполезном кэше означает отсутствие
		// записи, а не ошибку запроса.
		uc.log.Errorf(err, "чтение товара из хранилища не удалось pos=%d", pos)

		return nil, SourceError, nil
	}

	if uc.capability.Enabled {
		if err := uc.cache.CacheProduct(ctx, record, 0); err != nil {
			uc.log.Warnf("не удалось закэшировать товар pos=%d: %v", pos, err)
		}
	}

	return record, SourcePostgres, nil
}

// Status возвращает сводку по доступности подсистем поиска.
func (uc *SearchUseCase) Status(ctx context.Context) map[string]any {
	storeStatus := "available"
	if _, err := uc.embeddings.GetEmbeddingsByPos(ctx, nil); err != nil {
		if errors.Is(err, e.ErrStoreNotConfigured) {
			storeStatus = "not_configured"
		} else {
			storeStatus = "unavailable"
		}
	}

	return map[string]any{
		"cache_enabled": uc.capability.Enabled,
		"postgres":      storeStatus,
		"embedding_dim": domain.EmbeddingDim,
		"default_limit": MinSearchLimit,
		"max_limit":     MaxSearchLimit,
	}
}

func okRes(start time.Time, results []SearchResult, source string) *SearchRes {
	return &SearchRes{
		Results:        results,
		ResponseTimeMs: elapsedMs(start),
		ResultCount:    len(results),
		Source:         source,
	}
}

func errorRes(start time.Time, err error) *SearchRes {
	return &SearchRes{
		Results:        []SearchResult{},
		ResponseTimeMs: elapsedMs(start),
		ResultCount:    0,
		Source:         SourceError,
		Error:          err.Error(),
	}
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
