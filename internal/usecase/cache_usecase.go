package usecase

import (
	"context"

	"github.com/jimlawless/whereami"

	"github.com/DRSN-tech/fitting-backend/pkg/e"
	"github.com/DRSN-tech/fitting-backend/pkg/logger"
)

// CacheUseCase — административные операции над кэшем: прогрев и диагностика.
type CacheUseCase struct {
	log        logger.Logger
	cache      VectorCacheRepository
	embeddings EmbeddingRepository
	products   ProductRepository
	capability CacheCapability
}

func NewCacheUseCase(
	log logger.Logger,
	cache VectorCacheRepository,
	embeddings EmbeddingRepository,
	products ProductRepository,
	capability CacheCapability,
) *CacheUseCase {
	return &CacheUseCase{
		log:        log,
		cache:      cache,
		embeddings: embeddings,
		products:   products,
		capability: capability,
	}
}

// WarmUp батчами выгружает векторы и записи каталога из Postgres в кэш.
// Сбои отдельных элементов и целых батчей накапливаются в счетчике Errors,
// прогрев при этом продолжается.
func (uc *CacheUseCase) WarmUp(ctx context.Context, req *WarmUpReq) (*WarmUpRes, error) {
	if !uc.capability.Enabled {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrCacheDisabled)
	}

	if len(req.Positions) == 0 {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrNoPositions)
	}

	if len(req.Positions) > MaxWarmUpIDs {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrTooManyWarmUpIDs)
	}

	batchSize := ClampBatchSize(req.BatchSize)
	res := &WarmUpRes{}

	for offset := 0; offset < len(req.Positions); offset += batchSize {
		end := offset + batchSize
		if end > len(req.Positions) {
			end = len(req.Positions)
		}

		uc.warmUpBatch(ctx, req.Positions[offset:end], res)
	}

	uc.log.Infof("прогрев кэша завершен: векторов=%d, товаров=%d, ошибок=%d",
		res.Vectors, res.Products, res.Errors)

	return res, nil
}

func (uc *CacheUseCase) warmUpBatch(ctx context.Context, positions []int64, res *WarmUpRes) {
	embeddings, err := uc.embeddings.GetEmbeddingsByPos(ctx, positions)
	if err != nil {
		uc.log.Warnf("батч векторов не загружен (%d позиций): %v", len(positions), err)
		res.Errors += len(positions)
	} else {
		for i := range embeddings {
			if err := uc.cache.CacheVector(ctx, embeddings[i].Pos, embeddings[i].Vector, 0); err != nil {
				uc.log.Warnf("вектор pos=%d не закэширован: %v", embeddings[i].Pos, err)
				res.Errors++

				continue
			}

			res.Vectors++
		}
	}

	records, err := uc.products.GetProductsByPos(ctx, positions)
	if err != nil {
		uc.log.Warnf("батч товаров не загружен (%d позиций): %v", len(positions), err)
		res.Errors += len(positions)

		return
	}

	for i := range records {
		if err := uc.cache.CacheProduct(ctx, &records[i], 0); err != nil {
			uc.log.Warnf("товар pos=%d не закэширован: %v", records[i].Pos, err)
			res.Errors++

			continue
		}

		res.Products++
	}
}

// Status возвращает состояние кэша: выключен, недоступен либо метрики бэкенда.
func (uc *CacheUseCase) Status(ctx context.Context) *CacheStatusRes {
	if !uc.capability.Enabled {
		return &CacheStatusRes{
			Status:  "disabled",
			Message: "кэширование выключено конфигурацией",
			Enabled: false,
		}
	}

	if err := uc.cache.Ping(ctx); err != nil {
		return &CacheStatusRes{
			Status:  "error",
			Message: err.Error(),
			Enabled: true,
		}
	}

	stats, err := uc.cache.Stats(ctx)
	if err != nil {
		return &CacheStatusRes{
			Status:  "error",
			Message: err.Error(),
			Enabled: true,
		}
	}

	return &CacheStatusRes{
		Status:  "healthy",
		Enabled: true,
		Stats:   stats,
	}
}
