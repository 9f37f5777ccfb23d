package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jimlawless/whereami"

	"github.com/DRSN-tech/fitting-backend/internal/domain"
	"github.com/DRSN-tech/fitting-backend/pkg/e"
	"github.com/DRSN-tech/fitting-backend/pkg/logger"
)

const (
	analysisMethodAI       = "ai"
	analysisMethodFallback = "fallback"

	// Во сколько раз больше кандидатов отбирается перед ре-ранжированием.
	candidateBudgetFactor = 4
)

// Ключевые слова по умолчанию, когда профиль пуст либо анализ недоступен.
var fallbackKeywords = []string{"casual", "everyday"}

// RecommendUseCase — подбор рекомендаций: анализ стиля (или fallback-профиль),
// отбор кандидатов по ключевым словам и опциональное LLM-переупорядочивание.
type RecommendUseCase struct {
	log      logger.Logger
	index    *ProductIndex
	analyzer StyleAnalyzerInfra
	reranker RerankerInfra
}

func NewRecommendUseCase(
	log logger.Logger,
	index *ProductIndex,
	analyzer StyleAnalyzerInfra,
	reranker RerankerInfra,
) *RecommendUseCase {
	return &RecommendUseCase{
		log:      log,
		index:    index,
		analyzer: analyzer,
		reranker: reranker,
	}
}

// RecommendProducts строит сгруппированные по категориям рекомендации.
// Недоступность LLM не прерывает подбор: используется fallback-профиль
// и исходный порядок кандидатов.
func (uc *RecommendUseCase) RecommendProducts(ctx context.Context, req *RecommendReq) (*RecommendRes, error) {
	profile, method := uc.resolveProfile(ctx, req)

	keywords := profile.Keywords()
	if len(keywords) == 0 {
		keywords = fallbackKeywords
	}

	maxPerCategory := ClampPerCategory(req.Options.MaxPerCategory)

	candidateOpts := req.Options
	candidateOpts.MaxPerCategory = ClampPerCategory(maxPerCategory * candidateBudgetFactor)
	candidateOpts.IncludeScore = true

	candidates, err := uc.index.FindSimilar(keywords, candidateOpts)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	candidates = gateBySlots(candidates, profile.Slots())

	recommendations := uc.rerankOrKeep(ctx, req, profile, candidates, maxPerCategory)

	for category, items := range recommendations {
		if len(items) > maxPerCategory {
			recommendations[category] = items[:maxPerCategory]
		}

		if !req.Options.IncludeScore {
			stripScores(recommendations[category])
		}
	}

	res := &RecommendRes{
		Recommendations: recommendations,
		AnalysisMethod:  method,
		RequestID:       "req_" + uuid.NewString(),
		Timestamp:       time.Now().UTC(),
	}

	if method == analysisMethodAI {
		res.StyleAnalysis = profile
	}

	return res, nil
}

// resolveProfile возвращает профиль стиля и способ его получения.
func (uc *RecommendUseCase) resolveProfile(ctx context.Context, req *RecommendReq) (*domain.StyleProfile, string) {
	if req.Profile != nil {
		return req.Profile, analysisMethodFallback
	}

	if len(req.Images) > 0 && uc.analyzer != nil && uc.analyzer.Available() {
		profile, err := uc.analyzer.AnalyzeStyle(ctx, req.Images)
		if err != nil {
			uc.log.Warnf("анализ стиля не удался, используем fallback-профиль: %v", err)
		} else if profile != nil {
			return profile, analysisMethodAI
		}
	}

	return fallbackProfile(req.Images), analysisMethodFallback
}

// fallbackProfile строит профиль без LLM: фото человека дает общие ключи,
// каждое фото одежды — ключи своего слота.
func fallbackProfile(images []StyleImage) *domain.StyleProfile {
	profile := &domain.StyleProfile{
		OverallStyle: []string{"casual"},
		Tags:         append([]string(nil), fallbackKeywords...),
	}

	for _, img := range images {
		if img.Slot == "" || img.Slot == "person" {
			continue
		}

		slot := domain.NormalizeCategory(img.Slot)
		profile.Categories = append(profile.Categories, slot)
		slotKeywords := []string{slot, "basic", "casual"}

		switch slot {
		case "top":
			profile.Top = slotKeywords
		case "pants":
			profile.Pants = slotKeywords
		case "shoes":
			profile.Shoes = slotKeywords
		case "outer":
			profile.Outer = slotKeywords
		case "accessories":
			profile.Accessories = slotKeywords
		}
	}

	return profile
}

// gateBySlots оставляет только категории активных слотов профиля.
// Пустой набор слотов означает отсутствие ограничений.
func gateBySlots(candidates map[string][]RecommendationItem, slots map[string]bool) map[string][]RecommendationItem {
	if len(slots) == 0 {
		return candidates
	}

	gated := make(map[string][]RecommendationItem, len(slots))
	for category, items := range candidates {
		if slots[category] {
			gated[category] = items
		}
	}

	return gated
}

// rerankOrKeep пытается переупорядочить кандидатов через LLM, при недоступности
// либо сбое сохраняет порядок по скору.
func (uc *RecommendUseCase) rerankOrKeep(
	ctx context.Context,
	req *RecommendReq,
	profile *domain.StyleProfile,
	candidates map[string][]RecommendationItem,
	topK int,
) map[string][]RecommendationItem {
	useLLM := uc.reranker != nil && uc.reranker.Available()
	if req.UseLLM != nil {
		useLLM = *req.UseLLM && useLLM
	}

	if !useLLM || len(candidates) == 0 {
		return candidates
	}

	ranked, err := uc.reranker.Rerank(ctx, profile, candidates, topK)
	if err != nil {
		uc.log.Warnf("ре-ранжирование не удалось, порядок сохранен: %v", err)

		return candidates
	}

	return applyRanking(candidates, ranked, topK)
}

// applyRanking переставляет элементы по возвращенным LLM идентификаторам,
// затем добирает остаток из кандидатов в порядке скора.
func applyRanking(candidates map[string][]RecommendationItem, ranked map[string][]string, topK int) map[string][]RecommendationItem {
	result := make(map[string][]RecommendationItem, len(candidates))

	for category, items := range candidates {
		ids, ok := ranked[category]
		if !ok || len(ids) == 0 {
			result[category] = items

			continue
		}

		byID := make(map[string]int, len(items))
		for i := range items {
			byID[items[i].ID] = i
		}

		reordered := make([]RecommendationItem, 0, topK)
		used := make(map[string]bool, len(ids))

		for _, id := range ids {
			if i, ok := byID[id]; ok && !used[id] {
				reordered = append(reordered, items[i])
				used[id] = true
			}
		}

		for i := range items {
			if len(reordered) >= topK {
				break
			}

			if !used[items[i].ID] {
				reordered = append(reordered, items[i])
				used[items[i].ID] = true
			}
		}

		result[category] = reordered
	}

	return result
}

func stripScores(items []RecommendationItem) {
	for i := range items {
		items[i].Score = nil
	}
}

// RandomProducts возвращает случайную подборку каталога.
func (uc *RecommendUseCase) RandomProducts(ctx context.Context, limit int, category, gender string) ([]RecommendationItem, error) {
	return uc.index.RandomProducts(ctx, limit, category, gender)
}

// CatalogStats возвращает сводку по каталогу.
func (uc *RecommendUseCase) CatalogStats(_ context.Context) (*CatalogStats, error) {
	return uc.index.Stats()
}

// Status возвращает доступность подсистем рекомендаций.
func (uc *RecommendUseCase) Status(_ context.Context) map[string]any {
	return map[string]any{
		"catalog_available":  uc.index.catalog.Available(),
		"analyzer_available": uc.analyzer != nil && uc.analyzer.Available(),
		"reranker_available": uc.reranker != nil && uc.reranker.Available(),
	}
}
