package usecase

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/jimlawless/whereami"

	"github.com/DRSN-tech/fitting-backend/internal/cfg"
	"github.com/DRSN-tech/fitting-backend/internal/domain"
	"github.com/DRSN-tech/fitting-backend/pkg/e"
	"github.com/DRSN-tech/fitting-backend/pkg/logger"
)

// ProductIndex подбирает товары по ключевым словам профиля поверх снапшота
// каталога. Скоринг аддитивный: полное вхождение ключа весит ExactWeight,
// совпадение отдельного токена — PartialWeight.
type ProductIndex struct {
	log     logger.Logger
	catalog CatalogSource
	cfg     *cfg.IndexCfg
}

func NewProductIndex(log logger.Logger, catalog CatalogSource, indexCfg *cfg.IndexCfg) *ProductIndex {
	return &ProductIndex{
		log:     log,
		catalog: catalog,
		cfg:     indexCfg,
	}
}

type scoredRecord struct {
	record *domain.ProductRecord
	score  float64
	order  int
}

// FindSimilar возвращает релевантные товары, сгруппированные по категориям.
// Внутри категории товары отсортированы по убыванию скора; при равных скорах
// сохраняется порядок каталога.
func (idx *ProductIndex) FindSimilar(keywords []string, opts FindSimilarOpts) (map[string][]RecommendationItem, error) {
	if !idx.catalog.Available() {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrCatalogUnavailable)
	}

	maxPerCategory := ClampPerCategory(opts.MaxPerCategory)

	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}

	products := idx.catalog.Products()
	buckets := make(map[string][]scoredRecord)

	for i := range products {
		record := &products[i]

		if !idx.passesFilters(record, opts) {
			continue
		}

		score := idx.scoreProduct(record, lowered)
		if score <= idx.cfg.ScoreThreshold {
			continue
		}

		category := domain.NormalizeCategory(record.Category)
		if !domain.IsKnownCategory(category) {
			continue
		}

		buckets[category] = append(buckets[category], scoredRecord{
			record: record,
			score:  score,
			order:  i,
		})
	}

	result := make(map[string][]RecommendationItem, len(buckets))
	for category, scored := range buckets {
		sort.SliceStable(scored, func(a, b int) bool {
			return scored[a].score > scored[b].score
		})

		if len(scored) > maxPerCategory {
			scored = scored[:maxPerCategory]
		}

		items := make([]RecommendationItem, 0, len(scored))
		for _, s := range scored {
			var scorePtr *float64
			if opts.IncludeScore {
				v := s.score
				scorePtr = &v
			}

			items = append(items, NewRecommendationItem(s.record, scorePtr))
		}

		result[category] = items
	}

	return result, nil
}

func (idx *ProductIndex) passesFilters(record *domain.ProductRecord, opts FindSimilarOpts) bool {
	price := record.PriceInt()
	if opts.MinPrice != nil && price < *opts.MinPrice {
		return false
	}

	if opts.MaxPrice != nil && price > *opts.MaxPrice {
		return false
	}

	for _, excluded := range opts.ExcludeTags {
		for _, tag := range record.Tags {
			if strings.EqualFold(tag, excluded) {
				return false
			}
		}
	}

	return true
}

// scoreProduct скорит запись по тексту из названия и тегов.
func (idx *ProductIndex) scoreProduct(record *domain.ProductRecord, keywords []string) float64 {
	text := strings.ToLower(record.Title + " " + strings.Join(record.Tags, " "))

	var score float64
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			score += idx.cfg.ExactWeight

			continue
		}

		for _, token := range strings.Fields(kw) {
			if strings.Contains(text, token) {
				score += idx.cfg.PartialWeight

				break
			}
		}
	}

	return score
}

// RandomProducts возвращает случайную выборку каталога без повторов,
// опционально отфильтрованную по категории и полу.
func (idx *ProductIndex) RandomProducts(_ context.Context, limit int, category, gender string) ([]RecommendationItem, error) {
	if !idx.catalog.Available() {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrCatalogUnavailable)
	}

	limit = ClampLimit(limit)
	products := idx.catalog.Products()

	filtered := make([]*domain.ProductRecord, 0, len(products))
	wantCategory := ""
	if category != "" {
		wantCategory = domain.NormalizeCategory(category)
	}
	wantGender := ""
	if gender != "" {
		wantGender = domain.NormalizeGender(gender)
	}

	for i := range products {
		record := &products[i]
		if wantCategory != "" && domain.NormalizeCategory(record.Category) != wantCategory {
			continue
		}
		if wantGender != "" && domain.NormalizeGender(record.Gender) != wantGender {
			continue
		}
		filtered = append(filtered, record)
	}

	perm := rand.Perm(len(filtered))
	if limit > len(perm) {
		limit = len(perm)
	}

	items := make([]RecommendationItem, 0, limit)
	for _, i := range perm[:limit] {
		items = append(items, NewRecommendationItem(filtered[i], nil))
	}

	return items, nil
}

// Stats собирает сводку по каталогу за один проход.
func (idx *ProductIndex) Stats() (*CatalogStats, error) {
	if !idx.catalog.Available() {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrCatalogUnavailable)
	}

	products := idx.catalog.Products()
	stats := &CatalogStats{
		TotalProducts: len(products),
		Categories:    make(map[string]int),
	}

	if len(products) == 0 {
		return stats, nil
	}

	var sum int64
	minPrice := products[0].PriceInt()
	maxPrice := minPrice

	for i := range products {
		price := products[i].PriceInt()
		sum += price

		if price < minPrice {
			minPrice = price
		}
		if price > maxPrice {
			maxPrice = price
		}

		stats.Categories[domain.NormalizeCategory(products[i].Category)]++
	}

	stats.PriceRange = PriceRange{
		Min:     minPrice,
		Max:     maxPrice,
		Average: int64(math.Round(float64(sum) / float64(len(products)))),
	}

	return stats, nil
}
