package usecase

import (
	"strconv"
	"time"

	"github.com/DRSN-tech/fitting-backend/internal/domain"
)

// Источник, фактически выполнивший поисковый запрос.
const (
	SourceCache              = "cache"
	SourcePostgres           = "postgres"
	SourceCacheErrorFallback = "cache_error_fallback"
	SourceError              = "error"
)

// Общие границы публичных параметров.
const (
	MinSearchLimit = 1
	MaxSearchLimit = 100

	MinPerCategory = 1
	MaxPerCategory = 50

	MinWarmUpBatch = 10
	MaxWarmUpBatch = 500
	MaxWarmUpIDs   = 1000
)

// CacheCapability — явный флаг доступности кэша, вычисленный один раз на старте
// (конфигурация плюс успешный handshake с бэкендом).
type CacheCapability struct {
	Enabled bool
}

// SEARCH

// SearchReq — запрос векторного поиска.
type SearchReq struct {
	QueryVector []float32
	Limit       int
	UseCache    bool
}

// SearchResult — один результат поиска: запись каталога и её близость к запросу.
// Vector заполняется только на пути fallback-поиска и используется для write-back в кэш.
type SearchResult struct {
	Record     domain.ProductRecord
	Similarity float64
	Vector     []float32
}

// SearchRes — структурированный результат поиска с провенансом.
type SearchRes struct {
	Results        []SearchResult
	ResponseTimeMs float64
	ResultCount    int
	Source         string
	Error          string
}

// CACHE

// WarmUpReq — запрос на прогрев кэша.
type WarmUpReq struct {
	Positions []int64
	BatchSize int
}

// WarmUpRes — счетчики прогрева. Сбои не прерывают прогрев, а попадают в Errors.
type WarmUpRes struct {
	Vectors  int
	Products int
	Errors   int
}

// CacheStatusRes — состояние кэш-подсистемы для админ-эндпоинта.
type CacheStatusRes struct {
	Status  string
	Message string
	Enabled bool
	Stats   map[string]any
}

// RECOMMEND

// StyleImage — изображение для анализа стиля (передается как base64 + MIME).
type StyleImage struct {
	Slot     string // person, top, pants, shoes, outer
	Base64   string
	MimeType string
}

// RecommendationItem — публичная проекция записи каталога в ответе рекомендаций.
type RecommendationItem struct {
	ID         string
	Title      string
	Price      int64
	Tags       []string
	Category   string
	ImageURL   string
	ProductURL string
	Score      *float64
}

// FindSimilarOpts — параметры отбора кандидатов.
type FindSimilarOpts struct {
	MaxPerCategory int
	IncludeScore   bool
	MinPrice       *int64
	MaxPrice       *int64
	ExcludeTags    []string
}

// RecommendReq — запрос подбора рекомендаций.
// Profile имеет приоритет; при его отсутствии профиль строится по Images.
type RecommendReq struct {
	Profile *domain.StyleProfile
	Images  []StyleImage
	Options FindSimilarOpts
	UseLLM  *bool // nil — решает доступность ре-ранкера
}

// RecommendRes — сгруппированные по слотам рекомендации.
type RecommendRes struct {
	Recommendations map[string][]RecommendationItem
	AnalysisMethod  string // "ai" либо "fallback"
	StyleAnalysis   *domain.StyleProfile
	RequestID       string
	Timestamp       time.Time
}

// PriceRange — сводка по ценам каталога.
type PriceRange struct {
	Min     int64
	Max     int64
	Average int64
}

// CatalogStats — сводка по каталогу за один проход.
type CatalogStats struct {
	TotalProducts int
	Categories    map[string]int
	PriceRange    PriceRange
}

// MAPPERS

func NewSearchReq(vector []float32, limit int, useCache bool) *SearchReq {
	return &SearchReq{
		QueryVector: vector,
		Limit:       limit,
		UseCache:    useCache,
	}
}

func NewWarmUpReq(positions []int64, batchSize int) *WarmUpReq {
	return &WarmUpReq{
		Positions: positions,
		BatchSize: batchSize,
	}
}

// NewRecommendationItem строит публичную проекцию записи каталога.
// Пустая категория по контракту проецируется в "top".
func NewRecommendationItem(record *domain.ProductRecord, score *float64) RecommendationItem {
	category := domain.NormalizeCategory(record.Category)
	if record.Category == "" {
		category = "top"
	}

	return RecommendationItem{
		ID:         formatPos(record.Pos),
		Title:      record.Title,
		Price:      record.PriceInt(),
		Tags:       record.Tags,
		Category:   category,
		ImageURL:   record.ImageURL,
		ProductURL: record.ProductURL,
		Score:      score,
	}
}

// ClampLimit приводит лимит результатов к допустимому диапазону.
func ClampLimit(limit int) int {
	return clamp(limit, MinSearchLimit, MaxSearchLimit)
}

// ClampPerCategory приводит maxPerCategory/topK к допустимому диапазону.
func ClampPerCategory(v int) int {
	return clamp(v, MinPerCategory, MaxPerCategory)
}

// ClampBatchSize приводит размер батча прогрева к допустимому диапазону.
func ClampBatchSize(v int) int {
	return clamp(v, MinWarmUpBatch, MaxWarmUpBatch)
}

func formatPos(pos int64) string {
	return strconv.FormatInt(pos, 10)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
