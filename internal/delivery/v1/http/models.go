package http

import (
	"github.com/DRSN-tech/fitting-backend/internal/domain"
	"github.com/DRSN-tech/fitting-backend/internal/usecase"
)

// SearchRequest — тело запроса векторного поиска. Vector принимает массив
// чисел либо строку с JSON-массивом.
type SearchRequest struct {
	Vector   any   `json:"vector"`
	Limit    int   `json:"limit"`
	UseCache *bool `json:"use_cache,omitempty"`
}

type SearchResultItem struct {
	Pos         int64    `json:"pos"`
	Title       string   `json:"title"`
	Brand       string   `json:"brand,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Gender      string   `json:"gender,omitempty"`
	ProductURL  string   `json:"product_url,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Similarity  float64  `json:"similarity"`
}

type SearchResponse struct {
	Results        []SearchResultItem `json:"results"`
	ResponseTimeMs float64            `json:"response_time_ms"`
	ResultCount    int                `json:"result_count"`
	Source         string             `json:"source"`
	Error          string             `json:"error,omitempty"`
}

type ProductResponse struct {
	Pos         int64    `json:"pos"`
	Title       string   `json:"title"`
	Brand       string   `json:"brand,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Gender      string   `json:"gender,omitempty"`
	ProductURL  string   `json:"product_url,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Source      string   `json:"source"`
}

// WarmUpRequest — тело запроса прогрева кэша.
type WarmUpRequest struct {
	Positions []int64 `json:"positions"`
	BatchSize int     `json:"batch_size,omitempty"`
}

type WarmUpResponse struct {
	Vectors  int `json:"vectors_cached"`
	Products int `json:"products_cached"`
	Errors   int `json:"errors"`
}

type CacheStatusResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Enabled bool           `json:"enabled"`
	Stats   map[string]any `json:"stats,omitempty"`
}

// RecommendImage — изображение в запросе рекомендаций.
type RecommendImage struct {
	Slot     string `json:"slot"`
	Base64   string `json:"base64"`
	MimeType string `json:"mime_type,omitempty"`
}

// RecommendRequest — тело запроса рекомендаций. Profile имеет приоритет
// над Images.
type RecommendRequest struct {
	Profile        *domain.StyleProfile `json:"profile,omitempty"`
	Images         []RecommendImage     `json:"images,omitempty"`
	MaxPerCategory int                  `json:"max_per_category,omitempty"`
	IncludeScore   bool                 `json:"include_score,omitempty"`
	MinPrice       *int64               `json:"min_price,omitempty"`
	MaxPrice       *int64               `json:"max_price,omitempty"`
	ExcludeTags    []string             `json:"exclude_tags,omitempty"`
	UseLLM         *bool                `json:"use_llm,omitempty"`
}

type RecommendItem struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Price      int64    `json:"price"`
	Tags       []string `json:"tags,omitempty"`
	Category   string   `json:"category"`
	ImageURL   string   `json:"image_url,omitempty"`
	ProductURL string   `json:"product_url,omitempty"`
	Score      *float64 `json:"score,omitempty"`
}

type RecommendResponse struct {
	Recommendations map[string][]RecommendItem `json:"recommendations"`
	AnalysisMethod  string                     `json:"analysis_method"`
	StyleAnalysis   *domain.StyleProfile       `json:"style_analysis,omitempty"`
	RequestID       string                     `json:"request_id"`
	Timestamp       string                     `json:"timestamp"`
}

type CatalogStatsResponse struct {
	TotalProducts int            `json:"total_products"`
	Categories    map[string]int `json:"categories"`
	PriceRange    map[string]any `json:"price_range"`
}

func toSearchResponse(res *usecase.SearchRes) *SearchResponse {
	items := make([]SearchResultItem, 0, len(res.Results))
	for i := range res.Results {
		r := &res.Results[i]
		items = append(items, SearchResultItem{
			Pos:         r.Record.Pos,
			Title:       r.Record.Title,
			Brand:       r.Record.Brand,
			Description: r.Record.Description,
			Price:       r.Record.Price.InexactFloat64(),
			Category:    domain.NormalizeCategory(r.Record.Category),
			Gender:      domain.NormalizeGender(r.Record.Gender),
			ProductURL:  r.Record.ProductURL,
			ImageURL:    r.Record.ImageURL,
			Tags:        r.Record.Tags,
			Similarity:  r.Similarity,
		})
	}

	return &SearchResponse{
		Results:        items,
		ResponseTimeMs: res.ResponseTimeMs,
		ResultCount:    res.ResultCount,
		Source:         res.Source,
		Error:          res.Error,
	}
}

func toProductResponse(record *domain.ProductRecord, source string) *ProductResponse {
	return &ProductResponse{
		Pos:         record.Pos,
		Title:       record.Title,
		Brand:       record.Brand,
		Description: record.Description,
		Price:       record.Price.InexactFloat64(),
		Category:    domain.NormalizeCategory(record.Category),
		Gender:      domain.NormalizeGender(record.Gender),
		ProductURL:  record.ProductURL,
		ImageURL:    record.ImageURL,
		Tags:        record.Tags,
		Source:      source,
	}
}

func toRecommendItems(items []usecase.RecommendationItem) []RecommendItem {
	out := make([]RecommendItem, 0, len(items))
	for _, item := range items {
		out = append(out, RecommendItem{
			ID:         item.ID,
			Title:      item.Title,
			Price:      item.Price,
			Tags:       item.Tags,
			Category:   item.Category,
			ImageURL:   item.ImageURL,
			ProductURL: item.ProductURL,
			Score:      item.Score,
		})
	}

	return out
}
