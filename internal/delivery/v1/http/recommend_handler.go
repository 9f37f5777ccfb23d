package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/DRSN-tech/fitting-backend/internal/usecase"
	"github.com/DRSN-tech/fitting-backend/pkg/e"
	"github.com/DRSN-tech/fitting-backend/pkg/logger"
)

const defaultRandomCount = 18

type RecommendHandler struct {
	recommendUsecase usecase.Recommend
	logger           logger.Logger
}

func NewRecommendHandler(recommendUsecase usecase.Recommend, logger logger.Logger) *RecommendHandler {
	return &RecommendHandler{recommendUsecase: recommendUsecase, logger: logger}
}

// recommend
//
//	@Summary		Подбор рекомендаций
//	@Description	Строит рекомендации по профилю стиля либо по изображениям. Недоступность LLM не прерывает подбор.
//	@Tags			recommend
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RecommendRequest	true	"Профиль стиля или изображения, параметры отбора"
//	@Success		200		{object}	RecommendResponse	"Рекомендации по категориям"
//	@Failure		400		{object}	ErrorResponse		"Ошибка валидации"
//	@Failure		503		{object}	ErrorResponse		"Каталог недоступен"
//	@Router			/recommend [post]
func (h *RecommendHandler) recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d: некорректное тело запроса: %v", http.StatusBadRequest, err)
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	if req.Profile == nil && len(req.Images) == 0 {
		h.logger.Warnf("%d: нет ни профиля, ни изображений", http.StatusBadRequest)
		WriteError(w, e.ErrMissingFields)
		return
	}

	images := make([]usecase.StyleImage, 0, len(req.Images))
	for _, img := range req.Images {
		images = append(images, usecase.StyleImage{
			Slot:     img.Slot,
			Base64:   img.Base64,
			MimeType: img.MimeType,
		})
	}

	res, err := h.recommendUsecase.RecommendProducts(r.Context(), &usecase.RecommendReq{
		Profile: req.Profile,
		Images:  images,
		Options: usecase.FindSimilarOpts{
			MaxPerCategory: req.MaxPerCategory,
			IncludeScore:   req.IncludeScore,
			MinPrice:       req.MinPrice,
			MaxPrice:       req.MaxPrice,
			ExcludeTags:    req.ExcludeTags,
		},
		UseLLM: req.UseLLM,
	})
	if err != nil {
		h.logger.Warnf("рекомендации не построены: %v", err)
		WriteError(w, err)
		return
	}

	recommendations := make(map[string][]RecommendItem, len(res.Recommendations))
	for category, items := range res.Recommendations {
		recommendations[category] = toRecommendItems(items)
	}

	WriteSuccess(w, http.StatusOK, &RecommendResponse{
		Recommendations: recommendations,
		AnalysisMethod:  res.AnalysisMethod,
		StyleAnalysis:   res.StyleAnalysis,
		RequestID:       res.RequestID,
		Timestamp:       res.Timestamp.Format(time.RFC3339),
	})
}

// randomProducts
//
//	@Summary	Случайная подборка каталога
//	@Tags		recommend
//	@Produce	json
//	@Param		limit		query		int		false	"Размер подборки (1-100)"
//	@Param		category	query		string	false	"Фильтр по категории"
//	@Param		gender		query		string	false	"Фильтр по полу"
//	@Success	200			{object}	map[string]interface{}
//	@Failure	503			{object}	ErrorResponse	"Каталог недоступен"
//	@Router		/recommend/random [get]
func (h *RecommendHandler) randomProducts(w http.ResponseWriter, r *http.Request) {
	limit := defaultRandomCount
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warnf("%d: некорректный limit %q", http.StatusBadRequest, raw)
			WriteError(w, e.ErrStatusBadRequest)
			return
		}

		limit = parsed
	}

	category := r.URL.Query().Get("category")
	gender := r.URL.Query().Get("gender")

	items, err := h.recommendUsecase.RandomProducts(r.Context(), limit, category, gender)
	if err != nil {
		h.logger.Warnf("случайная подборка не построена: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"products": toRecommendItems(items),
		"count":    len(items),
	})
}

// catalogStats
//
//	@Summary	Сводка по каталогу
//	@Tags		recommend
//	@Produce	json
//	@Success	200	{object}	CatalogStatsResponse
//	@Failure	503	{object}	ErrorResponse	"Каталог недоступен"
//	@Router		/recommend/catalog [get]
func (h *RecommendHandler) catalogStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.recommendUsecase.CatalogStats(r.Context())
	if err != nil {
		h.logger.Warnf("сводка по каталогу не построена: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &CatalogStatsResponse{
		TotalProducts: stats.TotalProducts,
		Categories:    stats.Categories,
		PriceRange: map[string]any{
			"min":     stats.PriceRange.Min,
			"max":     stats.PriceRange.Max,
			"average": stats.PriceRange.Average,
		},
	})
}

// status
//
//	@Summary	Состояние рекомендательной подсистемы
//	@Tags		recommend
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}
//	@Router		/recommend/status [get]
func (h *RecommendHandler) status(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, h.recommendUsecase.Status(r.Context()))
}
