package http

import (
	"encoding/json"
	"net/http"

	"github.com/jimlawless/whereami"

	"github.com/DRSN-tech/fitting-backend/internal/domain"
	"github.com/DRSN-tech/fitting-backend/internal/usecase"
	"github.com/DRSN-tech/fitting-backend/pkg/e"
	"github.com/DRSN-tech/fitting-backend/pkg/logger"
)

type SimilarityHandler struct {
	searchUsecase usecase.Search
	logger        logger.Logger
}

func NewSimilarityHandler(searchUsecase usecase.Search, logger logger.Logger) *SimilarityHandler {
	return &SimilarityHandler{searchUsecase: searchUsecase, logger: logger}
}

// search
//
//	@Summary		Поиск похожих товаров по вектору
//	@Description	Возвращает ближайшие товары по L2-дистанции. Сбои бэкендов отражаются в поле source, а не в HTTP-статусе.
//	@Tags			similarity
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SearchRequest	true	"Вектор запроса (1024 числа), лимит, флаг кэша"
//	@Success		200		{object}	SearchResponse	"Результаты поиска"
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации вектора"
//	@Router			/similarity/search [post]
func (h *SimilarityHandler) search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d: некорректное тело запроса: %v", http.StatusBadRequest, err)
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	vector, err := domain.ParseVector(req.Vector)
	if err != nil {
		h.logger.Warnf("%d: вектор не разобран: %v", http.StatusBadRequest, err)
		WriteError(w, err)
		return
	}

	if err := domain.ValidateVector(vector); err != nil {
		h.logger.Warnf("%d: %v", http.StatusBadRequest, e.Wrap(whereami.WhereAmI(), err))
		WriteError(w, err)
		return
	}

	useCache := true
	if req.UseCache != nil {
		useCache = *req.UseCache
	}

	res := h.searchUsecase.SearchSimilarProducts(r.Context(), usecase.NewSearchReq(vector, req.Limit, useCache))

	WriteSuccess(w, http.StatusOK, toSearchResponse(res))
}

// status
//
//	@Summary	Состояние поисковой подсистемы
//	@Tags		similarity
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}
//	@Router		/similarity/status [get]
func (h *SimilarityHandler) status(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, h.searchUsecase.Status(r.Context()))
}
