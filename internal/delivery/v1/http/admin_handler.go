package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/fitting-backend/internal/usecase"
	"github.com/DRSN-tech/fitting-backend/pkg/e"
	"github.com/DRSN-tech/fitting-backend/pkg/logger"
)

type AdminHandler struct {
	cacheUsecase usecase.Cache
	logger       logger.Logger
}

func NewAdminHandler(cacheUsecase usecase.Cache, logger logger.Logger) *AdminHandler {
	return &AdminHandler{cacheUsecase: cacheUsecase, logger: logger}
}

// warmUpCache
//
//	@Summary		Прогрев кэша
//	@Description	Загружает векторы и записи каталога указанных позиций в кэш батчами.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		WarmUpRequest	true	"Позиции (до 1000) и размер батча"
//	@Success		200		{object}	WarmUpResponse	"Счетчики прогрева"
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		409		{object}	ErrorResponse	"Кэш выключен"
//	@Router			/admin/cache/warm-up [post]
func (h *AdminHandler) warmUpCache(w http.ResponseWriter, r *http.Request) {
	var req WarmUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d: некорректное тело запроса: %v", http.StatusBadRequest, err)
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	res, err := h.cacheUsecase.WarmUp(r.Context(), usecase.NewWarmUpReq(req.Positions, req.BatchSize))
	if err != nil {
		h.logger.Warnf("прогрев кэша не выполнен: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &WarmUpResponse{
		Vectors:  res.Vectors,
		Products: res.Products,
		Errors:   res.Errors,
	})
}

// cacheStatus
//
//	@Summary	Состояние кэша
//	@Tags		admin
//	@Produce	json
//	@Success	200	{object}	CacheStatusResponse
//	@Router		/admin/cache/status [get]
func (h *AdminHandler) cacheStatus(w http.ResponseWriter, r *http.Request) {
	res := h.cacheUsecase.Status(r.Context())

	WriteSuccess(w, http.StatusOK, &CacheStatusResponse{
		Status:  res.Status,
		Message: res.Message,
		Enabled: res.Enabled,
		Stats:   res.Stats,
	})
}
