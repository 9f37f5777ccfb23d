package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/DRSN-tech/fitting-backend/internal/usecase"
	"github.com/DRSN-tech/fitting-backend/pkg/e"
	"github.com/DRSN-tech/fitting-backend/pkg/logger"
)

type ProductHandler struct {
	searchUsecase usecase.Search
	logger        logger.Logger
}

func NewProductHandler(searchUsecase usecase.Search, logger logger.Logger) *ProductHandler {
	return &ProductHandler{searchUsecase: searchUsecase, logger: logger}
}

// getProduct
//
//	@Summary		Карточка товара
//	@Description	Возвращает запись каталога по позиции; сначала проверяется кэш.
//	@Tags			products
//	@Produce		json
//	@Param			pos	path		int				true	"Позиция товара"
//	@Success		200	{object}	ProductResponse	"Запись каталога"
//	@Failure		400	{object}	ErrorResponse	"Некорректная позиция"
//	@Failure		404	{object}	ErrorResponse	"Товар не найден"
//	@Router			/products/{pos} [get]
func (h *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	pos, err := strconv.ParseInt(chi.URLParam(r, "pos"), 10, 64)
	if err != nil || pos <= 0 {
		h.logger.Warnf("%d: некорректная позиция %q", http.StatusBadRequest, chi.URLParam(r, "pos"))
		WriteError(w, e.ErrInvalidPosition)
		return
	}

	record, source, err := h.searchUsecase.GetProductDetail(r.Context(), pos)
	if err != nil {
		h.logger.Warnf("товар pos=%d не получен: %v", pos, err)
		WriteError(w, err)
		return
	}

	if record == nil {
		h.logger.Warnf("товар pos=%d отсутствует", pos)
		WriteError(w, pgx.ErrNoRows)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(record, source))
}
