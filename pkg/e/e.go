package e

import "fmt"

var (
	// Внутренние ошибки с векторами
	ErrEmptyQueryVector  = fmt.Errorf("query vector is empty")
	ErrInvalidVectorDim  = fmt.Errorf("vector dimension must be exactly %d", embeddingDim)
	ErrVectorUnparseable = fmt.Errorf("vector value is unparseable")

	// Ошибки конфигурации и доступности бэкендов
	ErrStoreNotConfigured   = fmt.Errorf("postgres connection string is not configured")
	ErrCacheDisabled        = fmt.Errorf("cache is disabled")
	ErrCatalogUnavailable   = fmt.Errorf("product catalog is unavailable")
	ErrRerankerUnavailable  = fmt.Errorf("llm reranker is unavailable")
	ErrAnalyzerUnavailable  = fmt.Errorf("style analyzer is unavailable")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 400 Bad Request
	ErrStatusBadRequest    = fmt.Errorf("bad request")
	ErrMissingFields       = fmt.Errorf("missing required fields")
	ErrInvalidPrice        = fmt.Errorf("invalid price")
	ErrInvalidPosition     = fmt.Errorf("invalid product position")
	ErrTooManyWarmUpIDs    = fmt.Errorf("at most %d positions per warm-up call", maxWarmUpIDs)
	ErrNoPositions         = fmt.Errorf("no positions provided")
	ErrInternalServerError = fmt.Errorf("internal server error")
)

const (
	embeddingDim = 1024
	maxWarmUpIDs = 1000
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
