// Package catalog держит снапшот каталога в памяти для рекомендательного индекса.
package catalog

import (
	"context"
	"sync"

	"github.com/jimlawless/whereami"

	"github.com/DRSN-tech/fitting-backend/internal/domain"
	"github.com/DRSN-tech/fitting-backend/internal/usecase"
	"github.com/DRSN-tech/fitting-backend/pkg/e"
	"github.com/DRSN-tech/fitting-backend/pkg/logger"
)

// Snapshot — кэшируемая в памяти копия каталога. Загружается на старте и по
// запросу; до первой успешной загрузки каталог считается недоступным.
type Snapshot struct {
	mu       sync.RWMutex
	products []domain.ProductRecord
	loaded   bool

	repo   usecase.ProductRepository
	logger logger.Logger
}

func NewSnapshot(repo usecase.ProductRepository, logger logger.Logger) *Snapshot {
	return &Snapshot{
		repo:   repo,
		logger: logger,
	}
}

func (s *Snapshot) Available() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded
}

// Products возвращает текущий снапшот. Вызывающий код не должен изменять срез.
func (s *Snapshot) Products() []domain.ProductRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.products
}

// Reload загружает каталог заново. При ошибке прежний снапшот сохраняется.
func (s *Snapshot) Reload(ctx context.Context) error {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.logger.Warnf("каталог не загружен: %v", err)

		return e.Wrap(whereami.WhereAmI(), err)
	}

	s.mu.Lock()
	s.products = products
	s.loaded = true
	s.mu.Unlock()

	s.logger.Infof("каталог загружен: %d записей", len(products))

	return nil
}
