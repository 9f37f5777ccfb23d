package postgres

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/fitting-backend/internal/cfg"
	"github.com/DRSN-tech/fitting-backend/pkg/e"
)

// placeholderFragments — фрагменты строки подключения из примеров документации.
// Такая строка означает, что реальное подключение не настроено.
var placeholderFragments = []string{
	"username:password@hostname",
	"user:pass@host/",
}

// LazyDB откладывает подключение к PostgreSQL до первого обращения.
// Используется для fallback-чтений: соединение создается один раз и переиспользуется,
// а при неудаче следующая попытка подключается заново (reconnect-on-next-use).
type LazyDB struct {
	mu  sync.Mutex
	db  *PgDatabase
	cfg *cfg.PGDBCfg
}

func NewLazyDB(cfg *cfg.PGDBCfg) *LazyDB {
	return &LazyDB{cfg: cfg}
}

// Get возвращает подключение, устанавливая его при первом вызове.
// Строка подключения-заглушка отклоняется сразу, без сетевого вызова.
func (l *LazyDB) Get(ctx context.Context) (*PgDatabase, error) {
	const op = "LazyDB.Get"

	if IsPlaceholderDSN(l.cfg.DSN()) {
		return nil, e.Wrap(op, e.ErrStoreNotConfigured)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		return l.db, nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	dsn := l.cfg.DSN()
	pool, err := newPool(dialCtx, dsn)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := pool.Ping(dialCtx); err != nil {
		pool.Close()
		return nil, e.Wrap(op, err)
	}

	l.db = NewPgDatabase(pool, l.cfg, dsn)
	return l.db, nil
}

// Close освобождает пул, если подключение было установлено.
func (l *LazyDB) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		l.db.Close()
		l.db = nil
	}
}

// IsPlaceholderDSN определяет, что строка подключения — пример из документации, а не реальный адрес.
func IsPlaceholderDSN(dsn string) bool {
	if strings.TrimSpace(dsn) == "" {
		return true
	}

	for _, fragment := range placeholderFragments {
		if strings.Contains(dsn, fragment) {
			return true
		}
	}

	return false
}
