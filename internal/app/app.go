package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	config "github.com/DRSN-tech/fitting-backend/internal/cfg"
	v1Http "github.com/DRSN-tech/fitting-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/fitting-backend/internal/infrastructure/catalog"
	"github.com/DRSN-tech/fitting-backend/internal/infrastructure/llm"
	"github.com/DRSN-tech/fitting-backend/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/fitting-backend/internal/repository/pgdb/converter"
	redisRepo "github.com/DRSN-tech/fitting-backend/internal/repository/redis"
	redisConv "github.com/DRSN-tech/fitting-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/fitting-backend/internal/usecase"
	"github.com/DRSN-tech/fitting-backend/pkg/clients"
	"github.com/DRSN-tech/fitting-backend/pkg/closer"
	"github.com/DRSN-tech/fitting-backend/pkg/logger"
	"github.com/DRSN-tech/fitting-backend/pkg/postgres"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
	forcedTimeout   = 5 * time.Second
)

type App struct {
	cfg     *config.Config
	logger  logger.Logger
	httpSrv *v1Http.Server
	closer  *closer.Closer
}

// NewApp собирает приложение. Недоступность Postgres, Redis или LLM на старте
// не фатальна: соответствующие подсистемы переходят в деградированный режим.
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.NewCloser(forcedTimeout)

	// Два независимых ленивых подключения: прогрев кэша не делит пул
	// с поисковым fallback.
	searchDB := postgres.NewLazyDB(cfg.Db)
	warmUpDB := postgres.NewLazyDB(cfg.Db)
	cl.Add(func(_ context.Context) error {
		searchDB.Close()
		warmUpDB.Close()
		return nil
	})

	runMigrations(searchDB, log)

	pgConv := pgdbConv.NewProductRecordConverter()
	embeddingRepo := pgdb.NewEmbeddingRepo(searchDB, pgConv, log)
	productRepo := pgdb.NewProductRepo(searchDB, pgConv, log)
	warmUpEmbeddingRepo := pgdb.NewEmbeddingRepo(warmUpDB, pgConv, log)
	warmUpProductRepo := pgdb.NewProductRepo(warmUpDB, pgConv, log)

	redisClient := clients.NewRedisClient(cfg.Redis)
	cl.Add(func(_ context.Context) error {
		return redisClient.Client.Close()
	})

	capability := resolveCacheCapability(cfg, redisClient, log)
	cacheRepo := redisRepo.NewCacheRepo(redisClient, redisConv.NewProductRecordConverter(), cfg.Redis, log)

	snapshot := catalog.NewSnapshot(productRepo, log)
	loadCatalog(snapshot, log)

	openaiClient := clients.NewAzureOpenAIClient(cfg.Llm)
	analyzer := llm.NewStyleAnalyzer(openaiClient, cfg.Llm, log)
	reranker := llm.NewReranker(openaiClient, cfg.Llm, log)

	index := usecase.NewProductIndex(log, snapshot, cfg.Index)

	searchUC := usecase.NewSearchUseCase(log, cacheRepo, embeddingRepo, productRepo, capability)
	cacheUC := usecase.NewCacheUseCase(log, cacheRepo, warmUpEmbeddingRepo, warmUpProductRepo, capability)
	recommendUC := usecase.NewRecommendUseCase(log, index, analyzer, reranker)

	mux := chi.NewRouter()
	router := v1Http.NewRouter(mux, log)
	router.Init(searchUC, cacheUC, recommendUC)

	httpSrv := v1Http.NewServer(mux, cfg.Http)
	cl.Add(func(ctx context.Context) error {
		return httpSrv.Stop(ctx)
	})

	return &App{
		cfg:     cfg,
		logger:  log,
		httpSrv: httpSrv,
		closer:  cl,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до сигнала завершения либо
// фатальной ошибки сервера.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("shutdown finished with errors: %v", err)
	} else {
		a.logger.Infof("Application shutdown complete")
	}

	return appErr
}

// runMigrations применяет миграции, если хранилище сконфигурировано и доступно.
// Ошибки не фатальны: хранилище может подняться позже.
func runMigrations(db *postgres.LazyDB, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	pg, err := db.Get(ctx)
	if err != nil {
		log.Warnf("postgres недоступен на старте, миграции отложены: %v", err)
		return
	}

	if err := pg.RunMigrations(log); err != nil {
		log.Warnf("миграции не применены: %v", err)
	}
}

// loadCatalog загружает снапшот каталога. При сбое рекомендации остаются
// недоступными до успешного Reload.
func loadCatalog(snapshot *catalog.Snapshot, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	if err := snapshot.Reload(ctx); err != nil {
		log.Warnf("каталог не загружен на старте: %v", err)
	}
}

// resolveCacheCapability вычисляет доступность кэша один раз на старте:
// кэш включен конфигурацией и бэкенд отвечает на PING.
func resolveCacheCapability(cfg *config.Config, client *clients.RedisClient, log logger.Logger) usecase.CacheCapability {
	if !cfg.Redis.Enabled {
		return usecase.CacheCapability{Enabled: false}
	}

	ctx, cancel := context.WithTimeout(context.Background(), forcedTimeout)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		log.Warnf("redis недоступен, кэширование выключено: %v", err)
		return usecase.CacheCapability{Enabled: false}
	}

	return usecase.CacheCapability{Enabled: true}
}
