package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/storefront/internal/cfg"
	v1Grpc "github.com/DRSN-tech/storefront/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/storefront/internal/delivery/v1/http"
	"github.com/DRSN-tech/storefront/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/storefront/internal/infrastructure/minio"
	"github.com/DRSN-tech/storefront/internal/infrastructure/productsource"
	"github.com/DRSN-tech/storefront/internal/metrics"
	s3Repo "github.com/DRSN-tech/storefront/internal/repository/minio"
	"github.com/DRSN-tech/storefront/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront/internal/repository/redis"
	redisConv "github.com/DRSN-tech/storefront/internal/repository/redis/converter"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/closer"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/jitter"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/DRSN-tech/storefront/pkg/money"
	"github.com/DRSN-tech/storefront/pkg/postgres"
	"github.com/DRSN-tech/storefront/pkg/tr"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	initTimeout     = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

// App связывает конфигурацию, адаптеры и серверы витрины.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	storefront *usecase.StorefrontUseCase
	httpSrv    *v1Http.Server
	grpcSrv    *v1Grpc.GRPCServer
}

// NewApp поднимает все зависимости. Необязательные адаптеры (PostgreSQL, Redis,
// MinIO, Kafka) заменяются заглушками, если не настроены.
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(5 * time.Second),
	}

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	// === PostgreSQL ===
	var (
		productRepo usecase.ProductRepository
		txManager   usecase.TxManager
	)
	if cfg.Db.Enabled() {
		db, err := initPGDB(ctx, log, cfg)
		if err != nil {
			a.shutdownResources()
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		a.closer.AddFunc("postgres", db.Close)

		productRepo = pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverter())
		txManager = tr.NewManager(db.Pool)
	} else {
		log.Infof("PostgreSQL is not configured, catalog import is disabled")
	}

	// === Redis ===
	var cacheRepo usecase.CatalogCacheRepository = redis.NoopCatalogCache{}
	if cfg.Redis.Enabled() {
		redisClient := clients.NewRedisClient(cfg.Redis)
		backoff := jitter.NewBackoff(100*time.Millisecond, time.Second, jitter.DefaultJitter)
		if err := redisClient.PingWithRetry(ctx, 3, backoff); err != nil {
			_ = redisClient.Close()
			a.shutdownResources()
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		a.closer.Add("redis", func(context.Context) error { return redisClient.Close() })

		cacheRepo = redis.NewCatalogCacheRepo(redisClient, redisConv.NewCatalogConverter(), cfg.Redis, log)
	} else {
		log.Infof("Redis is not configured, catalog cache is disabled")
	}

	// === MinIO ===
	var imageRepo usecase.ImageRepository
	if cfg.Minio.Enabled() {
		minioClient, err := clients.NewMinIOClient(cfg.Minio)
		if err != nil {
			a.shutdownResources()
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		if err := clients.EnsureBucket(ctx, minioClient, cfg.Minio.BucketName); err != nil {
			a.shutdownResources()
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		imageRepo = s3Repo.NewImageRepo(minioClient, cfg.Minio)
	} else {
		log.Infof("MinIO is not configured, image references are served as is")
	}
	imagesInfra := minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio.PresignTTL, log)

	// === Kafka ===
	var events usecase.EventsInfra = kafka.NewNoopProducer(log)
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(log, cfg.Kafka)
		if err != nil {
			a.shutdownResources()
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		if err := producer.EnsureTopic(initTimeout); err != nil {
			// Топик может создаваться автоматически на стороне брокера.
			log.Warnf("Failed to ensure kafka topic %s: %v", cfg.Kafka.Topic, err)
		}
		a.closer.Add("kafka", func(context.Context) error { return producer.Close() })

		events = producer
	} else {
		log.Infof("Kafka is not configured, cart events are only logged")
	}

	// === Catalog source ===
	source := productsource.NewHTTPProductSource(
		&http.Client{Timeout: cfg.Catalog.FetchTimeout},
		cfg.Catalog.SourceURL,
		cfg.Catalog.MaxRetries,
		jitter.NewBackoff(200*time.Millisecond, 5*time.Second, jitter.DefaultJitter),
		log,
	)

	formatter, err := money.NewFormatter(cfg.Catalog.Locale)
	if err != nil {
		a.shutdownResources()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	m := metrics.New()

	a.storefront = usecase.NewStorefrontUC(
		source,
		productRepo,
		txManager,
		cacheRepo,
		imagesInfra,
		events,
		m,
		formatter,
		usecase.Options{
			PageSize:      cfg.Catalog.PageSize,
			PulseDuration: cfg.Session.PulseDuration,
			IdleTTL:       cfg.Session.IdleTTL,
			SweepInterval: cfg.Session.SweepInterval,
			CartCurrency:  cfg.Catalog.CartCurrency,
			CatalogSource: cfg.Catalog.Source,
		},
		log,
	)

	// === Delivery ===
	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(a.storefront, cfg.Http, cfg.Session, m, m.Handler())

	a.httpSrv = v1Http.NewServer(r, cfg.Http)
	a.grpcSrv = v1Grpc.NewGRPCServer(cfg.Grpc, log)

	return a, nil
}

// Run запускает серверы и блокируется до сигнала остановки или фатальной ошибки.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.storefront.Run(ctx)

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			a.logger.Errorf(err, "gRPC server failed")
			grpcErrCh <- err
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	a.grpcSrv.SetServing(false)

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	if err := a.grpcSrv.Stop(shutdownCtx); err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			a.logger.Errorf(err, "gRPC server shutdown error")
		} else {
			a.logger.Warnf("gRPC server shutdown timeout")
		}
	}

	cancel()
	a.storefront.Close()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("Resource close error: %v", err)
	}

	a.logger.Infof("Application shutdown complete")

	return appErr
}

// shutdownResources закрывает уже открытые ресурсы, если инициализация не удалась.
func (a *App) shutdownResources() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(ctx); err != nil {
		a.logger.Warnf("Resource close error: %v", err)
	}
}

func initPGDB(ctx context.Context, logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(ctx, cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(ctx); err != nil {
		logger.Errorf(err, "failed to ping database")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
