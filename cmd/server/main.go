package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"nogo/internal/adapters"
	"nogo/internal/bootstrap"
	gameDelivery "nogo/internal/delivery/game"
	ownMiddleware "nogo/internal/middleware"
	"nogo/internal/movegen"
	repo "nogo/internal/repository"
	gameuc "nogo/internal/usecase/game"
)

type mainDeliveryHandler struct {
	game *gameDelivery.GameHandler
}

type dataBaseAdapters struct {
	redisAdapter  *adapters.AdapterRedis
	mongoAdapter  *adapters.AdapterMongo
	badgerAdapter *adapters.AdapterBadger
}

func (d *dataBaseAdapters) Close(ctx context.Context) {
	if d.mongoAdapter != nil {
		_ = d.mongoAdapter.Close(ctx)
	}
	if d.redisAdapter != nil {
		_ = d.redisAdapter.Close(ctx)
	}
	if d.badgerAdapter != nil {
		_ = d.badgerAdapter.Close(ctx)
	}
}

// gameStore picks the repository for the configured backend.
func (d *dataBaseAdapters) gameStore(cfg bootstrap.Config, log *zap.SugaredLogger) gameuc.GameStore {
	if d.badgerAdapter != nil {
		return repo.NewBadgerGameRepository(cfg, log, d.badgerAdapter.GetDB())
	}
	return repo.NewGameRepository(cfg, log, d.redisAdapter.GetClient(), d.mongoAdapter.Database)
}

func main() {
	logger := NewLogger()
	defer logger.Sync()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Errorw("failed to setup configuration", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	databaseAdapters := initDatabaseAdapters(ctx, logger, cfg)
	defer databaseAdapters.Close(context.Background())

	r := chi.NewRouter()
	handlers := initializeDeliveryHandlers(*cfg, logger, databaseAdapters)
	handlers.Router(r, cfg.IsLocalCors)

	srv := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: r,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorw("graceful shutdown failed", "error", err)
		}
	}()

	logger.Infof("server is running on %s", cfg.ServerPort)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalw("failed to start server", "error", err)
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h.game.Routes(r)
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) *dataBaseAdapters {
	if cfg.StoreBackend == bootstrap.StoreBadger {
		badgerAdapter := adapters.NewAdapterBadger(cfg, log)
		if err := badgerAdapter.Init(ctx); err != nil {
			log.Fatalw("failed to initialise badger", "error", err)
		}
		return &dataBaseAdapters{badgerAdapter: badgerAdapter}
	}

	mongoAdapter := adapters.NewAdapterMongo(cfg, log)
	if err := mongoAdapter.Init(ctx); err != nil {
		log.Fatalw("failed to initialise mongodb", "error", err)
	}

	redisAdapter := adapters.NewAdapterRedis(cfg, log)
	if err := redisAdapter.Init(ctx); err != nil {
		log.Fatalw("failed to initialise redis", "error", err)
	}

	log.Info("database adapters initialised")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}
}

func initializeDeliveryHandlers(
	cfg bootstrap.Config,
	log *zap.SugaredLogger,
	databaseAdapters *dataBaseAdapters,
) *mainDeliveryHandler {
	store := databaseAdapters.gameStore(cfg, log)
	gameUC := gameuc.NewGameUseCase(store, movegen.Scripted{}, log, cfg.ArchivePageLimit)

	return &mainDeliveryHandler{
		game: gameDelivery.NewGameHandler(cfg, log, gameUC),
	}
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("received shutdown signal")
	cancelFunc()
}
