package fake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	petsfake "github.com/Apurer/petfriends-api-tests/internal/petfriends/fake"
	fakememory "github.com/Apurer/petfriends-api-tests/internal/petfriends/fake/memory"
	fakepostgres "github.com/Apurer/petfriends-api-tests/internal/petfriends/fake/postgres"
	"github.com/Apurer/petfriends-api-tests/internal/petfriends/ports"
	"github.com/Apurer/petfriends-api-tests/internal/platform/migrations"
	platformobservability "github.com/Apurer/petfriends-api-tests/internal/platform/observability"
	platformpostgres "github.com/Apurer/petfriends-api-tests/internal/platform/postgres"
)

const serviceName = "petfriends-fake"

// Run boots the fake PetFriends HTTP API until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, platformobservability.Options{
		LogLevel: platformobservability.ParseLevel(cfg.LogLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	store, cleanupStore := buildStore(ctx, cfg.PostgresDSN, logger)
	defer cleanupStore()

	server := petsfake.NewServer(store, petsfake.WithLogger(logger))
	account, err := server.SeedAccount(ctx, cfg.Account)
	if err != nil {
		return err
	}

	if !cfg.GinDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := server.Router(otelgin.Middleware(serviceName))
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("fake PetFriends API listening",
			slog.String("addr", httpServer.Addr),
			slog.String("account.id", account.ID),
		)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("fake PetFriends API exited", slog.String("addr", httpServer.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func buildStore(ctx context.Context, dsn string, logger *slog.Logger) (ports.Store, func()) {
	if dsn == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory store")
		return fakememory.NewStore(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, dsn, logger)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return fakememory.NewStore(), func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to migrate postgres, falling back to memory", slog.String("error", err.Error()))
		platformpostgres.Close(db)
		return fakememory.NewStore(), func() {}
	}
	logger.Info("store configured with postgres")
	return fakepostgres.NewStore(db), func() { platformpostgres.Close(db) }
}
