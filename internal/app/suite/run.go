package suite

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Apurer/petfriends-api-tests/internal/petfriends/client"
	petsobs "github.com/Apurer/petfriends-api-tests/internal/petfriends/observability"
	"github.com/Apurer/petfriends-api-tests/internal/petfriends/scenarios"
	platformobservability "github.com/Apurer/petfriends-api-tests/internal/platform/observability"
)

const serviceName = "petfriends-suite"

// NewRunner builds the instrumented client and a scenario runner from cfg.
func NewRunner(cfg Config, instruments *platformobservability.Instruments) (*scenarios.Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	api, err := client.New(cfg.BaseURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithUserAgent(serviceName),
	)
	if err != nil {
		return nil, err
	}
	logger := instruments.Logger
	instrumented := petsobs.New(api,
		petsobs.WithLogger(logger),
		petsobs.WithTracer(instruments.Tracer("internal.petfriends.client")),
		petsobs.WithMeter(instruments.Meter("internal.petfriends.client")),
	)
	return scenarios.NewRunner(scenarios.Env{
		API:         instrumented,
		Credentials: cfg.Credentials,
		Fixtures:    scenarios.NewFixtures(cfg.FixturesDir),
	},
		scenarios.WithLogger(logger),
		scenarios.WithTracer(instruments.Tracer("internal.petfriends.scenarios")),
	)
}

// Run executes the selected scenarios against the configured service.
func Run(ctx context.Context, cfg Config, names ...string) (scenarios.Report, error) {
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, platformobservability.Options{
		LogLevel: platformobservability.ParseLevel(cfg.LogLevel),
	})
	if err != nil {
		return scenarios.Report{}, fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()

	runner, err := NewRunner(cfg, instruments)
	if err != nil {
		return scenarios.Report{}, err
	}
	instruments.Logger.Info("running petfriends scenarios", slog.String("base_url", cfg.BaseURL), slog.Int("selected", len(names)))
	report, err := runner.Run(ctx, names...)
	if err != nil {
		return report, err
	}
	instruments.Logger.Info("petfriends scenarios finished",
		slog.Int("total", len(report.Results)),
		slog.Int("failed", len(report.Failures())),
	)
	return report, nil
}
