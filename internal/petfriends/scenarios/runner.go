package scenarios

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/Apurer/petfriends-api-tests/internal/petfriends/scenarios"

// Outcome classifies a scenario result.
type Outcome string

const (
	OutcomePassed       Outcome = "passed"
	OutcomeFailed       Outcome = "failed"
	OutcomePrecondition Outcome = "precondition"
	OutcomeError        Outcome = "error"
)

// Classify maps a scenario error to its outcome.
func Classify(err error) Outcome {
	var assertion *AssertionError
	switch {
	case err == nil:
		return OutcomePassed
	case errors.Is(err, ErrPrecondition):
		return OutcomePrecondition
	case errors.As(err, &assertion):
		return OutcomeFailed
	default:
		return OutcomeError
	}
}

// Result is the outcome of one scenario.
type Result struct {
	Name     string
	Outcome  Outcome
	Err      error
	Duration time.Duration
}

// Report collects results in run order.
type Report struct {
	Results []Result
}

// Passed reports whether every scenario passed.
func (r Report) Passed() bool {
	return len(r.Failures()) == 0
}

// Failures returns the results that did not pass.
func (r Report) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Outcome != OutcomePassed {
			failed = append(failed, res)
		}
	}
	return failed
}

// Runner executes scenarios one at a time.
type Runner struct {
	env       Env
	scenarios []Scenario
	logger    *slog.Logger
	tracer    trace.Tracer
}

type RunnerOption func(*Runner)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) RunnerOption {
	return func(r *Runner) {
		r.tracer = tr
	}
}

// WithScenarios replaces the default catalog.
func WithScenarios(scenarios []Scenario) RunnerOption {
	return func(r *Runner) {
		r.scenarios = append([]Scenario(nil), scenarios...)
	}
}

// NewRunner validates env and returns a runner over the catalog.
func NewRunner(env Env, opts ...RunnerOption) (*Runner, error) {
	if err := env.validate(); err != nil {
		return nil, err
	}
	r := &Runner{
		env:       env,
		scenarios: Catalog(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.tracer == nil {
		r.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return r, nil
}

// Scenarios lists the scenarios the runner knows, in run order.
func (r *Runner) Scenarios() []Scenario {
	return append([]Scenario(nil), r.scenarios...)
}

// Run executes the named scenarios, or all of them when names is empty.
// Scenarios always run in catalog order. A cancelled context stops the run
// before the next scenario starts.
func (r *Runner) Run(ctx context.Context, names ...string) (Report, error) {
	selected, err := r.selectScenarios(names)
	if err != nil {
		return Report{}, err
	}
	var report Report
	for _, sc := range selected {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Results = append(report.Results, r.runOne(ctx, sc))
	}
	return report, nil
}

// RunOne executes a single scenario by name.
func (r *Runner) RunOne(ctx context.Context, name string) (Result, error) {
	report, err := r.Run(ctx, name)
	if err != nil {
		return Result{}, err
	}
	return report.Results[0], nil
}

func (r *Runner) runOne(ctx context.Context, sc Scenario) Result {
	ctx, span := r.tracer.Start(ctx, "Scenario "+sc.Name, trace.WithAttributes(attribute.String("scenario.name", sc.Name)))
	defer span.End()

	start := time.Now()
	err := sc.Run(ctx, r.env)
	result := Result{Name: sc.Name, Outcome: Classify(err), Err: err, Duration: time.Since(start)}

	span.SetAttributes(attribute.String("scenario.outcome", string(result.Outcome)))
	attrs := []slog.Attr{
		slog.String("scenario", sc.Name),
		slog.String("outcome", string(result.Outcome)),
		slog.Duration("duration", result.Duration),
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		attrs = append(attrs, slog.String("error", err.Error()))
		r.logger.LogAttrs(ctx, slog.LevelError, "scenario did not pass", attrs...)
		return result
	}
	r.logger.LogAttrs(ctx, slog.LevelInfo, "scenario passed", attrs...)
	return result
}

func (r *Runner) selectScenarios(names []string) ([]Scenario, error) {
	if len(names) == 0 {
		return r.scenarios, nil
	}
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[strings.TrimSpace(name)] = true
	}
	var selected []Scenario
	for _, sc := range r.scenarios {
		if wanted[sc.Name] {
			selected = append(selected, sc)
			delete(wanted, sc.Name)
		}
	}
	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for name := range wanted {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown scenarios: %s", strings.Join(unknown, ", "))
	}
	return selected, nil
}
