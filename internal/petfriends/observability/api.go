package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/petfriends-api-tests/internal/petfriends/domain"
	"github.com/Apurer/petfriends-api-tests/internal/petfriends/ports"
)

const tracerName = "github.com/Apurer/petfriends-api-tests/internal/petfriends/observability"

var _ ports.API = (*API)(nil)

// API decorates a PetFriends API port with tracing, logging, and metrics.
// Secrets (password, auth key) never reach spans or logs.
type API struct {
	inner   ports.API
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics apiMetrics
}

type Option func(*API)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *API) {
		a.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(a *API) {
		a.tracer = tr
	}
}

// WithMeter injects the meter used to create request instruments.
func WithMeter(m metric.Meter) Option {
	return func(a *API) {
		a.metrics = newAPIMetrics(m)
	}
}

// New wires a decorator around inner.
func New(inner ports.API, opts ...Option) *API {
	a := &API{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newAPIMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	if a.tracer == nil {
		a.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if a.logger == nil {
		a.logger = defaultLogger()
	}
	return a
}

// GetAPIKey requests an auth key.
func (a *API) GetAPIKey(ctx context.Context, creds domain.Credentials) (*ports.Response[domain.AuthKey], error) {
	ctx, span := a.startSpan(ctx, "PetFriends.GetAPIKey")
	defer span.End()

	resp, err := a.inner.GetAPIKey(ctx, creds)
	if err != nil {
		return nil, a.handleError(ctx, span, "get_api_key", err, slog.String("email", creds.Email))
	}
	a.observe(ctx, span, "get_api_key", resp.StatusCode, slog.String("email", creds.Email), slog.Bool("key.present", resp.Decoded() && resp.Body.Key != ""))
	return resp, nil
}

// ListPets lists pets for the filter.
func (a *API) ListPets(ctx context.Context, authKey string, filter domain.Filter) (*ports.Response[domain.PetList], error) {
	ctx, span := a.startSpan(ctx, "PetFriends.ListPets", attribute.String("petfriends.filter", string(filter)))
	defer span.End()

	resp, err := a.inner.ListPets(ctx, authKey, filter)
	if err != nil {
		return nil, a.handleError(ctx, span, "list_pets", err, slog.String("filter", string(filter)))
	}
	count := 0
	if resp.Decoded() {
		count = len(resp.Body.Pets)
	}
	span.SetAttributes(attribute.Int("petfriends.pets.count", count))
	a.observe(ctx, span, "list_pets", resp.StatusCode, slog.String("filter", string(filter)), slog.Int("count", count))
	return resp, nil
}

// AddNewPet creates a pet.
func (a *API) AddNewPet(ctx context.Context, authKey string, pet domain.NewPet) (*ports.Response[domain.Pet], error) {
	ctx, span := a.startSpan(ctx, "PetFriends.AddNewPet",
		attribute.Int("petfriends.pet.name_length", len([]rune(pet.Name))),
		attribute.Bool("petfriends.pet.photo", pet.Photo != nil),
	)
	defer span.End()

	resp, err := a.inner.AddNewPet(ctx, authKey, pet)
	if err != nil {
		return nil, a.handleError(ctx, span, "add_new_pet", err)
	}
	attrs := []slog.Attr{slog.Bool("photo", pet.Photo != nil)}
	if resp.Decoded() {
		span.SetAttributes(attribute.String("petfriends.pet.id", resp.Body.ID))
		attrs = append(attrs, slog.String("pet.id", resp.Body.ID))
	}
	a.observe(ctx, span, "add_new_pet", resp.StatusCode, attrs...)
	return resp, nil
}

// UpdatePetInfo updates the text fields of a pet.
func (a *API) UpdatePetInfo(ctx context.Context, authKey, petID string, info domain.PetInfo) (*ports.Response[domain.Pet], error) {
	ctx, span := a.startSpan(ctx, "PetFriends.UpdatePetInfo", attribute.String("petfriends.pet.id", petID))
	defer span.End()

	resp, err := a.inner.UpdatePetInfo(ctx, authKey, petID, info)
	if err != nil {
		return nil, a.handleError(ctx, span, "update_pet_info", err, slog.String("pet.id", petID))
	}
	a.observe(ctx, span, "update_pet_info", resp.StatusCode, slog.String("pet.id", petID))
	return resp, nil
}

// DeletePet removes a pet.
func (a *API) DeletePet(ctx context.Context, authKey, petID string) (*ports.Response[ports.Object], error) {
	ctx, span := a.startSpan(ctx, "PetFriends.DeletePet", attribute.String("petfriends.pet.id", petID))
	defer span.End()

	resp, err := a.inner.DeletePet(ctx, authKey, petID)
	if err != nil {
		return nil, a.handleError(ctx, span, "delete_pet", err, slog.String("pet.id", petID))
	}
	a.observe(ctx, span, "delete_pet", resp.StatusCode, slog.String("pet.id", petID))
	return resp, nil
}

// SetPetPhoto attaches a photo.
func (a *API) SetPetPhoto(ctx context.Context, authKey, petID string, photo *domain.Photo) (*ports.Response[domain.Pet], error) {
	attrs := []attribute.KeyValue{attribute.String("petfriends.pet.id", petID)}
	if photo != nil {
		attrs = append(attrs,
			attribute.String("petfriends.photo.filename", photo.Filename),
			attribute.Int("petfriends.photo.bytes", len(photo.Data)),
		)
	}
	ctx, span := a.startSpan(ctx, "PetFriends.SetPetPhoto", attrs...)
	defer span.End()

	resp, err := a.inner.SetPetPhoto(ctx, authKey, petID, photo)
	if err != nil {
		return nil, a.handleError(ctx, span, "set_pet_photo", err, slog.String("pet.id", petID))
	}
	a.observe(ctx, span, "set_pet_photo", resp.StatusCode, slog.String("pet.id", petID))
	return resp, nil
}

func (a *API) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return a.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient), trace.WithAttributes(attrs...))
}

// observe records the outcome of a call that reached the service. Non-2xx is
// data for the caller, so the span stays unset and the log level is info.
func (a *API) observe(ctx context.Context, span trace.Span, operation string, status int, attrs ...slog.Attr) {
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	a.metrics.recordRequest(ctx, operation, status)
	attrs = append([]slog.Attr{slog.String("operation", operation), slog.Int("status", status)}, attrs...)
	a.logger.LogAttrs(ctx, slog.LevelInfo, "petfriends call completed", attrs...)
}

func (a *API) handleError(ctx context.Context, span trace.Span, operation string, err error, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	a.metrics.recordFailure(ctx, operation)
	attrs = append([]slog.Attr{slog.String("operation", operation), slog.String("error", err.Error())}, attrs...)
	a.logger.LogAttrs(ctx, slog.LevelError, "petfriends call failed", attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type apiMetrics struct {
	requests metric.Int64Counter
	failures metric.Int64Counter
}

func newAPIMetrics(m metric.Meter) apiMetrics {
	if m == nil {
		return apiMetrics{}
	}
	requests, _ := m.Int64Counter("petfriends.client.requests", metric.WithDescription("PetFriends calls that received a response"))
	failures, _ := m.Int64Counter("petfriends.client.failures", metric.WithDescription("PetFriends calls that failed before a response"))
	return apiMetrics{requests: requests, failures: failures}
}

func (m apiMetrics) recordRequest(ctx context.Context, operation string, status int) {
	addCounter(ctx, m.requests, attribute.String("operation", operation), attribute.Int("status", status))
}

func (m apiMetrics) recordFailure(ctx context.Context, operation string) {
	addCounter(ctx, m.failures, attribute.String("operation", operation))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}
