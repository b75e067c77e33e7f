package roundservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	rounddb "github.com/shepherdjay/gwg-bot/app/modules/round/infrastructure/repositories"
	"github.com/shepherdjay/gwg-bot/internal/observability"
)

// RoundService implements the Service interface.
type RoundService struct {
	repo     rounddb.RoundDB
	store    RecordStore
	schedule Schedule
	logger   *slog.Logger
	metrics  *observability.Metrics
	tracer   trace.Tracer

	// serviceWrapper wraps every operation with tracing, duration metrics and
	// panic recovery. Tests override it to call the operation directly.
	serviceWrapper func(ctx context.Context, operationName string, round string, op func(ctx context.Context) (RoundOperationResult, error)) (RoundOperationResult, error)
}

// NewRoundService creates a new RoundService.
func NewRoundService(
	repo rounddb.RoundDB,
	store RecordStore,
	schedule Schedule,
	logger *slog.Logger,
	metrics *observability.Metrics,
	tracer trace.Tracer,
) *RoundService {
	s := &RoundService{
		repo:     repo,
		store:    store,
		schedule: schedule,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
	}
	s.serviceWrapper = s.withTelemetry
	return s
}

func (s *RoundService) withTelemetry(
	ctx context.Context,
	operationName string,
	round string,
	op func(ctx context.Context) (RoundOperationResult, error),
) (result RoundOperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("round", round),
	))
	defer span.End()

	startTime := time.Now()
	defer func() {
		s.metrics.OperationDuration.WithLabelValues(operationName).Observe(time.Since(startTime).Seconds())
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "panic recovered in round operation",
				slog.String("operation", operationName),
				slog.String("round", round),
				slog.Any("error", err),
			)
			span.RecordError(err)
			result = RoundOperationResult{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrapped := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "round operation failed",
			slog.String("operation", operationName),
			slog.String("round", round),
			slog.Any("error", wrapped),
		)
		span.RecordError(wrapped)
		return result, wrapped
	}
	return result, nil
}
