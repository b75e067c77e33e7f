package leaderboardservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shepherdjay/gwg-bot/internal/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	leaderboarddb "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/infrastructure/repositories"
)

// LeaderboardService implements the Service interface.
type LeaderboardService struct {
	repo    leaderboarddb.StandingsDB
	board   BoardWriter
	logger  *slog.Logger
	metrics *observability.Metrics
	tracer  trace.Tracer

	// awards maps normalized player identifiers to their award annotation
	// (previous season winners, from config).
	awards map[string]string

	// serviceWrapper wraps every operation with tracing, duration metrics and
	// panic recovery. Tests override it to call the operation directly.
	serviceWrapper func(ctx context.Context, operationName string, round string, op func(ctx context.Context) (LeaderboardOperationResult, error)) (LeaderboardOperationResult, error)
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(
	repo leaderboarddb.StandingsDB,
	board BoardWriter,
	logger *slog.Logger,
	metrics *observability.Metrics,
	tracer trace.Tracer,
	awards map[string]string,
) *LeaderboardService {
	s := &LeaderboardService{
		repo:    repo,
		board:   board,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		awards:  awards,
	}
	s.serviceWrapper = s.withTelemetry
	return s
}

func (s *LeaderboardService) withTelemetry(
	ctx context.Context,
	operationName string,
	round string,
	op func(ctx context.Context) (LeaderboardOperationResult, error),
) (result LeaderboardOperationResult, err error) {
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
			s.logger.ErrorContext(ctx, "panic recovered in leaderboard operation",
				slog.String("operation", operationName),
				slog.String("round", round),
				slog.Any("error", err),
			)
			span.RecordError(err)
			result = LeaderboardOperationResult{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrapped := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "leaderboard operation failed",
			slog.String("operation", operationName),
			slog.String("round", round),
			slog.Any("error", wrapped),
		)
		span.RecordError(wrapped)
		return result, wrapped
	}
	return result, nil
}
