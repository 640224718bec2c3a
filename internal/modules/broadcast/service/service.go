package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/filterbotio/autofilter-bot/internal/delivery"
	"github.com/filterbotio/autofilter-bot/internal/modules/broadcast/domain"
	directoryService "github.com/filterbotio/autofilter-bot/internal/modules/directory/service"
	sharedErrors "github.com/filterbotio/autofilter-bot/internal/shared/errors"
)

const defaultSendDelay = 50 * time.Millisecond

// ProgressFunc receives periodic snapshots while a run is in flight, at most
// ~20 times per run plus once at the end.
type ProgressFunc func(domain.Progress)

// Service copies one message to every user the bot knows
type Service struct {
	directory *directoryService.Service
	courier   delivery.Courier
	logger    *slog.Logger

	sendDelay time.Duration
}

// Option adjusts broadcast behavior.
type Option func(*Service)

// WithSendDelay overrides the pause between recipients.
func WithSendDelay(d time.Duration) Option {
	return func(s *Service) { s.sendDelay = d }
}

// New creates a new broadcast service
func New(directory *directoryService.Service, courier delivery.Courier, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		directory: directory,
		courier:   courier,
		logger:    logger,
		sendDelay: defaultSendDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run copies source to every user known at start time. Users who joined mid
// run are not picked up. Unreachable users are dropped from the directory so
// the next run skips them. On cancellation the partial report is returned
// together with ctx.Err().
func (s *Service) Run(ctx context.Context, source delivery.Location, onProgress ProgressFunc) (*domain.Report, error) {
	if source.ChatID == 0 || source.MessageID == 0 {
		return nil, sharedErrors.ErrNoBroadcastSource
	}

	ids, err := s.directory.UserIDs(ctx)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{RunID: uuid.NewString(), Total: len(ids)}
	started := time.Now()

	s.logger.Info("broadcast started",
		slog.String("run_id", report.RunID),
		slog.Int("targets", report.Total))

	interval := max(1, report.Total/20)

	for idx, id := range ids {
		if err := s.send(ctx, id, source, report); err != nil {
			report.Duration = time.Since(started)
			return report, err
		}

		done := idx + 1
		if onProgress != nil && (done%interval == 0 || done == report.Total) {
			onProgress(domain.Progress{
				Done:    done,
				Total:   report.Total,
				Success: report.Success,
				Failed:  report.Failed,
			})
		}
	}

	report.Duration = time.Since(started)
	if err := s.directory.RecordBroadcast(ctx); err != nil {
		s.logger.Warn("failed to count broadcast", slog.Any("error", err))
	}

	s.logger.Info("broadcast finished",
		slog.String("run_id", report.RunID),
		slog.Int("success", report.Success),
		slog.Int("failed", report.Failed),
		slog.Int("removed", report.Removed),
		slog.Duration("duration", report.Duration))
	return report, nil
}

// send delivers to one user, waiting out rate limits and retrying the same
// user until the send resolves. Only cancellation errors escape.
func (s *Service) send(ctx context.Context, userID int64, source delivery.Location, report *domain.Report) error {
	for {
		err := s.courier.CopyMessage(ctx, userID, source)
		switch outcome, retryAfter := delivery.Classify(err); outcome {
		case delivery.OutcomeDelivered:
			report.Success++
			return delivery.Wait(ctx, s.sendDelay)

		case delivery.OutcomeRateLimited:
			if waitErr := delivery.Wait(ctx, retryAfter); waitErr != nil {
				return waitErr
			}

		case delivery.OutcomeUnreachable:
			if removeErr := s.directory.RemoveUser(ctx, userID); removeErr != nil {
				s.logger.Warn("failed to remove dead user", slog.Int64("user_id", userID), slog.Any("error", removeErr))
			}
			report.Removed++
			report.Failed++
			return nil

		default:
			s.logger.Error("broadcast delivery failed", slog.Int64("user_id", userID), slog.Any("error", err))
			report.Failed++
			return nil
		}
	}
}
