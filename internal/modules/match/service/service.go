package service

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/filterbotio/autofilter-bot/internal/delivery"
	directoryService "github.com/filterbotio/autofilter-bot/internal/modules/directory/service"
	filterDomain "github.com/filterbotio/autofilter-bot/internal/modules/filter/domain"
	filterService "github.com/filterbotio/autofilter-bot/internal/modules/filter/service"
	"github.com/filterbotio/autofilter-bot/internal/modules/match/domain"
)

const (
	// maxKeywords caps how many fired keywords one message can replay.
	maxKeywords = 5
	// maxPayloads caps how many payloads replay per fired keyword.
	maxPayloads = 10

	defaultReplayDelay = 500 * time.Millisecond
)

// Service scans inbound messages against the filter index and replays stored
// payloads into the chat that asked
type Service struct {
	filters   *filterService.Service
	directory *directoryService.Service
	courier   delivery.Courier
	logger    *slog.Logger

	replayDelay time.Duration
}

// Option adjusts matcher behavior.
type Option func(*Service)

// WithReplayDelay overrides the pause between replayed payloads.
func WithReplayDelay(d time.Duration) Option {
	return func(s *Service) { s.replayDelay = d }
}

// New creates a new matcher service
func New(filters *filterService.Service, directory *directoryService.Service, courier delivery.Courier, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		filters:     filters,
		directory:   directory,
		courier:     courier,
		logger:      logger,
		replayDelay: defaultReplayDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleMessage runs one message end to end: directory bookkeeping, keyword
// scan, payload replay. It returns the keywords that fired. Only cancellation
// aborts it; per-payload delivery failures are logged and skipped.
func (s *Service) HandleMessage(ctx context.Context, msg domain.Inbound) ([]string, error) {
	if msg.Text == "" || strings.HasPrefix(msg.Text, "/") {
		return nil, nil
	}

	s.track(ctx, msg)

	index, err := s.filters.Index(ctx)
	if err != nil {
		return nil, err
	}

	fired := matchKeywords(msg.Text, index)
	if len(fired) == 0 {
		return nil, nil
	}

	// One search per message, however many keywords fired.
	if err := s.directory.RecordTriggeredSearch(ctx); err != nil {
		s.logger.Warn("failed to count search", slog.Any("error", err))
	}

	for _, keyword := range fired {
		for _, payload := range lo.Slice(index[keyword], 0, maxPayloads) {
			if err := s.replay(ctx, msg.ChatID, keyword, payload); err != nil {
				return fired, err
			}
		}
	}
	return fired, nil
}

// track keeps the directory current. Failures here must not block matching.
func (s *Service) track(ctx context.Context, msg domain.Inbound) {
	switch msg.Chat {
	case domain.ChatKindPrivate:
		if err := s.directory.RegisterUser(ctx, msg.SenderID, msg.Sender); err != nil {
			s.logger.Warn("failed to register user", slog.Int64("user_id", msg.SenderID), slog.Any("error", err))
		}
		if err := s.directory.RecordUserSearch(ctx, msg.SenderID); err != nil {
			s.logger.Warn("failed to count user search", slog.Int64("user_id", msg.SenderID), slog.Any("error", err))
		}
	case domain.ChatKindGroup, domain.ChatKindSupergroup:
		profile := msg.Group
		profile.MemberCount = s.courier.MemberCount(ctx, msg.ChatID)
		if err := s.directory.RegisterGroup(ctx, msg.ChatID, profile); err != nil {
			s.logger.Warn("failed to register group", slog.Int64("chat_id", msg.ChatID), slog.Any("error", err))
		}
	}
}

// replay copies one payload into the chat, waiting out rate limits and
// retrying the same payload until it goes through or ctx ends.
func (s *Service) replay(ctx context.Context, chatID int64, keyword string, payload filterDomain.Payload) error {
	from := delivery.Location{ChatID: payload.ChatID, MessageID: payload.MessageID}
	for {
		err := s.courier.CopyMessage(ctx, chatID, from)
		switch outcome, retryAfter := delivery.Classify(err); outcome {
		case delivery.OutcomeDelivered:
			return delivery.Wait(ctx, s.replayDelay)
		case delivery.OutcomeRateLimited:
			if waitErr := delivery.Wait(ctx, retryAfter); waitErr != nil {
				return waitErr
			}
		default:
			s.logger.Error("failed to replay payload",
				slog.String("keyword", keyword),
				slog.Int64("chat_id", chatID),
				slog.String("outcome", outcome.String()),
				slog.Any("error", err))
			return nil
		}
	}
}

// matchKeywords finds whole-word keyword occurrences in the text, case
// insensitively. Keywords are checked in lexicographic order so the replay
// order for a given index is stable.
func matchKeywords(text string, index map[string][]filterDomain.Payload) []string {
	lowered := strings.ToLower(text)

	keywords := lo.Keys(index)
	sort.Strings(keywords)

	var fired []string
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
		if err != nil {
			continue
		}
		if re.MatchString(lowered) {
			fired = append(fired, keyword)
			if len(fired) == maxKeywords {
				break
			}
		}
	}
	return fired
}
