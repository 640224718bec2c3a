package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/filterbotio/autofilter-bot/internal/modules/filter/domain"
	sharedErrors "github.com/filterbotio/autofilter-bot/internal/shared/errors"
	"github.com/filterbotio/autofilter-bot/internal/storage"
)

// Service manages the keyword filter index
type Service struct {
	backend storage.Backend
}

// New creates a new filter service
func New(backend storage.Backend) *Service {
	return &Service{backend: backend}
}

// KeywordCount is one index entry for listing: the stored keyword and how
// many payloads reply to it.
type KeywordCount struct {
	Keyword string
	Count   int
}

// Add stores a payload under the keyword's canonical form and returns that
// form. Repeated adds append, so one keyword can carry many replies.
func (s *Service) Add(ctx context.Context, keyword string, payload domain.Payload) (string, error) {
	canonical := domain.Canonicalize(keyword)
	if canonical == "" {
		return "", sharedErrors.ErrEmptyKeyword
	}

	payload.AddedAt = time.Now()
	if err := s.backend.AddFilterPayload(ctx, canonical, payload); err != nil {
		return "", err
	}
	return canonical, nil
}

// Delete removes a keyword with all its payloads. The bool reports whether
// the keyword existed.
func (s *Service) Delete(ctx context.Context, keyword string) (bool, error) {
	canonical := domain.Canonicalize(keyword)
	if canonical == "" {
		return false, sharedErrors.ErrEmptyKeyword
	}
	return s.backend.DeleteFilter(ctx, canonical)
}

// Index returns the full keyword index for matching.
func (s *Service) Index(ctx context.Context) (map[string][]domain.Payload, error) {
	return s.backend.Filters(ctx)
}

// All lists every stored keyword with its payload count, sorted by keyword.
func (s *Service) All(ctx context.Context) ([]KeywordCount, error) {
	filters, err := s.backend.Filters(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]KeywordCount, 0, len(filters))
	for keyword, payloads := range filters {
		out = append(out, KeywordCount{Keyword: keyword, Count: len(payloads)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keyword < out[j].Keyword })
	return out, nil
}

// Search lists keywords containing the query as a substring, sorted by
// keyword. Matching is case-insensitive via the same canonical form Add uses.
func (s *Service) Search(ctx context.Context, query string) ([]KeywordCount, error) {
	canonical := domain.Canonicalize(query)
	if canonical == "" {
		return nil, sharedErrors.ErrEmptyKeyword
	}

	filters, err := s.backend.Filters(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]KeywordCount, 0)
	for keyword, payloads := range filters {
		if strings.Contains(keyword, canonical) {
			out = append(out, KeywordCount{Keyword: keyword, Count: len(payloads)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keyword < out[j].Keyword })
	return out, nil
}
