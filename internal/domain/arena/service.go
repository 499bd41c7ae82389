package arena

import (
	"context"
	"fmt"
	"net/url"

	"quadras/web/internal/listing"
	"quadras/web/internal/validation"
)

type Backend interface {
	ListArenas(ctx context.Context, q url.Values) (listing.Result[Arena], error)
	GetArena(ctx context.Context, arenaID string) (*Arena, error)
	UpdateArena(ctx context.Context, arenaID string, in UpdateProfileInput) (*Arena, error)
	ListReviews(ctx context.Context, arenaID string) ([]Review, error)
}

type Service struct {
	backend Backend
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

func (s *Service) List(ctx context.Context, f listing.Filter, c listing.Cursor) (listing.Page[Card], error) {
	res, err := s.backend.ListArenas(ctx, c.Query(f.Query()))
	if err != nil {
		return listing.Page[Card]{}, err
	}
	keep := func(a Arena) bool {
		return f.MatchesSearch(a.Name, a.City, a.Address) && (len(a.Sports) == 0 || f.MatchesSport(a.Sports...))
	}
	return listing.ToPage(res, c, f, keep, NewCard), nil
}

func (s *Service) Get(ctx context.Context, arenaID string) (*Card, error) {
	if arenaID == "" {
		return nil, fmt.Errorf("%w: arenaId is required", ErrBadRequest)
	}
	a, err := s.backend.GetArena(ctx, arenaID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: arena %s", ErrNotFound, arenaID)
	}
	card := NewCard(*a)
	return &card, nil
}

func (s *Service) Reviews(ctx context.Context, arenaID string) (ReviewSummary, error) {
	if arenaID == "" {
		return ReviewSummary{}, fmt.Errorf("%w: arenaId is required", ErrBadRequest)
	}
	reviews, err := s.backend.ListReviews(ctx, arenaID)
	if err != nil {
		return ReviewSummary{}, err
	}
	return Summarize(reviews), nil
}

func (s *Service) UpdateProfile(ctx context.Context, arenaID string, in UpdateProfileInput) (*Arena, error) {
	if arenaID == "" {
		return nil, fmt.Errorf("%w: arenaId is required", ErrBadRequest)
	}
	in.Trim()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return s.backend.UpdateArena(ctx, arenaID, in)
}
