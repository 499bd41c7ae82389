package opengame

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"quadras/web/internal/listing"
	"quadras/web/internal/validation"
)

type Backend interface {
	ListOpenGames(ctx context.Context, q url.Values) (listing.Result[Game], error)
	RequestJoin(ctx context.Context, gameID string) (*JoinRequest, error)
	RespondJoin(ctx context.Context, gameID, requestID string, accept bool) error
}

type Service struct {
	backend Backend
	now     func() time.Time
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend, now: time.Now}
}

// List shows upcoming games; past dates are hidden unless the filter asks
// for them explicitly.
func (s *Service) List(ctx context.Context, uid string, f listing.Filter, c listing.Cursor) (listing.Page[Card], error) {
	if f.From == "" {
		f.From = listing.Today(s.now())
	}
	res, err := s.backend.ListOpenGames(ctx, c.Query(f.Query()))
	if err != nil {
		return listing.Page[Card]{}, err
	}
	keep := func(g Game) bool {
		return f.InRange(g.Date) && f.MatchesSport(g.Sport) && f.MatchesSearch(g.ArenaName, g.CourtName, g.City)
	}
	return listing.ToPage(res, c, f, keep, CardFor(uid)), nil
}

// Join asks to enter a game. Slot and ownership checks belong to the backend.
func (s *Service) Join(ctx context.Context, gameID string) (*JoinRequest, error) {
	if gameID == "" {
		return nil, fmt.Errorf("%w: gameId is required", ErrBadRequest)
	}
	return s.backend.RequestJoin(ctx, gameID)
}

func (s *Service) Respond(ctx context.Context, gameID, requestID string, in RespondInput) error {
	if gameID == "" || requestID == "" {
		return fmt.Errorf("%w: gameId and requestId are required", ErrBadRequest)
	}
	if err := validation.Struct(in); err != nil {
		return err
	}
	return s.backend.RespondJoin(ctx, gameID, requestID, *in.Accept)
}
