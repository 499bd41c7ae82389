package court

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"quadras/web/internal/listing"
	"quadras/web/internal/utils"
	"quadras/web/internal/validation"
)

type Backend interface {
	ListCourts(ctx context.Context, q url.Values) (listing.Result[Court], error)
	GetCourt(ctx context.Context, courtID string) (*Court, error)
	ListSlots(ctx context.Context, courtID, date string) ([]Slot, error)
	CreateCourt(ctx context.Context, arenaID string, in Input) (*Court, error)
	UpdateCourt(ctx context.Context, courtID string, in Input) (*Court, error)
	DeleteCourt(ctx context.Context, courtID string) error
}

type Service struct {
	backend Backend
	now     func() time.Time
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend, now: time.Now}
}

func matcher(f listing.Filter) func(Court) bool {
	return func(c Court) bool {
		if !f.MatchesSport(c.Sports...) {
			return false
		}
		return f.MatchesSearch(c.Name, c.ArenaName, c.City)
	}
}

// List is the public court search.
func (s *Service) List(ctx context.Context, f listing.Filter, c listing.Cursor) (listing.Page[Card], error) {
	res, err := s.backend.ListCourts(ctx, c.Query(f.Query()))
	if err != nil {
		return listing.Page[Card]{}, err
	}
	return listing.ToPage(res, c, f, matcher(f), PublicCard), nil
}

// ListOwned lists the courts of one arena with owner actions.
func (s *Service) ListOwned(ctx context.Context, arenaID string, f listing.Filter, c listing.Cursor) (listing.Page[Card], error) {
	if arenaID == "" {
		return listing.Page[Card]{}, fmt.Errorf("%w: arenaId is required", ErrBadRequest)
	}
	q := c.Query(f.Query())
	q.Set("arenaId", arenaID)
	res, err := s.backend.ListCourts(ctx, q)
	if err != nil {
		return listing.Page[Card]{}, err
	}
	return listing.ToPage(res, c, f, matcher(f), OwnerCard), nil
}

func (s *Service) Get(ctx context.Context, courtID string) (*Card, error) {
	if courtID == "" {
		return nil, fmt.Errorf("%w: courtId is required", ErrBadRequest)
	}
	c, err := s.backend.GetCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: court %s", ErrNotFound, courtID)
	}
	card := PublicCard(*c)
	return &card, nil
}

// Slots returns the day's schedule. An empty date means today.
func (s *Service) Slots(ctx context.Context, courtID, date string) ([]Slot, error) {
	if courtID == "" {
		return nil, fmt.Errorf("%w: courtId is required", ErrBadRequest)
	}
	if date == "" {
		date = s.now().Format(utils.DateLayout)
	}
	if _, err := utils.ParseDate(date); err != nil {
		return nil, validation.Field("data", "must be YYYY-MM-DD")
	}
	slots, err := s.backend.ListSlots(ctx, courtID, date)
	if err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []Slot{}
	}
	return slots, nil
}

func (s *Service) Create(ctx context.Context, arenaID string, in Input) (*Court, error) {
	if arenaID == "" {
		return nil, fmt.Errorf("%w: arenaId is required", ErrBadRequest)
	}
	in.Trim()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return s.backend.CreateCourt(ctx, arenaID, in)
}

func (s *Service) Update(ctx context.Context, courtID string, in Input) (*Court, error) {
	if courtID == "" {
		return nil, fmt.Errorf("%w: courtId is required", ErrBadRequest)
	}
	in.Trim()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return s.backend.UpdateCourt(ctx, courtID, in)
}

func (s *Service) Delete(ctx context.Context, courtID string) error {
	if courtID == "" {
		return fmt.Errorf("%w: courtId is required", ErrBadRequest)
	}
	return s.backend.DeleteCourt(ctx, courtID)
}
