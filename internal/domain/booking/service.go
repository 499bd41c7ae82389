package booking

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"quadras/web/internal/listing"
)

// Backend is the slice of the backend API client used for bookings.
type Backend interface {
	ListAthleteBookings(ctx context.Context, q url.Values) (listing.Result[Booking], error)
	ListArenaBookings(ctx context.Context, arenaID string, q url.Values) (listing.Result[Booking], error)
	CreateBooking(ctx context.Context, in CreateInput) (*Booking, error)
	CancelBooking(ctx context.Context, bookingID string) error
	ChangeBookingStatus(ctx context.Context, bookingID string, status Status) error
	ListSeries(ctx context.Context) ([]Series, error)
	GetSeries(ctx context.Context, seriesID string) (*Series, error)
}

type Service struct {
	backend Backend
	now     func() time.Time
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend, now: time.Now}
}

// ListAthlete returns the caller's bookings page. Results are re-checked
// against the filter so the view never shows rows outside it.
func (s *Service) ListAthlete(ctx context.Context, f listing.Filter, c listing.Cursor) (listing.Page[Card], error) {
	res, err := s.backend.ListAthleteBookings(ctx, c.Query(f.Query()))
	if err != nil {
		return listing.Page[Card]{}, err
	}
	return listing.ToPage(res, c, f, matcher(f), AthleteCard), nil
}

func (s *Service) ListArena(ctx context.Context, arenaID string, f listing.Filter, c listing.Cursor) (listing.Page[Card], error) {
	if arenaID == "" {
		return listing.Page[Card]{}, fmt.Errorf("%w: arenaId is required", ErrBadRequest)
	}
	res, err := s.backend.ListArenaBookings(ctx, arenaID, c.Query(f.Query()))
	if err != nil {
		return listing.Page[Card]{}, err
	}
	return listing.ToPage(res, c, f, matcher(f), ArenaCard), nil
}

func matcher(f listing.Filter) func(Booking) bool {
	return func(b Booking) bool {
		if !f.InRange(b.Date) || !f.MatchesSport(b.Sport) {
			return false
		}
		if f.Status != "" && !b.Status.Is(Status(f.Status)) {
			return false
		}
		return f.MatchesSearch(b.CourtName, b.ArenaName, b.AthleteName)
	}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Booking, error) {
	in.Trim()
	if err := in.Validate(s.now()); err != nil {
		return nil, err
	}
	return s.backend.CreateBooking(ctx, in)
}

func (s *Service) Cancel(ctx context.Context, bookingID string) error {
	if bookingID == "" {
		return fmt.Errorf("%w: bookingId is required", ErrBadRequest)
	}
	return s.backend.CancelBooking(ctx, bookingID)
}

// ChangeStatus is the arena-side transition of a single booking.
func (s *Service) ChangeStatus(ctx context.Context, bookingID string, status Status) error {
	if bookingID == "" {
		return fmt.Errorf("%w: bookingId is required", ErrBadRequest)
	}
	if !IsArenaTarget(status) {
		return fmt.Errorf("%w: status %q cannot be set by the arena", ErrBadRequest, status)
	}
	return s.backend.ChangeBookingStatus(ctx, bookingID, status)
}

func (s *Service) ListSeries(ctx context.Context) ([]Series, error) {
	out, err := s.backend.ListSeries(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Series{}
	}
	return out, nil
}

func (s *Service) GetSeries(ctx context.Context, seriesID string) (*Series, error) {
	if seriesID == "" {
		return nil, fmt.Errorf("%w: seriesId is required", ErrBadRequest)
	}
	sr, err := s.backend.GetSeries(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	if sr == nil {
		return nil, fmt.Errorf("%w: series %s", ErrNotFound, seriesID)
	}
	return sr, nil
}
