// Package recurrence manages one recurring booking series at a time: it
// decides which actions the panel offers and applies remote results to the
// local view only after the backend confirmed them.
package recurrence

import (
	"context"
	"fmt"

	"quadras/web/internal/domain/booking"
	"quadras/web/internal/logging"
)

type Variant string

const (
	VariantAthlete Variant = "atleta"
	VariantArena   Variant = "arena"
)

func (v Variant) cancelled() booking.Status {
	if v == VariantArena {
		return booking.ArenaCancelled
	}
	return booking.StatusCancelled
}

// AthleteActions are the remote calls available to the athlete panel.
type AthleteActions interface {
	CancelSeries(ctx context.Context, seriesID string) error
	CancelBooking(ctx context.Context, bookingID string) error
}

// ArenaActions are the remote calls available to the arena panel.
type ArenaActions interface {
	CancelSeries(ctx context.Context, seriesID string) error
	ChangeBookingStatus(ctx context.Context, bookingID string, status booking.Status) error
}

type Manager struct {
	variant Variant
	series  booking.Series
	open    bool
	notes   []Notification

	athlete AthleteActions
	arena   ArenaActions
}

func NewAthlete(series booking.Series, actions AthleteActions) *Manager {
	return &Manager{variant: VariantAthlete, series: series.Clone(), open: true, athlete: actions}
}

func NewArena(series booking.Series, actions ArenaActions) *Manager {
	return &Manager{variant: VariantArena, series: series.Clone(), open: true, arena: actions}
}

func (m *Manager) Variant() Variant { return m.variant }
func (m *Manager) Open() bool       { return m.open }
func (m *Manager) Close()           { m.open = false }

// Series returns a copy of the series as currently displayed.
func (m *Manager) Series() booking.Series { return m.series.Clone() }

// CanCancelSeries is the advisory gate: no occurrence may be paid or
// confirmed. The backend stays authoritative.
func (m *Manager) CanCancelSeries() bool {
	for _, b := range m.series.Bookings {
		if b.Status.BlocksSeriesCancel() {
			return false
		}
	}
	return true
}

// CancelSeries cancels every occurrence. On success all items show the
// cancelled status and the panel closes; on failure nothing changes and an
// error notification is queued.
func (m *Manager) CancelSeries(ctx context.Context) error {
	if !m.CanCancelSeries() {
		return fmt.Errorf("%w: %s", ErrSeriesLocked, m.series.ID)
	}

	var err error
	switch m.variant {
	case VariantArena:
		err = m.arena.CancelSeries(ctx, m.series.ID)
	default:
		err = m.athlete.CancelSeries(ctx, m.series.ID)
	}
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "series cancellation failed",
			"series_id", m.series.ID, "variant", string(m.variant), "error", err)
		m.notify(KindError, "Não foi possível cancelar os agendamentos fixos. Tente novamente.")
		return err
	}

	cancelled := m.variant.cancelled()
	for i := range m.series.Bookings {
		m.series.Bookings[i].Status = cancelled
	}
	m.notify(KindSuccess, "Agendamentos fixos cancelados.")
	m.open = false
	return nil
}

// CancelOne cancels a single pending occurrence (athlete panel).
func (m *Manager) CancelOne(ctx context.Context, bookingID string) error {
	if m.variant != VariantAthlete {
		return fmt.Errorf("%w: cancel is an athlete action", ErrActionNotOffered)
	}
	i, err := m.pendingIndex(bookingID)
	if err != nil {
		return err
	}
	if err := m.athlete.CancelBooking(ctx, bookingID); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "booking cancellation failed",
			"series_id", m.series.ID, "booking_id", bookingID, "error", err)
		m.notify(KindError, "Não foi possível cancelar o agendamento. Tente novamente.")
		return err
	}
	m.series.Bookings[i].Status = booking.StatusCancelled
	m.notify(KindSuccess, "Agendamento cancelado.")
	return nil
}

// ChangeStatus moves a single pending occurrence to status (arena panel).
func (m *Manager) ChangeStatus(ctx context.Context, bookingID string, status booking.Status) error {
	if m.variant != VariantArena {
		return fmt.Errorf("%w: status changes are arena actions", ErrActionNotOffered)
	}
	if !booking.IsArenaTarget(status) {
		return fmt.Errorf("%w: status %q", ErrBadRequest, status)
	}
	i, err := m.pendingIndex(bookingID)
	if err != nil {
		return err
	}
	if err := m.arena.ChangeBookingStatus(ctx, bookingID, status); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "booking status change failed",
			"series_id", m.series.ID, "booking_id", bookingID, "status", string(status), "error", err)
		m.notify(KindError, "Não foi possível alterar o status. Tente novamente.")
		return err
	}
	m.series.Bookings[i].Status = status
	m.notify(KindSuccess, "Status atualizado para "+status.Label()+".")
	return nil
}

func (m *Manager) pendingIndex(bookingID string) (int, error) {
	i := m.series.Index(bookingID)
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrNotFound, bookingID)
	}
	if !m.series.Bookings[i].Status.IsPending() {
		return -1, fmt.Errorf("%w: %s is %s", ErrActionNotOffered, bookingID, m.series.Bookings[i].Status)
	}
	return i, nil
}
