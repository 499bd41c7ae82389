package recurrence

import "quadras/web/internal/domain/booking"

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is a transient toast shown once by the shell.
type Notification struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (m *Manager) notify(kind Kind, msg string) {
	m.notes = append(m.notes, Notification{Kind: kind, Message: msg})
}

// Notifications drains the queued notifications.
func (m *Manager) Notifications() []Notification {
	out := m.notes
	m.notes = nil
	return out
}

type Item struct {
	booking.Booking
	StatusLabel string           `json:"statusLabel"`
	Actions     []booking.Action `json:"actions"`
	ReadOnly    bool             `json:"readOnly"`
}

type PanelView struct {
	SeriesID        string         `json:"seriesId"`
	Variant         Variant        `json:"variant"`
	Title           string         `json:"title"`
	Open            bool           `json:"open"`
	CanCancelSeries bool           `json:"canCancelSeries"`
	LockedReason    string         `json:"lockedReason,omitempty"`
	Items           []Item         `json:"items"`
	Notifications   []Notification `json:"notifications"`
}

// View renders the panel. Items outside the pending state carry no actions,
// only their status label.
func (m *Manager) View() PanelView {
	v := PanelView{
		SeriesID:        m.series.ID,
		Variant:         m.variant,
		Title:           m.title(),
		Open:            m.open,
		CanCancelSeries: m.CanCancelSeries(),
		Items:           make([]Item, 0, len(m.series.Bookings)),
		Notifications:   m.Notifications(),
	}
	if v.Notifications == nil {
		v.Notifications = []Notification{}
	}
	if !v.CanCancelSeries {
		v.LockedReason = "Há agendamentos pagos ou confirmados nesta série."
	}

	for _, b := range m.series.Bookings {
		it := Item{Booking: b, StatusLabel: b.Status.Label(), Actions: []booking.Action{}}
		if b.Status.IsPending() {
			switch m.variant {
			case VariantArena:
				it.Actions = booking.ArenaActions()
			default:
				it.Actions = []booking.Action{booking.ActionCancel}
			}
		} else {
			it.ReadOnly = true
		}
		v.Items = append(v.Items, it)
	}
	return v
}

func (m *Manager) title() string {
	s := m.series
	name := s.CourtName
	if name == "" {
		name = "Quadra"
	}
	if day := s.WeekdayName(); day != "" {
		return name + " · " + day + " " + s.Start + "–" + s.End
	}
	return name
}
