package booking

import "strings"

// Status is the booking state as sent by the backend. Athlete views receive
// lowercase values, arena views uppercase ones; comparisons ignore case.
type Status string

const (
	StatusPending   Status = "pendente"
	StatusRequested Status = "solicitado"
	StatusAccepted  Status = "aceito"
	StatusAbsent    Status = "ausente"
	StatusCancelled Status = "cancelado"
	StatusPaid      Status = "pago"

	ArenaPending   Status = "PENDENTE"
	ArenaPaid      Status = "PAGO"
	ArenaAbsent    Status = "AUSENTE"
	ArenaCancelled Status = "CANCELADO"
	ArenaFinished  Status = "FINALIZADO"
)

func (s Status) Is(other Status) bool { return strings.EqualFold(string(s), string(other)) }

// IsPending is the initial state, the only one in which actions are offered.
func (s Status) IsPending() bool   { return s.Is(StatusPending) }
func (s Status) IsPaid() bool      { return s.Is(StatusPaid) }
func (s Status) IsAccepted() bool  { return s.Is(StatusAccepted) }
func (s Status) IsCancelled() bool { return s.Is(StatusCancelled) }

func (s Status) IsTerminal() bool {
	return s.Is(StatusCancelled) || s.Is(StatusPaid) || s.Is(StatusAbsent) || s.Is(ArenaFinished)
}

// BlocksSeriesCancel is true once an occurrence is paid or confirmed.
func (s Status) BlocksSeriesCancel() bool {
	return s.IsPaid() || s.IsAccepted()
}

func (s Status) Label() string {
	switch {
	case s.Is(StatusPending):
		return "Pendente"
	case s.Is(StatusRequested):
		return "Solicitado"
	case s.Is(StatusAccepted):
		return "Aceito"
	case s.Is(StatusAbsent):
		return "Ausente"
	case s.Is(StatusCancelled):
		return "Cancelado"
	case s.Is(StatusPaid):
		return "Pago"
	case s.Is(ArenaFinished):
		return "Finalizado"
	}
	return string(s)
}

// ArenaTargets are the statuses an arena owner may set on a pending booking.
var ArenaTargets = []Status{ArenaPaid, ArenaAbsent, ArenaCancelled}

func IsArenaTarget(s Status) bool {
	for _, t := range ArenaTargets {
		if s == t {
			return true
		}
	}
	return false
}
