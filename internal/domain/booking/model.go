package booking

import (
	"strings"
	"time"

	"quadras/web/internal/utils"
	"quadras/web/internal/validation"
)

type Booking struct {
	ID          string  `json:"id"`
	CourtID     string  `json:"quadraId"`
	CourtName   string  `json:"quadraNome,omitempty"`
	ArenaID     string  `json:"arenaId,omitempty"`
	ArenaName   string  `json:"arenaNome,omitempty"`
	AthleteID   string  `json:"atletaId,omitempty"`
	AthleteName string  `json:"atletaNome,omitempty"`
	Sport       string  `json:"esporte,omitempty"`
	Date        string  `json:"data"`       // YYYY-MM-DD
	Start       string  `json:"horaInicio"` // HH:MM
	End         string  `json:"horaFim"`    // HH:MM
	Price       float64 `json:"valor"`
	Status      Status  `json:"status"`
	SeriesID    string  `json:"agendamentoFixoId,omitempty"`
	OpenGame    bool    `json:"jogoAberto"`
	OpenSlots   int     `json:"vagasDisponiveis,omitempty"`
}

// Series is a recurring booking group: one weekly pattern, many occurrences.
type Series struct {
	ID          string    `json:"id"`
	CourtID     string    `json:"quadraId"`
	CourtName   string    `json:"quadraNome,omitempty"`
	ArenaID     string    `json:"arenaId,omitempty"`
	ArenaName   string    `json:"arenaNome,omitempty"`
	AthleteName string    `json:"atletaNome,omitempty"`
	Weekday     int       `json:"diaSemana"` // 0=Sunday
	Start       string    `json:"horaInicio"`
	End         string    `json:"horaFim"`
	Bookings    []Booking `json:"agendamentos"`
}

// Clone copies the occurrences so callers can mutate without aliasing.
func (s Series) Clone() Series {
	out := s
	out.Bookings = append([]Booking(nil), s.Bookings...)
	return out
}

func (s Series) Index(bookingID string) int {
	for i, b := range s.Bookings {
		if b.ID == bookingID {
			return i
		}
	}
	return -1
}

func (s Series) WeekdayName() string {
	names := [...]string{"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}
	if s.Weekday < 0 || s.Weekday >= len(names) {
		return ""
	}
	return names[s.Weekday]
}

type CreateInput struct {
	CourtID   string `json:"quadraId" validate:"required"`
	Date      string `json:"data" validate:"required,datetime=2006-01-02"`
	Start     string `json:"horaInicio" validate:"required,datetime=15:04"`
	End       string `json:"horaFim" validate:"required,datetime=15:04"`
	Recurring bool   `json:"fixo"`
	OpenGame  bool   `json:"jogoAberto"`
	OpenSlots int    `json:"vagas" validate:"gte=0,lte=30"`
}

func (in *CreateInput) Trim() {
	in.CourtID = strings.TrimSpace(in.CourtID)
	in.Date = strings.TrimSpace(in.Date)
	in.Start = strings.TrimSpace(in.Start)
	in.End = strings.TrimSpace(in.End)
}

// Validate runs the form rules before anything is sent to the backend.
func (in CreateInput) Validate(now time.Time) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	if in.End <= in.Start {
		return validation.Field("horaFim", "must be after horaInicio")
	}
	if in.Date < now.Format(utils.DateLayout) {
		return validation.Field("data", "must not be in the past")
	}
	if in.OpenGame && in.OpenSlots == 0 {
		return validation.Field("vagas", "is required for open games")
	}
	return nil
}

type StatusInput struct {
	Status  Status `json:"status"`
	Confirm bool   `json:"confirm"`
}
