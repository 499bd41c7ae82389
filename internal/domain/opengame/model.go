package opengame

import (
	"strconv"
	"strings"

	"quadras/web/internal/domain/booking"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pendente"
	RequestAccepted RequestStatus = "aceito"
	RequestRejected RequestStatus = "recusado"
)

// Game is a booking whose organizer opened slots to other athletes.
type Game struct {
	ID            string        `json:"id"`
	CourtID       string        `json:"quadraId"`
	CourtName     string        `json:"quadraNome"`
	ArenaID       string        `json:"arenaId"`
	ArenaName     string        `json:"arenaNome"`
	City          string        `json:"cidade,omitempty"`
	Sport         string        `json:"esporte"`
	Date          string        `json:"data"`
	Start         string        `json:"horaInicio"`
	End           string        `json:"horaFim"`
	OpenSlots     int           `json:"vagasDisponiveis"`
	OrganizerID   string        `json:"organizadorId"`
	OrganizerName string        `json:"organizadorNome"`
	Requests      []JoinRequest `json:"solicitacoes,omitempty"`
}

type JoinRequest struct {
	ID          string        `json:"id"`
	AthleteID   string        `json:"atletaId"`
	AthleteName string        `json:"atletaNome"`
	Status      RequestStatus `json:"status"`
}

func (r JoinRequest) IsPending() bool {
	return strings.EqualFold(string(r.Status), string(RequestPending))
}

// RequestFrom returns uid's request on this game, if any.
func (g Game) RequestFrom(uid string) (JoinRequest, bool) {
	for _, r := range g.Requests {
		if r.AthleteID == uid {
			return r, true
		}
	}
	return JoinRequest{}, false
}

type RespondInput struct {
	Accept  *bool `json:"aceitar" validate:"required"`
	Confirm bool  `json:"confirm"`
}

var (
	ActionJoin   = booking.Action{Name: "join", Label: "Pedir para entrar"}
	ActionAccept = booking.Action{Name: "accept", Label: "Aceitar"}
	ActionReject = booking.Action{Name: "reject", Label: "Recusar", Confirm: true}
)

type Card struct {
	Game
	SlotsLabel    string           `json:"vagasFormatado"`
	RequestStatus RequestStatus    `json:"minhaSolicitacao,omitempty"`
	Actions       []booking.Action `json:"actions"`
}

// CardFor builds the card as seen by uid. The join action is offered while
// there are slots and uid has neither organized nor already asked.
func CardFor(uid string) func(Game) Card {
	return func(g Game) Card {
		c := Card{Game: g, SlotsLabel: slotsLabel(g.OpenSlots), Actions: []booking.Action{}}
		if r, ok := g.RequestFrom(uid); ok {
			c.RequestStatus = r.Status
			return c
		}
		if uid != "" && g.OpenSlots > 0 && g.OrganizerID != uid {
			c.Actions = append(c.Actions, ActionJoin)
		}
		return c
	}
}

func slotsLabel(n int) string {
	switch {
	case n <= 0:
		return "Sem vagas"
	case n == 1:
		return "1 vaga"
	}
	return strconv.Itoa(n) + " vagas"
}
