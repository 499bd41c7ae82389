package booking

import "quadras/web/internal/utils"

// Action is a user action a view offers on a card or panel item.
type Action struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Confirm bool   `json:"confirm"`
	Target  Status `json:"target,omitempty"`
}

var (
	ActionCancel = Action{Name: "cancel", Label: "Cancelar", Confirm: true}
	ActionPay    = Action{Name: "pay", Label: "Pagar com Pix"}
)

// ArenaActions are offered to the arena owner on a pending booking.
func ArenaActions() []Action {
	return []Action{
		{Name: "status", Label: "Marcar como pago", Target: ArenaPaid},
		{Name: "status", Label: "Marcar ausência", Target: ArenaAbsent, Confirm: true},
		{Name: "status", Label: "Cancelar", Target: ArenaCancelled, Confirm: true},
	}
}

type Card struct {
	Booking
	StatusLabel string   `json:"statusLabel"`
	PriceLabel  string   `json:"valorFormatado"`
	Recurring   bool     `json:"fixo"`
	Actions     []Action `json:"actions"`
}

func newCard(b Booking, actions []Action) Card {
	if actions == nil {
		actions = []Action{}
	}
	return Card{
		Booking:     b,
		StatusLabel: b.Status.Label(),
		PriceLabel:  utils.FormatBRL(b.Price),
		Recurring:   b.SeriesID != "",
		Actions:     actions,
	}
}

// AthleteCard offers cancel while pending and Pix payment once accepted.
func AthleteCard(b Booking) Card {
	var actions []Action
	switch {
	case b.Status.IsPending():
		actions = append(actions, ActionCancel)
	case b.Status.IsAccepted():
		actions = append(actions, ActionPay)
	}
	return newCard(b, actions)
}

func ArenaCard(b Booking) Card {
	var actions []Action
	if b.Status.IsPending() {
		actions = ArenaActions()
	}
	return newCard(b, actions)
}

// ConfirmRequired reports whether setting s asks the user to confirm first.
func ConfirmRequired(s Status) bool {
	for _, a := range ArenaActions() {
		if a.Target == s {
			return a.Confirm
		}
	}
	return false
}
