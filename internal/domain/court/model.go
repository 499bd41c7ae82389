package court

import (
	"strings"

	"quadras/web/internal/domain/booking"
	"quadras/web/internal/utils"
)

type Court struct {
	ID           string   `json:"id"`
	ArenaID      string   `json:"arenaId"`
	ArenaName    string   `json:"arenaNome,omitempty"`
	Name         string   `json:"nome"`
	Sports       []string `json:"esportes"`
	PricePerHour float64  `json:"valorHora"`
	Covered      bool     `json:"coberta"`
	PhotoURL     string   `json:"fotoUrl,omitempty"`
	Active       bool     `json:"ativa"`
	City         string   `json:"cidade,omitempty"`
}

// Slot is one bookable hour on a given day.
type Slot struct {
	Start     string  `json:"horaInicio"`
	End       string  `json:"horaFim"`
	Available bool    `json:"disponivel"`
	Price     float64 `json:"valor"`
}

type Input struct {
	Name         string   `json:"nome" validate:"required,min=2,max=60"`
	Sports       []string `json:"esportes" validate:"required,min=1,dive,oneof=futebol futevolei volei beach_tennis tenis padel basquete"`
	PricePerHour float64  `json:"valorHora" validate:"gt=0,lte=10000"`
	Covered      bool     `json:"coberta"`
	PhotoURL     string   `json:"fotoUrl,omitempty" validate:"omitempty,url"`
	Active       bool     `json:"ativa"`
}

func (in *Input) Trim() {
	in.Name = utils.TrimMax(in.Name, 60)
	in.PhotoURL = strings.TrimSpace(in.PhotoURL)
	for i, s := range in.Sports {
		in.Sports[i] = strings.ToLower(strings.TrimSpace(s))
	}
}

type Card struct {
	Court
	PriceLabel string           `json:"valorFormatado"`
	Actions    []booking.Action `json:"actions"`
}

var (
	ActionBook   = booking.Action{Name: "book", Label: "Reservar"}
	ActionEdit   = booking.Action{Name: "edit", Label: "Editar"}
	ActionDelete = booking.Action{Name: "delete", Label: "Excluir", Confirm: true}
)

// PublicCard is the athlete's view: inactive courts cannot be booked.
func PublicCard(c Court) Card {
	actions := []booking.Action{}
	if c.Active {
		actions = append(actions, ActionBook)
	}
	return Card{Court: c, PriceLabel: utils.FormatBRL(c.PricePerHour), Actions: actions}
}

func OwnerCard(c Court) Card {
	return Card{
		Court:      c,
		PriceLabel: utils.FormatBRL(c.PricePerHour),
		Actions:    []booking.Action{ActionEdit, ActionDelete},
	}
}
