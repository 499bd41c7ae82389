package http

import (
	"net/http"

	"quadras/web/internal/domain/booking"
	"quadras/web/internal/recurrence"

	"github.com/go-chi/chi/v5"
)

type panelError struct {
	APIError
	Panel recurrence.PanelView `json:"panel"`
}

// writePanel answers with the panel after a manager action. On failure the
// panel is unchanged and still open, with the error notification queued.
func writePanel(w http.ResponseWriter, r *http.Request, m *recurrence.Manager, err error) {
	if err == nil {
		WriteJSON(w, 200, m.View())
		return
	}
	status, body := errorBody(r, err, mapRecurrenceError)
	WriteJSON(w, status, panelError{APIError: body, Panel: m.View()})
}

func mountAthlete(r chi.Router, d RouterDeps) {
	// ===== Bookings =====
	r.Get("/agendamentos", func(w http.ResponseWriter, r *http.Request) {
		f, c, err := parseList(r)
		if err != nil {
			failErr(w, r, err, mapCommonError)
			return
		}
		out, err := d.BookingSvc.ListAthlete(r.Context(), f, c)
		if err != nil {
			failErr(w, r, err, mapBookingError)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Post("/agendamentos", func(w http.ResponseWriter, r *http.Request) {
		var in booking.CreateInput
		if err := decode(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		out, err := d.BookingSvc.Create(r.Context(), in)
		if err != nil {
			failErr(w, r, err, mapBookingError)
			return
		}
		WriteJSON(w, 201, booking.AthleteCard(*out))
	})

	r.Post("/agendamentos/{id}/cancelar", func(w http.ResponseWriter, r *http.Request) {
		var in confirmInput
		if err := decode(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		if !confirmed(w, r, in.Confirm, "Cancelar este agendamento?") {
			return
		}
		id := chi.URLParam(r, "id")
		if err := d.BookingSvc.Cancel(r.Context(), id); err != nil {
			failErr(w, r, err, mapBookingError)
			return
		}
		WriteJSON(w, 200, map[string]any{
			"id":           id,
			"status":       booking.StatusCancelled,
			"notification": Notification{Kind: "success", Message: "Agendamento cancelado."},
		})
	})

	r.Post("/agendamentos/{id}/pix", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.PaymentSvc.CreatePix(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			failErr(w, r, err, mapPaymentError)
			return
		}
		WriteJSON(w, 201, out)
	})

	// ===== Recurring bookings =====
	r.Get("/agendamentos-fixos", func(w http.ResponseWriter, r *http.Request) {
		list, err := d.BookingSvc.ListSeries(r.Context())
		if err != nil {
			failErr(w, r, err, mapBookingError)
			return
		}
		out := make([]recurrence.PanelView, 0, len(list))
		for _, s := range list {
			v := recurrence.NewAthlete(s, d.AthleteActions).View()
			v.Open = false
			out = append(out, v)
		}
		WriteJSON(w, 200, out)
	})

	athletePanel := func(w http.ResponseWriter, r *http.Request) (*recurrence.Manager, bool) {
		s, err := d.BookingSvc.GetSeries(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			failErr(w, r, err, mapBookingError)
			return nil, false
		}
		return recurrence.NewAthlete(*s, d.AthleteActions), true
	}

	r.Get("/agendamentos-fixos/{id}", func(w http.ResponseWriter, r *http.Request) {
		m, ok := athletePanel(w, r)
		if !ok {
			return
		}
		WriteJSON(w, 200, m.View())
	})

	r.Post("/agendamentos-fixos/{id}/cancelar", func(w http.ResponseWriter, r *http.Request) {
		var in confirmInput
		if err := decode(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		m, ok := athletePanel(w, r)
		if !ok {
			return
		}
		if !m.CanCancelSeries() {
			writePanel(w, r, m, recurrence.ErrSeriesLocked)
			return
		}
		if !confirmed(w, r, in.Confirm, "Cancelar todos os agendamentos desta série?") {
			return
		}
		writePanel(w, r, m, m.CancelSeries(r.Context()))
	})

	r.Post("/agendamentos-fixos/{id}/itens/{bookingId}/cancelar", func(w http.ResponseWriter, r *http.Request) {
		var in confirmInput
		if err := decode(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		if !confirmed(w, r, in.Confirm, "Cancelar este agendamento da série?") {
			return
		}
		m, ok := athletePanel(w, r)
		if !ok {
			return
		}
		writePanel(w, r, m, m.CancelOne(r.Context(), chi.URLParam(r, "bookingId")))
	})

	// ===== Open games =====
	r.Post("/jogos-abertos/{id}/solicitar", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.OpenGameSvc.Join(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			failErr(w, r, err, mapOpenGameError)
			return
		}
		WriteJSON(w, 201, out)
	})
}
