package http

import (
	"net/http"

	"quadras/web/internal/domain/arena"
	"quadras/web/internal/domain/booking"
	"quadras/web/internal/domain/court"
	"quadras/web/internal/domain/opengame"
	"quadras/web/internal/domain/subscription"
	"quadras/web/internal/recurrence"

	"github.com/go-chi/chi/v5"
)

func mountArena(r chi.Router, d RouterDeps) {
	// ===== Bookings =====
	r.Get("/agendamentos", func(w http.ResponseWriter, r *http.Request) {
		f, c, err := parseList(r)
		if err != nil {
			failErr(w, r, err, mapCommonError)
			return
		}
		out, err := d.BookingSvc.ListArena(r.Context(), chi.URLParam(r, "arenaId"), f, c)
		if err != nil {
			failErr(w, r, err, mapBookingError)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Post("/agendamentos/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		var in booking.StatusInput
		if err := decode(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		if booking.ConfirmRequired(in.Status) && !confirmed(w, r, in.Confirm, "Alterar o status para "+in.Status.Label()+"?") {
			return
		}
		id := chi.URLParam(r, "id")
		if err := d.BookingSvc.ChangeStatus(r.Context(), id, in.Status); err != nil {
			failErr(w, r, err, mapBookingError)
			return
		}
		WriteJSON(w, 200, map[string]any{
			"id":           id,
			"status":       in.Status,
			"notification": Notification{Kind: "success", Message: "Status atualizado para " + in.Status.Label() + "."},
		})
	})

	// ===== Recurring bookings =====
	arenaPanel := func(w http.ResponseWriter, r *http.Request) (*recurrence.Manager, bool) {
		s, err := d.BookingSvc.GetSeries(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			failErr(w, r, err, mapBookingError)
			return nil, false
		}
		if s.ArenaID != "" && s.ArenaID != chi.URLParam(r, "arenaId") {
			Fail(w, 404, "series not found")
			return nil, false
		}
		return recurrence.NewArena(*s, d.ArenaActions), true
	}

	r.Get("/agendamentos-fixos/{id}", func(w http.ResponseWriter, r *http.Request) {
		m, ok := arenaPanel(w, r)
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
		m, ok := arenaPanel(w, r)
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

	r.Post("/agendamentos-fixos/{id}/itens/{bookingId}/status", func(w http.ResponseWriter, r *http.Request) {
		var in booking.StatusInput
		if err := decode(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		if booking.ConfirmRequired(in.Status) && !confirmed(w, r, in.Confirm, "Alterar o status para "+in.Status.Label()+"?") {
			return
		}
		m, ok := arenaPanel(w, r)
		if !ok {
			return
		}
		writePanel(w, r, m, m.ChangeStatus(r.Context(), chi.URLParam(r, "bookingId"), in.Status))
	})

	// ===== Courts =====
	r.Get("/quadras", func(w http.ResponseWriter, r *http.Request) {
		f, c, err := parseList(r)
		if err != nil {
			failErr(w, r, err, mapCommonError)
			return
		}
		out, err := d.CourtSvc.ListOwned(r.Context(), chi.URLParam(r, "arenaId"), f, c)
		if err != nil {
			failErr(w, r, err, mapCourtError)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Post("/quadras", func(w http.ResponseWriter, r *http.Request) {
		arenaID := chi.URLParam(r, "arenaId")
		var in court.Input
		if err := decode(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}

		// ★ Check plan limit before creating a court
		if d.SubscriptionSvc != nil {
			if err := d.SubscriptionSvc.CheckCourtLimit(r.Context(), arenaID); err != nil {
				failErr(w, r, err, mapSubscriptionError)
				return
			}
		}

		out, err := d.CourtSvc.Create(r.Context(), arenaID, in)
		if err != nil {
			failErr(w, r, err, mapCourtError)
			return
		}
		WriteJSON(w, 201, court.OwnerCard(*out))
	})

	r.Put("/quadras/{id}", func(w http.ResponseWriter, r *http.Request) {
		var in court.Input
		if err := decode(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		out, err := d.CourtSvc.Update(r.Context(), chi.URLParam(r, "id"), in)
		if err != nil {
			failErr(w, r, err, mapCourtError)
			return
		}
		WriteJSON(w, 200, court.OwnerCard(*out))
	})

	r.Delete("/quadras/{id}", func(w http.ResponseWriter, r *http.Request) {
		var in confirmInput
		if err := decode(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		if !confirmed(w, r, in.Confirm, "Excluir esta quadra?") {
			return
		}
		if err := d.CourtSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			failErr(w, r, err, mapCourtError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	// ===== Profile =====
	r.Put("/perfil", func(w http.ResponseWriter, r *http.Request) {
		var in arena.UpdateProfileInput
		if err := decode(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		out, err := d.ArenaSvc.UpdateProfile(r.Context(), chi.URLParam(r, "arenaId"), in)
		if err != nil {
			failErr(w, r, err, mapArenaError)
			return
		}
		WriteJSON(w, 200, arena.NewCard(*out))
	})

	// ===== Open game requests =====
	r.Post("/jogos-abertos/{id}/solicitacoes/{requestId}", func(w http.ResponseWriter, r *http.Request) {
		var in opengame.RespondInput
		if err := decode(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		if in.Accept != nil && !*in.Accept && !confirmed(w, r, in.Confirm, "Recusar esta solicitação?") {
			return
		}
		err := d.OpenGameSvc.Respond(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "requestId"), in)
		if err != nil {
			failErr(w, r, err, mapOpenGameError)
			return
		}
		WriteJSON(w, 200, map[string]any{"ok": true})
	})

	// ===== Subscription =====
	r.Get("/assinatura", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.SubscriptionSvc.Get(r.Context(), chi.URLParam(r, "arenaId"))
		if err != nil {
			failErr(w, r, err, mapSubscriptionError)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Post("/assinatura/portal", func(w http.ResponseWriter, r *http.Request) {
		var in subscription.PortalInput
		if err := decode(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		url, err := d.SubscriptionSvc.CreatePortalSession(r.Context(), chi.URLParam(r, "arenaId"), in)
		if err != nil {
			failErr(w, r, err, mapSubscriptionError)
			return
		}
		redirectOrJSON(w, r, url)
	})

	r.Post("/assinatura/checkout", func(w http.ResponseWriter, r *http.Request) {
		var in subscription.CheckoutInput
		if err := decode(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		url, err := d.SubscriptionSvc.CreateCheckoutSession(r.Context(), chi.URLParam(r, "arenaId"), in)
		if err != nil {
			failErr(w, r, err, mapSubscriptionError)
			return
		}
		redirectOrJSON(w, r, url)
	})

	if d.Checkout != nil {
		r.Get("/assinatura/retorno", d.Checkout.Return)
	}
}
