package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func mountAdmin(r chi.Router, d RouterDeps) {
	r.Get("/arenas", func(w http.ResponseWriter, r *http.Request) {
		f, c, err := parseList(r)
		if err != nil {
			failErr(w, r, err, mapCommonError)
			return
		}
		out, err := d.ArenaSvc.List(r.Context(), f, c)
		if err != nil {
			failErr(w, r, err, mapArenaError)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Get("/arenas/{id}/assinatura", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.SubscriptionSvc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			failErr(w, r, err, mapSubscriptionError)
			return
		}
		WriteJSON(w, 200, out)
	})
}
