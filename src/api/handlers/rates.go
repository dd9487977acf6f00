package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	date, err := h.parseDate(r)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	rate, err := h.Controller.GetRate(ctx, chi.URLParam(r, "code"), date)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, rate, http.StatusOK)
}
