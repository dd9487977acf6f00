package handlers

import (
	"context"
	"net/http"
	"time"

	"investmanager/src/utils"
)

// WarmRates resolves every rate for the date query parameter, or today, right away.
func (h *Handler) WarmRates(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	date := utils.Today(h.location())
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := utils.ParseShortDate(dateStr, h.location())
		if err != nil {
			h.HandleErrors(w, &utils.ValidationError{Fields: map[string]string{"date": "must be a YYYY-MM-DD date"}})
			return
		}
		date = parsed
	}

	h.respond(w, r, h.Controller.WarmRates(ctx, date), http.StatusOK)
}
