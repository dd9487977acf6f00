package handlers

import (
	"context"
	"net/http"
)

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	date, err := h.parseDate(r)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	html, err := h.Controller.RenderDashboard(ctx, date)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respondHTML(w, html)
}

func (h *Handler) DashboardChart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	date, err := h.parseDate(r)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	html, err := h.Controller.RenderPortfolioChart(ctx, date)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respondHTML(w, html)
}
