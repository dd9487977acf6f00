package handlers

import (
	"context"
	"fmt"
	"net/http"

	"investmanager/src/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	date, err := h.parseDate(r)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	portfolio, err := h.Controller.GetPortfolio(ctx, date)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, portfolio, http.StatusOK)
}

func (h *Handler) ExportPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	date, err := h.parseDate(r)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	file, err := h.Controller.ExportPortfolioXLSX(ctx, date)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	filename := fmt.Sprintf("portfolio-%s.xlsx", date.Format(utils.ShortDashDateLayout))
	h.respondFile(w, xlsxContentType, filename, file.Bytes())
}

func (h *Handler) GetPortfolioReport(w http.ResponseWriter, r *http.Request) {
	// wkhtmltopdf is slow to start
	ctx, cancel := context.WithTimeout(r.Context(), 3*requestTimeout)
	defer cancel()

	date, err := h.parseDate(r)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	pdf, err := h.Controller.GeneratePortfolioReport(ctx, date)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	filename := fmt.Sprintf("portfolio-%s.pdf", date.Format(utils.ShortDashDateLayout))
	h.respondFile(w, "application/pdf", filename, pdf.Bytes())
}
