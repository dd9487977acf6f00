package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"investmanager/src/api/controllers"
	"investmanager/src/repositories"
	"investmanager/src/services"
	"investmanager/src/utils"
)

const requestTimeout = 10 * time.Second

type Handler struct {
	Controller controllers.IController
	Location   *time.Location
}

func NewHandler(controller controllers.IController, location *time.Location) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{Controller: controller, Location: location}
}

func Healthcheck(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "Im alive!")
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, nil, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) respondFile(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Handler) respondHTML(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// HandleErrors maps domain errors to status codes. Unknown errors are logged and
// hidden behind a generic 500.
func (h *Handler) HandleErrors(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *utils.HTTPError
	var validationErr *utils.ValidationError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		h.respond(w, r, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	case errors.As(err, &validationErr):
		h.respond(w, r, map[string]interface{}{"error": "Invalid request", "fields": validationErr.Fields}, http.StatusBadRequest)
	case errors.Is(err, repositories.ErrAssetNotFound):
		h.respond(w, r, map[string]string{"error": "Not found"}, http.StatusNotFound)
	case errors.Is(err, services.ErrRateNotFound):
		h.respond(w, r, map[string]string{"error": "Rate not available"}, http.StatusNotFound)
	case errors.As(err, &httpErr):
		h.respond(w, r, map[string]string{"error": httpErr.Message}, httpErr.Code)
	default:
		if r != nil {
			utils.LoggerFromContext(r.Context()).WithError(err).Error("unhandled error")
		}
		h.respond(w, r, map[string]string{"error": "Internal Server Error"}, http.StatusInternalServerError)
	}
}

// parseDate reads the optional date query parameter, defaulting to today.
func (h *Handler) parseDate(r *http.Request) (time.Time, error) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		return utils.Today(h.Location), nil
	}
	date, err := utils.ParseShortDate(dateStr, h.Location)
	if err != nil {
		return time.Time{}, &utils.ValidationError{Fields: map[string]string{"date": "must be a YYYY-MM-DD date"}}
	}
	return date, nil
}
