package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"investmanager/src/utils"
	"investmanager/src/worker/controllers"
)

type Handler struct {
	Controller *controllers.Controller
}

func NewHandler(controller *controllers.Controller) *Handler {
	return &Handler{Controller: controller}
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	var validationErr *utils.ValidationError
	if errors.As(err, &validationErr) {
		h.respond(w, nil, map[string]interface{}{"error": "Invalid request", "fields": validationErr.Fields}, http.StatusBadRequest)
	} else if errors.As(err, &httpErr) {
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	} else {
		h.respond(w, nil, map[string]string{"error": "Internal Server Error"}, http.StatusInternalServerError)
	}
}

func (h *Handler) location() *time.Location {
	if h.Controller.Location == nil {
		return time.UTC
	}
	return h.Controller.Location
}
