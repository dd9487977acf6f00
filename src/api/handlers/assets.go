package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"investmanager/src/schemas"
	"investmanager/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllAssets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	assets, err := h.Controller.GetAllAssets(ctx)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, assets, http.StatusOK)
}

func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var request schemas.AssetRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.HandleErrors(w, r, utils.BadRequest("Invalid JSON body"))
		return
	}

	asset, err := h.Controller.CreateAsset(ctx, request)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, asset, http.StatusCreated)
}

func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, r, utils.BadRequest("Invalid asset id"))
		return
	}

	if err := h.Controller.DeleteAsset(ctx, id); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
