package controllers

import (
	"net/http"
	"strconv"

	"github.com/glucheck/backend/repository"
	"github.com/glucheck/backend/services"

	"github.com/go-chi/chi/v5"
)

// HistoryController serves the stored assessment history.
type HistoryController struct {
	assessments *services.AssessmentService
}

func NewHistoryController(assessments *services.AssessmentService) *HistoryController {
	return &HistoryController{assessments: assessments}
}

// List handles GET /history?limit=&offset=, newest first.
func (c *HistoryController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	limit := repository.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > repository.MaxListLimit {
			respondError(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = v
	}

	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			respondError(w, http.StatusBadRequest, "offset must be non-negative")
			return
		}
		offset = v
	}

	preds, err := c.assessments.History(r.Context(), userID, limit, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, preds)
}

// Get handles GET /history/{prediction_id}, scoped to the caller.
func (c *HistoryController) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(chi.URLParam(r, "prediction_id"), 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid prediction id")
		return
	}

	pred, err := c.assessments.Get(r.Context(), userID, uint(id))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pred)
}
