package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/glucheck/backend/logger"
	"github.com/glucheck/backend/middleware"
	"github.com/glucheck/backend/ml"
	"github.com/glucheck/backend/repository"

	"go.uber.org/zap"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondServiceError maps pipeline errors onto HTTP statuses. Validation
// faults are the client's to fix; not-found covers absent and foreign-owned
// records alike; everything else is a server fault.
func respondServiceError(w http.ResponseWriter, err error) {
	var vErr *ml.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondError(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, "record not found")
	default:
		logger.Error("request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// currentUser pulls the authenticated identity set by the auth middleware.
func currentUser(w http.ResponseWriter, r *http.Request) (uint, bool) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "no authenticated user")
		return 0, false
	}
	return userID, true
}
