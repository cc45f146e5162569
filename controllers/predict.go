package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/glucheck/backend/logger"
	"github.com/glucheck/backend/ml"
	"github.com/glucheck/backend/services"

	"go.uber.org/zap"
)

// PredictController exposes the assessment pipeline over HTTP.
type PredictController struct {
	assessments *services.AssessmentService
}

func NewPredictController(assessments *services.AssessmentService) *PredictController {
	return &PredictController{assessments: assessments}
}

// Create handles POST /predict: validate, score and store one assessment.
func (c *PredictController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input ml.ClinicalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pred, err := c.assessments.Assess(r.Context(), userID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	logger.Info("assessment stored",
		zap.Uint("user_id", userID),
		zap.Uint("prediction_id", pred.ID),
		zap.Int("outcome", pred.Outcome))
	respondJSON(w, http.StatusCreated, pred)
}

// Latest handles GET /predict/latest.
func (c *PredictController) Latest(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	pred, err := c.assessments.Latest(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pred)
}
