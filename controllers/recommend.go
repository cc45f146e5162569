package controllers

import (
	"errors"
	"net/http"

	"github.com/glucheck/backend/repository"
	"github.com/glucheck/backend/services"
)

// RecommendController serves food recommendations for the caller's latest
// assessment.
type RecommendController struct {
	recommendations *services.RecommendationService
}

func NewRecommendController(recommendations *services.RecommendationService) *RecommendController {
	return &RecommendController{recommendations: recommendations}
}

// Food handles GET /recommend/food.
func (c *RecommendController) Food(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	rec, err := c.recommendations.ForUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "no prediction found for this user")
			return
		}
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}
