package services

import (
	"context"
	"time"

	"github.com/glucheck/backend/ml"
	"github.com/glucheck/backend/models"
	"github.com/glucheck/backend/repository"
)

// Recommendation is the response for a food recommendation request, built
// from the user's latest assessment.
type Recommendation struct {
	Status          string    `json:"status"`
	Prediction      int       `json:"prediction"`
	Probability     float64   `json:"probability"`
	Recommendations []string  `json:"recommendations"`
	CreatedAt       time.Time `json:"createdAt"`
}

// RecommendationService narrows the nutrition catalog by the risk signals of
// a user's latest assessment.
type RecommendationService struct {
	catalog     *ml.Catalog
	predictions *repository.PredictionRepository
}

func NewRecommendationService(catalog *ml.Catalog, predictions *repository.PredictionRepository) *RecommendationService {
	return &RecommendationService{catalog: catalog, predictions: predictions}
}

// ForUser fetches the user's latest assessment and runs the threshold
// filter over the catalog. Returns repository.ErrNotFound when the user has
// no assessments yet.
func (s *RecommendationService) ForUser(ctx context.Context, userID uint) (*Recommendation, error) {
	latest, err := s.predictions.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}

	menus := s.catalog.Recommend(signalsFrom(latest))

	return &Recommendation{
		Status:          "success",
		Prediction:      latest.Outcome,
		Probability:     latest.Probability,
		Recommendations: menus,
		CreatedAt:       latest.CreatedAt,
	}, nil
}

// signalsFrom extracts the filter signals from a stored record. An unknown
// field never activates a cutoff, which is exactly what substituting zero
// into a strictly-greater-than comparison does.
func signalsFrom(p *models.Prediction) ml.RiskSignals {
	return ml.RiskSignals{
		Glucose:       deref(p.Glucose),
		BloodPressure: deref(p.BloodPressure),
		BMI:           deref(p.BMI),
		Pedigree:      deref(p.DPF),
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
