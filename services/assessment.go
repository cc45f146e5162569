package services

import (
	"context"
	"time"

	"github.com/glucheck/backend/ml"
	"github.com/glucheck/backend/models"
	"github.com/glucheck/backend/repository"
)

// AssessmentService runs the scoring pipeline: validate and assemble the
// feature vector, invoke the classifier, persist the result. The classifier
// handle is shared, loaded once and read-only, so concurrent assessments
// need no coordination beyond the database.
type AssessmentService struct {
	builder     *ml.Builder
	classifier  *ml.Classifier
	predictions *repository.PredictionRepository
}

func NewAssessmentService(builder *ml.Builder, classifier *ml.Classifier, predictions *repository.PredictionRepository) *AssessmentService {
	return &AssessmentService{
		builder:     builder,
		classifier:  classifier,
		predictions: predictions,
	}
}

// Assess scores one clinical input for the given user and stores the
// resulting record. Validation failures surface before the classifier runs;
// a storage fault after scoring fails the whole request, since scoring is
// cheap to repeat and storage is the only side effect.
func (s *AssessmentService) Assess(ctx context.Context, userID uint, in ml.ClinicalInput) (*models.Prediction, error) {
	vec, err := s.builder.Build(in)
	if err != nil {
		return nil, err
	}

	res := s.classifier.Score(vec)

	pred := &models.Prediction{
		UserID:        userID,
		Pregnancies:   in.Pregnancies,
		Glucose:       in.Glucose,
		BloodPressure: in.BloodPressure,
		BMI:           in.BMI,
		DPF:           in.DiabetesPedigreeFunction,
		Outcome:       res.Outcome,
		Probability:   res.Probability,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.predictions.Create(ctx, pred); err != nil {
		return nil, err
	}
	return pred, nil
}

// Latest returns the user's most recent stored assessment.
func (s *AssessmentService) Latest(ctx context.Context, userID uint) (*models.Prediction, error) {
	return s.predictions.Latest(ctx, userID)
}

// History returns a page of the user's assessments, newest first.
func (s *AssessmentService) History(ctx context.Context, userID uint, limit, offset int) ([]models.Prediction, error) {
	return s.predictions.List(ctx, userID, limit, offset)
}

// Get returns one assessment by id, scoped to the caller.
func (s *AssessmentService) Get(ctx context.Context, userID, id uint) (*models.Prediction, error) {
	return s.predictions.Get(ctx, userID, id)
}
