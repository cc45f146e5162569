package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/glucheck/backend/models"

	"gorm.io/gorm"
)

const (
	// DefaultListLimit applies when the caller does not ask for a page size.
	DefaultListLimit = 10
	// MaxListLimit caps page sizes to bound response payloads.
	MaxListLimit = 500
)

// recencyOrder sorts newest first; equal timestamps fall back to ascending
// insertion order so pagination stays deterministic.
const recencyOrder = "created_at DESC, id ASC"

// PredictionRepository owns the durable representation of predictions.
// Records are append-only: no update or delete path exists.
type PredictionRepository struct {
	DB *gorm.DB
}

// NewPredictionRepository creates and returns a new PredictionRepository.
func NewPredictionRepository(db *gorm.DB) *PredictionRepository {
	return &PredictionRepository{DB: db}
}

// Create appends one prediction record. A storage fault surfaces as a
// *PersistenceError; the scoring already happened but is not recorded, and
// the caller is expected to resubmit the whole request.
func (r *PredictionRepository) Create(ctx context.Context, p *models.Prediction) error {
	if err := r.DB.WithContext(ctx).Create(p).Error; err != nil {
		return &PersistenceError{Op: "create prediction", Err: err}
	}
	return nil
}

// Latest returns the user's most recent prediction, or ErrNotFound.
func (r *PredictionRepository) Latest(ctx context.Context, userID uint) (*models.Prediction, error) {
	var p models.Prediction
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(recencyOrder).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Op: "latest prediction", Err: err}
	}
	return &p, nil
}

// List returns a page of the user's predictions, newest first. Non-positive
// limits fall back to the default and limits above MaxListLimit are capped;
// negative offsets are treated as zero.
func (r *PredictionRepository) List(ctx context.Context, userID uint, limit, offset int) ([]models.Prediction, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	var preds []models.Prediction
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(recencyOrder).
		Limit(limit).
		Offset(offset).
		Find(&preds).Error
	if err != nil {
		return nil, &PersistenceError{Op: "list predictions", Err: err}
	}
	return preds, nil
}

// Get fetches one prediction by id, scoped to the owning user. The user
// filter lives inside the query so a record owned by someone else is
// indistinguishable from a record that does not exist.
func (r *PredictionRepository) Get(ctx context.Context, userID, id uint) (*models.Prediction, error) {
	var p models.Prediction
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Op: "get prediction", Err: err}
	}
	return &p, nil
}

// CountByOutcome returns the user's total prediction count and how many of
// those were positive.
func (r *PredictionRepository) CountByOutcome(ctx context.Context, userID uint) (total, positive int64, err error) {
	err = r.DB.WithContext(ctx).
		Model(&models.Prediction{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return 0, 0, &PersistenceError{Op: "count predictions", Err: err}
	}

	err = r.DB.WithContext(ctx).
		Model(&models.Prediction{}).
		Where("user_id = ? AND prediction = ?", userID, 1).
		Count(&positive).Error
	if err != nil {
		return 0, 0, &PersistenceError{Op: "count positive predictions", Err: err}
	}
	return total, positive, nil
}

// Averages computes the running averages over the user's records. SQL AVG
// skips NULL inputs, so absent fields never drag an average toward zero; a
// user with no records gets nil averages, not zeros.
func (r *PredictionRepository) Averages(ctx context.Context, userID uint) (probability, glucose, bloodPressure *float64, err error) {
	row := r.DB.WithContext(ctx).
		Model(&models.Prediction{}).
		Select("AVG(probability), AVG(glucose), AVG(blood_pressure)").
		Where("user_id = ?", userID).
		Row()

	var p, g, b sql.NullFloat64
	if err := row.Scan(&p, &g, &b); err != nil {
		return nil, nil, nil, &PersistenceError{Op: "average predictions", Err: err}
	}
	return nullable(p), nullable(g), nullable(b), nil
}

// Recent returns the user's n most recent predictions, newest first.
func (r *PredictionRepository) Recent(ctx context.Context, userID uint, n int) ([]models.Prediction, error) {
	if n <= 0 {
		return nil, nil
	}
	var preds []models.Prediction
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(recencyOrder).
		Limit(n).
		Find(&preds).Error
	if err != nil {
		return nil, &PersistenceError{Op: "recent predictions", Err: err}
	}
	return preds, nil
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
