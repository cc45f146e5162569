package services

import (
	"context"
	"errors"

	"github.com/glucheck/backend/models"
	"github.com/glucheck/backend/repository"
)

// ChartField selects which signal a dashboard series plots. The set is
// closed; anything else resolves to chartUnknown and yields null values so
// the response shape stays stable for display clients.
type ChartField string

const (
	ChartPregnancies   ChartField = "pregnancies"
	ChartGlucose       ChartField = "glucose"
	ChartBloodPressure ChartField = "blood_pressure"
	ChartBMI           ChartField = "bmi"
	ChartDPF           ChartField = "dpf"
	// ChartPrediction plots the stored probability percentage, not the 0/1
	// outcome, which is useless on a line chart.
	ChartPrediction ChartField = "prediction"

	chartUnknown ChartField = ""
)

// ParseChartField maps a raw query parameter onto the closed enumeration.
func ParseChartField(s string) ChartField {
	switch ChartField(s) {
	case ChartPregnancies, ChartGlucose, ChartBloodPressure, ChartBMI, ChartDPF, ChartPrediction:
		return ChartField(s)
	default:
		return chartUnknown
	}
}

func (f ChartField) valueOf(p models.Prediction) *float64 {
	switch f {
	case ChartPregnancies:
		return p.Pregnancies
	case ChartGlucose:
		return p.Glucose
	case ChartBloodPressure:
		return p.BloodPressure
	case ChartBMI:
		return p.BMI
	case ChartDPF:
		return p.DPF
	case ChartPrediction:
		v := p.Probability
		return &v
	default:
		return nil
	}
}

// Summary is the per-user rollup over all stored assessments. Averages are
// nil when there is nothing to average; they are never coerced to zero.
type Summary struct {
	TotalPredictions int                `json:"total_predictions"`
	DiabetesCount    int                `json:"diabetes_count"`
	NonDiabetesCount int                `json:"non_diabetes_count"`
	AvgProbability   *float64           `json:"avg_probability"`
	AvgGlucose       *float64           `json:"avg_glucose"`
	AvgBloodPressure *float64           `json:"avg_blood_pressure"`
	Latest           *models.Prediction `json:"latest"`
}

// ChartPoint is one dashboard series sample. Value is nil when the selected
// field was absent on that record or the field selector was unrecognized.
type ChartPoint struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// Dashboard bundles the stats, the recent records and the chart series for
// one user.
type Dashboard struct {
	User      Summary             `json:"user"`
	Recent    []models.Prediction `json:"recent_user_predictions"`
	ChartData []ChartPoint        `json:"chart_data"`
}

// DefaultChartPoints is how many series samples a dashboard carries unless
// the client asks otherwise.
const DefaultChartPoints = 5

// StatsService derives summary and dashboard statistics from stored
// assessments. It only reads through the repository, never writes.
type StatsService struct {
	predictions *repository.PredictionRepository
}

func NewStatsService(predictions *repository.PredictionRepository) *StatsService {
	return &StatsService{predictions: predictions}
}

// Summary computes the per-user rollup. A user with zero assessments gets
// zero counts, nil averages and no latest record.
func (s *StatsService) Summary(ctx context.Context, userID uint) (*Summary, error) {
	total, positive, err := s.predictions.CountByOutcome(ctx, userID)
	if err != nil {
		return nil, err
	}

	avgProb, avgGlucose, avgBP, err := s.predictions.Averages(ctx, userID)
	if err != nil {
		return nil, err
	}

	latest, err := s.predictions.Latest(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	return &Summary{
		TotalPredictions: int(total),
		DiabetesCount:    int(positive),
		NonDiabetesCount: int(total - positive),
		AvgProbability:   avgProb,
		AvgGlucose:       avgGlucose,
		AvgBloodPressure: avgBP,
		Latest:           latest,
	}, nil
}

// Dashboard assembles the user's stats, their five most recent assessments
// and a chart series over the most recent pointLimit records. The series is
// reordered oldest-to-newest for chronological display; that reversal is
// part of the contract, not an artifact.
func (s *StatsService) Dashboard(ctx context.Context, userID uint, field ChartField, pointLimit int) (*Dashboard, error) {
	if pointLimit <= 0 {
		pointLimit = DefaultChartPoints
	}

	summary, err := s.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.predictions.Recent(ctx, userID, DefaultChartPoints)
	if err != nil {
		return nil, err
	}

	chartRecs, err := s.predictions.Recent(ctx, userID, pointLimit)
	if err != nil {
		return nil, err
	}

	points := make([]ChartPoint, 0, len(chartRecs))
	for i := len(chartRecs) - 1; i >= 0; i-- {
		p := chartRecs[i]
		points = append(points, ChartPoint{
			Date:  p.CreatedAt.Format("02/01"),
			Value: field.valueOf(p),
		})
	}

	return &Dashboard{
		User:      *summary,
		Recent:    recent,
		ChartData: points,
	}, nil
}
