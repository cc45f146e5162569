package ml

import (
	"fmt"
	"math"

	"github.com/glucheck/backend/config"
)

// FeatureCount is the length of the vector the classifier consumes.
const FeatureCount = 5

// FeatureVector is the fixed-order numeric input to the classifier:
// [pregnancies, glucose, blood pressure, BMI, pedigree]. The order is a
// shared contract with the model artifact and must not change on its own.
type FeatureVector [FeatureCount]float64

// ClinicalInput is one assessment request. Fields are pointers so a missing
// field is distinguishable from zero; all five are required. JSON keys match
// the public API contract.
type ClinicalInput struct {
	Pregnancies              *float64 `json:"Pregnancies"`
	Glucose                  *float64 `json:"Glucose"`
	BloodPressure            *float64 `json:"BloodPressure"`
	BMI                      *float64 `json:"BMI"`
	DiabetesPedigreeFunction *float64 `json:"DiabetesPedigreeFunction"`
}

// ValidationError reports a malformed or out-of-range clinical input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Builder validates clinical inputs and assembles the feature vector.
// Accepted bounds come from configuration.
type Builder struct {
	bounds config.Validation
}

func NewBuilder(bounds config.Validation) *Builder {
	return &Builder{bounds: bounds}
}

// Build checks every field for presence, finiteness and configured range,
// then assembles the fixed-order feature vector. Validation failures never
// reach the scorer.
func (b *Builder) Build(in ClinicalInput) (FeatureVector, error) {
	var vec FeatureVector

	fields := []struct {
		name  string
		value *float64
		rng   config.Range
	}{
		{"Pregnancies", in.Pregnancies, b.bounds.Pregnancies},
		{"Glucose", in.Glucose, b.bounds.Glucose},
		{"BloodPressure", in.BloodPressure, b.bounds.BloodPressure},
		{"BMI", in.BMI, b.bounds.BMI},
		{"DiabetesPedigreeFunction", in.DiabetesPedigreeFunction, b.bounds.Pedigree},
	}

	for i, f := range fields {
		if f.value == nil {
			return vec, &ValidationError{Field: f.name, Reason: "field is required"}
		}
		v := *f.value
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return vec, &ValidationError{Field: f.name, Reason: "value must be a finite number"}
		}
		if v < f.rng.Min || v > f.rng.Max {
			return vec, &ValidationError{
				Field:  f.name,
				Reason: fmt.Sprintf("value %g outside accepted range [%g, %g]", v, f.rng.Min, f.rng.Max),
			}
		}
		vec[i] = v
	}

	return vec, nil
}
