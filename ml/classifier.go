package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// ErrModelUnavailable means the classifier artifact could not be loaded.
// This is fatal at startup; the pipeline never serves without a model.
var ErrModelUnavailable = errors.New("classifier model unavailable")

// Classifier is a trained logistic-regression model exported at training
// time as a JSON artifact. It is loaded once at startup and read-only
// afterwards, so concurrent Score calls need no synchronization.
type Classifier struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
	Features  []string  `json:"features"`
}

// Result is the classifier output for one feature vector. Probability is the
// positive-class likelihood as a percentage rounded to two decimals; Outcome
// is the model's own binary decision, not a threshold on the rounded
// probability.
type Result struct {
	Outcome     int
	Probability float64
}

// LoadClassifier reads the exported model artifact from path.
func LoadClassifier(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	var c Classifier
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	if len(c.Weights) != FeatureCount {
		return nil, fmt.Errorf("%w: model has %d weights, expected %d",
			ErrModelUnavailable, len(c.Weights), FeatureCount)
	}
	return &c, nil
}

// Score runs the classifier over one feature vector. Pure: same vector and
// same loaded model always yield the same result.
func (c *Classifier) Score(vec FeatureVector) Result {
	z := c.Intercept
	for i, w := range c.Weights {
		z += w * vec[i]
	}

	prob := 1.0 / (1.0 + math.Exp(-z))

	outcome := 0
	// Decision function sign is the model's native boundary.
	if z > 0 {
		outcome = 1
	}

	return Result{
		Outcome:     outcome,
		Probability: math.Round(prob*100*100) / 100,
	}
}
