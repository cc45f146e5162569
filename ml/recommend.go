package ml

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

const maxRecommendations = 10

// Thresholds above which a risk signal activates its filter predicate.
const (
	glucoseCutoff  = 140.0
	pressureCutoff = 90.0
	bmiCutoff      = 30.0
	pedigreeCutoff = 0.7
)

// Nutrient ceilings applied when the matching signal exceeds its cutoff.
const (
	maxCarbs       = 20.0
	maxSodium      = 200.0
	maxFat         = 10.0
	maxCholesterol = 50.0
)

// NutritionItem is one reference catalog entry. The nutrient fields are used
// only as filter predicates.
type NutritionItem struct {
	Menu          string
	Carbohydrates float64
	Sodium        float64
	Fat           float64
	Cholesterol   float64
}

// RiskSignals carries the risk-relevant fields of an assessment across the
// store/filter boundary.
type RiskSignals struct {
	Glucose       float64
	BloodPressure float64
	BMI           float64
	Pedigree      float64
}

// Catalog is the reference nutrition table, loaded once at startup and
// immutable afterwards.
type Catalog struct {
	items []NutritionItem
}

// NewCatalog builds a catalog from already-parsed items, preserving order.
func NewCatalog(items []NutritionItem) *Catalog {
	return &Catalog{items: items}
}

// Len reports the number of catalog entries.
func (c *Catalog) Len() int { return len(c.items) }

// LoadCatalog reads the nutrition reference table from a CSV file with the
// columns Menu, Carbohydrates (g), Sodium (mg), Fat (g), Cholesterol (mg).
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open nutrition catalog: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse nutrition catalog: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("nutrition catalog %s is empty", path)
	}

	header := rows[0]
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"Menu", "Carbohydrates (g)", "Sodium (mg)", "Fat (g)", "Cholesterol (mg)"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("nutrition catalog missing column %q", required)
		}
	}

	items := make([]NutritionItem, 0, len(rows)-1)
	for i, row := range rows[1:] {
		item := NutritionItem{Menu: row[col["Menu"]]}
		for _, field := range []struct {
			name string
			dst  *float64
		}{
			{"Carbohydrates (g)", &item.Carbohydrates},
			{"Sodium (mg)", &item.Sodium},
			{"Fat (g)", &item.Fat},
			{"Cholesterol (mg)", &item.Cholesterol},
		} {
			v, err := strconv.ParseFloat(row[col[field.name]], 64)
			if err != nil {
				return nil, fmt.Errorf("nutrition catalog row %d: bad %s: %w", i+2, field.name, err)
			}
			*field.dst = v
		}
		items = append(items, item)
	}

	return &Catalog{items: items}, nil
}

// Recommend narrows the catalog by the threshold rules and returns at most
// ten menu names in catalog order. Predicates compose by intersection and
// are all applied before truncation; when no signal crosses its cutoff the
// first ten unfiltered items are returned. An empty result is valid.
func (c *Catalog) Recommend(signals RiskSignals) []string {
	names := make([]string, 0, maxRecommendations)
	for _, item := range c.items {
		if signals.Glucose > glucoseCutoff && item.Carbohydrates > maxCarbs {
			continue
		}
		if signals.BloodPressure > pressureCutoff && item.Sodium > maxSodium {
			continue
		}
		if signals.BMI > bmiCutoff && item.Fat > maxFat {
			continue
		}
		if signals.Pedigree > pedigreeCutoff && item.Cholesterol > maxCholesterol {
			continue
		}
		names = append(names, item.Menu)
		if len(names) == maxRecommendations {
			break
		}
	}
	return names
}
