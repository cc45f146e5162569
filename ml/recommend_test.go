package ml

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// testCatalog has twelve items: even-indexed ones are "safe" on every
// nutrient, odd-indexed ones violate every ceiling.
func testCatalog() *Catalog {
	items := make([]NutritionItem, 0, 12)
	for i := 0; i < 12; i++ {
		item := NutritionItem{Menu: fmt.Sprintf("item-%02d", i)}
		if i%2 == 1 {
			item.Carbohydrates = 50
			item.Sodium = 500
			item.Fat = 30
			item.Cholesterol = 200
		} else {
			item.Carbohydrates = 10
			item.Sodium = 100
			item.Fat = 5
			item.Cholesterol = 20
		}
		items = append(items, item)
	}
	return NewCatalog(items)
}

func TestRecommendNoSignalsReturnsFirstTen(t *testing.T) {
	c := testCatalog()
	got := c.Recommend(RiskSignals{Glucose: 100, BloodPressure: 80, BMI: 25, Pedigree: 0.2})

	if len(got) != 10 {
		t.Fatalf("expected 10 items, got %d", len(got))
	}
	for i, name := range got {
		want := fmt.Sprintf("item-%02d", i)
		if name != want {
			t.Fatalf("position %d: got %q want %q (catalog order must be preserved)", i, name, want)
		}
	}
}

func TestRecommendHighGlucoseExcludesCarbRichItems(t *testing.T) {
	c := testCatalog()
	got := c.Recommend(RiskSignals{Glucose: 150})

	if len(got) != 6 {
		t.Fatalf("expected the 6 low-carb items, got %d: %v", len(got), got)
	}
	for _, name := range got {
		for i := 1; i < 12; i += 2 {
			if name == fmt.Sprintf("item-%02d", i) {
				t.Fatalf("high-carb item %q leaked through the glucose filter", name)
			}
		}
	}
}

func TestRecommendPredicatesIntersect(t *testing.T) {
	items := []NutritionItem{
		{Menu: "low-carb high-sodium", Carbohydrates: 5, Sodium: 900},
		{Menu: "high-carb low-sodium", Carbohydrates: 80, Sodium: 50},
		{Menu: "low-everything", Carbohydrates: 5, Sodium: 50},
	}
	c := NewCatalog(items)

	got := c.Recommend(RiskSignals{Glucose: 150, BloodPressure: 95})
	if len(got) != 1 || got[0] != "low-everything" {
		t.Fatalf("expected only the item passing both predicates, got %v", got)
	}
}

func TestRecommendAllThresholds(t *testing.T) {
	c := testCatalog()
	got := c.Recommend(RiskSignals{Glucose: 200, BloodPressure: 120, BMI: 40, Pedigree: 1.5})

	if len(got) != 6 {
		t.Fatalf("expected 6 safe items, got %d: %v", len(got), got)
	}
}

func TestRecommendEmptyResultIsValid(t *testing.T) {
	c := NewCatalog([]NutritionItem{
		{Menu: "carb bomb", Carbohydrates: 99},
	})
	got := c.Recommend(RiskSignals{Glucose: 150})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestRecommendNeverExceedsTen(t *testing.T) {
	items := make([]NutritionItem, 50)
	for i := range items {
		items[i] = NutritionItem{Menu: fmt.Sprintf("item-%02d", i)}
	}
	c := NewCatalog(items)

	signals := []RiskSignals{
		{},
		{Glucose: 150},
		{Glucose: 150, BloodPressure: 95, BMI: 35, Pedigree: 0.9},
	}
	for _, s := range signals {
		if got := c.Recommend(s); len(got) > 10 {
			t.Fatalf("signals %+v: got %d items, cap is 10", s, len(got))
		}
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nutrition.csv")
	csv := "Menu,Carbohydrates (g),Sodium (mg),Fat (g),Cholesterol (mg)\n" +
		"Steamed Fish,2,120,4,55\n" +
		"Fried Rice,52,650,16,85\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", c.Len())
	}
	got := c.Recommend(RiskSignals{Glucose: 150})
	if len(got) != 1 || got[0] != "Steamed Fish" {
		t.Fatalf("unexpected recommendation: %v", got)
	}
}

func TestLoadCatalogMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nutrition.csv")
	if err := os.WriteFile(path, []byte("Menu,Fat (g)\nx,1\n"), 0o644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}
	if _, err := LoadCatalog(path); err == nil {
		t.Fatal("expected error for missing columns")
	}
}
