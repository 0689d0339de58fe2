package api

import "github.com/shopspring/decimal"

// Status is the backend's authoritative verdict on a submitted price.
type Status string

const (
	StatusSafe   Status = "SAFE"
	StatusUnsafe Status = "UNSAFE"
)

// IsSafe is true only for SAFE. Anything else the backend sends
// (UNSAFE, SUSPICIOUS, DANGER, empty) counts as a risk verdict.
func (s Status) IsSafe() bool {
	return s == StatusSafe
}

// AnalysisResult is the response of the analyze endpoint.
type AnalysisResult struct {
	Status          Status            `json:"status" yaml:"status"`
	HonestCost      decimal.Decimal   `json:"honest_cost" yaml:"honest_cost"`
	Breakdown       []BreakdownItem   `json:"breakdown"`
	Suggestions     []Suggestion      `json:"suggestions"`
	NutritionImpact []NutritionImpact `json:"nutrition_impact,omitempty" yaml:"nutrition_impact"`

	// Optional free-text fields some backend builds include.
	Verdict   string `json:"verdict,omitempty"`
	Inflation string `json:"inflation,omitempty"`
}

// BreakdownItem is one ingredient line backing the honest cost.
type BreakdownItem struct {
	Item string          `json:"item"`
	Cost decimal.Decimal `json:"cost"`
}

// Suggestion is an ingredient substitution proposed by the backend.
type Suggestion struct {
	Original   string `json:"original"`
	Substitute string `json:"substitute"`
	Science    string `json:"science"`
}

// NutritionImpact is one tile of the nutrition grid.
type NutritionImpact struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Color string `json:"color"`
}
