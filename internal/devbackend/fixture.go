package devbackend

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"annadata/pkg/api"
)

//go:embed default.yaml
var defaultFixture []byte

// Fixture is the canned data the fixture backend serves.
type Fixture struct {
	Dishes  []Dish             `yaml:"dishes"`
	Flavors []api.FlavorEntry  `yaml:"flavors"`
	Heatmap []api.HeatmapPoint `yaml:"heatmap"`
	Fail    Failures           `yaml:"fail"`
}

// Dish is one menu entry and the result returned for it.
type Dish struct {
	Name string `yaml:"name"`
	// UnsafeBelow flips the status to UNSAFE for prices strictly below it.
	UnsafeBelow *decimal.Decimal   `yaml:"unsafe_below"`
	Result      api.AnalysisResult `yaml:",inline"`
}

// Failures forces a route to answer 503, for exercising client error paths.
type Failures struct {
	Menu    bool `yaml:"menu"`
	Analyze bool `yaml:"analyze"`
	Flavors bool `yaml:"flavors"`
	Heatmap bool `yaml:"heatmap"`
}

// DefaultFixture returns the built-in demo data.
func DefaultFixture() *Fixture {
	fx, err := ParseFixture(defaultFixture)
	if err != nil {
		panic(fmt.Sprintf("devbackend: embedded fixture: %v", err))
	}
	return fx
}

// LoadFixture reads a YAML fixture file.
func LoadFixture(path string) (*Fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(b)
}

// ParseFixture decodes and validates YAML fixture data.
func ParseFixture(b []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(b, &fx); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	seen := make(map[string]bool, len(fx.Dishes))
	for i, d := range fx.Dishes {
		if d.Name == "" {
			return nil, fmt.Errorf("parse fixture: dish %d has no name", i)
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("parse fixture: duplicate dish %q", d.Name)
		}
		seen[d.Name] = true
	}
	return &fx, nil
}

// Menu lists dish names in fixture order.
func (f *Fixture) Menu() api.Menu {
	menu := make(api.Menu, 0, len(f.Dishes))
	for _, d := range f.Dishes {
		menu = append(menu, d.Name)
	}
	return menu
}

// Lookup finds a dish by exact name.
func (f *Fixture) Lookup(name string) (Dish, bool) {
	for _, d := range f.Dishes {
		if d.Name == name {
			return d, true
		}
	}
	return Dish{}, false
}

// Analyze returns the canned result for a request, applying UnsafeBelow.
func (d Dish) Analyze(price decimal.Decimal) api.AnalysisResult {
	res := d.Result
	if res.Status == "" {
		res.Status = api.StatusSafe
	}
	if d.UnsafeBelow != nil && price.LessThan(*d.UnsafeBelow) {
		res.Status = api.StatusUnsafe
		res.Verdict = "Price is too low for authentic ingredients."
	}
	if res.Breakdown == nil {
		res.Breakdown = []api.BreakdownItem{}
	}
	if res.Suggestions == nil {
		res.Suggestions = []api.Suggestion{}
	}
	return res
}
