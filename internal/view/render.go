package view

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"annadata/pkg/api"
	"annadata/pkg/score"
)

// Placeholder labels shown when the selector has no real dishes.
const (
	PlaceholderOffline = "Backend Offline"
	PlaceholderEmpty   = "No dishes available"
	PlaceholderPending = "Loading menu..."

	NoAnomalies   = "No anomalies detected. Every ingredient matches market standards."
	NoScanYet     = "Scan a dish to see substitution suggestions."
	IdleMessage   = "Pick a dish, enter the price you paid and run a scan."
	LoadingLabel  = "Scanning ingredient markets..."
	FlavorsFailed = "Flavor directory unavailable."
	MapFailed     = "Regional risk data unavailable."
)

// Panel is the visible scanner panel. Exactly one is shown.
type Panel string

const (
	PanelIdle    Panel = "idle"
	PanelLoading Panel = "loading"
	PanelResult  Panel = "result"
)

// BannerStyle is the verdict banner's visual style.
type BannerStyle string

const (
	BannerSafe BannerStyle = "safe"
	BannerRisk BannerStyle = "risk"
)

// Display is the full projection of a State.
type Display struct {
	MarketStatus string        `json:"market_status"`
	Selector     Selector      `json:"selector"`
	Hint         string        `json:"hint"`
	Tabs         []TabItem     `json:"tabs"`
	ActiveTab    Tab           `json:"active_tab"`
	Panel        Panel         `json:"panel"`
	Message      string        `json:"message,omitempty"`
	Result       *ResultView   `json:"result,omitempty"`
	Substitution Substitutions `json:"substitutions"`
	Flavors      *FlavorsView  `json:"flavors,omitempty"`
	Map          *MapView      `json:"map,omitempty"`
	Alert        string        `json:"alert,omitempty"`
}

// Visible reports whether p is the shown scanner panel.
func (d Display) Visible(p Panel) bool { return d.Panel == p }

// Selector is the dish picker.
type Selector struct {
	Options []Option `json:"options"`
	Enabled bool     `json:"enabled"`
}

// Option is one selector entry.
type Option struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Selected bool   `json:"selected,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// TabItem is a navigation control.
type TabItem struct {
	ID     Tab    `json:"id"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// ResultView is the analysis result panel.
type ResultView struct {
	Verdict   Verdict         `json:"verdict"`
	Breakdown []BreakdownRow  `json:"breakdown"`
	Total     string          `json:"total"`
	Inflation string          `json:"inflation,omitempty"`
	Nutrition []NutritionTile `json:"nutrition,omitempty"`
	Score     *ScoreView      `json:"score,omitempty"`
}

// Verdict is the banner. Style depends only on the backend status.
type Verdict struct {
	Style       BannerStyle `json:"style"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Detail      string      `json:"detail,omitempty"`
	Icon        string      `json:"icon"`
	// Celebrate asks the front end for its one-shot success effect.
	Celebrate bool `json:"celebrate"`
}

// BreakdownRow is one ingredient cost line.
type BreakdownRow struct {
	Item string `json:"item"`
	Cost string `json:"cost"`
}

// NutritionTile is one nutrition grid cell.
type NutritionTile struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Color string `json:"color"`
}

// ScoreView is the decorative local score.
type ScoreView struct {
	Value int        `json:"value"`
	Band  score.Band `json:"band"`
	Label string     `json:"label"`
}

// Substitutions is the substitutions panel: cards, or a terminal message.
type Substitutions struct {
	Cards   []SubstitutionCard `json:"cards,omitempty"`
	Message string             `json:"message,omitempty"`
}

// SubstitutionCard renders one Suggestion.
type SubstitutionCard struct {
	Replace string `json:"replace"`
	With    string `json:"with"`
	Science string `json:"science"`
}

// FlavorsView is the flavor directory panel.
type FlavorsView struct {
	Loading bool         `json:"loading"`
	Cards   []FlavorCard `json:"cards,omitempty"`
	Message string       `json:"message,omitempty"`
}

// FlavorCard renders one FlavorEntry.
type FlavorCard struct {
	Replace string `json:"replace"`
	Use     string `json:"use"`
	Benefit string `json:"benefit"`
}

// MapView is the risk map panel.
type MapView struct {
	Ready   bool     `json:"ready"`
	Loading bool     `json:"loading"`
	Markers []Marker `json:"markers,omitempty"`
	Message string   `json:"message,omitempty"`
	Resizes int      `json:"resizes"`
}

// Marker is one heatmap point on the map.
type Marker struct {
	Lat   float64         `json:"lat"`
	Lng   float64         `json:"lng"`
	City  string          `json:"city"`
	Color score.RiskColor `json:"color"`
	Popup string          `json:"popup"`
}

// Rupees formats an amount for display.
func Rupees(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}

// Render projects s onto a Display. It has no side effects.
func Render(s State, f Features) Display {
	d := Display{
		MarketStatus: marketStatus(s.MenuStatus),
		Selector:     renderSelector(s),
		Hint:         s.Hint,
		ActiveTab:    s.ActiveTab,
	}

	for _, t := range f.Tabs() {
		d.Tabs = append(d.Tabs, TabItem{ID: t, Label: t.Label(), Active: t == s.ActiveTab})
	}

	switch s.Phase {
	case PhaseLoading:
		d.Panel = PanelLoading
		d.Message = LoadingLabel
	case PhaseResult:
		if s.Result != nil {
			d.Panel = PanelResult
			d.Result = renderResult(s, f)
			break
		}
		fallthrough
	default:
		d.Panel = PanelIdle
		d.Message = IdleMessage
	}

	d.Substitution = renderSubstitutions(s)

	if f.FlavorDirectory {
		d.Flavors = renderFlavors(s.Flavors)
	}
	if f.MapView {
		d.Map = renderMap(s.Map)
	}
	if s.Alert != nil {
		d.Alert = s.Alert.Message
	}
	return d
}

func marketStatus(ms MenuStatus) string {
	switch ms {
	case MenuLive:
		return "LIVE"
	case MenuEmpty:
		return "NO DATA"
	case MenuOffline:
		return "SYNC ERR"
	default:
		return "CONNECTING"
	}
}

func renderSelector(s State) Selector {
	switch s.MenuStatus {
	case MenuLive:
		opts := make([]Option, 0, len(s.Menu))
		for _, dish := range s.Menu {
			opts = append(opts, Option{Label: dish, Value: dish, Selected: dish == s.Selected})
		}
		return Selector{Options: opts, Enabled: true}
	case MenuEmpty:
		return Selector{Options: []Option{{Label: PlaceholderEmpty, Disabled: true}}}
	case MenuOffline:
		return Selector{Options: []Option{{Label: PlaceholderOffline, Disabled: true}}}
	default:
		return Selector{Options: []Option{{Label: PlaceholderPending, Disabled: true}}}
	}
}

func renderResult(s State, f Features) *ResultView {
	res := s.Result
	rv := &ResultView{
		Verdict:   renderVerdict(res),
		Breakdown: make([]BreakdownRow, 0, len(res.Breakdown)),
		Total:     Rupees(res.HonestCost),
		Inflation: res.Inflation,
	}
	for _, b := range res.Breakdown {
		rv.Breakdown = append(rv.Breakdown, BreakdownRow{Item: b.Item, Cost: Rupees(b.Cost)})
	}
	if f.NutritionGrid {
		for _, n := range res.NutritionImpact {
			rv.Nutrition = append(rv.Nutrition, NutritionTile{Label: n.Label, Value: n.Value, Color: n.Color})
		}
	}
	if f.LocalScoreHeuristic && s.Score != nil {
		rv.Score = &ScoreView{
			Value: int(math.Round(s.Score.Value)),
			Band:  s.Score.Band,
			Label: "indicative",
		}
	}
	return rv
}

func renderVerdict(res *api.AnalysisResult) Verdict {
	if res.Status.IsSafe() {
		return Verdict{
			Style:       BannerSafe,
			Title:       "Fair Price Integrity",
			Description: "Standard ingredient costs detected. Low risk of adulteration.",
			Detail:      res.Verdict,
			Icon:        "✔",
			Celebrate:   true,
		}
	}
	return Verdict{
		Style:       BannerRisk,
		Title:       "Economic Violation",
		Description: "Price too low for pure ingredients. High risk of synthetics.",
		Detail:      res.Verdict,
		Icon:        "⚠",
	}
}

func renderSubstitutions(s State) Substitutions {
	if s.Phase != PhaseResult || s.Result == nil {
		return Substitutions{Message: NoScanYet}
	}
	if len(s.Result.Suggestions) == 0 {
		return Substitutions{Message: NoAnomalies}
	}
	cards := make([]SubstitutionCard, 0, len(s.Result.Suggestions))
	for _, sg := range s.Result.Suggestions {
		cards = append(cards, SubstitutionCard{Replace: sg.Original, With: sg.Substitute, Science: sg.Science})
	}
	return Substitutions{Cards: cards}
}

func renderFlavors(fs FlavorState) *FlavorsView {
	fv := &FlavorsView{Loading: fs.Loading}
	if fs.Err != nil {
		fv.Message = FlavorsFailed
		return fv
	}
	for _, e := range fs.Entries {
		fv.Cards = append(fv.Cards, FlavorCard{Replace: e.ToxicChemical, Use: e.SafeAlternative, Benefit: e.Benefit})
	}
	return fv
}

func renderMap(ms MapState) *MapView {
	mv := &MapView{Ready: ms.Initialized, Loading: ms.Loading, Resizes: ms.Resizes}
	if ms.Err != nil {
		mv.Message = MapFailed
		return mv
	}
	for _, p := range ms.Points {
		mv.Markers = append(mv.Markers, Marker{
			Lat:   p.Lat,
			Lng:   p.Lng,
			City:  p.City,
			Color: score.RiskBand(p.Risk),
			Popup: fmt.Sprintf("%s · inflation %.1f%% · risk %.0f%%", p.City, p.Inflation, p.Risk*100),
		})
	}
	return mv
}
