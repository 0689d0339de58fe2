package view

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annadata/pkg/api"
	apperrors "annadata/pkg/errors"
	"annadata/pkg/score"
)

func liveState(menu ...string) State {
	s := InitialState()
	s.Menu = menu
	s.MenuStatus = MenuLive
	if len(menu) > 0 {
		s.Selected = menu[0]
	}
	return s
}

func withResult(s State, res *api.AnalysisResult) State {
	s.Phase = PhaseResult
	s.Result = res
	return s
}

func TestRender_SelectorPreservesMenuOrder(t *testing.T) {
	s := liveState("Paneer Tikka", "Dal Rice", "Chole Bhature")
	s.Selected = "Dal Rice"

	d := Render(s, Features{})

	assert.True(t, d.Selector.Enabled)
	require.Len(t, d.Selector.Options, 3)
	for i, want := range []string{"Paneer Tikka", "Dal Rice", "Chole Bhature"} {
		assert.Equal(t, want, d.Selector.Options[i].Label)
		assert.Equal(t, want, d.Selector.Options[i].Value)
	}
	assert.True(t, d.Selector.Options[1].Selected)
	assert.False(t, d.Selector.Options[0].Selected)
	assert.Equal(t, "LIVE", d.MarketStatus)
}

func TestRender_SelectorPlaceholder(t *testing.T) {
	tests := []struct {
		status MenuStatus
		label  string
		market string
	}{
		{MenuPending, PlaceholderPending, "CONNECTING"},
		{MenuEmpty, PlaceholderEmpty, "NO DATA"},
		{MenuOffline, PlaceholderOffline, "SYNC ERR"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			s := InitialState()
			s.MenuStatus = tt.status

			d := Render(s, Features{})

			assert.False(t, d.Selector.Enabled)
			require.Len(t, d.Selector.Options, 1)
			opt := d.Selector.Options[0]
			assert.Equal(t, tt.label, opt.Label)
			assert.Empty(t, opt.Value)
			assert.True(t, opt.Disabled)
			assert.Equal(t, tt.market, d.MarketStatus)
		})
	}
}

func TestRender_ExactlyOnePanel(t *testing.T) {
	idle := liveState("Dal Rice")
	loading := idle
	loading.Phase = PhaseLoading
	result := withResult(idle, safeResult())

	panels := []Panel{PanelIdle, PanelLoading, PanelResult}
	for want, s := range map[Panel]State{PanelIdle: idle, PanelLoading: loading, PanelResult: result} {
		d := Render(s, Features{})
		assert.Equal(t, want, d.Panel)
		visible := 0
		for _, p := range panels {
			if d.Visible(p) {
				visible++
			}
		}
		assert.Equal(t, 1, visible)
		assert.Equal(t, want == PanelResult, d.Result != nil)
	}

	// A result phase without a result falls back to idle.
	broken := idle
	broken.Phase = PhaseResult
	assert.Equal(t, PanelIdle, Render(broken, Features{}).Panel)
}

func TestRender_BannerFollowsStatusOnly(t *testing.T) {
	full := Features{LocalScoreHeuristic: true, NutritionGrid: true}

	// Unsafe with a high local score is still a risk banner.
	unsafe := withResult(liveState("Dal Rice"), &api.AnalysisResult{
		Status:     api.StatusUnsafe,
		HonestCost: decimal.NewFromInt(45),
		Verdict:    "Ghee replaced by vanaspati",
	})
	unsafe.Score = &Score{Value: 95, Band: score.BandHigh}

	v := Render(unsafe, full).Result.Verdict
	assert.Equal(t, BannerRisk, v.Style)
	assert.Equal(t, "Economic Violation", v.Title)
	assert.Equal(t, "Ghee replaced by vanaspati", v.Detail)
	assert.False(t, v.Celebrate)

	// Safe with a low local score is still a safe banner.
	safe := withResult(liveState("Dal Rice"), safeResult())
	safe.Score = &Score{Value: 30, Band: score.BandLow}

	v = Render(safe, full).Result.Verdict
	assert.Equal(t, BannerSafe, v.Style)
	assert.Equal(t, "Fair Price Integrity", v.Title)
	assert.True(t, v.Celebrate)
}

func TestRender_BreakdownOrderAndTotal(t *testing.T) {
	res := &api.AnalysisResult{
		Status:     api.StatusUnsafe,
		HonestCost: decimal.RequireFromString("180.5"),
		Breakdown: []api.BreakdownItem{
			{Item: "Paneer", Cost: decimal.NewFromInt(120)},
			{Item: "Spices", Cost: decimal.RequireFromString("20.5")},
			{Item: "Paneer", Cost: decimal.NewFromInt(40)},
		},
	}

	rv := Render(withResult(liveState("Paneer Tikka"), res), Features{}).Result

	require.Len(t, rv.Breakdown, 3)
	assert.Equal(t, BreakdownRow{Item: "Paneer", Cost: "₹120.00"}, rv.Breakdown[0])
	assert.Equal(t, BreakdownRow{Item: "Spices", Cost: "₹20.50"}, rv.Breakdown[1])
	assert.Equal(t, BreakdownRow{Item: "Paneer", Cost: "₹40.00"}, rv.Breakdown[2])
	assert.Equal(t, "₹180.50", rv.Total)
}

func TestRender_Substitutions(t *testing.T) {
	before := Render(liveState("Dal Rice"), Features{})
	assert.Equal(t, NoScanYet, before.Substitution.Message)
	assert.Empty(t, before.Substitution.Cards)

	none := Render(withResult(liveState("Dal Rice"), safeResult()), Features{})
	assert.Equal(t, NoAnomalies, none.Substitution.Message)
	assert.Empty(t, none.Substitution.Cards)

	res := safeResult()
	res.Status = api.StatusUnsafe
	res.Suggestions = []api.Suggestion{
		{Original: "Metanil yellow", Substitute: "Turmeric", Science: "Curcumin is anti-inflammatory"},
		{Original: "Vanaspati", Substitute: "Desi ghee"},
	}
	some := Render(withResult(liveState("Dal Rice"), res), Features{})
	assert.Empty(t, some.Substitution.Message)
	require.Len(t, some.Substitution.Cards, 2)
	assert.Equal(t, "Metanil yellow", some.Substitution.Cards[0].Replace)
	assert.Equal(t, "Turmeric", some.Substitution.Cards[0].With)
	assert.Equal(t, "Desi ghee", some.Substitution.Cards[1].With)
}

func TestRender_FeatureGating(t *testing.T) {
	res := safeResult()
	res.NutritionImpact = []api.NutritionImpact{{Label: "Protein", Value: "12g", Color: "green"}}
	s := withResult(liveState("Dal Rice"), res)
	s.Score = &Score{Value: 91.6, Band: score.BandHigh}

	plain := Render(s, Features{})
	assert.Nil(t, plain.Result.Score)
	assert.Empty(t, plain.Result.Nutrition)
	assert.Nil(t, plain.Flavors)
	assert.Nil(t, plain.Map)
	assert.Len(t, plain.Tabs, 2)

	full, err := VariantFeatures("full")
	require.NoError(t, err)
	rich := Render(s, full)
	require.NotNil(t, rich.Result.Score)
	assert.Equal(t, 92, rich.Result.Score.Value)
	assert.Equal(t, "indicative", rich.Result.Score.Label)
	assert.Equal(t, []NutritionTile{{Label: "Protein", Value: "12g", Color: "green"}}, rich.Result.Nutrition)
	assert.NotNil(t, rich.Flavors)
	assert.NotNil(t, rich.Map)
	assert.Len(t, rich.Tabs, 4)
	assert.True(t, rich.Tabs[0].Active)
}

func TestRender_MapMarkers(t *testing.T) {
	s := liveState("Dal Rice")
	s.Map = MapState{
		Initialized: true,
		Points: []api.HeatmapPoint{
			{City: "Delhi", Lat: 28.6, Lng: 77.2, Inflation: 12.5, Risk: 0.7},
			{City: "Pune", Risk: 0.4},
			{City: "Kochi", Risk: 0.39},
		},
		Resizes: 3,
	}

	mv := Render(s, Features{MapView: true}).Map

	require.Len(t, mv.Markers, 3)
	assert.Equal(t, score.RiskRed, mv.Markers[0].Color)
	assert.Equal(t, score.RiskAmber, mv.Markers[1].Color)
	assert.Equal(t, score.RiskGreen, mv.Markers[2].Color)
	assert.Equal(t, "Delhi · inflation 12.5% · risk 70%", mv.Markers[0].Popup)
	assert.True(t, mv.Ready)
	assert.Equal(t, 3, mv.Resizes)

	s.Map.Err = errors.New("boom")
	mv = Render(s, Features{MapView: true}).Map
	assert.Equal(t, MapFailed, mv.Message)
	assert.Empty(t, mv.Markers)
}

func TestRender_FlavorsAndAlert(t *testing.T) {
	s := liveState("Dal Rice")
	s.Flavors = FlavorState{Entries: []api.FlavorEntry{{ToxicChemical: "Sudan red", SafeAlternative: "Kashmiri chilli", Benefit: "Natural colour"}}}
	s.Alert = &Alert{Kind: apperrors.KindValidation, Message: "Enter the price you paid."}

	d := Render(s, Features{FlavorDirectory: true})

	require.Len(t, d.Flavors.Cards, 1)
	assert.Equal(t, FlavorCard{Replace: "Sudan red", Use: "Kashmiri chilli", Benefit: "Natural colour"}, d.Flavors.Cards[0])
	assert.Equal(t, "Enter the price you paid.", d.Alert)

	s.Flavors.Err = errors.New("down")
	assert.Equal(t, FlavorsFailed, Render(s, Features{FlavorDirectory: true}).Flavors.Message)
}

// Dal Rice at ₹1000 against an honest cost of ₹45 is a high score and a safe banner.
func TestRender_OverpricedDalRice(t *testing.T) {
	v, band, ok := score.Compute(decimal.NewFromInt(1000), decimal.NewFromInt(45), func() float64 { return 0 })
	require.True(t, ok)
	s := withResult(liveState("Dal Rice"), safeResult())
	s.Score = &Score{Value: v, Band: band}

	rv := Render(s, Features{LocalScoreHeuristic: true}).Result

	assert.Equal(t, BannerSafe, rv.Verdict.Style)
	require.NotNil(t, rv.Score)
	assert.Equal(t, 88, rv.Score.Value)
	assert.Equal(t, score.BandHigh, rv.Score.Band)
}
