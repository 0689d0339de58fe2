package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annadata/internal/view"
	"annadata/pkg/api"
)

func resultDisplay(t *testing.T) view.Display {
	t.Helper()
	s := view.InitialState()
	s.Menu = api.Menu{"Dal Rice", "Paneer Tikka"}
	s.MenuStatus = view.MenuLive
	s.Selected = "Paneer Tikka"
	s.Hint = "₹180"
	s.Phase = view.PhaseResult
	s.Result = &api.AnalysisResult{
		Status:     api.StatusUnsafe,
		HonestCost: decimal.NewFromInt(180),
		Breakdown: []api.BreakdownItem{
			{Item: "Paneer (200g)", Cost: decimal.NewFromInt(120)},
			{Item: "Spices", Cost: decimal.NewFromInt(60)},
		},
		Suggestions: []api.Suggestion{{Original: "Starch paneer", Substitute: "Fresh chhena", Science: "Iodine test turns blue"}},
	}
	return view.Render(s, view.Features{})
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	f, err = ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("yaml")
	assert.Error(t, err)
}

func TestAnalysis_Text(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Analysis(&buf, resultDisplay(t), FormatText))

	out := buf.String()
	assert.Contains(t, out, "ECONOMIC VIOLATION")
	assert.Contains(t, out, "₹120.00")
	assert.Contains(t, out, "Starch paneer → ✓ Fresh chhena")
	assert.Less(t, strings.Index(out, "Paneer (200g)"), strings.Index(out, "Spices"))
	assert.True(t, strings.HasPrefix(out, "╔"))
	assert.True(t, strings.HasSuffix(out, "╝\n"))
}

func TestAnalysis_JSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Analysis(&buf, resultDisplay(t), FormatJSON))

	var got struct {
		Dish   string `json:"dish"`
		Result struct {
			Verdict struct {
				Style string `json:"style"`
			} `json:"verdict"`
			Total string `json:"total"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Paneer Tikka", got.Dish)
	assert.Equal(t, "risk", got.Result.Verdict.Style)
	assert.Equal(t, "₹180.00", got.Result.Total)
}

func TestAnalysis_AlertWithoutResult(t *testing.T) {
	s := view.InitialState()
	s.MenuStatus = view.MenuOffline
	s.Alert = &view.Alert{Message: "Analysis failed."}
	var buf bytes.Buffer

	require.NoError(t, Analysis(&buf, view.Render(s, view.Features{}), FormatText))

	out := buf.String()
	assert.Contains(t, out, "Analysis failed.")
	assert.Contains(t, out, "SYNC ERR")
	assert.Contains(t, out, view.NoScanYet)
}

func TestMenu(t *testing.T) {
	s := view.InitialState()
	s.MenuStatus = view.MenuEmpty
	var buf bytes.Buffer

	require.NoError(t, Menu(&buf, view.Render(s, view.Features{}), FormatJSON))
	assert.JSONEq(t, `{"market_status":"NO DATA","dishes":[]}`, buf.String())

	buf.Reset()
	require.NoError(t, Menu(&buf, view.Render(s, view.Features{}), FormatText))
	assert.Contains(t, buf.String(), view.PlaceholderEmpty)
}

func TestHeatmapAndFlavors(t *testing.T) {
	mv := &view.MapView{Markers: []view.Marker{{City: "Delhi", Color: "red", Popup: "Delhi · risk 80%"}}}
	var buf bytes.Buffer
	require.NoError(t, Heatmap(&buf, mv, FormatText))
	assert.Contains(t, buf.String(), "🔴 Delhi · risk 80%")

	buf.Reset()
	require.NoError(t, Flavors(&buf, &view.FlavorsView{Message: view.FlavorsFailed}, FormatText))
	assert.Contains(t, buf.String(), view.FlavorsFailed)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
