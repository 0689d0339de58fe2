package api

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisRequest_PriceIsNumber(t *testing.T) {
	req := AnalysisRequest{DishName: "Dal Rice", VendorPrice: decimal.RequireFromString("42.50")}

	b, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dish_name":"Dal Rice","vendor_price":42.5}`, string(b))
}

func TestAnalysisResult_DecodesBackendPayload(t *testing.T) {
	payload := `{
		"status": "SAFE",
		"honest_cost": 45.25,
		"breakdown": [{"item": "rice", "cost": 20}, {"item": "dal", "cost": 25.25}],
		"suggestions": [],
		"inflation": "2.5%"
	}`

	var res AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(payload), &res))

	assert.True(t, res.Status.IsSafe())
	assert.True(t, res.HonestCost.Equal(decimal.RequireFromString("45.25")))
	require.Len(t, res.Breakdown, 2)
	assert.Equal(t, "rice", res.Breakdown[0].Item)
	assert.Equal(t, "dal", res.Breakdown[1].Item)
	assert.NotNil(t, res.Suggestions)
	assert.Empty(t, res.Suggestions)
	assert.Equal(t, "2.5%", res.Inflation)
}

func TestStatus_IsSafe(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusSafe, true},
		{StatusUnsafe, false},
		{"SUSPICIOUS", false},
		{"DANGER", false},
		{"safe", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.IsSafe(), "status %q", tt.status)
	}
}

func TestMenu_Contains(t *testing.T) {
	m := Menu{"Dal Rice", "Paneer Tikka"}
	assert.True(t, m.Contains("Paneer Tikka"))
	assert.False(t, m.Contains("paneer tikka"))
	assert.False(t, Menu(nil).Contains(""))
}
