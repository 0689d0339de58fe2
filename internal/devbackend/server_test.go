package devbackend

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annadata/pkg/api"
)

func newTestServer(t *testing.T, fx *Fixture) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewServer(fx, nil, zerolog.Nop()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postAnalyze(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url+"/analyze", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestDefaultFixture(t *testing.T) {
	fx := DefaultFixture()

	assert.Equal(t, api.Menu{"Dal Rice", "Chole Bhature", "Paneer Tikka", "Chicken Biryani"}, fx.Menu())
	dal, ok := fx.Lookup("Dal Rice")
	require.True(t, ok)
	assert.Equal(t, "45", dal.Result.HonestCost.String())
	require.NotNil(t, dal.UnsafeBelow)
	assert.Equal(t, "35", dal.UnsafeBelow.String())
	assert.Len(t, dal.Result.Breakdown, 5)
	assert.Len(t, fx.Heatmap, 5)
	assert.Len(t, fx.Flavors, 4)
}

func TestParseFixture_Rejects(t *testing.T) {
	_, err := ParseFixture([]byte("dishes:\n  - name: A\n  - name: A\n"))
	assert.ErrorContains(t, err, "duplicate dish")

	_, err = ParseFixture([]byte("dishes:\n  - status: SAFE\n"))
	assert.ErrorContains(t, err, "has no name")

	_, err = ParseFixture([]byte("dishes: [unterminated"))
	assert.Error(t, err)
}

func TestMenu(t *testing.T) {
	srv := newTestServer(t, DefaultFixture())

	resp, err := http.Get(srv.URL + "/get-menu")
	require.NoError(t, err)
	defer resp.Body.Close()

	var menu []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&menu))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, []string{"Dal Rice", "Chole Bhature", "Paneer Tikka", "Chicken Biryani"}, menu)
}

func TestAnalyze(t *testing.T) {
	srv := newTestServer(t, DefaultFixture())

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantResult api.Status
	}{
		{"fair price", `{"dish_name":"Dal Rice","vendor_price":45}`, http.StatusOK, api.StatusSafe},
		{"below threshold", `{"dish_name":"Dal Rice","vendor_price":20}`, http.StatusOK, api.StatusUnsafe},
		{"at threshold", `{"dish_name":"Dal Rice","vendor_price":35}`, http.StatusOK, api.StatusSafe},
		{"unknown dish", `{"dish_name":"Pizza","vendor_price":45}`, http.StatusNotFound, ""},
		{"zero price", `{"dish_name":"Dal Rice","vendor_price":0}`, http.StatusBadRequest, ""},
		{"garbage", `{"dish_name":`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postAnalyze(t, srv.URL, tt.body)
			require.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var res api.AnalysisResult
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
			assert.Equal(t, tt.wantResult, res.Status)
		})
	}
}

func TestAnalyze_EmptySuggestionsEncodeAsArray(t *testing.T) {
	srv := newTestServer(t, DefaultFixture())

	resp := postAnalyze(t, srv.URL, `{"dish_name":"Dal Rice","vendor_price":50}`)
	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))

	assert.JSONEq(t, `[]`, string(raw["suggestions"]))
}

func TestFailSwitches(t *testing.T) {
	fx := DefaultFixture()
	fx.Fail = Failures{Menu: true, Flavors: true, Heatmap: true, Analyze: true}
	srv := newTestServer(t, fx)

	for _, path := range []string{"/get-menu", "/flavors", "/get-heatmap-data"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, path)
	}
	resp := postAnalyze(t, srv.URL, `{"dish_name":"Dal Rice","vendor_price":45}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, DefaultFixture())

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/analyze", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestBasicAuth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AuthUser = "dev"
	cfg.AuthPass = "secret"
	srv := httptest.NewServer(NewServer(DefaultFixture(), cfg, zerolog.Nop()).Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/get-menu")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/get-menu", nil)
	req.SetBasicAuth("dev", "secret")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "health stays open")
}
