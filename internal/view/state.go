package view

import (
	"github.com/shopspring/decimal"

	"annadata/internal/pricehint"
	"annadata/pkg/api"
	apperrors "annadata/pkg/errors"
	"annadata/pkg/score"
)

// Phase is the scanner's mutually exclusive display state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseResult
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseResult:
		return "result"
	default:
		return "unknown"
	}
}

// MenuStatus tracks the one-shot menu bootstrap.
type MenuStatus int

const (
	MenuPending MenuStatus = iota
	MenuLive
	MenuEmpty
	MenuOffline
)

// Alert is a blocking message the user must dismiss.
type Alert struct {
	Kind    apperrors.Kind
	Message string
}

// Score is the decorative local integrity score.
type Score struct {
	Value float64
	Band  score.Band
}

// FlavorState is the flavor directory panel. It is refetched on every entry.
type FlavorState struct {
	Loading    bool
	Entries    []api.FlavorEntry
	Err        error
	Generation uint64
}

// MapState is the lazily initialized risk map.
type MapState struct {
	Initialized bool
	Loading     bool
	Points      []api.HeatmapPoint
	Err         error
	Resizes     int
}

// State is the whole UI state. Render projects it onto a Display.
type State struct {
	Menu       api.Menu
	MenuStatus MenuStatus
	Selected   string
	Hint       string

	Phase       Phase
	Result      *api.AnalysisResult
	VendorPrice decimal.Decimal
	Score       *Score
	Generation  uint64

	ActiveTab Tab
	Alert     *Alert

	Flavors FlavorState
	Map     MapState
}

// InitialState is the state before bootstrap.
func InitialState() State {
	return State{
		MenuStatus: MenuPending,
		Hint:       pricehint.Unknown,
		Phase:      PhaseIdle,
		ActiveTab:  TabScanner,
	}
}

// Ticket identifies one submission. Responses for older tickets are discarded.
type Ticket struct {
	Generation uint64
	Request    api.AnalysisRequest
}

// Load is a fetch a tab switch asks the caller to perform.
type Load int

const (
	LoadNone Load = iota
	LoadFlavors
	LoadHeatmap
)
