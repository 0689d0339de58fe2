// Package score provides the decorative integrity score and the map risk bands.
// Neither value is authoritative: the backend status decides safe versus unsafe.
package score

import (
	"math"

	"github.com/shopspring/decimal"
)

// Band thresholds on the vendor_price / honest_cost ratio. Lower bounds are inclusive.
const (
	HighRatio   = 0.9
	MediumRatio = 0.6

	highBase    = 88.0
	highJitter  = 8.0
	mediumBase  = 55.0
	mediumSlope = 30.0
	lowBase     = 25.0
	lowSlope    = 20.0
)

// Band names the integrity score range.
type Band string

const (
	BandHigh   Band = "high"
	BandMedium Band = "medium"
	BandLow    Band = "low"
)

// Jitter returns a value in [0,1). math/rand.Float64 satisfies it.
type Jitter func() float64

// Ratio returns vendorPrice / honestCost. ok is false when honestCost is not positive.
func Ratio(vendorPrice, honestCost decimal.Decimal) (ratio float64, ok bool) {
	if !honestCost.IsPositive() {
		return 0, false
	}
	r, _ := vendorPrice.DivRound(honestCost, 8).Float64()
	return r, true
}

// Integrity maps a price ratio onto a 0..100 score.
//
//	ratio >= 0.9  -> 88 + jitter*8
//	ratio >= 0.6  -> 55 + ratio*30
//	otherwise     -> 25 + ratio*20
func Integrity(ratio float64, jitter Jitter) (float64, Band) {
	switch {
	case ratio >= HighRatio:
		j := 0.0
		if jitter != nil {
			j = Clamp(jitter(), 0, 1)
		}
		return highBase + j*highJitter, BandHigh
	case ratio >= MediumRatio:
		return mediumBase + ratio*mediumSlope, BandMedium
	default:
		return lowBase + math.Max(ratio, 0)*lowSlope, BandLow
	}
}

// Compute is Ratio followed by Integrity.
func Compute(vendorPrice, honestCost decimal.Decimal, jitter Jitter) (float64, Band, bool) {
	r, ok := Ratio(vendorPrice, honestCost)
	if !ok {
		return 0, "", false
	}
	s, b := Integrity(r, jitter)
	return s, b, true
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RiskColor is the marker color band for a heatmap point.
type RiskColor string

const (
	RiskRed   RiskColor = "red"
	RiskAmber RiskColor = "amber"
	RiskGreen RiskColor = "green"
)

// RiskBand maps a risk in [0,1] to its marker color.
func RiskBand(risk float64) RiskColor {
	switch {
	case risk >= 0.7:
		return RiskRed
	case risk >= 0.4:
		return RiskAmber
	default:
		return RiskGreen
	}
}
