package api

// HeatmapPoint is a regional risk sample for the map view.
type HeatmapPoint struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	City      string  `json:"city"`
	Inflation float64 `json:"inflation"`
	Risk      float64 `json:"risk"` // 0..1
}

// FlavorEntry is a row of the static flavor/alternatives directory.
type FlavorEntry struct {
	ToxicChemical   string `json:"toxic_chemical" yaml:"toxic_chemical"`
	SafeAlternative string `json:"safe_alternative" yaml:"safe_alternative"`
	Benefit         string `json:"benefit"`
}
