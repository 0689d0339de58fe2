package view

import (
	"fmt"
	"sort"
	"strings"
)

// Features enumerates the optional parts of the client.
type Features struct {
	MapView             bool `json:"map_view"`
	NutritionGrid       bool `json:"nutrition_grid"`
	LocalScoreHeuristic bool `json:"local_score_heuristic"`
	FlavorDirectory     bool `json:"flavor_directory"`
}

var variants = map[string]Features{
	"classic":   {},
	"flavor":    {FlavorDirectory: true},
	"nutrition": {NutritionGrid: true, LocalScoreHeuristic: true},
	"atlas":     {MapView: true, LocalScoreHeuristic: true},
	"full":      {MapView: true, NutritionGrid: true, LocalScoreHeuristic: true, FlavorDirectory: true},
}

// VariantFeatures returns the feature preset for a named variant.
func VariantFeatures(name string) (Features, error) {
	f, ok := variants[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Features{}, fmt.Errorf("unknown variant %q (want one of %s)", name, strings.Join(VariantNames(), ", "))
	}
	return f, nil
}

// VariantNames lists the known presets.
func VariantNames() []string {
	names := make([]string, 0, len(variants))
	for n := range variants {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Tab identifies a top-level panel.
type Tab string

const (
	TabScanner       Tab = "scanner"
	TabSubstitutions Tab = "substitutions"
	TabFlavors       Tab = "flavordb"
	TabMap           Tab = "map"
)

// Label is the navigation caption.
func (t Tab) Label() string {
	switch t {
	case TabScanner:
		return "Scanner"
	case TabSubstitutions:
		return "Substitutions"
	case TabFlavors:
		return "FlavorDB"
	case TabMap:
		return "Risk Map"
	default:
		return string(t)
	}
}

// Tabs returns the navigable tabs in display order.
func (f Features) Tabs() []Tab {
	tabs := []Tab{TabScanner, TabSubstitutions}
	if f.FlavorDirectory {
		tabs = append(tabs, TabFlavors)
	}
	if f.MapView {
		tabs = append(tabs, TabMap)
	}
	return tabs
}

// HasTab reports whether t is navigable with these features.
func (f Features) HasTab(t Tab) bool {
	for _, x := range f.Tabs() {
		if x == t {
			return true
		}
	}
	return false
}
