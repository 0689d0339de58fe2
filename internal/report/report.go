// Package report prints rendered displays for the one-shot commands.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"annadata/internal/view"
)

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text or json)", s)
	}
}

const width = 62

// Analysis writes the scanner result of d.
func Analysis(w io.Writer, d view.Display, f Format) error {
	if f == FormatJSON {
		return writeJSON(w, analysisJSON{
			MarketStatus:  d.MarketStatus,
			Dish:          selected(d.Selector),
			Hint:          d.Hint,
			Result:        d.Result,
			Substitutions: d.Substitution,
			Alert:         d.Alert,
		})
	}

	p := &printer{w: w}
	p.top()
	p.title("ANNADATA INTEGRITY SCAN")
	p.sep()
	p.row("Dish", selected(d.Selector))
	p.row("Street price", d.Hint)
	p.row("Market", d.MarketStatus)

	if d.Alert != "" {
		p.sep()
		p.line("⚠ " + d.Alert)
	}

	if r := d.Result; r != nil {
		p.sep()
		p.line(r.Verdict.Icon + " " + strings.ToUpper(r.Verdict.Title))
		p.line(r.Verdict.Description)
		if r.Verdict.Detail != "" {
			p.line(r.Verdict.Detail)
		}
		p.sep()
		p.title("INGREDIENT BREAKDOWN")
		p.sep()
		for _, b := range r.Breakdown {
			p.row(b.Item, b.Cost)
		}
		p.row("Honest cost", r.Total)
		if r.Inflation != "" {
			p.row("Inflation", r.Inflation)
		}
		if len(r.Nutrition) > 0 {
			p.sep()
			p.title("NUTRITION IMPACT")
			p.sep()
			for _, n := range r.Nutrition {
				p.row(n.Label, n.Value)
			}
		}
		if r.Score != nil {
			p.sep()
			p.row("Integrity score", fmt.Sprintf("%d/100 (%s, %s)", r.Score.Value, r.Score.Band, r.Score.Label))
		}
	} else if d.Message != "" {
		p.sep()
		p.line(d.Message)
	}

	p.sep()
	p.title("SUBSTITUTIONS")
	p.sep()
	writeSubstitutions(p, d.Substitution)
	p.bottom()
	return p.err
}

func writeSubstitutions(p *printer, s view.Substitutions) {
	if len(s.Cards) == 0 {
		p.line(s.Message)
		return
	}
	for _, c := range s.Cards {
		p.line("✗ " + c.Replace + " → ✓ " + c.With)
		if c.Science != "" {
			p.line("  " + c.Science)
		}
	}
}

// Menu writes the dish selector.
func Menu(w io.Writer, d view.Display, f Format) error {
	if f == FormatJSON {
		dishes := make([]string, 0, len(d.Selector.Options))
		for _, o := range d.Selector.Options {
			if !o.Disabled {
				dishes = append(dishes, o.Value)
			}
		}
		return writeJSON(w, menuJSON{MarketStatus: d.MarketStatus, Dishes: dishes})
	}

	p := &printer{w: w}
	p.top()
	p.title("MENU · " + d.MarketStatus)
	p.sep()
	for _, o := range d.Selector.Options {
		if o.Disabled {
			p.line(o.Label)
			continue
		}
		p.line("• " + o.Label)
	}
	p.bottom()
	return p.err
}

// Flavors writes the flavor directory panel.
func Flavors(w io.Writer, fv *view.FlavorsView, f Format) error {
	if fv == nil {
		fv = &view.FlavorsView{}
	}
	if f == FormatJSON {
		return writeJSON(w, fv)
	}

	p := &printer{w: w}
	p.top()
	p.title("FLAVOR DIRECTORY")
	p.sep()
	if fv.Message != "" {
		p.line(fv.Message)
	}
	for _, c := range fv.Cards {
		p.line("✗ " + c.Replace + " → ✓ " + c.Use)
		if c.Benefit != "" {
			p.line("  " + c.Benefit)
		}
	}
	p.bottom()
	return p.err
}

// Heatmap writes the risk map markers.
func Heatmap(w io.Writer, mv *view.MapView, f Format) error {
	if mv == nil {
		mv = &view.MapView{}
	}
	if f == FormatJSON {
		return writeJSON(w, mv)
	}

	p := &printer{w: w}
	p.top()
	p.title("REGIONAL RISK")
	p.sep()
	if mv.Message != "" {
		p.line(mv.Message)
	}
	for _, m := range mv.Markers {
		p.line(colorIcon(string(m.Color)) + " " + m.Popup)
	}
	p.bottom()
	return p.err
}

func colorIcon(c string) string {
	switch c {
	case "red":
		return "🔴"
	case "amber":
		return "🟠"
	default:
		return "🟢"
	}
}

type analysisJSON struct {
	MarketStatus  string             `json:"market_status"`
	Dish          string             `json:"dish"`
	Hint          string             `json:"hint"`
	Result        *view.ResultView   `json:"result,omitempty"`
	Substitutions view.Substitutions `json:"substitutions"`
	Alert         string             `json:"alert,omitempty"`
}

type menuJSON struct {
	MarketStatus string   `json:"market_status"`
	Dishes       []string `json:"dishes"`
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func selected(s view.Selector) string {
	for _, o := range s.Options {
		if o.Selected {
			return o.Value
		}
	}
	return ""
}

// printer draws the boxed layout and keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) top()    { p.printf("╔%s╗\n", strings.Repeat("═", width)) }
func (p *printer) sep()    { p.printf("╠%s╣\n", strings.Repeat("═", width)) }
func (p *printer) bottom() { p.printf("╚%s╝\n", strings.Repeat("═", width)) }

func (p *printer) title(s string) { p.line(s) }

func (p *printer) line(s string) {
	p.printf("║  %s║\n", pad(truncate(s, width-2), width-2))
}

func (p *printer) row(label, value string) {
	p.line(pad(truncate(label, 34), 36) + value)
}

func pad(s string, n int) string {
	if l := len([]rune(s)); l < n {
		return s + strings.Repeat(" ", n-l)
	}
	return s
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
