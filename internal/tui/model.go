// Package tui is the interactive terminal front end of the integrity checker.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"annadata/internal/view"
)

// Messages produced by the model's commands.
type (
	bootstrapMsg struct{ err error }
	analysisMsg  struct {
		ticket view.Ticket
		err    error
	}
	loadMsg struct {
		load view.Load
		err  error
	}
)

// Model wraps a view.Controller. All UI state lives in the controller; the
// model only owns widgets and terminal geometry.
type Model struct {
	ctx    context.Context
	ctl    *view.Controller
	price  textinput.Model
	spin   spinner.Model
	styles Styles

	width  int
	height int
}

// New creates a model bound to ctl.
func New(ctx context.Context, ctl *view.Controller) Model {
	styles := DefaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Price paid (₹)"
	ti.Prompt = "₹ "
	ti.CharLimit = 12
	ti.Width = 16
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return Model{
		ctx:    ctx,
		ctl:    ctl,
		price:  ti,
		spin:   sp,
		styles: styles,
		width:  80,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, m.bootstrap())
}

func (m Model) bootstrap() tea.Cmd {
	return func() tea.Msg {
		return bootstrapMsg{err: m.ctl.Bootstrap(m.ctx)}
	}
}

func (m Model) analyze(t view.Ticket) tea.Cmd {
	return func() tea.Msg {
		_, err := m.ctl.Execute(m.ctx, t)
		return analysisMsg{ticket: t, err: err}
	}
}

func (m Model) load(l view.Load) tea.Cmd {
	if l == view.LoadNone {
		return nil
	}
	fetch := func() tea.Msg {
		return loadMsg{load: l, err: m.ctl.RunLoad(m.ctx, l)}
	}
	return tea.Batch(fetch, m.spin.Tick)
}

// busy reports whether any panel is waiting on the backend.
func busy(st view.State) bool {
	return st.Phase == view.PhaseLoading || st.Flavors.Loading || st.Map.Loading
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if w := msg.Width - 8; w > 8 {
			m.price.Width = min(w, 16)
		}
		return m, nil

	case spinner.TickMsg:
		if busy(m.ctl.State()) {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case bootstrapMsg, analysisMsg, loadMsg:
		// The controller already applied the outcome; the next View shows it.
		return m, nil
	}

	var cmd tea.Cmd
	m.price, cmd = m.price.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	st := m.ctl.State()
	// Alerts are modal: the next key only dismisses them.
	if st.Alert != nil {
		m.ctl.DismissAlert()
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyUp, tea.KeyDown:
		m.moveSelection(st, msg.Type == tea.KeyDown)
		return m, nil

	case tea.KeyTab, tea.KeyShiftTab:
		return m.cycleTab(st, msg.Type == tea.KeyTab)

	case tea.KeyEnter:
		if st.ActiveTab != view.TabScanner {
			return m, nil
		}
		t, err := m.ctl.BeginSubmit(st.Selected, m.price.Value())
		if err != nil {
			return m, nil
		}
		return m, tea.Batch(m.analyze(t), m.spin.Tick)
	}

	var cmd tea.Cmd
	m.price, cmd = m.price.Update(msg)
	return m, cmd
}

func (m Model) moveSelection(st view.State, down bool) {
	if st.MenuStatus != view.MenuLive || len(st.Menu) == 0 {
		return
	}
	idx := 0
	for i, d := range st.Menu {
		if d == st.Selected {
			idx = i
			break
		}
	}
	if down {
		idx = (idx + 1) % len(st.Menu)
	} else {
		idx = (idx - 1 + len(st.Menu)) % len(st.Menu)
	}
	_ = m.ctl.Select(st.Menu[idx])
}

func (m Model) cycleTab(st view.State, forward bool) (tea.Model, tea.Cmd) {
	tabs := m.ctl.Features().Tabs()
	idx := 0
	for i, t := range tabs {
		if t == st.ActiveTab {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(tabs)
	} else {
		idx = (idx - 1 + len(tabs)) % len(tabs)
	}
	l, err := m.ctl.SwitchTab(tabs[idx])
	if err != nil {
		return m, nil
	}
	return m, m.load(l)
}

func (m Model) View() string {
	d := m.ctl.Display()
	s := m.styles

	var b strings.Builder
	b.WriteString(s.Header.Render("ANNADATA") + "  " + s.Status.Render("market · "+d.MarketStatus))
	b.WriteString("\n")

	tabs := make([]string, 0, len(d.Tabs))
	for _, t := range d.Tabs {
		if t.Active {
			tabs = append(tabs, s.ActiveTab.Render(t.Label))
		} else {
			tabs = append(tabs, s.Tab.Render(t.Label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	if d.Alert != "" {
		b.WriteString(s.Alert.Render("⚠ " + d.Alert + "\n\n" + s.Muted.Render("press any key")))
		b.WriteString("\n")
		return b.String()
	}

	switch d.ActiveTab {
	case view.TabSubstitutions:
		b.WriteString(m.viewSubstitutions(d.Substitution))
	case view.TabFlavors:
		b.WriteString(m.viewFlavors(d.Flavors))
	case view.TabMap:
		b.WriteString(m.viewMap(d.Map))
	default:
		b.WriteString(m.viewScanner(d))
	}

	b.WriteString("\n")
	b.WriteString(s.Help.Render("↑/↓ dish · enter scan · tab switch view · esc quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewScanner(d view.Display) string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Label.Render("Dish") + "\n")
	for _, o := range d.Selector.Options {
		switch {
		case o.Disabled:
			b.WriteString("  " + s.Muted.Render(o.Label) + "\n")
		case o.Selected:
			b.WriteString(s.Cursor.Render("▸ "+o.Label) + "\n")
		default:
			b.WriteString("  " + o.Label + "\n")
		}
	}
	b.WriteString(s.Muted.Render("street price "+d.Hint) + "\n\n")
	b.WriteString(m.price.View() + "\n\n")

	switch d.Panel {
	case view.PanelLoading:
		b.WriteString(m.spin.View() + " " + d.Message + "\n")
	case view.PanelResult:
		b.WriteString(m.viewResult(d.Result))
	default:
		b.WriteString(s.Muted.Render(d.Message) + "\n")
	}
	return b.String()
}

func (m Model) viewResult(r *view.ResultView) string {
	s := m.styles
	var b strings.Builder

	banner := s.Risk
	if r.Verdict.Style == view.BannerSafe {
		banner = s.Safe
	}
	head := banner.Render(r.Verdict.Icon+" "+r.Verdict.Title) + "\n" + r.Verdict.Description
	if r.Verdict.Detail != "" {
		head += "\n" + s.Muted.Render(r.Verdict.Detail)
	}
	if r.Verdict.Celebrate {
		head += "\n" + s.Safe.Render("✨ Fair deal. Enjoy your meal! ✨")
	}
	b.WriteString(s.Card.Render(head) + "\n")

	rows := make([]string, 0, len(r.Breakdown)+1)
	for _, row := range r.Breakdown {
		rows = append(rows, fmt.Sprintf("%-28s %s", row.Item, row.Cost))
	}
	rows = append(rows, s.Label.Render(fmt.Sprintf("%-28s %s", "Honest cost", r.Total)))
	if r.Inflation != "" {
		rows = append(rows, fmt.Sprintf("%-28s %s", "Inflation", r.Inflation))
	}
	b.WriteString(s.Card.Render(strings.Join(rows, "\n")) + "\n")

	if len(r.Nutrition) > 0 {
		tiles := make([]string, 0, len(r.Nutrition))
		for _, n := range r.Nutrition {
			st, ok := s.Risks[n.Color]
			if !ok {
				st = s.Label
			}
			tiles = append(tiles, s.Card.Render(s.Muted.Render(n.Label)+"\n"+st.Render(n.Value)))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tiles...) + "\n")
	}
	if r.Score != nil {
		b.WriteString(fmt.Sprintf("Integrity score %d/100 %s\n", r.Score.Value, s.Muted.Render("("+r.Score.Label+")")))
	}
	return b.String()
}

func (m Model) viewSubstitutions(sub view.Substitutions) string {
	s := m.styles
	if len(sub.Cards) == 0 {
		return s.Muted.Render(sub.Message) + "\n"
	}
	var b strings.Builder
	for _, c := range sub.Cards {
		body := s.Risk.Render("✗ "+c.Replace) + "  →  " + s.Safe.Render("✓ "+c.With)
		if c.Science != "" {
			body += "\n" + s.Muted.Render(c.Science)
		}
		b.WriteString(s.Card.Render(body) + "\n")
	}
	return b.String()
}

func (m Model) viewFlavors(fv *view.FlavorsView) string {
	s := m.styles
	if fv == nil {
		return ""
	}
	if fv.Loading {
		return m.spin.View() + " Loading flavor directory...\n"
	}
	if fv.Message != "" {
		return s.Muted.Render(fv.Message) + "\n"
	}
	var b strings.Builder
	for _, c := range fv.Cards {
		body := s.Risk.Render("✗ "+c.Replace) + "  →  " + s.Safe.Render("✓ "+c.Use)
		if c.Benefit != "" {
			body += "\n" + s.Muted.Render(c.Benefit)
		}
		b.WriteString(s.Card.Render(body) + "\n")
	}
	return b.String()
}

func (m Model) viewMap(mv *view.MapView) string {
	s := m.styles
	if mv == nil {
		return ""
	}
	if mv.Loading {
		return m.spin.View() + " Loading regional risk...\n"
	}
	if mv.Message != "" {
		return s.Muted.Render(mv.Message) + "\n"
	}
	var b strings.Builder
	for _, mk := range mv.Markers {
		st, ok := s.Risks[string(mk.Color)]
		if !ok {
			st = s.Label
		}
		b.WriteString(st.Render("●") + " " + mk.Popup + "\n")
	}
	return b.String()
}

// Run starts the full-screen program.
func Run(ctx context.Context, ctl *view.Controller) error {
	p := tea.NewProgram(New(ctx, ctl), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
