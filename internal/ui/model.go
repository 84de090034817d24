package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"cocoverse/internal/config"
	"cocoverse/internal/domain"
	"cocoverse/internal/selection"
	"cocoverse/internal/ui/adapters"
	"cocoverse/internal/ui/views"
)

// Model is the dashboard. It owns the selection engine and forwards key
// presses to it; the attached chart adapters redraw from each new view.
type Model struct {
	engine *selection.Engine
	cfg    *config.Config
	logger *zap.Logger

	keys   keyMap
	help   help.Model
	styles *views.Styles
	input  textinput.Model
	typing bool // focus-by-name prompt is open

	list    *adapters.EntityList
	density *adapters.DensityChart
	info    *adapters.InfoPanel
	status  *adapters.StatusBar
	detach  []func()

	categories []string
	category   int // index into categories, -1 for all
	bands      []domain.Interval
	band       int // index into bands, -1 for none
	excluded   []string

	message    string
	messageErr bool

	width  int
	height int

	helpRenderer *HelpRenderer
	helpOps      *HelpOps
}

// NewModel creates the dashboard over engine and attaches its chart adapters
func NewModel(engine *selection.Engine, cfg *config.Config, logger *zap.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	styles := views.NewStyles()
	ds := engine.Dataset()

	ti := textinput.New()
	ti.Prompt = "focus: "
	ti.Placeholder = "entity name"

	m := &Model{
		engine:   engine,
		cfg:      cfg,
		logger:   logger,
		keys:     newKeyMap(),
		help:     help.New(),
		styles:   styles,
		input:    ti,
		list:     adapters.NewEntityList(ds, styles, cfg.UI.ShowDimmed),
		density:  adapters.NewDensityChart(engine, styles, cfg.UI.GridSize),
		info:     adapters.NewInfoPanel(ds, styles, cfg.UI.NeighborLimit),
		status:   adapters.NewStatusBar(engine, styles, cfg.UI.ShowInsights),
		category: -1,
		bands:    ds.ScaleBands(cfg.Selection.ScaleBands),
		band:     -1,
	}
	m.helpRenderer = NewHelpRenderer(m.keys)
	m.helpOps = NewHelpOps(nil)

	for _, c := range ds.Categories() {
		m.categories = append(m.categories, c.Name)
	}

	view := engine.DerivedView()
	for _, a := range []selection.Adapter{m.list, m.density, m.info, m.status} {
		a.Update(view)
		m.detach = append(m.detach, engine.Attach(a))
	}

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.helpOps = NewHelpOps(p)
}

// Close detaches the chart adapters from the engine
func (m *Model) Close() {
	for _, d := range m.detach {
		d()
	}
	m.detach = nil
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case helpPagerMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("help pager: %w", msg.err))
		}

	case tea.KeyMsg:
		if m.typing {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		name := strings.TrimSpace(m.input.Value())
		m.closePrompt()
		if err := m.engine.FocusByName(name); err != nil {
			m.setError(err)
			return m, nil
		}
		if locked := m.engine.State().Locked; locked != "" {
			m.list.Jump(locked)
			m.setInfo("focused " + name)
		}
		return m, nil
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.typing = false
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.list.Move(-1)

	case key.Matches(msg, m.keys.Down):
		m.list.Move(1)

	case key.Matches(msg, m.keys.Lock):
		if e, ok := m.list.Current(); ok {
			m.apply(m.engine.Dispatch(domain.EntityClickedEvent{ID: e.ID}))
		}

	case key.Matches(msg, m.keys.Unlock):
		m.apply(m.engine.Dispatch(domain.BackgroundClickedEvent{}))

	case key.Matches(msg, m.keys.Exclude):
		if e, ok := m.list.Current(); ok {
			if err := m.engine.Dispatch(domain.EntityExcludedEvent{ID: e.ID}); err != nil {
				m.setError(err)
				break
			}
			m.excluded = append(m.excluded, e.ID)
			m.setInfo("excluded " + e.Name)
		}

	case key.Matches(msg, m.keys.Restore):
		m.restoreLastExcluded()

	case key.Matches(msg, m.keys.NextCategory):
		m.cycleCategory(1)

	case key.Matches(msg, m.keys.PrevCategory):
		m.cycleCategory(-1)

	case key.Matches(msg, m.keys.Region):
		cell := int(msg.String()[0] - '1')
		region := regionCell(cell)
		m.apply(m.engine.Dispatch(domain.RegionBrushedEvent{Region: &region}))

	case key.Matches(msg, m.keys.ClearRegion):
		m.apply(m.engine.Dispatch(domain.RegionBrushedEvent{}))

	case key.Matches(msg, m.keys.ScaleBand):
		m.cycleScaleBand()

	case key.Matches(msg, m.keys.ThresholdUp):
		m.stepThreshold(m.cfg.Selection.ThresholdStep)

	case key.Matches(msg, m.keys.ThresholdDown):
		m.stepThreshold(-m.cfg.Selection.ThresholdStep)

	case key.Matches(msg, m.keys.Focus):
		m.typing = true
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Reset):
		m.apply(m.engine.Dispatch(domain.ResetRequestedEvent{}))
		m.category = -1
		m.band = -1
		m.excluded = nil

	case key.Matches(msg, m.keys.Help):
		content := m.helpRenderer.RenderHelpContent()
		ops := m.helpOps
		return m, func() tea.Msg {
			return helpPagerMsg{err: ops.ShowHelpInPager(content)}
		}
	}

	return m, nil
}

// regionCell maps a 0-8 keypad cell to its third of the unit square, rows top to bottom
func regionCell(cell int) domain.Rect {
	row, col := float64(cell/3), float64(cell%3)
	return domain.Rect{X0: col / 3, Y0: row / 3, X1: (col + 1) / 3, Y1: (row + 1) / 3}
}

func (m *Model) cycleCategory(step int) {
	n := len(m.categories)
	if n == 0 {
		return
	}
	// positions -1..n-1, where -1 is "all"
	m.category = (m.category+1+step+n+1)%(n+1) - 1

	name := "all"
	if m.category >= 0 {
		name = m.categories[m.category]
	}
	m.apply(m.engine.Dispatch(domain.CategoryPickedEvent{Category: name}))
}

func (m *Model) cycleScaleBand() {
	if len(m.bands) == 0 {
		return
	}
	m.band++
	if m.band >= len(m.bands) {
		m.band = -1
	}

	var iv *domain.Interval
	if m.band >= 0 {
		band := m.bands[m.band]
		iv = &band
	}
	m.apply(m.engine.Dispatch(domain.ScaleBrushedEvent{Range: iv}))
}

func (m *Model) stepThreshold(delta float64) {
	next := m.engine.State().Threshold + delta
	if next < 0 {
		next = 0
	}
	m.apply(m.engine.Dispatch(domain.ThresholdChangedEvent{Weight: next}))
}

func (m *Model) restoreLastExcluded() {
	excluded := make(map[string]bool)
	for _, id := range m.engine.State().Excluded {
		excluded[id] = true
	}
	for len(m.excluded) > 0 {
		id := m.excluded[len(m.excluded)-1]
		m.excluded = m.excluded[:len(m.excluded)-1]
		if !excluded[id] {
			continue // already restored by a reset
		}
		if err := m.engine.Dispatch(domain.EntityExcludedEvent{ID: id}); err != nil {
			m.setError(err)
			return
		}
		m.list.Jump(id)
		m.setInfo("restored " + id)
		return
	}
	m.setInfo("nothing to restore")
}

func (m *Model) apply(err error) {
	if err != nil {
		m.setError(err)
	}
}

func (m *Model) setError(err error) {
	m.logger.Debug("interaction rejected", zap.Error(err))
	m.messageErr = true
	switch {
	case errors.Is(err, selection.ErrEntityNotFound):
		m.message = "not found: " + err.Error()
	case errors.Is(err, selection.ErrInvalidRange):
		m.message = "invalid range: " + err.Error()
	default:
		m.message = err.Error()
	}
}

func (m *Model) setInfo(msg string) {
	m.messageErr = false
	m.message = msg
}

// Message returns the current status message
func (m *Model) Message() string {
	return m.message
}

// View renders the UI
func (m *Model) View() string {
	title := m.styles.Title.Render("cocoverse")
	if filters := adapters.DescribeFilters(m.engine.State()); filters != "" {
		title += "  " + m.styles.Filter.Render("["+filters+"]")
	}

	listHeight := m.height - 12
	if listHeight < 5 {
		listHeight = 5
	}
	listWidth := m.width/2 - 4
	if listWidth < 20 {
		listWidth = 40
	}

	left := m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.PanelTitle.Render("Entities"),
		m.list.Render(listWidth, listHeight)))
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.styles.PanelTitle.Render("Spatial density"),
			m.density.Render())),
		m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.styles.PanelTitle.Render("Locked"),
			m.info.Render())))

	sections := []string{
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		m.status.Render(),
	}

	if m.typing {
		sections = append(sections, m.input.View())
	} else if m.message != "" {
		style := m.styles.StatusInfo
		if m.messageErr {
			style = m.styles.StatusError
		}
		sections = append(sections, style.Render(m.message))
	}
	sections = append(sections, m.styles.Help.Render(m.help.View(m.keys)))

	return m.styles.Main.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
