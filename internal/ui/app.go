package ui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/HamStudy/vscroll/internal/components/performance"
	"github.com/HamStudy/vscroll/internal/core"
	"github.com/HamStudy/vscroll/internal/engine"
	"github.com/HamStudy/vscroll/internal/source"
	"github.com/HamStudy/vscroll/internal/viewport"
)

// wheelStep is how many rows one mouse wheel notch scrolls.
const wheelStep = 3

// renderedItem is a materialized item and the offset it was laid out at.
type renderedItem struct {
	index int
	top   int
	lines []string
}

// App represents the main application model. It is the host renderer of the
// engine: it materializes the visible range, measures what it rendered and
// reports the heights back.
type App struct {
	engine  *engine.Engine
	state   *core.State
	config  *core.Config
	frames  *teaFrames
	monitor *performance.Monitor
	keys    KeyMap
	help    help.Model
	styles  styles
	logger  *slog.Logger

	width  int
	height int
	ready  bool
	// pinned keeps the view on the last rows while measurements near the
	// end keep changing the total height.
	pinned bool

	rows []renderedItem
}

// NewApp creates a new application instance over src.
func NewApp(src source.Source, state *core.State, config *core.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	a := &App{
		state:   state,
		config:  config,
		frames:  newTeaFrames(config.FrameInterval),
		monitor: performance.NewMonitor(),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		styles:  defaultStyles(),
		logger:  logger.With(slog.String("component", "ui")),
	}

	eng, err := engine.New(src, config, a.frames,
		engine.WithLogger(logger),
		engine.WithMonitor(a.monitor),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create list engine: %w", err)
	}
	eng.SetOnRender(a.materialize)
	eng.SetOnScrollAdjustment(a.adjustScroll)
	a.engine = eng

	return a, nil
}

// Engine returns the list engine driven by the app.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// Monitor returns the monitor timing the engine's cycles.
func (a *App) Monitor() *performance.Monitor {
	return a.monitor
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.engine.ViewportResized(a.listHeight())
		if !a.ready {
			a.ready = true
			a.engine.Start()
		} else {
			a.scrollTo(a.state.GetScrollTop())
		}

	case frameMsg:
		a.frames.run()
		if a.pinned && a.state.GetScrollTop() != a.maxScroll() {
			a.scrollTo(a.maxScroll())
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			a.pinned = false
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				a.scrollTo(a.state.GetScrollTop() - wheelStep)
			case tea.MouseButtonWheelDown:
				a.scrollTo(a.state.GetScrollTop() + wheelStep)
			}
		}

	case tea.KeyMsg:
		if !key.Matches(msg, a.keys.Help) {
			a.pinned = false
		}
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.engine.Close()
			return a, tea.Quit
		case key.Matches(msg, a.keys.Help):
			a.state.ToggleHelp()
			a.help.ShowAll = a.state.ShowHelp
			a.engine.ViewportResized(a.listHeight())
			a.scrollTo(a.state.GetScrollTop())
		case key.Matches(msg, a.keys.Up):
			a.scrollTo(a.state.GetScrollTop() - 1)
		case key.Matches(msg, a.keys.Down):
			a.scrollTo(a.state.GetScrollTop() + 1)
		case key.Matches(msg, a.keys.PageUp):
			a.scrollTo(a.state.GetScrollTop() - a.listHeight())
		case key.Matches(msg, a.keys.PageDown):
			a.scrollTo(a.state.GetScrollTop() + a.listHeight())
		case key.Matches(msg, a.keys.Top):
			a.state.SetCursor(0, a.itemCount())
			a.scrollTo(0)
		case key.Matches(msg, a.keys.Bottom):
			a.state.SetCursor(a.itemCount()-1, a.itemCount())
			a.pinned = true
			a.scrollTo(a.engine.TotalHeight())
		case key.Matches(msg, a.keys.Next):
			a.revealCursor(a.state.MoveCursor(1, a.itemCount()))
		case key.Matches(msg, a.keys.Prev):
			a.revealCursor(a.state.MoveCursor(-1, a.itemCount()))
		}
	}

	return a, a.frames.cmd()
}

func (a *App) itemCount() int {
	return a.engine.Source().Count()
}

// listHeight is the terminal height minus the header, status and help rows.
func (a *App) listHeight() int {
	chrome := 2 + lipgloss.Height(a.help.View(a.keys))
	return max(a.height-chrome, 0)
}

func (a *App) maxScroll() int {
	return max(a.engine.TotalHeight()-a.listHeight(), 0)
}

// scrollTo moves the host scroll position and tells the engine about it.
func (a *App) scrollTo(top int) {
	top = a.state.SetScrollTop(top, a.maxScroll())
	a.engine.ScrollPositionChanged(top)
}

// revealCursor scrolls just enough to show the whole cursor item, or as
// much of it as fits.
func (a *App) revealCursor(cursor int) {
	if cursor < 0 {
		return
	}
	top, err := a.engine.TopOffset(cursor)
	if err != nil {
		a.logger.Error("cursor outside list", slog.Int("cursor", cursor), slog.String("error", err.Error()))
		return
	}
	height, _ := a.engine.ItemHeight(cursor)

	current := a.state.GetScrollTop()
	switch {
	case top < current:
		a.scrollTo(top)
	case top+height > current+a.listHeight():
		a.scrollTo(min(top, top+height-a.listHeight()))
	default:
		// Same position; the cursor highlight still needs a new frame.
		a.scrollTo(current)
	}
}

// adjustScroll follows the engine's anchor compensation.
func (a *App) adjustScroll(delta int) {
	top := a.state.SetScrollTop(a.engine.ScrollTop(), a.maxScroll())
	a.logger.Debug("scroll adjusted", slog.Int("delta", delta), slog.Int("scroll_top", top))
	if top != a.engine.ScrollTop() {
		a.engine.ScrollPositionChanged(top)
	}
}

// materialize renders the items of r and measures the ones the engine has
// not seen yet.
func (a *App) materialize(r viewport.VisibleRange) {
	a.rows = a.rows[:0]
	if r.Empty() {
		return
	}

	cursor := a.state.GetCursor()
	for i := r.Start; i <= r.End; i++ {
		item, err := a.engine.Source().Get(i)
		if err != nil {
			a.logger.Error("failed to read item", slog.Int("index", i), slog.String("error", err.Error()))
			continue
		}

		block := a.renderItem(item, i == cursor)
		if a.engine.NeedsMeasurement(i) {
			a.engine.ItemMeasured(i, lipgloss.Height(block))
		}

		top, err := a.engine.TopOffset(i)
		if err != nil {
			continue
		}
		a.rows = append(a.rows, renderedItem{
			index: i,
			top:   top,
			lines: strings.Split(block, "\n"),
		})
	}
}

func (a *App) renderItem(item source.Item, selected bool) string {
	body := a.styles.title.Render(item.Title)
	if item.Content != "" {
		body += "\n" + a.styles.content.Render(item.Content)
	}

	style := a.styles.item
	if selected {
		style = a.styles.selected
	}
	if a.width > 0 {
		style = style.MaxWidth(a.width)
	}
	return style.Render(body)
}

// View renders the application
func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	listHeight := a.listHeight()
	scrollTop := a.state.GetScrollTop()
	lines := make([]string, listHeight)
	for _, item := range a.rows {
		for k, line := range item.lines {
			if row := item.top - scrollTop + k; row >= 0 && row < listHeight {
				lines[row] = line
			}
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.header(),
		strings.Join(lines, "\n"),
		a.status(),
		a.help.View(a.keys),
	)
}

func (a *App) header() string {
	return a.styles.header.Render(fmt.Sprintf("vscroll · %d items", a.itemCount()))
}

func (a *App) status() string {
	stats := a.engine.Stats()
	text := fmt.Sprintf("items %d-%d · measured %d/%d · row %d/%d · cycles %d",
		stats.Range.Start, stats.Range.End,
		stats.Measured, stats.Items,
		a.state.GetScrollTop(), stats.TotalHeight,
		stats.Cycles)
	if stats.Range.Empty() {
		text = "no items"
	}
	return a.styles.status.Render(text)
}
