package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HamStudy/vscroll/internal/core"
	"github.com/HamStudy/vscroll/internal/source"
)

func newTestApp(t *testing.T, count int) (*App, *source.Generated) {
	t.Helper()

	config := core.DefaultConfig()
	config.TotalItems = count
	src := source.NewGenerated(count, 4, 1)

	app, err := NewApp(src, core.NewState(config), config, nil)
	require.NoError(t, err)
	return app, src
}

// settle delivers frames until the engine stops asking for them.
func settle(t *testing.T, app *App) {
	t.Helper()
	for i := 0; i < 100; i++ {
		if len(app.frames.pending) == 0 {
			return
		}
		app.Update(frameMsg(time.Now()))
	}
	t.Fatal("frames did not settle")
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppBeforeWindowSize(t *testing.T) {
	app, _ := newTestApp(t, 10)
	assert.Equal(t, "Initializing...", app.View())
	assert.Nil(t, app.Init())
}

func TestAppInitialRender(t *testing.T) {
	app, _ := newTestApp(t, 100)

	_, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.NotNil(t, cmd, "measurements from the first render should request a frame")
	assert.Equal(t, uint64(1), app.Engine().Stats().Cycles)
	assert.Contains(t, app.View(), "Item #0")

	settle(t, app)
	assert.Greater(t, app.Engine().Stats().Measured, 0)
	assert.Equal(t, app.listHeight(), app.Engine().ViewportHeight())
}

func TestAppMeasuresRenderedHeights(t *testing.T) {
	app, src := newTestApp(t, 50)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	settle(t, app)

	for _, index := range []int{0, 1, 2} {
		height, err := app.Engine().ItemHeight(index)
		require.NoError(t, err)
		// Title, content lines and the bottom margin.
		assert.Equal(t, 1+src.Lines(index)+1, height, "item %d", index)
	}
}

func TestAppBottomKeyShowsLastItem(t *testing.T) {
	app, _ := newTestApp(t, 200)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	settle(t, app)

	app.Update(keyMsg("G"))
	settle(t, app)

	assert.Contains(t, app.View(), "Item #199")
	assert.Equal(t, app.maxScroll(), app.state.GetScrollTop())
	assert.Equal(t, 199, app.state.GetCursor())

	app.Update(keyMsg("g"))
	settle(t, app)
	assert.Equal(t, 0, app.state.GetScrollTop())
	assert.Contains(t, app.View(), "Item #0")
}

func TestAppCursorRevealsItem(t *testing.T) {
	app, _ := newTestApp(t, 100)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	settle(t, app)

	for i := 0; i < 30; i++ {
		app.Update(keyMsg("j"))
		settle(t, app)
	}

	assert.Equal(t, 30, app.state.GetCursor())
	assert.Contains(t, app.View(), fmt.Sprintf("Item #%d", 30))

	top, err := app.Engine().TopOffset(30)
	require.NoError(t, err)
	height, _ := app.Engine().ItemHeight(30)
	scrollTop := app.state.GetScrollTop()
	assert.LessOrEqual(t, scrollTop, top)
	assert.GreaterOrEqual(t, scrollTop+app.listHeight(), top+height)
}

func TestAppScrollKeys(t *testing.T) {
	app, _ := newTestApp(t, 100)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	settle(t, app)

	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, app.state.GetScrollTop())
	assert.Equal(t, 1, app.Engine().ScrollTop())

	app.Update(tea.KeyMsg{Type: tea.KeyUp})
	app.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, app.state.GetScrollTop())

	app.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, app.listHeight(), app.state.GetScrollTop())

	app.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, app.listHeight()+wheelStep, app.state.GetScrollTop())
	settle(t, app)
}

func TestAppViewFitsTerminal(t *testing.T) {
	app, _ := newTestApp(t, 100)
	app.Update(tea.WindowSizeMsg{Width: 60, Height: 15})
	settle(t, app)

	lines := strings.Split(app.View(), "\n")
	assert.Len(t, lines, 15)

	app.Update(keyMsg("?"))
	settle(t, app)
	assert.True(t, app.state.ShowHelp)
	lines = strings.Split(app.View(), "\n")
	assert.Len(t, lines, 15)
}

func TestAppEmptyList(t *testing.T) {
	app, _ := newTestApp(t, 0)
	_, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Nil(t, cmd)
	assert.Contains(t, app.View(), "no items")
}

func TestAppQuit(t *testing.T) {
	app, _ := newTestApp(t, 10)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	_, cmd := app.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
	assert.False(t, app.Engine().IsRenderPending())
}
