package loop

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/rocketrun/internal/draw"
)

func plainStyles() styles {
	return newStyles(lipgloss.NewRenderer(io.Discard))
}

func TestMenuView(t *testing.T) {
	view := menuView(plainStyles())
	assert.Contains(t, view, "Press space to begin")
	assert.Contains(t, view, "Steer")
}

func TestDeadView(t *testing.T) {
	s := &State{Score: 42, Best: 100}
	view := deadView(plainStyles(), s)
	assert.Contains(t, view, "Score 42")
	assert.Contains(t, view, "Best 100")

	s = &State{Score: 120, Best: 120}
	assert.Contains(t, deadView(plainStyles(), s), "New best!")
}

func TestHUDView(t *testing.T) {
	view := hudView(plainStyles(), &State{Score: 42, Best: 7})
	assert.Contains(t, view, "Distance: 42")
	assert.Contains(t, view, "Best: 7")
}

func TestCountdownViewsClampAtZero(t *testing.T) {
	assert.Contains(t, inactiveView(plainStyles(), -5), "in 0 seconds")
	assert.Contains(t, shutdownView(plainStyles(), 3), "in 3 seconds")
}

func TestDrawCentered(t *testing.T) {
	var out bytes.Buffer
	cw := draw.NewChunkWriter(&out, 0, 0)
	drawCentered(cw, "ab\ncd\nef", 10, 10)
	require.NoError(t, cw.Flush())

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "\033[9;9Hab"))
	assert.Contains(t, s, "\033[10;9Hcd")
	assert.Contains(t, s, "\033[11;9Hef")
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		name                   string
		w, h                   int
		rw, rh, offCol, offRow int
	}{
		{"small", 80, 24, 80, 24, 0, 0},
		{"wide", 300, 50, 240, 50, 30, 0},
		{"tall", 100, 100, 100, 80, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw, rh, oc, or := clampTermSize(tt.w, tt.h)
			assert.Equal(t, []int{tt.rw, tt.rh, tt.offCol, tt.offRow}, []int{rw, rh, oc, or})
		})
	}
}

func TestGameStateString(t *testing.T) {
	assert.Equal(t, "menu", GameStateMenu.String())
	assert.Equal(t, "playing", GameStatePlaying.String())
	assert.Equal(t, "dead", GameStateDead.String())
	assert.Equal(t, "unknown", GameState(42).String())
}
