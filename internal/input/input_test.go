package input

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeysHeldBriefly(t *testing.T) {
	s := NewStream()
	now := time.Unix(100, 0)

	inp := s.apply([]byte("a"), now)
	assert.True(t, inp.Left)
	assert.False(t, inp.Right)

	inp = s.apply(nil, now.Add(keyHoldDuration/2))
	assert.True(t, inp.Left)

	inp = s.apply(nil, now.Add(keyHoldDuration))
	assert.False(t, inp.Left)
}

func TestArrowKeys(t *testing.T) {
	s := NewStream()
	inp := s.apply([]byte("\x1b[D\x1b[C"), time.Unix(1, 0))
	assert.True(t, inp.Left)
	assert.True(t, inp.Right)
	assert.False(t, inp.Quit)
}

func TestConfirmEdge(t *testing.T) {
	s := NewStream()
	now := time.Unix(50, 0)

	inp := s.apply([]byte(" "), now)
	assert.True(t, inp.ConfirmPressed)
	assert.True(t, inp.Confirm)

	// Autorepeat after the initial delay is still the same press.
	now = now.Add(500 * time.Millisecond)
	inp = s.apply([]byte(" "), now)
	assert.False(t, inp.ConfirmPressed)
	assert.True(t, inp.Confirm)

	now = now.Add(30 * time.Millisecond)
	inp = s.apply([]byte(" "), now)
	assert.False(t, inp.ConfirmPressed)

	// Released long enough, then pressed again.
	now = now.Add(time.Second)
	inp = s.apply(nil, now)
	assert.False(t, inp.Confirm)
	inp = s.apply([]byte("\r"), now.Add(time.Millisecond))
	assert.True(t, inp.ConfirmPressed)
}

func TestResetKeepsConfirmDebounce(t *testing.T) {
	s := NewStream()
	now := time.Unix(10, 0)
	s.apply([]byte(" d"), now)
	s.Reset()

	inp := s.apply([]byte(" "), now.Add(100*time.Millisecond))
	assert.False(t, inp.Right)
	assert.False(t, inp.ConfirmPressed)
}

func TestMouseReports(t *testing.T) {
	s := NewStream()
	now := time.Unix(1, 0)

	inp := s.apply([]byte("\x1b[<0;12;5M"), now)
	assert.True(t, inp.MouseDown)
	assert.Equal(t, 12, inp.MouseCol)

	// Drag with the left button held.
	inp = s.apply([]byte("\x1b[<32;80;5M"), now)
	assert.True(t, inp.MouseDown)
	assert.Equal(t, 80, inp.MouseCol)

	// No new bytes: the button stays down.
	inp = s.apply(nil, now.Add(time.Second))
	assert.True(t, inp.MouseDown)

	inp = s.apply([]byte("\x1b[<0;81;5m"), now)
	assert.False(t, inp.MouseDown)
	assert.Equal(t, 81, inp.MouseCol)
}

func TestMouseIgnoresOtherButtons(t *testing.T) {
	s := NewStream()
	now := time.Unix(1, 0)

	inp := s.apply([]byte("\x1b[<2;10;5M\x1b[<64;10;5M"), now)
	assert.False(t, inp.MouseDown)
	assert.Zero(t, inp.MouseCol)

	// Report bytes must not leak into key handling.
	assert.False(t, inp.Left)
	assert.False(t, inp.Right)
	assert.False(t, inp.ConfirmPressed)
}

func TestSplitMouseReportCompletesNextFrame(t *testing.T) {
	s := NewStream()
	now := time.Unix(1, 0)

	inp := s.apply([]byte("\x1b[<0;1"), now)
	assert.False(t, inp.MouseDown)

	inp = s.apply([]byte("0;5M"), now)
	assert.True(t, inp.MouseDown)
	assert.Equal(t, 10, inp.MouseCol)
	assert.False(t, inp.Right, "M is part of the report")
}

func TestSplitMouseReleaseClearsButton(t *testing.T) {
	s := NewStream()
	now := time.Unix(1, 0)

	require.True(t, s.apply([]byte("\x1b[<0;10;5M"), now).MouseDown)
	assert.True(t, s.apply([]byte("\x1b[<0;10"), now).MouseDown)
	assert.False(t, s.apply([]byte(";5m"), now).MouseDown)
}

func TestSplitArrowKey(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
	}{
		{"after bracket", []string{"\x1b[", "D"}},
		{"after escape", []string{"\x1b", "[D"}},
		{"byte by byte", []string{"\x1b", "[", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStream()
			now := time.Unix(1, 0)
			var inp Input
			for _, part := range tt.parts {
				inp = s.apply([]byte(part), now)
			}
			assert.True(t, inp.Left)
			assert.False(t, inp.Right)
		})
	}
}

func TestLoneEscapeDoesNotSwallowKeys(t *testing.T) {
	s := NewStream()
	now := time.Unix(1, 0)

	s.apply([]byte("\x1b"), now)
	inp := s.apply([]byte("d"), now)
	assert.True(t, inp.Right)
	assert.Equal(t, []byte("d"), inp.Pressed)
}

func TestOverlongEscapeIsDropped(t *testing.T) {
	s := NewStream()
	now := time.Unix(1, 0)

	s.apply([]byte("\x1b[<"+strings.Repeat("1", maxPendingEscape)), now)
	inp := s.apply([]byte("a"), now)
	assert.True(t, inp.Left)
	assert.False(t, inp.MouseDown)
}

type endless struct{}

func (endless) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 'x'
	}
	return len(p), nil
}

func TestCloseStopsReader(t *testing.T) {
	s := StartStream(bufio.NewReader(endless{}))
	s.Close()
	s.Close()

	done := make(chan struct{})
	go func() {
		for range s.ch {
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reader goroutine still running after Close")
	}
}

func TestClosedStreamQuits(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("")))
	assert.Eventually(t, func() bool {
		return ReadInput(s).Quit
	}, time.Second, 5*time.Millisecond)
}
