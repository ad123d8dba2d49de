// Package input turns raw terminal bytes into per-frame steering and menu input.
package input

import (
	"bufio"
	"strconv"
	"sync"
	"time"
)

// Terminals only report key presses, so a key counts as held for a short
// window after its last byte. Autorepeat refills the window.
const keyHoldDuration = 60 * time.Millisecond

// confirmRepeatWindow debounces confirm: a confirm byte only starts a new press
// if no confirm byte was seen within this window, which covers autorepeat delay.
const confirmRepeatWindow = 600 * time.Millisecond

// maxPendingEscape bounds the unterminated escape sequence carried into the
// next frame. The longest report we parse is well under this.
const maxPendingEscape = 32

// Input is one frame of input.
type Input struct {
	Quit           bool
	Left           bool
	Right          bool
	Confirm        bool // Space or Enter held
	ConfirmPressed bool // First frame of a confirm press
	MouseDown      bool // Left mouse button held
	MouseCol       int  // 1-based column of the last mouse report
	Pressed        []byte
}

type keyState struct {
	quit        time.Time
	left        time.Time
	right       time.Time
	confirm     time.Time
	lastConfirm time.Time // Last confirm byte, for debouncing
	mouseDown   bool
	mouseCol    int
}

// Stream delivers input bytes via a channel and tracks key state across frames.
type Stream struct {
	ch      chan byte
	done    chan struct{}
	once    sync.Once
	state   keyState
	pending []byte // Escape sequence cut off at the end of the last batch
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine stops at the first read error or after Close.
func StartStream(r *bufio.Reader) *Stream {
	s := NewStream()
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// NewStream creates a stream with no reader attached.
func NewStream() *Stream {
	return &Stream{
		ch:   make(chan byte, 128),
		done: make(chan struct{}),
	}
}

// Close stops the reader goroutine. A goroutine blocked in a read exits once
// that read returns. It is safe to call more than once.
func (s *Stream) Close() {
	s.once.Do(func() {
		close(s.done)
	})
}

// ReadInput drains all available bytes from the stream without blocking.
// A closed stream reports Quit.
func ReadInput(s *Stream) Input {
	var buf []byte
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	inp := s.apply(buf, time.Now())
	if closed {
		inp.Quit = true
	}
	return inp
}

// Reset forgets held keys and mouse buttons, e.g. when a run starts.
func (s *Stream) Reset() {
	last := s.state.lastConfirm
	s.state = keyState{lastConfirm: last}
}

// apply parses a batch of bytes received at now and builds the frame input.
// An escape sequence cut off at the end of the batch is completed by the next one.
func (s *Stream) apply(batch []byte, now time.Time) Input {
	buf := batch
	if len(s.pending) > 0 {
		buf = append(s.pending, batch...)
		s.pending = nil
	}
	confirmPressed := false

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			n := s.escape(buf[i:], now)
			if n < 0 {
				if len(buf)-i <= maxPendingEscape {
					s.pending = append([]byte(nil), buf[i:]...)
				}
				break
			}
			if n > 0 {
				i += n - 1
				continue
			}
		}

		switch b {
		case 'q', 'Q':
			s.state.quit = now
		case 'a', 'A', 'j', 'J':
			s.state.left = now
		case 'd', 'D', 'l', 'L':
			s.state.right = now
		case ' ', '\n', '\r':
			if s.state.lastConfirm.IsZero() || now.Sub(s.state.lastConfirm) > confirmRepeatWindow {
				confirmPressed = true
			}
			s.state.confirm = now
			s.state.lastConfirm = now
		}
	}

	return Input{
		Quit:           held(now, s.state.quit),
		Left:           held(now, s.state.left),
		Right:          held(now, s.state.right),
		Confirm:        held(now, s.state.confirm),
		ConfirmPressed: confirmPressed,
		MouseDown:      s.state.mouseDown,
		MouseCol:       s.state.mouseCol,
		Pressed:        batch,
	}
}

// escape handles the escape sequence at the start of seq. It returns the
// number of bytes consumed, 0 for a sequence it does not know, or -1 when seq
// ends before the sequence does.
func (s *Stream) escape(seq []byte, now time.Time) int {
	if len(seq) < 3 {
		if len(seq) == 1 || seq[1] == '[' {
			return -1
		}
		return 0
	}
	if seq[1] != '[' {
		return 0
	}

	switch seq[2] {
	case 'C':
		s.state.right = now
		return 3
	case 'D':
		s.state.left = now
		return 3
	case 'A', 'B':
		return 3
	case '<':
		n := s.applyMouse(seq[3:])
		if n < 0 {
			return -1
		}
		if n > 0 {
			return 3 + n
		}
	}
	return 0
}

func held(now, last time.Time) bool {
	return !last.IsZero() && now.Sub(last) < keyHoldDuration
}

// applyMouse parses the body of an SGR mouse report ("b;col;row" followed by
// M or m) and returns the number of bytes consumed. It returns 0 for a
// malformed body and -1 when the terminator has not arrived yet.
func (s *Stream) applyMouse(body []byte) int {
	end := -1
	for i, b := range body {
		if b == 'M' || b == 'm' {
			end = i
			break
		}
		if (b < '0' || b > '9') && b != ';' {
			return 0
		}
	}
	if end < 0 {
		return -1
	}

	fields := splitFields(body[:end])
	if len(fields) != 3 {
		return end + 1
	}
	button, err1 := strconv.Atoi(fields[0])
	col, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return end + 1
	}

	// Wheel events have bit 64 set; only the left button (0) steers.
	if button&64 != 0 || button&3 != 0 {
		return end + 1
	}

	s.state.mouseCol = col
	s.state.mouseDown = body[end] == 'M'
	return end + 1
}

func splitFields(b []byte) []string {
	var fields []string
	start := 0
	for i, c := range b {
		if c == ';' {
			fields = append(fields, string(b[start:i]))
			start = i + 1
		}
	}
	return append(fields, string(b[start:]))
}
