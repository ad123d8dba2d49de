// Package loop runs a game session: the fixed-rate frame loop, the menu and
// run state machine, and the terminal overlays.
package loop

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/rocketrun/internal/asset"
	"github.com/tomz197/rocketrun/internal/draw"
	"github.com/tomz197/rocketrun/internal/input"
	"github.com/tomz197/rocketrun/internal/loop/config"
	"github.com/tomz197/rocketrun/internal/object"
)

// RunOptions configures the terminal side of a session.
type RunOptions struct {
	Options

	Assets       *asset.Catalog
	TermSizeFunc draw.TermSizeFunc
	Renderer     *lipgloss.Renderer
	IdleTimeout  bool            // Warn and disconnect idle players
	Shutdown     <-chan struct{} // Closed when the server is going down
}

// session is the runtime of one terminal session around its State.
type session struct {
	state  *State
	opts   RunOptions
	w      io.Writer
	canvas *draw.Canvas
	cw     *draw.ChunkWriter
	camera *object.Camera
	stream *input.Stream
	styles styles

	lastInput     time.Time
	inactive      bool
	wasInactive   bool
	prevGameState GameState
	shutdownTimer float64
}

// Run plays a session on r/w until the player quits, ctx is cancelled or the
// shutdown notice has been shown.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts RunOptions) error {
	state, err := NewState(opts.Options)
	if err != nil {
		return err
	}
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.DefaultRenderer()
	}

	termWidth, termHeight, _ := opts.TermSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	s := &session{
		state:         state,
		opts:          opts,
		w:             w,
		canvas:        canvas,
		cw:            draw.NewChunkWriter(w, offsetCol, offsetRow),
		camera:        object.NewCamera(config.ViewWidth, config.ViewHeight),
		stream:        input.StartStream(r),
		styles:        newStyles(opts.Renderer),
		lastInput:     time.Now(),
		prevGameState: state.GameState,
	}
	return s.run(ctx)
}

func (s *session) run(ctx context.Context) error {
	draw.HideCursor(s.w)
	draw.EnableMouse(s.w)
	defer func() {
		s.stream.Close()
		draw.DisableMouse(s.w)
		draw.ShowCursor(s.w)
		draw.ClearScreen(s.w)
	}()
	draw.ClearScreen(s.w)

	lastTime := time.Now()

	for s.state.Running {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		inp := s.processInput()
		s.checkShutdown(delta)
		s.updateScreen()

		if s.state.GameState == GameStateShutdown {
			inp = input.Input{}
		}
		steer := Intent(inp, s.canvas.OffsetCol()+s.canvas.TerminalWidth()/2+1)

		before := s.state.GameState
		if err := Step(s.state, delta, inp, steer); err != nil {
			return err
		}
		if before != GameStatePlaying && s.state.GameState == GameStatePlaying {
			s.stream.Reset()
		}

		if err := s.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}
	return nil
}

// processInput reads input and tracks inactivity.
func (s *session) processInput() input.Input {
	inp := input.ReadInput(s.stream)

	if len(inp.Pressed) > 0 {
		s.lastInput = time.Now()
		s.inactive = false
	} else if s.opts.IdleTimeout && s.state.GameState != GameStatePlaying {
		idle := time.Since(s.lastInput).Seconds()
		if idle > config.InactivityDisconnectUser {
			s.state.logger.Info("disconnecting idle session")
			s.state.Running = false
		} else if idle > config.InactivityWarnUser {
			s.inactive = true
		}
	}

	if inp.Quit {
		s.state.Running = false
	}
	return inp
}

// checkShutdown switches to the shutdown screen once the server announces it
// and ends the session after the notice has been shown.
func (s *session) checkShutdown(delta time.Duration) {
	if s.state.GameState == GameStateShutdown {
		s.shutdownTimer -= delta.Seconds()
		if s.shutdownTimer <= 0 {
			s.state.Running = false
		}
		return
	}
	if s.opts.Shutdown == nil {
		return
	}
	select {
	case <-s.opts.Shutdown:
		s.state.GameState = GameStateShutdown
		s.shutdownTimer = config.ShutdownDisplaySeconds
	default:
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (s *session) updateScreen() {
	termWidth, termHeight, err := s.opts.TermSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != s.canvas.TerminalWidth() || renderHeight != s.canvas.TerminalHeight() ||
		offsetCol != s.canvas.OffsetCol() || offsetRow != s.canvas.OffsetRow() {
		draw.ClearScreen(s.w)
		s.canvas.ForceRedraw()
	}

	s.canvas.Resize(renderWidth, renderHeight)
	s.canvas.SetOffset(offsetCol, offsetRow)
	s.cw.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// drawFrame draws the field, the rocket, effects and the overlay for the current state.
func (s *session) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	if s.state.GameState != s.prevGameState || s.inactive != s.wasInactive {
		s.cw.WriteString("\033[H\033[2J")
		s.canvas.ForceRedraw()
		s.prevGameState = s.state.GameState
		s.wasInactive = s.inactive
	}

	s.canvas.Clear()
	ctx := object.DrawContext{
		Canvas: s.canvas,
		Camera: s.camera,
		Assets: s.opts.Assets,
	}

	if err := (object.FieldView{Field: s.state.Field}).Draw(ctx); err != nil {
		return err
	}
	if s.state.GameState == GameStatePlaying || s.state.GameState == GameStateMenu {
		if err := s.state.Rocket.Draw(ctx); err != nil {
			return err
		}
	}
	for _, obj := range s.state.Effects {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}

	s.canvas.Render(s.cw)
	s.drawUI()
	return s.cw.Flush()
}

// drawUI draws the overlay for the current state.
func (s *session) drawUI() {
	centerX := s.canvas.TerminalWidth() / 2
	centerY := s.canvas.TerminalHeight() / 2

	if s.state.GameState == GameStateShutdown {
		drawCentered(s.cw, shutdownView(s.styles, int(s.shutdownTimer)), centerX, centerY)
		return
	}
	if s.inactive {
		left := int(config.InactivityDisconnectUser - time.Since(s.lastInput).Seconds())
		drawCentered(s.cw, inactiveView(s.styles, left), centerX, centerY)
		return
	}

	switch s.state.GameState {
	case GameStateMenu:
		drawCentered(s.cw, menuView(s.styles), centerX, centerY)
	case GameStatePlaying:
		s.cw.WriteAt(2, 1, hudView(s.styles, s.state))
	case GameStateDead:
		drawCentered(s.cw, deadView(s.styles, s.state), centerX, centerY)
	}
}
