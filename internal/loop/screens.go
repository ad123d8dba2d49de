package loop

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/rocketrun/internal/draw"
)

// styles are the overlay styles of one session, bound to its renderer.
type styles struct {
	box   lipgloss.Style
	title lipgloss.Style
	text  lipgloss.Style
	hint  lipgloss.Style
	hud   lipgloss.Style
	warn  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 4).
			Align(lipgloss.Center),
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		text:  r.NewStyle().Faint(true),
		hint:  r.NewStyle().Bold(true),
		hud:   r.NewStyle().Foreground(lipgloss.Color("250")),
		warn:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}

// menuView is the title screen shown before the first run.
func menuView(st styles) string {
	controls := strings.Join([]string{
		"A D / < >  . . . . . Steer",
		"Mouse  . . hold left/right",
		"Q  . . . . . . . . .  Quit",
	}, "\n")

	return st.box.Render(lipgloss.JoinVertical(lipgloss.Center,
		st.title.Render("R O C K E T   R U N"),
		"",
		st.text.Render("Fly as far as you can through the asteroid field"),
		"",
		st.text.Render(controls),
		"",
		st.hint.Render("Press space to begin"),
	))
}

// hudView is the single status line shown during a run. Fields are padded so
// shrinking numbers do not leave residual characters.
func hudView(st styles, s *State) string {
	return st.hud.Render(fmt.Sprintf("Distance: %-8d Best: %-8d", s.Score, s.Best))
}

// deadView is the crash screen.
func deadView(st styles, s *State) string {
	lines := []string{
		st.warn.Render("C R A S H E D"),
		"",
		fmt.Sprintf("Score %d", s.Score),
	}
	if s.Score >= s.Best && s.Score > 0 {
		lines = append(lines, st.title.Render("New best!"))
	} else {
		lines = append(lines, st.text.Render(fmt.Sprintf("Best %d", s.Best)))
	}
	lines = append(lines, "", st.hint.Render("Press space to fly again"))
	return st.box.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// inactiveView warns before an idle session is dropped.
func inactiveView(st styles, secondsLeft int) string {
	return st.box.Render(lipgloss.JoinVertical(lipgloss.Center,
		st.warn.Render("INACTIVITY WARNING"),
		"",
		fmt.Sprintf("You will be disconnected in %d seconds.", max(secondsLeft, 0)),
		"",
		st.hint.Render("Press any key to continue"),
	))
}

// shutdownView tells players the server is going down.
func shutdownView(st styles, secondsLeft int) string {
	return st.box.Render(lipgloss.JoinVertical(lipgloss.Center,
		st.warn.Render("SERVER SHUTTING DOWN"),
		"",
		fmt.Sprintf("Disconnecting in %d seconds.", max(secondsLeft, 0)),
		st.text.Render("Thanks for flying!"),
	))
}

// drawCentered writes a multi-line view centered on the render area.
func drawCentered(cw *draw.ChunkWriter, view string, centerX, centerY int) {
	lines := strings.Split(view, "\n")
	width := lipgloss.Width(view)
	col := max(centerX-width/2, 1)
	row := max(centerY-len(lines)/2, 1)
	for i, line := range lines {
		cw.WriteAt(col, row+i, line)
	}
}
