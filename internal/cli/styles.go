package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"timeledger/internal/config"
	"timeledger/internal/target"
)

// Palette shared by every command.
var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorRed    = lipgloss.Color("#fb4934")
	colorDim    = lipgloss.Color("#928374")
	colorHeader = lipgloss.Color("#fe8019")
)

// Styles renders command output. With colour disabled every style is plain.
type Styles struct {
	Header  lipgloss.Style
	Running lipgloss.Style
	Dim     lipgloss.Style
	Ahead   lipgloss.Style
	Behind  lipgloss.Style
	Warn    lipgloss.Style
}

// NewStyles builds styles for out following the configured colour mode.
func NewStyles(out io.Writer, mode string) *Styles {
	renderer := lipgloss.NewRenderer(out)
	if colorEnabled(out, mode) {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		Header:  renderer.NewStyle().Foreground(colorHeader).Bold(true),
		Running: renderer.NewStyle().Foreground(colorGreen).Bold(true),
		Dim:     renderer.NewStyle().Foreground(colorDim),
		Ahead:   renderer.NewStyle().Foreground(colorGreen),
		Behind:  renderer.NewStyle().Foreground(colorRed),
		Warn:    renderer.NewStyle().Foreground(colorYellow),
	}
}

// colorEnabled resolves "auto" to whether out is a terminal and NO_COLOR is unset.
func colorEnabled(out io.Writer, mode string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Signed styles a signed hour value: ahead in green, behind in red.
func (s *Styles) Signed(value float64, text string) string {
	if value < 0 {
		return s.Behind.Render(text)
	}
	return s.Ahead.Render(text)
}

// TargetState renders the monthly completion marker.
func (s *Styles) TargetState(c target.Calculation) string {
	if c.IsCompleteThisMonth() {
		return s.Ahead.Render("● complete")
	}
	if c.StatusThisMonth < 0 {
		return s.Warn.Render("● open")
	}
	return s.Ahead.Render("● on track")
}
