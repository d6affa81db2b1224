package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"system_design_demos/pipeline"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("63"))

	stepStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

var stepLabels = map[pipeline.Step]string{
	pipeline.StepLoad:     "Loading covered topics...",
	pipeline.StepDiscover: "Discovering new topic...",
	pipeline.StepGenerate: "Generating HTML content...",
	pipeline.StepWrite:    "Creating interactive HTML demo...",
	pipeline.StepRecord:   "Updating covered list...",
}

// consoleReporter prints one line per stage start and one per outcome.
type consoleReporter struct {
	w io.Writer
}

func newConsoleReporter(w io.Writer) *consoleReporter {
	return &consoleReporter{w: w}
}

func (r *consoleReporter) Begin(step pipeline.Step) {
	fmt.Fprintln(r.w, stepStyle.Render(stepLabels[step]))
}

func (r *consoleReporter) Done(step pipeline.Step, detail string) {
	fmt.Fprintln(r.w, okStyle.Render("  ✓ ")+detail)
}

func summary(res pipeline.Result) string {
	line := fmt.Sprintf("Demo created: %s (%d topics covered, %s)", res.Path, res.Covered, res.Duration.Round(time.Millisecond))
	switch {
	case res.DiscoveryFallback && res.ContentFallback:
		return warnStyle.Render(line + " [fallback topic and page]")
	case res.DiscoveryFallback:
		return warnStyle.Render(line + " [fallback topic]")
	case res.ContentFallback:
		return warnStyle.Render(line + " [fallback page]")
	default:
		return okStyle.Render(line)
	}
}
