package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DividerWidth is the default width for divider lines.
const DividerWidth = 64

// PhaseDisplay renders the steps that run before a remote command starts:
//
//	● Task t1 0.21s
//	● Container instance 0.10s
//	● Host 10.0.0.5 0.09s
//
// Begin starts a phase and implicitly completes the previous one, so it can be
// driven from a callback that only knows when the next step begins.
type PhaseDisplay struct {
	mu      sync.Mutex
	w       io.Writer
	quiet   bool
	current string
	started time.Time
	now     func() time.Time
}

// NewPhaseDisplay creates a phase display writing to w.
func NewPhaseDisplay(w io.Writer) *PhaseDisplay {
	return &PhaseDisplay{w: w, now: time.Now}
}

// SetQuiet suppresses all output.
func (pd *PhaseDisplay) SetQuiet(quiet bool) {
	pd.mu.Lock()
	defer pd.mu.Unlock()
	pd.quiet = quiet
}

// Begin completes the running phase, if any, and starts name.
func (pd *PhaseDisplay) Begin(name string) {
	pd.mu.Lock()
	defer pd.mu.Unlock()

	pd.completeLocked("")
	pd.current = name
	pd.started = pd.now()
	if !pd.quiet {
		pd.RenderProgress(name)
	}
}

// Complete marks the running phase successful. detail is appended to its
// name, e.g. the address a lookup produced.
func (pd *PhaseDisplay) Complete(detail string) {
	pd.mu.Lock()
	defer pd.mu.Unlock()
	pd.completeLocked(detail)
}

// Fail marks the running phase failed. The error itself is reported by the
// caller.
func (pd *PhaseDisplay) Fail() {
	pd.mu.Lock()
	defer pd.mu.Unlock()

	if pd.current == "" {
		return
	}
	if !pd.quiet {
		pd.RenderFailed(pd.current, pd.now().Sub(pd.started))
	}
	pd.current = ""
}

// Skip reports a step that did not need to run. The running phase, if any,
// keeps going and its progress line is redrawn below.
func (pd *PhaseDisplay) Skip(name, reason string) {
	pd.mu.Lock()
	defer pd.mu.Unlock()

	if pd.quiet {
		return
	}
	pd.RenderSkipped(name, reason)
	if pd.current != "" {
		pd.RenderProgress(pd.current)
	}
}

func (pd *PhaseDisplay) completeLocked(detail string) {
	if pd.current == "" {
		return
	}
	name := pd.current
	if detail != "" {
		name += " " + detail
	}
	if !pd.quiet {
		pd.RenderSuccess(name, pd.now().Sub(pd.started))
	}
	pd.current = ""
}

// RenderProgress renders a phase in progress.
// Shows: ◐ Task t1...
func (pd *PhaseDisplay) RenderProgress(name string) {
	style := lipgloss.NewStyle().Foreground(ColorSecondary)
	fmt.Fprintf(pd.w, "\r%s %s...", style.Render(SymbolProgress), name)
}

// RenderSuccess renders a completed phase.
// Shows: ● Task t1 0.2s
func (pd *PhaseDisplay) RenderSuccess(name string, duration time.Duration) {
	pd.renderDone(SymbolComplete, ColorSuccess, name, formatDuration(duration))
}

// RenderFailed renders a failed phase.
// Shows: ✗ Host 2.3s
func (pd *PhaseDisplay) RenderFailed(name string, duration time.Duration) {
	pd.renderDone(SymbolFail, ColorError, name, formatDuration(duration))
}

// RenderSkipped renders a phase that did not run.
// Shows: ⊘ Container lookup (runtime id known)
func (pd *PhaseDisplay) RenderSkipped(name, reason string) {
	if reason != "" {
		reason = "(" + reason + ")"
	}
	pd.renderDone(SymbolSkipped, ColorWarning, name, reason)
}

func (pd *PhaseDisplay) renderDone(symbol string, color lipgloss.Color, name, trailer string) {
	pd.clearLine()
	fmt.Fprintln(pd.w, FormatPhase(symbol, color, name, trailer))
}

// Divider separates the phases from the remote command's output.
func (pd *PhaseDisplay) Divider() {
	if pd.quiet {
		return
	}
	fmt.Fprintf(pd.w, "%s\n", FormatDivider(DividerWidth))
}

// CommandPrompt renders the command about to be executed.
// Shows: $ ls -la
func (pd *PhaseDisplay) CommandPrompt(cmd string) {
	if pd.quiet {
		return
	}
	style := lipgloss.NewStyle().Foreground(ColorMuted)
	fmt.Fprintf(pd.w, "%s %s\n", style.Render("$"), cmd)
}

// clearLine erases the progress line written by RenderProgress.
func (pd *PhaseDisplay) clearLine() {
	fmt.Fprint(pd.w, "\r"+strings.Repeat(" ", 80)+"\r")
}

// FormatPhase returns a formatted phase line without a trailing newline.
func FormatPhase(symbol string, symbolColor lipgloss.Color, name, trailer string) string {
	symbolStyle := lipgloss.NewStyle().Foreground(symbolColor)
	if trailer == "" {
		return fmt.Sprintf("%s %s", symbolStyle.Render(symbol), name)
	}
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	return fmt.Sprintf("%s %s %s", symbolStyle.Render(symbol), name, mutedStyle.Render(trailer))
}

// FormatDivider returns a divider line as a string.
func FormatDivider(width int) string {
	style := lipgloss.NewStyle().Foreground(ColorMuted)
	return style.Render(strings.Repeat("━", width))
}

// formatDuration formats a duration for display (e.g., "0.3s", "1.2s").
func formatDuration(d time.Duration) string {
	secs := d.Seconds()
	if secs < 0.1 {
		return fmt.Sprintf("%.2fs", secs)
	}
	return fmt.Sprintf("%.1fs", secs)
}
