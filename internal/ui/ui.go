// Package ui prints run summaries for the CLI.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"rrt-planner/internal/session"
)

var (
	colorPrimary = lipgloss.Color("#00BFFF") // headings
	colorSuccess = lipgloss.Color("#00E676") // connected
	colorDanger  = lipgloss.Color("#FF5252") // failed
	colorMuted   = lipgloss.Color("#8C8C8C") // labels
)

const (
	iconDone   = "✓"
	iconFailed = "✗"
)

var (
	styleTitle   = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleLabel   = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	styleDanger  = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	styleBox     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)

// Printer writes summaries to Out.
type Printer struct {
	Out io.Writer
}

// New returns a Printer writing to stderr.
func New() *Printer {
	return &Printer{Out: os.Stderr}
}

// Banner announces a session of n environments.
func (p *Printer) Banner(n int, seed uint64) {
	fmt.Fprintln(p.Out, styleTitle.Render(fmt.Sprintf("RRT planner · %d environment(s) · seed %d", n, seed)))
}

// Environment prints one environment's outcome as a bordered card.
func (p *Printer) Environment(rep session.Report) {
	fmt.Fprintln(p.Out, styleBox.Render(EnvironmentCard(rep)))
}

// EnvironmentCard renders the body of the environment card.
func EnvironmentCard(rep session.Report) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(fmt.Sprintf("Environment %d", rep.Env+1)))
	b.WriteString("\n")

	res := rep.Result
	if res == nil {
		b.WriteString(styleDanger.Render(iconFailed + " not built"))
		if rep.Err != nil {
			b.WriteString("\n" + row("error", rep.Err.Error()))
		}
		return b.String()
	}

	if res.Success {
		b.WriteString(styleSuccess.Render(iconDone + " " + res.State.String()))
	} else {
		b.WriteString(styleDanger.Render(iconFailed + " " + res.State.String()))
	}
	b.WriteString("\n")

	rows := [][2]string{
		{"run", res.ID},
		{"obstacles", fmt.Sprintf("%d", len(res.Obstacles))},
		{"samples", fmt.Sprintf("%d", res.CollisionSamples)},
		{"start", res.Start.String()},
		{"goal", res.Goal.String()},
		{"iterations", fmt.Sprintf("%d", res.Iterations)},
		{"nodes", fmt.Sprintf("%d", len(res.Nodes))},
	}
	if res.Success {
		rows = append(rows,
			[2]string{"waypoints", fmt.Sprintf("%d", len(res.Path))},
			[2]string{"length", fmt.Sprintf("%.1f", res.PathLength)},
		)
	}
	rows = append(rows, [2]string{"elapsed", res.Elapsed.Round(time.Microsecond).String()})
	if res.Message != "" {
		rows = append(rows, [2]string{"error", res.Message})
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = row(r[0], r[1])
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, styleLabel.Render(label), value)
}

// Saved lists files written for an environment.
func (p *Printer) Saved(paths []string) {
	for _, path := range paths {
		fmt.Fprintln(p.Out, lipgloss.NewStyle().Foreground(colorMuted).Render("  wrote "+path))
	}
}

// Totals prints how many environments connected.
func (p *Printer) Totals(connected, total int) {
	style := styleSuccess
	if connected < total {
		style = styleDanger
	}
	fmt.Fprintln(p.Out, style.Render(fmt.Sprintf("%d/%d environments connected", connected, total)))
}

// Error prints msg in the error style.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.Out, styleDanger.Render("error: ")+msg)
}
