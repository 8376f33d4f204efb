// Package render draws the team builder views for a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bft-labs/dreamteam/internal/domain"
	"github.com/bft-labs/dreamteam/internal/store"
)

var (
	violet  = lipgloss.Color("#8B5CF6")
	emerald = lipgloss.Color("#34D399")
	slate   = lipgloss.Color("#94A3B8")
	red     = lipgloss.Color("#F87171")
)

// Renderer writes views to an output.
type Renderer struct {
	out io.Writer

	title    lipgloss.Style
	heading  lipgloss.Style
	active   lipgloss.Style
	inactive lipgloss.Style
	stat     lipgloss.Style
	muted    lipgloss.Style
	errStyle lipgloss.Style
}

// New creates a Renderer for out. Colors follow the terminal's capabilities
// unless noColor is set.
func New(out io.Writer, noColor bool) *Renderer {
	r := lipgloss.NewRenderer(out)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		out:      out,
		title:    r.NewStyle().Bold(true).Foreground(violet),
		heading:  r.NewStyle().Bold(true),
		active:   r.NewStyle().Bold(true).Foreground(violet),
		inactive: r.NewStyle().Foreground(slate),
		stat:     r.NewStyle().Foreground(emerald),
		muted:    r.NewStyle().Foreground(slate),
		errStyle: r.NewStyle().Foreground(red),
	}
}

// Teams draws the team selector, the current team and its total runs.
func (r *Renderer) Teams(st store.State) {
	var b strings.Builder
	b.WriteString(r.title.Render("Multi-team Cricket Builder"))
	b.WriteString("\n\n")

	labels := make([]string, 0, len(st.Teams))
	for i := range st.Teams {
		label := teamLabel(i)
		if i == st.CurrentTeam {
			labels = append(labels, r.active.Render("["+label+"]"))
		} else {
			labels = append(labels, r.inactive.Render(label))
		}
	}
	b.WriteString(strings.Join(labels, "  "))
	b.WriteString("\n\n")

	team := st.Teams[st.CurrentTeam]
	b.WriteString(r.heading.Render(teamLabel(st.CurrentTeam)))
	b.WriteString(" ")
	b.WriteString(r.stat.Render(fmt.Sprintf("(%d players)", len(team))))
	b.WriteString("\n")

	for _, p := range team {
		fmt.Fprintf(&b, "  %s  %s\n", p.Name, r.muted.Render("Runs: ")+r.stat.Render(runsText(p.Runs)))
	}
	if len(team) > 0 {
		b.WriteString("\n")
		b.WriteString(r.stat.Render(fmt.Sprintf("Total Runs: %d", team.TotalRuns())))
		b.WriteString("\n")
	}
	io.WriteString(r.out, b.String())
}

// Players draws the roster, marking players already in the current team.
func (r *Renderer) Players(st store.State) {
	var b strings.Builder
	b.WriteString(r.heading.Render("Available Players"))
	b.WriteString("\n")

	team := st.Teams[st.CurrentTeam]
	for _, p := range st.Roster {
		action := r.active.Render("Add")
		if team.Contains(p.Name) {
			action = r.muted.Render("Added")
		}
		fmt.Fprintf(&b, "  %s  %s  %s\n", p.Name, r.muted.Render("Runs: ")+r.active.Render(runsText(p.Runs)), action)
	}
	if len(st.Roster) == 0 {
		b.WriteString(r.muted.Render("  no players loaded"))
		b.WriteString("\n")
	}
	io.WriteString(r.out, b.String())
}

// Loading draws the in-flight indicator.
func (r *Renderer) Loading() {
	io.WriteString(r.out, r.muted.Render("Loading...")+"\n")
}

// Error draws a load error message.
func (r *Renderer) Error(msg string) {
	io.WriteString(r.out, r.errStyle.Render(msg)+"\n")
}

// Info draws a one-line confirmation.
func (r *Renderer) Info(format string, args ...interface{}) {
	io.WriteString(r.out, fmt.Sprintf(format, args...)+"\n")
}

// teamLabel is the one-based name users see for a team index.
func teamLabel(index int) string {
	return fmt.Sprintf("Team %d", index+1)
}

// runsText shows the feed's marker for players with no data. Only the team
// total counts them as zero.
func runsText(r domain.Runs) string {
	return r.String()
}
