package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/ddopt/ddo"
	"github.com/katalvlaran/ddopt/solver"
	"github.com/katalvlaran/ddopt/tsptw"
)

var (
	watchLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	watchValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// watchModel polls a running solve and renders its progress. It never
// drives the solve itself: the view runs on its own goroutine while
// runSolve calls MaximizeWithInterrupt and closes the model's done channel
// once that returns, purely cosmetic per SPEC_FULL.md §6.
type watchModel struct {
	s       *solver.Solver[tsptw.State]
	start   time.Time
	bar     progress.Model
	done    <-chan struct{}
	stopped bool
}

func newWatchModel(s *solver.Solver[tsptw.State], start time.Time, done <-chan struct{}) watchModel {
	return watchModel{s: s, start: start, bar: progress.New(progress.WithDefaultGradient()), done: done}
}

func (m watchModel) Init() tea.Cmd {
	return tickCmd()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	case tickMsg:
		select {
		case <-m.done:
			m.stopped = true
			return m, tea.Quit
		default:
			return m, tickCmd()
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	lb := m.s.BestLowerBound()
	ub := m.s.BestUpperBound()
	g := gap(lb, ub)
	closed := 1 - g
	if closed < 0 {
		closed = 0
	}
	if closed > 1 {
		closed = 1
	}

	lbStr, ubStr := "-inf", "+inf"
	if lb != ddo.MinusInf {
		lbStr = fmt.Sprintf("%d", lb)
	}
	if ub != ddo.PlusInf {
		ubStr = fmt.Sprintf("%d", ub)
	}

	return fmt.Sprintf(
		"%s\n\n%s %s   %s %s   %s %s\n\n%s %s\n\n%s\n",
		watchLabelStyle.Render("ddosolve — live progress"),
		watchLabelStyle.Render("elapsed"), watchValueStyle.Render(time.Since(m.start).Round(time.Millisecond).String()),
		watchLabelStyle.Render("nodes"), watchValueStyle.Render(fmt.Sprintf("%d (dd %d)", m.s.Explored(), m.s.ExploredDD())),
		watchLabelStyle.Render("lb/ub"), watchValueStyle.Render(fmt.Sprintf("%s / %s (gap %.4f)", lbStr, ubStr, g)),
		watchLabelStyle.Render("closed"), m.bar.ViewAs(closed),
		"press q to detach (the solve keeps running)",
	)
}

// runWatchView drives a Bubble Tea program rendering s's live progress
// until done is closed, then returns.
func runWatchView(s *solver.Solver[tsptw.State], start time.Time, done <-chan struct{}) {
	p := tea.NewProgram(newWatchModel(s, start, done))
	_, _ = p.Run()
}
