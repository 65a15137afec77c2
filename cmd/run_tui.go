// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Radia Labs

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/radialab/sweepbench/pkg/sweep"
)

const tuiEventLogSize = 8

type sweepProgressMsg sweep.Event

type sweepDoneMsg struct {
	results []sweep.Result
	err     error
}

type runModel struct {
	bar    progress.Model
	cancel context.CancelFunc

	current int
	total   int
	status  sweep.Status
	events  []string
	done    bool
	err     error
	results int
}

func newRunModel(cancel context.CancelFunc) runModel {
	return runModel{
		bar:    progress.New(progress.WithDefaultGradient()),
		cancel: cancel,
		total:  sweep.DeclaredTotal,
		status: sweep.StatusRunning,
	}
}

// runSweepTUI executes the sweep in a worker goroutine, feeding progress
// events into the TUI with program.Send. The TUI quitting early cancels the
// run; the worker is always drained before returning.
func runSweepTUI(ctx context.Context, seq *sweep.Sequencer) ([]sweep.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newRunModel(cancel))

	seq.SetSink(sweep.SinkFunc(func(e sweep.Event) {
		p.Send(sweepProgressMsg(e))
	}))
	defer seq.SetSink(nil)

	done := make(chan sweepDoneMsg, 1)
	go func() {
		results, err := seq.Run(ctx)
		msg := sweepDoneMsg{results: results, err: err}
		done <- msg
		p.Send(msg)
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return nil, fmt.Errorf("TUI error: %v", err)
	}

	msg := <-done
	return msg.results, msg.err
}

func (m runModel) Init() tea.Cmd {
	return nil
}

func (m runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 8
		if m.bar.Width > 72 {
			m.bar.Width = 72
		}

	case sweepProgressMsg:
		e := sweep.Event(msg)
		m.status = e.Status
		if e.Current > m.current {
			m.current = e.Current
		}
		if e.Total > 0 {
			m.total = e.Total
		}
		line := e.Message
		if e.Status == sweep.StatusError {
			line = "ERROR " + line
		}
		m.events = append(m.events, line)
		if len(m.events) > tuiEventLogSize {
			m.events = m.events[len(m.events)-tuiEventLogSize:]
		}

	case sweepDoneMsg:
		m.done = true
		m.err = msg.err
		m.results = len(msg.results)
		return m, tea.Quit
	}

	return m, nil
}

func (m runModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	var s strings.Builder
	s.WriteString(titleStyle.Render("Sweepbench - Sweep Run"))
	s.WriteString("\n\n")

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.current) / float64(m.total)
	}
	s.WriteString("  " + m.bar.ViewAs(percent) + "\n")
	s.WriteString(labelStyle.Render(fmt.Sprintf("  spot %d/%d  status: %s", m.current, m.total, m.status)))
	s.WriteString("\n\n")

	for _, line := range m.events {
		if strings.HasPrefix(line, "ERROR ") {
			s.WriteString("  " + errorStyle.Render(line) + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}

	if m.done {
		if m.err != nil {
			s.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Run failed: %v", m.err)) + "\n")
		} else {
			s.WriteString(fmt.Sprintf("\n  %d measurements collected\n", m.results))
		}
	} else {
		s.WriteString("\n" + labelStyle.Render("  q to cancel") + "\n")
	}

	return s.String()
}
