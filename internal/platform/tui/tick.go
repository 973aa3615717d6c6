// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one simulation step. Gen identifies the game model run
// that scheduled it; ticks from an older run are ignored.
type TickMsg struct {
	Gen uint64
	At  time.Time
}

// tickCmd schedules the next tick for generation gen.
func tickCmd(gen uint64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, At: t}
	})
}
