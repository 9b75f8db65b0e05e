// Package tui provides the Bubble Tea integration for the heist game.
// It handles the terminal UI loop, input mapping, and clock scheduling.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Every timer message carries the Game token of the Model that scheduled
// it. Stream ids and generations restart with each game, so the token keeps
// a message from a finished game out of the next one.

// ClockMsg is one countdown second for the stream with the given ID.
type ClockMsg struct {
	Game uuid.UUID
	ID   uint64
}

// SearchStepMsg asks for the next window of search generation Gen.
type SearchStepMsg struct {
	Game uuid.UUID
	Gen  uint64
}

// SearchDoneMsg clears the final search highlight of generation Gen.
type SearchDoneMsg struct {
	Game uuid.UUID
	Gen  uint64
}

// FlashDoneMsg ends the shift highlight of generation Gen.
type FlashDoneMsg struct {
	Game uuid.UUID
	Gen  uint64
}

// clockCmd returns a Bubble Tea command that sends one tick a second later.
// Each delivered tick schedules the next, so one stream is one chain of
// commands tagged with the same ID.
func clockCmd(game uuid.UUID, id uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return ClockMsg{Game: game, ID: id}
	})
}

func searchStepCmd(delay time.Duration, game uuid.UUID, gen uint64) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return SearchStepMsg{Game: game, Gen: gen}
	})
}

func searchDoneCmd(hold time.Duration, game uuid.UUID, gen uint64) tea.Cmd {
	return tea.Tick(hold, func(time.Time) tea.Msg {
		return SearchDoneMsg{Game: game, Gen: gen}
	})
}

func flashCmd(d time.Duration, game uuid.UUID, gen uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return FlashDoneMsg{Game: game, Gen: gen}
	})
}
