// Package config provides YAML-based configuration loading for the heist
// game. Only presentation timing and display options are configurable;
// gameplay constants live in the heist package.
package config

import (
	"time"
	"unicode/utf8"
)

// HeistConfig contains all configuration for the Array Heist game.
type HeistConfig struct {
	Search    SearchConfig    `yaml:"search"`
	Animation AnimationConfig `yaml:"animation"`
	Display   DisplayConfig   `yaml:"display"`
	Hints     HintsConfig     `yaml:"hints"`
}

// SearchConfig controls the step-wise search animation.
type SearchConfig struct {
	StepDelayMS  int `yaml:"step_delay_ms"`
	ResultHoldMS int `yaml:"result_hold_ms"`
}

// AnimationConfig controls highlight durations.
type AnimationConfig struct {
	FlashMS int `yaml:"flash_ms"`
}

// DisplayConfig controls how the board is drawn.
type DisplayConfig struct {
	EmptyGlyph  string `yaml:"empty_glyph"` // single rune drawn in empty slots
	ShowIndices bool   `yaml:"show_indices"`
}

// HintsConfig controls the secret hint.
type HintsConfig struct {
	Enabled bool `yaml:"enabled"`
}

const (
	minDelayMS = 0
	maxDelayMS = 5000
)

// Validate clamps out-of-range values back into something playable.
func (c *HeistConfig) Validate() {
	c.Search.StepDelayMS = clampMS(c.Search.StepDelayMS)
	c.Search.ResultHoldMS = clampMS(c.Search.ResultHoldMS)
	c.Animation.FlashMS = clampMS(c.Animation.FlashMS)

	if utf8.RuneCountInString(c.Display.EmptyGlyph) != 1 {
		c.Display.EmptyGlyph = DefaultHeistConfig().Display.EmptyGlyph
	}
}

// StepDelay returns the pause between search steps.
func (c HeistConfig) StepDelay() time.Duration {
	return time.Duration(c.Search.StepDelayMS) * time.Millisecond
}

// ResultHold returns how long the final search window stays highlighted.
func (c HeistConfig) ResultHold() time.Duration {
	return time.Duration(c.Search.ResultHoldMS) * time.Millisecond
}

// Flash returns the insert/delete highlight duration.
func (c HeistConfig) Flash() time.Duration {
	return time.Duration(c.Animation.FlashMS) * time.Millisecond
}

func clampMS(v int) int {
	if v < minDelayMS {
		return minDelayMS
	}
	if v > maxDelayMS {
		return maxDelayMS
	}
	return v
}
