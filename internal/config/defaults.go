package config

import (
	_ "embed"
)

//go:embed defaults/heist.yaml
var defaultHeistYAML []byte

// DefaultHeistConfig returns the default Array Heist configuration.
func DefaultHeistConfig() HeistConfig {
	return HeistConfig{
		Search: SearchConfig{
			StepDelayMS:  250,
			ResultHoldMS: 250,
		},
		Animation: AnimationConfig{
			FlashMS: 350,
		},
		Display: DisplayConfig{
			EmptyGlyph:  "–",
			ShowIndices: true,
		},
		Hints: HintsConfig{
			Enabled: true,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultHeistYAML
}
