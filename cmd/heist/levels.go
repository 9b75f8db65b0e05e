package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/array-heist/internal/games/heist"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels",
	Long:  `Shows every level with its secret length and whether the reverse must be built.`,
	Args:  cobra.NoArgs,
	Run:   runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	fmt.Printf("Levels (%d seconds each, %d slots):\n", heist.TimeLimit, heist.Capacity)
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, r := range heist.Rules {
		if len(r.Name) > maxNameLen {
			maxNameLen = len(r.Name)
		}
	}

	fmt.Printf("  %-5s  %-*s  %s\n", "Level", maxNameLen, "Name", "Target")
	fmt.Printf("  %-5s  %-*s  %s\n", "-----", maxNameLen, "----", "------")

	for _, r := range heist.Rules {
		fmt.Printf("  %-5d  %-*s  %s\n", r.ID, maxNameLen, r.Name, r.Describe())
	}

	fmt.Println()
	fmt.Println("Run 'heist play --level <n>' to play one.")
}
