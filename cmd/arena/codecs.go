package main

import (
	"fmt"

	"github.com/spf13/cobra"

	// Registers the frame codecs
	_ "github.com/vovakirdan/overlay-arena/internal/frame"
	"github.com/vovakirdan/overlay-arena/internal/registry"
)

var codecsCmd = &cobra.Command{
	Use:   "codecs",
	Short: "List available frame codecs",
	Long:  `Shows every frame codec registered for encoding.format.`,
	Args:  cobra.NoArgs,
	Run:   runCodecs,
}

func runCodecs(_ *cobra.Command, _ []string) {
	codecs := registry.List()

	if len(codecs) == 0 {
		fmt.Println("No codecs available.")
		return
	}

	fmt.Println("Available codecs:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, c := range codecs {
		if len(c.ID) > maxIDLen {
			maxIDLen = len(c.ID)
		}
	}

	fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, "ID", "Lossless", "Title")
	fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, "--", "--------", "-----")

	for _, c := range codecs {
		lossless := "no"
		if c.Lossless {
			lossless = "yes"
		}
		fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, c.ID, lossless, c.Title)
	}

	fmt.Println()
	fmt.Println("Set encoding.format in the arena config or pass --format to 'arena render'.")
}
