package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/overlay-arena/internal/platform/tui"
	"github.com/vovakirdan/overlay-arena/internal/session"
	"github.com/vovakirdan/overlay-arena/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the arena in the terminal",
	Long: `Start an arena run rendered in the terminal with half-block cells.

Controls:
  Arrows/WASD    - Move
  Y/U/B/N        - Move diagonally
  Space/F        - Fire at the nearest enemy in range
  C              - Copy the last frame (base64) to the clipboard
  Ctrl+S         - Save the last frame to ~/.arcade/frames
  ?              - Toggle help
  Q/Esc/Ctrl+C   - Quit

Difficulty options:
  easy   - Fewer, weaker-mixed enemies, more player hp
  normal - Pursuit speeds up as enemies fall
  hard   - More enemies of every type, starts fast
  fixed  - No progression

Examples:
  arena play
  arena play --difficulty hard
  arena play --config ./my-arena.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadArena()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("arena", true)
	if err != nil {
		return err
	}
	defer closeLog()

	// Get terminal size early for the first frame
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage
		store = nil
	} else {
		defer store.Close()
	}

	run, err := session.NewRun(session.RunConfig{
		Arena:      cfg,
		Difficulty: string(preset),
		Source:     "local",
		Store:      store,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	screenshots := ""
	if home, homeErr := os.UserHomeDir(); homeErr == nil {
		screenshots = filepath.Join(home, ".arcade", "frames")
	}

	ctx, stop := signalContext()
	defer stop()

	res, err := tui.Play(ctx, run, tui.ModelOptions{
		Clipboard:     true,
		ScreenshotDir: screenshots,
		Width:         width,
		Height:        height,
	})
	if err != nil {
		return fmt.Errorf("running arena: %w", err)
	}
	fmt.Println(session.Summary(res))
	return nil
}
