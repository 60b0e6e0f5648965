package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/overlay-arena/internal/platform/window"
	"github.com/vovakirdan/overlay-arena/internal/session"
	"github.com/vovakirdan/overlay-arena/internal/storage"
)

var flagScale float64

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play the arena in a desktop window",
	Long: `Open the arena in a desktop window. The window needs a build with the
ebiten tag:

  go build -tags ebiten ./cmd/arena

Examples:
  arena window
  arena window --scale 1.5`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window pixels per canvas pixel")
}

func runWindow(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadArena()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("arena-window", false)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	run, err := session.NewRun(session.RunConfig{
		Arena:      cfg,
		Difficulty: string(preset),
		Source:     "window",
		Store:      store,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	opts := window.DefaultOptions()
	opts.Scale = flagScale

	ctx, stop := signalContext()
	defer stop()

	if err := window.Run(ctx, run, opts); err != nil {
		if errors.Is(err, window.ErrUnavailable) {
			fmt.Fprintln(os.Stderr, "The window surface requires the ebiten build tag.")
			fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/arena window` or build with `-tags ebiten`.")
		}
		return err
	}
	res, _ := run.Outcome()
	fmt.Println(session.Summary(res))
	return nil
}
