package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/overlay-arena/internal/core"
	"github.com/vovakirdan/overlay-arena/internal/session"
	"github.com/vovakirdan/overlay-arena/internal/storage"
)

var (
	flagFrames   uint64
	flagOutDir   string
	flagMoves    string
	flagFormat   string
	flagInterval time.Duration
	flagNoSave   bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render frames headlessly to files",
	Long: `Run the arena without a display and write every frame to a directory.

Moves are a comma-separated script replayed one per interval:
  u d l r ul ur dl dr   - Move
  fire                  - Fire at the nearest enemy in range
  exit                  - End the run

Examples:
  arena render --frames 30 --out ./frames
  arena render --frames 120 --moves r,r,fire,ul --format png
  arena render --frames 10 --format bmp --interval 50ms`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().Uint64Var(&flagFrames, "frames", 30, "Stop after this many frames (0 = until the run ends)")
	renderCmd.Flags().StringVar(&flagOutDir, "out", "frames", "Output directory")
	renderCmd.Flags().StringVar(&flagMoves, "moves", "", "Comma-separated command script")
	renderCmd.Flags().StringVar(&flagFormat, "format", "", "Frame codec (overrides the config)")
	renderCmd.Flags().DurationVar(&flagInterval, "interval", 0, "Delay between scripted moves (default: one tick)")
	renderCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run in the database")
}

func runRender(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadArena()
	if err != nil {
		return err
	}
	if flagFormat != "" {
		cfg.Encoding.Format = flagFormat
	}

	logger, closeLog, err := newLogger("arena-render", false)
	if err != nil {
		return err
	}
	defer closeLog()

	script, err := core.ParseScript(flagMoves, core.DefaultSlots())
	if err != nil {
		return err
	}

	var store *storage.Store
	if !flagNoSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open runs database", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	ctx, stop := signalContext()
	defer stop()

	res, err := session.RunHeadless(ctx, session.HeadlessConfig{
		Arena:      cfg,
		Script:     script,
		Interval:   flagInterval,
		MaxFrames:  flagFrames,
		OutDir:     flagOutDir,
		Difficulty: string(preset),
		Store:      store,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	logger.Info("frames written", "dir", flagOutDir, "count", len(res.Files))
	fmt.Printf("%d frames in %s (%s)\n", len(res.Files), flagOutDir, session.Summary(res.Result))
	return nil
}
