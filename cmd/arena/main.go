// arena runs the pixel-overlay arena: a player and a swarm of pursuing
// enemies composited onto a canvas and streamed as encoded frames.
//
// Usage:
//
//	arena play               - Play in the terminal
//	arena window             - Play in a desktop window (needs -tags ebiten)
//	arena render             - Render frames headlessly to files
//	arena serve              - Start SSH server for remote play
//	arena scores             - Show stored runs
//	arena codecs             - List frame codecs
//	arena config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>       - Arena config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--db <path>           - Runs database (default: ~/.arcade/arena.db)
//	--log <path>          - Append logs to a file
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/overlay-arena/internal/config"
	"github.com/vovakirdan/overlay-arena/internal/platform/window"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagDBPath     string
	flagLogPath    string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, window.ErrUnavailable) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Overlay Arena - a composited pursuit game",
	// Commands return errors; main prints them once
	SilenceErrors: true,
	SilenceUsage:  true,
	Long: `Overlay Arena draws a player and a batch of pursuing enemies as pixel
overlays on a canvas. A render worker composites and encodes one frame per
ready token issued by the driving loop; frames are shown in the terminal, a
window, over SSH, or written to files.

Examples:
  arena play
  arena play --difficulty hard
  arena render --frames 60 --out ./frames --moves r,r,fire
  arena serve --ssh :2222
  arena scores --browse`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to arena config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/arena.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Append logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(codecsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadArena resolves the arena config and applies the difficulty preset.
func loadArena() (config.ArenaConfig, config.DifficultyPreset, error) {
	cfg, err := config.LoadArena(flagConfig)
	if err != nil {
		return cfg, "", err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, "", err
	}
	config.ApplyArenaPreset(&cfg, preset)
	return cfg, preset, cfg.Validate()
}

// newLogger builds the command logger. Interactive commands own the
// terminal, so they log only when --log is given.
func newLogger(prefix string, interactive bool) (*log.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogPath != "":
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
