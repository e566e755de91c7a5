package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/visionbox-team/pixelfield/config"
	"github.com/visionbox-team/pixelfield/scene"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output generation and perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, snapshots and config")
	seed := flag.Uint64("seed", 0, "Base seed (0 = config, then time-based)")
	imagePath := flag.String("image", "", "Image for the image pattern (overrides image.path)")
	points := flag.Int("points", 0, "Point count (0 = use config)")
	sequence := flag.String("sequence", "", "Comma-separated pattern names (empty = use config)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	replay := flag.String("replay", "", "Snapshot JSON to show before the sequence starts")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := scene.Options{
		Seed:      *seed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		Headless:  *headless,
		ImagePath: *imagePath,
		Points:    *points,
		Replay:    *replay,
	}
	if *sequence != "" {
		opts.Sequence = strings.Split(*sequence, ",")
	}

	if *headless {
		// Headless mode - pure CPU, no raylib window
		s, err := scene.New(cfg, opts)
		if err != nil {
			slog.Error("failed to start scene", "error", err)
			os.Exit(1)
		}
		defer s.Unload()

		slog.Info("starting headless run",
			"max_frames", *maxFrames,
			"output_dir", *outputDir,
		)

		for {
			s.UpdateHeadless()

			if *maxFrames > 0 && int(s.Frame()) >= *maxFrames {
				slog.Info("max frames reached", "frame", s.Frame(), "generations", s.Generation())
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	s, err := scene.New(cfg, opts)
	if err != nil {
		slog.Error("failed to start scene", "error", err)
		os.Exit(1)
	}
	defer s.Unload()

	for !rl.WindowShouldClose() {
		s.Update()
		s.Draw()

		if *maxFrames > 0 && int(s.Frame()) >= *maxFrames {
			break
		}
	}
}
