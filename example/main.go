// Command example demonstrates the wallconfig consumer loop: it creates a
// config file, starts the store and watcher, then reacts to edits until
// interrupted. Run it and edit the printed config path to see reloads.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"wallconfig"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	dir, err := os.MkdirTemp("", "wallconfig-example")
	if err != nil {
		logger.Error("failed to create temp dir", slog.Any("error", err))
		os.Exit(1)
	}
	defer os.RemoveAll(dir)

	// Seed a wallpaper directory and an initial config.
	wallpapers := filepath.Join(dir, "wallpapers")
	if err := os.Mkdir(wallpapers, 0755); err != nil {
		logger.Error("failed to create wallpaper dir", slog.Any("error", err))
		os.Exit(1)
	}
	image := filepath.Join(wallpapers, "forest.png")
	if err := os.WriteFile(image, []byte("png"), 0644); err != nil {
		logger.Error("failed to create image", slog.Any("error", err))
		os.Exit(1)
	}

	configPath := filepath.Join(dir, "config.toml")
	initial := fmt.Sprintf(`[default]
path = %q

[HDMI-1]
path = %q
duration = "5m"
mode = "fill"
`, image, wallpapers)
	if err := os.WriteFile(configPath, []byte(initial), 0644); err != nil {
		logger.Error("failed to write config", slog.Any("error", err))
		os.Exit(1)
	}

	// Initial load is fatal: the daemon must not start on a broken file.
	store, err := wallconfig.New(configPath, logger)
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := store.ListenChanges(ctx); err != nil {
		logger.Error("failed to start watcher", slog.Any("error", err))
		os.Exit(1)
	}

	printState(store)
	fmt.Printf("\nEdit %s to trigger a reload, Ctrl-C to quit.\n\n", configPath)

	// The consumer loop: the single place that mutates the store.
	for {
		select {
		case <-store.Changes():
			if store.TryUpdate() {
				printState(store)
			}
		case <-ctx.Done():
			return
		}
	}
}

func printState(store *wallconfig.Store) {
	fmt.Println("configured outputs:", store.Outputs())
	fmt.Println("watched paths:     ", store.Paths())
	for _, name := range append(store.Outputs(), "DP-2") {
		settings := store.Resolve(name)
		fmt.Printf("  %-8s path=%q duration=%s extra=%v\n",
			name, settings.Path, settings.Duration, settings.Extra)
	}
}
