package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/kluelabs/extdev/pkg/extdev/config"
	"github.com/kluelabs/extdev/pkg/extdev/output"
	"github.com/kluelabs/extdev/pkg/extdev/watch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runWatch is the root command handler. It polls the watched tree and
// reports changed files until interrupted.
func runWatch(_ *cobra.Command, args []string) error {
	// Determine watch path
	watchPath := "."
	if len(args) > 0 {
		watchPath = args[0]
	} else if dir := viper.GetString("watch.dir"); dir != "" {
		watchPath = dir
	}

	// Expand ~ in path
	expandedPath, err := config.ExpandPath(watchPath)
	if err != nil {
		return fmt.Errorf("failed to expand path: %w", err)
	}

	// Convert to absolute path
	absPath, err := filepath.Abs(expandedPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	// Verify path exists and is accessible
	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", absPath)
		}
		return fmt.Errorf("cannot access path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", absPath)
	}

	ws := buildWatchSet(absPath)

	// Get report renderer
	outFormat := viper.GetString("output")
	if outFormat == "" {
		outFormat = config.DefaultOutput
	}
	renderer, err := output.Get(outFormat)
	if err != nil {
		return fmt.Errorf("unknown output format %q: available formats are %v", outFormat, output.Available())
	}

	extensionName := viper.GetString("extension.name")
	interval := viper.GetDuration("watch.interval")
	if interval <= 0 {
		interval = config.DefaultInterval
	}

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	interrupted := false
	go func() {
		<-sigChan
		printInfo("\nInterrupted, stopping watch...")
		interrupted = true
		cancel()
	}()

	if !getQuiet() {
		extList := "all files"
		if len(ws.Extensions) > 0 {
			extList = strings.Join(ws.Extensions, ", ")
		}
		printInfo("Watching %s for changes to %s (every %v)", absPath, extList, interval)
	}

	det := watch.NewDetector(ws, watch.Options{
		Interval: interval,
		OnReady: func(stats watch.Stats) {
			printInfo("Tracking %s (%s)", english.Plural(stats.Files, "file", ""), humanize.Bytes(uint64(stats.Bytes)))
			printVerbose("Baseline scan took %v, %d unreadable", stats.Elapsed.Round(time.Millisecond), stats.Unreadable)
		},
		OnChanges: func(changes watch.ChangeSet) {
			report := buildReport(absPath, extensionName, changes)

			var buf bytes.Buffer
			if err := renderer.Render(&buf, report); err != nil {
				printError("Failed to render report: %v", err)
				return
			}
			fmt.Print(buf.String())
		},
	})

	if err := det.Run(ctx); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	if interrupted {
		printInfo("Watcher stopped")
	}

	return nil
}

// buildReport converts a detector change set into a renderable report.
func buildReport(root, extension string, changes watch.ChangeSet) *output.Report {
	outChanges := make([]output.Change, len(changes))
	for i, c := range changes {
		outChanges[i] = output.Change{
			Path:    c.Path,
			Deleted: c.Kind == watch.Deleted,
		}
	}

	return &output.Report{
		Root:      root,
		Extension: extension,
		Changes:   outChanges,
		At:        time.Now(),
	}
}
