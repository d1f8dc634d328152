// Command mosaic is the thin CLI wrapper around the core engine: flag
// parsing, logging setup, config/session load, crash-recovery marker
// lifecycle, and wiring the platform window to the app shell.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	gioapp "gioui.org/app"

	"github.com/mosaicterm/mosaic/internal/app"
	"github.com/mosaicterm/mosaic/internal/config"
	"github.com/mosaicterm/mosaic/internal/platform"
	"github.com/mosaicterm/mosaic/internal/session"
	"github.com/mosaicterm/mosaic/internal/state"
)

// Version is set at build time via ldflags.
var Version = ""

var (
	configPath  = flag.String("config", "", "path to config file")
	projectRoot = flag.String("project", ".", "project root directory")
	shellFlag   = flag.String("shell", "", "shell command for the initial terminal pane (default $SHELL)")
	debugFlag   = flag.Bool("debug", false, "enable debug logging")
	versionFlag = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("mosaic version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	logger := setupLogging()
	slog.SetDefault(logger)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	workDir, err := filepath.Abs(*projectRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve project root: %v\n", err)
		os.Exit(1)
	}

	if err := state.Init(); err != nil {
		logger.Warn("failed to load persisted UI state", "err", err)
	}

	marker, crashed, err := session.AcquireRunningMarker()
	if err != nil {
		logger.Warn("failed to acquire running marker", "err", err)
	}

	ref := &windowRef{}
	a, err := app.New(cfg, workDir, *shellFlag, ref, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	// A leftover marker means the previous run died without a clean exit:
	// restore the full session, reopening editor tabs whose files still
	// exist. A clean previous exit restores preferences only.
	if crashed {
		logger.Warn("previous run did not exit cleanly; restoring session")
		if snap, err := session.LoadSnapshot(); err == nil {
			a.RestoreSnapshot(snap)
		} else {
			logger.Warn("failed to load session snapshot", "err", err)
		}
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic in main loop", "recovered", r, "stack", string(debug.Stack()))
				os.Exit(1)
			}
		}()

		width, height := state.GetWindowSize()
		win := platform.NewWindow("mosaic", width, height, a)
		ref.win = win
		if err := win.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "window error: %v\n", err)
		}

		if err := session.SaveSnapshot(a.SnapshotState()); err != nil {
			logger.Warn("failed to save session snapshot", "err", err)
		}
		a.Close()
		if marker != nil {
			_ = marker.Release()
		}
		os.Exit(0)
	}()

	gioapp.Main()
}

// windowRef breaks the construction cycle between app.New (which needs
// an invalidator to hand background pollers a redraw trigger) and
// platform.NewWindow (which needs the already-built app.App as its
// Handler): the app is built against a ref whose underlying window is
// filled in once the window itself exists, a few lines later on the
// same goroutine and before any background poller could call Invalidate.
type windowRef struct {
	win *platform.Window
}

func (r *windowRef) Invalidate() {
	if r.win != nil {
		r.win.Invalidate()
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func setupLogging() *slog.Logger {
	level := slog.LevelInfo
	if *debugFlag {
		level = slog.LevelDebug
	}
	logPath := filepath.Join(filepath.Dir(config.ConfigPath()), "debug.log")
	var writer io.Writer = io.Discard
	if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
		writer = f
	}
	return slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level}))
}

func effectiveVersion(v string) string {
	if v != "" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "devel"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			return "devel+" + setting.Value
		}
	}
	return "devel"
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mosaic [options]\n\n")
		fmt.Fprintf(os.Stderr, "A GPU-accelerated multi-pane terminal, editor, and git diff viewer.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}
