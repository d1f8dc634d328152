// Package app is the root shell: it owns the session tree and registry,
// the input router, the keymap, the background pollers, and the frame
// pacing/resize debounce state, and exposes the platform.Handler surface
// (HandleInput/HandleIME/Paint) the windowing layer drives. There is no
// message queue here, just platform events arriving on Window.Run's
// goroutine and a Paint call once per frame.
package app

import (
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/sfnt"

	"github.com/mosaicterm/mosaic/internal/atlas"
	"github.com/mosaicterm/mosaic/internal/config"
	"github.com/mosaicterm/mosaic/internal/dragdrop"
	"github.com/mosaicterm/mosaic/internal/editor"
	"github.com/mosaicterm/mosaic/internal/frameloop"
	"github.com/mosaicterm/mosaic/internal/fswatch"
	"github.com/mosaicterm/mosaic/internal/gitpoll"
	"github.com/mosaicterm/mosaic/internal/ime"
	"github.com/mosaicterm/mosaic/internal/input"
	"github.com/mosaicterm/mosaic/internal/keymap"
	"github.com/mosaicterm/mosaic/internal/layout"
	"github.com/mosaicterm/mosaic/internal/pane"
	"github.com/mosaicterm/mosaic/internal/render"
	"github.com/mosaicterm/mosaic/internal/session"
	"github.com/mosaicterm/mosaic/internal/termpane"
	"github.com/mosaicterm/mosaic/internal/theme"
)

// invalidator is satisfied by platform.Window; kept as a narrow interface
// so this package doesn't import platform (platform imports input/ime,
// not the other way around).
type invalidator interface {
	Invalidate()
}

// App is the root shell. Construct with New and drive it through the
// platform.Handler interface (see handler.go).
type App struct {
	cfg     *config.Config
	workDir string
	win     invalidator
	logger  *slog.Logger

	session *session.Session
	router  *input.Router
	keymap  *keymap.Registry
	palette theme.Palette

	renderer *render.Renderer
	atl      *atlas.Atlas
	raster   *atlas.Rasterizer
	cell     render.CellMetrics
	dec      layout.Decorations

	drag *dragdrop.State

	gitPoller *frameloop.Poller[gitpoll.GitStatus]
	fswatcher *fswatch.Watcher
	histCache *gitpoll.HistoryCache

	pacer   *frameloop.Pacer
	resizer *frameloop.ResizeDebouncer
	area    layout.Rect

	// paneRects is refreshed at the top of HandleInput and Paint from
	// the layout tree's own ComputeRects; it's cached on the struct
	// rather than recomputed by every router call within one event so
	// Process and the renderer see the same geometry.
	paneRects []layout.PaneRect

	lastGitStatus gitpoll.GitStatus
	haveGitStatus bool

	diffPaneID pane.Id
	hasDiff    bool
	modal      modalState
	preview    previewState

	// zoomed temporarily gives the focused tiled pane the whole tiling
	// area; the tree itself is untouched, so toggling back restores the
	// exact prior layout.
	zoomed bool

	// imeSinks holds one ime.Sink per pane that has ever received IME
	// events, keyed by pane id so a composition in progress survives
	// across frames until it commits or the pane closes.
	imeSinks map[pane.Id]*ime.Sink

	statusMsg    string
	statusExpiry time.Time
	statusError  bool
}

// cellPixelSize is the monospace glyph's nominal pixel size; cell.Width
// and cell.Height are derived from it since the rasterizer works in glyph
// pixels, not dp.
const cellPixelSize = 16

// New builds the root shell rooted at workDir, with an initial terminal
// pane occupying the whole tree. shell is the command the first terminal
// pane runs (empty string defaults to $SHELL inside termpane.NewVTBackend).
func New(cfg *config.Config, workDir string, shell string, win invalidator, logger *slog.Logger) (*App, error) {
	registry := pane.NewRegistry()
	rootID := registry.Alloc()

	backend, err := termpane.NewVTBackend(shell, nil, 80, 24)
	if err != nil {
		return nil, err
	}
	backend.SetWake(win.Invalidate)
	registry.Put(rootID, termpane.New(rootID, backend, filepath.Base(workDir)))

	sess := session.New(rootID)
	sess.Registry = registry

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	for key, cmd := range cfg.Keymap.Overrides {
		km.RegisterBinding(keymap.Binding{Key: key, Command: cmd, Context: "global"})
	}

	resolved := theme.ResolveTheme(cfg, workDir)
	pal := theme.Resolve(resolved)

	monoFont, err := sfnt.Parse(gomono.TTF)
	if err != nil {
		return nil, err
	}
	raster := atlas.NewRasterizer(monoFont, cellPixelSize)

	gitP := frameloop.NewPoller(1500*time.Millisecond, func() (gitpoll.GitStatus, error) {
		return gitpoll.RefreshStatus(workDir)
	})
	gitP.SetWake(win.Invalidate)
	gitP.Start()

	watcher, err := fswatch.New()
	if err != nil {
		return nil, err
	}
	watcher.SetWake(win.Invalidate)
	_ = watcher.Add(workDir)

	// The numstat cache is an optimization; a failed open (read-only
	// config dir, corrupt db) leaves histCache nil, and openDiffPane then
	// loads no commit history at all.
	histCache, err := gitpoll.OpenHistoryCache(filepath.Join(filepath.Dir(config.ConfigPath()), "numstat.db"))
	if err != nil {
		logger.Warn("numstat cache unavailable", "err", err)
		histCache = nil
	}

	atl := atlas.New(atlas.DefaultSize)
	a := &App{
		cfg:       cfg,
		workDir:   workDir,
		win:       win,
		logger:    logger,
		session:   sess,
		keymap:    km,
		palette:   pal,
		renderer:  render.NewRenderer(atl),
		atl:       atl,
		raster:    raster,
		cell:      render.CellMetrics{Width: cellPixelSize * 0.6, Height: cellPixelSize * 1.2, Ascent: cellPixelSize},
		dec:       layout.Decorations{Gap: 2, Padding: 4, TabBarHeight: 24},
		drag:      &dragdrop.State{},
		gitPoller: gitP,
		fswatcher: watcher,
		histCache: histCache,
		pacer:     frameloop.NewPacer(),
		resizer:   frameloop.NewResizeDebouncer(),
		imeSinks:  make(map[pane.Id]*ime.Sink),
	}
	a.router = input.NewRouter(sess.Tree, km)
	a.router.SetOnFocusChange(a.commitPreeditOn)
	a.router.SetFocused(rootID)
	return a, nil
}

// sinkFor returns id's IME sink, creating one on first use.
func (a *App) sinkFor(id pane.Id) *ime.Sink {
	if s, ok := a.imeSinks[id]; ok {
		return s
	}
	s := ime.NewSink()
	a.imeSinks[id] = s
	return s
}

// commitPreeditOn forces any in-progress IME composition on pane old to
// commit as plain text, called by the router just before focus moves
// away from it so a half-composed character never re-surfaces on the
// newly focused pane (spec.md §4.7's commit-before-refocus contract).
func (a *App) commitPreeditOn(old pane.Id) {
	sink, ok := a.imeSinks[old]
	if !ok || !sink.HasMarkedText() {
		return
	}
	content, ok := a.session.Registry.Get(old)
	if !ok {
		return
	}
	switch c := content.(type) {
	case *editor.Pane:
		sink.CommitPreedit(c.State())
	case *termpane.Pane:
		sink.CommitPreedit(c)
	}
}

// Close releases the background pollers and watchers and closes every
// pane's backing resources (PTYs, file handles).
func (a *App) Close() {
	a.gitPoller.Stop()
	_ = a.fswatcher.Close()
	if a.histCache != nil {
		_ = a.histCache.Close()
	}
	for _, id := range a.session.Registry.Ids() {
		a.session.Registry.Remove(id)
	}
}

// setStatus sets the transient status-bar message shown for duration d.
func (a *App) setStatus(msg string, isError bool, d time.Duration) {
	a.statusMsg = msg
	a.statusError = isError
	a.statusExpiry = time.Now().Add(d)
	a.session.BumpChrome()
}

// focusedContent resolves the currently focused pane's content, if any.
func (a *App) focusedContent() (pane.Content, bool) {
	id, ok := a.router.Focused()
	if !ok {
		return nil, false
	}
	return a.session.Registry.Get(id)
}
