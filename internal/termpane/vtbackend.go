package termpane

import (
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/charmbracelet/x/xpty"
	"github.com/hinshun/vt10x"
)

// vt10x keeps its glyph attribute bits unexported; these mirror its
// Mode bit layout (reverse, underline, bold, gfx, italic, blink, wrap).
const (
	attrReverse = 1 << iota
	attrUnderline
	attrBold
	attrGfx
	attrItalic
)

// VTBackend is the default Backend, pairing a vt10x VT100/xterm state
// machine with a PTY spawned via xpty. The PTY read pump runs on its
// own background goroutine and only ticks the grid generation; Process
// is what the main loop calls to observe the result.
type VTBackend struct {
	mu   sync.Mutex
	term vt10x.Terminal
	pty  xpty.Pty
	cmd  *exec.Cmd

	genMu   sync.Mutex
	gen     uint64
	pending bool
	wake    func()
}

// NewVTBackend spawns shell as a PTY child and attaches a vt10x state
// machine sized cols x rows.
func NewVTBackend(shell string, args []string, cols, rows int) (*VTBackend, error) {
	if shell == "" {
		shell = os.Getenv("SHELL")
		if shell == "" {
			shell = "/bin/sh"
		}
	}
	p, err := xpty.NewPty(cols, rows)
	if err != nil {
		return nil, err
	}
	term := vt10x.New(vt10x.WithSize(cols, rows))

	cmd := exec.Command(shell, args...)
	if err := p.Start(cmd); err != nil {
		p.Close()
		return nil, err
	}

	b := &VTBackend{term: term, pty: p, cmd: cmd}
	go b.readPump()
	return b, nil
}

// SetWake installs fn to be called (from the read-pump goroutine) after
// new PTY output lands, so the main loop learns a redraw is due without
// polling. fn must be cheap and allocation-free.
func (b *VTBackend) SetWake(fn func()) {
	b.genMu.Lock()
	b.wake = fn
	b.genMu.Unlock()
}

func (b *VTBackend) readPump() {
	buf := make([]byte, 32*1024)
	for {
		n, err := b.pty.Read(buf)
		if n > 0 {
			b.mu.Lock()
			_, _ = b.term.Write(buf[:n])
			b.mu.Unlock()
			b.genMu.Lock()
			b.pending = true
			wake := b.wake
			b.genMu.Unlock()
			if wake != nil {
				wake()
			}
		}
		if err != nil {
			return
		}
	}
}

func (b *VTBackend) Write(p []byte) (int, error) {
	return b.pty.Write(p)
}

// Process bumps the grid generation exactly once per call if the PTY
// read pump delivered new bytes since the last Process; it never blocks
// on I/O itself: the main thread never awaits I/O.
func (b *VTBackend) Process() error {
	b.genMu.Lock()
	defer b.genMu.Unlock()
	if b.pending {
		b.gen++
		b.pending = false
	}
	return nil
}

func (b *VTBackend) Grid() Grid {
	b.mu.Lock()
	defer b.mu.Unlock()

	cols, rows := b.term.Size()
	g := Grid{Cols: cols, Rows: rows, Cells: make([][]Cell, rows)}
	for y := 0; y < rows; y++ {
		row := make([]Cell, cols)
		for x := 0; x < cols; x++ {
			gl := b.term.Cell(x, y)
			row[x] = Cell{
				Char:      gl.Char,
				Bold:      gl.Mode&attrBold != 0,
				Italic:    gl.Mode&attrItalic != 0,
				Underline: gl.Mode&attrUnderline != 0,
			}
		}
		g.Cells[y] = row
	}
	return g
}

func (b *VTBackend) Resize(cols, rows int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.term.Resize(cols, rows)
	return b.pty.Resize(cols, rows)
}

func (b *VTBackend) Cursor() Cursor {
	b.mu.Lock()
	defer b.mu.Unlock()
	c := b.term.Cursor()
	return Cursor{Col: c.X, Row: c.Y, Visible: b.term.CursorVisible()}
}

func (b *VTBackend) GridGeneration() uint64 {
	b.genMu.Lock()
	defer b.genMu.Unlock()
	return b.gen
}

// Search scans the visible grid case-insensitively for query. The
// backend has no addressable scrollback beyond what vt10x keeps
// on-screen, so matches are limited to the current viewport.
func (b *VTBackend) Search(query string) []Match {
	if query == "" {
		return nil
	}
	needle := strings.ToLower(query)
	b.mu.Lock()
	defer b.mu.Unlock()

	cols, rows := b.term.Size()
	var matches []Match
	for y := 0; y < rows; y++ {
		var sb strings.Builder
		for x := 0; x < cols; x++ {
			sb.WriteRune(b.term.Cell(x, y).Char)
		}
		line := strings.ToLower(sb.String())
		for start := 0; ; {
			idx := strings.Index(line[start:], needle)
			if idx < 0 {
				break
			}
			col := start + idx
			matches = append(matches, Match{Row: y, Col: col, Len: len(needle)})
			start = col + 1
			if start >= len(line) {
				break
			}
		}
	}
	return matches
}

func (b *VTBackend) ScrollDisplay(delta int) {
	// vt10x has no separate scrollback buffer in this build; scroll
	// requests are accepted and ignored rather than erroring, matching
	// the "expected absence" error taxonomy.
	_ = delta
}

func (b *VTBackend) Close() error {
	if b.cmd != nil && b.cmd.Process != nil {
		_ = b.cmd.Process.Kill()
	}
	return b.pty.Close()
}
