package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Terminal owns the raw-mode lifecycle, the alternate screen, the diff
// renderer, and the input event stream. Raw mode and the alternate screen
// are restored on every exit path; Fini is idempotent and EmergencyReset
// covers panic recovery where Fini cannot run.
type Terminal struct {
	backend  Backend
	renderer *Renderer
	input    *reader
	resizeCh chan Event

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a Terminal for the current platform
func New() *Terminal {
	return &Terminal{
		backend:  newBackend(),
		resizeCh: make(chan Event, 1),
	}
}

// Init enters raw mode and the alternate screen, hides the cursor, and
// starts the input reader. Fails with ErrNotTerminal when stdio is not a
// TTY and ErrSizeTooSmall below the minimum surface.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}

	w, h := t.backend.Size()
	if w < MinWidth || h < MinHeight {
		t.backend.Fini()
		return fmt.Errorf("terminal init: %dx%d: %w", w, h, ErrSizeTooSmall)
	}

	t.renderer = NewRenderer(t.backend, w, h)
	t.input = newReader(t.backend)

	t.backend.SetResizeHandler(func(w, h int) {
		ev := Event{Type: EventResize, Width: w, Height: h}
		// Non-blocking send; drain and replace so the latest size wins
		select {
		case t.resizeCh <- ev:
		default:
			select {
			case <-t.resizeCh:
			default:
			}
			select {
			case t.resizeCh <- ev:
			default:
			}
		}
	})

	t.backend.Write(csiAltScreenEnter)
	t.backend.Write(csiCursorHide)
	t.backend.Write(csiAutoWrapOff)
	t.backend.Write(csiClear)

	t.input.start()
	t.initialized = true
	return nil
}

// Fini restores terminal state. Safe to call multiple times.
func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	t.input.stop()

	t.backend.Write(csiSGR0)
	t.backend.Write(csiCursorShow)
	t.backend.Write(csiAltScreenExit)
	// Re-enable auto-wrap after leaving the alt screen so the main buffer
	// keeps wrapping
	t.backend.Write(csiAutoWrapOn)

	t.backend.Fini()
	t.finalized = true
}

// Size returns current terminal dimensions
func (t *Terminal) Size() (int, int) {
	return t.backend.Size()
}

// Resize reallocates the render buffers for the new dimensions; the next
// Flush repaints every cell
func (t *Terminal) Resize(w, h int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.initialized || t.finalized {
		return
	}
	t.backend.Write(csiClear)
	t.renderer.Resize(w, h)
}

// Flush writes the composed frame, emitting escapes only for changed cells
func (t *Terminal) Flush(front *Buffer) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.initialized || t.finalized {
		return nil
	}
	return t.renderer.Flush(front)
}

// PollEvent waits for the next input or resize event up to timeout.
// Returns false if the timeout elapsed.
func (t *Terminal) PollEvent(timeout time.Duration) (Event, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev := <-t.resizeCh:
		return ev, true
	case ev := <-t.input.events():
		return ev, true
	case <-timer.C:
		return Event{}, false
	}
}

// EmergencyReset attempts to restore the terminal to a sane state.
// Call from panic recovery when Fini cannot be reached normally.
func EmergencyReset(w io.Writer) {
	w.Write(csiSGR0)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
