//go:build windows

package terminal

import (
	"os"
	"time"

	"golang.org/x/sys/windows"
)

type windowsBackend struct {
	in  windows.Handle
	out windows.Handle

	oldInMode  uint32
	oldOutMode uint32
	restore    bool

	resizeStopCh chan struct{}
	resizeDoneCh chan struct{}
}

func newBackend() Backend {
	return &windowsBackend{
		in:  windows.Handle(os.Stdin.Fd()),
		out: windows.Handle(os.Stdout.Fd()),
	}
}

func (b *windowsBackend) Init() error {
	if err := windows.GetConsoleMode(b.in, &b.oldInMode); err != nil {
		return ErrNotTerminal
	}
	if err := windows.GetConsoleMode(b.out, &b.oldOutMode); err != nil {
		return ErrNotTerminal
	}

	// Raw input with virtual terminal sequences: no line buffering, no echo,
	// no signal generation
	inMode := b.oldInMode
	inMode &^= uint32(windows.ENABLE_ECHO_INPUT | windows.ENABLE_LINE_INPUT | windows.ENABLE_PROCESSED_INPUT | windows.ENABLE_MOUSE_INPUT)
	inMode |= windows.ENABLE_VIRTUAL_TERMINAL_INPUT
	if err := windows.SetConsoleMode(b.in, inMode); err != nil {
		return err
	}

	outMode := b.oldOutMode | windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING | windows.DISABLE_NEWLINE_AUTO_RETURN
	if err := windows.SetConsoleMode(b.out, outMode); err != nil {
		windows.SetConsoleMode(b.in, b.oldInMode)
		return err
	}

	b.restore = true
	return nil
}

func (b *windowsBackend) Fini() {
	if b.resizeStopCh != nil {
		close(b.resizeStopCh)
		<-b.resizeDoneCh
		b.resizeStopCh = nil
	}
	if b.restore {
		windows.SetConsoleMode(b.in, b.oldInMode)
		windows.SetConsoleMode(b.out, b.oldOutMode)
		b.restore = false
	}
}

func (b *windowsBackend) Size() (int, int) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(b.out, &info); err != nil {
		return MinWidth, MinHeight
	}
	w := int(info.Window.Right-info.Window.Left) + 1
	h := int(info.Window.Bottom-info.Window.Top) + 1
	return w, h
}

func (b *windowsBackend) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

// Read waits for console input with a bounded timeout
func (b *windowsBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	select {
	case <-stopCh:
		return nil, nil
	default:
	}

	ev, err := windows.WaitForSingleObject(b.in, 50)
	if err != nil {
		return nil, err
	}
	if ev != windows.WAIT_OBJECT_0 {
		return nil, nil // Timeout
	}

	buf := make([]byte, 256)
	var done uint32
	if err := windows.ReadFile(b.in, buf, &done, nil); err != nil {
		return nil, err
	}
	if done == 0 {
		return nil, nil
	}
	return buf[:done], nil
}

// SetResizeHandler polls for size changes; the Windows console has no
// SIGWINCH equivalent on this input path.
func (b *windowsBackend) SetResizeHandler(handler func(width, height int)) {
	b.resizeStopCh = make(chan struct{})
	b.resizeDoneCh = make(chan struct{})

	go func() {
		defer close(b.resizeDoneCh)
		lastW, lastH := b.Size()
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-b.resizeStopCh:
				return
			case <-ticker.C:
				w, h := b.Size()
				if w != lastW || h != lastH {
					lastW, lastH = w, h
					handler(w, h)
				}
			}
		}
	}()
}

func resetTerminalMode() {
	// Console modes are restored from the saved state in Fini; nothing
	// further to do on crash paths
}
