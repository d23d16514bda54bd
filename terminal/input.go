package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
	"unicode/utf8"
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventKey EventType = iota
	EventResize
	EventError  // Read error
	EventClosed // Input closed
)

// Event represents a terminal input event
type Event struct {
	Type   EventType
	Key    Key
	Rune   rune
	Mods   Modifier
	Width  int   // For EventResize
	Height int   // For EventResize
	Err    error // For EventError
}

// maxCSILen bounds escape sequence scanning; anything longer is garbage
const maxCSILen = 32

// Decoder is a restartable state machine turning raw terminal bytes into
// events. Partial sequences remain buffered across Feed calls; events are
// produced in the exact order their completing bytes arrive. Invalid or
// unrecognized completed sequences are dropped silently.
type Decoder struct {
	buf []byte
}

// Feed appends raw bytes to the internal buffer
func (d *Decoder) Feed(p []byte) {
	d.buf = append(d.buf, p...)
}

// Pending reports whether undecoded bytes remain buffered
func (d *Decoder) Pending() bool {
	return len(d.buf) > 0
}

// Next decodes one event from the buffered prefix. It returns false when the
// buffer is empty or holds only an incomplete sequence that could still
// extend to a valid one.
func (d *Decoder) Next() (Event, bool) {
	for len(d.buf) > 0 {
		consumed, ev, ok := decodeOne(d.buf)
		if consumed == 0 {
			return Event{}, false // Wait for more bytes
		}
		d.consume(consumed)
		if ok {
			return ev, true
		}
		// Dropped bytes, keep scanning
	}
	return Event{}, false
}

// FlushEscape resolves a pending lone ESC after the escape-completion
// deadline has passed with no further bytes.
func (d *Decoder) FlushEscape() (Event, bool) {
	if len(d.buf) == 1 && d.buf[0] == 0x1b {
		d.buf = d.buf[:0]
		return Event{Type: EventKey, Key: KeyEscape}, true
	}
	return Event{}, false
}

func (d *Decoder) consume(n int) {
	if n >= len(d.buf) {
		d.buf = d.buf[:0]
		return
	}
	copy(d.buf, d.buf[n:])
	d.buf = d.buf[:len(d.buf)-n]
}

// decodeOne attempts to decode one event from the prefix of data.
// consumed == 0 means the prefix could still extend to a valid sequence;
// ok == false with consumed > 0 means the bytes were dropped.
func decodeOne(data []byte) (consumed int, ev Event, ok bool) {
	b := data[0]

	switch {
	case b == 0x0d, b == 0x0a:
		return 1, Event{Type: EventKey, Key: KeyEnter}, true
	case b == 0x09:
		return 1, Event{Type: EventKey, Key: KeyTab}, true
	case b == 0x7f, b == 0x08:
		return 1, Event{Type: EventKey, Key: KeyBackspace}, true
	case b == 0x1b:
		return decodeEscape(data)
	case b < 0x20:
		if ev, ok := ctrlEvent(b); ok {
			return 1, ev, true
		}
		return 1, Event{}, false // Unmapped control byte, drop
	case b < 0x7f:
		return 1, Event{Type: EventKey, Key: KeyRune, Rune: rune(b)}, true
	default:
		return decodeUTF8(data, ModNone)
	}
}

// ctrlEvent folds a C0 control byte into the corresponding letter with Ctrl.
// decodeOne and the single-ESC Alt path map Enter/Tab/Backspace before
// calling it; after ESC ESC those bytes fold to Ctrl letters like the rest.
func ctrlEvent(b byte) (Event, bool) {
	if b >= 0x01 && b <= 0x1a {
		return Event{Type: EventKey, Key: KeyRune, Rune: rune(b + 'a' - 1), Mods: ModCtrl}, true
	}
	return Event{}, false
}

// decodeEscape handles every ESC-prefixed sequence
func decodeEscape(data []byte) (int, Event, bool) {
	if len(data) < 2 {
		return 0, Event{}, false // Lone ESC resolved by FlushEscape
	}

	switch c := data[1]; {
	case c == '[':
		return decodeCSI(data)
	case c == 'O':
		return decodeSS3(data)
	case c == 0x1b:
		// ESC ESC <ctrl byte>: Alt+Ctrl+letter
		if len(data) < 3 {
			return 0, Event{}, false
		}
		if ev, ok := ctrlEvent(data[2]); ok {
			ev.Mods |= ModAlt
			return 3, ev, true
		}
		// Not a ctrl byte; emit the first ESC and re-parse the rest
		return 1, Event{Type: EventKey, Key: KeyEscape}, true
	case c == 0x0d, c == 0x0a:
		return 2, Event{Type: EventKey, Key: KeyEnter, Mods: ModAlt}, true
	case c == 0x09:
		return 2, Event{Type: EventKey, Key: KeyTab, Mods: ModAlt}, true
	case c == 0x7f, c == 0x08:
		return 2, Event{Type: EventKey, Key: KeyBackspace, Mods: ModAlt}, true
	case c < 0x20:
		if ev, ok := ctrlEvent(c); ok {
			ev.Mods |= ModAlt
			return 2, ev, true
		}
		return 2, Event{}, false
	case c < 0x7f:
		return 2, Event{Type: EventKey, Key: KeyRune, Rune: rune(c), Mods: ModAlt}, true
	default:
		consumed, ev, ok := decodeUTF8(data[1:], ModAlt)
		if consumed == 0 {
			return 0, Event{}, false
		}
		return consumed + 1, ev, ok
	}
}

// decodeCSI parses ESC [ <params> <final>. Arrow, navigation, and function
// keys carry an optional xterm modifier parameter.
func decodeCSI(data []byte) (int, Event, bool) {
	// Scan for the final byte
	end := 2
	for {
		if end >= len(data) {
			if end >= maxCSILen {
				return end, Event{}, false // Oversized, drop
			}
			return 0, Event{}, false // Incomplete
		}
		b := data[end]
		if b >= 0x40 && b <= 0x7e {
			break // Final byte
		}
		if b < 0x20 || b > 0x3f {
			// Not a valid CSI byte; drop what we scanned
			return end + 1, Event{}, false
		}
		end++
	}

	final := data[end]
	consumed := end + 1
	p0, p1, paramsOK := parseCSIParams(data[2:end])
	if !paramsOK {
		return consumed, Event{}, false
	}

	switch {
	case final == '~':
		key, known := csiTildeKeys[p0]
		if !known {
			return consumed, Event{}, false
		}
		return consumed, Event{Type: EventKey, Key: key, Mods: decodeXtermMod(p1)}, true
	case final == 'Z':
		return consumed, Event{Type: EventKey, Key: KeyTab, Mods: ModShift}, true
	default:
		key, known := csiFinalKeys[final]
		if !known {
			return consumed, Event{}, false
		}
		return consumed, Event{Type: EventKey, Key: key, Mods: decodeXtermMod(p1)}, true
	}
}

// decodeSS3 parses ESC O <c>
func decodeSS3(data []byte) (int, Event, bool) {
	if len(data) < 3 {
		return 0, Event{}, false
	}
	if key, known := ss3Keys[data[2]]; known {
		return 3, Event{Type: EventKey, Key: key}, true
	}
	return 3, Event{}, false // Unknown SS3, consume to prevent garbage
}

// parseCSIParams extracts up to two numeric parameters from "n" or "n;m".
// Missing parameters are zero.
func parseCSIParams(params []byte) (p0, p1 int, ok bool) {
	if len(params) == 0 {
		return 0, 0, true
	}
	n := 0
	idx := 0
	for _, b := range params {
		switch {
		case b >= '0' && b <= '9':
			n = n*10 + int(b-'0')
			if n > 9999 {
				return 0, 0, false
			}
		case b == ';':
			if idx == 0 {
				p0 = n
			} else {
				p1 = n
			}
			idx++
			n = 0
			if idx > 1 {
				return 0, 0, false
			}
		default:
			return 0, 0, false
		}
	}
	if idx == 0 {
		p0 = n
	} else {
		p1 = n
	}
	return p0, p1, true
}

// decodeUTF8 decodes one multibyte rune starting at data[0]
func decodeUTF8(data []byte, mods Modifier) (int, Event, bool) {
	if !utf8.FullRune(data) {
		// Distinguish "needs more bytes" from "can never complete"
		if len(data) < utf8.UTFMax {
			return 0, Event{}, false
		}
		return 1, Event{}, false
	}
	r, size := utf8.DecodeRune(data)
	if r == utf8.RuneError && size == 1 {
		return 1, Event{}, false // Invalid start byte, drop
	}
	return size, Event{Type: EventKey, Key: KeyRune, Rune: r, Mods: mods}, true
}

// reader pumps bytes from the backend through a Decoder into an event channel
type reader struct {
	backend Backend
	dec     Decoder
	eventCh chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool
}

func newReader(backend Backend) *reader {
	return &reader{
		backend: backend,
		eventCh: make(chan Event, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

func (r *reader) start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go r.readLoop()
}

func (r *reader) stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	<-r.doneCh
}

func (r *reader) events() <-chan Event {
	return r.eventCh
}

func (r *reader) readLoop() {
	defer close(r.doneCh)

	// The raw input reader must never leave the terminal wedged
	defer func() {
		if rec := recover(); rec != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\ninput reader crashed: %v\r\n%s\r\n", rec, debug.Stack())
			os.Exit(2)
		}
	}()

	for {
		data, err := r.backend.Read(r.stopCh)
		if err != nil {
			r.send(Event{Type: EventError, Err: err})
			return
		}

		if len(data) == 0 {
			// Read timeout: the escape-completion deadline for a lone ESC
			if ev, ok := r.dec.FlushEscape(); ok {
				r.send(ev)
			}
			select {
			case <-r.stopCh:
				r.send(Event{Type: EventClosed})
				return
			default:
				continue
			}
		}

		r.dec.Feed(data)
		for {
			ev, ok := r.dec.Next()
			if !ok {
				break
			}
			r.send(ev)
		}
	}
}

func (r *reader) send(ev Event) {
	select {
	case r.eventCh <- ev:
	default:
		// Channel full, drop
	}
}
