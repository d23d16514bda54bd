package terminal

import (
	"testing"
)

// drain collects every decodable event
func drain(d *Decoder) []Event {
	var events []Event
	for {
		ev, ok := d.Next()
		if !ok {
			return events
		}
		events = append(events, ev)
	}
}

func TestDecodeArrowKey(t *testing.T) {
	var d Decoder
	d.Feed([]byte{0x1b, 0x5b, 0x41})

	events := drain(&d)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Key != KeyUp || events[0].Mods != ModNone {
		t.Errorf("expected Up with no mods, got key=%v mods=%v", events[0].Key, events[0].Mods)
	}
	if d.Pending() {
		t.Error("buffer should be empty after a complete sequence")
	}
}

func TestDecodeModifiedArrow(t *testing.T) {
	var d Decoder
	// ESC [ 1 ; 5 A = Ctrl+Up
	d.Feed([]byte{0x1b, 0x5b, 0x31, 0x3b, 0x35, 0x41})

	events := drain(&d)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Key != KeyUp || events[0].Mods != ModCtrl {
		t.Errorf("expected Ctrl+Up, got key=%v mods=%v", events[0].Key, events[0].Mods)
	}
}

func TestDecodeOrdering(t *testing.T) {
	var d Decoder
	// 'a' followed by Up must come out in that order
	d.Feed([]byte{0x61, 0x1b, 0x5b, 0x41})

	events := drain(&d)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Key != KeyRune || events[0].Rune != 'a' || events[0].Mods != ModNone {
		t.Errorf("first event should be 'a', got %+v", events[0])
	}
	if events[1].Key != KeyUp {
		t.Errorf("second event should be Up, got %+v", events[1])
	}
}

func TestDecodeSplitSequence(t *testing.T) {
	var d Decoder
	d.Feed([]byte{0x1b, 0x5b})

	if _, ok := d.Next(); ok {
		t.Fatal("truncated CSI must not produce an event")
	}
	if !d.Pending() {
		t.Fatal("partial sequence must stay buffered")
	}

	d.Feed([]byte{0x41})
	events := drain(&d)
	if len(events) != 1 || events[0].Key != KeyUp {
		t.Fatalf("expected exactly one Up after completion, got %+v", events)
	}
}

func TestDecodeControlBytes(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		key  Key
		r    rune
		mods Modifier
	}{
		{"enter", []byte{0x0d}, KeyEnter, 0, ModNone},
		{"tab", []byte{0x09}, KeyTab, 0, ModNone},
		{"backspace", []byte{0x7f}, KeyBackspace, 0, ModNone},
		{"ctrl-u", []byte{0x15}, KeyRune, 'u', ModCtrl},
		{"ctrl-d", []byte{0x04}, KeyRune, 'd', ModCtrl},
		{"ctrl-c", []byte{0x03}, KeyRune, 'c', ModCtrl},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Decoder
			d.Feed(tt.in)
			events := drain(&d)
			if len(events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(events))
			}
			ev := events[0]
			if ev.Key != tt.key || ev.Rune != tt.r || ev.Mods != tt.mods {
				t.Errorf("got key=%v rune=%q mods=%v, want key=%v rune=%q mods=%v",
					ev.Key, ev.Rune, ev.Mods, tt.key, tt.r, tt.mods)
			}
		})
	}
}

func TestDecodeAltPrefix(t *testing.T) {
	var d Decoder
	d.Feed([]byte{0x1b, 'x'})

	events := drain(&d)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Key != KeyRune || events[0].Rune != 'x' || events[0].Mods != ModAlt {
		t.Errorf("expected Alt+x, got %+v", events[0])
	}
}

func TestDecodeAltCtrl(t *testing.T) {
	var d Decoder
	// ESC ESC Ctrl-A
	d.Feed([]byte{0x1b, 0x1b, 0x01})

	events := drain(&d)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Key != KeyRune || ev.Rune != 'a' || ev.Mods != ModAlt|ModCtrl {
		t.Errorf("expected Alt+Ctrl+a, got %+v", ev)
	}
}

func TestDecodeLoneEscape(t *testing.T) {
	var d Decoder
	d.Feed([]byte{0x1b})

	if _, ok := d.Next(); ok {
		t.Fatal("lone ESC must wait for the completion deadline")
	}

	ev, ok := d.FlushEscape()
	if !ok || ev.Key != KeyEscape {
		t.Fatalf("expected Escape after deadline, got ok=%v ev=%+v", ok, ev)
	}
	if d.Pending() {
		t.Error("buffer should be empty after flushing the escape")
	}
}

func TestDecodeTildeSequences(t *testing.T) {
	tests := []struct {
		seq string
		key Key
	}{
		{"\x1b[1~", KeyHome},
		{"\x1b[2~", KeyInsert},
		{"\x1b[3~", KeyDelete},
		{"\x1b[4~", KeyEnd},
		{"\x1b[5~", KeyPageUp},
		{"\x1b[6~", KeyPageDown},
		{"\x1b[H", KeyHome},
		{"\x1b[F", KeyEnd},
		{"\x1b[15~", KeyF5},
		{"\x1b[24~", KeyF12},
	}
	for _, tt := range tests {
		var d Decoder
		d.Feed([]byte(tt.seq))
		events := drain(&d)
		if len(events) != 1 || events[0].Key != tt.key {
			t.Errorf("%q: expected key %v, got %+v", tt.seq, tt.key, events)
		}
	}
}

func TestDecodeShiftTab(t *testing.T) {
	var d Decoder
	d.Feed([]byte("\x1b[Z"))
	events := drain(&d)
	if len(events) != 1 || events[0].Key != KeyTab || events[0].Mods != ModShift {
		t.Fatalf("expected Shift+Tab, got %+v", events)
	}
}

func TestDecodeUTF8(t *testing.T) {
	var d Decoder
	d.Feed([]byte("é"))
	events := drain(&d)
	if len(events) != 1 || events[0].Rune != 'é' {
		t.Fatalf("expected é, got %+v", events)
	}

	// Split across reads
	raw := []byte("日")
	d.Feed(raw[:1])
	if _, ok := d.Next(); ok {
		t.Fatal("partial UTF-8 must not decode")
	}
	d.Feed(raw[1:])
	events = drain(&d)
	if len(events) != 1 || events[0].Rune != '日' {
		t.Fatalf("expected 日 after completion, got %+v", events)
	}
}

func TestDecodeDropsUnknownSequences(t *testing.T) {
	var d Decoder
	// Unknown CSI final 'u' must be swallowed, then 'a' decodes normally
	d.Feed([]byte("\x1b[99u"))
	d.Feed([]byte{'a'})

	events := drain(&d)
	if len(events) != 1 || events[0].Rune != 'a' {
		t.Fatalf("unknown sequence should be dropped silently, got %+v", events)
	}
}

func TestDecodeInvalidUTF8StartByte(t *testing.T) {
	var d Decoder
	d.Feed([]byte{0xff, 'b'})
	events := drain(&d)
	if len(events) != 1 || events[0].Rune != 'b' {
		t.Fatalf("invalid byte should be dropped, got %+v", events)
	}
}
