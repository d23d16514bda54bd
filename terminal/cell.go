package terminal

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrReverse   Attr = 1 << 4
)

// ColorKind discriminates the Color variants
type ColorKind uint8

const (
	ColorDefault ColorKind = iota // terminal default (SGR 39/49)
	ColorNamed                    // one of the eight base colors (SGR 30-37/40-47)
	ColorPalette                  // xterm-256 palette index (SGR 38;5;n / 48;5;n)
	ColorRGB                      // 24-bit true color (SGR 38;2;r;g;b / 48;2;r;g;b)
)

// Color is a tagged color value. The zero value is the terminal default.
type Color struct {
	Kind    ColorKind
	Idx     uint8 // named color 0-7 or palette index 0-255
	R, G, B uint8
}

// Reset is the terminal default color (inherit)
var Reset = Color{}

// Named base color indices
const (
	Black uint8 = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

// Named returns one of the eight base colors
func Named(n uint8) Color {
	return Color{Kind: ColorNamed, Idx: n & 7}
}

// Palette returns a 256-color palette entry
func Palette(n uint8) Color {
	return Color{Kind: ColorPalette, Idx: n}
}

// RGB returns a 24-bit color
func RGB(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// Cell represents a single terminal cell. Two cells are equal iff every
// field is equal; equality drives the redraw diff.
type Cell struct {
	Rune  rune
	Fg    Color
	Bg    Color
	Attrs Attr
}

// sentinelCell can never equal a real cell (no valid grapheme has a negative
// rune), so a back buffer filled with it forces a full redraw.
var sentinelCell = Cell{Rune: -1}
