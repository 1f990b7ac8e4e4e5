package render

import "strings"

// Glyph metrics of the 3x5 font.
const (
	GlyphWidth   = 3
	GlyphHeight  = 5
	GlyphSpacing = 1
)

// glyphs maps a rune to five rows of three bits, most significant bit left.
// Lowercase letters other than the 'v' arrow are drawn as uppercase.
var glyphs = map[rune][GlyphHeight]uint8{
	// Numbers
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b111, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b001, 0b001, 0b001},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},

	// Uppercase letters
	'A': {0b010, 0b101, 0b111, 0b101, 0b101},
	'B': {0b110, 0b101, 0b110, 0b101, 0b110},
	'C': {0b011, 0b100, 0b100, 0b100, 0b011},
	'D': {0b110, 0b101, 0b101, 0b101, 0b110},
	'E': {0b111, 0b100, 0b110, 0b100, 0b111},
	'F': {0b111, 0b100, 0b110, 0b100, 0b100},
	'G': {0b011, 0b100, 0b101, 0b101, 0b011},
	'H': {0b101, 0b101, 0b111, 0b101, 0b101},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'J': {0b011, 0b001, 0b001, 0b101, 0b010},
	'K': {0b101, 0b110, 0b100, 0b110, 0b101},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'M': {0b101, 0b111, 0b101, 0b101, 0b101},
	'N': {0b101, 0b111, 0b111, 0b101, 0b101},
	'O': {0b010, 0b101, 0b101, 0b101, 0b010},
	'P': {0b110, 0b101, 0b110, 0b100, 0b100},
	'Q': {0b010, 0b101, 0b101, 0b111, 0b011},
	'R': {0b110, 0b101, 0b110, 0b101, 0b101},
	'S': {0b011, 0b100, 0b010, 0b001, 0b110},
	'T': {0b111, 0b010, 0b010, 0b010, 0b010},
	'U': {0b101, 0b101, 0b101, 0b101, 0b111},
	'V': {0b101, 0b101, 0b101, 0b101, 0b010},
	'W': {0b101, 0b101, 0b101, 0b111, 0b101},
	'X': {0b101, 0b101, 0b010, 0b101, 0b101},
	'Y': {0b101, 0b101, 0b010, 0b010, 0b010},
	'Z': {0b111, 0b001, 0b010, 0b100, 0b111},

	// Symbols
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
	'/': {0b001, 0b001, 0b010, 0b100, 0b100},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	':': {0b000, 0b010, 0b000, 0b010, 0b000},
	'.': {0b000, 0b000, 0b000, 0b000, 0b010},
	'%': {0b101, 0b001, 0b010, 0b100, 0b101},
	'!': {0b010, 0b010, 0b010, 0b000, 0b010},
	'^': {0b010, 0b111, 0b010, 0b010, 0b010},
	'v': {0b010, 0b010, 0b010, 0b111, 0b010},
}

func glyph(r rune) [GlyphHeight]uint8 {
	if g, ok := glyphs[r]; ok {
		return g
	}
	if g, ok := glyphs[[]rune(strings.ToUpper(string(r)))[0]]; ok {
		return g
	}
	return glyphs[' ']
}

// TextWidth returns the pixel width of text.
func TextWidth(text string) int {
	n := len([]rune(text))
	if n == 0 {
		return 0
	}
	return n*GlyphWidth + (n-1)*GlyphSpacing
}

// DrawText draws text with its top-left corner at x, y.
func DrawText(c *Canvas, text string, x, y int, col RGB) {
	for _, r := range text {
		g := glyph(r)
		for row := 0; row < GlyphHeight; row++ {
			for bit := 0; bit < GlyphWidth; bit++ {
				if g[row]&(1<<(GlyphWidth-1-bit)) != 0 {
					c.Set(x+bit, y+row, col)
				}
			}
		}
		x += GlyphWidth + GlyphSpacing
	}
}

// DrawTextCentered centers text horizontally inside [x, x+width).
func DrawTextCentered(c *Canvas, text string, x, width, y int, col RGB) {
	DrawText(c, text, x+(width-TextWidth(text))/2, y, col)
}

// DrawTextRight draws text ending at column right.
func DrawTextRight(c *Canvas, text string, right, y int, col RGB) {
	DrawText(c, text, right-TextWidth(text)+1, y, col)
}
