// Package render draws the dashboard as a small pixel frame: a header
// clock, a multi-line series chart and stat tiles for the key biomarkers.
package render

import "fmt"

// Frame dimensions.
const (
	Width  = 64
	Height = 64
)

const bytesPerPixel = 3

// RGB is an 8-bit per channel color.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("RGB(%d, %d, %d)", c.R, c.G, c.B)
}

// Brightness is the channel average, 0..255.
func (c RGB) Brightness() int {
	return (int(c.R) + int(c.G) + int(c.B)) / 3
}

// Canvas is a row-major RGB pixel buffer.
type Canvas struct {
	Width  int
	Height int
	Pix    []byte
}

// NewCanvas returns a canvas filled with bg.
func NewCanvas(width, height int, bg RGB) *Canvas {
	c := &Canvas{Width: width, Height: height, Pix: make([]byte, width*height*bytesPerPixel)}
	c.Fill(bg)
	return c
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height
}

// Set paints one pixel. Out of range coordinates are ignored.
func (c *Canvas) Set(x, y int, col RGB) {
	if !c.inside(x, y) {
		return
	}
	i := (y*c.Width + x) * bytesPerPixel
	c.Pix[i], c.Pix[i+1], c.Pix[i+2] = col.R, col.G, col.B
}

// At returns the pixel at x, y. ok is false outside the canvas.
func (c *Canvas) At(x, y int) (RGB, bool) {
	if !c.inside(x, y) {
		return RGB{}, false
	}
	i := (y*c.Width + x) * bytesPerPixel
	return RGB{R: c.Pix[i], G: c.Pix[i+1], B: c.Pix[i+2]}, true
}

func (c *Canvas) Fill(col RGB) {
	c.FillRect(0, 0, c.Width, c.Height, col)
}

func (c *Canvas) FillRect(x, y, w, h int, col RGB) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			c.Set(x+dx, y+dy, col)
		}
	}
}

// StrokeRect draws a one pixel outline.
func (c *Canvas) StrokeRect(x, y, w, h int, col RGB) {
	for i := 0; i < w; i++ {
		c.Set(x+i, y, col)
		c.Set(x+i, y+h-1, col)
	}
	for i := 0; i < h; i++ {
		c.Set(x, y+i, col)
		c.Set(x+w-1, y+i, col)
	}
}

// Line draws a Bresenham line between two points, inclusive.
func (c *Canvas) Line(x0, y0, x1, y1 int, col RGB) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
