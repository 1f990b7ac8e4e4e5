package render

import (
	"math"

	"github.com/jwulff/biomon-go/internal/biomarker"
	"github.com/jwulff/biomon-go/internal/series"
)

// Area is a rectangular region of the canvas.
type Area struct {
	X, Y, W, H int
}

// DrawSeries plots one line per kind across area. Each kind is scaled to
// its own min/max over the window so lines with different units share the
// same vertical space.
func DrawSeries(c *Canvas, s series.Series, kinds []biomarker.Kind, a Area) {
	drawGrid(c, a)
	if len(s) == 0 {
		return
	}
	for _, k := range kinds {
		col := KindColor(k)
		lo, hi := valueRange(s, k)
		var px, py int
		for i, r := range s {
			x := xAt(i, len(s), a)
			y := yAt(r.Value(k), lo, hi, a)
			if i == 0 {
				c.Set(x, y, col)
			} else {
				c.Line(px, py, x, y, col)
			}
			px, py = x, y
		}
	}
}

// drawGrid dots horizontal guides at the quarter heights.
func drawGrid(c *Canvas, a Area) {
	for q := 1; q < 4; q++ {
		y := a.Y + q*(a.H-1)/4
		for x := a.X; x < a.X+a.W; x += 2 {
			c.Set(x, y, ColorGrid)
		}
	}
}

func valueRange(s series.Series, k biomarker.Kind) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range s {
		v := r.Value(k)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

func xAt(i, n int, a Area) int {
	if n <= 1 {
		return a.X + a.W - 1
	}
	return a.X + int(math.Round(float64(i)/float64(n-1)*float64(a.W-1)))
}

// yAt maps v into the area, higher values nearer the top. A flat line sits
// in the middle.
func yAt(v, lo, hi float64, a Area) int {
	if hi <= lo {
		return a.Y + a.H/2
	}
	t := (v - lo) / (hi - lo)
	t = math.Max(0, math.Min(1, t))
	return a.Y + a.H - 1 - int(math.Round(t*float64(a.H-1)))
}
