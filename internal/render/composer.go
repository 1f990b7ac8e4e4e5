package render

import (
	"strconv"
	"time"

	"github.com/jwulff/biomon-go/internal/biomarker"
	"github.com/jwulff/biomon-go/internal/export"
	"github.com/jwulff/biomon-go/internal/series"
	"github.com/jwulff/biomon-go/internal/trend"
)

// Layout constants
const (
	HeaderHeight = 7
	HeaderTextY  = 1

	ChartY      = 8
	ChartHeight = 30

	TileY      = 40
	TileHeight = 24
	TileWidth  = 21
)

// TileKinds are the biomarkers given a stat tile, left to right.
var TileKinds = []biomarker.Kind{biomarker.Troponin, biomarker.Glucose, biomarker.Creatinine}

var tileLabels = map[biomarker.Kind]string{
	biomarker.Troponin:   "TROP",
	biomarker.Glucose:    "GLU",
	biomarker.Creatinine: "CREA",
}

// Data contains everything needed to render a frame.
type Data struct {
	Time     time.Time
	Location *time.Location
	Series   series.Series
	Lines    []biomarker.Kind
	Trends   trend.Result
	Critical bool
}

// Compose renders the full dashboard frame.
func Compose(d Data) *Canvas {
	c := NewCanvas(Width, Height, ColorBg)
	renderHeader(c, d)
	DrawSeries(c, d.Series, d.Lines, Area{X: 0, Y: ChartY, W: Width, H: ChartHeight})

	latest, _ := d.Series.Latest()
	for i, k := range TileKinds {
		renderTile(c, k, latest.Value(k), d.Trends, i*TileWidth)
	}
	return c
}

func renderHeader(c *Canvas, d Data) {
	textColor := ColorTime
	if d.Critical {
		c.FillRect(0, 0, Width, HeaderHeight, ColorBanner)
		DrawText(c, "!", Width/2-1, HeaderTextY, ColorWhite)
	}
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	DrawText(c, d.Time.In(loc).Format(series.LabelLayout), 1, HeaderTextY, textColor)
	project := ColorProject
	if d.Critical {
		project = ColorWhite
	}
	DrawTextRight(c, export.Project, Width-2, HeaderTextY, project)
}

func renderTile(c *Canvas, k biomarker.Kind, v float64, trends trend.Result, x int) {
	level := biomarker.Classify(k, v)
	status := LevelColor(level)

	c.StrokeRect(x, TileY, TileWidth, TileHeight, DimColor(status, 0.5))
	DrawTextCentered(c, tileLabels[k], x, TileWidth, TileY+2, ColorGray)
	DrawTextCentered(c, strconv.FormatFloat(v, 'f', biomarker.Precision(k), 64), x, TileWidth, TileY+9, status)

	if ch, ok := trends[k]; ok {
		DrawTextCentered(c, trend.MapArrow(ch.Direction), x, TileWidth, TileY+16, KindColor(k))
	}
}
