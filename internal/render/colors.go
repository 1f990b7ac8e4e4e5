package render

import "github.com/jwulff/biomon-go/internal/biomarker"

// Common colors for the display.
var (
	ColorBlack = RGB{0, 0, 0}
	ColorBg    = ColorBlack

	ColorWhite    = RGB{255, 255, 255}
	ColorGray     = RGB{128, 128, 128}
	ColorDimGray  = RGB{64, 64, 64}
	ColorGrid     = RGB{40, 40, 40}
	ColorTime     = RGB{255, 255, 255}
	ColorBanner   = RGB{200, 0, 0}
	ColorProject  = RGB{180, 180, 180}
	ColorStatusOK = RGB{0, 200, 0}
	ColorWarning  = RGB{255, 200, 0}
	ColorAlert    = RGB{255, 40, 40}
)

// Line colors per biomarker, matching the web chart palette.
var kindColors = map[biomarker.Kind]RGB{
	biomarker.Troponin:   {255, 80, 80},
	biomarker.Glucose:    {80, 160, 255},
	biomarker.HbA1c:      {180, 100, 255},
	biomarker.Creatinine: {80, 220, 120},
	biomarker.ALT:        {255, 170, 60},
}

// KindColor returns the chart line color for k.
func KindColor(k biomarker.Kind) RGB {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return ColorGray
}

// LevelColor returns the status color for a classification level.
func LevelColor(l biomarker.Level) RGB {
	switch l {
	case biomarker.LevelCritical:
		return ColorAlert
	case biomarker.LevelElevated:
		return ColorWarning
	default:
		return ColorStatusOK
	}
}

// DimColor reduces the brightness of a color by a factor (0-1).
func DimColor(c RGB, factor float64) RGB {
	if factor <= 0 {
		return ColorBlack
	}
	if factor >= 1 {
		return c
	}
	return RGB{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}
