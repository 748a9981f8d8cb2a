// Package theme derives the time-of-day sky theme (gradient stops and the
// sun/moon indicator) from a timestamp. Every function here is pure.
package theme

import (
	"fmt"
	"math"
	"time"
)

// Band is a half-open hour-of-day interval mapped to one gradient.
type Band int

const (
	BandNight   Band = iota // [20,24) ∪ [0,6)
	BandSunrise             // [6,9)
	BandDay                 // [9,17)
	BandDusk                // [17,20)
)

// String returns the lowercase band name.
func (b Band) String() string {
	switch b {
	case BandNight:
		return "night"
	case BandSunrise:
		return "sunrise"
	case BandDay:
		return "day"
	case BandDusk:
		return "dusk"
	default:
		return "unknown"
	}
}

// Color is an 8-bit sRGB color.
type Color struct {
	R, G, B uint8
}

// Hex returns the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Sky colors per band: start is the top/horizon stop, end the bottom/sky stop.
var (
	nightTop       = Color{10, 14, 26}
	nightBottom    = Color{26, 34, 53}
	sunriseHorizon = Color{232, 168, 56}
	sunriseSky     = Color{135, 206, 235}
	dayTop         = Color{91, 163, 246}
	dayBottom      = Color{179, 224, 255}
	duskHorizon    = Color{255, 126, 95}
	duskSky        = Color{44, 62, 80}
)

// Text palette used on top of the gradient.
var (
	brightText      = Color{0x1E, 0x29, 0x3B}
	brightTextMuted = Color{0x64, 0x74, 0x8B}
	brightBorder    = Color{0xE2, 0xE8, 0xF0}
	darkText        = Color{0xF1, 0xF5, 0xF9}
	darkTextMuted   = Color{0x94, 0xA3, 0xB8}
	darkBorder      = Color{0x33, 0x41, 0x55}
)

// Palette holds foreground colors readable on the current gradient.
type Palette struct {
	Text   Color
	Muted  Color
	Border Color
}

// Sample is the theme derived from one timestamp.
type Sample struct {
	Band  Band
	Start Color
	End   Color
	// Night reports whether the moon (rather than the sun) is shown.
	Night   bool
	Palette Palette
}

// Indicator returns the celestial body glyph for the sample.
func (s Sample) Indicator() string {
	if s.Night {
		return "☾"
	}
	return "☀"
}

// HourFraction returns hour + minute/60 for t in its own location.
func HourFraction(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}

// At samples the theme for timestamp t.
func At(t time.Time) Sample {
	return ForHour(HourFraction(t))
}

// ForHour samples the theme for a continuous hour of day. Values outside
// [0,24) wrap around; NaN and infinities are treated as midnight.
func ForHour(hour float64) Sample {
	h := normalize(hour)
	band := BandFor(h)
	start, end := colors(band)
	return Sample{
		Band:    band,
		Start:   start,
		End:     end,
		Night:   band == BandNight,
		Palette: palette(h),
	}
}

// BandFor maps an hour in [0,24) to its band. Upper bounds are exclusive, so
// a value exactly on a boundary belongs to the later band.
func BandFor(hour float64) Band {
	h := normalize(hour)
	switch {
	case h >= 20 || h < 6:
		return BandNight
	case h < 9:
		return BandSunrise
	case h < 17:
		return BandDay
	default:
		return BandDusk
	}
}

func colors(b Band) (Color, Color) {
	switch b {
	case BandSunrise:
		return sunriseHorizon, sunriseSky
	case BandDay:
		return dayTop, dayBottom
	case BandDusk:
		return duskHorizon, duskSky
	default:
		return nightTop, nightBottom
	}
}

// palette switches to dark text during daylight, [6,18).
func palette(h float64) Palette {
	if h >= 6 && h < 18 {
		return Palette{Text: brightText, Muted: brightTextMuted, Border: brightBorder}
	}
	return Palette{Text: darkText, Muted: darkTextMuted, Border: darkBorder}
}

func normalize(hour float64) float64 {
	if math.IsNaN(hour) || math.IsInf(hour, 0) {
		return 0
	}
	h := math.Mod(hour, 24)
	if h < 0 {
		h += 24
	}
	// math.Mod of a tiny negative value can round up to exactly 24.
	if h >= 24 {
		h = 0
	}
	return h
}
