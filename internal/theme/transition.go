package theme

import (
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Transition animates from one sample's gradient to another's over a fixed
// duration, independent of how often the host samples.
type Transition struct {
	From     Sample
	To       Sample
	Start    time.Time
	Duration time.Duration
}

// NewTransition starts a transition at now. A non-positive duration makes the
// transition complete immediately.
func NewTransition(from, to Sample, now time.Time, d time.Duration) Transition {
	return Transition{From: from, To: to, Start: now, Duration: d}
}

// Progress returns how far the transition has run at now, in [0,1].
func (tr Transition) Progress(now time.Time) float64 {
	if tr.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(tr.Start)) / float64(tr.Duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Done reports whether the transition has fully reached its target.
func (tr Transition) Done(now time.Time) bool {
	return tr.Progress(now) >= 1
}

// At returns the interpolated gradient stops at now.
func (tr Transition) At(now time.Time) (start, end Color) {
	p := tr.Progress(now)
	return Blend(tr.From.Start, tr.To.Start, p), Blend(tr.From.End, tr.To.End, p)
}

// Blend linearly interpolates a→b in RGB space; t is clamped to [0,1].
func Blend(a, b Color, t float64) Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return fromColorful(toColorful(a).BlendRgb(toColorful(b), t))
}

// Gradient returns n evenly spaced stops from a to b inclusive.
func Gradient(a, b Color, n int) []Color {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []Color{a}
	}
	out := make([]Color, n)
	for i := range out {
		out[i] = Blend(a, b, float64(i)/float64(n-1))
	}
	return out
}

func toColorful(c Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}
