package tui

// Rect represents a rectangular region of the terminal.
type Rect struct {
	X, Y, Width, Height int
}

// Minimum terminal size.
const (
	MinWidth  = 60
	MinHeight = 20
)

// Layout holds the computed panel geometry for a given terminal size.
type Layout struct {
	Header, Tabs, Footer Rect
	Body, Log            Rect
	TooSmall             bool // true when terminal is below MinWidth×MinHeight
}

// headerRows is the height of the sky band.
const headerRows = 3

// Calculate computes the panel layout for a terminal of the given dimensions.
// Returns a Layout with TooSmall=true below the minimum size.
//
// Algorithm:
//   - Header: full width, 3 rows of sky gradient at top
//   - Tabs: full width, 1 row under the header
//   - Footer: full width, 1 row at bottom
//   - Log: full width, 30% of the remaining height, at least 5 rows
//   - Body: full width, everything between tabs and log
func Calculate(width, height int) Layout {
	if width < MinWidth || height < MinHeight {
		return Layout{TooSmall: true}
	}

	remaining := height - headerRows - 1 - 1 // header, tabs, footer
	logH := remaining * 30 / 100
	if logH < 5 {
		logH = 5
	}
	bodyH := remaining - logH
	bodyY := headerRows + 1

	return Layout{
		Header: Rect{X: 0, Y: 0, Width: width, Height: headerRows},
		Tabs:   Rect{X: 0, Y: headerRows, Width: width, Height: 1},
		Body:   Rect{X: 0, Y: bodyY, Width: width, Height: bodyH},
		Log:    Rect{X: 0, Y: bodyY + bodyH, Width: width, Height: logH},
		Footer: Rect{X: 0, Y: height - 1, Width: width, Height: 1},
	}
}

// innerDims returns the content dimensions for a panel rect accounting for
// the 1-character border on each side (2 total per dimension).
func innerDims(r Rect) (w, h int) {
	w = r.Width - 2
	if w < 1 {
		w = 1
	}
	h = r.Height - 2
	if h < 1 {
		h = 1
	}
	return
}
