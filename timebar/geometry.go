package timebar

// Rect is a cell rectangle on the rendering surface. Y grows downward.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// BarGeometry is the pixel layout of the seek bar: the full hit area accepted
// for pointer gestures, the visible track, and the handle's current column.
// Recomputed on every layout or data change; read-only to renderers.
type BarGeometry struct {
	// SeekBounds is the pointer hit area, taller than the visible track to
	// ease touch targeting.
	SeekBounds Rect

	// TrackBounds is the visible progress track.
	TrackBounds Rect

	// HandleX is the handle's absolute column within TrackBounds.
	HandleX int
}

// Layout computes bar geometry for a track of the given width at (x, y), with
// hitPadding extra rows above and below accepted as pointer hits.
func Layout(x, y, width, hitPadding int) BarGeometry {
	if width < 0 {
		width = 0
	}
	if hitPadding < 0 {
		hitPadding = 0
	}

	return BarGeometry{
		TrackBounds: Rect{X: x, Y: y, Width: width, Height: 1},
		SeekBounds:  Rect{X: x, Y: y - hitPadding, Width: width, Height: 1 + 2*hitPadding},
		HandleX:     x,
	}
}

// TrackWidth returns the width of the visible track.
func (g BarGeometry) TrackWidth() int {
	return g.TrackBounds.Width
}

// Zero reports whether the geometry has no usable track.
func (g BarGeometry) Zero() bool {
	return g.TrackBounds.Width <= 0
}
