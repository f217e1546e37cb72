// Package histogram implements the certainty-value occupancy grid that
// backs the VFH obstacle-avoidance controller: a persistent 2D world
// model updated by folding in ranging percepts one ray at a time.
package histogram

import "math"

// Certainty value bounds and the per-ray adjustment magnitudes used by
// AddPercept. These match the evidence model of the original ultrasonic
// VFH implementation: transit cells lose confidence, hit cells gain it,
// both saturate rather than wrap.
const (
	CVMin uint8 = 0
	CVMax uint8 = 15
	CVInc uint8 = 3
	CVDec uint8 = 1
)

// Grid is a rectangular certainty-value occupancy grid addressed by
// signed Cartesian coordinates centered on the grid's origin cell.
// The underlying buffer is row-major; cell (0,0) is always addressable.
type Grid struct {
	data   []uint8
	width  int
	height int

	xMin, xMax int
	yMin, yMax int
}

// NewGrid allocates a zeroed width x height grid. For an even dimension,
// one row or column is sacrificed on the negative side so that (0,0)
// stays addressable: x_max = width/2, x_min = -x_max for odd widths,
// -(x_max-1) for even widths (and symmetrically for height).
func NewGrid(width, height int) *Grid {
	g := &Grid{
		data:   make([]uint8, width*height),
		width:  width,
		height: height,
	}

	g.xMax = width / 2
	g.yMax = height / 2

	if width%2 != 0 {
		g.xMin = -g.xMax
	} else {
		g.xMin = -(g.xMax - 1)
	}
	if height%2 != 0 {
		g.yMin = -g.yMax
	} else {
		g.yMin = -(g.yMax - 1)
	}

	return g
}

// Width returns the grid's cell width.
func (g *Grid) Width() int { return g.width }

// Height returns the grid's cell height.
func (g *Grid) Height() int { return g.height }

// Bounds returns the asymmetric Cartesian extents of the grid.
func (g *Grid) Bounds() (xMin, xMax, yMin, yMax int) {
	return g.xMin, g.xMax, g.yMin, g.yMax
}

// WithinBounds reports whether (x, y) addresses a cell in the grid.
func (g *Grid) WithinBounds(x, y int) bool {
	return x >= g.xMin && x <= g.xMax && y >= g.yMin && y <= g.yMax
}

// At returns the certainty value at (x, y), or false if out of bounds.
func (g *Grid) At(x, y int) (uint8, bool) {
	if !g.WithinBounds(x, y) {
		return 0, false
	}
	return g.unsafeAt(x, y), true
}

func (g *Grid) unsafeAt(x, y int) uint8 {
	col := x - g.xMin
	row := y - g.yMin
	return g.data[row*g.width+col]
}

func (g *Grid) setUnsafe(x, y int, v uint8) {
	col := x - g.xMin
	row := y - g.yMin
	g.data[row*g.width+col] = v
}

func (g *Grid) incrementCell(x, y int) {
	v := g.unsafeAt(x, y)
	if v > CVMax-CVInc {
		v = CVMax
	} else {
		v += CVInc
	}
	g.setUnsafe(x, y, v)
}

func (g *Grid) decrementCell(x, y int) {
	v := g.unsafeAt(x, y)
	if v < CVMin+CVDec {
		v = CVMin
	} else {
		v -= CVDec
	}
	g.setUnsafe(x, y, v)
}

// Subgrid copies the w x h square centered on (cx, cy) into a dense
// row-major buffer, using the same odd/even centering rule as the grid
// itself: for even w, the sub-window's minimum x is cx-(w/2-1), so
// (cx, cy) sits at local index (w/2, h/2) from the "plus" side. Returns
// false, with a nil buffer, if any corner of the requested window falls
// outside the grid.
func (g *Grid) Subgrid(cx, cy, w, h int) ([]uint8, bool) {
	xOff := w / 2
	if w%2 == 0 {
		xOff--
	}
	yOff := h / 2
	if h%2 == 0 {
		yOff--
	}

	xMin := cx - xOff
	yMin := cy - yOff
	xMaxLocal := xMin + w - 1
	yMaxLocal := yMin + h - 1

	if !g.WithinBounds(xMin, yMin) || !g.WithinBounds(xMaxLocal, yMaxLocal) {
		return nil, false
	}

	out := make([]uint8, w*h)
	for j := 0; j < h; j++ {
		y := yMin + j
		for i := 0; i < w; i++ {
			x := xMin + i
			out[j*w+i] = g.unsafeAt(x, y)
		}
	}
	return out, true
}

// AddPercept folds a single ranging percept into the grid. (x0, y0) is
// the sensor origin in grid coordinates, theta the beam angle in
// radians, d the measured distance in grid units, and detected
// distinguishes an obstacle hit from a max-range pass. Every cell
// strictly before the endpoint is decremented; the endpoint cell is
// incremented if detected, decremented otherwise. Returns false without
// mutating the grid if the origin itself is out of bounds.
func (g *Grid) AddPercept(x0, y0 int, theta, d float64, detected bool) bool {
	if !g.WithinBounds(x0, y0) {
		return false
	}

	x1 := int(math.Round(d * math.Cos(theta)))
	y1 := int(math.Round(d * math.Sin(theta)))

	if !g.WithinBounds(x1, y1) {
		x1, y1 = g.clipToBounds(x0, y0, x1, y1, theta)
	}

	g.walkRay(x0, y0, x1, y1, detected)
	return true
}

// clipToBounds truncates the ray endpoint to the grid rectangle along
// the line y = m*x + b, clipping x first and recomputing y, then
// falling back to clipping y and recomputing x if that still lands
// outside. Recomputed coordinates are truncated toward zero.
func (g *Grid) clipToBounds(x0, y0, x1, y1 int, theta float64) (int, int) {
	m := math.Tan(theta)
	b := float64(y0) - m*float64(x0)

	cx := x1
	if cx > g.xMax {
		cx = g.xMax
	} else if cx < g.xMin {
		cx = g.xMin
	}
	cy := int(m*float64(cx) + b)

	if cy > g.yMax || cy < g.yMin {
		if cy > g.yMax {
			cy = g.yMax
		} else {
			cy = g.yMin
		}
		if m != 0 {
			cx = int((float64(cy) - b) / m)
		}
	}

	if cx > g.xMax {
		cx = g.xMax
	} else if cx < g.xMin {
		cx = g.xMin
	}
	if cy > g.yMax {
		cy = g.yMax
	} else if cy < g.yMin {
		cy = g.yMin
	}

	return cx, cy
}

// walkRay traces cells from (x0,y0) to (x1,y1) with Bresenham's line
// algorithm, decrementing every transit cell and applying the endpoint
// adjustment (increment on detection, decrement otherwise) to the final
// cell. Coordinates are clamped to the grid extents on every step as a
// defensive guard against a boundary endpoint.
func (g *Grid) walkRay(x0, y0, x1, y1 int, detected bool) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	x, y := x0, y0
	for {
		atEnd := x == x1 && y == y1
		if g.WithinBounds(x, y) {
			if atEnd {
				if detected {
					g.incrementCell(x, y)
				} else {
					g.decrementCell(x, y)
				}
			} else {
				g.decrementCell(x, y)
			}
		}
		if atEnd {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
			x = clampInt(x, g.xMin, g.xMax)
		}
		if e2 <= dx {
			err += dx
			y += sy
			y = clampInt(y, g.yMin, g.yMax)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
