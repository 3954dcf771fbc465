package state

import "math"

// Point is a location in canvas coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Eq reports whether p and q are component-wise equal.
func (p Point) Eq(q Point) bool { return p.X == q.X && p.Y == q.Y }

// finite reports whether both coordinates are real numbers.
func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Color is a display tag for a path. It is a CSS-style hex string
// such as "#ef4444" and carries no meaning beyond rendering.
type Color string

const (
	ColorDrawing Color = "#ef4444"
	ColorDone    Color = "#22c55e"
)

// Palette holds the two colors a path can carry.
type Palette struct {
	Drawing Color
	Done    Color
}

// DefaultPalette returns the red-while-drawing, green-when-done palette.
func DefaultPalette() Palette {
	return Palette{Drawing: ColorDrawing, Done: ColorDone}
}

// Path is a polyline. Points are kept in draw order.
// A closed path ends on a copy of its first point.
type Path struct {
	Points []Point `json:"points"`
	Closed bool    `json:"closed"`
	Color  Color   `json:"color"`
}

// Clone returns a copy of p that shares no memory with it.
func (p Path) Clone() Path {
	c := p
	if p.Points != nil {
		c.Points = make([]Point, len(p.Points))
		copy(c.Points, p.Points)
	}
	return c
}

// First returns the first point of the path.
func (p Path) First() (Point, bool) {
	if len(p.Points) == 0 {
		return Point{}, false
	}
	return p.Points[0], true
}

// Last returns the most recently added point of the path.
func (p Path) Last() (Point, bool) {
	if len(p.Points) == 0 {
		return Point{}, false
	}
	return p.Points[len(p.Points)-1], true
}

// DrawingState is every path on the canvas, oldest first.
type DrawingState []Path

// Clone returns a deep copy of s. The copy is never nil so an empty
// state always compares equal to another empty state.
func (s DrawingState) Clone() DrawingState {
	c := make(DrawingState, len(s))
	for i, p := range s {
		c[i] = p.Clone()
	}
	return c
}

// last returns a pointer to the newest path, or nil if s is empty.
// The pointer aliases s and is only meant for editing a fresh clone.
func (s DrawingState) last() *Path {
	if len(s) == 0 {
		return nil
	}
	return &s[len(s)-1]
}

// PointCount returns the total number of points across all paths.
func (s DrawingState) PointCount() int {
	n := 0
	for _, p := range s {
		n += len(p.Points)
	}
	return n
}

// Segment is a straight line between two points, used for the live
// preview from the active point to the pointer.
type Segment struct {
	From Point
	To   Point
}
