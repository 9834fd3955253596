// Provides the drawing surface of the chart renderer:
// a canvas is an ordered list of groups of primitives
// (rectangles, circles, lines and texts), built by successive calls
// and then serialized to SVG or painted by a Driver
// (see for example chordchart/chartraster or chordchart/chartpdf).
package canvas

import "image/color"

var (
	Black = color.NRGBA{A: 0xff}
	White = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Style holds the paint of a shape.
// A nil color disables the corresponding operation.
type Style struct {
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth int
}

// Anchor is the horizontal alignment of a text
// relatively to its position.
type Anchor uint8

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

func (a Anchor) String() string {
	switch a {
	case AnchorStart:
		return "start"
	case AnchorMiddle:
		return "middle"
	case AnchorEnd:
		return "end"
	default:
		return "<unknown Anchor>"
	}
}

// Shape is one of Rect, Circle, Line or Text.
type Shape interface {
	isShape()
}

type (
	// Rect is an axis aligned rectangle, (X, Y) being its top left corner.
	Rect struct {
		X, Y, W, H int
		Style      Style
	}

	// Circle is centered on (CX, CY).
	Circle struct {
		CX, CY, R int
		Style     Style
	}

	// Line is a segment; its fill is ignored.
	Line struct {
		X1, Y1, X2, Y2 int
		Style          Style
	}

	// Text is a single line label.
	Text struct {
		X, Y       int
		Content    string
		FontFamily string
		FontSize   int
		Anchor     Anchor
		// MiddleBaseline centers the text vertically on Y,
		// instead of using Y as baseline.
		MiddleBaseline bool
		Color          color.Color // nil means black
	}
)

func (Rect) isShape()   {}
func (Circle) isShape() {}
func (Line) isShape()   {}
func (Text) isShape()   {}

// Group binds the primitives of one rendered element.
type Group struct {
	Class  string // kind of the rendered element, such as "chord" or "repeat"
	ID     string // optional
	Shapes []Shape
}

// Canvas accumulates groups. It is owned by a single
// caller for the duration of a render pass.
type Canvas struct {
	Width, Height int
	groups        []Group
}

// New returns an empty canvas with the given dimensions.
func New(width, height int) *Canvas {
	return &Canvas{Width: width, Height: height}
}

// Add appends a group and returns the canvas, to allow chaining.
func (c *Canvas) Add(g Group) *Canvas {
	g.Shapes = append([]Shape(nil), g.Shapes...)
	c.groups = append(c.groups, g)
	return c
}

// Groups returns a copy of the groups, in painting order.
func (c *Canvas) Groups() []Group {
	out := make([]Group, len(c.groups))
	for i, g := range c.groups {
		out[i] = g
		out[i].Shapes = append([]Shape(nil), g.Shapes...)
	}
	return out
}

// Len returns the number of groups.
func (c *Canvas) Len() int { return len(c.groups) }

// ShapesOf returns the primitives of type T found in `groups`, in order.
func ShapesOf[T Shape](groups ...Group) []T {
	var out []T
	for _, g := range groups {
		for _, s := range g.Shapes {
			if t, ok := s.(T); ok {
				out = append(out, t)
			}
		}
	}
	return out
}
