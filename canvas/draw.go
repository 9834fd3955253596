package canvas

import (
	"image/color"

	"golang.org/x/image/math/fixed"
)

// Drawer knows how to do the actual draw operations
// but doesn't need any chart knowledge.
type Drawer interface {
	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// Start starts a new path at the given point.
	Start(a fixed.Point26_6)

	// Line Adds a line for the current point to `b`
	Line(b fixed.Point26_6)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)

	// Closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)

	// SetColor set the color for the current path
	SetColor(c color.Color)

	// Draw fills or strokes the accumulated path using the current settings
	Draw()
}

type Filler interface {
	Drawer
}

type Stroker interface {
	Drawer

	// SetStrokeWidth parametrizes the line width for the current path
	SetStrokeWidth(width fixed.Int26_6)
}

type Driver interface {
	// SetupDrawers returns the backend painters, and
	// will be called at the begining of every shape.
	// If the `willXXX` boolean is false, the returned drawer should be nil
	// to avoid useless operations.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)

	// DrawText paints a text primitive.
	DrawText(t Text)
}

// Draw paints the canvas into the driver `d`, group after group.
func (c *Canvas) Draw(d Driver) {
	for _, g := range c.groups {
		for _, s := range g.Shapes {
			drawShape(d, s)
		}
	}
}

func drawShape(d Driver, s Shape) {
	if t, ok := s.(Text); ok {
		d.DrawText(t)
		return
	}
	path, style := ToPath(s)
	filler, stroker := d.SetupDrawers(style.Fill != nil, style.Stroke != nil)
	if filler != nil { // nil color disable filling
		filler.Clear()
		for _, op := range path {
			op.drawTo(filler)
		}
		filler.Stop(false)
		filler.SetColor(style.Fill)
		filler.Draw()
	}
	if stroker != nil { // nil color disable lining
		stroker.Clear()
		width := style.StrokeWidth
		if width <= 0 {
			width = 1
		}
		stroker.SetStrokeWidth(fixed.Int26_6(width * 64))
		for _, op := range path {
			op.drawTo(stroker)
		}
		stroker.Stop(false)
		stroker.SetColor(style.Stroke)
		stroker.Draw()
	}
}
