package canvas

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// This file implements the transformation from
// high level shapes to their path equivalent

// maxDx is the maximum radians a cubic splice is allowed to span
// when approximating a circle.
const maxDx float64 = math.Pi / 8

// toFixedP converts two floats to a fixed point.
func toFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return
}

func (p *Path) addRect(minX, minY, maxX, maxY float64) {
	p.Start(toFixedP(minX, minY))
	p.Line(toFixedP(maxX, minY))
	p.Line(toFixedP(maxX, maxY))
	p.Line(toFixedP(minX, maxY))
	p.Stop(true)
}

func (p *Path) addSegment(x1, y1, x2, y2 float64) {
	p.Start(toFixedP(x1, y1))
	p.Line(toFixedP(x2, y2))
}

// addCircle approximates the circle with cubic bezier splines.
func (p *Path) addCircle(cx, cy, r float64) {
	// Approximate the ellipse using a set of cubic bezier curves by the method of
	// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
	// or cubic Bezier curves", 2003
	// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
	segs := int(2*math.Pi/maxDx) + 1
	dEta := 2 * math.Pi / float64(segs)
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3 // Math is fun!
	lx, ly := cx+r, cy
	ldx, ldy := circlePrime(r, 0)
	p.Start(toFixedP(lx, ly))
	for i := 1; i <= segs; i++ {
		eta := dEta * float64(i)
		px, py := circlePointAt(r, eta, cx, cy)
		if i == segs {
			px, py = cx+r, cy // Just makes the end point exact; no roundoff error
		}
		dx, dy := circlePrime(r, eta)
		p.CubeBezier(toFixedP(lx+alpha*ldx, ly+alpha*ldy),
			toFixedP(px-alpha*dx, py-alpha*dy), toFixedP(px, py))
		lx, ly, ldx, ldy = px, py, dx, dy
	}
	p.Stop(true)
}

// circlePrime gives tangent vectors for parameterized circle; r radius, eta parameter
func circlePrime(r, eta float64) (px, py float64) {
	return -r * math.Sin(eta), r * math.Cos(eta)
}

// circlePointAt gives points for parameterized circle; r radius, eta parameter, center cx, cy
func circlePointAt(r, eta, cx, cy float64) (px, py float64) {
	return cx + r*math.Cos(eta), cy + r*math.Sin(eta)
}

// ToPath returns the outline of a geometric shape, and
// the style to paint it with. Texts have no path and return
// a nil path.
func ToPath(s Shape) (Path, Style) {
	var p Path
	switch s := s.(type) {
	case Rect:
		p.addRect(float64(s.X), float64(s.Y), float64(s.X+s.W), float64(s.Y+s.H))
		return p, s.Style
	case Circle:
		p.addCircle(float64(s.CX), float64(s.CY), float64(s.R))
		return p, s.Style
	case Line:
		p.addSegment(float64(s.X1), float64(s.Y1), float64(s.X2), float64(s.Y2))
		st := s.Style
		st.Fill = nil
		return p, st
	}
	return nil, Style{}
}
