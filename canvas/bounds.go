package canvas

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// exact extent of a path, used to check that a layout
// fits in its canvas

type segment [2]fixed.Point26_6

func (l segment) criticalPoints() (tX, tY []float64) {
	return nil, nil
}

func (l segment) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := fixedTof(l[0])
	p1x, p1y := fixedTof(l[1])
	return (p1x-p0x)*t + p0x, (p1y-p0y)*t + p0y
}

type cubicBezier [4]fixed.Point26_6

func (cu cubicBezier) criticalPoints() (tX, tY []float64) {
	p1x, p1y := fixedTof(cu[0])
	c1x, c1y := fixedTof(cu[1])
	c2x, c2y := fixedTof(cu[2])
	p2x, p2y := fixedTof(cu[3])

	aX, bX, cX := cubicDerivative(p1x, c1x, c2x, p2x)
	aY, bY, cY := cubicDerivative(p1y, c1y, c2y, p2y)

	return quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)
}

func (cu cubicBezier) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := fixedTof(cu[0])
	p1x, p1y := fixedTof(cu[1])
	p2x, p2y := fixedTof(cu[2])
	p3x, p3y := fixedTof(cu[3])
	return bezierSpline(p0x, p1x, p2x, p3x, t), bezierSpline(p0y, p1y, p2y, p3y, t)
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

// cubic polynomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// derivative of bezierSpline, as at^2 + bt + c
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

type bezier interface {
	// compute the t zeroing the derivative
	criticalPoints() (tX, tY []float64)
	// compute the point a time t
	evaluateCurve(t float64) (x, y float64)
}

func computeBoundingBox(curve bezier) fixed.Rectangle26_6 {
	resX, resY := curve.criticalPoints()

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	// add begin and end point
	for _, t := range append(append(resX, 0, 1), resY...) {
		if !(0 <= t && t <= 1) {
			continue
		}
		x, y := curve.evaluateCurve(t)
		minX, minY = math.Min(x, minX), math.Min(y, minY)
		maxX, maxY = math.Max(x, maxX), math.Max(y, maxY)
	}
	return fixed.Rectangle26_6{Min: toFixedP(minX, minY), Max: toFixedP(maxX, maxY)}
}

// Bounds returns the smallest rectangle containing the path.
// The control points of the curves are not included.
// An empty path has empty bounds.
func (p Path) Bounds() fixed.Rectangle26_6 {
	var (
		bbox         fixed.Rectangle26_6
		current      fixed.Point26_6
		start, first = fixed.Point26_6{}, true
	)
	union := func(r fixed.Rectangle26_6) {
		if first {
			bbox, first = r, false
			return
		}
		// Rectangle26_6.Union ignores degenerate rectangles, such as vertical segments
		bbox.Min.X, bbox.Min.Y = min26_6(bbox.Min.X, r.Min.X), min26_6(bbox.Min.Y, r.Min.Y)
		bbox.Max.X, bbox.Max.Y = max26_6(bbox.Max.X, r.Max.X), max26_6(bbox.Max.Y, r.Max.Y)
	}
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			current, start = fixed.Point26_6(op), fixed.Point26_6(op)
			union(fixed.Rectangle26_6{Min: current, Max: current}) // degenerate case
		case LineTo:
			union(computeBoundingBox(segment{current, fixed.Point26_6(op)}))
			current = fixed.Point26_6(op)
		case CubicTo:
			union(computeBoundingBox(cubicBezier{current, op[0], op[1], op[2]}))
			current = op[2]
		case Close:
			current = start
		}
	}
	return bbox
}

func min26_6(a, b fixed.Int26_6) fixed.Int26_6 {
	if a < b {
		return a
	}
	return b
}

func max26_6(a, b fixed.Int26_6) fixed.Int26_6 {
	if a > b {
		return a
	}
	return b
}

// Bounds returns the smallest rectangle containing the shapes of the group.
// Texts only contribute their anchor point, and stroke widths are ignored.
func (g Group) Bounds() fixed.Rectangle26_6 {
	var all Path
	for _, s := range g.Shapes {
		if t, ok := s.(Text); ok {
			all.Start(toFixedP(float64(t.X), float64(t.Y)))
			continue
		}
		p, _ := ToPath(s)
		all = append(all, p...)
	}
	return all.Bounds()
}
