package chartdraw

import "github.com/benoitkugler/chordchart/chart"

// Placement is the horizontal position of one line element.
type Placement struct {
	Index   int // in the line, 0-based
	Element chart.LineElement
	X       int // cursor when the element is rendered
	Next    int // cursor after the element
}

// advance returns the horizontal room taken by `e`.
func advance(e chart.LineElement) int {
	switch e := e.(type) {
	case chart.MeasureElement:
		return Spacing * len(e.Chords)
	case chart.RepeatElement, chart.SpacerElement:
		return HalfSpacing
	default:
		panic("exhaustive type switch")
	}
}

// LayoutLine walks the elements of `line` from left to right,
// starting at `x`. Each placement only depends on the previous ones.
func LayoutLine(line chart.Line, x int) []Placement {
	elements := line.Elements()
	out := make([]Placement, len(elements))
	for i, e := range elements {
		next := x + advance(e)
		out[i] = Placement{Index: i, Element: e, X: x, Next: next}
		x = next
	}
	return out
}
