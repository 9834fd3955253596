package chart

import "fmt"

// RepeatSign is the boundary of a repeated section.
type RepeatSign uint8

const (
	RepeatBegin RepeatSign = iota
	RepeatEnd
)

func (s RepeatSign) String() string {
	switch s {
	case RepeatBegin:
		return "begin"
	case RepeatEnd:
		return "end"
	default:
		return "<unknown RepeatSign>"
	}
}

// ParseRepeatSign resolves the label used in line documents.
func ParseRepeatSign(label string) (RepeatSign, bool) {
	switch label {
	case "begin":
		return RepeatBegin, true
	case "end":
		return RepeatEnd, true
	}
	return 0, false
}

// ChordSpec is a chord as written in a line chart: the quality
// is kept as a free label and resolved only at render time.
type ChordSpec struct {
	Degree  int
	Quality string
}

// Chord resolves the quality label, using Major for an unknown one.
// See ResolveQualityLabel.
func (cs ChordSpec) Chord() Chord {
	q, _ := ResolveQualityLabel(cs.Quality)
	return Chord{Degree: cs.Degree, Quality: q}
}

// LineElement is one of MeasureElement, RepeatElement or SpacerElement.
// The set is closed: other packages can't add implementations.
type LineElement interface {
	isLineElement()
}

type (
	// MeasureElement is a bar of chord specs.
	MeasureElement struct {
		Chords []ChordSpec
	}

	// RepeatElement is a begin or end repeat mark.
	RepeatElement struct {
		Sign RepeatSign
	}

	// SpacerElement is a visual breathing space between measures.
	SpacerElement struct{}
)

func (MeasureElement) isLineElement() {}
func (RepeatElement) isLineElement()  {}
func (SpacerElement) isLineElement()  {}

// Measure resolves the chord specs into a Measure.
func (me MeasureElement) Measure() Measure {
	chords := make([]Chord, len(me.Chords))
	for i, cs := range me.Chords {
		chords[i] = cs.Chord()
	}
	return Measure{chords: chords}
}

// ElementKind returns "measure", "repeat" or "spacer",
// the type tag used in line documents.
func ElementKind(e LineElement) string {
	switch e.(type) {
	case MeasureElement:
		return "measure"
	case RepeatElement:
		return "repeat"
	case SpacerElement:
		return "spacer"
	default:
		panic(fmt.Sprintf("unexpected line element %T", e))
	}
}

// Line is one horizontal staff: measures interspersed with
// repeat marks and spacers. Element order is rendering order.
type Line struct {
	elements []LineElement
}

// NewLine returns a line holding copies of `elements`.
// nil elements are skipped.
func NewLine(elements ...LineElement) Line {
	out := Line{elements: make([]LineElement, 0, len(elements))}
	for _, e := range elements {
		out.AddElement(e)
	}
	return out
}

// AddElement appends an element at the end of the line.
// A nil element is ignored.
func (l *Line) AddElement(e LineElement) {
	if e == nil {
		return
	}
	l.elements = append(l.elements, copyElement(e))
}

// Elements returns a copy of the elements, in order.
func (l Line) Elements() []LineElement {
	out := make([]LineElement, len(l.elements))
	for i, e := range l.elements {
		out[i] = copyElement(e)
	}
	return out
}

func (l Line) Len() int { return len(l.elements) }

// copyElement detaches the chord specs slice of a measure element
func copyElement(e LineElement) LineElement {
	if me, ok := e.(MeasureElement); ok {
		return MeasureElement{Chords: append([]ChordSpec(nil), me.Chords...)}
	}
	return e
}
