package chartparse

import (
	"fmt"

	"github.com/benoitkugler/chordchart/chart"
)

// Kind identifies the shape of a chart document.
type Kind uint8

const (
	KindChord Kind = iota
	KindMeasure
	KindMeasureCollection
	KindLine
)

func (k Kind) String() string {
	switch k {
	case KindChord:
		return "chord"
	case KindMeasure:
		return "measure"
	case KindMeasureCollection:
		return "measures"
	case KindLine:
		return "line"
	default:
		return fmt.Sprintf("<unknown Kind %d>", k)
	}
}

// Document is a parsed chart of any kind.
// Only the field matching Kind is set.
type Document struct {
	Kind     Kind
	Chord    chart.Chord
	Measure  chart.Measure
	Measures chart.MeasureCollection
	Line     chart.Line
}

// DetectKind inspects the top-level keys of `data`:
// `line`, `measures`, `chord` and `degree` or `quality`
// select, in this order, a line, a collection, a measure or a chord.
func DetectKind(data []byte) (Kind, error) {
	root, err := decodeRoot(data)
	if err != nil {
		return 0, err
	}
	keys := map[string]bool{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		keys[root.Content[i].Value] = true
	}
	switch {
	case keys["line"]:
		return KindLine, nil
	case keys["measures"]:
		return KindMeasureCollection, nil
	case keys["chord"]:
		return KindMeasure, nil
	case keys["degree"], keys["quality"]:
		return KindChord, nil
	}
	return 0, &FormatError{Msg: fmt.Sprintf("unrecognized chart document (line %d), expected one of the keys line, measures, chord or degree", root.Line)}
}

// Parse detects the kind of `data` and decodes it.
func (p *Parser) Parse(data []byte) (Document, error) {
	kind, err := DetectKind(data)
	if err != nil {
		return Document{}, err
	}
	doc := Document{Kind: kind}
	switch kind {
	case KindChord:
		doc.Chord, err = p.ParseChord(data)
	case KindMeasure:
		doc.Measure, err = p.ParseMeasure(data)
	case KindMeasureCollection:
		doc.Measures, err = p.ParseMeasureCollection(data)
	case KindLine:
		doc.Line, err = p.ParseLine(data)
	}
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

// ParseFile reads the file at `path` and decodes it,
// whatever its kind.
func (p *Parser) ParseFile(path string) (Document, error) {
	return parseFile(path, p.Parse)
}

// Parse detects and decodes a document, using a silent parser.
func Parse(data []byte) (Document, error) { return defaultParser.Parse(data) }

// ParseFile detects and decodes a file, using a silent parser.
func ParseFile(path string) (Document, error) { return defaultParser.ParseFile(path) }
