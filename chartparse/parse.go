// Decodes YAML chart documents into the chart model,
// validating them and classifying every failure.
// See the error types for the possible failures.
package chartparse

import (
	"fmt"
	"os"

	"github.com/benoitkugler/chordchart/chart"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	qualityLabels = []string{"major", "minor", "sus2", "sus4", "aug", "dim"}
	elementTypes  = []string{"measure", "repeat", "spacer"}
	repeatSigns   = []string{"begin", "end"}
)

type (
	// chordDoc uses pointers to detect missing keys
	chordDoc struct {
		Degree  *int    `yaml:"degree"`
		Quality *string `yaml:"quality"`
	}

	measureDoc struct {
		Chords *yaml.Node `yaml:"chord"`
	}

	collectionDoc struct {
		Measures *yaml.Node `yaml:"measures"`
	}

	lineDoc struct {
		Line *yaml.Node `yaml:"line"`
	}

	elementDoc struct {
		Type    *string   `yaml:"type"`
		Content yaml.Node `yaml:"content"`
	}
)

// Parser decodes chart documents. Lenient resolutions
// (unknown quality labels in line charts) are reported on its logger.
type Parser struct {
	log *zap.Logger
}

// NewParser returns a parser logging to `log`.
// A nil logger disables logging.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log}
}

var defaultParser = NewParser(nil)

// ParseChord decodes a chord document, using a silent parser.
func ParseChord(data []byte) (chart.Chord, error) { return defaultParser.ParseChord(data) }

// ParseMeasure decodes a measure document, using a silent parser.
func ParseMeasure(data []byte) (chart.Measure, error) { return defaultParser.ParseMeasure(data) }

// ParseMeasureCollection decodes a measure collection document, using a silent parser.
func ParseMeasureCollection(data []byte) (chart.MeasureCollection, error) {
	return defaultParser.ParseMeasureCollection(data)
}

// ParseLine decodes a line chart, using a silent parser.
func ParseLine(data []byte) (chart.Line, error) { return defaultParser.ParseLine(data) }

func ParseChordFile(path string) (chart.Chord, error) {
	return parseFile(path, defaultParser.ParseChord)
}

func ParseMeasureFile(path string) (chart.Measure, error) {
	return parseFile(path, defaultParser.ParseMeasure)
}

func ParseMeasureCollectionFile(path string) (chart.MeasureCollection, error) {
	return parseFile(path, defaultParser.ParseMeasureCollection)
}

func ParseLineFile(path string) (chart.Line, error) {
	return parseFile(path, defaultParser.ParseLine)
}

func (p *Parser) ParseChordFile(path string) (chart.Chord, error) {
	return parseFile(path, p.ParseChord)
}

func (p *Parser) ParseMeasureFile(path string) (chart.Measure, error) {
	return parseFile(path, p.ParseMeasure)
}

func (p *Parser) ParseMeasureCollectionFile(path string) (chart.MeasureCollection, error) {
	return parseFile(path, p.ParseMeasureCollection)
}

func (p *Parser) ParseLineFile(path string) (chart.Line, error) {
	return parseFile(path, p.ParseLine)
}

// readFile reads the whole input, before any decoding
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	return data, nil
}

func parseFile[T any](path string, parse func([]byte) (T, error)) (T, error) {
	data, err := readFile(path)
	if err != nil {
		var zero T
		return zero, err
	}
	out, err := parse(data)
	if err != nil {
		return out, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// decodeRoot decodes the generic tree and checks that
// the top-level value is a mapping.
func decodeRoot(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &FormatError{Msg: "invalid YAML", Err: err}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, &FormatError{Msg: "empty document"}
	}
	root := doc.Content[0]
	if root.Kind == yaml.AliasNode {
		root = root.Alias
	}
	if root.Kind != yaml.MappingNode {
		return nil, &FormatError{Msg: fmt.Sprintf("expected a mapping at top level, got %s (line %d)",
			kindName(root), root.Line)}
	}
	return root, nil
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.MappingNode:
		return "a mapping"
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return "null"
		}
		return "a scalar"
	default:
		return "an alias"
	}
}

// decode wraps the yaml structural errors as FormatError
func decode(n *yaml.Node, out interface{}) error {
	if err := n.Decode(out); err != nil {
		return &FormatError{Msg: fmt.Sprintf("unexpected structure (line %d)", n.Line), Err: err}
	}
	return nil
}

// sequence checks that `n`, the value of `field`, is a sequence
func sequence(n *yaml.Node, field string, parentLine int) ([]*yaml.Node, error) {
	if n == nil {
		return nil, &MissingFieldError{Field: field, Line: parentLine}
	}
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.SequenceNode {
		return nil, &FormatError{Msg: fmt.Sprintf("field %q must be a sequence, got %s (line %d)",
			field, kindName(n), n.Line)}
	}
	return n.Content, nil
}

// unwrapChord returns the inner mapping of an entry written
// as {chord: {degree, quality}}, or `n` itself.
func unwrapChord(n *yaml.Node) *yaml.Node {
	if n.Kind != yaml.MappingNode {
		return n
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == "chord" {
			return n.Content[i+1]
		}
	}
	return n
}

// readChordDoc decodes the two chord fields, checking for their presence.
func readChordDoc(n *yaml.Node) (degree int, quality string, err error) {
	var doc chordDoc
	if err := decode(n, &doc); err != nil {
		return 0, "", err
	}
	if doc.Degree == nil {
		return 0, "", &MissingFieldError{Field: "degree", Line: n.Line}
	}
	if doc.Quality == nil {
		return 0, "", &MissingFieldError{Field: "quality", Line: n.Line}
	}
	return *doc.Degree, *doc.Quality, nil
}

// decodeChord is the strict path: the quality must be a known label.
func decodeChord(n *yaml.Node) (chart.Chord, error) {
	degree, label, err := readChordDoc(n)
	if err != nil {
		return chart.Chord{}, err
	}
	quality, ok := chart.ParseQuality(label)
	if !ok {
		return chart.Chord{}, &InvalidValueError{Field: "quality", Value: label, Allowed: qualityLabels, Line: n.Line}
	}
	return chart.Chord{Degree: degree, Quality: quality}, nil
}

func (p *Parser) ParseChord(data []byte) (chart.Chord, error) {
	root, err := decodeRoot(data)
	if err != nil {
		return chart.Chord{}, err
	}
	chord, err := decodeChord(root)
	if err != nil {
		return chart.Chord{}, err
	}
	if !chord.Valid() {
		return chart.Chord{}, &InvalidDegreeError{Degree: chord.Degree}
	}
	return chord, nil
}

// decodeMeasure does not check the degrees
func decodeMeasure(n *yaml.Node) (chart.Measure, error) {
	var doc measureDoc
	if err := decode(n, &doc); err != nil {
		return chart.Measure{}, err
	}
	entries, err := sequence(doc.Chords, "chord", n.Line)
	if err != nil {
		return chart.Measure{}, err
	}
	var out chart.Measure
	for _, entry := range entries {
		chord, err := decodeChord(unwrapChord(entry))
		if err != nil {
			return chart.Measure{}, err
		}
		out.AddChord(chord)
	}
	return out, nil
}

func checkDegrees(m chart.Measure, measureIndex int) error {
	for _, c := range m.Chords() {
		if !c.Valid() {
			return &InvalidDegreeError{Degree: c.Degree, Measure: measureIndex}
		}
	}
	return nil
}

func (p *Parser) ParseMeasure(data []byte) (chart.Measure, error) {
	root, err := decodeRoot(data)
	if err != nil {
		return chart.Measure{}, err
	}
	m, err := decodeMeasure(root)
	if err != nil {
		return chart.Measure{}, err
	}
	if err := checkDegrees(m, 0); err != nil {
		return chart.Measure{}, err
	}
	return m, nil
}

func (p *Parser) ParseMeasureCollection(data []byte) (chart.MeasureCollection, error) {
	root, err := decodeRoot(data)
	if err != nil {
		return chart.MeasureCollection{}, err
	}
	var doc collectionDoc
	if err := decode(root, &doc); err != nil {
		return chart.MeasureCollection{}, err
	}
	nodes, err := sequence(doc.Measures, "measures", root.Line)
	if err != nil {
		return chart.MeasureCollection{}, err
	}
	var out chart.MeasureCollection
	for i, node := range nodes {
		m, err := decodeMeasure(node)
		if err != nil {
			return chart.MeasureCollection{}, err
		}
		if err := checkDegrees(m, i+1); err != nil {
			return chart.MeasureCollection{}, err
		}
		out.AddMeasure(m)
	}
	return out, nil
}

func (p *Parser) ParseLine(data []byte) (chart.Line, error) {
	root, err := decodeRoot(data)
	if err != nil {
		return chart.Line{}, err
	}
	var doc lineDoc
	if err := decode(root, &doc); err != nil {
		return chart.Line{}, err
	}
	nodes, err := sequence(doc.Line, "line", root.Line)
	if err != nil {
		return chart.Line{}, err
	}
	var out chart.Line
	for i, node := range nodes {
		element, err := p.decodeElement(node, i+1)
		if err != nil {
			return chart.Line{}, err
		}
		out.AddElement(element)
	}
	return out, nil
}

// decodeElement decodes the tagged line element at 1-based `index`.
func (p *Parser) decodeElement(n *yaml.Node, index int) (chart.LineElement, error) {
	var doc elementDoc
	if err := decode(n, &doc); err != nil {
		return nil, err
	}
	if doc.Type == nil {
		return nil, &MissingFieldError{Field: "type", Line: n.Line}
	}
	switch *doc.Type {
	case "measure":
		if doc.Content.Kind == 0 {
			return nil, &MissingFieldError{Field: "content", Line: n.Line}
		}
		entries, err := sequence(&doc.Content, "content", n.Line)
		if err != nil {
			return nil, err
		}
		specs := make([]chart.ChordSpec, len(entries))
		for i, entry := range entries {
			specs[i], err = p.decodeChordSpec(unwrapChord(entry), index)
			if err != nil {
				return nil, err
			}
		}
		return chart.MeasureElement{Chords: specs}, nil
	case "repeat":
		if doc.Content.Kind == 0 {
			return nil, &MissingFieldError{Field: "content", Line: n.Line}
		}
		content := &doc.Content
		if content.Kind == yaml.AliasNode {
			content = content.Alias
		}
		sign, ok := chart.ParseRepeatSign(content.Value)
		if content.Kind != yaml.ScalarNode || !ok {
			return nil, &InvalidValueError{Field: "content", Value: content.Value, Allowed: repeatSigns, Line: content.Line}
		}
		return chart.RepeatElement{Sign: sign}, nil
	case "spacer":
		return chart.SpacerElement{}, nil
	default:
		return nil, &InvalidValueError{Field: "type", Value: *doc.Type, Allowed: elementTypes, Line: n.Line}
	}
}

// decodeChordSpec is the lenient path: the quality label is kept as is,
// and resolves to Major at render time when unknown.
func (p *Parser) decodeChordSpec(n *yaml.Node, index int) (chart.ChordSpec, error) {
	degree, label, err := readChordDoc(n)
	if err != nil {
		return chart.ChordSpec{}, err
	}
	if degree < 1 {
		return chart.ChordSpec{}, &InvalidDegreeError{Degree: degree, Element: index}
	}
	if _, ok := chart.ResolveQualityLabel(label); !ok {
		p.log.Warn("unknown chord quality, using major",
			zap.String("quality", label), zap.Int("element", index), zap.Int("line", n.Line))
	}
	return chart.ChordSpec{Degree: degree, Quality: label}, nil
}
