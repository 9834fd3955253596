package chartparse

import (
	"errors"
	"fmt"
	"testing"

	"github.com/benoitkugler/chordchart/chart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"
)

func TestParseChordFile(t *testing.T) {
	chord, err := ParseChordFile("testdata/triads/test_minor.yaml")
	require.NoError(t, err)
	assert.Equal(t, chart.Chord{Degree: 1, Quality: chart.Minor}, chord)
}

func TestParseAllQualities(t *testing.T) {
	for _, test := range []struct {
		path     string
		expected chart.Quality
	}{
		{"testdata/triads/test_major.yaml", chart.Major},
		{"testdata/triads/test_minor.yaml", chart.Minor},
		{"testdata/triads/test_sus2.yaml", chart.Sus2},
		{"testdata/triads/test_sus4.yaml", chart.Sus4},
		{"testdata/triads/test_aug.yaml", chart.Aug},
		{"testdata/triads/test_dim.yaml", chart.Dim},
	} {
		chord, err := ParseChordFile(test.path)
		require.NoError(t, err, test.path)
		assert.Equal(t, test.expected, chord.Quality, test.path)
	}
}

func TestChordRoundTrip(t *testing.T) {
	for degree := 1; degree <= 12; degree++ {
		for _, q := range chart.Qualities {
			data, err := yaml.Marshal(map[string]interface{}{"degree": degree, "quality": q.String()})
			require.NoError(t, err)

			chord, err := ParseChord(data)
			require.NoError(t, err, string(data))
			assert.Equal(t, chart.Chord{Degree: degree, Quality: q}, chord)
		}
	}
}

func TestParseChordErrors(t *testing.T) {
	var (
		formatErr   *FormatError
		missingErr  *MissingFieldError
		valueErr    *InvalidValueError
		degreeErr   *InvalidDegreeError
		notFoundErr *NotFoundError
	)

	_, err := ParseChordFile("testdata/invalid_chords/invalid_chord.yaml")
	assert.True(t, errors.As(err, &formatErr), "%v", err)

	_, err = ParseChordFile("testdata/invalid_chords/sequence.yaml")
	assert.True(t, errors.As(err, &formatErr), "%v", err)

	_, err = ParseChordFile("testdata/invalid_chords/missing_fields.yaml")
	require.True(t, errors.As(err, &missingErr), "%v", err)
	assert.Equal(t, "degree", missingErr.Field)
	assert.False(t, errors.As(err, &valueErr))

	_, err = ParseChordFile("testdata/invalid_chords/invalid_quality.yaml")
	require.True(t, errors.As(err, &valueErr), "%v", err)
	assert.Equal(t, "quality", valueErr.Field)
	assert.Equal(t, "blah", valueErr.Value)
	assert.False(t, errors.As(err, &missingErr))

	_, err = ParseChordFile("testdata/invalid_chords/invalid_degree.yaml")
	require.True(t, errors.As(err, &degreeErr), "%v", err)
	assert.Equal(t, 0, degreeErr.Degree)
	assert.Contains(t, err.Error(), "must be positive")

	_, err = ParseChordFile("testdata/nonexistent.yaml")
	require.True(t, errors.As(err, &notFoundErr), "%v", err)
	assert.Equal(t, "testdata/nonexistent.yaml", notFoundErr.Path)
	assert.False(t, errors.As(err, &formatErr))
	assert.Contains(t, err.Error(), "no such file or directory")
}

func TestParseChordErrorKinds(t *testing.T) {
	for _, test := range []struct {
		data  string
		check func(error) bool
	}{
		{"", isFormat},
		{"42", isFormat},
		{"[1, 2]", isFormat},
		{"degree: [1]\nquality: major", isFormat},
		{"degree: abc\nquality: major", isFormat},
		{"degree: 1", isMissing},
		{"quality: minor", isMissing},
		{"degree: 1\nquality: Minor", isInvalidValue},
		{"degree: 1\nquality: \"\"", isInvalidValue},
		{"degree: -4\nquality: major", isInvalidDegree},
	} {
		_, err := ParseChord([]byte(test.data))
		assert.True(t, test.check(err), "%q: %v", test.data, err)
	}
}

func isFormat(err error) bool {
	var e *FormatError
	return errors.As(err, &e)
}

func isMissing(err error) bool {
	var e *MissingFieldError
	return errors.As(err, &e)
}

func isInvalidValue(err error) bool {
	var e *InvalidValueError
	return errors.As(err, &e)
}

func isInvalidDegree(err error) bool {
	var e *InvalidDegreeError
	return errors.As(err, &e)
}

func TestParseMeasure(t *testing.T) {
	m, err := ParseMeasureFile("testdata/measures/simple.yaml")
	require.NoError(t, err)
	assert.Equal(t, []chart.Chord{
		{Degree: 1, Quality: chart.Major},
		{Degree: 4, Quality: chart.Major},
		{Degree: 5, Quality: chart.Sus4},
	}, m.Chords())

	m, err = ParseMeasureFile("testdata/measures/wrapped.yaml")
	require.NoError(t, err)
	assert.Equal(t, []chart.Chord{
		{Degree: 2, Quality: chart.Minor},
		{Degree: 5, Quality: chart.Major},
	}, m.Chords())

	m, err = ParseMeasure([]byte("chord: []"))
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestParseMeasureErrors(t *testing.T) {
	_, err := ParseMeasure([]byte("chords: []"))
	assert.True(t, isMissing(err), "%v", err)

	_, err = ParseMeasure([]byte("chord: 3"))
	assert.True(t, isFormat(err), "%v", err)

	_, err = ParseMeasure([]byte("chord:\n  - degree: 1\n    quality: blah"))
	assert.True(t, isInvalidValue(err), "%v", err)

	_, err = ParseMeasure([]byte("chord:\n  - degree: 1\n    quality: major\n  - degree: 0\n    quality: major"))
	var degreeErr *InvalidDegreeError
	require.True(t, errors.As(err, &degreeErr), "%v", err)
	assert.Equal(t, 0, degreeErr.Degree)
	assert.Equal(t, 0, degreeErr.Measure)
}

func TestParseMeasureCollection(t *testing.T) {
	mc, err := ParseMeasureCollectionFile("testdata/measures/collection.yaml")
	require.NoError(t, err)
	require.Equal(t, 3, mc.Len())
	measures := mc.Measures()
	assert.Equal(t, []chart.Chord{{Degree: 1, Quality: chart.Major}, {Degree: 6, Quality: chart.Minor}}, measures[0].Chords())
	assert.Equal(t, []chart.Chord{{Degree: 4, Quality: chart.Major}}, measures[1].Chords())
	assert.Equal(t, []chart.Chord{{Degree: 5, Quality: chart.Aug}, {Degree: 7, Quality: chart.Dim}}, measures[2].Chords())
}

func TestParseMeasureCollectionDegreeIndex(t *testing.T) {
	_, err := ParseMeasureCollectionFile("testdata/measures/collection_invalid_degree.yaml")
	var degreeErr *InvalidDegreeError
	require.True(t, errors.As(err, &degreeErr), "%v", err)
	assert.Equal(t, -2, degreeErr.Degree)
	assert.Equal(t, 3, degreeErr.Measure)
	assert.Contains(t, err.Error(), "measure 3")

	// the reported index follows the position of the offending measure
	for bad := 1; bad <= 4; bad++ {
		doc := "measures:\n"
		for i := 1; i <= 4; i++ {
			degree := i
			if i == bad {
				degree = 1 - i
			}
			doc += fmt.Sprintf("  - chord:\n      - degree: %d\n        quality: major\n", degree)
		}
		_, err := ParseMeasureCollection([]byte(doc))
		require.True(t, errors.As(err, &degreeErr), "%v", err)
		assert.Equal(t, bad, degreeErr.Measure)
	}
}

func TestParseLine(t *testing.T) {
	line, err := ParseLineFile("testdata/lines/repeat.yaml")
	require.NoError(t, err)
	assert.Equal(t, []chart.LineElement{
		chart.RepeatElement{Sign: chart.RepeatBegin},
		chart.MeasureElement{Chords: []chart.ChordSpec{{Degree: 1, Quality: "major"}, {Degree: 4, Quality: "major"}}},
		chart.SpacerElement{},
		chart.MeasureElement{Chords: []chart.ChordSpec{{Degree: 5, Quality: "major"}, {Degree: 1, Quality: "major"}}},
		chart.RepeatElement{Sign: chart.RepeatEnd},
	}, line.Elements())
}

func TestParseLineAliases(t *testing.T) {
	line, err := ParseLine([]byte(`line:
  - type: repeat
    content: &sign begin
  - type: measure
    content: &chords
      - chord: {degree: 1, quality: major}
  - type: measure
    content: *chords
  - type: repeat
    content: *sign
`))
	require.NoError(t, err)
	measure := chart.MeasureElement{Chords: []chart.ChordSpec{{Degree: 1, Quality: "major"}}}
	assert.Equal(t, []chart.LineElement{
		chart.RepeatElement{Sign: chart.RepeatBegin}, measure, measure, chart.RepeatElement{Sign: chart.RepeatBegin},
	}, line.Elements())
}

func TestParseLineLenientQuality(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p := NewParser(zap.New(core))

	line, err := p.ParseLineFile("testdata/lines/lenient.yaml")
	require.NoError(t, err)
	me := line.Elements()[0].(chart.MeasureElement)
	assert.Equal(t, []chart.Chord{{Degree: 2, Quality: chart.Major}, {Degree: 5, Quality: chart.Sus4}}, me.Measure().Chords())

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Minor", entries[0].ContextMap()["quality"])

	// the same label is rejected by the strict chord path
	_, err = ParseChord([]byte("degree: 2\nquality: Minor"))
	assert.True(t, isInvalidValue(err), "%v", err)
}

func TestParseLineErrors(t *testing.T) {
	for _, test := range []struct {
		data  string
		check func(error) bool
	}{
		{"- type: spacer", isFormat},
		{"lines: []", isMissing},
		{"line: spacer", isFormat},
		{"line:\n  - content: begin", isMissing},
		{"line:\n  - type: coda", isInvalidValue},
		{"line:\n  - type: repeat", isMissing},
		{"line:\n  - type: repeat\n    content: middle", isInvalidValue},
		{"line:\n  - type: measure", isMissing},
		{"line:\n  - type: measure\n    content:\n      - chord:\n          quality: major", isMissing},
		{"line:\n  - type: measure\n    content:\n      - chord:\n          degree: x\n          quality: major", isFormat},
	} {
		_, err := ParseLine([]byte(test.data))
		assert.True(t, test.check(err), "%q: %v", test.data, err)
	}

	_, err := ParseLine([]byte("line:\n  - type: spacer\n  - type: measure\n    content:\n      - chord:\n          degree: 0\n          quality: major"))
	var degreeErr *InvalidDegreeError
	require.True(t, errors.As(err, &degreeErr), "%v", err)
	assert.Equal(t, 2, degreeErr.Element)
}

func TestDetectKind(t *testing.T) {
	for _, test := range []struct {
		path string
		kind Kind
	}{
		{"testdata/triads/test_aug.yaml", KindChord},
		{"testdata/measures/simple.yaml", KindMeasure},
		{"testdata/measures/collection.yaml", KindMeasureCollection},
		{"testdata/lines/repeat.yaml", KindLine},
	} {
		doc, err := ParseFile(test.path)
		require.NoError(t, err, test.path)
		assert.Equal(t, test.kind, doc.Kind, test.path)
	}

	doc, err := Parse([]byte("degree: 3\nquality: minor"))
	require.NoError(t, err)
	assert.Equal(t, chart.Chord{Degree: 3, Quality: chart.Minor}, doc.Chord)

	_, err = DetectKind([]byte("title: my song"))
	assert.True(t, isFormat(err), "%v", err)

	_, err = ParseFile("testdata/missing.yaml")
	var notFoundErr *NotFoundError
	assert.True(t, errors.As(err, &notFoundErr))
}
