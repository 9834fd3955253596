// Defines the musical model of a chord chart:
// chords, measures and lines, as produced by the parser
// and consumed by the layout engine.
package chart

// Quality is the color of a chord.
type Quality uint8

const (
	Major Quality = iota
	Minor
	Sus2
	Sus4
	Aug
	Dim
)

// Qualities lists every chord quality, in declaration order.
var Qualities = [...]Quality{Major, Minor, Sus2, Sus4, Aug, Dim}

var qualityLabels = [...]string{
	Major: "major",
	Minor: "minor",
	Sus2:  "sus2",
	Sus4:  "sus4",
	Aug:   "aug",
	Dim:   "dim",
}

// String returns the label used in chart documents.
func (q Quality) String() string {
	if int(q) < len(qualityLabels) {
		return qualityLabels[q]
	}
	return "<unknown Quality>"
}

// Name returns the capitalized label, as printed in chord diagrams.
func (q Quality) Name() string {
	s := q.String()
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// ParseQuality is the strict resolution of a quality label:
// the match is exact and case sensitive, and ok is false
// for any other label.
func ParseQuality(label string) (q Quality, ok bool) {
	for i, l := range qualityLabels {
		if l == label {
			return Quality(i), true
		}
	}
	return Major, false
}

// ResolveQualityLabel is the lenient resolution used by line charts:
// an unrecognized label resolves to Major. ok reports whether the label
// was recognized, so that callers may report the substitution.
//
// TODO: confirm with chart authors whether unknown labels in line charts
// should fail like in ParseQuality instead of falling back to Major.
func ResolveQualityLabel(label string) (q Quality, ok bool) {
	q, ok = ParseQuality(label)
	if !ok {
		return Major, false
	}
	return q, true
}

// Chord is a scale degree with a quality.
// Chords are values: they are never modified once built.
type Chord struct {
	Degree  int
	Quality Quality
}

// Valid reports whether the degree is a positive integer.
func (c Chord) Valid() bool { return c.Degree >= 1 }
