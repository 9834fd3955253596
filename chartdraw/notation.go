package chartdraw

import (
	"strconv"

	"github.com/benoitkugler/chordchart/chart"
)

// Notation selects how chord qualities are written.
type Notation uint8

const (
	Regular Notation = iota // m, aug, dim
	Compact                 // -, +, °
)

func (n Notation) String() string {
	switch n {
	case Regular:
		return "regular"
	case Compact:
		return "compact"
	default:
		return "<unknown Notation>"
	}
}

var suffixes = [...][2]string{
	chart.Major: {Regular: "", Compact: ""},
	chart.Minor: {Regular: "m", Compact: "-"},
	chart.Sus2:  {Regular: "sus2", Compact: "sus2"},
	chart.Sus4:  {Regular: "sus4", Compact: "sus4"},
	chart.Aug:   {Regular: "aug", Compact: "+"},
	chart.Dim:   {Regular: "dim", Compact: "°"},
}

// Suffix returns the text appended to the degree of a chord
// with quality `q`, or an empty string for an unknown quality or notation.
func Suffix(q chart.Quality, n Notation) string {
	if int(q) >= len(suffixes) || n > Compact {
		return ""
	}
	return suffixes[q][n]
}

// Label returns the displayed text of `c`: its degree followed
// by its quality suffix.
func Label(c chart.Chord, n Notation) string {
	return strconv.Itoa(c.Degree) + Suffix(c.Quality, n)
}
