package chart

// Measure is one bar: an ordered group of chords.
// It may be empty and may hold the same chord several times.
// The zero value is an empty measure.
type Measure struct {
	chords []Chord
}

// NewMeasure returns a measure holding a copy of `chords`.
func NewMeasure(chords ...Chord) Measure {
	return Measure{chords: append([]Chord(nil), chords...)}
}

// AddChord appends a chord at the end of the measure.
func (m *Measure) AddChord(c Chord) {
	m.chords = append(m.chords, c)
}

// Chords returns a copy of the chords, in order.
func (m Measure) Chords() []Chord {
	return append([]Chord(nil), m.chords...)
}

// Len returns the number of chords.
func (m Measure) Len() int { return len(m.chords) }

// MeasureCollection is a chart written as successive bars,
// without repeat marks or spacers.
type MeasureCollection struct {
	measures []Measure
}

func NewMeasureCollection(measures ...Measure) MeasureCollection {
	out := MeasureCollection{measures: make([]Measure, len(measures))}
	for i, m := range measures {
		out.measures[i] = NewMeasure(m.chords...)
	}
	return out
}

func (mc *MeasureCollection) AddMeasure(m Measure) {
	mc.measures = append(mc.measures, NewMeasure(m.chords...))
}

// Measures returns a copy of the measures, in order.
func (mc MeasureCollection) Measures() []Measure {
	out := make([]Measure, len(mc.measures))
	for i, m := range mc.measures {
		out[i] = NewMeasure(m.chords...)
	}
	return out
}

func (mc MeasureCollection) Len() int { return len(mc.measures) }
