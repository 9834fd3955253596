package chartdraw

import (
	"fmt"
	"strconv"

	"github.com/benoitkugler/chordchart/canvas"
	"github.com/benoitkugler/chordchart/chart"
	"github.com/benoitkugler/chordchart/chartparse"
	"go.uber.org/zap"
	"golang.org/x/image/math/fixed"
)

// Layout constants, in pixels.
const (
	Width  = 800
	Height = 400

	Spacing     = 100 // between two chords
	HalfSpacing = Spacing / 2

	CircleRadius    = 30
	FontFamily      = "Arial"
	LabelFontSize   = 20
	CaptionFontSize = 14

	// default cursor
	StartX = 100
	StartY = 200
)

// repeat and spacer geometry
const (
	barHalfHeight = 25
	barGap        = 6 // between the thick and the thin bar
	thickBar      = 3
	thinBar       = 1
	dotGap        = 8 // between the thin bar and the dots
	dotOffset     = 8 // vertical, from the cursor
	dotRadius     = 3
	spacerRadius  = 4
)

// Options parametrize a Renderer.
type Options struct {
	Notation Notation
	// Diagram renders standalone chords with
	// RenderChordDiagram instead of RenderChord.
	Diagram bool
	// Log may be nil
	Log *zap.Logger
}

// Renderer accumulates the primitives of a chart on
// a canvas of fixed size. It is not safe for concurrent use.
type Renderer struct {
	canvas *canvas.Canvas
	opts   Options
	log    *zap.Logger
}

// NewRenderer returns a renderer with an empty canvas.
func NewRenderer(opts Options) *Renderer {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{canvas: canvas.New(Width, Height), opts: opts, log: log}
}

// Canvas returns the underlying canvas.
func (r *Renderer) Canvas() *canvas.Canvas { return r.canvas }

// Save writes the canvas as SVG. On failure, a *canvas.SaveError is returned.
func (r *Renderer) Save(path string) error { return r.canvas.Save(path) }

// add appends `g` to the canvas, warning when it is not
// entirely inside the canvas area.
func (r *Renderer) add(g canvas.Group) {
	r.canvas.Add(g)
	if len(g.Shapes) == 0 {
		return
	}
	b := g.Bounds()
	if b.Min.X < 0 || b.Min.Y < 0 || b.Max.X > fixed.I(Width) || b.Max.Y > fixed.I(Height) {
		r.log.Warn("element outside canvas", zap.String("class", g.Class), zap.String("id", g.ID),
			zap.Int("minX", b.Min.X.Floor()), zap.Int("minY", b.Min.Y.Floor()),
			zap.Int("maxX", b.Max.X.Ceil()), zap.Int("maxY", b.Max.Y.Ceil()))
	}
}

// InitBackground paints the whole canvas in white.
func (r *Renderer) InitBackground() *Renderer {
	r.add(canvas.Group{Class: "background", Shapes: []canvas.Shape{
		canvas.Rect{W: Width, H: Height, Style: canvas.Style{Fill: canvas.White}},
	}})
	return r
}

func (r *Renderer) label(c chart.Chord, x, y int) canvas.Text {
	return canvas.Text{
		X: x, Y: y, Content: Label(c, r.opts.Notation),
		FontFamily: FontFamily, FontSize: LabelFontSize,
		Anchor: canvas.AnchorMiddle, MiddleBaseline: true,
	}
}

// RenderChord adds the label of `c`, centered on (x, y).
func (r *Renderer) RenderChord(c chart.Chord, x, y int) *Renderer {
	r.add(canvas.Group{Class: "chord", Shapes: []canvas.Shape{r.label(c, x, y)}})
	return r
}

// RenderChordDiagram draws `c` as a circle containing its degree,
// with the quality name written below.
func (r *Renderer) RenderChordDiagram(c chart.Chord, x, y int) *Renderer {
	r.add(canvas.Group{Class: "chord-diagram", Shapes: []canvas.Shape{
		canvas.Circle{CX: x, CY: y, R: CircleRadius, Style: canvas.Style{Stroke: canvas.Black, StrokeWidth: 2}},
		canvas.Text{
			X: x, Y: y, Content: strconv.Itoa(c.Degree),
			FontFamily: FontFamily, FontSize: LabelFontSize,
			Anchor: canvas.AnchorMiddle, MiddleBaseline: true,
		},
		canvas.Text{
			X: x, Y: y + CircleRadius + 20, Content: c.Quality.Name(),
			FontFamily: FontFamily, FontSize: CaptionFontSize,
			Anchor: canvas.AnchorMiddle,
		},
	}})
	return r
}

func (r *Renderer) measureGroup(m chart.Measure, x, y int) canvas.Group {
	chords := m.Chords()
	g := canvas.Group{Class: "measure", Shapes: make([]canvas.Shape, len(chords))}
	for i, c := range chords {
		g.Shapes[i] = r.label(c, x+i*Spacing, y)
	}
	return g
}

// RenderMeasure adds the chords of `m`, the i-th one being
// centered on (x + i * Spacing, y).
func (r *Renderer) RenderMeasure(m chart.Measure, x, y int) *Renderer {
	r.add(r.measureGroup(m, x, y))
	return r
}

func vbar(x, y, width int) canvas.Line {
	return canvas.Line{
		X1: x, Y1: y - barHalfHeight, X2: x, Y2: y + barHalfHeight,
		Style: canvas.Style{Stroke: canvas.Black, StrokeWidth: width},
	}
}

func dot(x, y, radius int) canvas.Circle {
	return canvas.Circle{CX: x, CY: y, R: radius, Style: canvas.Style{Fill: canvas.Black}}
}

// repeatGroup draws a thick and a thin bar, with two dots
// on the inner side of the repeated section.
func repeatGroup(sign chart.RepeatSign, x, y int) canvas.Group {
	g := canvas.Group{Class: "repeat-" + sign.String()}
	var thick, thin, dots int
	switch sign {
	case chart.RepeatBegin: // | |:
		thick, thin = x, x+barGap
		dots = thin + dotGap
	case chart.RepeatEnd: // :| |
		dots = x
		thin = dots + dotGap
		thick = thin + barGap
	}
	g.Shapes = []canvas.Shape{
		vbar(thick, y, thickBar), vbar(thin, y, thinBar),
		dot(dots, y-dotOffset, dotRadius), dot(dots, y+dotOffset, dotRadius),
	}
	return g
}

// RenderLine lays out the elements of `line` from left to right,
// starting at (x, y). See LayoutLine for the positions.
func (r *Renderer) RenderLine(line chart.Line, x, y int) *Renderer {
	for _, p := range LayoutLine(line, x) {
		var g canvas.Group
		switch e := p.Element.(type) {
		case chart.MeasureElement:
			g = r.measureGroup(e.Measure(), p.X, y)
		case chart.RepeatElement:
			g = repeatGroup(e.Sign, p.X, y)
		case chart.SpacerElement:
			g = canvas.Group{Class: "spacer", Shapes: []canvas.Shape{dot(p.X, y, spacerRadius)}}
		}
		g.ID = "element-" + strconv.Itoa(p.Index+1)
		r.add(g)
		r.log.Debug("line element placed", zap.String("kind", chart.ElementKind(p.Element)),
			zap.Int("x", p.X), zap.Int("next", p.Next))
	}
	return r
}

// RenderMeasures lays out the measures of `mc` from left to right,
// starting at (x, y), separated by bar lines.
func (r *Renderer) RenderMeasures(mc chart.MeasureCollection, x, y int) *Renderer {
	for i, m := range mc.Measures() {
		if i > 0 {
			// halfway between the chords around it
			barX := x - (Spacing-HalfSpacing)/2
			r.add(canvas.Group{Class: "bar", Shapes: []canvas.Shape{vbar(barX, y, thinBar)}})
			x += HalfSpacing
		}
		g := r.measureGroup(m, x, y)
		g.ID = "measure-" + strconv.Itoa(i+1)
		r.add(g)
		x += Spacing * m.Len()
	}
	return r
}

// RenderDocument renders any parsed document at (x, y).
func (r *Renderer) RenderDocument(doc chartparse.Document, x, y int) error {
	switch doc.Kind {
	case chartparse.KindChord:
		if r.opts.Diagram {
			r.RenderChordDiagram(doc.Chord, x, y)
		} else {
			r.RenderChord(doc.Chord, x, y)
		}
	case chartparse.KindMeasure:
		r.RenderMeasure(doc.Measure, x, y)
	case chartparse.KindMeasureCollection:
		r.RenderMeasures(doc.Measures, x, y)
	case chartparse.KindLine:
		r.RenderLine(doc.Line, x, y)
	default:
		return fmt.Errorf("unsupported document kind %s", doc.Kind)
	}
	return nil
}
