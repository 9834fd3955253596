// Implements a PDF backend to render chord charts,
// by wrapping github.com/jung-kurt/gofpdf.
package chartpdf

import (
	"image/color"
	"io"
	"strings"

	"github.com/benoitkugler/chordchart/canvas"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ canvas.Driver  = Renderer{}
	_ canvas.Filler  = filler{}
	_ canvas.Stroker = stroker{}
)

// Renderer writes the primitives on the current page of a pdf,
// using the canvas pixels as the pdf unit.
type Renderer struct {
	pdf *gofpdf.Fpdf
	// core fonts are encoded with cp1252
	translate func(string) string
}

// implements the common path commands,
// shared by the filler and the stroker
type pather struct {
	pdf *gofpdf.Fpdf
}

// implements the filling operation
type filler struct {
	pather
}

// implements the stroking operation
type stroker struct {
	pather
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf, translate: pdf.UnicodeTranslatorFromDescriptor("")}
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func rgb(c color.Color) (r, g, b int) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(n.R), int(n.G), int(n.B)
}

func (p pather) Clear() {}

func (p pather) Start(a fixed.Point26_6) {
	p.pdf.MoveTo(fixedTof(a))
}

func (p pather) Line(b fixed.Point26_6) {
	p.pdf.LineTo(fixedTof(b))
}

func (p pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
}

func (p pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

func (f filler) SetColor(c color.Color) {
	f.pdf.SetFillColor(rgb(c))
}

func (f filler) Draw() {
	f.pdf.DrawPath("f")
}

func (s stroker) SetColor(c color.Color) {
	s.pdf.SetDrawColor(rgb(c))
}

func (s stroker) SetStrokeWidth(width fixed.Int26_6) {
	s.pdf.SetLineWidth(float64(width) / 64)
}

func (s stroker) Draw() {
	s.pdf.DrawPath("D")
}

func (rd Renderer) SetupDrawers(willFill, willStroke bool) (f canvas.Filler, s canvas.Stroker) {
	if willFill {
		f = filler{pather{pdf: rd.pdf}}
	}
	if willStroke {
		s = stroker{pather{pdf: rd.pdf}}
	}
	return f, s
}

// fonts available in every pdf reader
var coreFonts = map[string]string{
	"arial":     "Arial",
	"helvetica": "Helvetica",
	"times":     "Times",
	"courier":   "Courier",
}

func (rd Renderer) DrawText(t canvas.Text) {
	family, ok := coreFonts[strings.ToLower(t.FontFamily)]
	if !ok {
		family = "Helvetica"
	}
	size := float64(t.FontSize)
	if size <= 0 {
		size = 12
	}
	rd.pdf.SetFont(family, "", size)
	if t.Color != nil {
		rd.pdf.SetTextColor(rgb(t.Color))
	} else {
		rd.pdf.SetTextColor(0, 0, 0)
	}

	content := rd.translate(t.Content)
	x, y := float64(t.X), float64(t.Y)
	switch t.Anchor {
	case canvas.AnchorMiddle:
		x -= rd.pdf.GetStringWidth(content) / 2
	case canvas.AnchorEnd:
		x -= rd.pdf.GetStringWidth(content)
	}
	if t.MiddleBaseline {
		y += 0.35 * size // about half the height of capitals
	}
	rd.pdf.Text(x, y, content)
}

// RenderCanvas returns a one page pdf, with the size of `c`,
// containing its primitives.
// Errors are accumulated in the pdf: see gofpdf.Fpdf.Error.
func RenderCanvas(c *canvas.Canvas) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P", // the custom size already has the right orientation
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(c.Width), Ht: float64(c.Height)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	c.Draw(NewRenderer(pdf))
	return pdf
}

// WritePDF renders `c` and writes the pdf document to `w`.
func WritePDF(c *canvas.Canvas, w io.Writer) error {
	return RenderCanvas(c).Output(w)
}

// SavePDF renders `c` and writes it to `path`.
// On failure, a *canvas.SaveError is returned and no file is created.
func SavePDF(c *canvas.Canvas, path string) error {
	return canvas.WriteFile(path, func(w io.Writer) error { return WritePDF(c, w) })
}
