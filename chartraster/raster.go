// Implements a raster backend to render chord charts,
// by wrapping rasterx.
package chartraster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sync"

	"github.com/benoitkugler/chordchart/canvas"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var _ canvas.Driver = (*Renderer)(nil) // assert interface conformance

// Renderer paints canvas primitives into an image.
type Renderer struct {
	img    draw.Image
	dasher stroker // to avoid shared state
	filler filler  // we use separated instance

	faces map[int]font.Face // by size
}

// rasterx scanners take any color
type filler struct{ *rasterx.Filler }

func (f filler) SetColor(c color.Color) { f.Filler.SetColor(c) }

type stroker struct{ *rasterx.Dasher }

func (s stroker) SetColor(c color.Color) { s.Dasher.SetColor(c) }

func (s stroker) SetStrokeWidth(width fixed.Int26_6) {
	s.SetStroke(width, 4*64, rasterx.ButtCap, nil, rasterx.FlatGap, rasterx.MiterClip, nil, 0)
}

// NewRenderer returns a renderer drawing on `img`,
// of size width x height.
func NewRenderer(width, height int, img draw.Image) *Renderer {
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	return &Renderer{
		img:    img,
		dasher: stroker{rasterx.NewDasher(width, height, scanner)},
		filler: filler{rasterx.NewFiller(width, height, scanner)},
		faces:  make(map[int]font.Face),
	}
}

func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (f canvas.Filler, s canvas.Stroker) {
	if willFill {
		f = rd.filler
	}
	if willStroke {
		s = rd.dasher
	}
	return f, s
}

var (
	goRegular     *opentype.Font
	goRegularErr  error
	goRegularOnce sync.Once
)

func parsedGoRegular() (*opentype.Font, error) {
	goRegularOnce.Do(func() {
		goRegular, goRegularErr = opentype.Parse(goregular.TTF)
	})
	return goRegular, goRegularErr
}

// face returns the font used for texts of the given size.
// All font families are rendered with Go Regular.
func (rd *Renderer) face(size int) font.Face {
	if face, ok := rd.faces[size]; ok {
		return face
	}
	var face font.Face = basicfont.Face7x13 // fallback
	if f, err := parsedGoRegular(); err == nil && size > 0 {
		if opFace, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size: float64(size), DPI: 72, Hinting: font.HintingFull,
		}); err == nil {
			face = opFace
		}
	}
	rd.faces[size] = face
	return face
}

func (rd *Renderer) DrawText(t canvas.Text) {
	var c color.Color = canvas.Black
	if t.Color != nil {
		c = t.Color
	}
	d := font.Drawer{Dst: rd.img, Src: image.NewUniform(c), Face: rd.face(t.FontSize)}

	x := fixed.I(t.X)
	switch t.Anchor {
	case canvas.AnchorMiddle:
		x -= d.MeasureString(t.Content) / 2
	case canvas.AnchorEnd:
		x -= d.MeasureString(t.Content)
	}
	y := fixed.I(t.Y)
	if t.MiddleBaseline {
		m := d.Face.Metrics()
		y += (m.Ascent - m.Descent) / 2
	}
	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(t.Content)
}

// RasterCanvas paints `c` on a new image with the canvas size.
func RasterCanvas(c *canvas.Canvas) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	c.Draw(NewRenderer(c.Width, c.Height, img))
	return img
}

// WritePNG rasterizes `c` and encodes it as PNG.
func WritePNG(c *canvas.Canvas, w io.Writer) error {
	return png.Encode(w, RasterCanvas(c))
}

// SavePNG rasterizes `c` and writes it to `path`.
// On failure, a *canvas.SaveError is returned and no file is created.
func SavePNG(c *canvas.Canvas, path string) error {
	return canvas.WriteFile(path, func(w io.Writer) error { return WritePNG(c, w) })
}
