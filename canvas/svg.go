package canvas

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	svg "github.com/ajstarks/svgo"
)

// SaveError is returned when an output destination can't be written.
// When it is returned, no file has been created at Path.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to save %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// errWriter keeps the first write error, since
// the svg writer ignores them
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

// hexColor formats an opaque color as #rrggbb
func hexColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func styleAttrs(st Style) []string {
	attrs := make([]string, 0, 3)
	if st.Fill == nil {
		attrs = append(attrs, `fill="none"`)
	} else {
		attrs = append(attrs, fmt.Sprintf(`fill="%s"`, hexColor(st.Fill)))
	}
	if st.Stroke != nil {
		attrs = append(attrs, fmt.Sprintf(`stroke="%s"`, hexColor(st.Stroke)),
			fmt.Sprintf(`stroke-width="%d"`, st.StrokeWidth))
	}
	return attrs
}

func textAttrs(t Text) []string {
	attrs := []string{fmt.Sprintf(`text-anchor="%s"`, t.Anchor)}
	if t.MiddleBaseline {
		attrs = append(attrs, `dominant-baseline="middle"`)
	}
	if t.FontFamily != "" {
		attrs = append(attrs, fmt.Sprintf(`font-family="%s"`, t.FontFamily))
	}
	if t.FontSize > 0 {
		attrs = append(attrs, fmt.Sprintf(`font-size="%d"`, t.FontSize))
	}
	if t.Color != nil {
		attrs = append(attrs, fmt.Sprintf(`fill="%s"`, hexColor(t.Color)))
	}
	return attrs
}

// WriteSVG serializes the canvas as a standalone SVG document.
func (c *Canvas) WriteSVG(w io.Writer) error {
	ew := &errWriter{w: w}
	doc := svg.New(ew)
	doc.Startview(c.Width, c.Height, 0, 0, c.Width, c.Height)
	for _, g := range c.groups {
		attrs := []string{fmt.Sprintf(`class="%s"`, g.Class)}
		if g.ID != "" {
			attrs = append(attrs, fmt.Sprintf(`id="%s"`, g.ID))
		}
		doc.Group(attrs...)
		for _, s := range g.Shapes {
			switch s := s.(type) {
			case Rect:
				doc.Rect(s.X, s.Y, s.W, s.H, styleAttrs(s.Style)...)
			case Circle:
				doc.Circle(s.CX, s.CY, s.R, styleAttrs(s.Style)...)
			case Line:
				st := s.Style
				st.Fill = nil
				doc.Line(s.X1, s.Y1, s.X2, s.Y2, styleAttrs(st)...)
			case Text:
				doc.Text(s.X, s.Y, s.Content, textAttrs(s)...)
			}
		}
		doc.Gend()
	}
	doc.End()
	return ew.err
}

// WriteFile writes the output of `write` to `path`. The content goes
// through a temporary file in the same directory, renamed once complete,
// so that a failure never leaves a partial file behind.
// An existing destination must be a writable regular file; its mode is kept.
// Every failure is returned as a *SaveError.
func WriteFile(path string, write func(w io.Writer) error) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		if !info.Mode().IsRegular() {
			return &SaveError{Path: path, Err: fmt.Errorf("not a regular file (%s)", info.Mode())}
		}
		if info.Mode().Perm()&0o222 == 0 {
			return &SaveError{Path: path, Err: fs.ErrPermission}
		}
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return &SaveError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &SaveError{Path: path, Err: err}
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	bw := bufio.NewWriter(tmp)
	if err = write(bw); err == nil {
		err = bw.Flush()
	}
	if err == nil {
		err = tmp.Chmod(mode)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		return &SaveError{Path: path, Err: err}
	}
	return nil
}

// Save writes the canvas as SVG to `path`.
func (c *Canvas) Save(path string) error {
	return WriteFile(path, c.WriteSVG)
}
