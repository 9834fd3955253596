package canvas

import (
	"encoding/xml"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// ErrorMode determines how ReadCanvas handles
// the SVG elements it does not support.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported elements silently
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips unsupported elements and logs a warning
	WarnErrorMode
	// StrictErrorMode fails on the first unsupported element
	StrictErrorMode
)

var errParamMismatch = errors.New("param mismatch")

// canvasCursor is used while parsing SVG files
type canvasCursor struct {
	canvas    *Canvas
	errorMode ErrorMode
	log       *zap.Logger

	group   *Group // current <g>, nil at top level
	text    *Text  // current <text>, nil outside
	depth   int    // depth of unsupported elements being skipped
	seenSVG bool
}

var namedColors = map[string]color.NRGBA{
	"black": Black,
	"white": White,
}

func parseColor(v string) (color.Color, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "none" || v == "" {
		return nil, nil
	}
	if c, ok := namedColors[v]; ok {
		return c, nil
	}
	if strings.HasPrefix(v, "#") && len(v) == 7 {
		n, err := strconv.ParseUint(v[1:], 16, 32)
		if err != nil {
			return nil, err
		}
		return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
	}
	return nil, fmt.Errorf("unsupported color %q", v)
}

// parseInt accepts decimal values, which are rounded
func parseInt(v string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
	if err != nil {
		return 0, err
	}
	return int(math.Round(f)), nil
}

func readStyle(attrs []xml.Attr) (st Style, err error) {
	st.Fill = Black // SVG default
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "fill":
			st.Fill, err = parseColor(attr.Value)
		case "stroke":
			st.Stroke, err = parseColor(attr.Value)
		case "stroke-width":
			st.StrokeWidth, err = parseInt(attr.Value)
		}
		if err != nil {
			return st, err
		}
	}
	return st, nil
}

// readInts reads the integer attributes named in `names`, in order
func readInts(attrs []xml.Attr, names ...string) ([]int, error) {
	out := make([]int, len(names))
	for _, attr := range attrs {
		for i, name := range names {
			if attr.Name.Local == name {
				v, err := parseInt(attr.Value)
				if err != nil {
					return nil, fmt.Errorf("attribute %s: %s", name, err)
				}
				out[i] = v
			}
		}
	}
	return out, nil
}

func (c *canvasCursor) addShape(s Shape) {
	if c.group == nil { // shapes outside of any group get their own
		c.canvas.Add(Group{Shapes: []Shape{s}})
		return
	}
	c.group.Shapes = append(c.group.Shapes, s)
}

func (c *canvasCursor) unsupported(name string) error {
	errStr := "Cannot process svg element " + name
	if c.errorMode == StrictErrorMode {
		return errors.New(errStr)
	} else if c.errorMode == WarnErrorMode {
		c.log.Warn(errStr)
	}
	c.depth++
	return nil
}

func (c *canvasCursor) readStartElement(se xml.StartElement) error {
	if c.depth > 0 { // inside an unsupported element
		c.depth++
		return nil
	}
	switch se.Name.Local {
	case "svg":
		c.seenSVG = true
		dims, err := readInts(se.Attr, "width", "height")
		if err != nil {
			return err
		}
		c.canvas.Width, c.canvas.Height = dims[0], dims[1]
		for _, attr := range se.Attr {
			if attr.Name.Local == "viewBox" && (c.canvas.Width == 0 || c.canvas.Height == 0) {
				fields := strings.Fields(strings.ReplaceAll(attr.Value, ",", " "))
				if len(fields) != 4 {
					return errParamMismatch
				}
				if c.canvas.Width, err = parseInt(fields[2]); err != nil {
					return err
				}
				if c.canvas.Height, err = parseInt(fields[3]); err != nil {
					return err
				}
			}
		}
	case "g":
		if c.group != nil {
			return c.unsupported("nested g")
		}
		c.group = &Group{}
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "class":
				c.group.Class = attr.Value
			case "id":
				c.group.ID = attr.Value
			}
		}
	case "rect":
		v, err := readInts(se.Attr, "x", "y", "width", "height")
		if err != nil {
			return err
		}
		st, err := readStyle(se.Attr)
		if err != nil {
			return err
		}
		c.addShape(Rect{X: v[0], Y: v[1], W: v[2], H: v[3], Style: st})
	case "circle":
		v, err := readInts(se.Attr, "cx", "cy", "r")
		if err != nil {
			return err
		}
		st, err := readStyle(se.Attr)
		if err != nil {
			return err
		}
		c.addShape(Circle{CX: v[0], CY: v[1], R: v[2], Style: st})
	case "line":
		v, err := readInts(se.Attr, "x1", "y1", "x2", "y2")
		if err != nil {
			return err
		}
		st, err := readStyle(se.Attr)
		if err != nil {
			return err
		}
		st.Fill = nil
		c.addShape(Line{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3], Style: st})
	case "text":
		return c.readText(se.Attr)
	case "title", "desc":
		c.depth++ // metadata, skipped silently
	default:
		return c.unsupported(se.Name.Local)
	}
	return nil
}

func (c *canvasCursor) readText(attrs []xml.Attr) error {
	v, err := readInts(attrs, "x", "y", "font-size")
	if err != nil {
		return err
	}
	t := Text{X: v[0], Y: v[1], FontSize: v[2]}
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "text-anchor":
			switch attr.Value {
			case "start":
				t.Anchor = AnchorStart
			case "middle":
				t.Anchor = AnchorMiddle
			case "end":
				t.Anchor = AnchorEnd
			default:
				return fmt.Errorf("unsupported text-anchor %q", attr.Value)
			}
		case "dominant-baseline":
			t.MiddleBaseline = attr.Value == "middle"
		case "font-family":
			t.FontFamily = attr.Value
		case "fill":
			if t.Color, err = parseColor(attr.Value); err != nil {
				return err
			}
		}
	}
	c.text = &t
	return nil
}

func (c *canvasCursor) readEndElement(se xml.EndElement) {
	if c.depth > 0 {
		c.depth--
		return
	}
	switch se.Name.Local {
	case "g":
		if c.group != nil {
			c.canvas.Add(*c.group)
			c.group = nil
		}
	case "text":
		if c.text != nil {
			c.addShape(*c.text)
			c.text = nil
		}
	}
}

// ReadCanvas reads back a canvas from an SVG document, as written by WriteSVG.
// Only the subset of SVG used by WriteSVG is supported; errMode determines
// if the other elements are ignored, logged as warnings on `log`, or rejected.
// `log` may be nil.
func ReadCanvas(stream io.Reader, errMode ErrorMode, log *zap.Logger) (*Canvas, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cursor := &canvasCursor{canvas: new(Canvas), errorMode: errMode, log: log}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			if err := cursor.readStartElement(se); err != nil {
				return nil, fmt.Errorf("element %s: %w", se.Name.Local, err)
			}
		case xml.EndElement:
			cursor.readEndElement(se)
		case xml.CharData:
			if cursor.text != nil && cursor.depth == 0 {
				cursor.text.Content += string(se)
			}
		}
	}
	if !cursor.seenSVG {
		return nil, errors.New("invalid svg chart: missing svg element")
	}
	return cursor.canvas, nil
}

// ReadCanvasFile reads the canvas from the named SVG file.
func ReadCanvasFile(path string, errMode ErrorMode, log *zap.Logger) (*Canvas, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ReadCanvas(fin, errMode, log)
}
