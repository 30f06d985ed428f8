package render

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/jbeda/geom"

	"github.com/katalvlaran/pairviz/geometry"
)

// ErrInvalidCanvas indicates a canvas with no drawable area.
var ErrInvalidCanvas = errors.New("render: canvas has no drawable area")

// Styles used by WriteSVG.
const (
	pointStyle   = "fill: #2b6cb0"
	focusStyle   = "fill: #dd6b20"
	dividerStyle = "stroke: #a0aec0; stroke-dasharray: 4 3"
	bandStyle    = "fill: #fefcbf; fill-opacity: 0.6"
	lineStyle    = "stroke: #38a169; stroke-width: 1.5"
	activeStyle  = "stroke: #e53e3e; stroke-width: 1"
	finalStyle   = "stroke: #d53f8c; stroke-width: 3"
	textStyle    = "font-family: sans-serif; font-size: 12px"
	pointRadius  = 4.0
)

// Canvas is the output surface: Width×Height pixels with Margin kept clear
// on every side.
type Canvas struct {
	Width  float64
	Height float64
	Margin float64
}

// DefaultCanvas returns a 700×500 canvas with a 50px margin.
func DefaultCanvas() Canvas {
	return Canvas{Width: 700, Height: 500, Margin: 50}
}

// Inner returns the drawable rectangle.
func (c Canvas) Inner() geom.Rect {
	return geom.Rect{
		Min: geom.Coord{X: c.Margin, Y: c.Margin},
		Max: geom.Coord{X: c.Width - c.Margin, Y: c.Height - c.Margin},
	}
}

func (c Canvas) validate() error {
	in := c.Inner()
	if in.Width() <= 0 || in.Height() <= 0 {
		return fmt.Errorf("render: %.0fx%.0f margin %.0f: %w", c.Width, c.Height, c.Margin, ErrInvalidCanvas)
	}
	return nil
}

// projection maps data coordinates into the canvas' inner rectangle,
// flipping y so larger values are drawn higher.
type projection struct {
	data  geom.Rect
	inner geom.Rect
}

func newProjection(points []geometry.Point, c Canvas) projection {
	var data geom.Rect
	for i, p := range points {
		pc := geom.Coord{X: p.X, Y: p.Y}
		if i == 0 {
			data = geom.Rect{Min: pc, Max: pc}
			continue
		}
		data.ExpandToContainCoord(pc)
	}
	// degenerate extents still need a non-zero scale
	if data.Width() == 0 {
		data.Max.X = data.Min.X + 1
	}
	if data.Height() == 0 {
		data.Max.Y = data.Min.Y + 1
	}

	return projection{data: data, inner: c.Inner()}
}

func (p projection) x(v float64) float64 {
	return p.inner.Min.X + (v-p.data.Min.X)/p.data.Width()*p.inner.Width()
}

func (p projection) y(v float64) float64 {
	return p.inner.Max.Y - (v-p.data.Min.Y)/p.data.Height()*p.inner.Height()
}

func (p projection) coord(pt geometry.Point) geom.Coord {
	return geom.Coord{X: p.x(pt.X), Y: p.y(pt.Y)}
}

// svgWriter keeps the first write error so callers check once at the end.
type svgWriter struct {
	w   io.Writer
	err error
}

func (s *svgWriter) printf(format string, a ...interface{}) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, a...)
}

func (s *svgWriter) line(a, b geom.Coord, style string) {
	s.printf("<line x1='%.2f' y1='%.2f' x2='%.2f' y2='%.2f' style='%s'/>\n", a.X, a.Y, b.X, b.Y, style)
}

func (s *svgWriter) circle(c geom.Coord, r float64, style string) {
	s.printf("<circle cx='%.2f' cy='%.2f' r='%.2f' style='%s'/>\n", c.X, c.Y, r, style)
}

func (s *svgWriter) rect(r geom.Rect, style string) {
	s.printf("<rect x='%.2f' y='%.2f' width='%.2f' height='%.2f' style='%s'/>\n",
		r.Min.X, r.Min.Y, r.Width(), r.Height(), style)
}

func (s *svgWriter) text(at geom.Coord, body string) {
	s.printf("<text x='%.2f' y='%.2f' style='%s'>%s</text>\n", at.X, at.Y, textStyle, html.EscapeString(body))
}

// WriteSVG writes st as a standalone SVG document on canvas c.
func WriteSVG(w io.Writer, st SceneState, c Canvas) error {
	if err := c.validate(); err != nil {
		return err
	}

	proj := newProjection(st.Points, c)
	inner := c.Inner()
	out := &svgWriter{w: w}

	out.printf("<?xml version=\"1.0\"?>\n<svg version=\"1.1\" viewBox=\"0 0 %.0f %.0f\" xmlns=\"http://www.w3.org/2000/svg\">\n",
		c.Width, c.Height)

	if st.Band != nil {
		left, right := proj.x(st.Band.MidX-st.Band.Half), proj.x(st.Band.MidX+st.Band.Half)
		band := geom.Rect{Min: geom.Coord{X: left, Y: inner.Min.Y}, Max: geom.Coord{X: left, Y: inner.Max.Y}}
		band.ExpandToContainCoord(geom.Coord{X: right, Y: inner.Max.Y})
		out.rect(band, bandStyle)
	}
	for _, d := range st.Dividers {
		x := proj.x(d.X)
		out.line(geom.Coord{X: x, Y: inner.Min.Y}, geom.Coord{X: x, Y: inner.Max.Y}, dividerStyle)
	}
	for _, l := range st.Lines {
		out.line(proj.coord(l.A), proj.coord(l.B), lineStyle)
	}
	if st.Active != nil {
		out.line(proj.coord(st.Active.A), proj.coord(st.Active.B), activeStyle)
	}
	if st.Final != nil {
		out.line(proj.coord(st.Final.A), proj.coord(st.Final.B), finalStyle)
	}

	focus := make(map[int]bool, len(st.Focus))
	for _, p := range st.Focus {
		focus[p.ID] = true
	}
	for _, p := range st.Points {
		style := pointStyle
		if focus[p.ID] {
			style = focusStyle
		}
		pc := proj.coord(p)
		out.circle(pc, pointRadius, style)
		out.text(geom.Coord{X: pc.X + pointRadius + 2, Y: pc.Y - pointRadius}, fmt.Sprintf("P%d", p.ID))
	}

	out.text(geom.Coord{X: c.Margin, Y: c.Margin / 2}, st.Message)
	for i, row := range strings.Split(st.Stats(), "\n") {
		out.text(geom.Coord{X: c.Margin, Y: c.Height - c.Margin/2 + float64(i-1)*14}, row)
	}
	out.printf("</svg>\n")

	return out.err
}
