package sink

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/weekplan/pkg/errors"
	"github.com/matzehuels/weekplan/pkg/render/planner/document"
	"github.com/matzehuels/weekplan/pkg/render/planner/draw"
)

// fixed is the number of SVG user units per document unit. svgo works in
// integers, so geometry is scaled up and the viewBox maps it back.
const fixed = 10

// baselineRatio places the baseline of a line of text inside its box.
const baselineRatio = 0.35

const defaultFontFamily = "Helvetica, Arial, sans-serif"

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	href        func(page int) string
	fontFamily  string
	showLinks   bool
	linkOutline string
}

// WithHref sets how link targets are written. The default is "#page-N".
func WithHref(f func(page int) string) SVGOption { return func(r *svgRenderer) { r.href = f } }

// WithFontFamily sets the CSS font-family of all text.
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.fontFamily = f } }

// WithLinkOutlines draws link regions visibly, for debugging.
func WithLinkOutlines(color string) SVGOption {
	return func(r *svgRenderer) { r.showLinks = true; r.linkOutline = color }
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		href:        func(i int) string { return "#" + document.Anchor(i) },
		fontFamily:  defaultFontFamily,
		linkOutline: "#ff0000",
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG renders page i of doc.
func RenderSVG(doc *document.Document, i int, opts ...SVGOption) ([]byte, error) {
	if i < 0 || i >= len(doc.Pages) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "page %d out of range [0, %d)", i, len(doc.Pages))
	}
	r := newSVGRenderer(opts...)
	return r.page(doc.Pages[i]), nil
}

// RenderSVGPages renders every page of doc in order.
func RenderSVGPages(doc *document.Document, opts ...SVGOption) [][]byte {
	r := newSVGRenderer(opts...)
	out := make([][]byte, len(doc.Pages))
	for i, p := range doc.Pages {
		out[i] = r.page(p)
	}
	return out
}

func (r svgRenderer) page(p document.Page) []byte {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(int(math.Ceil(p.Width)), int(math.Ceil(p.Height)), 0, 0, fx(p.Width), fx(p.Height))
	canvas.Title(p.Title)
	canvas.Gid(document.Anchor(p.Index))
	canvas.Rect(0, 0, fx(p.Width), fx(p.Height), "fill:#ffffff")

	for _, op := range p.Ops {
		switch op.Kind {
		case draw.KindRect:
			canvas.Rect(fx(op.Rect.X), fx(op.Rect.Y), fx(op.Rect.W), fx(op.Rect.H), shapeStyle(op))
		case draw.KindLine:
			canvas.Line(fx(op.X1), fx(op.Y1), fx(op.X2), fx(op.Y2), shapeStyle(op))
		case draw.KindText:
			x, y := textAnchor(op)
			canvas.Text(x, y, op.Text, r.textStyle(op))
		}
	}

	for _, l := range p.Links {
		canvas.Link(r.href(l.TargetPageIndex), l.Role)
		style := "fill:#ffffff;fill-opacity:0"
		if r.showLinks {
			style += fmt.Sprintf(";stroke:%s;stroke-width:%d", r.linkOutline, fixed)
		}
		canvas.Rect(fx(l.Rect.X), fx(l.Rect.Y), fx(l.Rect.W), fx(l.Rect.H), style)
		canvas.LinkEnd()
	}

	canvas.Gend()
	canvas.End()
	return buf.Bytes()
}

func fx(v float64) int { return int(math.Round(v * fixed)) }

func shapeStyle(op draw.Op) string {
	var parts []string
	if op.Fill != "" && op.Kind == draw.KindRect {
		parts = append(parts, "fill:"+op.Fill)
	} else {
		parts = append(parts, "fill:none")
	}
	if op.Stroke != "" && op.StrokeWidth > 0 {
		parts = append(parts, "stroke:"+op.Stroke, fmt.Sprintf("stroke-width:%d", max(1, fx(op.StrokeWidth))))
		if len(op.Dash) > 0 {
			dash := make([]string, len(op.Dash))
			for i, d := range op.Dash {
				dash[i] = fmt.Sprint(fx(d))
			}
			parts = append(parts, "stroke-dasharray:"+strings.Join(dash, ","))
		}
	}
	return strings.Join(parts, ";")
}

func textAnchor(op draw.Op) (int, int) {
	y := op.Rect.Y + op.Rect.H/2 + op.FontSize*baselineRatio
	switch op.Align {
	case draw.AlignCenter:
		return fx(op.Rect.X + op.Rect.W/2), fx(y)
	case draw.AlignRight:
		return fx(op.Rect.Right()), fx(y)
	}
	return fx(op.Rect.X), fx(y)
}

func (r svgRenderer) textStyle(op draw.Op) string {
	anchor := "start"
	switch op.Align {
	case draw.AlignCenter:
		anchor = "middle"
	case draw.AlignRight:
		anchor = "end"
	}
	weight := "normal"
	if op.Weight == draw.Bold {
		weight = "bold"
	}
	color := op.Color
	if color == "" {
		color = "#000000"
	}
	return fmt.Sprintf("font-family:%s;font-size:%dpx;font-weight:%s;text-anchor:%s;fill:%s",
		r.fontFamily, fx(op.FontSize), weight, anchor, color)
}
