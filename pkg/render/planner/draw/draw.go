// Package draw defines the format-neutral drawing primitives emitted by the
// planner layout engine.
//
// A page is an ordered list of [Op] values: rectangles, lines and text with
// a bounding box. Coordinates are document units (points for the default
// configuration) with the origin at the top-left corner of the page. Colors
// are "#rrggbb" strings; an empty color means "none". Backends decide how to
// realize fonts, colors and page sizes.
package draw

// Kind is the primitive type of an Op.
type Kind string

const (
	KindRect Kind = "rect"
	KindLine Kind = "line"
	KindText Kind = "text"
)

// Weight is a font weight hint.
type Weight string

const (
	Regular Weight = "regular"
	Bold    Weight = "bold"
)

// Align is horizontal text alignment inside the text box.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Rect is an axis-aligned rectangle.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Right returns X + W.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns Y + H.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Intersects reports whether r and o share interior area. Rectangles that
// only touch along an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether o lies inside r, edges included.
func (r Rect) Contains(o Rect) bool {
	const eps = 1e-6
	return o.X >= r.X-eps && o.Y >= r.Y-eps && o.Right() <= r.Right()+eps && o.Bottom() <= r.Bottom()+eps
}

// Inset shrinks r by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: max(0, r.W-2*d), H: max(0, r.H-2*d)}
}

// Op is one drawing primitive. Fields that do not apply to the Kind are
// left zero.
type Op struct {
	Kind Kind   `json:"kind"`
	Role string `json:"role,omitempty"`

	// Rect and text box geometry.
	Rect Rect `json:"rect"`

	// Line endpoints.
	X1 float64 `json:"x1,omitempty"`
	Y1 float64 `json:"y1,omitempty"`
	X2 float64 `json:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty"`

	Fill        string    `json:"fill,omitempty"`
	Stroke      string    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"stroke_width,omitempty"`
	Dash        []float64 `json:"dash,omitempty"`

	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`
	Weight   Weight  `json:"weight,omitempty"`
	Align    Align   `json:"align,omitempty"`
	Color    string  `json:"color,omitempty"`
}

// Bounds returns the area covered by the op.
func (o Op) Bounds() Rect {
	if o.Kind == KindLine {
		return Rect{X: min(o.X1, o.X2), Y: min(o.Y1, o.Y2), W: abs(o.X2 - o.X1), H: abs(o.Y2 - o.Y1)}
	}
	return o.Rect
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// Filled returns a filled rectangle without stroke.
func Filled(role string, r Rect, fill string) Op {
	return Op{Kind: KindRect, Role: role, Rect: r, Fill: fill}
}

// Outlined returns a stroked rectangle with an optional fill.
func Outlined(role string, r Rect, fill, stroke string, width float64) Op {
	return Op{Kind: KindRect, Role: role, Rect: r, Fill: fill, Stroke: stroke, StrokeWidth: width}
}

// Line returns a straight line.
func Line(role string, x1, y1, x2, y2 float64, stroke string, width float64) Op {
	return Op{Kind: KindLine, Role: role, X1: x1, Y1: y1, X2: x2, Y2: y2, Stroke: stroke, StrokeWidth: width}
}

// TextStyle groups the text attributes of a Text op.
type TextStyle struct {
	Size   float64
	Weight Weight
	Align  Align
	Color  string
}

// Text returns a single line of text laid out in box.
func Text(role string, box Rect, s string, st TextStyle) Op {
	if st.Weight == "" {
		st.Weight = Regular
	}
	if st.Align == "" {
		st.Align = AlignLeft
	}
	return Op{
		Kind:     KindText,
		Role:     role,
		Rect:     box,
		Text:     s,
		FontSize: st.Size,
		Weight:   st.Weight,
		Align:    st.Align,
		Color:    st.Color,
	}
}

// WithDash returns o with a dash pattern.
func (o Op) WithDash(pattern ...float64) Op {
	o.Dash = pattern
	return o
}
