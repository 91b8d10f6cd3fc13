package graphics

import (
	"fmt"
	"strconv"
	"strings"

	guierrors "github.com/go-drift/facet/pkg/errors"
)

// UDim is a unified dimension: a fraction of a parent extent plus a pixel
// offset. It resolves to Scale*base + Offset.
type UDim struct {
	Scale  float32
	Offset float32
}

// Absolute returns a UDim that ignores the parent extent.
func Absolute(px float32) UDim { return UDim{Offset: px} }

// Relative returns a UDim that is a pure fraction of the parent extent.
func Relative(scale float32) UDim { return UDim{Scale: scale} }

// Resolve returns the pixel value of d against base.
func (d UDim) Resolve(base float32) float32 {
	return d.Scale*base + d.Offset
}

// Add returns the component-wise sum of d and o.
func (d UDim) Add(o UDim) UDim {
	return UDim{Scale: d.Scale + o.Scale, Offset: d.Offset + o.Offset}
}

// Sub returns the component-wise difference of d and o.
func (d UDim) Sub(o UDim) UDim {
	return UDim{Scale: d.Scale - o.Scale, Offset: d.Offset - o.Offset}
}

func (d UDim) String() string {
	return "{" + formatFloat(d.Scale) + "," + formatFloat(d.Offset) + "}"
}

// UVector2 is a unified position.
type UVector2 struct {
	X UDim
	Y UDim
}

// Resolve returns the pixel position of v within base.
func (v UVector2) Resolve(base Size) Vec2 {
	return Vec2{X: v.X.Resolve(base.Width), Y: v.Y.Resolve(base.Height)}
}

func (v UVector2) String() string {
	return "{" + v.X.String() + "," + v.Y.String() + "}"
}

// USize is a unified size.
type USize struct {
	Width  UDim
	Height UDim
}

// Resolve returns the pixel size of s within base.
func (s USize) Resolve(base Size) Size {
	return Size{Width: s.Width.Resolve(base.Width), Height: s.Height.Resolve(base.Height)}
}

func (s USize) String() string {
	return "{" + s.Width.String() + "," + s.Height.String() + "}"
}

// URect is a unified rectangle given by its top-left and bottom-right corners.
type URect struct {
	Min UVector2
	Max UVector2
}

// URectFromPosSize builds a URect from a position and size.
func URectFromPosSize(pos UVector2, size USize) URect {
	return URect{
		Min: pos,
		Max: UVector2{X: pos.X.Add(size.Width), Y: pos.Y.Add(size.Height)},
	}
}

// Position returns the top-left corner.
func (r URect) Position() UVector2 { return r.Min }

// Size returns the unified extent of r.
func (r URect) Size() USize {
	return USize{Width: r.Max.X.Sub(r.Min.X), Height: r.Max.Y.Sub(r.Min.Y)}
}

// WithPosition moves r keeping its size.
func (r URect) WithPosition(pos UVector2) URect {
	return URectFromPosSize(pos, r.Size())
}

// WithSize resizes r keeping its position.
func (r URect) WithSize(size USize) URect {
	return URectFromPosSize(r.Min, size)
}

// Resolve returns the pixel rect of r within base, relative to base's origin.
func (r URect) Resolve(base Size) Rect {
	return Rect{
		Left:   r.Min.X.Resolve(base.Width),
		Top:    r.Min.Y.Resolve(base.Height),
		Right:  r.Max.X.Resolve(base.Width),
		Bottom: r.Max.Y.Resolve(base.Height),
	}
}

func (r URect) String() string {
	return "{" + r.Min.X.String() + "," + r.Min.Y.String() + "," +
		r.Max.X.String() + "," + r.Max.Y.String() + "}"
}

// UBox is a set of unified insets, used for paddings and margins.
type UBox struct {
	Top    UDim
	Left   UDim
	Bottom UDim
	Right  UDim
}

func (b UBox) String() string {
	return "{" + b.Top.String() + "," + b.Left.String() + "," +
		b.Bottom.String() + "," + b.Right.String() + "}"
}

// ParseUDim parses the "{scale,offset}" form.
func ParseUDim(s string) (UDim, error) {
	v, err := parseUnified(s, 1)
	if err != nil {
		return UDim{}, err
	}
	return UDim{Scale: v[0], Offset: v[1]}, nil
}

// ParseUVector2 parses the "{{sx,ox},{sy,oy}}" form.
func ParseUVector2(s string) (UVector2, error) {
	v, err := parseUnified(s, 2)
	if err != nil {
		return UVector2{}, err
	}
	return UVector2{X: UDim{v[0], v[1]}, Y: UDim{v[2], v[3]}}, nil
}

// ParseUSize parses the "{{sw,ow},{sh,oh}}" form.
func ParseUSize(s string) (USize, error) {
	v, err := parseUnified(s, 2)
	if err != nil {
		return USize{}, err
	}
	return USize{Width: UDim{v[0], v[1]}, Height: UDim{v[2], v[3]}}, nil
}

// ParseURect parses the "{{l},{t},{r},{b}}" form where each part is a UDim.
func ParseURect(s string) (URect, error) {
	v, err := parseUnified(s, 4)
	if err != nil {
		return URect{}, err
	}
	return URect{
		Min: UVector2{X: UDim{v[0], v[1]}, Y: UDim{v[2], v[3]}},
		Max: UVector2{X: UDim{v[4], v[5]}, Y: UDim{v[6], v[7]}},
	}, nil
}

// ParseUBox parses the "{{top},{left},{bottom},{right}}" form.
func ParseUBox(s string) (UBox, error) {
	v, err := parseUnified(s, 4)
	if err != nil {
		return UBox{}, err
	}
	return UBox{Top: UDim{v[0], v[1]}, Left: UDim{v[2], v[3]}, Bottom: UDim{v[4], v[5]}, Right: UDim{v[6], v[7]}}, nil
}

// parseUnified parses dims UDim pairs. A single UDim is "{s,o}"; more than one
// is wrapped in an outer pair of braces: "{{s,o},{s,o}}".
func parseUnified(s string, dims int) ([]float32, error) {
	s = strings.TrimSpace(s)
	if dims > 1 {
		inner, ok := unwrap(s)
		if !ok {
			return nil, guierrors.InvalidRequestf("graphics.parseUnified", s, "expected outer braces")
		}
		s = inner
	}
	out := make([]float32, 0, dims*2)
	rest := strings.TrimSpace(s)
	for i := 0; i < dims; i++ {
		if i > 0 {
			if !strings.HasPrefix(rest, ",") {
				return nil, guierrors.InvalidRequestf("graphics.parseUnified", s, "expected %d dimensions", dims)
			}
			rest = strings.TrimSpace(rest[1:])
		}
		end := strings.IndexByte(rest, '}')
		if !strings.HasPrefix(rest, "{") || end < 0 {
			return nil, guierrors.InvalidRequestf("graphics.parseUnified", s, "malformed dimension")
		}
		parts := strings.Split(rest[1:end], ",")
		if len(parts) != 2 {
			return nil, guierrors.InvalidRequestf("graphics.parseUnified", s, "dimension needs scale and offset")
		}
		for _, p := range parts {
			f, err := parseFloat(p)
			if err != nil {
				return nil, guierrors.InvalidRequest("graphics.parseUnified", s, err)
			}
			out = append(out, f)
		}
		rest = strings.TrimSpace(rest[end+1:])
	}
	if rest != "" {
		return nil, guierrors.InvalidRequestf("graphics.parseUnified", s, "trailing text %q", rest)
	}
	return out, nil
}

func unwrap(s string) (string, bool) {
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return "", false
	}
	return strings.TrimSpace(s[1 : len(s)-1]), true
}

// ParseVec2 parses the "x:1 y:2" form.
func ParseVec2(s string) (Vec2, error) {
	v, err := parseTagged(s, "x", "y")
	if err != nil {
		return Vec2{}, err
	}
	return Vec2{X: v[0], Y: v[1]}, nil
}

func (v Vec2) String() string {
	return "x:" + formatFloat(v.X) + " y:" + formatFloat(v.Y)
}

// ParseSize parses the "w:10 h:20" form.
func ParseSize(s string) (Size, error) {
	v, err := parseTagged(s, "w", "h")
	if err != nil {
		return Size{}, err
	}
	return Size{Width: v[0], Height: v[1]}, nil
}

func (s Size) String() string {
	return "w:" + formatFloat(s.Width) + " h:" + formatFloat(s.Height)
}

// ParseRect parses the "l:0 t:0 r:10 b:10" form.
func ParseRect(s string) (Rect, error) {
	v, err := parseTagged(s, "l", "t", "r", "b")
	if err != nil {
		return Rect{}, err
	}
	return Rect{Left: v[0], Top: v[1], Right: v[2], Bottom: v[3]}, nil
}

func (r Rect) String() string {
	return "l:" + formatFloat(r.Left) + " t:" + formatFloat(r.Top) +
		" r:" + formatFloat(r.Right) + " b:" + formatFloat(r.Bottom)
}

func parseTagged(s string, tags ...string) ([]float32, error) {
	fields := strings.Fields(s)
	if len(fields) != len(tags) {
		return nil, guierrors.InvalidRequestf("graphics.parseTagged", s, "expected %d fields", len(tags))
	}
	out := make([]float32, len(tags))
	for i, f := range fields {
		tag, val, ok := strings.Cut(f, ":")
		if !ok || tag != tags[i] {
			return nil, guierrors.InvalidRequestf("graphics.parseTagged", s, "expected %s:<value>", tags[i])
		}
		v, err := parseFloat(val)
		if err != nil {
			return nil, guierrors.InvalidRequest("graphics.parseTagged", s, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", s)
	}
	return float32(f), nil
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
