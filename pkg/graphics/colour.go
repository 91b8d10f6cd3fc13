package graphics

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	guierrors "github.com/go-drift/facet/pkg/errors"
)

// maxByte is the maximum value of a byte, used for colour normalization.
const maxByte = 255.0

// Colour is stored as ARGB (0xAARRGGBB).
type Colour uint32

// Common colours.
const (
	ColourTransparent = Colour(0x00000000)
	ColourBlack       = Colour(0xFF000000)
	ColourWhite       = Colour(0xFFFFFFFF)
)

// ARGB8 constructs a Colour from alpha, red, green, blue bytes.
func ARGB8(a, r, g, b uint8) Colour {
	return Colour(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque Colour from red, green, blue bytes.
func RGB(r, g, b uint8) Colour {
	return ARGB8(0xFF, r, g, b)
}

// RGBAF returns normalized colour components (0.0 to 1.0).
func (c Colour) RGBAF() (r, g, b, a float32) {
	return float32(uint8(c>>16)) / maxByte,
		float32(uint8(c>>8)) / maxByte,
		float32(uint8(c)) / maxByte,
		float32(uint8(c>>24)) / maxByte
}

// Alpha returns the alpha component from 0.0 (transparent) to 1.0 (opaque).
func (c Colour) Alpha() float32 {
	return float32(uint8(c>>24)) / maxByte
}

// WithAlpha returns a copy of the colour with the given alpha (0-1).
func (c Colour) WithAlpha(a float32) Colour {
	return Colour(uint32(alphaToByte(a))<<24 | uint32(c)&0x00FFFFFF)
}

// ModulateAlpha multiplies the colour's alpha by a (0-1).
func (c Colour) ModulateAlpha(a float32) Colour {
	return c.WithAlpha(c.Alpha() * a)
}

// Lerp blends from c to o by t in RGB space, alpha interpolated linearly.
func (c Colour) Lerp(o Colour, t float32) Colour {
	blended := c.colorful().BlendRgb(o.colorful(), float64(t)).Clamped()
	r, g, b := blended.RGB255()
	a := c.Alpha() + (o.Alpha()-c.Alpha())*t
	return ARGB8(alphaToByte(a), r, g, b)
}

func (c Colour) colorful() colorful.Color {
	r, g, b, _ := c.RGBAF()
	return colorful.Color{R: float64(r), G: float64(g), B: float64(b)}
}

// String formats the colour as eight upper-case hex digits, AARRGGBB.
func (c Colour) String() string {
	return fmt.Sprintf("%08X", uint32(c))
}

// ParseColour parses "AARRGGBB" hex or "#RRGGBB" CSS-style hex.
func ParseColour(s string) (Colour, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		cc, err := colorful.Hex(s)
		if err != nil {
			return 0, guierrors.InvalidRequest("graphics.ParseColour", s, err)
		}
		r, g, b := cc.RGB255()
		return RGB(r, g, b), nil
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) > 8 {
		return 0, guierrors.InvalidRequestf("graphics.ParseColour", s, "expected AARRGGBB hex")
	}
	return Colour(v), nil
}

func alphaToByte(a float32) uint8 {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return uint8(math.Round(float64(a) * maxByte))
}

// ColourRect holds a colour for each corner of a quad.
type ColourRect struct {
	TopLeft     Colour
	TopRight    Colour
	BottomLeft  Colour
	BottomRight Colour
}

// UniformColours returns a ColourRect with every corner set to c.
func UniformColours(c Colour) ColourRect {
	return ColourRect{TopLeft: c, TopRight: c, BottomLeft: c, BottomRight: c}
}

// IsMonochromatic reports whether all corners are equal.
func (r ColourRect) IsMonochromatic() bool {
	return r.TopLeft == r.TopRight && r.TopLeft == r.BottomLeft && r.TopLeft == r.BottomRight
}

// ModulateAlpha multiplies every corner's alpha by a.
func (r ColourRect) ModulateAlpha(a float32) ColourRect {
	return ColourRect{
		TopLeft:     r.TopLeft.ModulateAlpha(a),
		TopRight:    r.TopRight.ModulateAlpha(a),
		BottomLeft:  r.BottomLeft.ModulateAlpha(a),
		BottomRight: r.BottomRight.ModulateAlpha(a),
	}
}

// String uses the "tl:AARRGGBB tr:AARRGGBB bl:AARRGGBB br:AARRGGBB" form.
func (r ColourRect) String() string {
	return "tl:" + r.TopLeft.String() + " tr:" + r.TopRight.String() +
		" bl:" + r.BottomLeft.String() + " br:" + r.BottomRight.String()
}

// ParseColourRect parses the String form, or a single colour applied to all
// four corners.
func ParseColourRect(s string) (ColourRect, error) {
	fields := strings.Fields(s)
	if len(fields) == 1 {
		c, err := ParseColour(fields[0])
		if err != nil {
			return ColourRect{}, err
		}
		return UniformColours(c), nil
	}
	tags := []string{"tl", "tr", "bl", "br"}
	if len(fields) != len(tags) {
		return ColourRect{}, guierrors.InvalidRequestf("graphics.ParseColourRect", s, "expected 4 corners")
	}
	var cs [4]Colour
	for i, f := range fields {
		tag, val, ok := strings.Cut(f, ":")
		if !ok || tag != tags[i] {
			return ColourRect{}, guierrors.InvalidRequestf("graphics.ParseColourRect", s, "expected %s:<colour>", tags[i])
		}
		c, err := ParseColour(val)
		if err != nil {
			return ColourRect{}, err
		}
		cs[i] = c
	}
	return ColourRect{TopLeft: cs[0], TopRight: cs[1], BottomLeft: cs[2], BottomRight: cs[3]}, nil
}
