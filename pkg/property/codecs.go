package property

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-drift/facet/pkg/graphics"
)

// String passes text through unchanged.
var String = Codec[string]{
	Parse:  func(s string) (string, error) { return s, nil },
	Format: func(s string) string { return s },
}

// Bool accepts "true"/"false" in any case, and "1"/"0".
var Bool = Codec[bool]{
	Parse: func(s string) (bool, error) {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
		return false, fmt.Errorf("bad boolean %q", s)
	},
	Format: func(b bool) string {
		if b {
			return "true"
		}
		return "false"
	},
}

// Int is a signed decimal integer.
var Int = Codec[int]{
	Parse: func(s string) (int, error) {
		return strconv.Atoi(strings.TrimSpace(s))
	},
	Format: strconv.Itoa,
}

// Uint is an unsigned decimal integer.
var Uint = Codec[uint]{
	Parse: func(s string) (uint, error) {
		v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 0)
		return uint(v), err
	},
	Format: func(v uint) string { return strconv.FormatUint(uint64(v), 10) },
}

// Float is a 32-bit float in shortest round-trip form.
var Float = Codec[float32]{
	Parse: func(s string) (float32, error) {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
		return float32(f), err
	},
	Format: func(f float32) string { return strconv.FormatFloat(float64(f), 'g', -1, 32) },
}

// UDim uses the "{scale,offset}" form.
var UDim = Codec[graphics.UDim]{Parse: graphics.ParseUDim, Format: graphics.UDim.String}

// UVector2 uses the "{{s,o},{s,o}}" form.
var UVector2 = Codec[graphics.UVector2]{Parse: graphics.ParseUVector2, Format: graphics.UVector2.String}

// USize uses the "{{s,o},{s,o}}" form.
var USize = Codec[graphics.USize]{Parse: graphics.ParseUSize, Format: graphics.USize.String}

// URect uses the "{{s,o},{s,o},{s,o},{s,o}}" form.
var URect = Codec[graphics.URect]{Parse: graphics.ParseURect, Format: graphics.URect.String}

// UBox uses the "{{s,o},{s,o},{s,o},{s,o}}" form.
var UBox = Codec[graphics.UBox]{Parse: graphics.ParseUBox, Format: graphics.UBox.String}

// Rect uses the "l:0 t:0 r:0 b:0" form.
var Rect = Codec[graphics.Rect]{Parse: graphics.ParseRect, Format: graphics.Rect.String}

// Size uses the "w:0 h:0" form.
var Size = Codec[graphics.Size]{Parse: graphics.ParseSize, Format: graphics.Size.String}

// Vec2 uses the "x:0 y:0" form.
var Vec2 = Codec[graphics.Vec2]{Parse: graphics.ParseVec2, Format: graphics.Vec2.String}

// Colour uses the "AARRGGBB" form.
var Colour = Codec[graphics.Colour]{Parse: graphics.ParseColour, Format: graphics.Colour.String}

// ColourRect uses the "tl:.. tr:.. bl:.. br:.." form.
var ColourRect = Codec[graphics.ColourRect]{Parse: graphics.ParseColourRect, Format: graphics.ColourRect.String}

// EnumValue pairs an enum constant with its string form.
type EnumValue[T comparable] struct {
	Value T
	Name  string
}

// Enum builds a codec for a closed set of values. Parsing is exact; an
// unknown name fails. Formatting a value missing from the table yields the
// first entry's name.
func Enum[T comparable](values ...EnumValue[T]) Codec[T] {
	return Codec[T]{
		Parse: func(s string) (T, error) {
			s = strings.TrimSpace(s)
			for _, v := range values {
				if v.Name == s {
					return v.Value, nil
				}
			}
			var zero T
			return zero, fmt.Errorf("unknown value %q", s)
		},
		Format: func(t T) string {
			for _, v := range values {
				if v.Value == t {
					return v.Name
				}
			}
			if len(values) > 0 {
				return values[0].Name
			}
			return ""
		},
	}
}
