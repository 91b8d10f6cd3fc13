package xmlio

import (
	"strconv"
	"strings"

	guierrors "github.com/go-drift/facet/pkg/errors"
)

// Attribute is one name/value pair of an element.
type Attribute struct {
	Name  string
	Value string
}

// Attributes holds an element's attributes in document order.
type Attributes []Attribute

// Has reports whether name is present.
func (a Attributes) Has(name string) bool {
	_, ok := a.Lookup(name)
	return ok
}

// Lookup returns the value of name.
func (a Attributes) Lookup(name string) (string, bool) {
	for _, at := range a {
		if at.Name == name {
			return at.Value, true
		}
	}
	return "", false
}

// String returns the value of name, or def when absent.
func (a Attributes) String(name, def string) string {
	if v, ok := a.Lookup(name); ok {
		return v
	}
	return def
}

// Required returns the value of name or an InvalidRequest error naming the
// missing attribute.
func (a Attributes) Required(element, name string) (string, error) {
	v, ok := a.Lookup(name)
	if !ok {
		return "", guierrors.InvalidRequestf("xmlio.Attributes.Required", element+"@"+name, "missing required attribute")
	}
	return v, nil
}

// Bool returns name parsed as a boolean, or def when absent or malformed.
func (a Attributes) Bool(name string, def bool) bool {
	v, ok := a.Lookup(name)
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return def
}

// Int returns name parsed as an integer, or def when absent or malformed.
func (a Attributes) Int(name string, def int) int {
	v, ok := a.Lookup(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// Float returns name parsed as a float, or def when absent or malformed.
func (a Attributes) Float(name string, def float32) float32 {
	v, ok := a.Lookup(name)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 32)
	if err != nil {
		return def
	}
	return float32(f)
}
