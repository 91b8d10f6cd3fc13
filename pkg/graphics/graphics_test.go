package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	guierrors "github.com/go-drift/facet/pkg/errors"
)

func TestUDimResolve(t *testing.T) {
	// Half of a 200px parent plus a 10px border.
	d := UDim{Scale: 0.5, Offset: 10}
	assert.Equal(t, float32(110), d.Resolve(200))
}

func TestURectResolve(t *testing.T) {
	r := URectFromPosSize(
		UVector2{X: Relative(0.25), Y: Absolute(5)},
		USize{Width: UDim{0.5, 10}, Height: Relative(1)},
	)
	got := r.Resolve(Size{Width: 200, Height: 100})
	assert.Equal(t, Rect{Left: 50, Top: 5, Right: 160, Bottom: 105}, got)
	assert.Equal(t, USize{Width: UDim{0.5, 10}, Height: Relative(1)}, r.Size())
}

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"overlap", RectFromLTWH(0, 0, 100, 100), RectFromLTWH(50, 50, 100, 100), Rect{50, 50, 100, 100}},
		{"contained", RectFromLTWH(0, 0, 100, 100), RectFromLTWH(10, 10, 10, 10), Rect{10, 10, 20, 20}},
		{"disjoint", RectFromLTWH(0, 0, 10, 10), RectFromLTWH(20, 20, 10, 10), Rect{}},
		{"touching", RectFromLTWH(0, 0, 10, 10), RectFromLTWH(10, 0, 10, 10), Rect{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Intersect(tt.b))
		})
	}
}

func TestRectContains(t *testing.T) {
	r := RectFromLTWH(10, 10, 20, 20)
	assert.True(t, r.Contains(Vec2{10, 10}))
	assert.True(t, r.Contains(Vec2{29.9, 29.9}))
	assert.False(t, r.Contains(Vec2{30, 15}))
	assert.False(t, r.Contains(Vec2{9, 15}))
	assert.True(t, r.ContainsRect(RectFromLTWH(12, 12, 5, 5)))
	assert.False(t, r.ContainsRect(RectFromLTWH(25, 25, 10, 10)))
	assert.True(t, r.ContainsRect(Rect{}))
}

func TestSizeClamp(t *testing.T) {
	got := Size{Width: 500, Height: 2}.Clamp(Size{Width: 10, Height: 10}, Size{Width: 300})
	assert.Equal(t, Size{Width: 300, Height: 10}, got)
}

func TestUnifiedStringRoundTrip(t *testing.T) {
	r := URect{
		Min: UVector2{X: UDim{0.1, 2}, Y: UDim{0, -4.5}},
		Max: UVector2{X: UDim{1, 0}, Y: UDim{0.75, 12}},
	}
	parsed, err := ParseURect(r.String())
	require.NoError(t, err)
	assert.Equal(t, r, parsed)

	v := UVector2{X: UDim{0.5, 1}, Y: UDim{0.25, 3}}
	assert.Equal(t, "{{0.5,1},{0.25,3}}", v.String())
	pv, err := ParseUVector2(" { {0.5, 1} , {0.25,3} } ")
	require.NoError(t, err)
	assert.Equal(t, v, pv)

	b := UBox{Top: Absolute(1), Left: Absolute(2), Bottom: Absolute(3), Right: Absolute(4)}
	pb, err := ParseUBox(b.String())
	require.NoError(t, err)
	assert.Equal(t, b, pb)
}

func TestUnifiedParseErrors(t *testing.T) {
	bad := []string{"", "{1}", "{{1,2}}", "{{1,2},{3,4}", "{{1,2},{x,4}}", "{{1,2},{3,4}} extra"}
	for _, s := range bad {
		_, err := ParseUVector2(s)
		assert.ErrorIs(t, err, guierrors.ErrInvalidRequest, "input %q", s)
	}
	_, err := ParseUDim("{0.5,10}")
	assert.NoError(t, err)
}

func TestTaggedForms(t *testing.T) {
	r, err := ParseRect("l:1 t:2 r:3 b:4")
	require.NoError(t, err)
	assert.Equal(t, Rect{1, 2, 3, 4}, r)
	assert.Equal(t, "l:1 t:2 r:3 b:4", r.String())

	s, err := ParseSize(Size{Width: 640, Height: 480}.String())
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 640, Height: 480}, s)

	_, err = ParseVec2("y:1 x:2")
	assert.ErrorIs(t, err, guierrors.ErrInvalidRequest)
}

func TestColourParse(t *testing.T) {
	c, err := ParseColour("FF00FF00")
	require.NoError(t, err)
	assert.Equal(t, RGB(0, 255, 0), c)
	assert.Equal(t, "FF00FF00", c.String())

	c, err = ParseColour("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, RGB(255, 0, 0), c)

	_, err = ParseColour("not-a-colour")
	assert.ErrorIs(t, err, guierrors.ErrInvalidRequest)
}

func TestColourAlpha(t *testing.T) {
	c := RGB(10, 20, 30).WithAlpha(0.5)
	assert.Equal(t, uint32(0x80), uint32(c)>>24)
	assert.Equal(t, uint32(0x40), uint32(c.ModulateAlpha(0.5))>>24)
}

func TestColourLerpEndpoints(t *testing.T) {
	a, b := RGB(0, 0, 0), RGB(255, 255, 255)
	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
}

func TestColourRectParse(t *testing.T) {
	cr := ColourRect{TopLeft: 0xFF000001, TopRight: 0xFF000002, BottomLeft: 0xFF000003, BottomRight: 0xFF000004}
	parsed, err := ParseColourRect(cr.String())
	require.NoError(t, err)
	assert.Equal(t, cr, parsed)

	uni, err := ParseColourRect("FFFFFFFF")
	require.NoError(t, err)
	assert.True(t, uni.IsMonochromatic())
}
