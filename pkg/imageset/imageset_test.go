package imageset

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/render/null"
	"github.com/go-drift/facet/pkg/resource"
)

const testImageset = `<?xml version="1.0" ?>
<Imageset version="2" name="Test" imagefile="test.png">
	<Image name="ButtonNormal" xPos="0" yPos="0" width="32" height="16" />
	<Image name="ButtonHover" xPos="32" yPos="0" width="32" height="16" xOffset="1" yOffset="2" />
</Imageset>`

func newTestManager(t *testing.T) (*Manager, *null.Renderer, *resource.MemoryProvider) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 64, 64))))
	mem := resource.NewMemoryProvider().
		Add("imagesets", "test.png", buf.Bytes()).
		AddString("imagesets", "Test.imageset", testImageset)
	r := null.New(graphics.Size{Width: 800, Height: 600}, null.WithProvider(mem))
	return NewManager(r, mem), r, mem
}

func TestLoadImageset(t *testing.T) {
	m, r, mem := newTestManager(t)

	name, err := m.LoadImageset("Test.imageset", "imagesets")
	require.NoError(t, err)
	assert.Equal(t, "Test", name)
	assert.Equal(t, []string{"Test/ButtonHover", "Test/ButtonNormal"}, m.Names())
	assert.True(t, r.IsTextureDefined("Test"))
	assert.Equal(t, 0, mem.Outstanding())

	img, err := m.Get("Test/ButtonHover")
	require.NoError(t, err)
	assert.Equal(t, graphics.RectFromLTWH(32, 0, 32, 16), img.Area())
	assert.Equal(t, graphics.Vec2{X: 1, Y: 2}, img.Offset())
	assert.Equal(t, graphics.Rect{Left: 0.5, Top: 0, Right: 1, Bottom: 0.25}, img.TexCoords())

	m.DestroyImageCollection("Test")
	assert.Zero(t, m.Len())
	assert.False(t, r.IsTextureDefined("Test"))
}

func TestImageRender(t *testing.T) {
	m, r, _ := newTestManager(t)
	_, err := m.LoadImageset("Test.imageset", "imagesets")
	require.NoError(t, err)
	img, err := m.Get("Test/ButtonHover")
	require.NoError(t, err)

	buf := r.CreateGeometryBuffer().(*null.GeometryBuffer)
	n := img.Render(buf, graphics.RectFromLTWH(10, 10, 32, 16), nil, graphics.UniformColours(0xFFFFFFFF))
	require.Equal(t, 6, n)
	assert.Same(t, img.Texture(), buf.ActiveTexture())

	vs := buf.Vertices()
	assert.Equal(t, graphics.Vec2{X: 11, Y: 12}, vs[0].Position)
	assert.Equal(t, graphics.Vec2{X: 0.5, Y: 0}, vs[0].TexCoord)
	assert.Equal(t, graphics.Vec2{X: 1, Y: 0.25}, vs[2].TexCoord)
}

func TestDefineGetErrors(t *testing.T) {
	m, _, _ := newTestManager(t)
	_, err := m.Define("A", nil, graphics.RectFromLTWH(0, 0, 1, 1), graphics.Vec2{})
	require.NoError(t, err)
	_, err = m.Define("A", nil, graphics.Rect{}, graphics.Vec2{})
	assert.ErrorIs(t, err, guierrors.ErrAlreadyExists)

	_, err = m.Get("B")
	require.ErrorIs(t, err, guierrors.ErrUnknownObject)
	assert.Contains(t, err.Error(), "B")

	m.Destroy("A")
	assert.False(t, m.IsDefined("A"))
}

func TestParseImagesetFailuresRollBack(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		kind error
	}{
		{"missing image name", `<Imageset name="X" imagefile="test.png"><Image xPos="0"/></Imageset>`, guierrors.ErrInvalidRequest},
		{"duplicate image", `<Imageset name="X" imagefile="test.png"><Image name="a"/><Image name="a"/></Imageset>`, guierrors.ErrAlreadyExists},
		{"missing texture", `<Imageset name="X" imagefile="none.png"/>`, guierrors.ErrFileIO},
		{"image outside", `<Image name="a"/>`, guierrors.ErrInvalidRequest},
		{"unknown element", `<Imageset name="X" imagefile="test.png"><Bogus/></Imageset>`, guierrors.ErrInvalidRequest},
		{"empty", `<!-- nothing -->`, guierrors.ErrInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, r, _ := newTestManager(t)
			_, err := m.ParseImageset(strings.NewReader(tt.xml), "imagesets")
			require.ErrorIs(t, err, tt.kind)
			assert.Zero(t, m.Len())
			assert.False(t, r.IsTextureDefined("X"))
		})
	}
}

func TestDestroyAll(t *testing.T) {
	m, r, _ := newTestManager(t)
	_, err := m.LoadImageset("Test.imageset", "imagesets")
	require.NoError(t, err)
	_, err = m.Define("Loose", nil, graphics.Rect{}, graphics.Vec2{})
	require.NoError(t, err)

	m.DestroyAll()
	assert.Zero(t, m.Len())
	assert.Empty(t, r.TextureNames())
}
