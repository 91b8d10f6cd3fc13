package window

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/graphics"
)

const testLayout = `<?xml version="1.0" encoding="UTF-8"?>
<GUILayout version="4">
	<Window type="FrameWindow" name="dialog">
		<Property name="LookNFeel" value="Test/Frame" />
		<Property name="Area" value="{{0,100},{0,100},{0,300},{0,250}}" />
		<AutoWindow namePath="__auto_closebutton__">
			<Property name="Text" value="Close" />
		</AutoWindow>
		<Window type="Button" name="ok">
			<Property name="Text">Press &amp; hold</Property>
			<Property name="Area" value="{{0,10},{0,10},{0,110},{0,40}}" />
			<Event name="Clicked" function="onOk" />
		</Window>
		<Window type="Editbox" name="input">
			<Property name="MaxTextLength" value="8" />
			<Property name="Text" value="hi" />
		</Window>
	</Window>
</GUILayout>`

func TestLayoutRoundTripMultiLineText(t *testing.T) {
	texts := []string{"a\nb", "\n", "  \n  ", "\n\n", "x\n"}
	m := newLookManager(t)
	root := mustCreate(t, m, TypeDefault, "root")
	for i, text := range texts {
		w := mustCreate(t, m, TypeDefault, fmt.Sprintf("w%d", i))
		w.SetText(text)
		require.NoError(t, root.AddChild(w))
	}

	var buf bytes.Buffer
	require.NoError(t, m.WriteLayout(root, &buf))
	again, err := newLookManager(t).LoadLayout(&buf)
	require.NoError(t, err)
	for i, text := range texts {
		w, err := again.Child(fmt.Sprintf("w%d", i))
		require.NoError(t, err)
		assert.Equal(t, text, w.Text(), "text %q", text)
	}
}

func TestPropertyTextIgnoredBesideValue(t *testing.T) {
	doc := `<GUILayout version="4"><Window type="DefaultWindow" name="w">
	<Property name="Text" value="kept">
	</Property>
</Window></GUILayout>`
	w, err := newLookManager(t).LoadLayout(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "kept", w.Text())
}

func TestLoadLayout(t *testing.T) {
	m := newLookManager(t)
	root, err := m.LoadLayout(strings.NewReader(testLayout))
	require.NoError(t, err)

	assert.Equal(t, "dialog", root.Name())
	assert.Equal(t, "Test/Frame", root.LookNFeel())
	assert.Equal(t, graphics.RectFromLTWH(100, 100, 200, 150), root.UnclippedOuterRect())

	ok, err := root.Child("ok")
	require.NoError(t, err)
	assert.Equal(t, "Press & hold", ok.Text())

	closeBtn, err := root.Child(CloseButtonName)
	require.NoError(t, err)
	assert.Equal(t, "Close", closeBtn.Text())

	input, err := root.Child("input")
	require.NoError(t, err)
	v, err := input.Property("MaxTextLength")
	require.NoError(t, err)
	assert.Equal(t, "8", v)
}

func TestLayoutRoundTrip(t *testing.T) {
	m := newLookManager(t)
	root, err := m.LoadLayout(strings.NewReader(testLayout))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.WriteLayout(root, &buf))
	out := buf.String()
	assert.Contains(t, out, `<GUILayout version="4">`)
	assert.Contains(t, out, `<AutoWindow namePath="__auto_closebutton__">`)
	assert.Contains(t, out, "Press &amp; hold")
	assert.NotContains(t, out, `name="Name"`)

	m2 := newLookManager(t)
	again, err := m2.LoadLayout(&buf)
	require.NoError(t, err)

	var buf2 bytes.Buffer
	require.NoError(t, m2.WriteLayout(again, &buf2))
	assert.Equal(t, out, buf2.String())
	assert.Len(t, m2.Windows(), len(m.Windows()))
}

func TestLoadLayoutErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		target error
	}{
		{
			name:   "version",
			layout: `<GUILayout version="3"><Window type="DefaultWindow" name="a" /></GUILayout>`,
			target: guierrors.ErrInvalidRequest,
		},
		{
			name: "unknown type",
			layout: `<GUILayout version="4"><Window type="DefaultWindow" name="a">
				<Window type="Nope" name="b" /></Window></GUILayout>`,
			target: guierrors.ErrUnknownObject,
		},
		{
			name: "two roots",
			layout: `<GUILayout version="4"><Window type="DefaultWindow" name="a" />
				<Window type="DefaultWindow" name="b" /></GUILayout>`,
			target: guierrors.ErrInvalidRequest,
		},
		{
			name: "bad property",
			layout: `<GUILayout version="4"><Window type="DefaultWindow" name="a">
				<Window type="DefaultWindow" name="b"><Property name="Alpha" value="opaque" /></Window>
				</Window></GUILayout>`,
			target: guierrors.ErrInvalidRequest,
		},
		{
			name: "missing auto window",
			layout: `<GUILayout version="4"><Window type="DefaultWindow" name="a">
				<AutoWindow namePath="ghost" /></Window></GUILayout>`,
			target: guierrors.ErrUnknownObject,
		},
		{
			name:   "unexpected element",
			layout: `<GUILayout version="4"><Widget /></GUILayout>`,
			target: guierrors.ErrInvalidRequest,
		},
		{
			name:   "empty",
			layout: `<GUILayout version="4"></GUILayout>`,
			target: guierrors.ErrInvalidRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newLookManager(t)
			root, err := m.LoadLayout(strings.NewReader(tt.layout))
			require.Error(t, err)
			assert.Nil(t, root)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
			assert.Empty(t, m.Windows(), "partial trees are destroyed")
		})
	}
}

func TestLoadLayoutFileWithoutProvider(t *testing.T) {
	m := newTestManager(t)
	_, err := m.LoadLayoutFile("dialog.layout", "")
	assert.True(t, errors.Is(err, guierrors.ErrInvalidRequest))
}
