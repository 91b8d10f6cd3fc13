package imagecodec

import (
	"fmt"

	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/render"
	"github.com/go-drift/facet/pkg/resource"
)

// LoadTexture loads filename from group, decodes it with c and uploads the
// pixels into t. Decode failures are FileIO errors naming the file.
func LoadTexture(t render.Texture, p resource.Provider, c Codec, filename, group string) error {
	return resource.WithData(p, filename, group, func(raw []byte) error {
		img, ok := c.Load(raw)
		if !ok {
			return guierrors.FileIO("imagecodec.LoadTexture", filename,
				fmt.Errorf("%s failed to decode image data", c.Identifier()))
		}
		if !t.IsPixelFormatSupported(img.Format) {
			return guierrors.Render("imagecodec.LoadTexture", filename,
				fmt.Errorf("pixel format %s not supported", img.Format))
		}
		return t.LoadFromMemory(img.Pixels, img.Size, img.Format)
	})
}
