package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// LoadImage decodes the sheet at path in fsys, or returns the cached copy.
func (c *ImageCache) LoadImage(fsys fs.FS, path string) (*ebiten.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("empty image key")
	}
	if img := c.Get(path); img != nil {
		return img, nil
	}
	img, err := decodeImage(fsys, path)
	if err != nil {
		return nil, err
	}
	c.Register(path, img)
	return img, nil
}

func decodeImage(fsys fs.FS, path string) (*ebiten.Image, error) {
	b, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("render: read image %s: %w", path, err)
	}
	im, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("render: decode image %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(im), nil
}
