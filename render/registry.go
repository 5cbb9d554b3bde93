package render

import "github.com/hajimehoshi/ebiten/v2"

// ImageCache holds decoded sheets by asset path so tilesets sharing an image
// upload it once.
type ImageCache struct {
	images map[string]*ebiten.Image
}

func NewImageCache() *ImageCache {
	return &ImageCache{images: map[string]*ebiten.Image{}}
}

// Register stores an image by key.
func (c *ImageCache) Register(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	c.images[key] = img
}

// Get returns a cached image by key.
func (c *ImageCache) Get(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	return c.images[key]
}

// Clear drops and disposes every cached image.
func (c *ImageCache) Clear() {
	for k, img := range c.images {
		img.Deallocate()
		delete(c.images, k)
	}
}
