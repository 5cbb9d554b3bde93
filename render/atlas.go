// Package render draws tiles from loaded tilesets with ebiten.
package render

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/ThimoteB/Potich-Adventures/tileset"
	"github.com/hajimehoshi/ebiten/v2"
)

// Atlas slices one tileset's sheet into per-tile sub-images.
type Atlas struct {
	Tileset *tileset.Tileset
	sheet   *ebiten.Image
	tiles   []*ebiten.Image
}

// NewAtlas builds the sub-image table of ts from sheet. Sub-images share the
// sheet's texture.
func NewAtlas(ts *tileset.Tileset, sheet *ebiten.Image) (*Atlas, error) {
	a := &Atlas{
		Tileset: ts,
		sheet:   sheet,
		tiles:   make([]*ebiten.Image, ts.TileCount()),
	}
	bounds := sheet.Bounds()
	for id := range a.tiles {
		r, err := ts.SourceRect(id)
		if err != nil {
			return nil, err
		}
		if !r.In(bounds) {
			return nil, fmt.Errorf("render: %s tile %d rect %v outside sheet %v", ts.Name(), id, r, bounds)
		}
		a.tiles[id] = sheet.SubImage(r).(*ebiten.Image)
	}
	return a, nil
}

// Tile returns the image of tile id without resolving animation.
func (a *Atlas) Tile(id int) (*ebiten.Image, error) {
	if id < 0 || id >= len(a.tiles) {
		return nil, fmt.Errorf("%w: %d", tileset.ErrOutOfRange, id)
	}
	return a.tiles[id], nil
}

// Frame returns the image tile id shows after elapsed time.
func (a *Atlas) Frame(id int, elapsed time.Duration) (*ebiten.Image, error) {
	frame, err := a.Tileset.FrameAt(id, elapsed)
	if err != nil {
		return nil, err
	}
	return a.tiles[frame], nil
}

// DrawTile draws the current frame of tile id. If op is nil a new
// DrawImageOptions is used.
func (a *Atlas) DrawTile(screen *ebiten.Image, id int, elapsed time.Duration, op *ebiten.DrawImageOptions) error {
	img, err := a.Frame(id, elapsed)
	if err != nil {
		return err
	}
	var dop ebiten.DrawImageOptions
	if op != nil {
		dop = *op
	}
	dop.Filter = ebiten.FilterNearest
	screen.DrawImage(img, &dop)
	return nil
}

// Library holds one atlas per registered tileset.
type Library struct {
	atlases map[string]*Atlas
}

// NewLibrary loads the sheet of every tileset in reg from fsys.
func NewLibrary(reg *tileset.Registry, cache *ImageCache, fsys fs.FS) (*Library, error) {
	l := &Library{atlases: make(map[string]*Atlas)}
	for _, name := range reg.Names() {
		ts, err := reg.Get(name)
		if err != nil {
			return nil, err
		}
		sheet, err := cache.LoadImage(fsys, ts.Image().Source)
		if err != nil {
			return nil, fmt.Errorf("render: tileset %q: %w", name, err)
		}
		atlas, err := NewAtlas(ts, sheet)
		if err != nil {
			return nil, err
		}
		l.atlases[name] = atlas
	}
	return l, nil
}

// Get returns the atlas for a tileset name.
func (l *Library) Get(name string) (*Atlas, bool) {
	if l == nil || name == "" {
		return nil, false
	}
	a, ok := l.atlases[name]
	return a, ok
}
