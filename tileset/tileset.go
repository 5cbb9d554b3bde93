// Package tileset loads Tiled tileset declarations into immutable tile tables
// and answers the structural, animation and property queries made by the
// renderer and by gameplay code.
package tileset

import (
	"fmt"
	"image"
	"slices"
	"time"
)

// Frame is one step of a tile's display cycle. A zero Duration means the
// frame is held indefinitely, which is how static tiles are represented.
type Frame struct {
	TileID   int
	Duration time.Duration
}

// Image is the sheet a tileset slices its tiles from.
type Image struct {
	Source string
	Width  int
	Height int
}

// Tile is a single record of the tile arena.
type Tile struct {
	ID         int
	Class      string
	Frames     []Frame
	Properties Properties
}

// Animated reports whether the tile cycles through more than its own id.
func (t Tile) Animated() bool {
	return len(t.Frames) > 0 && t.Frames[0].Duration > 0
}

// Tileset is an immutable table of tile records sharing one image. Tiles are
// stored in an arena indexed directly by tile id. Nothing is mutable after
// Load returns, so a Tileset can be read from any goroutine without locking.
type Tileset struct {
	name       string
	tileWidth  int
	tileHeight int
	columns    int
	spacing    int
	margin     int
	image      Image

	tiles []Tile
}

func (ts *Tileset) Name() string { return ts.name }
func (ts *Tileset) TileWidth() int { return ts.tileWidth }
func (ts *Tileset) TileHeight() int { return ts.tileHeight }
func (ts *Tileset) Columns() int { return ts.columns }
func (ts *Tileset) Spacing() int { return ts.spacing }
func (ts *Tileset) Margin() int { return ts.margin }

// Image describes the sheet. After Load, Source is a path inside the asset
// filesystem the tileset was loaded from.
func (ts *Tileset) Image() Image { return ts.image }

func (ts *Tileset) TileCount() int {
	return len(ts.tiles)
}

func (ts *Tileset) tile(id int) (*Tile, error) {
	if id < 0 || id >= len(ts.tiles) {
		return nil, fmt.Errorf("%w: %d not in [0, %d) of %q", ErrOutOfRange, id, len(ts.tiles), ts.name)
	}
	return &ts.tiles[id], nil
}

// Tile returns a copy of the record for id. Changing it does not affect ts.
func (ts *Tileset) Tile(id int) (Tile, error) {
	t, err := ts.tile(id)
	if err != nil {
		return Tile{}, err
	}
	c := *t
	c.Frames = slices.Clone(t.Frames)
	return c, nil
}

// FrameSequence returns a copy of the tile's frames. Static tiles yield a
// single frame showing their own id with a zero (indefinite) duration.
func (ts *Tileset) FrameSequence(id int) ([]Frame, error) {
	t, err := ts.tile(id)
	if err != nil {
		return nil, err
	}
	return slices.Clone(t.Frames), nil
}

// Properties returns the property bag of id. The bag may be empty.
func (ts *Tileset) Properties(id int) (Properties, error) {
	t, err := ts.tile(id)
	if err != nil {
		return Properties{}, err
	}
	return t.Properties, nil
}

// SourceRect returns the pixel rectangle of id inside the tileset image.
func (ts *Tileset) SourceRect(id int) (image.Rectangle, error) {
	if _, err := ts.tile(id); err != nil {
		return image.Rectangle{}, err
	}
	col := id % ts.columns
	row := id / ts.columns
	x := ts.margin + col*(ts.tileWidth+ts.spacing)
	y := ts.margin + row*(ts.tileHeight+ts.spacing)
	return image.Rect(x, y, x+ts.tileWidth, y+ts.tileHeight), nil
}

// FrameAt resolves the tile id shown by id after elapsed time.
func (ts *Tileset) FrameAt(id int, elapsed time.Duration) (int, error) {
	t, err := ts.tile(id)
	if err != nil {
		return 0, err
	}
	return CurrentFrame(t.Frames, elapsed)
}

// AnimatedTiles returns the ids of every animated tile in ascending order.
func (ts *Tileset) AnimatedTiles() []int {
	var ids []int
	for i := range ts.tiles {
		if ts.tiles[i].Animated() {
			ids = append(ids, i)
		}
	}
	return ids
}
