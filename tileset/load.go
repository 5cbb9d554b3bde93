package tileset

import (
	"fmt"
	"io/fs"
	"math"
	"path"
	"strings"
	"time"
)

// Parse decodes and validates a tileset declaration. It does not look for the
// image; use Load for that.
func Parse(data []byte, format Format) (*Tileset, error) {
	var (
		decl declaration
		err  error
	)
	switch format {
	case FormatTSX:
		decl, err = decodeTSX(data)
	case FormatJSON:
		decl, err = decodeJSON(data)
	default:
		return nil, fmt.Errorf("%w: unknown format %d", ErrMalformedTileset, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTileset, err)
	}
	return build(decl)
}

// Load reads the declaration at name from fsys and checks that its image can
// be found in fsys. Image sources are resolved relative to the declaration.
func Load(fsys fs.FS, name string) (*Tileset, error) {
	format, ok := FormatFromPath(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s: unsupported extension", ErrMalformedTileset, name)
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("tileset: read %s: %w", name, err)
	}
	ts, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if ts.name == "" {
		base := path.Base(name)
		ts.name = strings.TrimSuffix(base, path.Ext(base))
	}

	imgPath, err := ResolveImagePath(name, ts.image.Source)
	if err != nil {
		return nil, err
	}
	if _, err := fs.Stat(fsys, imgPath); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMissingImage, imgPath, err)
	}
	ts.image.Source = imgPath
	return ts, nil
}

// ResolveImagePath joins an image source onto the directory of the
// declaration that references it.
func ResolveImagePath(declPath, source string) (string, error) {
	p := path.Join(path.Dir(declPath), source)
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("%w: %q escapes the asset root", ErrMissingImage, source)
	}
	return p, nil
}

const maxCycle = time.Duration(math.MaxInt64)

func build(decl declaration) (*Tileset, error) {
	switch {
	case decl.TileCount <= 0:
		return nil, fmt.Errorf("%w: tilecount must be positive, got %d", ErrMalformedTileset, decl.TileCount)
	case decl.Columns <= 0:
		return nil, fmt.Errorf("%w: columns must be positive, got %d", ErrMalformedTileset, decl.Columns)
	case decl.TileWidth <= 0 || decl.TileHeight <= 0:
		return nil, fmt.Errorf("%w: tile size must be positive, got %dx%d", ErrMalformedTileset, decl.TileWidth, decl.TileHeight)
	case decl.Spacing < 0 || decl.Margin < 0:
		return nil, fmt.Errorf("%w: negative spacing or margin", ErrMalformedTileset)
	}
	if decl.Image == nil || decl.Image.Source == "" {
		return nil, fmt.Errorf("%w: no image declared", ErrMissingImage)
	}

	ts := &Tileset{
		name:       decl.Name,
		tileWidth:  decl.TileWidth,
		tileHeight: decl.TileHeight,
		columns:    decl.Columns,
		spacing:    decl.Spacing,
		margin:     decl.Margin,
		image:      *decl.Image,
		tiles:      make([]Tile, decl.TileCount),
	}
	for id := range ts.tiles {
		ts.tiles[id] = Tile{ID: id, Frames: []Frame{{TileID: id}}}
	}

	seen := make([]bool, decl.TileCount)
	inRange := func(id int) bool { return id >= 0 && id < decl.TileCount }

	for _, td := range decl.Tiles {
		if !inRange(td.ID) {
			return nil, fmt.Errorf("%w: tile id %d not in [0, %d)", ErrMalformedTileset, td.ID, decl.TileCount)
		}
		if seen[td.ID] {
			return nil, fmt.Errorf("%w: tile id %d declared twice", ErrMalformedTileset, td.ID)
		}
		seen[td.ID] = true

		tile := &ts.tiles[td.ID]
		tile.Class = td.Class

		if len(td.Frames) > 0 {
			frames := make([]Frame, 0, len(td.Frames))
			var cycle time.Duration
			for _, f := range td.Frames {
				if !inRange(f.TileID) {
					return nil, fmt.Errorf("%w: tile %d frame id %d not in [0, %d)", ErrMalformedTileset, td.ID, f.TileID, decl.TileCount)
				}
				if f.Duration <= 0 {
					return nil, fmt.Errorf("%w: tile %d frame duration must be positive, got %d", ErrMalformedTileset, td.ID, f.Duration)
				}
				// The cycle length must fit in a time.Duration.
				if int64(f.Duration) > int64(maxCycle-cycle)/int64(time.Millisecond) {
					return nil, fmt.Errorf("%w: tile %d animation cycle exceeds %v", ErrMalformedTileset, td.ID, maxCycle)
				}
				d := time.Duration(f.Duration) * time.Millisecond
				cycle += d
				frames = append(frames, Frame{TileID: f.TileID, Duration: d})
			}
			tile.Frames = frames
		}

		if len(td.Properties) > 0 {
			m := make(map[string]Value, len(td.Properties))
			for _, p := range td.Properties {
				if p.Name == "" {
					return nil, fmt.Errorf("%w: tile %d has an unnamed property", ErrMalformedTileset, td.ID)
				}
				if _, dup := m[p.Name]; dup {
					return nil, fmt.Errorf("%w: tile %d property %q declared twice", ErrMalformedTileset, td.ID, p.Name)
				}
				v, err := parseValue(p.Type, p.Value)
				if err != nil {
					return nil, fmt.Errorf("%w: tile %d property %q: %v", ErrMalformedTileset, td.ID, p.Name, err)
				}
				m[p.Name] = v
			}
			tile.Properties = Properties{m: m}
		}
	}
	return ts, nil
}
