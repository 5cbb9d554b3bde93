package tileset

import "fmt"

// Well-known property names.
const (
	PropWalkable = "walkable"
	PropColor    = "color"
)

func lookup(ts *Tileset, id int, key string) (Value, bool, error) {
	props, err := ts.Properties(id)
	if err != nil {
		return Value{}, false, err
	}
	v, ok := props.Get(key)
	return v, ok, nil
}

func typeError(ts *Tileset, id int, key string, want, got Kind) error {
	return fmt.Errorf("%w: %s tile %d property %q is %s, requested %s", ErrPropertyType, ts.Name(), id, key, got, want)
}

// GetBool returns the boolean property key of id, or def when the tile has no
// such property. A property of another type is an error, never a coercion.
func GetBool(ts *Tileset, id int, key string, def bool) (bool, error) {
	v, ok, err := lookup(ts, id, key)
	if err != nil || !ok {
		return def, err
	}
	b, ok := v.Bool()
	if !ok {
		return def, typeError(ts, id, key, KindBool, v.Kind())
	}
	return b, nil
}

// GetString is GetBool for string properties such as color tags.
func GetString(ts *Tileset, id int, key string, def string) (string, error) {
	v, ok, err := lookup(ts, id, key)
	if err != nil || !ok {
		return def, err
	}
	s, ok := v.Str()
	if !ok {
		return def, typeError(ts, id, key, KindString, v.Kind())
	}
	return s, nil
}

// GetNumber is GetBool for numeric properties.
func GetNumber(ts *Tileset, id int, key string, def float64) (float64, error) {
	v, ok, err := lookup(ts, id, key)
	if err != nil || !ok {
		return def, err
	}
	n, ok := v.Number()
	if !ok {
		return def, typeError(ts, id, key, KindNumber, v.Kind())
	}
	return n, nil
}

// Walkable reports whether id may be entered. Tiles without the property are
// not walkable; an explicit false reads the same as omission.
func Walkable(ts *Tileset, id int) (bool, error) {
	return GetBool(ts, id, PropWalkable, false)
}

// Color returns the color tag of id, or "" when it has none.
func Color(ts *Tileset, id int) (string, error) {
	return GetString(ts, id, PropColor, "")
}

// TileRef points at one tile of one tileset, e.g. a layer of a map cell.
type TileRef struct {
	Tileset *Tileset
	ID      int
}

// CellWalkable reports whether a cell made of stacked tiles can be entered:
// every layer must be walkable. An empty cell is not walkable.
func CellWalkable(refs ...TileRef) (bool, error) {
	if len(refs) == 0 {
		return false, nil
	}
	for _, r := range refs {
		ok, err := Walkable(r.Tileset, r.ID)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
