// Package tilequery selects tiles with tengo expressions evaluated against
// their properties, e.g. `props.walkable && props.color == "red"`.
//
// Inside an expression:
//
//	id        tile id (int)
//	class     tile class (string)
//	animated  whether the tile cycles frames (bool)
//	frames    number of frames (int)
//	props     property bag (map); missing keys read as undefined
//
// Ordering operators fail on undefined, so guard them with is_float or
// is_string when not every tile carries the property.
package tilequery

import (
	"fmt"
	"strings"

	"github.com/ThimoteB/Potich-Adventures/tileset"
	"github.com/d5/tengo/v2"
)

const resultVar = "__match__"

// Filter is a compiled expression. It is not safe for concurrent use.
type Filter struct {
	expr     string
	compiled *tengo.Compiled
}

// Compile parses expr once so it can be run against many tiles.
func Compile(expr string) (*Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("tilequery: empty expression")
	}

	script := tengo.NewScript([]byte(resultVar + " := (" + expr + ")"))
	_ = script.Add("id", 0)
	_ = script.Add("class", "")
	_ = script.Add("animated", false)
	_ = script.Add("frames", 0)
	_ = script.Add("props", map[string]any{})

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("tilequery: compile %q: %w", expr, err)
	}
	return &Filter{expr: expr, compiled: compiled}, nil
}

func (f *Filter) String() string { return f.expr }

// Match reports whether tile id of ts satisfies the expression. The result is
// the truthiness of the expression's value.
func (f *Filter) Match(ts *tileset.Tileset, id int) (bool, error) {
	tile, err := ts.Tile(id)
	if err != nil {
		return false, err
	}

	props := make(map[string]any, tile.Properties.Len())
	tile.Properties.Each(func(key string, v tileset.Value) {
		props[key] = toScript(v)
	})

	vars := []struct {
		name  string
		value any
	}{
		{"id", tile.ID},
		{"class", tile.Class},
		{"animated", tile.Animated()},
		{"frames", len(tile.Frames)},
		{"props", props},
	}
	for _, v := range vars {
		if err := f.compiled.Set(v.name, v.value); err != nil {
			return false, fmt.Errorf("tilequery: set %s: %w", v.name, err)
		}
	}
	if err := f.compiled.Run(); err != nil {
		return false, fmt.Errorf("tilequery: run %q on tile %d: %w", f.expr, id, err)
	}
	return f.compiled.Get(resultVar).Bool(), nil
}

// Select returns the ids of every tile of ts matching the expression.
func (f *Filter) Select(ts *tileset.Tileset) ([]int, error) {
	var ids []int
	for id := 0; id < ts.TileCount(); id++ {
		ok, err := f.Match(ts, id)
		if err != nil {
			return nil, err
		}
		if ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func toScript(v tileset.Value) any {
	switch v.Kind() {
	case tileset.KindBool:
		b, _ := v.Bool()
		return b
	case tileset.KindNumber:
		n, _ := v.Number()
		return n
	default:
		s, _ := v.Str()
		return s
	}
}
