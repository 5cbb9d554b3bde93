package tileset

import (
	"errors"
	"testing"
	"testing/fstest"
)

const validTSX = `<?xml version="1.0" encoding="UTF-8"?>
<tileset version="1.10" tiledversion="1.10.2" name="doors" tilewidth="16" tileheight="16" tilecount="4" columns="2">
 <image source="../images/doors.png" width="32" height="32"/>
 <tile id="0" class="door">
  <properties>
   <property name="walkable" type="bool" value="false"/>
   <property name="note">first line
second line</property>
   <property name="weight" type="float" value="1.5"/>
  </properties>
  <animation>
   <frame tileid="0" duration="100"/>
   <frame tileid="1" duration="300"/>
  </animation>
 </tile>
 <tile id="3" type="key">
  <properties>
   <property name="color" value="red"/>
  </properties>
 </tile>
</tileset>`

func TestParseTSX(t *testing.T) {
	ts, err := Parse([]byte(validTSX), FormatTSX)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	tile, err := ts.Tile(0)
	if err != nil {
		t.Fatalf("Tile: %v", err)
	}
	if tile.Class != "door" || !tile.Animated() {
		t.Fatalf("unexpected tile 0: %+v", tile)
	}
	if note, _ := GetString(ts, 0, "note", ""); note != "first line\nsecond line" {
		t.Fatalf("expected multi-line note, got %q", note)
	}
	if w, _ := GetNumber(ts, 0, "weight", 0); w != 1.5 {
		t.Fatalf("expected weight 1.5, got %v", w)
	}
	if key, _ := ts.Tile(3); key.Class != "key" {
		t.Fatalf("expected legacy type attribute to fill Class, got %q", key.Class)
	}
	if c, _ := Color(ts, 3); c != "red" {
		t.Fatalf("expected red, got %q", c)
	}
}

func TestParseJSON(t *testing.T) {
	src := `{"name":"ice","tilewidth":8,"tileheight":8,"tilecount":4,"columns":2,
	"image":"ice.png","imagewidth":16,"imageheight":16,
	"tiles":[{"id":1,"class":"slide",
	  "animation":[{"tileid":1,"duration":50},{"tileid":2,"duration":50}],
	  "properties":[{"name":"walkable","type":"bool","value":true},
	                {"name":"friction","type":"float","value":0.1},
	                {"name":"tint","type":"color","value":"#ff80c0ff"},
	                {"name":"label","value":"ice"}]}]}`

	ts, err := Parse([]byte(src), FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ts.Image() != (Image{Source: "ice.png", Width: 16, Height: 16}) {
		t.Fatalf("unexpected image %+v", ts.Image())
	}
	if ok, _ := Walkable(ts, 1); !ok {
		t.Fatalf("expected tile 1 walkable")
	}
	if f, _ := GetNumber(ts, 1, "friction", 0); f != 0.1 {
		t.Fatalf("expected friction 0.1, got %v", f)
	}
	if tint, _ := GetString(ts, 1, "tint", ""); tint != "#ff80c0ff" {
		t.Fatalf("expected color property as string, got %q", tint)
	}
	if got, _ := ts.FrameAt(1, ms(75)); got != 2 {
		t.Fatalf("expected frame 2 at 75ms, got %d", got)
	}
}

func TestParseMalformed(t *testing.T) {
	wrap := func(attrs, body string) string {
		return `<tileset name="bad" tilewidth="16" tileheight="16" ` + attrs + `><image source="bad.png"/>` + body + `</tileset>`
	}
	counts := `tilecount="4" columns="2"`

	cases := []struct {
		name string
		src  string
		want error
	}{
		{"not_xml", `<tileset`, ErrMalformedTileset},
		{"missing_tilecount", wrap(`columns="2"`, ""), ErrMalformedTileset},
		{"missing_columns", wrap(`tilecount="4"`, ""), ErrMalformedTileset},
		{"zero_columns", wrap(`tilecount="4" columns="0"`, ""), ErrMalformedTileset},
		{"negative_tilecount", wrap(`tilecount="-1" columns="2"`, ""), ErrMalformedTileset},
		{"non_numeric_tilecount", wrap(`tilecount="many" columns="2"`, ""), ErrMalformedTileset},
		{"tile_out_of_range", wrap(counts, `<tile id="4"/>`), ErrMalformedTileset},
		{"duplicate_tile", wrap(counts, `<tile id="1"/><tile id="1"/>`), ErrMalformedTileset},
		{"frame_out_of_range", wrap(counts, `<tile id="0"><animation><frame tileid="9" duration="10"/></animation></tile>`), ErrMalformedTileset},
		{"negative_frame", wrap(counts, `<tile id="0"><animation><frame tileid="-1" duration="10"/></animation></tile>`), ErrMalformedTileset},
		{"zero_duration", wrap(counts, `<tile id="0"><animation><frame tileid="1" duration="0"/></animation></tile>`), ErrMalformedTileset},
		{"duration_overflow", wrap(counts, `<tile id="0"><animation><frame tileid="0" duration="9300000000000"/><frame tileid="1" duration="100"/></animation></tile>`), ErrMalformedTileset},
		{"cycle_overflow", wrap(counts, `<tile id="0"><animation><frame tileid="0" duration="5000000000000"/><frame tileid="1" duration="5000000000000"/></animation></tile>`), ErrMalformedTileset},
		{"duplicate_property", wrap(counts, `<tile id="0"><properties><property name="a" value="1"/><property name="a" value="2"/></properties></tile>`), ErrMalformedTileset},
		{"bad_bool", wrap(counts, `<tile id="0"><properties><property name="walkable" type="bool" value="yes please"/></properties></tile>`), ErrMalformedTileset},
		{"bad_int", wrap(counts, `<tile id="0"><properties><property name="depth" type="int" value="deep"/></properties></tile>`), ErrMalformedTileset},
		{"class_property", wrap(counts, `<tile id="0"><properties><property name="stats" type="class"/></properties></tile>`), ErrMalformedTileset},
		{"no_image", `<tileset name="bad" tilewidth="16" tileheight="16" tilecount="4" columns="2"></tileset>`, ErrMissingImage},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ts, err := Parse([]byte(c.src), FormatTSX)
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
			if ts != nil {
				t.Fatalf("expected no tileset on failure")
			}
		})
	}
}

func TestParseMalformedJSON(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"not_json", `{`},
		{"missing_counts", `{"name":"x","tilewidth":8,"tileheight":8,"image":"x.png"}`},
		{"object_value", `{"tilewidth":8,"tileheight":8,"tilecount":1,"columns":1,"image":"x.png",
			"tiles":[{"id":0,"properties":[{"name":"p","value":{"a":1}}]}]}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Parse([]byte(c.src), FormatJSON); !errors.Is(err, ErrMalformedTileset) {
				t.Fatalf("expected ErrMalformedTileset, got %v", err)
			}
		})
	}
}

func TestLoadImageResolution(t *testing.T) {
	fsys := fstest.MapFS{
		"maps/doors.tsx":   {Data: []byte(validTSX)},
		"images/doors.png": {Data: []byte("png")},
		"maps/lost.tsx":    {Data: []byte(`<tileset tilewidth="16" tileheight="16" tilecount="1" columns="1"><image source="nowhere.png"/></tileset>`)},
		"maps/escape.tsx":  {Data: []byte(`<tileset tilewidth="16" tileheight="16" tilecount="1" columns="1"><image source="../../outside.png"/></tileset>`)},
		"maps/notes.txt":   {Data: []byte("hello")},
	}

	t.Run("found", func(t *testing.T) {
		ts, err := Load(fsys, "maps/doors.tsx")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if ts.Image().Source != "images/doors.png" {
			t.Fatalf("expected resolved image path, got %q", ts.Image().Source)
		}
	})

	t.Run("default_name", func(t *testing.T) {
		fsys := fstest.MapFS{
			"a/plain.tsx": {Data: []byte(`<tileset tilewidth="16" tileheight="16" tilecount="1" columns="1"><image source="plain.png"/></tileset>`)},
			"a/plain.png": {Data: []byte("png")},
		}
		ts, err := Load(fsys, "a/plain.tsx")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if ts.Name() != "plain" {
			t.Fatalf("expected name from file, got %q", ts.Name())
		}
	})

	cases := []struct {
		name string
		file string
		want error
	}{
		{"missing_image", "maps/lost.tsx", ErrMissingImage},
		{"escaping_image", "maps/escape.tsx", ErrMissingImage},
		{"unsupported_extension", "maps/notes.txt", ErrMalformedTileset},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Load(fsys, c.file); !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}

	t.Run("missing_file", func(t *testing.T) {
		_, err := Load(fsys, "maps/none.tsx")
		if err == nil || errors.Is(err, ErrMalformedTileset) {
			t.Fatalf("expected a read error, got %v", err)
		}
	})
}

func TestFormatFromPath(t *testing.T) {
	cases := []struct {
		path string
		want Format
		ok   bool
	}{
		{"a.tsx", FormatTSX, true},
		{"dir/A.TSX", FormatTSX, true},
		{"a.tsj", FormatJSON, true},
		{"a.json", FormatJSON, true},
		{"a.png", 0, false},
	}
	for _, c := range cases {
		got, ok := FormatFromPath(c.path)
		if got != c.want || ok != c.ok {
			t.Fatalf("FormatFromPath(%q) = %v,%v want %v,%v", c.path, got, ok, c.want, c.ok)
		}
	}
}
