package tileset

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"path"
	"strconv"
	"strings"
)

// Format is the encoding of a tileset declaration.
type Format uint8

const (
	FormatTSX  Format = iota // Tiled XML (.tsx)
	FormatJSON               // Tiled JSON (.tsj, .json)
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(name string) (Format, bool) {
	switch strings.ToLower(path.Ext(name)) {
	case ".tsx", ".xml":
		return FormatTSX, true
	case ".tsj", ".json":
		return FormatJSON, true
	default:
		return 0, false
	}
}

// declaration is the format independent shape of a tileset file.
type declaration struct {
	Name       string
	TileWidth  int
	TileHeight int
	TileCount  int
	Columns    int
	Spacing    int
	Margin     int
	Image      *Image
	Tiles      []tileDecl
}

type tileDecl struct {
	ID         int
	Class      string
	Frames     []frameDecl
	Properties []propertyDecl
}

type frameDecl struct {
	TileID   int
	Duration int
}

type propertyDecl struct {
	Name  string
	Type  string
	Value string
}

type tsxTileset struct {
	XMLName    xml.Name  `xml:"tileset"`
	Name       string    `xml:"name,attr"`
	TileWidth  int       `xml:"tilewidth,attr"`
	TileHeight int       `xml:"tileheight,attr"`
	TileCount  int       `xml:"tilecount,attr"`
	Columns    int       `xml:"columns,attr"`
	Spacing    int       `xml:"spacing,attr"`
	Margin     int       `xml:"margin,attr"`
	Image      *tsxImage `xml:"image"`
	Tiles      []tsxTile `xml:"tile"`
}

type tsxImage struct {
	Source string `xml:"source,attr"`
	Width  int    `xml:"width,attr"`
	Height int    `xml:"height,attr"`
}

type tsxTile struct {
	ID         int           `xml:"id,attr"`
	Type       string        `xml:"type,attr"`
	Class      string        `xml:"class,attr"`
	Properties []tsxProperty `xml:"properties>property"`
	Frames     []tsxFrame    `xml:"animation>frame"`
}

type tsxProperty struct {
	Name  string  `xml:"name,attr"`
	Type  string  `xml:"type,attr"`
	Value *string `xml:"value,attr"`
	Text  string  `xml:",chardata"`
}

type tsxFrame struct {
	TileID   int `xml:"tileid,attr"`
	Duration int `xml:"duration,attr"`
}

func decodeTSX(data []byte) (declaration, error) {
	var raw tsxTileset
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
		return declaration{}, err
	}

	decl := declaration{
		Name:       raw.Name,
		TileWidth:  raw.TileWidth,
		TileHeight: raw.TileHeight,
		TileCount:  raw.TileCount,
		Columns:    raw.Columns,
		Spacing:    raw.Spacing,
		Margin:     raw.Margin,
		Tiles:      make([]tileDecl, 0, len(raw.Tiles)),
	}
	if raw.Image != nil {
		decl.Image = &Image{Source: raw.Image.Source, Width: raw.Image.Width, Height: raw.Image.Height}
	}
	for _, t := range raw.Tiles {
		td := tileDecl{ID: t.ID, Class: t.Class}
		if td.Class == "" {
			td.Class = t.Type
		}
		for _, f := range t.Frames {
			td.Frames = append(td.Frames, frameDecl{TileID: f.TileID, Duration: f.Duration})
		}
		for _, p := range t.Properties {
			// Multi-line string values are written as element text.
			value := p.Text
			if p.Value != nil {
				value = *p.Value
			}
			td.Properties = append(td.Properties, propertyDecl{Name: p.Name, Type: p.Type, Value: value})
		}
		decl.Tiles = append(decl.Tiles, td)
	}
	return decl, nil
}

type tsjTileset struct {
	Name        string    `json:"name"`
	TileWidth   int       `json:"tilewidth"`
	TileHeight  int       `json:"tileheight"`
	TileCount   int       `json:"tilecount"`
	Columns     int       `json:"columns"`
	Spacing     int       `json:"spacing"`
	Margin      int       `json:"margin"`
	Image       string    `json:"image"`
	ImageWidth  int       `json:"imagewidth"`
	ImageHeight int       `json:"imageheight"`
	Tiles       []tsjTile `json:"tiles"`
}

type tsjTile struct {
	ID         int           `json:"id"`
	Type       string        `json:"type"`
	Class      string        `json:"class"`
	Animation  []tsjFrame    `json:"animation"`
	Properties []tsjProperty `json:"properties"`
}

type tsjFrame struct {
	TileID   int `json:"tileid"`
	Duration int `json:"duration"`
}

type tsjProperty struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

func decodeJSON(data []byte) (declaration, error) {
	var raw tsjTileset
	if err := json.Unmarshal(data, &raw); err != nil {
		return declaration{}, err
	}

	decl := declaration{
		Name:       raw.Name,
		TileWidth:  raw.TileWidth,
		TileHeight: raw.TileHeight,
		TileCount:  raw.TileCount,
		Columns:    raw.Columns,
		Spacing:    raw.Spacing,
		Margin:     raw.Margin,
		Tiles:      make([]tileDecl, 0, len(raw.Tiles)),
	}
	if raw.Image != "" {
		decl.Image = &Image{Source: raw.Image, Width: raw.ImageWidth, Height: raw.ImageHeight}
	}
	for _, t := range raw.Tiles {
		td := tileDecl{ID: t.ID, Class: t.Class}
		if td.Class == "" {
			td.Class = t.Type
		}
		for _, f := range t.Animation {
			td.Frames = append(td.Frames, frameDecl{TileID: f.TileID, Duration: f.Duration})
		}
		for _, p := range t.Properties {
			value, err := jsonScalar(p.Value)
			if err != nil {
				return declaration{}, fmt.Errorf("tile %d property %q: %w", t.ID, p.Name, err)
			}
			td.Properties = append(td.Properties, propertyDecl{Name: p.Name, Type: p.Type, Value: value})
		}
		decl.Tiles = append(decl.Tiles, td)
	}
	return decl, nil
}

func jsonScalar(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported value %T", v)
	}
}
