package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ThimoteB/Potich-Adventures/assets"
	"github.com/ThimoteB/Potich-Adventures/manifest"
	"github.com/ThimoteB/Potich-Adventures/render"
	"github.com/ThimoteB/Potich-Adventures/tileset"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	gridOrigin = 16
)

type Config struct {
	Manifest string
	AssetDir string
	Tileset  string
	Watch    bool
	Scale    float64
}

// Game shows every tile of one tileset, animated, with an inspector for the
// tile under the cursor.
type Game struct {
	cfg  Config
	log  *logrus.Logger
	fsys fs.FS

	clock tileset.Clock
	reg   *tileset.Registry
	lib   *render.Library
	cache *render.ImageCache

	names   []string
	current string
	tick    int64
	hover   int

	watcher *manifest.Watcher
	ui      *ebitenui.UI
	info    *widget.Text
}

func NewGame(cfg Config, log *logrus.Logger) (*Game, error) {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	g := &Game{cfg: cfg, log: log, hover: -1}

	if cfg.AssetDir != "" {
		g.fsys = os.DirFS(cfg.AssetDir)
	} else {
		g.fsys = assets.FS()
	}

	if err := g.reload(); err != nil {
		return nil, err
	}
	if cfg.Tileset != "" {
		if _, err := g.reg.Get(cfg.Tileset); err != nil {
			return nil, err
		}
		g.current = cfg.Tileset
	}

	if cfg.Watch {
		dirs := []string{}
		if cfg.AssetDir != "" {
			dirs = append(dirs, filepath.Join(cfg.AssetDir, "maps"))
		}
		if info, err := os.Stat("manifest"); err == nil && info.IsDir() {
			dirs = append(dirs, "manifest")
		}
		w, err := manifest.NewWatcher(dirs...)
		if err != nil {
			return nil, fmt.Errorf("tileview: watch: %w", err)
		}
		g.watcher = w
	}

	g.ui, g.info = NewInspectorUI()
	return g, nil
}

// reload builds a fresh registry and atlas library and swaps them in. The
// previous ones are released only after the swap succeeds.
func (g *Game) reload() error {
	spec, err := manifest.LoadTilesetsSpec(g.cfg.Manifest)
	if err != nil {
		return err
	}
	reg, err := manifest.LoadRegistry(spec, g.fsys, g.log)
	if err != nil {
		return err
	}
	cache := render.NewImageCache()
	lib, err := render.NewLibrary(reg, cache, g.fsys)
	if err != nil {
		cache.Clear()
		return err
	}

	if g.reg != nil {
		g.reg.UnloadAll()
	}
	if g.cache != nil {
		g.cache.Clear()
	}
	g.clock = spec.Clock()
	g.reg, g.lib, g.cache = reg, lib, cache
	g.names = reg.Names()
	if !slices.Contains(g.names, g.current) {
		g.current = ""
		if len(g.names) > 0 {
			g.current = g.names[0]
		}
	}
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.reg != nil {
		g.reg.UnloadAll()
	}
	if g.cache != nil {
		g.cache.Clear()
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case files, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.WithField("files", files).Debug("assets changed")
			changed = true
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.WithError(err).Warn("watcher error")
		default:
			if changed {
				if err := g.reload(); err != nil {
					g.log.WithError(err).Error("reload failed, keeping previous tilesets")
				} else {
					g.log.Info("tilesets reloaded")
				}
			}
			return
		}
	}
}

func (g *Game) Update() error {
	g.tick++
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && len(g.names) > 0 {
		i := slices.Index(g.names, g.current)
		g.current = g.names[(i+1)%len(g.names)]
	}

	g.hover = g.tileAt(ebiten.CursorPosition())
	g.info.Label = g.describe()
	g.ui.Update()
	return nil
}

func (g *Game) atlas() *render.Atlas {
	a, _ := g.lib.Get(g.current)
	return a
}

// tileAt maps a screen position onto the tile grid, or -1.
func (g *Game) tileAt(x, y int) int {
	a := g.atlas()
	if a == nil {
		return -1
	}
	ts := a.Tileset
	cw := float64(ts.TileWidth()) * g.cfg.Scale
	ch := float64(ts.TileHeight()) * g.cfg.Scale
	fx, fy := float64(x-gridOrigin), float64(y-gridOrigin)
	if fx < 0 || fy < 0 {
		return -1
	}
	col, row := int(fx/cw), int(fy/ch)
	if col >= ts.Columns() {
		return -1
	}
	id := row*ts.Columns() + col
	if id >= ts.TileCount() {
		return -1
	}
	return id
}

func (g *Game) describe() string {
	a := g.atlas()
	if a == nil {
		return "no tilesets loaded"
	}
	ts := a.Tileset
	var b strings.Builder
	fmt.Fprintf(&b, "%s  (%d/%d, tab to switch)\n", ts.Name(), slices.Index(g.names, g.current)+1, len(g.names))
	fmt.Fprintf(&b, "tick %d  t=%v\n", g.tick, g.clock.Elapsed(g.tick))
	if g.hover < 0 {
		b.WriteString("hover a tile")
		return b.String()
	}

	tile, err := ts.Tile(g.hover)
	if err != nil {
		return err.Error()
	}
	frame, _ := g.clock.FrameAtTick(ts, g.hover, g.tick)
	walkable, _ := tileset.Walkable(ts, g.hover)
	fmt.Fprintf(&b, "tile %d  frame %d\n", g.hover, frame)
	if tile.Class != "" {
		fmt.Fprintf(&b, "class %s\n", tile.Class)
	}
	if tile.Animated() {
		fmt.Fprintf(&b, "cycle %v over %d frames\n", tileset.CycleLength(tile.Frames), len(tile.Frames))
	}
	fmt.Fprintf(&b, "walkable %v\n", walkable)
	tile.Properties.Each(func(key string, v tileset.Value) {
		if key != tileset.PropWalkable {
			fmt.Fprintf(&b, "%s = %s\n", key, v)
		}
	})
	return b.String()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)

	a := g.atlas()
	if a != nil {
		ts := a.Tileset
		elapsed := g.clock.Elapsed(g.tick)
		for id := 0; id < ts.TileCount(); id++ {
			col, row := id%ts.Columns(), id/ts.Columns()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(g.cfg.Scale, g.cfg.Scale)
			op.GeoM.Translate(
				gridOrigin+float64(col*ts.TileWidth())*g.cfg.Scale,
				gridOrigin+float64(row*ts.TileHeight())*g.cfg.Scale,
			)
			if id == g.hover {
				op.ColorScale.Scale(1.3, 1.3, 1.3, 1)
			}
			if err := a.DrawTile(screen, id, elapsed, op); err != nil {
				g.log.WithError(err).WithField("tile", id).Error("draw tile")
			}
		}
	}

	g.ui.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
