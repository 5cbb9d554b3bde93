// Command tsxinfo prints what the engine sees in Tiled tileset files: size,
// animated tiles, the frame shown at a given time and the tiles matching a
// property expression.
//
//	tsxinfo -root assets -at 1400ms -where 'props.walkable' maps/map_cards.tsx
//
// Without -root the embedded sample assets are used, and without arguments
// every embedded tileset is described.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ThimoteB/Potich-Adventures/assets"
	"github.com/ThimoteB/Potich-Adventures/logger"
	"github.com/ThimoteB/Potich-Adventures/tilequery"
	"github.com/ThimoteB/Potich-Adventures/tileset"
)

type options struct {
	at    time.Duration
	tick  int64
	rate  int
	where string
}

func main() {
	root := flag.String("root", "", "asset root; tileset paths and their images are resolved inside it (default: embedded assets)")
	at := flag.Duration("at", 0, "elapsed time at which to resolve animated frames")
	tick := flag.Int64("tick", -1, "resolve frames at this simulation tick instead of -at")
	rate := flag.Int("rate", tileset.DefaultTickRate, "ticks per second for -tick")
	where := flag.String("where", "", "tengo expression selecting tiles, e.g. 'props.walkable'")
	flag.Parse()

	log := logger.New()
	fsys, names, err := targets(*root, flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, "usage: tsxinfo [flags] tileset.tsx...")
		flag.PrintDefaults()
		log.WithError(err).Error("tsxinfo")
		os.Exit(2)
	}

	opts := options{at: *at, tick: *tick, rate: *rate, where: *where}
	failed := false
	for _, name := range names {
		if err := describe(os.Stdout, fsys, name, opts); err != nil {
			log.WithError(err).WithField("tileset", name).Error("tsxinfo")
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// targets picks the filesystem and the tileset paths inside it. An empty
// root selects the embedded assets, which are all listed when args is empty.
func targets(root string, args []string) (fs.FS, []string, error) {
	if root == "" {
		if len(args) == 0 {
			names, err := assets.Tilesets()
			return assets.FS(), names, err
		}
		names := make([]string, len(args))
		for i, arg := range args {
			names[i] = assets.CleanPath(arg)
		}
		return assets.FS(), names, nil
	}

	if len(args) == 0 {
		return nil, nil, errors.New("no tilesets given")
	}
	names := make([]string, len(args))
	for i, arg := range args {
		names[i] = filepath.ToSlash(filepath.Clean(arg))
	}
	return os.DirFS(root), names, nil
}

func describe(w io.Writer, fsys fs.FS, name string, opts options) error {
	ts, err := tileset.Load(fsys, name)
	if err != nil {
		return err
	}

	elapsed := opts.at
	if opts.tick >= 0 {
		elapsed = tileset.Clock{TickRate: opts.rate}.Elapsed(opts.tick)
	}

	fmt.Fprintf(w, "%s: %d tiles, %d columns, %dx%d px, image %s (%dx%d)\n",
		ts.Name(), ts.TileCount(), ts.Columns(), ts.TileWidth(), ts.TileHeight(),
		ts.Image().Source, ts.Image().Width, ts.Image().Height)

	for _, id := range ts.AnimatedTiles() {
		frames, err := ts.FrameSequence(id)
		if err != nil {
			return err
		}
		shown, err := ts.FrameAt(id, elapsed)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  tile %d: %d frames, cycle %v, at %v shows %d\n",
			id, len(frames), tileset.CycleLength(frames), elapsed, shown)
	}

	if opts.where != "" {
		f, err := tilequery.Compile(opts.where)
		if err != nil {
			return err
		}
		ids, err := f.Select(ts)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  where %s: %v\n", f, ids)
	}
	return nil
}
