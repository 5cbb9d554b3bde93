package main

import (
	"flag"

	"github.com/ThimoteB/Potich-Adventures/logger"
	"github.com/ThimoteB/Potich-Adventures/manifest"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	manifestName := flag.String("manifest", manifest.DefaultName, "tileset manifest in manifest/ (embedded copy used when absent)")
	assetDir := flag.String("assets", "", "asset directory on disk (default: embedded assets)")
	tilesetName := flag.String("tileset", "", "tileset to show first (default: first registered)")
	watch := flag.Bool("watch", false, "reload when tilesets or the manifest change on disk")
	scale := flag.Float64("scale", 3, "tile draw scale")
	flag.Parse()

	log := logger.New()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("tileview")

	game, err := NewGame(Config{
		Manifest: *manifestName,
		AssetDir: *assetDir,
		Tileset:  *tilesetName,
		Watch:    *watch,
		Scale:    *scale,
	}, log)
	if err != nil {
		log.WithError(err).Fatal("tileview: start")
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Fatal("tileview: run")
	}
}
