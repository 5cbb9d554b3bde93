package manifest

import (
	"fmt"
	"io/fs"

	"github.com/ThimoteB/Potich-Adventures/tileset"
	"github.com/sirupsen/logrus"
)

// LoadRegistry loads every tileset named by spec from fsys into a new
// registry. A required tileset that fails aborts the whole load; an optional
// one is logged and skipped.
func LoadRegistry(spec *Spec, fsys fs.FS, log logrus.FieldLogger) (*tileset.Registry, error) {
	reg := tileset.NewRegistry()
	for _, entry := range spec.Tilesets {
		entryLog := log.WithFields(logrus.Fields{"tileset": entry.Name, "path": entry.Path})

		ts, err := tileset.Load(fsys, entry.Path)
		if err != nil {
			if entry.Required {
				reg.UnloadAll()
				return nil, fmt.Errorf("manifest: load required tileset %q: %w", entry.Name, err)
			}
			entryLog.WithError(err).Warn("skipping tileset")
			continue
		}
		if err := reg.Register(entry.Name, ts); err != nil {
			reg.UnloadAll()
			return nil, fmt.Errorf("manifest: register %q: %w", entry.Name, err)
		}
		entryLog.WithFields(logrus.Fields{
			"tiles":    ts.TileCount(),
			"animated": len(ts.AnimatedTiles()),
		}).Debug("tileset loaded")
	}
	log.WithField("count", reg.Len()).Info("tilesets loaded")
	return reg, nil
}
