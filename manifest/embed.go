package manifest

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

// DefaultName is the manifest read when no other is given.
const DefaultName = "tilesets.yaml"

//go:embed *.yaml
var ManifestFS embed.FS

// Load reads a manifest, preferring the on-disk copy under manifest/ so edits
// are picked up without a rebuild.
func Load(name string) ([]byte, error) {
	clean := cleanManifestPath(name)
	if data, err := os.ReadFile(diskManifestPath(clean)); err == nil {
		return data, nil
	}
	return ManifestFS.ReadFile(clean)
}

func cleanManifestPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "manifest/"); ok {
		return after
	}
	return s
}

func diskManifestPath(clean string) string {
	return filepath.Join("manifest", filepath.FromSlash(clean))
}
