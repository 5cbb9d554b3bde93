package assets

import (
	"embed"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed maps/*.tsx maps/*.tsj images/*.png
var assetsFS embed.FS

// FS returns the embedded asset tree. Tileset declarations live under maps/
// and reference their sheets under images/.
func FS() fs.FS {
	return assetsFS
}

// Tilesets lists the embedded tileset declarations.
func Tilesets() ([]string, error) {
	var out []string
	for _, pattern := range []string{"maps/*.tsx", "maps/*.tsj"} {
		matches, err := fs.Glob(assetsFS, pattern)
		if err != nil {
			return nil, err
		}
		out = append(out, matches...)
	}
	return out, nil
}

// CleanPath turns a disk or repo-relative path into an assets-relative one.
func CleanPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
