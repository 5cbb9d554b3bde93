package tileset

import "errors"

// Load-time errors. A tileset that fails with one of these is unusable.
var (
	ErrMalformedTileset = errors.New("tileset: malformed declaration")
	ErrMissingImage     = errors.New("tileset: missing image")
)

// Query-time errors. They point at a bug in the caller or at corrupt
// authored data and are not expected with valid assets.
var (
	ErrOutOfRange     = errors.New("tileset: tile id out of range")
	ErrEmptyAnimation = errors.New("tileset: empty animation")
	ErrPropertyType   = errors.New("tileset: property type mismatch")
)

// Registry errors.
var (
	ErrDuplicateTileset = errors.New("tileset: duplicate tileset")
	ErrUnknownTileset   = errors.New("tileset: unknown tileset")
)
