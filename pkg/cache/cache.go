// Package cache provides pluggable byte caching for solved layouts,
// rendered artifacts and downloaded photos.
//
// Three backends implement the [Cache] interface: [FileCache] for CLI
// usage, [RedisCache] for server deployments and [NullCache] to disable
// caching. Keys are built through a [Keyer] so every backend sees the
// same deterministic, collision-free key space.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind. Layouts and artifacts are cheap
// to recompute; downloaded photos are kept longer to spare the network.
const (
	DefaultLayoutTTL   = 24 * time.Hour
	DefaultArtifactTTL = 24 * time.Hour
	DefaultImageTTL    = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts captures every input that changes a solved layout.
type LayoutKeyOpts struct {
	PageWidth  int     `json:"page_width"`
	PageHeight int     `json:"page_height"`
	Gap        int     `json:"gap"`
	PhotoCount int     `json:"photo_count"`
	Mode       string  `json:"mode"`
	FillTarget float64 `json:"fill_target,omitempty"`
}

// ArtifactKeyOpts captures every rendering input that changes the final
// encoded artifact beyond the layout itself.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	DPI        int    `json:"dpi"`
	Fit        string `json:"fit"`
	Background string `json:"background,omitempty"`
	Border     string `json:"border,omitempty"`
}

// Keyer builds cache keys for the three entry kinds.
type Keyer interface {
	// LayoutKey identifies a solved layout by its full input set.
	LayoutKey(opts LayoutKeyOpts) string

	// ArtifactKey identifies an encoded artifact: the layout it renders
	// plus a hash of the photo set and the render options.
	ArtifactKey(layoutKey, photosHash string, opts ArtifactKeyOpts) string

	// ImageKey identifies a downloaded photo by its reference.
	ImageKey(ref string) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

func (k *DefaultKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return hashKey("layout", opts)
}

func (k *DefaultKeyer) ArtifactKey(layoutKey, photosHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutKey, photosHash, opts)
}

func (k *DefaultKeyer) ImageKey(ref string) string {
	return hashKey("image", ref)
}
