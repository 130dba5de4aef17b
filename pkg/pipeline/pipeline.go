// Package pipeline provides the core collage pipeline for Collagely.
//
// This package implements the complete resolve → layout → render pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Resolve: Load photos from local paths or remote URLs
//  2. Layout: Solve slot geometry for the requested mode (grid or ring)
//  3. Render: Rasterize the collage and encode output formats (PNG, JPEG, PDF)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Photos:  []string{"a.jpg", "b.jpg", "c.jpg"},
//	    Page:    "a4",
//	    Formats: []string{"png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// Run individual stages:
//
//	// Layout only
//	l, err := runner.SolveLayout(ctx, opts)
//
//	// Render with existing layout and photos
//	artifacts, err := runner.Render(ctx, l, photos, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/collagely/collagely/pkg/cache"
	"github.com/collagely/collagely/pkg/export"
	"github.com/collagely/collagely/pkg/layout"
	"github.com/collagely/collagely/pkg/render"
	"github.com/collagely/collagely/pkg/xerrors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultPage is the page preset used when none is configured.
	DefaultPage = "a4"

	// DefaultGap is the uniform spacing between photos in pixels.
	DefaultGap = 10

	// DefaultMode is the layout mode used when none is configured.
	DefaultMode = ModeGrid

	// DefaultFit is the photo-to-cell mapping policy.
	DefaultFit = string(render.FitCover)

	// DefaultBackground is the page background color.
	DefaultBackground = "#FFFFFF"

	// DefaultJPEGQuality is the JPEG encoder quality.
	DefaultJPEGQuality = export.DefaultJPEGQuality
)

// DefaultFormat is the output format used when none is configured.
const DefaultFormat = string(export.FormatPNG)

// ValidModes is the set of supported layout modes.
var ValidModes = map[string]bool{
	ModeGrid: true,
	ModeRing: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the collage pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Photo options
	Photos     []string `json:"photos,omitempty"`      // local paths or http(s) URLs
	MainIndex  int      `json:"main_index,omitempty"`  // index into Photos of the main photo
	PhotoCount int      `json:"photo_count,omitempty"` // slot count for layouts without photos
	PhotoRoot  string   `json:"photo_root,omitempty"`  // directory local refs resolve against
	Refresh    bool     `json:"refresh,omitempty"`     // bypass caches and recompute

	// Page options
	Page       string `json:"page,omitempty"`        // preset name, e.g. "a4" or "a3-landscape"
	DPI        int    `json:"dpi,omitempty"`         // raster density for presets and PDF
	PageWidth  int    `json:"page_width,omitempty"`  // explicit pixel size, overrides Page
	PageHeight int    `json:"page_height,omitempty"` // explicit pixel size, overrides Page
	Gap        int    `json:"gap"`                   // uniform spacing in pixels

	// Layout options
	Mode       string  `json:"mode,omitempty"` // "grid" or "ring"
	FillTarget float64 `json:"fill_target,omitempty"`

	// Render options
	Fit          string   `json:"fit,omitempty"`        // "cover" or "contain"
	Background   string   `json:"background,omitempty"` // hex color
	Border       string   `json:"border,omitempty"`     // hex color, empty disables borders
	CornerRadius float64  `json:"corner_radius,omitempty"`
	Placeholders bool     `json:"placeholders,omitempty"` // draw numbered slots for missing photos
	Formats      []string `json:"formats,omitempty"`
	JPEGQuality  int      `json:"jpeg_quality,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`

	gapSet bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the solved slot geometry.
	Layout Layout

	// LayoutHash is the content hash of the layout.
	LayoutHash string

	// Artifacts contains encoded outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PhotoCount  int
	ResolveTime time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ImageHits int  // How many photos came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateMode checks that a layout mode is valid.
func ValidateMode(mode string) error {
	if !ValidModes[mode] {
		return xerrors.New(xerrors.ErrCodeInvalidRequest,
			"invalid mode: %q (must be one of: grid, ring)", mode)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := export.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if len(o.Photos) == 0 && o.PhotoCount == 0 {
		return xerrors.New(xerrors.ErrCodeInvalidRequest, "photos or photo_count is required")
	}
	if len(o.Photos) > 0 && (o.MainIndex < 0 || o.MainIndex >= len(o.Photos)) {
		return xerrors.New(xerrors.ErrCodeInvalidRequest,
			"main_index %d out of range for %d photos", o.MainIndex, len(o.Photos))
	}

	o.SetLayoutDefaults()
	o.SetRenderDefaults()

	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if _, err := render.ParseFit(o.Fit); err != nil {
		return err
	}
	if _, _, err := o.PageSize(); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Page == "" && o.PageWidth == 0 {
		o.Page = DefaultPage
	}
	if o.DPI == 0 {
		o.DPI = export.DefaultDPI
	}
	if o.Gap == 0 && !o.gapSet {
		o.Gap = DefaultGap
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if o.FillTarget == 0 {
		o.FillTarget = layout.DefaultFillTarget
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Fit == "" {
		o.Fit = DefaultFit
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.JPEGQuality == 0 {
		o.JPEGQuality = DefaultJPEGQuality
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetZeroGap requests an explicit zero gap instead of the default.
func (o *Options) SetZeroGap() {
	o.Gap = 0
	o.gapSet = true
}

// SlotCount returns the number of photo slots the layout must provide.
func (o *Options) SlotCount() int {
	if len(o.Photos) > 0 {
		return len(o.Photos)
	}
	return o.PhotoCount
}

// PageSize resolves the page raster dimensions in pixels.
func (o *Options) PageSize() (width, height int, err error) {
	if o.PageWidth > 0 || o.PageHeight > 0 {
		if o.PageWidth <= 0 || o.PageHeight <= 0 {
			return 0, 0, xerrors.New(xerrors.ErrCodeInvalidPage,
				"page_width and page_height must both be set, got %dx%d", o.PageWidth, o.PageHeight)
		}
		return o.PageWidth, o.PageHeight, nil
	}

	page, err := export.ParsePage(o.Page)
	if err != nil {
		return 0, 0, err
	}
	width, height = page.Pixels(o.DPI)
	return width, height, nil
}

// LayoutKeyOpts returns cache key options for the layout stage.
func (o *Options) LayoutKeyOpts(pageWidth, pageHeight int) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		PageWidth:  pageWidth,
		PageHeight: pageHeight,
		Gap:        o.Gap,
		PhotoCount: o.SlotCount(),
		Mode:       o.Mode,
		FillTarget: o.FillTarget,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		DPI:        o.DPI,
		Fit:        o.Fit,
		Background: o.Background,
		Border:     o.Border,
	}
}
