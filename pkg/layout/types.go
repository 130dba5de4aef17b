package layout

import (
	"github.com/collagely/collagely/pkg/xerrors"
)

// Request describes a grid layout problem: a fixed page, a uniform gap and
// a set of photos of which one is designated the main photo.
type Request struct {
	// PageWidth and PageHeight are the page dimensions in pixels.
	PageWidth  int `json:"page_width"`
	PageHeight int `json:"page_height"`

	// Gap is the spacing in pixels enforced between every pair of adjacent
	// rectangles and between the composition and the page border.
	Gap int `json:"gap"`

	// PhotoCount is the total number of photos including the main photo.
	PhotoCount int `json:"photo_count"`

	// MainIndex is the position of the main photo in the caller's photo
	// order. Side rectangles are assigned to the remaining photos in their
	// original order with the main photo removed.
	MainIndex int `json:"main_index"`
}

// Validate rejects structurally invalid requests.
// A request that passes validation always produces a best-effort result.
func (r Request) Validate() error {
	if r.PageWidth <= 0 || r.PageHeight <= 0 {
		return xerrors.New(xerrors.ErrCodeInvalidRequest,
			"page dimensions must be positive, got %dx%d", r.PageWidth, r.PageHeight)
	}
	if r.Gap < 0 {
		return xerrors.New(xerrors.ErrCodeInvalidRequest, "gap must be >= 0, got %d", r.Gap)
	}
	if r.PhotoCount < 1 {
		return xerrors.New(xerrors.ErrCodeInvalidRequest,
			"photo count must be >= 1, got %d", r.PhotoCount)
	}
	if r.MainIndex < 0 || r.MainIndex >= r.PhotoCount {
		return xerrors.New(xerrors.ErrCodeInvalidRequest,
			"main photo index %d out of range [0, %d)", r.MainIndex, r.PhotoCount)
	}
	return nil
}

// Options tunes the configuration search. The zero value is not usable;
// start from [DefaultOptions].
//
// Historically these constants drifted across rewrites of the solver
// (fill target 90% vs 95%, cell floors of 15/20/30px, main fractions of
// 0.5/0.56/0.6). They are deliberately collapsed into this one
// parametrized policy; nothing else in the module hardcodes a competing
// value.
type Options struct {
	// FillTarget is the fill-ratio floor the search tries to meet, in (0, 1].
	FillTarget float64 `json:"fill_target"`

	// MinCellSize is the legibility floor for side cells in pixels.
	MinCellSize int `json:"min_cell_size"`

	// MinMainSize is the legibility floor for the main photo in pixels.
	MinMainSize int `json:"min_main_size"`

	// MainFractionMin and MainFractionMax bound the main photo width as a
	// fraction of page width. The search walks from max down to min.
	MainFractionMin float64 `json:"main_fraction_min"`
	MainFractionMax float64 `json:"main_fraction_max"`
}

// Default search parameters.
const (
	DefaultFillTarget      = 0.90
	DefaultMinCellSize     = 30
	DefaultMinMainSize     = 60
	DefaultMainFractionMin = 0.30
	DefaultMainFractionMax = 0.60
)

// DefaultOptions returns the canonical search parameters.
func DefaultOptions() Options {
	return Options{
		FillTarget:      DefaultFillTarget,
		MinCellSize:     DefaultMinCellSize,
		MinMainSize:     DefaultMinMainSize,
		MainFractionMin: DefaultMainFractionMin,
		MainFractionMax: DefaultMainFractionMax,
	}
}

// Validate rejects unusable search parameters.
func (o Options) Validate() error {
	if o.FillTarget <= 0 || o.FillTarget > 1 {
		return xerrors.New(xerrors.ErrCodeInvalidOptions,
			"fill ratio target must be in (0, 1], got %v", o.FillTarget)
	}
	if o.MinCellSize <= 0 || o.MinMainSize <= 0 {
		return xerrors.New(xerrors.ErrCodeInvalidOptions,
			"size floors must be positive, got cell=%d main=%d", o.MinCellSize, o.MinMainSize)
	}
	if o.MainFractionMin <= 0 || o.MainFractionMax > 1 || o.MainFractionMin > o.MainFractionMax {
		return xerrors.New(xerrors.ErrCodeInvalidOptions,
			"main fraction range [%v, %v] invalid", o.MainFractionMin, o.MainFractionMax)
	}
	return nil
}

// EdgeCounts holds the number of side photos assigned to each band.
type EdgeCounts struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
	Right  int `json:"right"`
}

// Sum returns the total number of side photos across all bands.
func (e EdgeCounts) Sum() int { return e.Top + e.Bottom + e.Left + e.Right }

// symmetry is the balance penalty used as the search tie-break.
// Zero is perfectly balanced; more negative is worse.
func (e EdgeCounts) symmetry() int {
	return -(abs(e.Top-e.Bottom) + abs(e.Left-e.Right))
}

// Configuration is a candidate solution produced by the search.
type Configuration struct {
	// CellSize is the side length of every side cell in pixels.
	CellSize int `json:"cell_size"`

	// MainSize is the side length of the main photo in pixels.
	MainSize int `json:"main_size"`

	// Edges is the per-band photo distribution.
	Edges EdgeCounts `json:"edges"`

	// FillRatio is the composition bounding box area (gaps included)
	// divided by the page area.
	FillRatio float64 `json:"fill_ratio"`
}

// Result is the solved layout. Side rectangle i belongs to the i-th photo
// of the caller's order with the main photo removed.
type Result struct {
	Main     Rect   `json:"main"`
	Side     []Rect `json:"side"`
	Degraded bool   `json:"degraded"`

	// Warnings carries human-readable notes about degraded results.
	// Presentation is the caller's concern; the solver only reports.
	Warnings []string `json:"warnings,omitempty"`

	// Config is the configuration the placement was generated from.
	Config Configuration `json:"config"`
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
