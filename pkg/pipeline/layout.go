package pipeline

import (
	"encoding/json"

	"github.com/collagely/collagely/pkg/layout"
	"github.com/collagely/collagely/pkg/layout/ring"
	"github.com/collagely/collagely/pkg/xerrors"
)

// Layout modes.
const (
	ModeGrid = "grid"
	ModeRing = "ring"
)

// Layout wraps the solved geometry of either mode in one serializable
// value so caching and API responses don't branch on mode.
type Layout struct {
	Mode string         `json:"mode"`
	Grid *layout.Result `json:"grid,omitempty"`
	Ring *ring.Layout   `json:"ring,omitempty"`
}

// SlotCount returns the total number of photo slots including the main.
func (l Layout) SlotCount() int {
	switch l.Mode {
	case ModeGrid:
		if l.Grid == nil {
			return 0
		}
		return 1 + len(l.Grid.Side)
	case ModeRing:
		if l.Ring == nil {
			return 0
		}
		return 1 + len(l.Ring.Side)
	}
	return 0
}

// Degraded reports whether legibility floors were relaxed to fit.
func (l Layout) Degraded() bool {
	return l.Grid != nil && l.Grid.Degraded
}

// Warnings returns solver warnings, if any.
func (l Layout) Warnings() []string {
	if l.Grid == nil {
		return nil
	}
	return l.Grid.Warnings
}

// MarshalLayout serializes a layout for caching.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.Marshal(l)
}

// UnmarshalLayout deserializes a cached layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, err
	}
	if l.Mode == "" || (l.Grid == nil && l.Ring == nil) {
		return Layout{}, xerrors.New(xerrors.ErrCodeInternal, "malformed cached layout")
	}
	return l, nil
}

// Solve computes the slot geometry for the configured mode and page.
func Solve(opts Options) (Layout, error) {
	opts.SetLayoutDefaults()
	if err := ValidateMode(opts.Mode); err != nil {
		return Layout{}, err
	}

	pageWidth, pageHeight, err := opts.PageSize()
	if err != nil {
		return Layout{}, err
	}

	switch opts.Mode {
	case ModeRing:
		l, err := ring.Compute(pageWidth, pageHeight, opts.Gap, opts.SlotCount())
		if err != nil {
			return Layout{}, err
		}
		return Layout{Mode: ModeRing, Ring: l}, nil
	default:
		req := layout.Request{
			PageWidth:  pageWidth,
			PageHeight: pageHeight,
			Gap:        opts.Gap,
			PhotoCount: opts.SlotCount(),
		}
		lopts := layout.DefaultOptions()
		lopts.FillTarget = opts.FillTarget
		res, err := layout.ComputeGridWith(req, lopts)
		if err != nil {
			return Layout{}, err
		}
		return Layout{Mode: ModeGrid, Grid: res}, nil
	}
}
