// Package ring implements the secondary, ring-based collage layout: the
// main photo occupies a centered hexagonal slot and side photos are placed
// on concentric hexagonal rings around it.
//
// Ring k holds up to 6k positions (ring 1: 6, ring 2: 12, ...), so the
// cumulative capacity of R rings is 3R(R+1). Positions within a ring are
// generated in fixed axial-coordinate order starting north-east and
// proceeding clockwise, one ring side at a time.
//
// Like the grid solver, everything here is pure, synchronous and
// deterministic.
package ring

import (
	"math"

	"github.com/collagely/collagely/pkg/xerrors"
)

// MaxRings caps the supported ring count. Callers must cap their photo
// count at [MaxPhotos] before invoking this mode.
const MaxRings = 4

// MaxPhotos is the largest total photo count this mode supports:
// one center slot plus the cumulative capacity of [MaxRings] rings.
const MaxPhotos = 1 + 3*MaxRings*(MaxRings+1)

// Cell is a hexagonal slot given as its center point and half-diagonal.
type Cell struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size"`
}

// Layout is a solved ring layout. Side cells appear in ring order
// (innermost first), each ring in its fixed angular order.
type Layout struct {
	Center Cell   `json:"center"`
	Side   []Cell `json:"side"`
}

// Capacity returns the cumulative side-photo capacity of r rings.
func Capacity(r int) int { return 3 * r * (r + 1) }

// RingsFor returns the minimal ring count whose cumulative capacity holds
// n side photos.
func RingsFor(n int) int {
	r := 0
	for Capacity(r) < n {
		r++
	}
	return r
}

// axial hex directions, pointy-top orientation. The walk starts at the
// north-east corner of each ring and proceeds clockwise (screen
// coordinates, y growing downward).
var (
	cornerNE = [2]int{1, -1}
	walkDirs = [6][2]int{
		{0, 1},  // south-east
		{-1, 1}, // south-west
		{-1, 0}, // west
		{0, -1}, // north-west
		{1, -1}, // north-east
		{1, 0},  // east
	}
)

// Compute solves a ring layout for a page and total photo count.
// The first photo is the center; the remaining count-1 photos fill the
// rings innermost-first.
func Compute(pageWidth, pageHeight, gap, photoCount int) (*Layout, error) {
	if pageWidth <= 0 || pageHeight <= 0 {
		return nil, xerrors.New(xerrors.ErrCodeInvalidRequest,
			"page dimensions must be positive, got %dx%d", pageWidth, pageHeight)
	}
	if gap < 0 {
		return nil, xerrors.New(xerrors.ErrCodeInvalidRequest, "gap must be >= 0, got %d", gap)
	}
	if photoCount < 1 {
		return nil, xerrors.New(xerrors.ErrCodeInvalidRequest,
			"photo count must be >= 1, got %d", photoCount)
	}
	if photoCount > MaxPhotos {
		return nil, xerrors.New(xerrors.ErrCodeInvalidRequest,
			"photo count %d exceeds ring capacity %d", photoCount, MaxPhotos)
	}

	var (
		n     = photoCount - 1
		rings = RingsFor(n)
		cx    = float64(pageWidth) / 2
		cy    = float64(pageHeight) / 2
	)

	maxRadius := float64(min(pageWidth, pageHeight))/2 - float64(gap)
	maxRadius = math.Max(maxRadius, 1)

	if rings == 0 {
		return &Layout{
			Center: Cell{X: cx, Y: cy, Size: maxRadius},
			Side:   []Cell{},
		}, nil
	}

	// Divide the inscribed radius among the rings plus the center slot.
	// Adjacent positions sit one step apart; reserving a gap inside each
	// step and splitting the remainder 2:1 between center and cells keeps
	// every pair of neighbors at least one gap apart without overlap.
	step := maxRadius / float64(rings+1)
	cell := math.Max((step-float64(gap))/3, 1)
	center := 2 * cell

	l := &Layout{
		Center: Cell{X: cx, Y: cy, Size: center},
		Side:   make([]Cell, 0, n),
	}

	remaining := n
	for k := 1; k <= rings && remaining > 0; k++ {
		for _, pos := range ringPositions(k) {
			if remaining == 0 {
				break
			}
			x, y := axialToPixel(pos[0], pos[1], step)
			l.Side = append(l.Side, Cell{X: cx + x, Y: cy + y, Size: cell})
			remaining--
		}
	}

	return l, nil
}

// ringPositions returns the 6k axial coordinates of ring k, starting at
// the north-east corner and walking clockwise.
func ringPositions(k int) [][2]int {
	pos := make([][2]int, 0, 6*k)
	q, r := cornerNE[0]*k, cornerNE[1]*k
	for _, d := range walkDirs {
		for i := 0; i < k; i++ {
			pos = append(pos, [2]int{q, r})
			q += d[0]
			r += d[1]
		}
	}
	return pos
}

// axialToPixel converts axial hex coordinates to a pixel offset from the
// page center, with neighboring positions exactly step apart.
func axialToPixel(q, r int, step float64) (x, y float64) {
	x = step * (float64(q) + float64(r)/2)
	y = step * math.Sqrt(3) / 2 * float64(r)
	return x, y
}
