package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/collagely/collagely/pkg/xerrors"
)

const coordEps = 1e-9

// checkInvariants asserts the structural guarantees every successful
// result must satisfy: side count, non-overlap, page bounds and uniform
// square side cells.
func checkInvariants(t *testing.T, req Request, res *Result) {
	t.Helper()

	if got, want := len(res.Side), req.PhotoCount-1; got != want {
		t.Fatalf("len(Side) = %d, want %d", got, want)
	}

	all := append([]Rect{res.Main}, res.Side...)
	for i := range all {
		if !all[i].Within(float64(req.PageWidth), float64(req.PageHeight)) {
			t.Fatalf("rect %d = %+v outside %dx%d page", i, all[i], req.PageWidth, req.PageHeight)
		}
		for j := i + 1; j < len(all); j++ {
			if all[i].Overlaps(all[j]) {
				t.Fatalf("rects %d and %d overlap: %+v vs %+v", i, j, all[i], all[j])
			}
		}
	}

	for i, r := range res.Side {
		if r.W != r.H {
			t.Fatalf("side %d is not square: %+v", i, r)
		}
		if r.W != res.Side[0].W {
			t.Fatalf("side %d size %v differs from side 0 size %v", i, r.W, res.Side[0].W)
		}
	}
	if res.Main.W != res.Main.H {
		t.Fatalf("main is not square: %+v", res.Main)
	}
}

func TestCountInvariant(t *testing.T) {
	for count := 1; count <= 200; count++ {
		req := Request{PageWidth: 794, PageHeight: 1123, Gap: 5, PhotoCount: count}
		res, err := ComputeGrid(req)
		if err != nil {
			t.Fatalf("count=%d: %v", count, err)
		}
		checkInvariants(t, req, res)
	}
}

func TestScenarioPortraitNine(t *testing.T) {
	req := Request{PageWidth: 794, PageHeight: 1123, Gap: 5, PhotoCount: 9, MainIndex: 0}
	res, err := ComputeGrid(req)
	if err != nil {
		t.Fatal(err)
	}
	checkInvariants(t, req, res)

	if res.Degraded {
		t.Error("expected non-degraded result")
	}
	if res.Config.Edges != (EdgeCounts{Top: 2, Bottom: 2, Left: 2, Right: 2}) {
		t.Errorf("edges = %+v, want 2 per edge", res.Config.Edges)
	}

	// Every adjacent pair must be spaced exactly gap apart.
	g := float64(req.Gap)
	top, bottom := res.Side[0:2], res.Side[2:4]
	left, right := res.Side[4:6], res.Side[6:8]

	if d := top[1].X - top[0].Right(); math.Abs(d-g) > coordEps {
		t.Errorf("top row spacing = %v, want %v", d, g)
	}
	if d := res.Main.Y - top[0].Bottom(); math.Abs(d-g) > coordEps {
		t.Errorf("top row to main = %v, want %v", d, g)
	}
	if d := bottom[0].Y - res.Main.Bottom(); math.Abs(d-g) > coordEps {
		t.Errorf("main to bottom row = %v, want %v", d, g)
	}
	if d := left[1].Y - left[0].Bottom(); math.Abs(d-g) > coordEps {
		t.Errorf("left column spacing = %v, want %v", d, g)
	}
	if d := res.Main.X - left[0].Right(); math.Abs(d-g) > coordEps {
		t.Errorf("left column to main = %v, want %v", d, g)
	}
	if d := right[0].X - res.Main.Right(); math.Abs(d-g) > coordEps {
		t.Errorf("main to right column = %v, want %v", d, g)
	}
}

func TestScenarioSinglePhoto(t *testing.T) {
	req := Request{PageWidth: 794, PageHeight: 1123, Gap: 5, PhotoCount: 1}
	res, err := ComputeGrid(req)
	if err != nil {
		t.Fatal(err)
	}
	checkInvariants(t, req, res)

	if len(res.Side) != 0 {
		t.Errorf("expected no side rectangles, got %d", len(res.Side))
	}
	if res.Degraded {
		t.Error("expected non-degraded result")
	}

	// Largest centered square with a gap-wide margin on the tight axis.
	want := float64(min(req.PageWidth, req.PageHeight) - 2*req.Gap)
	if res.Main.W != want {
		t.Errorf("main size = %v, want %v", res.Main.W, want)
	}
	if cx := res.Main.CenterX(); math.Abs(cx-float64(req.PageWidth)/2) > coordEps {
		t.Errorf("main not horizontally centered: center %v", cx)
	}
	if cy := res.Main.CenterY(); math.Abs(cy-float64(req.PageHeight)/2) > coordEps {
		t.Errorf("main not vertically centered: center %v", cy)
	}
}

func TestScenarioHighCountDegrades(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"A4Portrait", Request{PageWidth: 794, PageHeight: 1123, Gap: 5, PhotoCount: 200}},
		{"SmallSquare", Request{PageWidth: 200, PageHeight: 200, Gap: 5, PhotoCount: 200}},
		{"TinySquare", Request{PageWidth: 40, PageHeight: 40, Gap: 3, PhotoCount: 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ComputeGrid(tt.req)
			if err != nil {
				t.Fatal(err)
			}
			checkInvariants(t, tt.req, res)

			if !res.Degraded {
				t.Error("expected degraded result for 200 photos")
			}
			if len(res.Warnings) == 0 {
				t.Error("degraded result must carry a warning")
			}
			if res.Config.CellSize >= DefaultMinCellSize {
				t.Errorf("cell size %d should be below the floor %d", res.Config.CellSize, DefaultMinCellSize)
			}
		})
	}
}

func TestNarrowPageKeepsBorderGap(t *testing.T) {
	// Two or three photos leave the horizontal axis without bands; the
	// page bound on the main photo must still hold there.
	for count := 2; count <= 3; count++ {
		req := Request{PageWidth: 100, PageHeight: 1000, Gap: 25, PhotoCount: count}
		res, err := ComputeGrid(req)
		if err != nil {
			t.Fatalf("count=%d: %v", count, err)
		}
		checkInvariants(t, req, res)

		if limit := float64(req.PageWidth - 2*req.Gap); res.Main.W > limit {
			t.Errorf("count=%d: main width %v exceeds %v", count, res.Main.W, limit)
		}
		if res.Main.X < float64(req.Gap)-coordEps {
			t.Errorf("count=%d: left margin %v below gap %d", count, res.Main.X, req.Gap)
		}
		if r := res.Main.Right(); r > float64(req.PageWidth-req.Gap)+coordEps {
			t.Errorf("count=%d: right edge %v past %d", count, r, req.PageWidth-req.Gap)
		}
	}
}

func TestInvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"ZeroPhotos", Request{PageWidth: 100, PageHeight: 100, PhotoCount: 0}},
		{"MainIndexTooLarge", Request{PageWidth: 100, PageHeight: 100, PhotoCount: 3, MainIndex: 3}},
		{"MainIndexNegative", Request{PageWidth: 100, PageHeight: 100, PhotoCount: 3, MainIndex: -1}},
		{"ZeroWidth", Request{PageWidth: 0, PageHeight: 100, PhotoCount: 1}},
		{"NegativeHeight", Request{PageWidth: 100, PageHeight: -5, PhotoCount: 1}},
		{"NegativeGap", Request{PageWidth: 100, PageHeight: 100, Gap: -1, PhotoCount: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ComputeGrid(tt.req)
			if err == nil {
				t.Fatal("expected error")
			}
			if res != nil {
				t.Error("no partial result on invalid input")
			}
			if !xerrors.Is(err, xerrors.ErrCodeInvalidRequest) {
				t.Errorf("error code = %q, want INVALID_REQUEST", xerrors.GetCode(err))
			}
		})
	}
}

func TestInvalidOptions(t *testing.T) {
	req := Request{PageWidth: 794, PageHeight: 1123, Gap: 5, PhotoCount: 4}

	opts := DefaultOptions()
	opts.FillTarget = 1.5
	if _, err := ComputeGridWith(req, opts); !xerrors.Is(err, xerrors.ErrCodeInvalidOptions) {
		t.Errorf("expected INVALID_OPTIONS, got %v", err)
	}

	opts = DefaultOptions()
	opts.MainFractionMin = 0.8
	opts.MainFractionMax = 0.4
	if _, err := ComputeGridWith(req, opts); !xerrors.Is(err, xerrors.ErrCodeInvalidOptions) {
		t.Errorf("expected INVALID_OPTIONS, got %v", err)
	}
}

func TestDeterminism(t *testing.T) {
	req := Request{PageWidth: 1024, PageHeight: 768, Gap: 8, PhotoCount: 13, MainIndex: 4}

	a, err := ComputeGrid(req)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ComputeGrid(req)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs must produce identical results")
	}
}

func TestAssignmentOrder(t *testing.T) {
	// The side slice must follow the consumption contract: top row left to
	// right, bottom row left to right, left column top to bottom, right
	// column top to bottom.
	req := Request{PageWidth: 794, PageHeight: 1123, Gap: 5, PhotoCount: 9}
	res, err := ComputeGrid(req)
	if err != nil {
		t.Fatal(err)
	}

	top, bottom := res.Side[0:2], res.Side[2:4]
	left, right := res.Side[4:6], res.Side[6:8]

	if !(top[0].Bottom() <= res.Main.Y && top[1].Bottom() <= res.Main.Y) {
		t.Error("side[0:2] should sit above the main photo")
	}
	if top[0].X >= top[1].X {
		t.Error("top row should run left to right")
	}
	if !(bottom[0].Y >= res.Main.Bottom()) {
		t.Error("side[2:4] should sit below the main photo")
	}
	if bottom[0].X >= bottom[1].X {
		t.Error("bottom row should run left to right")
	}
	if !(left[0].Right() <= res.Main.X) {
		t.Error("side[4:6] should sit left of the main photo")
	}
	if left[0].Y >= left[1].Y {
		t.Error("left column should run top to bottom")
	}
	if !(right[0].X >= res.Main.Right()) {
		t.Error("side[6:8] should sit right of the main photo")
	}
	if right[0].Y >= right[1].Y {
		t.Error("right column should run top to bottom")
	}
}

func TestCustomFloorsRespected(t *testing.T) {
	req := Request{PageWidth: 794, PageHeight: 1123, Gap: 5, PhotoCount: 9}
	opts := DefaultOptions()
	opts.MinCellSize = 10
	opts.MinMainSize = 20

	res, err := ComputeGridWith(req, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Config.CellSize < opts.MinCellSize {
		t.Errorf("cell size %d below configured floor %d", res.Config.CellSize, opts.MinCellSize)
	}
	if res.Config.MainSize < opts.MinMainSize {
		t.Errorf("main size %d below configured floor %d", res.Config.MainSize, opts.MinMainSize)
	}
}

func TestWideLandscapePage(t *testing.T) {
	req := Request{PageWidth: 1920, PageHeight: 600, Gap: 10, PhotoCount: 7}
	res, err := ComputeGrid(req)
	if err != nil {
		t.Fatal(err)
	}
	checkInvariants(t, req, res)
}

func TestZeroGap(t *testing.T) {
	req := Request{PageWidth: 800, PageHeight: 800, Gap: 0, PhotoCount: 5}
	res, err := ComputeGrid(req)
	if err != nil {
		t.Fatal(err)
	}
	checkInvariants(t, req, res)

	// With gap 0 the side cells must touch the main photo exactly.
	top := res.Side[0]
	if d := res.Main.Y - top.Bottom(); d != 0 {
		t.Errorf("top cell to main distance = %v, want 0", d)
	}
}
