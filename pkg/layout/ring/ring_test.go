package ring

import (
	"math"
	"reflect"
	"testing"

	"github.com/collagely/collagely/pkg/xerrors"
)

func TestCapacity(t *testing.T) {
	tests := []struct {
		rings, want int
	}{
		{0, 0},
		{1, 6},
		{2, 18},
		{3, 36},
		{4, 60},
	}
	for _, tt := range tests {
		if got := Capacity(tt.rings); got != tt.want {
			t.Errorf("Capacity(%d) = %d, want %d", tt.rings, got, tt.want)
		}
	}
	if MaxPhotos != 61 {
		t.Errorf("MaxPhotos = %d, want 61", MaxPhotos)
	}
}

func TestRingsFor(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{0, 0},
		{1, 1},
		{6, 1},
		{7, 2},
		{18, 2},
		{19, 3},
		{36, 3},
		{37, 4},
		{60, 4},
	}
	for _, tt := range tests {
		if got := RingsFor(tt.n); got != tt.want {
			t.Errorf("RingsFor(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestComputeCounts(t *testing.T) {
	for count := 1; count <= MaxPhotos; count++ {
		l, err := Compute(1000, 800, 6, count)
		if err != nil {
			t.Fatalf("count=%d: %v", count, err)
		}
		if got, want := len(l.Side), count-1; got != want {
			t.Fatalf("count=%d: len(Side) = %d, want %d", count, got, want)
		}
		if l.Center.Size <= 0 {
			t.Fatalf("count=%d: non-positive center size %v", count, l.Center.Size)
		}
		for i, c := range l.Side {
			if c.Size <= 0 {
				t.Fatalf("count=%d: side %d has non-positive size", count, i)
			}
		}
	}
}

func TestComputeCenterPlacement(t *testing.T) {
	l, err := Compute(1000, 800, 6, 10)
	if err != nil {
		t.Fatal(err)
	}
	if l.Center.X != 500 || l.Center.Y != 400 {
		t.Errorf("center at (%v, %v), want page center (500, 400)", l.Center.X, l.Center.Y)
	}
}

func TestComputeFirstRingGeometry(t *testing.T) {
	l, err := Compute(1000, 1000, 4, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Side) != 6 {
		t.Fatalf("len(Side) = %d, want 6", len(l.Side))
	}

	// Walk starts at the north-east corner in screen coordinates.
	first := l.Side[0]
	if !(first.X > l.Center.X && first.Y < l.Center.Y) {
		t.Errorf("first cell at (%v, %v) is not north-east of center", first.X, first.Y)
	}

	// All ring-1 cells sit at the same distance from the center, and
	// consecutive cells are that same step apart.
	dist := func(ax, ay, bx, by float64) float64 {
		return math.Hypot(ax-bx, ay-by)
	}
	step := dist(first.X, first.Y, l.Center.X, l.Center.Y)
	for i, c := range l.Side {
		if d := dist(c.X, c.Y, l.Center.X, l.Center.Y); math.Abs(d-step) > 1e-9 {
			t.Errorf("cell %d distance from center = %v, want %v", i, d, step)
		}
		next := l.Side[(i+1)%len(l.Side)]
		if d := dist(c.X, c.Y, next.X, next.Y); math.Abs(d-step) > 1e-9 {
			t.Errorf("cells %d and %d are %v apart, want %v", i, (i+1)%len(l.Side), d, step)
		}
	}
}

func TestComputeSecondRingOutside(t *testing.T) {
	l, err := Compute(1200, 1200, 4, 1+6+12)
	if err != nil {
		t.Fatal(err)
	}

	dist := func(c Cell) float64 {
		return math.Hypot(c.X-l.Center.X, c.Y-l.Center.Y)
	}
	inner := dist(l.Side[0])
	for i := 6; i < len(l.Side); i++ {
		if dist(l.Side[i]) <= inner {
			t.Errorf("ring-2 cell %d at distance %v, want > %v", i, dist(l.Side[i]), inner)
		}
	}
}

func TestComputeDeterminism(t *testing.T) {
	a, err := Compute(900, 700, 5, 23)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compute(900, 700, 5, 23)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs must produce identical layouts")
	}
}

func TestComputeInvalid(t *testing.T) {
	tests := []struct {
		name             string
		w, h, gap, count int
	}{
		{"ZeroWidth", 0, 100, 0, 1},
		{"NegativeHeight", 100, -1, 0, 1},
		{"NegativeGap", 100, 100, -1, 1},
		{"ZeroPhotos", 100, 100, 0, 0},
		{"OverCapacity", 1000, 1000, 5, MaxPhotos + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Compute(tt.w, tt.h, tt.gap, tt.count)
			if err == nil {
				t.Fatal("expected error")
			}
			if l != nil {
				t.Error("no partial layout on invalid input")
			}
			if !xerrors.Is(err, xerrors.ErrCodeInvalidRequest) {
				t.Errorf("error code = %q, want INVALID_REQUEST", xerrors.GetCode(err))
			}
		})
	}
}
