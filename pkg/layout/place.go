package layout

import "math"

// place converts a configuration into absolute rectangles, centered on the
// page. Side rectangles are emitted in the assignment order contract: the
// caller's side photos are consumed top row (left to right), bottom row
// (left to right), left column (top to bottom), right column (top to
// bottom), preserving each group's relative order.
func place(pageW, pageH, gap int, cfg Configuration) (main Rect, side []Rect) {
	var (
		e = cfg.Edges
		m = float64(cfg.MainSize)
		s = float64(cfg.CellSize)
		g = float64(gap)
	)

	bw, bh := boundingBox(e, gap, cfg.MainSize, cfg.CellSize)
	originX := (float64(pageW) - float64(bw)) / 2
	originY := (float64(pageH) - float64(bh)) / 2

	mainX := originX + float64(occ(e.Left))*(s+g)
	mainY := originY + float64(occ(e.Top))*(s+g)
	main = Rect{X: mainX, Y: mainY, W: m, H: m}

	side = make([]Rect, 0, e.Sum())

	// Rows share the main photo's horizontal span, centered on it.
	row := func(count int, y float64) {
		if count == 0 {
			return
		}
		span := float64(count)*s + float64(count-1)*g
		x := mainX + (m-span)/2
		for i := 0; i < count; i++ {
			side = append(side, Rect{X: x + float64(i)*(s+g), Y: y, W: s, H: s})
		}
	}

	// Columns align to the main photo's vertical span, centered on it.
	col := func(count int, x float64) {
		if count == 0 {
			return
		}
		span := float64(count)*s + float64(count-1)*g
		y := mainY + (m-span)/2
		for i := 0; i < count; i++ {
			side = append(side, Rect{X: x, Y: y + float64(i)*(s+g), W: s, H: s})
		}
	}

	row(e.Top, mainY-g-s)
	row(e.Bottom, mainY+m+g)
	col(e.Left, mainX-g-s)
	col(e.Right, mainX+m+g)

	return main, side
}

// fitToPage rescales a placement whose bounding box exceeds the page so
// that it fits, centered. Only the degraded fallback can produce such a
// placement, and it has already given up exact gap spacing. Both factors
// shave a relative hair so rounding cannot push an edge past the page or
// turn touching neighbors into overlaps.
func fitToPage(main *Rect, side []Rect, pageW, pageH int) {
	minX, minY := main.X, main.Y
	maxX, maxY := main.Right(), main.Bottom()
	for _, r := range side {
		minX = math.Min(minX, r.X)
		minY = math.Min(minY, r.Y)
		maxX = math.Max(maxX, r.Right())
		maxY = math.Max(maxY, r.Bottom())
	}

	f := math.Min(float64(pageW)/(maxX-minX), float64(pageH)/(maxY-minY))
	if f >= 1 {
		return
	}
	f *= 1 - 1e-9
	sizeF := f * (1 - 1e-9)

	ox := (float64(pageW) - (maxX-minX)*f) / 2
	oy := (float64(pageH) - (maxY-minY)*f) / 2
	rescale := func(r *Rect) {
		r.X = ox + (r.X-minX)*f
		r.Y = oy + (r.Y-minY)*f
		r.W *= sizeF
		r.H *= sizeF
	}
	rescale(main)
	for i := range side {
		rescale(&side[i])
	}
}
