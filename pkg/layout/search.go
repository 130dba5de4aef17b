package layout

// The search walks candidate main sizes from the top of the allowed
// fraction range downward (coarse 1% steps, so the loop is bounded at
// roughly 30 iterations regardless of photo count) and derives the maximal
// cell size for each candidate in closed form. The first candidate whose
// fill ratio meets the target wins, which prefers the largest main photo
// among acceptable configurations; if the target is unreachable the best
// fill seen wins instead.

// searchParams are the effective bounds for one search pass. The primary
// pass uses the caller's legibility floors; the relaxed pass drops them to
// 1px so that extreme photo counts still produce a valid placement.
type searchParams struct {
	minCell int
	minMain int
	mainMin int // smallest main size to try
	mainMax int // largest main size to try
}

func occ(count int) int {
	if count > 0 {
		return 1
	}
	return 0
}

// maxCellFor returns the largest cell size that fits the page and the main
// photo's span for the given main size, or 0 if none does.
//
// Constraints, all derived from the band geometry:
//   - the main and its outer gaps fit each page dimension on their own
//   - the left/right columns, main and outer gaps fit the page width
//   - the top/bottom rows, main and outer gaps fit the page height
//   - each row of c cells spans at most the main width: c*s + (c-1)*gap <= m
//   - each column of c cells spans at most the main height
//   - cells never exceed the main photo
func maxCellFor(e EdgeCounts, pageW, pageH, gap, m int) int {
	// An unoccupied axis carries no band term, so the main must be
	// bounded against the bare page here.
	if m+2*gap > pageW || m+2*gap > pageH {
		return 0
	}

	s := m

	if k := occ(e.Left) + occ(e.Right); k > 0 {
		s = min(s, (pageW-m-2*gap)/k-gap)
	}
	if k := occ(e.Top) + occ(e.Bottom); k > 0 {
		s = min(s, (pageH-m-2*gap)/k-gap)
	}
	for _, c := range []int{e.Top, e.Bottom, e.Left, e.Right} {
		if c > 0 {
			s = min(s, (m-(c-1)*gap)/c)
		}
	}

	return max(s, 0)
}

// fillRatio computes the share of the page covered by the composition's
// bounding box, gaps between bands included.
func fillRatio(e EdgeCounts, pageW, pageH, gap, m, s int) float64 {
	bw, bh := boundingBox(e, gap, m, s)
	return float64(bw) * float64(bh) / (float64(pageW) * float64(pageH))
}

// boundingBox returns the composition's bounding box dimensions: the main
// square plus one cell band and one gap per occupied edge.
func boundingBox(e EdgeCounts, gap, m, s int) (w, h int) {
	w = m + (occ(e.Left)+occ(e.Right))*(s+gap)
	h = m + (occ(e.Top)+occ(e.Bottom))*(s+gap)
	return w, h
}

// searchConfiguration finds the best (mainSize, cellSize) pair for fixed
// edge counts. It returns false if no candidate satisfies the params'
// floors at all.
func searchConfiguration(e EdgeCounts, pageW, pageH, gap int, fillTarget float64, p searchParams) (Configuration, bool) {
	step := max(1, pageW/100)

	var best Configuration
	found := false

	for m := p.mainMax; m >= p.mainMin; m -= step {
		if m < p.minMain {
			break
		}
		s := maxCellFor(e, pageW, pageH, gap, m)
		if s < p.minCell {
			continue
		}

		cand := Configuration{
			CellSize:  s,
			MainSize:  m,
			Edges:     e,
			FillRatio: fillRatio(e, pageW, pageH, gap, m, s),
		}

		// Largest acceptable main wins outright once the target is met.
		if cand.FillRatio >= fillTarget {
			return cand, true
		}
		if !found || better(cand, best) {
			best = cand
			found = true
		}
	}

	return best, found
}

// better reports whether a should replace b: higher fill wins, equal fill
// falls back to the symmetry tie-break (more balanced edges preferred).
func better(a, b Configuration) bool {
	if a.FillRatio != b.FillRatio {
		return a.FillRatio > b.FillRatio
	}
	return a.Edges.symmetry() > b.Edges.symmetry()
}
