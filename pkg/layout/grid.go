package layout

// WarnDegraded is attached to results whose legibility floors had to be
// relaxed to make the composition fit the page.
const WarnDegraded = "large photo count may reduce legibility"

// ComputeGrid solves a grid layout request with [DefaultOptions].
func ComputeGrid(req Request) (*Result, error) {
	return ComputeGridWith(req, DefaultOptions())
}

// ComputeGridWith solves a grid layout request with explicit search
// parameters.
//
// The only error condition is an invariant-violating request or options;
// every structurally valid input yields a result. When the page cannot
// accommodate the photo count at the configured legibility floors the
// floors are relaxed, the result is marked degraded and a warning is
// attached instead of failing.
func ComputeGridWith(req Request, opts Options) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	n := req.PhotoCount - 1
	if n == 0 {
		return soloLayout(req), nil
	}

	e := Distribute(n)

	mainMax := int(float64(req.PageWidth) * opts.MainFractionMax)
	mainMin := int(float64(req.PageWidth) * opts.MainFractionMin)

	// Three passes, strictest first: (1) honor the size floors and the
	// main fraction range, (2) keep the floors but let the main shrink
	// below the fraction range (short pages make the range infeasible on
	// its own), (3) drop the floors to 1px so extreme photo counts still
	// fit the page. Only the last pass yields a degraded result.
	passes := []searchParams{
		{minCell: opts.MinCellSize, minMain: opts.MinMainSize, mainMin: mainMin, mainMax: mainMax},
		{minCell: opts.MinCellSize, minMain: opts.MinMainSize, mainMin: 1, mainMax: mainMax},
		{minCell: 1, minMain: 1, mainMin: 1, mainMax: mainMax},
	}

	var (
		cfg Configuration
		ok  bool
	)
	for _, p := range passes {
		if cfg, ok = searchConfiguration(e, req.PageWidth, req.PageHeight, req.Gap, opts.FillTarget, p); ok {
			break
		}
	}

	if ok && cfg.CellSize >= opts.MinCellSize && cfg.MainSize >= opts.MinMainSize {
		main, side := place(req.PageWidth, req.PageHeight, req.Gap, cfg)
		return &Result{Main: main, Side: side, Config: cfg}, nil
	}

	gap := req.Gap
	if !ok {
		// Even 1px cells cannot satisfy the row-span constraint at the
		// requested gap. Degraded results waive exact gap spacing, so the
		// gap shrinks until the cell rows fit the page.
		cfg, gap = relaxedFallback(e, req.PageWidth, req.PageHeight, req.Gap)
	}

	main, side := place(req.PageWidth, req.PageHeight, gap, cfg)
	fitToPage(&main, side, req.PageWidth, req.PageHeight)
	return &Result{
		Main:     main,
		Side:     side,
		Degraded: true,
		Warnings: []string{WarnDegraded},
		Config:   cfg,
	}, nil
}

// relaxedFallback builds the 1px-cell configuration for pages that cannot
// hold the photo count at the requested gap. The main grows to cover the
// longest cell row exactly, and the gap shrinks until that row and the
// surrounding bands fit the page. If even a gapless row overflows, the
// gapless configuration is returned and fitToPage compresses the
// placement into bounds.
func relaxedFallback(e EdgeCounts, pageW, pageH, gap int) (Configuration, int) {
	longest := max(e.Top, e.Bottom, e.Left, e.Right)
	for g := gap; g >= 0; g-- {
		m := longest + (longest-1)*g
		limitW := pageW - (occ(e.Left)+occ(e.Right))*(1+g) - 2*g
		limitH := pageH - (occ(e.Top)+occ(e.Bottom))*(1+g) - 2*g
		if m <= min(limitW, limitH) {
			return fallbackConfiguration(e, pageW, pageH, g, m), g
		}
	}
	return fallbackConfiguration(e, pageW, pageH, 0, longest), 0
}

func fallbackConfiguration(e EdgeCounts, pageW, pageH, gap, m int) Configuration {
	return Configuration{
		CellSize:  1,
		MainSize:  m,
		Edges:     e,
		FillRatio: fillRatio(e, pageW, pageH, gap, m, 1),
	}
}

// soloLayout handles the single-photo case: the main photo is the largest
// square that keeps a gap-wide margin, centered on the page.
func soloLayout(req Request) *Result {
	m := min(req.PageWidth, req.PageHeight) - 2*req.Gap

	res := &Result{Side: []Rect{}}
	if m < 1 {
		m = 1
		res.Degraded = true
		res.Warnings = []string{WarnDegraded}
	}

	res.Main = Rect{
		X: (float64(req.PageWidth) - float64(m)) / 2,
		Y: (float64(req.PageHeight) - float64(m)) / 2,
		W: float64(m),
		H: float64(m),
	}
	res.Config = Configuration{
		MainSize:  m,
		FillRatio: float64(m) * float64(m) / (float64(req.PageWidth) * float64(req.PageHeight)),
	}
	return res
}
