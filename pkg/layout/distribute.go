package layout

// edgeOrder is the fixed priority in which leftover side photos are
// assigned to bands, and also the order in which the placement stage
// consumes the caller's side photos.
var edgeOrder = [4]string{"top", "bottom", "left", "right"}

// Distribute maps a side-photo count to per-edge counts.
//
// Each band receives floor(n/4) photos; the remainder (0-3) is handed out
// one per band in the fixed priority top, bottom, left, right. The policy
// is total: n == 0 yields all zeros and no input fails.
func Distribute(n int) EdgeCounts {
	if n <= 0 {
		return EdgeCounts{}
	}

	base := n / 4
	e := EdgeCounts{Top: base, Bottom: base, Left: base, Right: base}

	switch n % 4 {
	case 3:
		e.Left++
		fallthrough
	case 2:
		e.Bottom++
		fallthrough
	case 1:
		e.Top++
	}
	return e
}
