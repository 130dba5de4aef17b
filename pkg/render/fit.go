package render

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/collagely/collagely/pkg/xerrors"
)

// Fit selects how a photo is mapped into its cell.
type Fit string

const (
	// FitCover scales the photo to fill the cell completely, cropping the
	// overflow around the center.
	FitCover Fit = "cover"
	// FitContain scales the photo to fit inside the cell without cropping,
	// leaving background visible on the short axis.
	FitContain Fit = "contain"
)

// ParseFit converts a user-supplied string into a [Fit].
func ParseFit(s string) (Fit, error) {
	switch Fit(s) {
	case FitCover, FitContain:
		return Fit(s), nil
	default:
		return "", xerrors.New(xerrors.ErrCodeInvalidFit,
			"unknown fit %q (valid: cover, contain)", s)
	}
}

// fitImage resizes img for a w x h cell according to the fit policy.
// With FitContain the returned image may be smaller than the cell on one
// axis and must be centered by the caller.
func fitImage(img image.Image, w, h int, fit Fit) image.Image {
	if fit == FitContain {
		return imaging.Fit(img, w, h, imaging.Lanczos)
	}
	return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
}
