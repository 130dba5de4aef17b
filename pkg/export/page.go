package export

import (
	"math"
	"strings"

	"github.com/collagely/collagely/pkg/xerrors"
)

// DefaultDPI is the raster density used when none is configured. 300 DPI
// matches common photo-print quality.
const DefaultDPI = 300

const mmPerInch = 25.4

// Page is a physical page size in millimeters.
type Page struct {
	Name     string
	WidthMM  float64
	HeightMM float64
}

// ISO 216 portrait presets.
var (
	PageA3 = Page{Name: "a3", WidthMM: 297, HeightMM: 420}
	PageA4 = Page{Name: "a4", WidthMM: 210, HeightMM: 297}
	PageA5 = Page{Name: "a5", WidthMM: 148, HeightMM: 210}
)

var pages = map[string]Page{
	PageA3.Name: PageA3,
	PageA4.Name: PageA4,
	PageA5.Name: PageA5,
}

// ParsePage resolves a preset name such as "a4" or "A4-landscape".
func ParsePage(s string) (Page, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	landscape := false
	if base, ok := strings.CutSuffix(name, "-landscape"); ok {
		name, landscape = base, true
	}

	p, ok := pages[name]
	if !ok {
		return Page{}, xerrors.New(xerrors.ErrCodeInvalidPage,
			"unknown page size %q (valid: a3, a4, a5, optionally with -landscape)", s)
	}
	if landscape {
		p = p.Landscape()
	}
	return p, nil
}

// Landscape returns the page rotated a quarter turn.
func (p Page) Landscape() Page {
	return Page{Name: p.Name + "-landscape", WidthMM: p.HeightMM, HeightMM: p.WidthMM}
}

// Pixels returns the page's raster dimensions at the given density.
func (p Page) Pixels(dpi int) (width, height int) {
	width = int(math.Round(p.WidthMM / mmPerInch * float64(dpi)))
	height = int(math.Round(p.HeightMM / mmPerInch * float64(dpi)))
	return width, height
}

// Points returns the page's dimensions in PDF points (72 per inch).
func (p Page) Points() (width, height float64) {
	return p.WidthMM / mmPerInch * 72, p.HeightMM / mmPerInch * 72
}
