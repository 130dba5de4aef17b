package render

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/collagely/collagely/pkg/layout"
	"github.com/collagely/collagely/pkg/layout/ring"
	"github.com/collagely/collagely/pkg/xerrors"
)

type Option func(*renderer)

type renderer struct {
	background   color.Color
	fit          Fit
	cornerRadius float64
	placeholders bool
	border       color.Color
}

func WithBackground(c color.Color) Option    { return func(r *renderer) { r.background = c } }
func WithFit(f Fit) Option                   { return func(r *renderer) { r.fit = f } }
func WithCornerRadius(radius float64) Option { return func(r *renderer) { r.cornerRadius = radius } }
func WithPlaceholders() Option               { return func(r *renderer) { r.placeholders = true } }

// WithBorder draws a hairline border around every photo.
func WithBorder(c color.Color) Option { return func(r *renderer) { r.border = c } }

func newRenderer(opts ...Option) renderer {
	r := renderer{background: color.White, fit: FitCover}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Grid rasterizes a solved grid layout onto a pageWidth x pageHeight
// canvas. photos[0] is the main photo, the rest fill the side slots in
// layout order. Slots beyond len(photos) are drawn as numbered
// placeholders when [WithPlaceholders] is set, and rejected otherwise.
func Grid(pageWidth, pageHeight int, res *layout.Result, photos []image.Image, opts ...Option) (image.Image, error) {
	if res == nil {
		return nil, xerrors.New(xerrors.ErrCodeInvalidRequest, "nil layout result")
	}
	if pageWidth <= 0 || pageHeight <= 0 {
		return nil, xerrors.New(xerrors.ErrCodeInvalidRequest,
			"page dimensions must be positive, got %dx%d", pageWidth, pageHeight)
	}

	slots := append([]layout.Rect{res.Main}, res.Side...)
	r := newRenderer(opts...)
	if err := r.checkPhotoCount(len(photos), len(slots)); err != nil {
		return nil, err
	}

	dc := gg.NewContext(pageWidth, pageHeight)
	dc.SetColor(r.background)
	dc.Clear()

	for i, slot := range slots {
		if i < len(photos) && photos[i] != nil {
			r.drawRect(dc, slot, photos[i])
		} else {
			r.drawRectPlaceholder(dc, slot, i)
		}
	}

	return dc.Image(), nil
}

// Ring rasterizes a solved ring layout. photos[0] is the center photo,
// the rest fill the hexagonal cells innermost ring first.
func Ring(pageWidth, pageHeight int, l *ring.Layout, photos []image.Image, opts ...Option) (image.Image, error) {
	if l == nil {
		return nil, xerrors.New(xerrors.ErrCodeInvalidRequest, "nil ring layout")
	}
	if pageWidth <= 0 || pageHeight <= 0 {
		return nil, xerrors.New(xerrors.ErrCodeInvalidRequest,
			"page dimensions must be positive, got %dx%d", pageWidth, pageHeight)
	}

	cells := append([]ring.Cell{l.Center}, l.Side...)
	r := newRenderer(opts...)
	if err := r.checkPhotoCount(len(photos), len(cells)); err != nil {
		return nil, err
	}

	dc := gg.NewContext(pageWidth, pageHeight)
	dc.SetColor(r.background)
	dc.Clear()

	for i, cell := range cells {
		if i < len(photos) && photos[i] != nil {
			r.drawHex(dc, cell, photos[i])
		} else {
			r.drawHexPlaceholder(dc, cell, i)
		}
	}

	return dc.Image(), nil
}

func (r *renderer) checkPhotoCount(photos, slots int) error {
	if photos > slots {
		return xerrors.New(xerrors.ErrCodeInvalidRequest,
			"%d photos for %d slots", photos, slots)
	}
	if photos < slots && !r.placeholders {
		return xerrors.New(xerrors.ErrCodeInvalidRequest,
			"%d photos for %d slots (enable placeholders to render partial sets)", photos, slots)
	}
	return nil
}

func (r *renderer) drawRect(dc *gg.Context, slot layout.Rect, img image.Image) {
	w, h := int(math.Round(slot.W)), int(math.Round(slot.H))
	if w < 1 || h < 1 {
		return
	}
	fitted := fitImage(img, w, h, r.fit)

	dc.Push()
	r.clipRect(dc, slot)
	// Contain fits leave a short axis; center the result in the slot.
	b := fitted.Bounds()
	x := int(math.Round(slot.X)) + (w-b.Dx())/2
	y := int(math.Round(slot.Y)) + (h-b.Dy())/2
	dc.DrawImage(fitted, x, y)
	dc.ResetClip()
	dc.Pop()

	if r.border != nil {
		dc.SetColor(r.border)
		dc.SetLineWidth(1)
		if r.cornerRadius > 0 {
			dc.DrawRoundedRectangle(slot.X, slot.Y, slot.W, slot.H, r.cornerRadius)
		} else {
			dc.DrawRectangle(slot.X, slot.Y, slot.W, slot.H)
		}
		dc.Stroke()
	}
}

func (r *renderer) drawRectPlaceholder(dc *gg.Context, slot layout.Rect, index int) {
	dc.Push()
	r.clipRect(dc, slot)
	dc.SetColor(placeholderFill)
	dc.DrawRectangle(slot.X, slot.Y, slot.W, slot.H)
	dc.Fill()
	dc.ResetClip()
	dc.Pop()

	dc.SetColor(placeholderText)
	dc.DrawStringAnchored(strconv.Itoa(index+1), slot.CenterX(), slot.CenterY(), 0.5, 0.5)
}

func (r *renderer) clipRect(dc *gg.Context, slot layout.Rect) {
	if r.cornerRadius > 0 {
		dc.DrawRoundedRectangle(slot.X, slot.Y, slot.W, slot.H, r.cornerRadius)
	} else {
		dc.DrawRectangle(slot.X, slot.Y, slot.W, slot.H)
	}
	dc.Clip()
}

func (r *renderer) drawHex(dc *gg.Context, cell ring.Cell, img image.Image) {
	side := int(math.Round(2 * cell.Size))
	if side < 1 {
		return
	}
	// Cover the hexagon's bounding square so the clip never exposes
	// background through the photo.
	fitted := fitImage(img, side, side, FitCover)

	dc.Push()
	hexPath(dc, cell)
	dc.Clip()
	b := fitted.Bounds()
	dc.DrawImage(fitted,
		int(math.Round(cell.X))-b.Dx()/2,
		int(math.Round(cell.Y))-b.Dy()/2)
	dc.ResetClip()
	dc.Pop()

	if r.border != nil {
		dc.SetColor(r.border)
		dc.SetLineWidth(1)
		hexPath(dc, cell)
		dc.Stroke()
	}
}

func (r *renderer) drawHexPlaceholder(dc *gg.Context, cell ring.Cell, index int) {
	dc.Push()
	hexPath(dc, cell)
	dc.SetColor(placeholderFill)
	dc.Fill()
	dc.Pop()

	dc.SetColor(placeholderText)
	dc.DrawStringAnchored(strconv.Itoa(index+1), cell.X, cell.Y, 0.5, 0.5)
}

// hexPath traces a pointy-top hexagon centered on the cell.
func hexPath(dc *gg.Context, cell ring.Cell) {
	for i := 0; i < 6; i++ {
		a := gg.Radians(float64(60*i) - 30)
		x := cell.X + cell.Size*math.Cos(a)
		y := cell.Y + cell.Size*math.Sin(a)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

var (
	placeholderFill = color.NRGBA{R: 0xE2, G: 0xE5, B: 0xE9, A: 0xFF}
	placeholderText = color.NRGBA{R: 0x6B, G: 0x72, B: 0x80, A: 0xFF}
)
