package pipeline

import (
	"bytes"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/collagely/collagely/pkg/export"
	"github.com/collagely/collagely/pkg/render"
	"github.com/collagely/collagely/pkg/xerrors"
)

// RenderFromLayout rasterizes a solved layout and encodes every
// requested format. photos follow slot order (main first); a short or
// nil photo slice requires the placeholder option.
func RenderFromLayout(l Layout, photos []image.Image, opts Options) (map[string][]byte, error) {
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	pageWidth, pageHeight, err := opts.PageSize()
	if err != nil {
		return nil, err
	}

	img, err := rasterize(l, pageWidth, pageHeight, photos, opts)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, f := range opts.Formats {
		format, err := export.ParseFormat(f)
		if err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		err = export.Encode(&buf, img, format,
			export.WithDPI(opts.DPI),
			export.WithJPEGQuality(opts.JPEGQuality))
		if err != nil {
			return nil, err
		}
		artifacts[string(format)] = buf.Bytes()
	}
	return artifacts, nil
}

func rasterize(l Layout, pageWidth, pageHeight int, photos []image.Image, opts Options) (image.Image, error) {
	fit, err := render.ParseFit(opts.Fit)
	if err != nil {
		return nil, err
	}
	bg, err := parseHexColor(opts.Background)
	if err != nil {
		return nil, err
	}

	ropts := []render.Option{
		render.WithBackground(bg),
		render.WithFit(fit),
	}
	if opts.Border != "" {
		border, err := parseHexColor(opts.Border)
		if err != nil {
			return nil, err
		}
		ropts = append(ropts, render.WithBorder(border))
	}
	if opts.CornerRadius > 0 {
		ropts = append(ropts, render.WithCornerRadius(opts.CornerRadius))
	}
	if opts.Placeholders {
		ropts = append(ropts, render.WithPlaceholders())
	}

	switch l.Mode {
	case ModeRing:
		return render.Ring(pageWidth, pageHeight, l.Ring, photos, ropts...)
	default:
		return render.Grid(pageWidth, pageHeight, l.Grid, photos, ropts...)
	}
}

// parseHexColor parses a #RGB or #RRGGBB hex color.
func parseHexColor(s string) (color.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, xerrors.New(xerrors.ErrCodeInvalidRequest, "invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, xerrors.New(xerrors.ErrCodeInvalidRequest, "invalid color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}
