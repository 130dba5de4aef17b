// Package export encodes rendered collage images into deliverable files.
//
// Supported formats are PNG and JPEG (via imaging) and single-page PDF
// (via gofpdf). Format selection, raster density and JPEG quality are
// configured through functional options:
//
//	err := export.Encode(w, img, export.FormatPDF,
//		export.WithDPI(300),
//		export.WithJPEGQuality(90))
package export

import (
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/collagely/collagely/pkg/xerrors"
)

// Format is a supported output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatPDF  Format = "pdf"
)

// Formats lists the supported output formats.
func Formats() []Format { return []Format{FormatPNG, FormatJPEG, FormatPDF} }

// DefaultJPEGQuality is the JPEG encoder quality used when none is
// configured.
const DefaultJPEGQuality = 90

// ParseFormat resolves a user-supplied format name, accepting common
// aliases like "jpg".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", xerrors.New(xerrors.ErrCodeInvalidFormat,
			"unknown format %q (valid: png, jpeg, pdf)", s)
	}
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return string(f)
}

type Option func(*encoder)

type encoder struct {
	dpi     int
	quality int
}

func WithDPI(dpi int) Option             { return func(e *encoder) { e.dpi = dpi } }
func WithJPEGQuality(quality int) Option { return func(e *encoder) { e.quality = quality } }

func newEncoder(opts ...Option) encoder {
	e := encoder{dpi: DefaultDPI, quality: DefaultJPEGQuality}
	for _, opt := range opts {
		opt(&e)
	}
	if e.dpi <= 0 {
		e.dpi = DefaultDPI
	}
	if e.quality <= 0 {
		e.quality = DefaultJPEGQuality
	}
	return e
}

// Encode writes img to w in the requested format.
func Encode(w io.Writer, img image.Image, format Format, opts ...Option) error {
	if img == nil {
		return xerrors.New(xerrors.ErrCodeInvalidRequest, "nil image")
	}

	e := newEncoder(opts...)
	switch format {
	case FormatPNG:
		if err := imaging.Encode(w, img, imaging.PNG); err != nil {
			return xerrors.Wrap(err, xerrors.ErrCodeInternal, "encoding png")
		}
		return nil
	case FormatJPEG:
		if err := imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(e.quality)); err != nil {
			return xerrors.Wrap(err, xerrors.ErrCodeInternal, "encoding jpeg")
		}
		return nil
	case FormatPDF:
		return encodePDF(w, img, e.dpi)
	default:
		return xerrors.New(xerrors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
}
