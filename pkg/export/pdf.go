package export

import (
	"bytes"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"

	"github.com/collagely/collagely/pkg/xerrors"
)

// encodePDF writes img as a single-page PDF whose page matches the
// image's physical size at the given raster density.
func encodePDF(w io.Writer, img image.Image, dpi int) error {
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	var png bytes.Buffer
	if err := imaging.Encode(&png, img, imaging.PNG); err != nil {
		return xerrors.Wrap(err, xerrors.ErrCodeInternal, "encoding page image")
	}

	bounds := img.Bounds()
	widthPt := float64(bounds.Dx()) / float64(dpi) * 72
	heightPt := float64(bounds.Dy()) / float64(dpi) * 72

	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt"})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: widthPt, Ht: heightPt})

	opt := gofpdf.ImageOptions{ImageType: "png"}
	pdf.RegisterImageOptionsReader("collage", opt, &png)
	pdf.ImageOptions("collage", 0, 0, widthPt, heightPt, false, opt, 0, "")
	if pdf.Err() {
		return xerrors.Wrap(pdf.Error(), xerrors.ErrCodeInternal, "composing pdf")
	}

	if err := pdf.Output(w); err != nil {
		return xerrors.Wrap(err, xerrors.ErrCodeInternal, "writing pdf")
	}
	return nil
}
