package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/collagely/collagely/pkg/export"
)

// exportCommand creates the export command for re-encoding a rendered collage.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		dpi        int
		quality    int
	)

	cmd := &cobra.Command{
		Use:   "export [image]",
		Short: "Re-encode a rendered collage into other formats",
		Long: `Re-encode a rendered collage into other formats.

Takes an already rendered collage image (PNG or JPEG) and encodes it into
the requested formats without re-running layout or rendering. Useful for
producing a print PDF from a page rendered earlier.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(args[0], parseFormats(formatsStr), output, dpi, quality)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().StringVarP(&formatsStr, "formats", "f", "", "output format(s): png (default), jpeg, pdf (comma-separated)")
	cmd.Flags().IntVar(&dpi, "dpi", 0, "raster density for the PDF page size (default 300)")
	cmd.Flags().IntVar(&quality, "jpeg-quality", 0, "JPEG encoder quality 1-100 (default 90)")

	return cmd
}

// runExport loads the image and encodes one file per format.
func (c *CLI) runExport(input string, formats []string, output string, dpi, quality int) error {
	img, err := imaging.Open(input)
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}

	base := strings.TrimSuffix(input, filepath.Ext(input))
	if output != "" {
		base = basePath(output)
	}

	var written []string
	for _, f := range formats {
		format, err := export.ParseFormat(f)
		if err != nil {
			return err
		}

		path := base + "." + format.Extension()
		out, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}

		err = export.Encode(out, img, format,
			export.WithDPI(dpi),
			export.WithJPEGQuality(quality))
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Exported %d file(s)", len(written))
	for _, path := range written {
		printFile(path)
	}
	return nil
}
