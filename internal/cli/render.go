package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/collagely/collagely/pkg/export"
	"github.com/collagely/collagely/pkg/pipeline"
	"github.com/collagely/collagely/pkg/source"
)

// defaultOutputBase is the base output path when --output is not given.
const defaultOutputBase = "collage"

// renderCommand creates the render command for producing collages.
//
// Default settings:
//   - page: a4 at 300 DPI
//   - gap: 10px, mode: grid, fit: cover
//   - background: white, format: png
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [photos...]",
		Short: "Render photos into a collage",
		Long: `Render photos into a collage.

Each argument is a local file, a directory (every photo inside is used, in
name order), or an http(s) URL. The first photo becomes the main photo in
the center unless --main-index selects another one; the remaining photos
tile around it with a uniform gap.

With no photos and --count, a placeholder preview is rendered with numbered
slots, which is useful for checking a layout before gathering photos.

Layouts and rendered artifacts are cached locally for faster subsequent runs.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if cmd.Flags().Changed("gap") && opts.Gap == 0 {
				opts.SetZeroGap()
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.apply(&opts, cmd)

			refs, err := expandRefs(args)
			if err != nil {
				return err
			}
			opts.Photos = refs

			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "formats", "f", "", "output format(s): png (default), jpeg, pdf (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Photo flags
	cmd.Flags().IntVar(&opts.MainIndex, "main-index", 0, "index of the main photo")
	cmd.Flags().IntVarP(&opts.PhotoCount, "count", "n", 0, "slot count for placeholder previews without photos")
	cmd.Flags().StringVar(&opts.PhotoRoot, "photo-root", "", "directory local photo paths resolve against")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass caches and recompute everything")

	// Page flags
	cmd.Flags().StringVarP(&opts.Page, "page", "p", "", "page preset: a3, a4 (default), a5; add -landscape to rotate")
	cmd.Flags().IntVar(&opts.DPI, "dpi", 0, "raster density in dots per inch (default 300)")
	cmd.Flags().IntVar(&opts.PageWidth, "page-width", 0, "explicit page width in pixels (overrides --page)")
	cmd.Flags().IntVar(&opts.PageHeight, "page-height", 0, "explicit page height in pixels (overrides --page)")
	cmd.Flags().IntVarP(&opts.Gap, "gap", "g", 0, "uniform spacing between photos in pixels (default 10)")

	// Layout flags
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "", "layout mode: grid (default), ring")
	cmd.Flags().Float64Var(&opts.FillTarget, "fill", 0, "target fraction of page area covered by photos")

	// Render flags
	cmd.Flags().StringVar(&opts.Fit, "fit", "", "photo-to-cell mapping: cover (default), contain")
	cmd.Flags().StringVar(&opts.Background, "background", "", "page background as a hex color (default #FFFFFF)")
	cmd.Flags().Float64Var(&opts.CornerRadius, "corner-radius", 0, "rounded corner radius in pixels")
	cmd.Flags().StringVar(&opts.Border, "border", "", "photo border as a hex color (default none)")
	cmd.Flags().BoolVar(&opts.Placeholders, "placeholders", false, "draw numbered slots for missing photos")
	cmd.Flags().IntVar(&opts.JPEGQuality, "jpeg-quality", 0, "JPEG encoder quality 1-100 (default 90)")

	return cmd
}

// expandRefs expands directory arguments into the photos they contain.
// Files and URLs pass through unchanged.
func expandRefs(args []string) ([]string, error) {
	var refs []string
	for _, arg := range args {
		if source.IsRemote(arg) {
			refs = append(refs, arg)
			continue
		}
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			listed, err := source.ListDir(arg)
			if err != nil {
				return nil, fmt.Errorf("list photos in %s: %w", arg, err)
			}
			if len(listed) == 0 {
				return nil, fmt.Errorf("no photos found in %s", arg)
			}
			refs = append(refs, listed...)
			continue
		}
		refs = append(refs, arg)
	}
	return refs, nil
}

// basePath derives the base output path from the --output flag.
// A known format extension (.png, .jpg, .pdf) is stripped so multiple
// formats can share the base.
func basePath(output string) string {
	if output == "" {
		return defaultOutputBase
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if _, err := export.ParseFormat(ext); err == nil {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return output
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	tracker := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, "Rendering collage...")
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := basePath(output)
	var written []string
	for _, f := range opts.Formats {
		format, err := export.ParseFormat(f)
		if err != nil {
			return err
		}
		data, ok := res.Artifacts[string(format)]
		if !ok {
			continue
		}
		path := base + "." + format.Extension()
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Collage rendered")
	for _, path := range written {
		printFile(path)
	}
	printStats(res.Stats.PhotoCount, res.Layout.SlotCount(), res.CacheInfo.RenderHit)
	for _, w := range res.Layout.Warnings() {
		printWarning("%s", w)
	}

	tracker.done(fmt.Sprintf("Rendered %d file(s)", len(written)))
	return nil
}
