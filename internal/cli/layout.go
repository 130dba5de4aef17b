package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/collagely/collagely/pkg/layout/ring"
	"github.com/collagely/collagely/pkg/pipeline"
)

// layoutCommand creates the layout command for solving slot geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	cmd := c.newLayoutCommand(false)
	cmd.Use = "layout"
	cmd.Short = "Solve collage slot geometry and write it as JSON"
	cmd.Long = `Solve collage slot geometry and write it as JSON.

The layout command computes where every photo slot sits on the page without
loading or rendering any photos: the main slot in the center and the side
slots tiled around it (grid mode) or arranged in concentric hexagon rings
(ring mode). The output is the same layout JSON the render command uses
internally, which makes it useful for previewing slot counts and debugging
page dimensions.

Results are cached locally for faster subsequent runs.`
	return cmd
}

// ringCommand creates the ring command, layout with the mode pinned to ring.
func (c *CLI) ringCommand() *cobra.Command {
	cmd := c.newLayoutCommand(true)
	cmd.Use = "ring"
	cmd.Short = "Solve ring-mode slot geometry and write it as JSON"
	cmd.Long = `Solve ring-mode slot geometry and write it as JSON.

Equivalent to 'layout --mode ring': one hexagonal center slot surrounded by
concentric hexagon rings. Supports up to ` + fmt.Sprint(ring.MaxPhotos) + ` photos including the main one.`
	return cmd
}

func (c *CLI) newLayoutCommand(ringMode bool) *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("gap") && opts.Gap == 0 {
				opts.SetZeroGap()
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.apply(&opts, cmd)
			if ringMode {
				opts.Mode = pipeline.ModeRing
			}
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Layout flags
	cmd.Flags().IntVarP(&opts.PhotoCount, "count", "n", 0, "number of photo slots including the main photo")
	cmd.Flags().StringVarP(&opts.Page, "page", "p", "", "page preset: a3, a4 (default), a5; add -landscape to rotate")
	cmd.Flags().IntVar(&opts.DPI, "dpi", 0, "raster density in dots per inch (default 300)")
	cmd.Flags().IntVar(&opts.PageWidth, "page-width", 0, "explicit page width in pixels (overrides --page)")
	cmd.Flags().IntVar(&opts.PageHeight, "page-height", 0, "explicit page height in pixels (overrides --page)")
	cmd.Flags().IntVarP(&opts.Gap, "gap", "g", 0, "uniform spacing between photos in pixels (default 10)")
	if !ringMode {
		cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "", "layout mode: grid (default), ring")
		cmd.Flags().Float64Var(&opts.FillTarget, "fill", 0, "target fraction of page area covered by photos")
	}
	_ = cmd.MarkFlagRequired("count")

	return cmd
}

// runLayout solves the layout and writes the JSON output.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	mode := opts.Mode
	if mode == "" {
		mode = pipeline.DefaultMode
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Solving %s layout...", mode))
	spinner.Start()

	l, cacheHit, err := runner.SolveLayoutWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("solve layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}

	if output == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout solved")
	printFile(output)
	printStats(0, l.SlotCount(), cacheHit)
	for _, w := range l.Warnings() {
		printWarning("%s", w)
	}
	printNewline()
	printNextStep("Render", "collagely render <photos...>")

	return nil
}
