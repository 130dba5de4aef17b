// Package render rasterizes solved collage layouts into images.
//
// # Overview
//
// This package turns the pure geometry produced by [layout] and
// [layout/ring] into pixels. It provides:
//
//   - [Grid]: draws a grid layout (main photo framed by side photos)
//   - [Ring]: draws a ring layout (hexagonal cells around a center)
//   - Fit policies ([FitCover], [FitContain]) for mapping photos into cells
//
// Rendering is configured through functional options:
//
//	img, err := render.Grid(794, 1123, res, photos,
//		render.WithBackground(color.White),
//		render.WithFit(render.FitCover))
//
// Photos are consumed in slot order: index 0 is the main (or center)
// photo, the rest fill the side slots in the order the layout emitted
// them. Missing photos render as numbered placeholders when
// [WithPlaceholders] is set.
//
// [layout]: github.com/collagely/collagely/pkg/layout
// [layout/ring]: github.com/collagely/collagely/pkg/layout/ring
package render
