// Package pkg provides the core libraries for Collagely photo collages.
//
// # Overview
//
// Collagely arranges a photo set into a print-ready collage: one main photo
// in the center of the page with the remaining photos tiled around it at a
// uniform gap. The pkg directory is organized into five main areas:
//
//  1. [layout] - Slot geometry solvers (grid and hexagon-ring modes)
//  2. [render] - Raster composition of photos into a page image
//  3. [export] - Page presets and PNG/JPEG/PDF encoding
//  4. [source], [httputil], [cache] - Photo loading and caching infrastructure
//  5. [pipeline] - Orchestration (resolve → layout → render)
//
// # Architecture
//
// The typical data flow through Collagely:
//
//	Photo references (paths, URLs)
//	         ↓
//	    [source] package (load and decode photos)
//	         ↓
//	    [layout] package (solve slot geometry)
//	         ↓
//	    [render] package (compose the page raster)
//	         ↓
//	    [export] package (encode PNG/JPEG/PDF)
//
// # Quick Start
//
// Most callers should use the pipeline package, which wires the stages
// together with caching:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Photos: []string{"main.jpg", "a.jpg", "b.jpg"},
//	    Page:   "a4",
//	})
//
// The layout and render packages can also be used directly for callers
// that manage their own photos.
package pkg
