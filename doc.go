// Package ink is the device-independent core of a 2D vector graphics
// library.
//
// # Overview
//
// ink owns everything a renderer does not: path construction in
// fixed-point device coordinates, a stack of graphics states with
// Save/Restore and group redirection, an immutable-when-shared clip
// model, and circular-arc tessellation into Bézier segments. Pixels are
// out of scope; rendering backends consume Context.Snapshot,
// Context.CurrentPath and Context.CurrentClip and do the rasterizing.
//
// # Quick Start
//
//	import "github.com/gogpu/ink"
//
//	target := ink.NewImageSurface(ink.ContentColorAlpha, 512, 512)
//	dc := ink.NewContext(target)
//	defer dc.Close()
//
//	dc.Translate(256, 256)
//	dc.Arc(0, 0, 100, 0, 2*math.Pi)
//	dc.SetSourceRGB(1, 0, 0)
//	if err := dc.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Errors
//
// Every mutating operation returns an error, and the first failure
// poisons the context: all later calls return that same error. Callers
// may therefore issue a whole drawing sequence and check dc.Err() once
// at the end.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Context, Path, Matrix, Pattern, Surface, Stroke
//   - Internal: arr (growable storage), fixedpoint (26.6 coordinates),
//     clip (clip and region model)
//   - text: font faces and metrics for text-aware callers
package ink
