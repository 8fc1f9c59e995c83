// Package render draws a resolved dependency closure as a Graphviz graph.
//
// [ToDOT] emits DOT source: requirement roots are drawn bold, packages in
// the closure white, packages that are required but not installed red and
// dashed, and excluded packages grey and dashed with no edges. [RenderSVG]
// lays the DOT out with the bundled Graphviz library.
//
//	dot := render.ToDOT(result.Closure, result.Exclusions, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
package render
