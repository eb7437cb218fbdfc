// Package cuda registers the intrinsic lowering rules for the CUDA
// backend: libm-style math symbol selection by float width, fast-math
// single-precision variants, population count and the warp shuffle /
// active-mask primitives with their low-level operation declarations.
package cuda
