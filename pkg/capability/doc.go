// Package capability defines the closed set of capability tags used to
// classify SAM3 parts along independent axes.
//
// Tags replace per-variant code paths: shared HAL code is written once per
// tag (or tag expression) instead of once per part number.
//
// # Axes
//
// Every tag belongs to exactly one axis:
//   - Generation: die generation, SAM3A (GenerationA) or SAM3X (GenerationB)
//   - Package: pinout class, 100-pin "C" (PackageClass1) or 144-pin and
//     larger "E" (PackageClass2)
//   - Runtime: presence of the startup/runtime shim (RuntimePresence)
//
// # Tokens
//
// Each tag has a stable feature token which doubles as its Go build tag:
//
//	sam3a   GenerationA
//	sam3x   GenerationB
//	sam3_c  PackageClass1
//	sam3_e  PackageClass2
//	rt      RuntimePresence
//
// Use [ParseTag] to map a token back to its tag and [Set.BuildTags] to
// render a set for `go build -tags`.
package capability
