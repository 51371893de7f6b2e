// SPDX-License-Identifier: MIT

// Package ndarray provides the N-dimensional float64 storage used by qfloat.
//
// What & Why:
//
//	Array is a contiguous, row-major buffer with an explicit shape. Rank-0
//	arrays (shape []) hold a single scalar. The package supplies exactly what
//	an uncertainty-aware value type needs from an array engine:
//
//	  • construction from Go values (FromAny) and explicit shapes;
//	  • numpy-style broadcasting (BroadcastShapes, BroadcastTo, Map2, MapN);
//	  • structural rearrangements (Reshape, Transpose, Flip, Roll, Tile, Take,
//	    Slice, Resize, Squeeze, ExpandDims, Concatenate, Delete, Insert, ...);
//	  • lane-wise reductions and accumulations along an axis;
//	  • boolean masks produced by elementwise comparisons.
//
// Ownership:
//
//	Every operation allocates a fresh buffer. Nothing in this package returns
//	a view aliasing another Array's storage, so two Arrays never share memory
//	unless the caller shares the pointer itself (see SharesMemory).
//
// Determinism:
//
//	All loops run in fixed row-major order; no map iteration, no randomness.
//
// Complexity:
//
//	Elementwise and structural operations are O(n·rank) time and O(n) space
//	for n output elements.
package ndarray
