// Package coord assembles sparse matrices from (row, col, value) triplets.
//
// The triplet (coordinate) form is the input contract of the lu package:
// an unordered list of entries with 1-based indices and finite values.
// New validates the list, sums duplicate coordinates (standard sparse
// assembly semantics — duplicates accumulate, they are never overwritten
// or silently dropped) and freezes the result into an immutable Matrix.
//
// Complexity: assembly is O(nnz) time and memory.
package coord
