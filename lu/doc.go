// Package lu maintains an LU factorization of a sparse, possibly
// rectangular matrix and keeps it valid across in-place updates.
//
// 🚀 What does lu do?
//
//	Given an m×n matrix A in triplet form (package coord), Factorize
//	computes A = L·U where L is held as a file of elementary row
//	transformations ("etas") and U is held row-wise, both packed into one
//	fixed-capacity arena. Row order P and column order Q make U upper
//	triangular; L starts lower triangular and, after the first update,
//	becomes a general product of etas that solves replay in order.
//
// Algorithm Outline (Factorize):
//  1. Assemble the matrix into column lists with per-row/per-column counts.
//  2. Repeat: pick a pivot by Markowitz cost over a bounded window of the
//     shortest active columns, accepting only entries that pass the
//     threshold test of the chosen strategy (TPP, TRP, TCP or TSP).
//  3. Eliminate the pivot column: one eta per affected row is appended to
//     the L file, the pivot row is frozen into U, fill-in lands in the
//     active column lists.
//  4. When the active submatrix density reaches Dens2, finish the residual
//     block with dense complete-pivoting elimination.
//  5. Remaining rows/columns with no admissible pivot are recorded past the
//     numerical rank; small U diagonals are flagged as singularities.
//
// Updates (ReplaceColumn, ReplaceRow, AddColumn, AddRow, DeleteColumn,
// DeleteRow, RankOneUpdate) patch L and U in place — a Forrest–Tomlin
// ripple through the affected pivot window — instead of refactorizing.
// A failed update poisons the handle: treat the factors as lost and
// Refactorize.
//
// Complexity:
//
//	Factorize ≈ O(flops of sparse elimination), arena capacity `lena`
//	bounds total fill; Solve/Multiply = O(lenL + lenU);
//	updates = O(ripple fill) and append to the eta file.
//
// Concurrency: a Factorization is strictly single-owner. Every method
// mutates shared state without locking; callers must serialize access to
// one handle. Distinct handles are fully independent.
package lu
