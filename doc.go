// Package slu maintains sparse LU factorizations: factorize once, then
// solve, multiply and patch the factors in place as the matrix changes.
//
// 🚀 What is slu?
//
//	A pure-Go engine for general unsymmetric sparse matrices that keeps
//	PAQ = LU alive across small perturbations of A:
//		• Markowitz pivot search with four threshold strategies (TPP/TRP/TCP/TSP)
//		• Packed factor arena with fill-in headroom and on-demand compaction
//		• Six triangular/full solve modes and factor-side multiply
//		• Incremental updates: replace/add/delete a row or column, rank-one A+βvwᵀ
//
// ✨ Why choose slu?
//
//   - Update, don't refactorize – column swaps and rank-one patches cost a
//     ripple through the factors, not a fresh elimination
//   - Explicit failure – storage exhaustion and lost pivots are reported,
//     never papered over
//   - Pure Go – no cgo, no hidden deps
//
// Everything is organized under two subpackages:
//
//	coord/ — sparse (row, col, value) triplet assembly with duplicate summing
//	lu/    — factorization handle: Factorize, Solve, Multiply, updates, Stats
//
// Dive into lu/doc.go for the algorithm outline and the update calculus.
//
//	go get github.com/slukit/slu/lu
package slu
