package lu_test

import (
	"testing"

	"github.com/slukit/slu/coord"
	"github.com/slukit/slu/lu"
)

// benchTridiag assembles an n×n tridiagonal benchmark system.
func benchTridiag(b *testing.B, n int) *coord.Matrix {
	b.Helper()
	ents := make([]coord.Entry, 0, 3*n)
	for i := 1; i <= n; i++ {
		ents = append(ents, coord.Entry{Row: i, Col: i, Val: 4})
		if i > 1 {
			ents = append(ents, coord.Entry{Row: i, Col: i - 1, Val: -1})
		}
		if i < n {
			ents = append(ents, coord.Entry{Row: i, Col: i + 1, Val: -1})
		}
	}
	a, err := coord.New(n, n, ents)
	if err != nil {
		b.Fatalf("assemble: %v", err)
	}
	return a
}

// BenchmarkFactorize_Tridiag500 measures sparse elimination throughput.
func BenchmarkFactorize_Tridiag500(b *testing.B) {
	a := benchTridiag(b, 500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := lu.Factorize(a, nil); err != nil {
			b.Fatalf("factorize: %v", err)
		}
	}
}

// BenchmarkSolve_Tridiag500 measures one full A-solve on fixed factors.
func BenchmarkSolve_Tridiag500(b *testing.B) {
	a := benchTridiag(b, 500)
	f, err := lu.Factorize(a, nil)
	if err != nil {
		b.Fatalf("factorize: %v", err)
	}
	rhs := make([]float64, 500)
	for i := range rhs {
		rhs[i] = float64(i % 7)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := f.Solve(lu.SolveA, rhs); err != nil {
			b.Fatalf("solve: %v", err)
		}
	}
}

// BenchmarkReplaceColumn_Tridiag200 measures the update kernel. The handle
// is refactorized every few hundred updates, mirroring production use.
func BenchmarkReplaceColumn_Tridiag200(b *testing.B) {
	a := benchTridiag(b, 200)
	f, err := lu.Factorize(a, nil)
	if err != nil {
		b.Fatalf("factorize: %v", err)
	}
	col := make([]float64, 200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%256 == 255 {
			b.StopTimer()
			if err := f.Refactorize(a); err != nil {
				b.Fatalf("refactorize: %v", err)
			}
			b.StartTimer()
		}
		j := i%200 + 1
		col[j-1] = 4 + float64(i%3)
		if _, err := f.ReplaceColumn(j, col, nil); err != nil {
			b.Fatalf("replace: %v", err)
		}
		col[j-1] = 0
	}
}
