package lu

// Stats returns a snapshot of the factor diagnostics. The rank estimate
// re-applies the UTol1/UTol2 singularity tests to the current diagonals,
// so it reflects drift introduced by updates, not just the factorize-time
// pivot decisions.
func (f *Factorization) Stats() Stats {
	s := f.stats
	s.LEntries = f.lenL
	s.UEntries = f.lenU
	s.Entries = f.lenL + f.lenU
	rank, _ := f.countRank()
	s.Rank = rank
	s.Singularities = 0
	if d := f.liveMin() - rank; d > 0 {
		s.Singularities = d
	}
	s.Growth = 1
	if f.maxA > 0 {
		s.Growth = f.maxFactor / f.maxA
	}
	return s
}
