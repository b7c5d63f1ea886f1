package polylead

// ============================================================
// Leading-term selection
// ============================================================

// SelectLeadingTerm picks the group of greatest total degree.
//
// The constant group competes with degree 0, so "1/x + 5" leads with 5.
// Ties are broken deterministically: a non-constant group beats the
// constant group, and among non-constant groups the smallest signature
// key wins ("x^2,y^1" before "x^3"). With no groups at all the result is
// ZeroTerm.
func SelectLeadingTerm(groups []TermGroup) TermGroup {
	if len(groups) == 0 {
		return ZeroTerm()
	}
	best := groups[0]
	for _, g := range groups[1:] {
		if outranks(g, best) {
			best = g
		}
	}
	return TermGroup{Signature: best.Signature, Coefficient: ratCopy(best.Coefficient), Degree: best.Degree}
}

func outranks(g, best TermGroup) bool {
	if g.Degree != best.Degree {
		return g.Degree > best.Degree
	}
	if g.IsConstant() != best.IsConstant() {
		return best.IsConstant()
	}
	return g.Signature.Key() < best.Signature.Key()
}
