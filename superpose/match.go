package superpose

import (
	"github.com/tikz/vsdalign/pdb"
)

// Scores for the global residue alignment used to pair atoms.
const (
	matchScore    = 2
	mismatchScore = -1
	gapScore      = -2
)

// Pair is a reference residue matched to a target residue.
type Pair struct {
	Reference *pdb.Residue
	Target    *pdb.Residue
}

// polymerResidues returns every polymer residue of the structure, chains in identifier order
// and residues by number.
func polymerResidues(p *pdb.PDB) []*pdb.Residue {
	var residues []*pdb.Residue
	for _, chain := range p.ChainIDs() {
		residues = append(residues, p.ChainResidues(chain)...)
	}
	return residues
}

// pairResidues aligns both residue lists globally by one letter code and returns the
// aligned columns where both residues carry an alpha carbon.
func pairResidues(ref, tgt []*pdb.Residue) []Pair {
	n, m := len(ref), len(tgt)
	if n == 0 || m == 0 {
		return nil
	}

	score := make([][]int, n+1)
	for i := range score {
		score[i] = make([]int, m+1)
		score[i][0] = i * gapScore
	}
	for j := 0; j <= m; j++ {
		score[0][j] = j * gapScore
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			diag := score[i-1][j-1] + substitution(ref[i-1], tgt[j-1])
			up := score[i-1][j] + gapScore
			left := score[i][j-1] + gapScore
			score[i][j] = max3(diag, up, left)
		}
	}

	// Ties skip target residues first, so surplus target residues end up as trailing gaps.
	var reversed []Pair
	i, j := n, m
	for i > 0 && j > 0 {
		switch score[i][j] {
		case score[i][j-1] + gapScore:
			j--
		case score[i-1][j-1] + substitution(ref[i-1], tgt[j-1]):
			if ref[i-1].CA() != nil && tgt[j-1].CA() != nil {
				reversed = append(reversed, Pair{Reference: ref[i-1], Target: tgt[j-1]})
			}
			i--
			j--
		default:
			i--
		}
	}

	pairs := make([]Pair, len(reversed))
	for k, p := range reversed {
		pairs[len(reversed)-1-k] = p
	}

	return pairs
}

func substitution(a, b *pdb.Residue) int {
	if a.Name1 == b.Name1 && a.Name1 != "X" {
		return matchScore
	}
	return mismatchScore
}

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
