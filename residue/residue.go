// Package residue maps gapped alignment positions onto physical residue numbers of a structure.
//
// Positions are paired by offset: the k-th letter of the ungapped target sequence is taken to be
// the k-th polymer residue of the structure in ascending residue number order.
package residue

import (
	"sort"
	"strings"

	"github.com/tikz/vsdalign/pdb"
)

// Gap is the alignment gap character.
const Gap = '-'

// DefaultMismatch is the match string symbol that flags a mutated position.
const DefaultMismatch = "*"

// Match pairs a residue number with its match string symbol.
type Match struct {
	Residue int64  `json:"residue" yaml:"residue"`
	Symbol  string `json:"symbol" yaml:"symbol"`
}

// Annotation is the amino acid and match symbol at one residue.
type Annotation struct {
	AminoAcid string `json:"amino_acid" yaml:"amino_acid"`
	Symbol    string `json:"symbol" yaml:"symbol"`
}

// ZoneInput is one zone as stored: its number, gapped target fragment and match string.
type ZoneInput struct {
	ZoneNumber int64
	Fragment   string
	Match      string
}

// Zone is a zone mapped onto the structure.
type Zone struct {
	ZoneNumber   int64   `json:"zone_number" yaml:"zone_number"`
	Residues     []int64 `json:"residues" yaml:"residues"`
	Matches      []Match `json:"matches" yaml:"matches"`
	Sequence     string  `json:"sequence" yaml:"sequence"`
	MatchPattern string  `json:"match_pattern" yaml:"match_pattern"`
}

// Ungap removes gap characters.
func Ungap(s string) string {
	return strings.Map(func(r rune) rune {
		if r == Gap {
			return -1
		}
		return r
	}, s)
}

// columns returns the indexes of the non-gap characters of a gapped string.
func columns(gapped string) []int {
	cols := make([]int, 0, len(gapped))
	for i := 0; i < len(gapped); i++ {
		if gapped[i] != Gap {
			cols = append(cols, i)
		}
	}
	return cols
}

// symbolAt returns the match symbol aligned with the i-th ungapped letter, or "" when the
// match string is too short.
func symbolAt(cols []int, match string, i int) string {
	if i >= len(cols) || cols[i] >= len(match) {
		return ""
	}
	return match[cols[i] : cols[i]+1]
}

// ZoneResidues returns the residue numbers covered by a zone fragment. The fragment is located at its
// first occurrence in the ungapped full target; a fragment that does not occur yields an empty list.
// The list stops early where the structure has no more residues.
func ZoneResidues(m pdb.ResidueMapping, fullTarget, fragment string) []int64 {
	m = m.Sorted()
	residues := []int64{}

	frag := Ungap(fragment)
	if frag == "" {
		return residues
	}

	start := strings.Index(Ungap(fullTarget), frag)
	if start < 0 {
		return residues
	}

	for i := 0; i < len(frag); i++ {
		if start+i >= len(m) {
			break
		}
		residues = append(residues, m[start+i].Number)
	}

	return residues
}

// ZoneMatches returns the residues of a zone paired with the symbol of the zone match string aligned
// with each fragment letter.
func ZoneMatches(m pdb.ResidueMapping, fullTarget, fragment, match string) []Match {
	residues := ZoneResidues(m, fullTarget, fragment)
	cols := columns(fragment)

	matches := make([]Match, len(residues))
	for i, r := range residues {
		matches[i] = Match{Residue: r, Symbol: symbolAt(cols, match, i)}
	}
	return matches
}

// SequenceMap pairs the whole gapped target alignment with the structure: every residue gets the
// target letter and the match symbol of its alignment column. Letters beyond the last residue are dropped.
func SequenceMap(m pdb.ResidueMapping, target, match string) map[int64]Annotation {
	m = m.Sorted()
	cols := columns(target)

	annotations := make(map[int64]Annotation, len(cols))
	for i, col := range cols {
		if i >= len(m) {
			break
		}
		annotations[m[i].Number] = Annotation{
			AminoAcid: target[col : col+1],
			Symbol:    symbolAt(cols, match, i),
		}
	}
	return annotations
}

// MapZones maps every zone onto the structure, in the given order.
func MapZones(m pdb.ResidueMapping, fullTarget string, zones []ZoneInput) []Zone {
	m = m.Sorted()

	mapped := make([]Zone, len(zones))
	for i, z := range zones {
		matches := ZoneMatches(m, fullTarget, z.Fragment, z.Match)
		residues := make([]int64, len(matches))
		for j, match := range matches {
			residues[j] = match.Residue
		}

		mapped[i] = Zone{
			ZoneNumber:   z.ZoneNumber,
			Residues:     residues,
			Matches:      matches,
			Sequence:     Ungap(z.Fragment),
			MatchPattern: z.Match,
		}
	}
	return mapped
}

// Mutated returns the residues whose symbol equals the mismatch symbol.
func Mutated(matches []Match, symbol string) []int64 {
	mutated := []int64{}
	for _, m := range matches {
		if m.Symbol == symbol {
			mutated = append(mutated, m.Residue)
		}
	}
	return mutated
}

// MutatedResidues returns the residues of a sequence map flagged with the mismatch symbol, ascending.
func MutatedResidues(annotations map[int64]Annotation, symbol string) []int64 {
	mutated := []int64{}
	for r, a := range annotations {
		if a.Symbol == symbol {
			mutated = append(mutated, r)
		}
	}
	sort.Slice(mutated, func(i, j int) bool { return mutated[i] < mutated[j] })
	return mutated
}
