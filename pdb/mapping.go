package pdb

import (
	"sort"
)

// ResidueID is a physical residue, identified by its residue number in the structure.
type ResidueID struct {
	Number int64  `json:"number"`
	Name   string `json:"name"`
}

// ResidueMapping is the list of polymer residues of a structure sorted ascending by residue number.
// It is derived on demand and never stored.
type ResidueMapping []ResidueID

// NewResidueMapping sorts the given residues by number and drops repeated numbers, keeping the first seen.
func NewResidueMapping(residues ...ResidueID) ResidueMapping {
	seen := make(map[int64]bool, len(residues))
	m := make(ResidueMapping, 0, len(residues))
	for _, r := range residues {
		if seen[r.Number] {
			continue
		}
		seen[r.Number] = true
		m = append(m, r)
	}

	sort.SliceStable(m, func(i, j int) bool {
		return m[i].Number < m[j].Number
	})

	return m
}

// Mapping returns the polymer residues of the structure as a ResidueMapping.
// Chains are visited in identifier order, so with repeated numbers across chains the first chain wins.
func (pdb *PDB) Mapping() ResidueMapping {
	var ids []ResidueID
	for _, chain := range pdb.ChainIDs() {
		for _, res := range pdb.ChainResidues(chain) {
			ids = append(ids, ResidueID{Number: res.Number, Name: res.ResName})
		}
	}

	return NewResidueMapping(ids...)
}

// Sorted returns the mapping itself if already ascending, or a sorted copy otherwise.
func (m ResidueMapping) Sorted() ResidueMapping {
	if sort.SliceIsSorted(m, func(i, j int) bool { return m[i].Number < m[j].Number }) {
		return m
	}

	return NewResidueMapping(m...)
}

// Numbers returns the residue numbers in order.
func (m ResidueMapping) Numbers() []int64 {
	numbers := make([]int64, len(m))
	for i, r := range m {
		numbers[i] = r.Number
	}
	return numbers
}
