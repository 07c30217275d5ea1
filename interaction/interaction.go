// Package interaction finds water molecules in contact with structure residues.
package interaction

import (
	"github.com/tikz/vsdalign/pdb"
)

// DefaultWaterDistance is the contact cutoff in angstroms between a residue atom and a water atom.
const DefaultWaterDistance = 3.5

// NearWater returns true if any atom of r is closer than distance to the given water molecule.
func NearWater(r *pdb.Residue, water *pdb.Residue, distance float64) bool {
	for _, atom := range r.Atoms {
		for _, w := range water.Atoms {
			if pdb.Distance(atom, w) < distance {
				return true
			}
		}
	}
	return false
}

// Waters returns the number of water molecules within distance of each residue number. Chains are
// visited in identifier order and the first chain holding a number wins. Numbers without a polymer
// residue are omitted.
func Waters(p *pdb.PDB, numbers []int64, distance float64) map[int64]int {
	waters := make(map[int64]int, len(numbers))
	for _, n := range numbers {
		res := residueByNumber(p, n)
		if res == nil {
			continue
		}

		var count int
		for _, w := range p.Solvent {
			if NearWater(res, w, distance) {
				count++
			}
		}
		waters[n] = count
	}
	return waters
}

func residueByNumber(p *pdb.PDB, n int64) *pdb.Residue {
	for _, chain := range p.ChainIDs() {
		if res, ok := p.Chains[chain][n]; ok {
			return res
		}
	}
	return nil
}
