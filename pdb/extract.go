package pdb

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptySelection is returned when a selection matches no atoms.
var ErrEmptySelection = errors.New("empty selection")

// selectAtoms returns the atoms for which keep returns true, in file order.
func (pdb *PDB) selectAtoms(keep func(*Atom) bool) []*Atom {
	var atoms []*Atom
	for _, atom := range pdb.Atoms {
		if keep(atom) {
			atoms = append(atoms, atom)
		}
	}
	return atoms
}

// ResidueRange returns a new structure with the residues numbered within [start, end], all atoms included.
// Solvent molecules outside the range are dropped.
func (pdb *PDB) ResidueRange(start, end int64) (*PDB, error) {
	atoms := pdb.selectAtoms(func(a *Atom) bool {
		return a.ResidueNumber >= start && a.ResidueNumber <= end
	})
	if len(atoms) == 0 {
		return nil, fmt.Errorf("residues %d-%d: %w", start, end, ErrEmptySelection)
	}

	return newPDBFromAtoms(pdb.ID, atoms).withHeader(pdb), nil
}

// ChainBySequence returns a new structure with the protein chain whose sequence contains seq, plus
// every solvent molecule regardless of its chain. When several chains qualify the lexicographically
// first identifier wins. If no chain contains the sequence, the first protein chain is used instead.
// The selected chain identifier is returned along with the structure.
func (pdb *PDB) ChainBySequence(seq string) (*PDB, string, error) {
	seq = strings.ToUpper(strings.TrimSpace(seq))

	var chain string
	if seq != "" {
		for _, id := range pdb.ChainIDs() {
			if pdb.IsProteinChain(id) && strings.Contains(pdb.ChainSequence(id), seq) {
				chain = id
				break
			}
		}
	}

	if chain == "" {
		for _, id := range pdb.ChainIDs() {
			if pdb.IsProteinChain(id) {
				chain = id
				break
			}
		}
	}

	if chain == "" {
		return nil, "", fmt.Errorf("no protein chain: %w", ErrEmptySelection)
	}

	atoms := pdb.selectAtoms(func(a *Atom) bool {
		return (a.IsPolymer() && a.Chain == chain) || a.IsSolvent()
	})

	return newPDBFromAtoms(pdb.ID, atoms).withHeader(pdb), chain, nil
}

func (pdb *PDB) withHeader(from *PDB) *PDB {
	pdb.Title = from.Title
	pdb.Method = from.Method
	pdb.Resolution = from.Resolution
	return pdb
}

// WithSolvent returns the structure itself when it already has water molecules. Otherwise a new
// structure is returned with the water molecules of from appended after its own atoms.
func (pdb *PDB) WithSolvent(from *PDB) *PDB {
	if len(pdb.Solvent) > 0 || from == nil {
		return pdb
	}

	water := from.selectAtoms(func(a *Atom) bool { return a.IsSolvent() })
	if len(water) == 0 {
		return pdb
	}

	atoms := make([]*Atom, 0, len(pdb.Atoms)+len(water))
	for _, a := range pdb.Atoms {
		atoms = append(atoms, a.clone())
	}
	for _, a := range water {
		atoms = append(atoms, a.clone())
	}

	return newPDBFromAtoms(pdb.ID, atoms).withHeader(pdb)
}
