package pdb

import (
	"errors"
	"math"
)

// Distance returns the distance between a pair of atoms
func Distance(atom1 *Atom, atom2 *Atom) float64 {
	return math.Sqrt(math.Pow(atom1.X-atom2.X, 2) + math.Pow(atom1.Y-atom2.Y, 2) + math.Pow(atom1.Z-atom2.Z, 2))
}

// RMSD returns the root mean square deviation between two paired atom lists.
func RMSD(atoms1 []*Atom, atoms2 []*Atom) (float64, error) {
	if len(atoms1) != len(atoms2) {
		return 0, errors.New("atom lists differ in length")
	}
	if len(atoms1) == 0 {
		return 0, errors.New("empty atom lists")
	}

	var ss float64
	for i := range atoms1 {
		d := Distance(atoms1[i], atoms2[i])
		ss += d * d
	}

	return math.Sqrt(ss / float64(len(atoms1))), nil
}
