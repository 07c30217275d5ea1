// Package superpose computes rigid body superpositions of a target structure onto a reference.
package superpose

import (
	"errors"
	"fmt"

	chem "github.com/rmera/gochem"
	v3 "github.com/rmera/gochem/v3"

	"github.com/tikz/vsdalign/pdb"
)

// DefaultMinPairs is the fewest paired alpha carbons that define a rotation.
const DefaultMinPairs = 3

// ErrNoAlignableAtoms is returned when the structures share too few paired polymer atoms.
var ErrNoAlignableAtoms = errors.New("no alignable atoms")

// MissingReferenceError is returned when there is neither a curated reference nor a fallback for an entry.
type MissingReferenceError struct {
	Entry string
}

func (e *MissingReferenceError) Error() string {
	if e.Entry == "" {
		return "missing reference structure"
	}
	return fmt.Sprintf("missing reference structure for %s", e.Entry)
}

// Result holds a superposed structure and the fit quality over the paired atoms.
type Result struct {
	Structure *pdb.PDB
	Pairs     []Pair
	RMSD      float64
}

// Aligner superposes structures on their paired alpha carbons.
type Aligner struct {
	MinPairs int
}

// NewAligner returns an aligner with the default pair threshold.
func NewAligner() *Aligner {
	return &Aligner{MinPairs: DefaultMinPairs}
}

// Align superposes the target structure text onto the reference structure text and returns
// the transformed target, solvent included, as PDB text.
func (a *Aligner) Align(reference, target []byte) ([]byte, error) {
	if len(reference) == 0 {
		return nil, &MissingReferenceError{}
	}

	ref, err := pdb.NewPDBFromRaw(reference)
	if err != nil {
		return nil, fmt.Errorf("parse reference: %w", err)
	}

	tgt, err := pdb.NewPDBFromRaw(target)
	if err != nil {
		return nil, fmt.Errorf("parse target: %w", err)
	}

	res, err := a.Superpose(ref, tgt)
	if err != nil {
		return nil, err
	}

	return res.Structure.Bytes(), nil
}

// Superpose returns a copy of tgt rotated and translated onto ref. The input structures are not modified.
func (a *Aligner) Superpose(ref, tgt *pdb.PDB) (*Result, error) {
	minPairs := a.MinPairs
	if minPairs < DefaultMinPairs {
		minPairs = DefaultMinPairs
	}

	pairs := pairResidues(polymerResidues(ref), polymerResidues(tgt))
	if len(pairs) < minPairs {
		return nil, fmt.Errorf("%d paired residues, need %d: %w", len(pairs), minPairs, ErrNoAlignableAtoms)
	}

	refCA := make([]*pdb.Atom, len(pairs))
	tgtCA := make([]*pdb.Atom, len(pairs))
	for i, p := range pairs {
		refCA[i] = p.Reference.CA()
		tgtCA[i] = p.Target.CA()
	}

	templa, err := coordinates(refCA)
	if err != nil {
		return nil, fmt.Errorf("reference coordinates: %w", err)
	}

	moved := tgt.Clone()

	// the paired alpha carbons go first, followed by every target atom
	all := append(append([]*pdb.Atom{}, tgtCA...), moved.Atoms...)
	test, err := coordinates(all)
	if err != nil {
		return nil, fmt.Errorf("target coordinates: %w", err)
	}

	idx := make([]int, len(pairs))
	for i := range idx {
		idx[i] = i
	}

	super, err := chem.Super(test, templa, idx, idx)
	if err != nil {
		return nil, fmt.Errorf("superpose: %w", err)
	}

	fitted := make([]*pdb.Atom, len(pairs))
	for i := range pairs {
		fitted[i] = &pdb.Atom{X: super.At(i, 0), Y: super.At(i, 1), Z: super.At(i, 2)}
	}
	for i, atom := range moved.Atoms {
		row := len(pairs) + i
		atom.X = super.At(row, 0)
		atom.Y = super.At(row, 1)
		atom.Z = super.At(row, 2)
	}

	rmsd, err := pdb.RMSD(refCA, fitted)
	if err != nil {
		return nil, err
	}

	return &Result{Structure: moved, Pairs: pairs, RMSD: rmsd}, nil
}

func coordinates(atoms []*pdb.Atom) (*v3.Matrix, error) {
	data := make([]float64, 0, 3*len(atoms))
	for _, a := range atoms {
		data = append(data, a.X, a.Y, a.Z)
	}
	return v3.NewMatrix(data)
}
