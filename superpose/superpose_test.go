package superpose

import (
	"errors"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikz/vsdalign/pdb"
)

func loadStructure(t *testing.T) *pdb.PDB {
	t.Helper()
	raw, err := os.ReadFile("../pdb/testdata/two_chains.pdb")
	require.NoError(t, err)

	p, err := pdb.NewPDBFromRaw(raw)
	require.NoError(t, err)

	return p
}

// moved returns a copy of p rotated 90 degrees around Z, then 30 around X, and shifted.
func moved(p *pdb.PDB) *pdb.PDB {
	c := p.Clone()
	cos, sin := math.Cos(math.Pi/6), math.Sin(math.Pi/6)
	for _, a := range c.Atoms {
		x, y, z := -a.Y, a.X, a.Z
		y, z = cos*y-sin*z, sin*y+cos*z
		a.X, a.Y, a.Z = x+12.5, y-3.25, z+40
	}
	return c
}

func TestAlignRecoversCoordinates(t *testing.T) {
	ref := loadStructure(t)
	tgt := moved(ref)

	out, err := NewAligner().Align(ref.Bytes(), tgt.Bytes())
	require.NoError(t, err)

	got, err := pdb.NewPDBFromRaw(out)
	require.NoError(t, err)
	require.Len(t, got.Atoms, len(ref.Atoms))

	for i, a := range ref.Atoms {
		assert.InDelta(t, a.X, got.Atoms[i].X, 0.01, "atom %d x", a.Number)
		assert.InDelta(t, a.Y, got.Atoms[i].Y, 0.01, "atom %d y", a.Number)
		assert.InDelta(t, a.Z, got.Atoms[i].Z, 0.01, "atom %d z", a.Number)
	}

	// solvent travels with the protein
	assert.Len(t, got.Solvent, 3)
}

func TestSuperposeDifferentResidueCounts(t *testing.T) {
	full := loadStructure(t)
	ref, err := full.ResidueRange(1, 5)
	require.NoError(t, err)

	res, err := NewAligner().Superpose(ref, moved(full))
	require.NoError(t, err)

	assert.Len(t, res.Pairs, 5)
	assert.InDelta(t, 0, res.RMSD, 0.01)
	assert.Equal(t, full.ResidueCount(), res.Structure.ResidueCount())

	b := res.Structure.Chains["B"][12].CA()
	want := full.Chains["B"][12].CA()
	assert.InDelta(t, want.X, b.X, 0.01)
	assert.InDelta(t, want.Y, b.Y, 0.01)
	assert.InDelta(t, want.Z, b.Z, 0.01)
}

func TestSuperposeDoesNotModifyInput(t *testing.T) {
	ref := loadStructure(t)
	tgt := moved(ref)
	x := tgt.Atoms[0].X

	_, err := NewAligner().Superpose(ref, tgt)
	require.NoError(t, err)
	assert.Equal(t, x, tgt.Atoms[0].X)
}

func TestSuperposeNoAlignableAtoms(t *testing.T) {
	full := loadStructure(t)
	water, err := full.ResidueRange(101, 102)
	require.NoError(t, err)

	_, err = NewAligner().Superpose(water, full)
	assert.True(t, errors.Is(err, ErrNoAlignableAtoms))

	two, err := full.ResidueRange(1, 2)
	require.NoError(t, err)

	_, err = NewAligner().Superpose(two, full)
	assert.True(t, errors.Is(err, ErrNoAlignableAtoms))
}

func TestAlignMissingReference(t *testing.T) {
	_, err := NewAligner().Align(nil, loadStructure(t).Bytes())

	var mre *MissingReferenceError
	assert.True(t, errors.As(err, &mre))
}

func TestPairResidues(t *testing.T) {
	full := loadStructure(t)
	a, err := full.ResidueRange(1, 5)
	require.NoError(t, err)

	// MKVLA against MKVLAAKVLG: all five reference residues pair with chain A
	pairs := pairResidues(polymerResidues(a), polymerResidues(full))
	require.Len(t, pairs, 5)
	for i, p := range pairs {
		assert.Equal(t, p.Reference.Number, p.Target.Number, "pair %d", i)
		assert.Equal(t, "A", p.Target.Chain)
	}

	assert.Empty(t, pairResidues(nil, polymerResidues(full)))
}

func withCA(number int64, name string) *pdb.Residue {
	r := pdb.NewResidue("A", number, name)
	r.Atoms = []*pdb.Atom{{Name: "CA", Residue: name, Chain: "A", ResidueNumber: number}}
	return r
}

func TestPairResiduesSurplusTargetTrails(t *testing.T) {
	ref := []*pdb.Residue{withCA(1, "GLY"), withCA(2, "ALA")}
	tgt := []*pdb.Residue{withCA(1, "GLY"), withCA(2, "ALA"), withCA(3, "ALA")}

	pairs := pairResidues(ref, tgt)
	require.Len(t, pairs, 2)
	assert.Equal(t, int64(1), pairs[0].Target.Number)
	assert.Equal(t, int64(2), pairs[1].Target.Number)

	// residues without an alpha carbon take part in the alignment but are never paired
	tgt[1].Atoms = nil
	pairs = pairResidues(ref, tgt)
	require.Len(t, pairs, 1)
	assert.Equal(t, int64(1), pairs[0].Target.Number)
}
