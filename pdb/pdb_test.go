package pdb

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func LoadTestFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, "cannot open file")

	return data
}

func loadTwoChains(t *testing.T) *PDB {
	t.Helper()
	p, err := NewPDBFromRaw(LoadTestFile(t, "./testdata/two_chains.pdb"))
	require.NoError(t, err)

	return p
}

func TestChains(t *testing.T) {
	p := loadTwoChains(t)

	assert.Equal(t, int64(10), p.TotalLength)
	assert.Len(t, p.Solvent, 3)
	assert.Equal(t, []string{"A", "B"}, p.ChainIDs())
	assert.ElementsMatch(t, []string{"HOH", "SO4"}, p.HetGroups)

	assert.Equal(t, "MKVLA", p.ChainSequence("A"))
	assert.Equal(t, "AKVLG", p.ChainSequence("B"))

	res := p.Chains["B"][11]
	require.NotNil(t, res)
	assert.Equal(t, "Lysine", res.Name)
	assert.Equal(t, "LYS", res.ResName)
	assert.Len(t, res.Atoms, 3)
	assert.NotNil(t, res.CA())
}

func TestHeader(t *testing.T) {
	p := loadTwoChains(t)

	assert.Equal(t, "TEST STRUCTURE FOR CHAIN EXTRACTION", p.Title)
	assert.Equal(t, "X-RAY DIFFRACTION", p.Method)
	assert.Equal(t, 1.8, p.Resolution)
}

func TestNewPDBFromRawEmpty(t *testing.T) {
	_, err := NewPDBFromRaw([]byte("HEADER    NOTHING\nEND\n"))
	assert.Error(t, err)
}

func TestFormatRoundTrip(t *testing.T) {
	p := loadTwoChains(t)

	for _, atom := range p.Atoms {
		parsed := parseAtom(atom.Format())
		assert.Equal(t, atom, parsed)
	}

	again, err := NewPDBFromRaw(p.Bytes())
	require.NoError(t, err)
	assert.Equal(t, p.ResidueCount(), again.ResidueCount())
	assert.Equal(t, len(p.Atoms), len(again.Atoms))
}

func TestResidueRange(t *testing.T) {
	p := loadTwoChains(t)

	tests := []struct {
		name        string
		start, end  int64
		wantPolymer int64
		wantSolvent int
		wantErr     error
	}{
		{"whole structure", -1000, 10000, 10, 3, nil},
		{"second chain", 10, 14, 5, 0, nil},
		{"single residue keeps water with same number", 1, 1, 1, 1, nil},
		{"solvent only", 101, 102, 0, 2, nil},
		{"nothing in range", 500, 600, 0, 0, ErrEmptySelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cut, err := p.ResidueRange(tt.start, tt.end)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPolymer, cut.TotalLength)
			assert.Len(t, cut.Solvent, tt.wantSolvent)
		})
	}
}

func TestResidueRangeFullCount(t *testing.T) {
	p := loadTwoChains(t)

	cut, err := p.ResidueRange(-9999, 9999)
	require.NoError(t, err)
	assert.Equal(t, p.ResidueCount(), cut.ResidueCount())
	assert.Equal(t, len(p.Atoms), len(cut.Atoms))
}

func TestChainBySequence(t *testing.T) {
	p := loadTwoChains(t)

	tests := []struct {
		name      string
		seq       string
		wantChain string
		wantSeq   string
	}{
		{"both chains qualify, first identifier wins", "KVL", "A", "MKVLA"},
		{"only second chain qualifies", "AKV", "B", "AKVLG"},
		{"lowercase input", "kvlg", "B", "AKVLG"},
		{"no chain qualifies falls back to first protein chain", "WWWW", "A", "MKVLA"},
		{"empty sequence falls back to first protein chain", "", "A", "MKVLA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cut, chain, err := p.ChainBySequence(tt.seq)
			require.NoError(t, err)
			assert.Equal(t, tt.wantChain, chain)
			assert.Equal(t, []string{tt.wantChain}, cut.ChainIDs())
			assert.Equal(t, tt.wantSeq, cut.ChainSequence(tt.wantChain))
			// solvent from every chain is kept, the sulfate is not
			assert.Len(t, cut.Solvent, 3)
			assert.Equal(t, []string{"HOH"}, cut.HetGroups)
		})
	}
}

func TestChainBySequenceNoProtein(t *testing.T) {
	p := loadTwoChains(t)
	water, err := p.ResidueRange(101, 102)
	require.NoError(t, err)

	_, _, err = water.ChainBySequence("MKV")
	assert.True(t, errors.Is(err, ErrEmptySelection))
}

func TestMapping(t *testing.T) {
	p := loadTwoChains(t)

	m := p.Mapping()
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 10, 11, 12, 13, 14}, m.Numbers())
	assert.Equal(t, "MET", m[0].Name)
	assert.Equal(t, "GLY", m[9].Name)
}

func TestNewResidueMapping(t *testing.T) {
	m := NewResidueMapping(
		ResidueID{Number: 12, Name: "ALA"},
		ResidueID{Number: 3, Name: "GLY"},
		ResidueID{Number: 12, Name: "SER"},
		ResidueID{Number: 7, Name: "LYS"},
	)

	assert.Equal(t, []int64{3, 7, 12}, m.Numbers())
	assert.Equal(t, "ALA", m[2].Name)

	unsorted := ResidueMapping{{Number: 5}, {Number: 2}}
	assert.Equal(t, []int64{2, 5}, unsorted.Sorted().Numbers())
	assert.Equal(t, []int64{5, 2}, unsorted.Numbers())
}

func TestRMSD(t *testing.T) {
	a := []*Atom{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}}
	b := []*Atom{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}}

	rmsd, err := RMSD(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, rmsd, 1e-9)

	_, err = RMSD(a, b[:1])
	assert.Error(t, err)
}

func TestWithSolvent(t *testing.T) {
	p := loadTwoChains(t)
	dry, err := p.ResidueRange(10, 14)
	require.NoError(t, err)
	require.Empty(t, dry.Solvent)

	wet := dry.WithSolvent(p)
	assert.Len(t, wet.Solvent, 3)
	assert.Equal(t, []string{"B"}, wet.ChainIDs())
	assert.Equal(t, len(dry.Atoms)+3, len(wet.Atoms))
	assert.Equal(t, 1.8, wet.Resolution)
	assert.Empty(t, dry.Solvent, "receiver is not modified")

	// structures that already carry water are returned unchanged
	assert.Same(t, p, p.WithSolvent(p))
	assert.Same(t, dry, dry.WithSolvent(nil))
}

func backbone(record, name, chain string, number int64, insCode string) []*Atom {
	var atoms []*Atom
	for i, n := range []string{"N", "CA", "C"} {
		atoms = append(atoms, &Atom{
			Record: record, Name: n, Residue: name, Chain: chain, ResidueNumber: number, InsCode: insCode,
			X: float64(number) * 3.8, Y: float64(i), Occupancy: 1, Element: n[:1],
		})
	}
	return atoms
}

func rawAtoms(atoms ...[]*Atom) []byte {
	var b strings.Builder
	var n int64
	for _, group := range atoms {
		for _, a := range group {
			n++
			a.Number = n
			b.WriteString(a.Format())
			b.WriteString("\n")
		}
	}
	b.WriteString("END\n")
	return []byte(b.String())
}

func TestModifiedResidues(t *testing.T) {
	se := &Atom{Record: "HETATM", Name: "SE", Residue: "MSE", Chain: "A", ResidueNumber: 2, X: 9, Occupancy: 1, Element: "SE"}
	ligand := &Atom{Record: "HETATM", Name: "C1", Residue: "NAG", Chain: "A", ResidueNumber: 301, Occupancy: 1, Element: "C"}
	p, err := NewPDBFromRaw(rawAtoms(
		backbone("ATOM", "GLY", "A", 1, ""),
		append(backbone("HETATM", "MSE", "A", 2, ""), se),
		backbone("ATOM", "LYS", "A", 3, ""),
		backbone("ATOM", "VAL", "A", 4, ""),
		[]*Atom{ligand},
	))
	require.NoError(t, err)

	assert.Equal(t, "GMKV", p.ChainSequence("A"))
	assert.Equal(t, []int64{1, 2, 3, 4}, p.Mapping().Numbers())
	assert.Equal(t, "MSE", p.Mapping()[1].Name)
	assert.ElementsMatch(t, []string{"MSE", "NAG"}, p.HetGroups)

	mse := p.Chains["A"][2]
	require.NotNil(t, mse)
	assert.Equal(t, "M", mse.Name1)
	assert.Equal(t, "Met", mse.Name3)
	assert.Len(t, mse.Atoms, 4)
	require.NotNil(t, mse.CA())

	chain, id, err := p.ChainBySequence("MKV")
	require.NoError(t, err)
	assert.Equal(t, "A", id)
	assert.Equal(t, "GMKV", chain.ChainSequence("A"))
	var het int
	for _, a := range chain.Atoms {
		assert.NotEqual(t, "NAG", a.Residue)
		if a.Residue == "MSE" {
			assert.Equal(t, "HETATM", a.Record)
			het++
		}
	}
	assert.Equal(t, 4, het)
}

func TestInsertionCodes(t *testing.T) {
	p, err := NewPDBFromRaw(rawAtoms(
		backbone("ATOM", "ALA", "A", 51, ""),
		backbone("ATOM", "SER", "A", 52, ""),
		backbone("ATOM", "GLY", "A", 52, "A"),
		backbone("ATOM", "TRP", "A", 53, ""),
	))
	require.NoError(t, err)

	assert.Equal(t, "ASW", p.ChainSequence("A"))
	assert.Equal(t, []int64{51, 52, 53}, p.Mapping().Numbers())

	res := p.Chains["A"][52]
	require.NotNil(t, res)
	assert.Equal(t, "SER", res.ResName)
	assert.Empty(t, res.InsCode)
	require.Len(t, res.Atoms, 3)
	for _, a := range res.Atoms {
		assert.Empty(t, a.InsCode)
	}

	// the inserted residue is not part of the chain but stays in the structure
	assert.Len(t, p.Atoms, 12)
	chain, _, err := p.ChainBySequence("ASW")
	require.NoError(t, err)
	assert.Len(t, chain.Atoms, 12)
}
