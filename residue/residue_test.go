package residue

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikz/vsdalign/pdb"
)

func mapping(from int64, names ...string) pdb.ResidueMapping {
	ids := make([]pdb.ResidueID, len(names))
	for i, n := range names {
		ids[i] = pdb.ResidueID{Number: from + int64(i), Name: n}
	}
	return pdb.NewResidueMapping(ids...)
}

func eightResidues() pdb.ResidueMapping {
	return mapping(10, "ALA", "ASX", "CYS", "ASP", "GLU", "PHE", "GLY", "HIS")
}

func TestUngap(t *testing.T) {
	assert.Equal(t, "ABCD", Ungap("-A-BC--D-"))
	assert.Equal(t, "", Ungap("---"))
}

func TestZoneResidues(t *testing.T) {
	m := eightResidues()

	tests := []struct {
		name     string
		full     string
		fragment string
		want     []int64
	}{
		{"contiguous fragment", "ABCDEFGH", "CDE", []int64{12, 13, 14}},
		{"absent fragment", "ABCDEFGH", "ZZZ", []int64{}},
		{"gapped full sequence", "AB--CDE-FGH", "CDE", []int64{12, 13, 14}},
		{"gapped fragment", "ABCDEFGH", "C-D-E", []int64{12, 13, 14}},
		{"first occurrence wins", "ABCABCAB", "CA", []int64{12, 13}},
		{"stops at end of structure", "ABCDEFGHIJ", "GHIJ", []int64{16, 17}},
		{"empty fragment", "ABCDEFGH", "--", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ZoneResidues(m, tt.full, tt.fragment))
		})
	}
}

func TestZoneResiduesUnsortedMapping(t *testing.T) {
	m := pdb.ResidueMapping{{Number: 14}, {Number: 10}, {Number: 12}, {Number: 11}, {Number: 13}}
	assert.Equal(t, []int64{12, 13}, ZoneResidues(m, "ABCDE", "CD"))
}

func TestZoneResiduesDeterministic(t *testing.T) {
	m := eightResidues()
	first := ZoneResidues(m, "ABCDEFGH", "DEF")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ZoneResidues(m, "ABCDEFGH", "DEF"))
	}
}

func TestZoneMatches(t *testing.T) {
	m := eightResidues()

	got := ZoneMatches(m, "ABCDEFGH", "C-DE", "|:*|")
	assert.Equal(t, []Match{
		{Residue: 12, Symbol: "|"},
		{Residue: 13, Symbol: "*"},
		{Residue: 14, Symbol: "|"},
	}, got)

	// short match strings leave the symbol empty
	got = ZoneMatches(m, "ABCDEFGH", "CDE", "|")
	assert.Equal(t, "", got[2].Symbol)

	assert.Empty(t, ZoneMatches(m, "ABCDEFGH", "XYZ", "|||"))
}

func TestSequenceMap(t *testing.T) {
	m := mapping(100, "MET", "LYS", "VAL", "LEU")

	got := SequenceMap(m, "M-KIL", "| *||")
	assert.Equal(t, map[int64]Annotation{
		100: {AminoAcid: "M", Symbol: "|"},
		101: {AminoAcid: "K", Symbol: "*"},
		102: {AminoAcid: "I", Symbol: "|"},
		103: {AminoAcid: "L", Symbol: "|"},
	}, got)

	assert.Equal(t, []int64{101}, MutatedResidues(got, DefaultMismatch))
}

func TestSequenceMapLongerThanStructure(t *testing.T) {
	m := mapping(1, "MET", "LYS")

	got := SequenceMap(m, "MKVL", "||||")
	assert.Len(t, got, 2)
	assert.Contains(t, got, int64(2))
}

func TestMapZones(t *testing.T) {
	m := eightResidues()

	zones := MapZones(m, "AB-CDEFGH", []ZoneInput{
		{ZoneNumber: 1, Fragment: "BC", Match: "|*"},
		{ZoneNumber: 2, Fragment: "ZZ", Match: "||"},
		{ZoneNumber: 3, Fragment: "FG-H", Match: "*|.*"},
	})

	assert.Len(t, zones, 3)

	assert.Equal(t, int64(1), zones[0].ZoneNumber)
	assert.Equal(t, []int64{11, 12}, zones[0].Residues)
	assert.Equal(t, "BC", zones[0].Sequence)
	assert.Equal(t, "|*", zones[0].MatchPattern)
	assert.Equal(t, []int64{12}, Mutated(zones[0].Matches, DefaultMismatch))

	// absent zone is kept, empty
	assert.Equal(t, []int64{}, zones[1].Residues)
	assert.Empty(t, zones[1].Matches)

	assert.Equal(t, []int64{15, 16, 17}, zones[2].Residues)
	assert.Equal(t, "FGH", zones[2].Sequence)
	assert.Equal(t, []int64{15, 17}, Mutated(zones[2].Matches, DefaultMismatch))
}

func TestZoneResiduesModifiedResidue(t *testing.T) {
	var b strings.Builder
	var n int64
	for i, name := range []string{"GLY", "MSE", "LYS", "VAL"} {
		record := "ATOM"
		if name == "MSE" {
			record = "HETATM"
		}
		for _, atom := range []string{"N", "CA", "C"} {
			n++
			a := &pdb.Atom{Record: record, Number: n, Name: atom, Residue: name, Chain: "A",
				ResidueNumber: int64(i + 1), X: float64(n), Occupancy: 1, Element: atom[:1]}
			b.WriteString(a.Format() + "\n")
		}
	}
	p, err := pdb.NewPDBFromRaw([]byte(b.String()))
	require.NoError(t, err)

	m := p.Mapping()
	assert.Equal(t, []int64{3, 4}, ZoneResidues(m, "GMKV", "KV"))
	assert.Equal(t, []int64{2, 3}, ZoneResidues(m, "G-MKV", "M-K"))
}
