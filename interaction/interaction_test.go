package interaction

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikz/vsdalign/pdb"
)

func twoChains(t *testing.T) *pdb.PDB {
	t.Helper()
	raw, err := os.ReadFile("../pdb/testdata/two_chains.pdb")
	require.NoError(t, err)
	p, err := pdb.NewPDBFromRaw(raw)
	require.NoError(t, err)
	return p
}

func TestWaters(t *testing.T) {
	p := twoChains(t)

	got := Waters(p, []int64{1, 2, 3, 10, 99}, DefaultWaterDistance)
	assert.Equal(t, map[int64]int{1: 0, 2: 1, 3: 0, 10: 0}, got)

	// a wider cutoff reaches the second water from the first residue
	got = Waters(p, []int64{1}, 4.5)
	assert.Equal(t, map[int64]int{1: 1}, got)
}

func TestWatersDryStructure(t *testing.T) {
	p := twoChains(t)
	dry, err := p.ResidueRange(2, 5)
	require.NoError(t, err)

	assert.Equal(t, map[int64]int{2: 0}, Waters(dry, []int64{2}, DefaultWaterDistance))
}

func TestNearWater(t *testing.T) {
	p := twoChains(t)
	lys := p.Chains["A"][2]
	require.NotNil(t, lys)

	var near int
	for _, w := range p.Solvent {
		if NearWater(lys, w, DefaultWaterDistance) {
			near++
		}
	}
	assert.Equal(t, 1, near)
}
