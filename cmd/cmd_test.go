package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikz/vsdalign/store"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func seedDB(t *testing.T) string {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "vsd.db")

	out, err := run(t, "--db-dsn", dsn, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "migrated sqlite database")

	raw, err := os.ReadFile("../pdb/testdata/two_chains.pdb")
	require.NoError(t, err)
	structure := string(raw)
	info := "PDB, 1XYZ, 1.80"

	st, err := store.Open(store.Config{Driver: store.DriverSQLite, DSN: dsn})
	require.NoError(t, err)
	defer st.Close()
	rows := []interface{}{
		&store.Protein{AccessionNumber: "P16389", Name: "KCNA2"},
		&store.Alignment{ID: 1, SourceID: "P16389", Similarity: 0.8182,
			SeqRef: "MKVQLAGKVLG", Seq: "MKV-LAAKVLG", Match: "||| ||*||||", PDB: &structure, SuccessInfo: &info},
		&store.AlignedZone{ID: 1, AlignmentID: 1, AlignedSequence: "AKV", Match: "*||", VSDValido: true},
		&store.Alignment{ID: 2, SourceID: "P00002", Seq: "A", SeqRef: "A", Match: "|"},
	}
	for _, r := range rows {
		require.NoError(t, st.DB().Create(r).Error)
	}

	return dsn
}

func TestShow(t *testing.T) {
	dsn := seedDB(t)

	out, err := run(t, "--db-dsn", dsn, "show", "uniprot", "1", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "alignment_main:")
	assert.Contains(t, out, "81.82")
	assert.Contains(t, out, "match_pattern:")
	assert.Contains(t, out, "*||")

	_, err = run(t, "--db-dsn", dsn, "show", "uniprot", "404", "--format", "json")
	assert.EqualError(t, err, "uniprot/404: no such alignment")

	_, err = run(t, "--db-dsn", dsn, "show", "pfam", "1")
	assert.Error(t, err)

	_, err = run(t, "--db-dsn", dsn, "show", "uniprot", "one")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	dsn := seedDB(t)

	out, err := run(t, "--db-dsn", dsn, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "uniprot/1")
	assert.Contains(t, out, "KCNA2")
	assert.NotContains(t, out, "uniprot/2")
}

func TestAlignWithoutEntries(t *testing.T) {
	dsn := seedDB(t)

	out, err := run(t, "--db-dsn", dsn, "align", "--source", "foldseek")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "--db-dsn", dsn, "align", "--source", "pfam")
	assert.Error(t, err)
}

func TestInvalidSettings(t *testing.T) {
	_, err := run(t, "--db-driver", "mysql", "migrate")
	assert.Error(t, err)
	_, err = run(t, "--db-driver", "sqlite", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "migrate")
	assert.Error(t, err)
	cfgFile = ""
}

func TestSourceKinds(t *testing.T) {
	kinds, err := sourceKinds("all")
	require.NoError(t, err)
	assert.Equal(t, store.Kinds, kinds)

	kinds, err = sourceKinds("foldseek")
	require.NoError(t, err)
	assert.Equal(t, []store.Kind{store.FoldSeek}, kinds)

	_, err = sourceKinds("pdb")
	assert.Error(t, err)
}
