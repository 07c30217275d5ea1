package pdb

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
)

// PDB represents a single structure, either downloaded or produced by a superposition.
type PDB struct {
	ID         string  `json:"id"`         // structure identifier, if known
	Title      string  `json:"title"`      // TITLE record
	Method     string  `json:"method"`     // EXPDTA record
	Resolution float64 `json:"resolution"` // REMARK 2 resolution, 0 if not informed

	TotalLength int64 `json:"totalLength"` // sum of polymer residues of all chains

	Atoms     []*Atom  `json:"-"`         // ATOM and HETATM records in file order
	HetGroups []string `json:"hetGroups"` // HET groups in the structure

	Chains  map[string]map[int64]*Residue `json:"-"` // chain ID and residue number to polymer residue
	Solvent []*Residue                    `json:"-"` // water molecules, any chain

	RawPDB []byte `json:"-"` // PDB file raw data
}

// NewPDBFromRaw constructs a new instance from raw bytes, extracting ATOM, HETATM and header records.
func NewPDBFromRaw(raw []byte) (*PDB, error) {
	atoms := extractAtoms(raw)
	if len(atoms) == 0 {
		return nil, errors.New("atoms not found")
	}

	pdb := newPDBFromAtoms("", atoms)
	pdb.RawPDB = raw
	pdb.ExtractHeader()

	return pdb, nil
}

// newPDBFromAtoms builds a structure around an atom selection.
func newPDBFromAtoms(id string, atoms []*Atom) *PDB {
	pdb := &PDB{ID: id, Atoms: atoms}
	pdb.extractResidues()

	return pdb
}

// Clone returns a deep copy of the atoms and residue indexes.
func (pdb *PDB) Clone() *PDB {
	atoms := make([]*Atom, len(pdb.Atoms))
	for i, a := range pdb.Atoms {
		atoms[i] = a.clone()
	}

	c := newPDBFromAtoms(pdb.ID, atoms)
	c.Title = pdb.Title
	c.Method = pdb.Method
	c.Resolution = pdb.Resolution

	return c
}

// ChainIDs returns the polymer chain identifiers sorted lexicographically.
func (pdb *PDB) ChainIDs() []string {
	ids := make([]string, 0, len(pdb.Chains))
	for id := range pdb.Chains {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// ChainResidues returns the residues of a chain sorted by residue number.
func (pdb *PDB) ChainResidues(chain string) []*Residue {
	residues := make([]*Residue, 0, len(pdb.Chains[chain]))
	for _, res := range pdb.Chains[chain] {
		residues = append(residues, res)
	}
	sort.Slice(residues, func(i, j int) bool {
		return residues[i].Number < residues[j].Number
	})

	return residues
}

// ChainSequence returns the one letter sequence of a chain, ordered by residue number.
func (pdb *PDB) ChainSequence(chain string) string {
	var b bytes.Buffer
	for _, res := range pdb.ChainResidues(chain) {
		b.WriteString(res.Name1)
	}

	return b.String()
}

// IsProteinChain returns true if at least one residue of the chain is a standard aminoacid.
func (pdb *PDB) IsProteinChain(chain string) bool {
	for _, res := range pdb.Chains[chain] {
		if res.Name1 != "X" {
			return true
		}
	}
	return false
}

// ResidueCount returns the number of polymer and solvent residues.
func (pdb *PDB) ResidueCount() int {
	return int(pdb.TotalLength) + len(pdb.Solvent)
}

// Bytes serializes the structure as PDB text.
func (pdb *PDB) Bytes() []byte {
	var b bytes.Buffer
	for _, atom := range pdb.Atoms {
		b.WriteString(atom.Format())
		b.WriteByte('\n')
	}
	b.WriteString("END\n")

	return b.Bytes()
}

// String implements fmt.Stringer.
func (pdb *PDB) String() string {
	return fmt.Sprintf("%s (%d chains, %d residues, %d atoms)", pdb.ID, len(pdb.Chains), pdb.ResidueCount(), len(pdb.Atoms))
}
