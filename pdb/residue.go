package pdb

import (
	"strconv"
	"strings"
)

var residueNames = [...][3]string{
	{"Alanine", "Ala", "A"},
	{"Arginine", "Arg", "R"},
	{"Asparagine", "Asn", "N"},
	{"Aspartic acid", "Asp", "D"},
	{"Cysteine", "Cys", "C"},
	{"Glutamic acid", "Glu", "E"},
	{"Glutamine", "Gln", "Q"},
	{"Glycine", "Gly", "G"},
	{"Histidine", "His", "H"},
	{"Isoleucine", "Ile", "I"},
	{"Leucine", "Leu", "L"},
	{"Lysine", "Lys", "K"},
	{"Methionine", "Met", "M"},
	{"Phenylalanine", "Phe", "F"},
	{"Proline", "Pro", "P"},
	{"Serine", "Ser", "S"},
	{"Threonine", "Thr", "T"},
	{"Tryptophan", "Trp", "W"},
	{"Tyrosine", "Tyr", "Y"},
	{"Valine", "Val", "V"},
}

// Residue represents a single residue from the PDB structure.
type Residue struct {
	Chain   string  `json:"chain"`
	Number  int64   `json:"number"`
	ResName string  `json:"resName"` // residue name as found in the file
	InsCode string  `json:"insCode,omitempty"`
	Name    string  `json:"-"`
	Name1   string  `json:"name1"`
	Name3   string  `json:"-"`
	Atoms   []*Atom `json:"-"`
}

// AminoacidNames receives a name and returns a 3-sized array of all the possible representations as a string.
// Modified aminoacids resolve to their parent.
func AminoacidNames(input string) (string, string, string) {
	s := titleCase(input)
	if parent, ok := modifiedResidues[strings.ToUpper(input)]; ok {
		s = titleCase(parent)
	}
	for _, res := range residueNames {
		for _, n := range res {
			if n == s {
				return res[0], res[1], res[2]
			}
		}
	}

	return input, "Unk", "X"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// NewResidue constructs a new residue given a chain, position and aminoacid name.
// The name is case-insensitive and can be either a full aminoacid name, one or three letter abbreviation.
func NewResidue(chain string, pos int64, input string) *Residue {
	name, abbrv3, abbrv1 := AminoacidNames(input)

	res := &Residue{
		Chain:   chain,
		Number:  pos,
		ResName: input,
		Name:    name,
		Name1:   abbrv1,
		Name3:   abbrv3,
	}

	return res
}

// CA returns the alpha carbon of the residue, or nil if it was not modelled.
func (r *Residue) CA() *Atom {
	for _, atom := range r.Atoms {
		if atom.Name == "CA" && (atom.AltLoc == "" || atom.AltLoc == "A") {
			return atom
		}
	}
	return nil
}

// extractResidues groups atoms into polymer chains and solvent molecules. Residues are keyed by
// number: a residue sharing the number of an earlier one through an insertion code is left out of
// the chain, its atoms are kept in the structure.
func (pdb *PDB) extractResidues() {
	chains := make(map[string]map[int64]*Residue)
	solvent := make(map[string]*Residue)
	pdb.Solvent = nil
	pdb.HetGroups = nil
	pdb.TotalLength = 0

	var lastHet string
	for _, atom := range pdb.Atoms {
		if atom.Record == "HETATM" && atom.Residue != lastHet {
			lastHet = atom.Residue
			pdb.addHetGroup(lastHet)
		}

		if atom.IsSolvent() {
			key := atom.Chain + ":" + atom.Residue + ":" + strconv.FormatInt(atom.ResidueNumber, 10) + atom.InsCode
			res, ok := solvent[key]
			if !ok {
				res = NewResidue(atom.Chain, atom.ResidueNumber, atom.Residue)
				solvent[key] = res
				pdb.Solvent = append(pdb.Solvent, res)
			}
			res.Atoms = append(res.Atoms, atom)
			continue
		}

		if !atom.IsPolymer() {
			continue
		}

		chain, ok := chains[atom.Chain]
		if !ok {
			chain = make(map[int64]*Residue)
			chains[atom.Chain] = chain
		}

		res, ok := chain[atom.ResidueNumber]
		if !ok {
			res = NewResidue(atom.Chain, atom.ResidueNumber, atom.Residue)
			res.InsCode = atom.InsCode
			chain[atom.ResidueNumber] = res
		}
		if atom.InsCode != res.InsCode {
			continue
		}
		res.Atoms = append(res.Atoms, atom)
	}

	pdb.Chains = chains
	for _, chain := range pdb.Chains {
		pdb.TotalLength += int64(len(chain))
	}
}

func (pdb *PDB) addHetGroup(name string) {
	for _, het := range pdb.HetGroups {
		if het == name {
			return
		}
	}
	pdb.HetGroups = append(pdb.HetGroups, name)
}
