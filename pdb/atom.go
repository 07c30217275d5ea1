package pdb

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Atom represents a single atom in the structure.
// It contains all the columns from an ATOM or HETATM record in a PDB file.
type Atom struct {
	// PDB columns for the ATOM tag
	Record        string
	Number        int64
	Name          string
	AltLoc        string
	Residue       string
	Chain         string
	ResidueNumber int64
	InsCode       string
	X             float64
	Y             float64
	Z             float64
	Occupancy     float64
	BFactor       float64
	Element       string
	Charge        string
}

// solventNames are the residue names treated as water.
var solventNames = map[string]bool{
	"HOH": true,
	"WAT": true,
}

var recordRegex = regexp.MustCompile("(?m)^(ATOM  |HETATM).*$")

// IsSolvent returns true if the atom belongs to a water molecule, regardless of its record name.
func (a *Atom) IsSolvent() bool {
	return solventNames[a.Residue]
}

// modifiedResidues maps modified aminoacids, usually deposited as HETATM records, to their parent.
var modifiedResidues = map[string]string{
	"MSE": "MET", // selenomethionine
	"SEP": "SER", // phosphoserine
	"TPO": "THR", // phosphothreonine
	"PTR": "TYR", // phosphotyrosine
	"HYP": "PRO", // hydroxyproline
	"MLY": "LYS", // dimethyllysine
	"CSO": "CYS", // hydroxycysteine
	"CME": "CYS",
}

// IsPolymer returns true for ATOM records that are not solvent, and for HETATM records of
// modified aminoacids.
func (a *Atom) IsPolymer() bool {
	if a.IsSolvent() {
		return false
	}
	return a.Record == "ATOM" || modifiedResidues[a.Residue] != ""
}

// Format renders the atom as a fixed width PDB record.
func (a *Atom) Format() string {
	name := a.Name
	if len(name) < 4 && len(a.Element) < 2 {
		name = " " + name
	}

	// https://www.wwpdb.org/documentation/file-format-content/format33/sect9.html#ATOM
	return fmt.Sprintf("%-6s%5d %-4s%1s%3s %1s%4d%1s   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s%2s",
		a.Record, a.Number, name, a.AltLoc, a.Residue, a.Chain, a.ResidueNumber, a.InsCode,
		a.X, a.Y, a.Z, a.Occupancy, a.BFactor, a.Element, a.Charge)
}

func (a *Atom) clone() *Atom {
	c := *a
	return &c
}

// extractAtoms extracts both ATOM and HETATM records, in file order.
func extractAtoms(raw []byte) []*Atom {
	var atoms []*Atom

	matches := recordRegex.FindAllString(string(raw), -1)
	for _, match := range matches {
		atoms = append(atoms, parseAtom(match))
	}

	return atoms
}

func parseAtom(line string) *Atom {
	line = strings.TrimRight(line, "\r")
	if len(line) < 80 {
		line = fmt.Sprintf("%-80s", line)
	}

	var atom Atom

	// https://www.wwpdb.org/documentation/file-format-content/format23/sect9.html#ATOM
	atom.Record = strings.TrimSpace(line[0:6])
	atom.Number, _ = strconv.ParseInt(strings.TrimSpace(line[6:11]), 10, 64)
	atom.Name = strings.TrimSpace(line[12:16])
	atom.AltLoc = strings.TrimSpace(line[16:17])
	atom.Residue = strings.TrimSpace(line[17:20])
	atom.Chain = strings.TrimSpace(line[21:22])
	atom.ResidueNumber, _ = strconv.ParseInt(strings.TrimSpace(line[22:26]), 10, 64)
	atom.InsCode = strings.TrimSpace(line[26:27])
	atom.X, _ = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	atom.Y, _ = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	atom.Z, _ = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	atom.Occupancy, _ = strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64)
	atom.BFactor, _ = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	atom.Element = strings.TrimSpace(line[76:78])
	atom.Charge = strings.TrimSpace(line[78:80])

	return &atom
}
