// Package uniprot discovers downloadable structures for a UniProt accession.
package uniprot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Structure sources.
const (
	SourcePDB       = "PDB"
	SourceAlphaFold = "AlphaFold"
)

const (
	entryURL     = "https://rest.uniprot.org/uniprotkb/"
	pdbURL       = "https://files.rcsb.org/download/%s.pdb"
	alphaFoldURL = "https://alphafold.ebi.ac.uk/files/AF-%s-F1-model_v4.pdb"
)

// Getter downloads a document.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// UniProt contains relevant protein data for a single accession.
type UniProt struct {
	ID         string       `json:"id"`         // accession ID
	URL        string       `json:"url"`        // page URL for the entry
	TXTURL     string       `json:"txtUrl"`     // TXT API URL for the entry.
	Name       string       `json:"name"`       // protein name
	Gene       string       `json:"gene"`       // gene code
	Organism   string       `json:"organism"`   // organism
	Sequence   string       `json:"sequence"`   // canonical sequence
	Structures []*Structure `json:"structures"` // experimental structures first, then predicted
	Raw        []byte       `json:"-"`          // TXT API raw bytes.
}

// Structure is a cross-referenced structure that can be downloaded.
type Structure struct {
	Source     string  `json:"source"`
	ID         string  `json:"id"`
	Method     string  `json:"method,omitempty"`
	Resolution float64 `json:"resolution,omitempty"` // angstroms, 0 if unknown
	Chains     string  `json:"chains,omitempty"`
	Coverage   float64 `json:"coverage,omitempty"` // fraction of the sequence covered, 0 if unknown
	URL        string  `json:"url"`
}

// Experimental returns true for structures solved by experiment.
func (s *Structure) Experimental() bool {
	return s.Source == SourcePDB
}

// NewUniProt downloads and parses the TXT entry of an accession.
func NewUniProt(ctx context.Context, g Getter, accession string) (*UniProt, error) {
	url := entryURL + accession
	raw, err := g.Get(ctx, url+".txt")
	if err != nil {
		return nil, fmt.Errorf("get UniProt accession %v: %w", accession, err)
	}

	return NewUniProtFromRaw(accession, raw)
}

// NewUniProtFromRaw parses a TXT entry.
func NewUniProtFromRaw(accession string, raw []byte) (*UniProt, error) {
	url := entryURL + accession
	u := &UniProt{
		ID:     accession,
		URL:    url,
		TXTURL: url + ".txt",
		Raw:    raw,
	}

	if err := u.extract(); err != nil {
		return nil, fmt.Errorf("parse UniProt entry %v: %w", accession, err)
	}

	return u, nil
}

// extract parses the TXT response.
func (u *UniProt) extract() error {
	err := u.extractSequence()
	if err != nil {
		return fmt.Errorf("get seq: %w", err)
	}

	u.extractNames()
	u.extractPDBs()
	u.extractAlphaFold()

	return nil
}

// extractPDBs parses the TXT for X-ray PDB cross-references. Other methods (NMR, EM) are ignored.
func (u *UniProt) extractPDBs() {
	// DR   PDB; 2A79; X-ray; 2.90 A; B=1-499.
	r := regexp.MustCompile(`(?m)^DR   PDB;[ ]*(.*?);[ ]*(X.*?ray);[ ]*([0-9.]*).*?;[ ]*(.*?)\.?$`)
	matches := r.FindAllStringSubmatch(string(u.Raw), -1)

	for _, m := range matches {
		res, _ := strconv.ParseFloat(m[3], 64)
		u.Structures = append(u.Structures, &Structure{
			Source:     SourcePDB,
			ID:         m[1],
			Method:     m[2],
			Resolution: res,
			Chains:     m[4],
			URL:        fmt.Sprintf(pdbURL, m[1]),
		})
	}
}

// extractAlphaFold parses the TXT for the AlphaFold DB model.
func (u *UniProt) extractAlphaFold() {
	r := regexp.MustCompile(`(?m)^DR   AlphaFoldDB;[ ]*(.*?);`)
	matches := r.FindAllStringSubmatch(string(u.Raw), -1)

	for _, m := range matches {
		u.Structures = append(u.Structures, &Structure{
			Source: SourceAlphaFold,
			ID:     "AF-" + m[1] + "-F1",
			URL:    fmt.Sprintf(alphaFoldURL, m[1]),
		})
	}
}

// extractSequence parses the canonical sequence.
func (u *UniProt) extractSequence() error {
	r := regexp.MustCompile("(?ms)^SQ.*?$(.*?)//") // https://regex101.com/r/ZTOYaJ/1
	matches := r.FindAllStringSubmatch(string(u.Raw), -1)

	if len(matches) == 0 {
		return errors.New("canonical sequence not found")
	}

	seqGroup := matches[0][1]
	sequence := strings.ReplaceAll(seqGroup, " ", "")
	sequence = strings.ReplaceAll(sequence, "\n", "")

	u.Sequence = sequence

	return nil
}

// extractNames parses protein, gene and organism names. Missing names are left empty.
func (u *UniProt) extractNames() {
	r := regexp.MustCompile("(?m)^DE.*?Name.*?Full=(.*?)(;| {)")
	if m := r.FindStringSubmatch(string(u.Raw)); m != nil {
		u.Name = m[1]
	}

	r = regexp.MustCompile("(?m)^GN.*?=(.*?)[;| ]")
	if m := r.FindStringSubmatch(string(u.Raw)); m != nil {
		u.Gene = m[1]
	}

	r = regexp.MustCompile("(?m)^OS[ ]+(.*?)\\.")
	if m := r.FindStringSubmatch(string(u.Raw)); m != nil {
		u.Organism = m[1]
	}
}

// PDBIDExists returns true if the given PDB ID is included in this
// UniProt entry, false otherwise.
func (u *UniProt) PDBIDExists(pdbID string) bool {
	for _, s := range u.Structures {
		if s.Source == SourcePDB && strings.EqualFold(s.ID, pdbID) {
			return true
		}
	}
	return false
}
