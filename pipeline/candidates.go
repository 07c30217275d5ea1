package pipeline

import (
	"context"
	"strconv"

	"github.com/tikz/vsdalign/store"
	"github.com/tikz/vsdalign/uniprot"
)

// UniProtFinder discovers candidate structures from the UniProt entry of an accession.
type UniProtFinder struct {
	Getter uniprot.Getter
}

// Candidates returns the X-ray structures and the AlphaFold model cross-referenced by the accession.
func (f *UniProtFinder) Candidates(ctx context.Context, accession string) ([]StructureRecord, error) {
	u, err := uniprot.Discover(ctx, f.Getter, accession)
	if err != nil {
		return nil, err
	}

	return Records(u.Structures), nil
}

// Records converts discovered structures into candidate records.
func Records(structures []*uniprot.Structure) []StructureRecord {
	records := make([]StructureRecord, 0, len(structures))
	for _, s := range structures {
		r := StructureRecord{Source: store.SourceAlphaFold, Identifier: s.ID, URL: s.URL}
		if s.Experimental() {
			r.Source = store.SourcePDB
			if s.Resolution > 0 {
				r.Resolution = strconv.FormatFloat(s.Resolution, 'f', 2, 64)
			}
		}
		records = append(records, r)
	}
	return records
}
