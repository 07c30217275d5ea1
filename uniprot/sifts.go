package uniprot

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const siftsURL = "https://www.ebi.ac.uk/pdbe/api/mappings/best_structures/"

// SIFTSBestStructure is one entry of the SIFTS best structures mapping.
type SIFTSBestStructure struct {
	PDBID      string  `json:"pdb_id"`
	Resolution float64 `json:"resolution"`
	Method     string  `json:"experimental_method"`
	Coverage   float64 `json:"coverage"`
}

// getSIFTSBestStructures retrieves the X-ray structures mapped to an accession, one per PDB ID,
// in the order SIFTS ranks them.
func getSIFTSBestStructures(ctx context.Context, g Getter, accession string) ([]SIFTSBestStructure, error) {
	raw, err := g.Get(ctx, siftsURL+accession)
	if err != nil {
		return nil, fmt.Errorf("get SIFTS best structures %v: %w", accession, err)
	}

	unps := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &unps); err != nil { // Empty JSON, no crystals
		return []SIFTSBestStructure{}, nil
	}

	var structures []SIFTSBestStructure
	if err := json.Unmarshal(unps[accession], &structures); err != nil {
		return nil, fmt.Errorf("unmarshal UniProt keys: %w", err)
	}

	seen := make(map[string]bool)
	var unique []SIFTSBestStructure
	for _, s := range structures {
		id := strings.ToUpper(s.PDBID)
		if seen[id] || s.Method != "X-ray diffraction" {
			continue
		}
		seen[id] = true
		s.PDBID = id
		unique = append(unique, s)
	}

	return unique, nil
}

// addSIFTS appends the X-ray structures SIFTS maps to the accession that the entry does not
// cross-reference.
func (u *UniProt) addSIFTS(best []SIFTSBestStructure) {
	for _, b := range best {
		if u.PDBIDExists(b.PDBID) {
			continue
		}
		u.Structures = append(u.Structures, &Structure{
			Source:     SourcePDB,
			ID:         b.PDBID,
			Method:     "X-ray",
			Resolution: b.Resolution,
			URL:        fmt.Sprintf(pdbURL, b.PDBID),
		})
	}
}

// rankByCoverage orders the experimental structures by SIFTS rank and fills in their coverage.
// Structures SIFTS does not list keep their relative order after the ranked ones. Predicted
// structures stay last.
func (u *UniProt) rankByCoverage(best []SIFTSBestStructure) {
	rank := make(map[string]int, len(best))
	for i, b := range best {
		rank[b.PDBID] = i
	}

	for _, s := range u.Structures {
		if i, ok := rank[strings.ToUpper(s.ID)]; ok {
			s.Coverage = best[i].Coverage
			if s.Resolution == 0 {
				s.Resolution = best[i].Resolution
			}
		}
	}

	position := func(s *Structure) int {
		if !s.Experimental() {
			return len(best) + 1
		}
		if i, ok := rank[strings.ToUpper(s.ID)]; ok {
			return i
		}
		return len(best)
	}

	sort.SliceStable(u.Structures, func(i, j int) bool {
		return position(u.Structures[i]) < position(u.Structures[j])
	})
}

// Discover returns the downloadable structures of an accession, experimental first. When the SIFTS
// mapping is available it adds the X-ray structures missing from the entry and orders experimental
// structures by it; otherwise entry order is kept.
func Discover(ctx context.Context, g Getter, accession string) (*UniProt, error) {
	u, err := NewUniProt(ctx, g, accession)
	if err != nil {
		return nil, err
	}

	best, err := getSIFTSBestStructures(ctx, g, accession)
	if err == nil {
		u.addSIFTS(best)
		u.rankByCoverage(best)
	} else {
		u.rankByCoverage(nil)
	}

	return u, nil
}
