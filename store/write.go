package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Candidate sources.
const (
	SourcePDB       = "PDB"
	SourceAlphaFold = "AlphaFold"
)

// UniProtEntry is an alignment with at least one validated zone.
type UniProtEntry struct {
	ID            int64  `gorm:"column:alignment_id"`
	Accession     string `gorm:"column:source_id"`
	Sequence      string `gorm:"column:seq"`
	HasStructures bool   `gorm:"column:has_structures"`
}

// FoldSeekEntry is a FoldSeek hit with a downloadable model and at least one validated zone.
type FoldSeekEntry struct {
	ID         int64  `gorm:"column:alignment_detail_id"`
	FoldSeekID int64  `gorm:"column:foldseek_id"`
	Target     string `gorm:"column:target"`
	URL        string `gorm:"column:hyperlink"`
	Start      int64  `gorm:"column:start_pos"`
	End        int64  `gorm:"column:end_pos"`
}

// CandidateRow is a structure that can be downloaded for an accession.
type CandidateRow struct {
	Source     string  `gorm:"column:source"`
	RecordID   int64   `gorm:"column:record_id"`
	Identifier string  `gorm:"column:identifier"`
	Resolution *string `gorm:"column:resolution"`
	URL        string  `gorm:"column:download_link"`
}

// UniProtEntries returns the UniProt alignments that carry validated zones, ordered by ID.
// HasStructures reports whether any structure candidate is flagged for the accession.
func (s *Store) UniProtEntries(ctx context.Context) ([]UniProtEntry, error) {
	var entries []UniProtEntry
	err := s.db.WithContext(ctx).Raw(`
		SELECT a.alignment_id, a.source_id, a.seq,
			EXISTS (
				SELECT 1 FROM "ThreeDStructures" td
				WHERE td.accession_number = a.source_id AND (td.has_pdb = ? OR td.has_alphafold = ?)
			) AS has_structures
		FROM "Alignments" a
		WHERE EXISTS (
			SELECT 1 FROM "AlignedZones" az
			WHERE az.alignment_id = a.alignment_id AND az.vsd_valido = ?
		)
		ORDER BY a.alignment_id`, true, true, true).Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("uniprot entries: %w", err)
	}

	return entries, nil
}

// FoldSeekEntries returns the FoldSeek alignments that can be superposed, ordered by ID.
// Hits from the gmgcl database have no downloadable model and are skipped.
func (s *Store) FoldSeekEntries(ctx context.Context) ([]FoldSeekEntry, error) {
	var entries []FoldSeekEntry
	err := s.db.WithContext(ctx).Raw(`
		SELECT fad.alignment_detail_id, f.foldseek_id, f.target, f.hyperlink,
			f."dbStartPos" AS start_pos, f."dbEndPos" AS end_pos
		FROM "FoldSeekAlignmentDetails" fad
		JOIN "FoldSeek" f ON f.foldseek_id = fad.foldseek_id
		WHERE f.alphafold_pdb IS NOT NULL AND f.database_name <> ?
			AND EXISTS (
				SELECT 1 FROM "FoldSeekAlignedZones" faz
				WHERE faz.alignment_detail_id = fad.alignment_detail_id AND faz.vsd_valido = ?
			)
		ORDER BY fad.alignment_detail_id`, "gmgcl_id", true).Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("foldseek entries: %w", err)
	}

	return entries, nil
}

// Candidates returns the downloadable structures for an accession, experimental entries first.
func (s *Store) Candidates(ctx context.Context, accession string) ([]CandidateRow, error) {
	db := s.db.WithContext(ctx)

	var experimental []CandidateRow
	err := db.Table(`"PDBEntries" p`).
		Select("'" + SourcePDB + "' AS source, p.pdb_entry_id AS record_id, p.pdb_id AS identifier, p.resolution, p.download_link").
		Joins(`JOIN "ThreeDStructures" t ON t.structure_id = p.structure_id`).
		Where("t.accession_number = ? AND t.has_pdb = ?", accession, true).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "p", Name: "pdb_entry_id"}}).
		Scan(&experimental).Error
	if err != nil {
		return nil, fmt.Errorf("pdb candidates for %s: %w", accession, err)
	}

	var predicted []CandidateRow
	err = db.Table(`"AlphaFoldData" af`).
		Select("'" + SourceAlphaFold + "' AS source, af.alphafold_id AS record_id, af.identifier, NULL AS resolution, af.download_link").
		Joins(`JOIN "ThreeDStructures" t ON t.structure_id = af.structure_id`).
		Where("t.accession_number = ? AND t.has_alphafold = ?", accession, true).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "af", Name: "alphafold_id"}}).
		Scan(&predicted).Error
	if err != nil {
		return nil, fmt.Errorf("alphafold candidates for %s: %w", accession, err)
	}

	return append(experimental, predicted...), nil
}

// ReferencePDB returns the curated reference structure of an alignment, or an empty string if the
// reference has none.
func (s *Store) ReferencePDB(ctx context.Context, key Key) (string, error) {
	var q string
	switch key.Kind {
	case UniProt:
		q = `SELECT r.pdb FROM "Alignments" a
			LEFT JOIN "ReferenceSequences" r ON r.reference_sequence_id = a.reference_sequence_id
			WHERE a.alignment_id = ?`
	case FoldSeek:
		q = `SELECT r.pdb FROM "FoldSeekAlignmentDetails" fad
			LEFT JOIN "FoldSeek" f ON f.foldseek_id = fad.foldseek_id
			LEFT JOIN "ReferenceSequences" r ON r.reference_sequence_id = f.id_referencia
			WHERE fad.alignment_detail_id = ?`
	default:
		return "", fmt.Errorf("reference for %s: unknown source", key)
	}

	var rows []struct {
		PDB *string `gorm:"column:pdb"`
	}
	if err := s.db.WithContext(ctx).Raw(q, key.ID).Scan(&rows).Error; err != nil {
		return "", fmt.Errorf("reference for %s: %w", key, err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("reference for %s: %w", key, ErrNotFound)
	}
	if rows[0].PDB == nil {
		return "", nil
	}

	return *rows[0].PDB, nil
}

// SaveSuperposition overwrites the superposed structure of an alignment in a single keyed update.
// FoldSeek alignments have no provenance column, so provenance is only stored for UniProt.
func (s *Store) SaveSuperposition(ctx context.Context, key Key, structure []byte, provenance string) error {
	db := s.db.WithContext(ctx)
	text := string(structure)

	var res *gorm.DB
	switch key.Kind {
	case UniProt:
		res = db.Model(&Alignment{}).
			Where("alignment_id = ?", key.ID).
			Updates(map[string]interface{}{"pdb": text, "success_info": provenance})
	case FoldSeek:
		res = db.Model(&FoldSeekAlignmentDetail{}).
			Where("alignment_detail_id = ?", key.ID).
			Update("pdb", text)
	default:
		return fmt.Errorf("save %s: unknown source", key)
	}

	if res.Error != nil {
		return fmt.Errorf("save %s: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("save %s: %w", key, ErrNotFound)
	}

	return nil
}
