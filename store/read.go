package store

import (
	"context"
	"fmt"
	"strings"
)

// Separators used when per-zone values are aggregated into one text column.
const (
	ScalarSeparator   = ", "
	FragmentSeparator = " | "
	ChargeSeparator   = "| "
)

// MainRow is the primary alignment of a record and its structures.
type MainRow struct {
	Reference          string   `gorm:"column:reference"`
	Match              string   `gorm:"column:match"`
	Target             string   `gorm:"column:target"`
	Similarity         *float64 `gorm:"column:similarity"`
	Structure          *string  `gorm:"column:pdb"`
	ReferenceStructure *string  `gorm:"column:reference_pdb"`
	Provenance         *string  `gorm:"column:success_info"`
}

// ZoneTriple is a validated zone as reference fragment, match string and target fragment.
type ZoneTriple struct {
	Ref    string `gorm:"column:ref"`
	Match  string `gorm:"column:match"`
	Target string `gorm:"column:target"`
}

// ZoneColumns holds the validated zones of a record with every field aggregated into a delimited
// string, in zone ID order. Empty values are kept as empty items so that every list splits to Count items.
type ZoneColumns struct {
	Count               int    `gorm:"column:zone_count"`
	ZoneIDs             string `gorm:"column:zone_ids"`
	ReferenceZoneIDs    string `gorm:"column:reference_zone_ids"`
	ZoneNumbers         string `gorm:"column:zone_numbers"`
	Fragments           string `gorm:"column:fragments"`
	Matches             string `gorm:"column:matches"`
	Hydrophobicity      string `gorm:"column:hydrophobicity"`
	Volume              string `gorm:"column:volume"`
	DeltaHydrophobicity string `gorm:"column:delta_hydrophobicity"`
	DeltaVolume         string `gorm:"column:delta_volume"`
	ChargeTypes         string `gorm:"column:charge_types"`
	Charges             string `gorm:"column:charges"`
	ReferenceCharges    string `gorm:"column:reference_charges"`
}

// Selectable is a record whose superposition can be displayed.
type Selectable struct {
	Key   Key    `gorm:"-" json:"key"`
	ID    int64  `gorm:"column:id" json:"-"`
	Label string `gorm:"column:label" json:"label"`
	Name  string `gorm:"column:name" json:"name"`
}

// zoneTables describes where a source keeps its zones.
type zoneTables struct {
	table    string // zones table
	owner    string // column holding the alignment ID
	fragment string
	hydro    string
	volume   string
}

var zoneLayout = map[Kind]zoneTables{
	UniProt: {
		table:    "AlignedZones",
		owner:    "alignment_id",
		fragment: "aligned_sequence",
		hydro:    "hydrophobicity_aligned",
		volume:   "volume_aligned",
	},
	FoldSeek: {
		table:    "FoldSeekAlignedZones",
		owner:    "alignment_detail_id",
		fragment: "fragment",
		hydro:    "hydrophobicity",
		volume:   "volume",
	},
}

// MainRow returns the primary alignment of a record.
func (s *Store) MainRow(ctx context.Context, key Key) (*MainRow, error) {
	var q string
	switch key.Kind {
	case UniProt:
		q = `SELECT a.seq_ref AS reference, a."match" AS "match", a.seq AS target, a.similarity,
				a.pdb, r.pdb AS reference_pdb, a.success_info
			FROM "Alignments" a
			LEFT JOIN "ReferenceSequences" r ON r.reference_sequence_id = a.reference_sequence_id
			WHERE a.alignment_id = ?`
	case FoldSeek:
		q = `SELECT fad.reference_aligned AS reference, fad."match" AS "match", fad.target_aligned AS target,
				fad.similarity, fad.pdb, r.pdb AS reference_pdb, NULL AS success_info
			FROM "FoldSeekAlignmentDetails" fad
			LEFT JOIN "FoldSeek" f ON f.foldseek_id = fad.foldseek_id
			LEFT JOIN "ReferenceSequences" r ON r.reference_sequence_id = f.id_referencia
			WHERE fad.alignment_detail_id = ?`
	default:
		return nil, fmt.Errorf("alignment %s: unknown source", key)
	}

	var rows []MainRow
	if err := s.db.WithContext(ctx).Raw(q, key.ID).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("alignment %s: %w", key, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("alignment %s: %w", key, ErrNotFound)
	}

	return &rows[0], nil
}

// ZoneTriples returns the validated zones of a record in stored order. When joined is true only zones
// linked to an existing curated reference zone are returned; otherwise every validated zone is returned
// with its reference fragment looked up where the link resolves, empty where it does not.
func (s *Store) ZoneTriples(ctx context.Context, key Key, joined bool) ([]ZoneTriple, error) {
	layout, ok := zoneLayout[key.Kind]
	if !ok {
		return nil, fmt.Errorf("zones %s: unknown source", key)
	}

	join := "LEFT JOIN"
	if joined {
		join = "JOIN"
	}

	q := fmt.Sprintf(`SELECT COALESCE(rz.sequence_fragment, '') AS ref, COALESCE(z."match", '') AS "match",
			COALESCE(z.%s, '') AS target
		FROM "%s" z
		%s "ReferenceZones" rz ON rz.zone_id = z.reference_zone_id
		WHERE z.%s = ? AND z.vsd_valido = ?
		ORDER BY z.aligned_zone_id`, layout.fragment, layout.table, join, layout.owner)

	var zones []ZoneTriple
	if err := s.db.WithContext(ctx).Raw(q, key.ID, true).Scan(&zones).Error; err != nil {
		return nil, fmt.Errorf("zones %s: %w", key, err)
	}

	return zones, nil
}

// ZoneColumns returns the validated zones of a record aggregated into delimited columns.
func (s *Store) ZoneColumns(ctx context.Context, key Key) (*ZoneColumns, error) {
	layout, ok := zoneLayout[key.Kind]
	if !ok {
		return nil, fmt.Errorf("zone columns %s: unknown source", key)
	}

	agg := s.aggregate
	columns := []string{
		"COUNT(*) AS zone_count",
		agg("aligned_zone_id", ScalarSeparator) + " AS zone_ids",
		agg("reference_zone_id", ScalarSeparator) + " AS reference_zone_ids",
		agg("zone_number", ScalarSeparator) + " AS zone_numbers",
		agg("fragment", FragmentSeparator) + " AS fragments",
		agg(`"match"`, ScalarSeparator) + " AS matches",
		agg("hydrophobicity", ScalarSeparator) + " AS hydrophobicity",
		agg("volume", ScalarSeparator) + " AS volume",
		agg("delta_hydrophobicity", ScalarSeparator) + " AS delta_hydrophobicity",
		agg("delta_volume", ScalarSeparator) + " AS delta_volume",
		agg("tipo_carga", ScalarSeparator) + " AS charge_types",
		agg("cargas", ChargeSeparator) + " AS charges",
		agg("cargas_reference", ChargeSeparator) + " AS reference_charges",
	}

	// the inner query fixes the row order for GROUP_CONCAT, string_agg orders by itself
	q := fmt.Sprintf(`SELECT %s FROM (
			SELECT z.aligned_zone_id, z.reference_zone_id, rz.zone_number, z.%s AS fragment, z."match",
				z.%s AS hydrophobicity, z.%s AS volume, z.delta_hydrophobicity, z.delta_volume,
				z.tipo_carga, z.cargas, z.cargas_reference
			FROM "%s" z
			LEFT JOIN "ReferenceZones" rz ON rz.zone_id = z.reference_zone_id
			WHERE z.%s = ? AND z.vsd_valido = ?
			ORDER BY z.aligned_zone_id
		) zones`, strings.Join(columns, ", "), layout.fragment, layout.hydro, layout.volume, layout.table, layout.owner)

	var cols ZoneColumns
	if err := s.db.WithContext(ctx).Raw(q, key.ID, true).Scan(&cols).Error; err != nil {
		return nil, fmt.Errorf("zone columns %s: %w", key, err)
	}

	return &cols, nil
}

// aggregate renders a text aggregation of column in zone order for the current dialect.
// NULL values become empty items so that positions are preserved.
func (s *Store) aggregate(column, sep string) string {
	value := fmt.Sprintf("COALESCE(CAST(%s AS TEXT), '')", column)
	if s.isPostgres() {
		return fmt.Sprintf("COALESCE(string_agg(%s, '%s' ORDER BY aligned_zone_id), '')", value, sep)
	}
	return fmt.Sprintf("COALESCE(GROUP_CONCAT(%s, '%s'), '')", value, sep)
}

// Selectable returns the records of a source that have a superposed structure and at least one validated zone.
func (s *Store) Selectable(ctx context.Context, kind Kind) ([]Selectable, error) {
	var q string
	switch kind {
	case UniProt:
		q = `SELECT a.alignment_id AS id, a.source_id AS label, COALESCE(p.name, '') AS name
			FROM "Alignments" a
			LEFT JOIN "Proteins" p ON p.accession_number = a.source_id
			WHERE a.pdb IS NOT NULL AND EXISTS (
				SELECT 1 FROM "AlignedZones" az WHERE az.alignment_id = a.alignment_id AND az.vsd_valido = ?
			)
			ORDER BY a.alignment_id`
	case FoldSeek:
		q = `SELECT fad.alignment_detail_id AS id, COALESCE(f.target, '') AS label, COALESCE(f.protein_name, '') AS name
			FROM "FoldSeekAlignmentDetails" fad
			LEFT JOIN "FoldSeek" f ON f.foldseek_id = fad.foldseek_id
			WHERE fad.pdb IS NOT NULL AND EXISTS (
				SELECT 1 FROM "FoldSeekAlignedZones" faz
				WHERE faz.alignment_detail_id = fad.alignment_detail_id AND faz.vsd_valido = ?
			)
			ORDER BY fad.alignment_detail_id`
	default:
		return nil, fmt.Errorf("selectable %s: unknown source", kind)
	}

	var rows []Selectable
	if err := s.db.WithContext(ctx).Raw(q, true).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("selectable %s: %w", kind, err)
	}
	for i := range rows {
		rows[i].Key = Key{Kind: kind, ID: rows[i].ID}
	}

	return rows, nil
}
