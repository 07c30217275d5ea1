package store

// Table and column names follow the curated database layout so that existing
// databases can be opened as they are.

// Protein is a UniProt entry.
type Protein struct {
	AccessionNumber string `gorm:"column:accession_number;primaryKey" json:"accession_number"`
	Name            string `gorm:"column:name" json:"name"`
	FullName        string `gorm:"column:full_name" json:"full_name"`
	Organism        string `gorm:"column:organism" json:"organism"`
	Gene            string `gorm:"column:gene" json:"gene"`
	Description     string `gorm:"column:description" json:"description"`
	Sequence        string `gorm:"column:sequence" json:"sequence"`
	Length          int64  `gorm:"column:length" json:"length"`
}

func (Protein) TableName() string { return "Proteins" }

// ReferenceSequence is a curated reference holding the reference structure text.
type ReferenceSequence struct {
	ID               int64   `gorm:"column:reference_sequence_id;primaryKey;autoIncrement" json:"reference_sequence_id"`
	ReferenceSegment string  `gorm:"column:reference_segment" json:"reference_segment"`
	SourceProtein    string  `gorm:"column:source_protein" json:"source_protein"`
	PDB              *string `gorm:"column:pdb" json:"-"`
}

func (ReferenceSequence) TableName() string { return "ReferenceSequences" }

// ReferenceZone is a curated zone of a reference sequence.
type ReferenceZone struct {
	ID                  int64    `gorm:"column:zone_id;primaryKey;autoIncrement" json:"zone_id"`
	ReferenceSequenceID int64    `gorm:"column:reference_sequence_id;index" json:"reference_sequence_id"`
	ZoneNumber          int64    `gorm:"column:zone_number" json:"zone_number"`
	SequenceFragment    string   `gorm:"column:sequence_fragment" json:"sequence_fragment"`
	Volume              *float64 `gorm:"column:volume" json:"volume"`
	Hydrophobicity      *float64 `gorm:"column:hydrophobicity" json:"hydrophobicity"`
}

func (ReferenceZone) TableName() string { return "ReferenceZones" }

// ThreeDStructure flags which structure sources exist for an accession.
type ThreeDStructure struct {
	ID              int64  `gorm:"column:structure_id;primaryKey;autoIncrement" json:"structure_id"`
	AccessionNumber string `gorm:"column:accession_number;index" json:"accession_number"`
	HasPDB          bool   `gorm:"column:has_pdb" json:"has_pdb"`
	HasAlphaFold    bool   `gorm:"column:has_alphafold" json:"has_alphafold"`
}

func (ThreeDStructure) TableName() string { return "ThreeDStructures" }

// AlphaFoldData is a predicted structure candidate.
type AlphaFoldData struct {
	ID           int64   `gorm:"column:alphafold_id;primaryKey;autoIncrement" json:"alphafold_id"`
	StructureID  int64   `gorm:"column:structure_id;index" json:"structure_id"`
	Identifier   string  `gorm:"column:identifier" json:"identifier"`
	DownloadLink string  `gorm:"column:download_link" json:"download_link"`
	PDB          *string `gorm:"column:pdb" json:"-"`
}

func (AlphaFoldData) TableName() string { return "AlphaFoldData" }

// PDBEntry is an experimental structure candidate.
type PDBEntry struct {
	ID           int64   `gorm:"column:pdb_entry_id;primaryKey;autoIncrement" json:"pdb_entry_id"`
	StructureID  int64   `gorm:"column:structure_id;index" json:"structure_id"`
	PDBID        string  `gorm:"column:pdb_id" json:"pdb_id"`
	Resolution   *string `gorm:"column:resolution" json:"resolution"`
	DownloadLink string  `gorm:"column:download_link" json:"download_link"`
	PDB          *string `gorm:"column:pdb" json:"-"`
}

func (PDBEntry) TableName() string { return "PDBEntries" }

// Alignment is the sequence alignment of a UniProt protein against a reference.
type Alignment struct {
	ID                  int64    `gorm:"column:alignment_id;primaryKey;autoIncrement" json:"alignment_id"`
	ReferenceSequenceID int64    `gorm:"column:reference_sequence_id;index" json:"reference_sequence_id"`
	SourceID            string   `gorm:"column:source_id;index" json:"source_id"`
	SourceType          string   `gorm:"column:source_type" json:"source_type"`
	AdjustedScore       *float64 `gorm:"column:adjusted_score" json:"adjusted_score"`
	Similarity          float64  `gorm:"column:similarity" json:"similarity"`
	SeqRef              string   `gorm:"column:seq_ref" json:"seq_ref"`
	Seq                 string   `gorm:"column:seq" json:"seq"`
	Match               string   `gorm:"column:match" json:"match"`
	PDB                 *string  `gorm:"column:pdb" json:"-"`
	SuccessInfo         *string  `gorm:"column:success_info" json:"success_info"`
}

func (Alignment) TableName() string { return "Alignments" }

// AlignedZone is a zone of a UniProt alignment with its physicochemical values.
type AlignedZone struct {
	ID                    int64    `gorm:"column:aligned_zone_id;primaryKey;autoIncrement" json:"aligned_zone_id"`
	AlignmentID           int64    `gorm:"column:alignment_id;index" json:"alignment_id"`
	ReferenceZoneID       *int64   `gorm:"column:reference_zone_id" json:"reference_zone_id"`
	AlignedSequence       string   `gorm:"column:aligned_sequence" json:"aligned_sequence"`
	Match                 string   `gorm:"column:match" json:"match"`
	HydrophobicityAligned *float64 `gorm:"column:hydrophobicity_aligned" json:"hydrophobicity_aligned"`
	VolumeAligned         *float64 `gorm:"column:volume_aligned" json:"volume_aligned"`
	DeltaHydrophobicity   *float64 `gorm:"column:delta_hydrophobicity" json:"delta_hydrophobicity"`
	DeltaVolume           *float64 `gorm:"column:delta_volume" json:"delta_volume"`
	TipoCarga             *string  `gorm:"column:tipo_carga" json:"tipo_carga"`
	Cargas                *string  `gorm:"column:cargas" json:"cargas"`
	CargasReference       *string  `gorm:"column:cargas_reference" json:"cargas_reference"`
	VSDValido             bool     `gorm:"column:vsd_valido" json:"vsd_valido"`
}

func (AlignedZone) TableName() string { return "AlignedZones" }

// FoldSeekHit is a structural search hit against a reference.
type FoldSeekHit struct {
	ID           int64    `gorm:"column:foldseek_id;primaryKey;autoIncrement" json:"foldseek_id"`
	IDReferencia int64    `gorm:"column:id_referencia;index" json:"id_referencia"`
	DatabaseName string   `gorm:"column:database_name" json:"database_name"`
	Target       string   `gorm:"column:target" json:"target"`
	SeqID        *float64 `gorm:"column:seqId" json:"seqId"`
	AlnLength    *int64   `gorm:"column:alnLength" json:"alnLength"`
	Mismatches   *int64   `gorm:"column:mismatches" json:"mismatches"`
	GapsOpened   *int64   `gorm:"column:gapsOpened" json:"gapsOpened"`
	QStartPos    *int64   `gorm:"column:qStartPos" json:"qStartPos"`
	QEndPos      *int64   `gorm:"column:qEndPos" json:"qEndPos"`
	DBStartPos   int64    `gorm:"column:dbStartPos" json:"dbStartPos"`
	DBEndPos     int64    `gorm:"column:dbEndPos" json:"dbEndPos"`
	Prob         *float64 `gorm:"column:prob" json:"prob"`
	EValue       *float64 `gorm:"column:eval" json:"eval"`
	Score        *float64 `gorm:"column:score" json:"score"`
	QLen         *int64   `gorm:"column:qLen" json:"qLen"`
	DBLen        *int64   `gorm:"column:dbLen" json:"dbLen"`
	QAln         string   `gorm:"column:qAln" json:"qAln"`
	DBAln        string   `gorm:"column:dbAln" json:"dbAln"`
	TCa          string   `gorm:"column:tCa" json:"-"`
	TSeq         string   `gorm:"column:tSeq" json:"tSeq"`
	TaxID        *int64   `gorm:"column:taxId" json:"taxId"`
	TaxName      string   `gorm:"column:taxName" json:"taxName"`
	AlphaFoldPDB *string  `gorm:"column:alphafold_pdb" json:"alphafold_pdb"`
	ProteinName  string   `gorm:"column:protein_name" json:"protein_name"`
	Hyperlink    string   `gorm:"column:hyperlink" json:"hyperlink"`
}

func (FoldSeekHit) TableName() string { return "FoldSeek" }

// FoldSeekAlignmentDetail is the sequence alignment of a FoldSeek hit against its reference.
type FoldSeekAlignmentDetail struct {
	ID               int64   `gorm:"column:alignment_detail_id;primaryKey;autoIncrement" json:"alignment_detail_id"`
	FoldSeekID       int64   `gorm:"column:foldseek_id;index" json:"foldseek_id"`
	ReferenceAligned string  `gorm:"column:reference_aligned" json:"reference_aligned"`
	Match            string  `gorm:"column:match" json:"match"`
	TargetAligned    string  `gorm:"column:target_aligned" json:"target_aligned"`
	Similarity       float64 `gorm:"column:similarity" json:"similarity"`
	PDB              *string `gorm:"column:pdb" json:"-"`
}

func (FoldSeekAlignmentDetail) TableName() string { return "FoldSeekAlignmentDetails" }

// FoldSeekAlignedZone is a zone of a FoldSeek alignment with its physicochemical values.
type FoldSeekAlignedZone struct {
	ID                  int64    `gorm:"column:aligned_zone_id;primaryKey;autoIncrement" json:"aligned_zone_id"`
	AlignmentDetailID   int64    `gorm:"column:alignment_detail_id;index" json:"alignment_detail_id"`
	ReferenceZoneID     *int64   `gorm:"column:reference_zone_id" json:"reference_zone_id"`
	Fragment            string   `gorm:"column:fragment" json:"fragment"`
	Match               string   `gorm:"column:match" json:"match"`
	Hydrophobicity      *float64 `gorm:"column:hydrophobicity" json:"hydrophobicity"`
	Volume              *float64 `gorm:"column:volume" json:"volume"`
	DeltaHydrophobicity *float64 `gorm:"column:delta_hydrophobicity" json:"delta_hydrophobicity"`
	DeltaVolume         *float64 `gorm:"column:delta_volume" json:"delta_volume"`
	TipoCarga           *string  `gorm:"column:tipo_carga" json:"tipo_carga"`
	Cargas              *string  `gorm:"column:cargas" json:"cargas"`
	CargasReference     *string  `gorm:"column:cargas_reference" json:"cargas_reference"`
	VSDValido           bool     `gorm:"column:vsd_valido" json:"vsd_valido"`
}

func (FoldSeekAlignedZone) TableName() string { return "FoldSeekAlignedZones" }

// Models lists every table managed by Migrate.
func Models() []interface{} {
	return []interface{}{
		&Protein{},
		&ReferenceSequence{},
		&ReferenceZone{},
		&ThreeDStructure{},
		&AlphaFoldData{},
		&PDBEntry{},
		&Alignment{},
		&AlignedZone{},
		&FoldSeekHit{},
		&FoldSeekAlignmentDetail{},
		&FoldSeekAlignedZone{},
	}
}
