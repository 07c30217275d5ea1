package alignment

import (
	"context"
	"fmt"

	"github.com/tikz/vsdalign/store"
)

// Source reads the stored alignment of a record.
type Source interface {
	MainRow(ctx context.Context, key store.Key) (*store.MainRow, error)
	ZoneTriples(ctx context.Context, key store.Key, joined bool) ([]store.ZoneTriple, error)
	ZoneColumns(ctx context.Context, key store.Key) (*store.ZoneColumns, error)
}

// Detail is everything needed to present one record.
type Detail struct {
	Key                store.Key       `json:"key" yaml:"key"`
	Main               Main            `json:"alignment_main" yaml:"alignment_main"`
	Zones              [ZoneCount]Zone `json:"aligned_zones" yaml:"aligned_zones"`
	Fields             []ZoneFields    `json:"zone_fields" yaml:"zone_fields"`
	Structure          string          `json:"-" yaml:"-"`
	ReferenceStructure string          `json:"-" yaml:"-"`
	Provenance         *Provenance     `json:"provenance,omitempty" yaml:"provenance,omitempty"`
	Warnings           []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Aggregator builds record details from a Source. It holds no state of its own.
type Aggregator struct {
	src Source
}

// NewAggregator returns an aggregator reading from src.
func NewAggregator(src Source) *Aggregator {
	return &Aggregator{src: src}
}

// Detail returns the primary alignment, the four zone slots and the decoded zone fields of a record.
// A missing record yields an error wrapping ErrNotFound; an inconsistent primary alignment a
// *DataInconsistencyError. Inconsistent zone fields only drop the fields and add a warning.
func (a *Aggregator) Detail(ctx context.Context, key store.Key) (*Detail, error) {
	row, err := a.src.MainRow(ctx, key)
	if err != nil {
		return nil, err
	}

	d := &Detail{
		Key: key,
		Main: Main{
			Reference: row.Reference,
			Match:     row.Match,
			Target:    row.Target,
		},
	}
	if row.Similarity != nil {
		d.Main.Similarity = NormalizeSimilarity(*row.Similarity)
	}
	if err := d.Main.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}

	if row.Structure != nil {
		d.Structure = *row.Structure
	}
	if row.ReferenceStructure != nil {
		d.ReferenceStructure = *row.ReferenceStructure
	}
	if row.Provenance != nil && *row.Provenance != "" {
		p := ParseProvenance(*row.Provenance)
		d.Provenance = &p
	}

	triples, err := a.src.ZoneTriples(ctx, key, true)
	if err != nil {
		return nil, err
	}
	if len(triples) == 0 {
		triples, err = a.src.ZoneTriples(ctx, key, false)
		if err != nil {
			return nil, err
		}
	}
	d.Zones = Zones(triples)

	cols, err := a.src.ZoneColumns(ctx, key)
	if err != nil {
		return nil, err
	}
	fields, err := DecodeZoneFields(cols)
	if err != nil {
		if !IsDataInconsistency(err) {
			return nil, err
		}
		d.Warnings = append(d.Warnings, fmt.Sprintf("zone fields: %v", err))
	}
	d.Fields = fields

	return d, nil
}
