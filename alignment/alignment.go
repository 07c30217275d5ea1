// Package alignment assembles the stored alignment of a record into its presentation form.
package alignment

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tikz/vsdalign/store"
)

// ZoneCount is the number of zone slots always returned for a record.
const ZoneCount = 4

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = store.ErrNotFound

// DataInconsistencyError reports stored data that breaks a structural invariant.
type DataInconsistencyError struct {
	Field  string
	Reason string
}

func (e *DataInconsistencyError) Error() string {
	return fmt.Sprintf("inconsistent %s: %s", e.Field, e.Reason)
}

// IsDataInconsistency returns true if err is or wraps a *DataInconsistencyError.
func IsDataInconsistency(err error) bool {
	var de *DataInconsistencyError
	return errors.As(err, &de)
}

// Main is the primary alignment of a record.
type Main struct {
	Reference  string  `json:"reference" yaml:"reference"`
	Match      string  `json:"match" yaml:"match"`
	Target     string  `json:"target" yaml:"target"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
}

// Validate checks that the three alignment strings share one length.
func (m Main) Validate() error {
	r, mt, t := len(m.Reference), len(m.Match), len(m.Target)
	if r != mt || r != t {
		return &DataInconsistencyError{
			Field:  "alignment",
			Reason: fmt.Sprintf("reference, match and target lengths differ (%d, %d, %d)", r, mt, t),
		}
	}
	return nil
}

// NormalizeSimilarity returns the similarity as a percentage rounded to two decimals.
// Values above 1 are taken as already being a percentage, anything else as a fraction.
func NormalizeSimilarity(v float64) float64 {
	if v <= 1 {
		v *= 100
	}
	return math.Round(v*100) / 100
}

// Zone is one aligned zone as reference fragment, match string and target fragment.
type Zone struct {
	Ref    string `json:"ref" yaml:"ref"`
	Match  string `json:"match" yaml:"match"`
	Target string `json:"target" yaml:"target"`
}

// Empty returns true for a padding slot.
func (z Zone) Empty() bool {
	return z.Ref == "" && z.Match == "" && z.Target == ""
}

// Zones fills the fixed zone slots from triples in stored order, truncating extras and padding with empty zones.
func Zones(triples []store.ZoneTriple) [ZoneCount]Zone {
	var zones [ZoneCount]Zone
	for i, t := range triples {
		if i == ZoneCount {
			break
		}
		zones[i] = Zone{Ref: t.Ref, Match: t.Match, Target: t.Target}
	}
	return zones
}

// Provenance is the origin of a superposed structure.
type Provenance struct {
	Source     string `json:"source" yaml:"source"`
	Identifier string `json:"identifier" yaml:"identifier"`
	Detail     string `json:"detail" yaml:"detail"` // resolution, or download link when unknown
}

// String renders the stored form "<source>, <identifier>, <detail>".
func (p Provenance) String() string {
	return p.Source + ", " + p.Identifier + ", " + p.Detail
}

// ParseProvenance splits a stored provenance string. Missing trailing parts are left empty.
func ParseProvenance(s string) Provenance {
	parts := strings.SplitN(s, ", ", 3)
	var p Provenance
	p.Source = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		p.Identifier = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		p.Detail = strings.TrimSpace(parts[2])
	}
	return p
}
