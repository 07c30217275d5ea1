package pipeline

import (
	"fmt"
	"strconv"

	vhttp "github.com/tikz/vsdalign/http"
	"github.com/tikz/vsdalign/store"
)

// State is the stage an entry is in.
type State int

// Entry states, in processing order. Failed can follow any of them.
const (
	Fetching State = iota
	Extracting
	Aligning
	Persisting
	Done
	Failed
)

var stateNames = [...]string{"fetching", "extracting", "aligning", "persisting", "done", "failed"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
	return stateNames[s]
}

// Entry is one alignment record to superpose.
type Entry struct {
	Key store.Key

	// UniProt
	Accession     string
	Sequence      string // aligned target sequence, may contain gaps
	HasStructures bool

	// FoldSeek
	URL        string
	Start, End int64
}

func (e Entry) String() string {
	if e.Accession != "" {
		return fmt.Sprintf("%s (%s)", e.Key, e.Accession)
	}
	return e.Key.String()
}

// Result is the outcome of one entry.
type Result struct {
	Entry      Entry
	State      State // Done or Failed
	FailedAt   State // stage of the last failure, meaningful when State is Failed
	Provenance string
	Err        error
}

// OK returns true if the entry was persisted.
func (r Result) OK() bool {
	return r.State == Done
}

// Transient returns true if the entry failed only because downloads kept failing before a response,
// so a later run may succeed.
func (r Result) Transient() bool {
	return r.Err != nil && vhttp.IsTransient(r.Err)
}

// StructureRecord is a candidate structure for a UniProt entry.
type StructureRecord struct {
	Source     string
	Identifier string
	Resolution string // empty if unknown
	URL        string
}

// Experimental returns true for solved structures.
func (r StructureRecord) Experimental() bool {
	return r.Source == store.SourcePDB
}

// Provenance formats "<source>, <identifier>, <resolution or download link>". Experimental records
// without a stored resolution use the one read from the structure header, if any.
func (r StructureRecord) Provenance(headerResolution float64) string {
	detail := r.URL
	if r.Experimental() {
		switch {
		case r.Resolution != "":
			detail = r.Resolution
		case headerResolution > 0:
			detail = strconv.FormatFloat(headerResolution, 'f', 2, 64)
		}
	}
	return fmt.Sprintf("%s, %s, %s", r.Source, r.Identifier, detail)
}
