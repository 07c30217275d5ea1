// Package pipeline superposes the structures of alignment records onto their curated references
// and persists the result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tikz/vsdalign/pdb"
	"github.com/tikz/vsdalign/residue"
	"github.com/tikz/vsdalign/store"
	"github.com/tikz/vsdalign/superpose"
)

// DefaultWorkers is the number of entries processed concurrently.
const DefaultWorkers = 4

// ErrNoCandidates is returned for UniProt entries without any structure to download.
var ErrNoCandidates = errors.New("no candidate structures")

// Fetcher downloads structures.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Aligner superposes a target structure onto a reference.
type Aligner interface {
	Align(reference, target []byte) ([]byte, error)
}

// Store is the persistence the pipeline reads entries from and writes results to.
type Store interface {
	UniProtEntries(ctx context.Context) ([]store.UniProtEntry, error)
	FoldSeekEntries(ctx context.Context) ([]store.FoldSeekEntry, error)
	Candidates(ctx context.Context, accession string) ([]store.CandidateRow, error)
	ReferencePDB(ctx context.Context, key store.Key) (string, error)
	SaveSuperposition(ctx context.Context, key store.Key, structure []byte, provenance string) error
}

// CandidateFinder discovers structures for accessions the store has none for.
type CandidateFinder interface {
	Candidates(ctx context.Context, accession string) ([]StructureRecord, error)
}

// Processor runs entries through fetch, extraction, superposition and persistence.
type Processor struct {
	Store   Store
	Fetcher Fetcher
	Aligner Aligner
	Finder  CandidateFinder // used only when Discover is set
	// Discover looks up candidates with Finder when the store has none.
	Discover bool
	// Water is a structure with water molecules, used as reference when an entry has none.
	Water   []byte
	Workers int
	Logger  *slog.Logger
}

func (p *Processor) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

// Entries lists the entries of the given kinds, every kind if none is given.
func (p *Processor) Entries(ctx context.Context, kinds ...store.Kind) ([]Entry, error) {
	if len(kinds) == 0 {
		kinds = store.Kinds
	}

	var entries []Entry
	for _, kind := range kinds {
		switch kind {
		case store.UniProt:
			rows, err := p.Store.UniProtEntries(ctx)
			if err != nil {
				return nil, err
			}
			for _, r := range rows {
				entries = append(entries, Entry{
					Key:           store.Key{Kind: store.UniProt, ID: r.ID},
					Accession:     r.Accession,
					Sequence:      r.Sequence,
					HasStructures: r.HasStructures,
				})
			}
		case store.FoldSeek:
			rows, err := p.Store.FoldSeekEntries(ctx)
			if err != nil {
				return nil, err
			}
			for _, r := range rows {
				entries = append(entries, Entry{
					Key:   store.Key{Kind: store.FoldSeek, ID: r.ID},
					URL:   r.URL,
					Start: r.Start,
					End:   r.End,
				})
			}
		default:
			return nil, fmt.Errorf("entries: unknown source %q", kind)
		}
	}

	return entries, nil
}

// Run processes the entries on a bounded pool of workers. A failing entry never stops the others;
// each outcome is reported in the result at the same index.
func (p *Processor) Run(ctx context.Context, entries []Entry) []Result {
	workers := p.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	log := p.logger().With("run", uuid.NewString())
	log.Info("run started", "entries", len(entries), "workers", workers)
	start := time.Now()

	results := make([]Result, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range entries {
		g.Go(func() error {
			results[i] = p.process(gctx, log, entries[i])
			return nil
		})
	}
	_ = g.Wait()

	var failed int
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	log.Info("run finished", "done", len(results)-failed, "failed", failed, "elapsed", time.Since(start).Round(time.Millisecond))

	return results
}

// Process runs a single entry.
func (p *Processor) Process(ctx context.Context, e Entry) Result {
	return p.process(ctx, p.logger(), e)
}

func (p *Processor) process(ctx context.Context, log *slog.Logger, e Entry) Result {
	log = log.With("entry", e.Key.String())

	var r Result
	switch e.Key.Kind {
	case store.UniProt:
		r = p.processUniProt(ctx, log, e)
	case store.FoldSeek:
		r = p.processFoldSeek(ctx, log, e)
	default:
		r = failed(e, Fetching, fmt.Errorf("unknown source %q", e.Key.Kind))
	}

	if r.OK() {
		log.Info("superposed", "provenance", r.Provenance)
	} else {
		log.Warn("entry failed", "state", r.FailedAt.String(), "transient", r.Transient(), "err", r.Err)
	}
	return r
}

func failed(e Entry, at State, err error) Result {
	return Result{Entry: e, State: Failed, FailedAt: at, Err: err}
}

// reference returns the curated reference of an entry. Entries without one use the water
// structure, or fail with a MissingReferenceError if there is none. With appendWater set, a
// curated reference lacking water gets the water molecules of the water structure appended.
func (p *Processor) reference(ctx context.Context, key store.Key, appendWater bool) ([]byte, error) {
	ref, err := p.Store.ReferencePDB(ctx, key)
	if err != nil {
		return nil, err
	}
	if ref == "" {
		if len(p.Water) == 0 {
			return nil, &superpose.MissingReferenceError{Entry: key.String()}
		}
		return p.Water, nil
	}
	if !appendWater || len(p.Water) == 0 {
		return []byte(ref), nil
	}

	refPDB, err := pdb.NewPDBFromRaw([]byte(ref))
	if err != nil {
		return nil, fmt.Errorf("parse reference: %w", err)
	}
	water, err := pdb.NewPDBFromRaw(p.Water)
	if err != nil {
		return nil, fmt.Errorf("parse water reference: %w", err)
	}
	if len(refPDB.Solvent) > 0 {
		return []byte(ref), nil
	}

	return refPDB.WithSolvent(water).Bytes(), nil
}

// candidates returns the structures for an accession, experimental first.
func (p *Processor) candidates(ctx context.Context, e Entry) ([]StructureRecord, error) {
	var records []StructureRecord
	if e.HasStructures {
		rows, err := p.Store.Candidates(ctx, e.Accession)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			r := StructureRecord{Source: row.Source, Identifier: row.Identifier, URL: row.URL}
			if row.Resolution != nil {
				r.Resolution = *row.Resolution
			}
			records = append(records, r)
		}
	}

	if len(records) == 0 && p.Discover && p.Finder != nil {
		found, err := p.Finder.Candidates(ctx, e.Accession)
		if err != nil {
			return nil, fmt.Errorf("discover %s: %w", e.Accession, err)
		}
		records = found
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", e.Accession, ErrNoCandidates)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Experimental() && !records[j].Experimental()
	})

	return records, nil
}

// processUniProt tries the candidates in order; the first one that is persisted wins.
func (p *Processor) processUniProt(ctx context.Context, log *slog.Logger, e Entry) Result {
	records, err := p.candidates(ctx, e)
	if err != nil {
		return failed(e, Fetching, err)
	}

	ref, err := p.reference(ctx, e.Key, false)
	if err != nil {
		return failed(e, Fetching, err)
	}

	target := residue.Ungap(e.Sequence)

	last := failed(e, Fetching, ErrNoCandidates)
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return failed(e, last.FailedAt, err)
		}

		log := log.With("candidate", rec.Identifier)

		log.Debug("fetching", "url", rec.URL)
		raw, err := p.Fetcher.Get(ctx, rec.URL)
		if err != nil {
			log.Debug("candidate failed", "state", Fetching.String(), "err", err)
			last = failed(e, Fetching, fmt.Errorf("%s: %w", rec.Identifier, err))
			continue
		}

		log.Debug("extracting")
		structure, err := pdb.NewPDBFromRaw(raw)
		if err != nil {
			last = failed(e, Extracting, fmt.Errorf("%s: %w", rec.Identifier, err))
			continue
		}
		chain, chainID, err := structure.ChainBySequence(target)
		if err != nil {
			last = failed(e, Extracting, fmt.Errorf("%s: %w", rec.Identifier, err))
			continue
		}

		log.Debug("aligning", "chain", chainID)
		out, err := p.Aligner.Align(ref, chain.Bytes())
		if err != nil {
			log.Debug("candidate failed", "state", Aligning.String(), "err", err)
			last = failed(e, Aligning, fmt.Errorf("%s: %w", rec.Identifier, err))
			continue
		}

		provenance := rec.Provenance(structure.Resolution)
		if err := p.Store.SaveSuperposition(ctx, e.Key, out, provenance); err != nil {
			return failed(e, Persisting, err)
		}

		return Result{Entry: e, State: Done, Provenance: provenance}
	}

	return last
}

// processFoldSeek superposes the aligned range of a FoldSeek hit.
func (p *Processor) processFoldSeek(ctx context.Context, log *slog.Logger, e Entry) Result {
	ref, err := p.reference(ctx, e.Key, true)
	if err != nil {
		return failed(e, Fetching, err)
	}

	log.Debug("fetching", "url", e.URL)
	raw, err := p.Fetcher.Get(ctx, e.URL)
	if err != nil {
		return failed(e, Fetching, err)
	}

	log.Debug("extracting", "start", e.Start, "end", e.End)
	structure, err := pdb.NewPDBFromRaw(raw)
	if err != nil {
		return failed(e, Extracting, err)
	}
	cut, err := structure.ResidueRange(e.Start, e.End)
	if err != nil {
		return failed(e, Extracting, err)
	}

	log.Debug("aligning")
	out, err := p.Aligner.Align(ref, cut.Bytes())
	if err != nil {
		return failed(e, Aligning, err)
	}

	if err := p.Store.SaveSuperposition(ctx, e.Key, out, ""); err != nil {
		return failed(e, Persisting, err)
	}

	return Result{Entry: e, State: Done}
}
