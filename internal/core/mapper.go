package core

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// DomainMapping maps a domain's natural identifiers to dense surrogate
// keys. The surrogate key of a natural id is 1 + the 0-based ordinal of
// its first occurrence in the domain's own source file, which is exactly
// the primary key the loader assigns when it loads that domain table.
type DomainMapping struct {
	keys map[string]int64
	rows int64
}

// Lookup returns the surrogate key for a natural id.
func (m *DomainMapping) Lookup(id string) (int64, bool) {
	sid, ok := m.keys[id]
	return sid, ok
}

// PgID returns the surrogate key as a nullable pgtype.Int8; unmapped ids
// yield NULL, the outer-join behavior of foreign-key substitution.
func (m *DomainMapping) PgID(id string) pgtype.Int8 {
	if sid, ok := m.keys[id]; ok {
		return pgtype.Int8{Int64: sid, Valid: true}
	}
	return pgtype.Int8{}
}

// Rows returns the number of data rows scanned from the domain file.
func (m *DomainMapping) Rows() int64 { return m.rows }

// Distinct returns the number of distinct natural ids mapped.
func (m *DomainMapping) Distinct() int { return len(m.keys) }

// Run owns the state of one import run. Its domain-mapping cache is
// built lazily on first use and dies with the run, so runs stay
// independently testable and re-entrant. Not safe for concurrent use:
// the pipeline is strictly sequential.
type Run struct {
	reg       *Registry
	dataDir   string
	chunkSize int
	log       *slog.Logger

	mappings map[string]*DomainMapping
}

// NewRun creates the context object for one import run.
func NewRun(reg *Registry, dataDir string, chunkSize int, log *slog.Logger) *Run {
	if log == nil {
		log = slog.Default()
	}
	return &Run{reg: reg, dataDir: dataDir, chunkSize: chunkSize, log: log}
}

// IsDomain reports whether name is a mappable domain table.
func (r *Run) IsDomain(name string) bool { return r.reg.IsDomain(name) }

// Mapping returns the surrogate-key mapping for a domain. The first call
// scans the source files of every mappable domain and caches all
// mappings at once; later calls are served from the cache.
func (r *Run) Mapping(domain string) (*DomainMapping, error) {
	if r.mappings == nil {
		if err := r.buildMappings(); err != nil {
			return nil, err
		}
	}
	m, ok := r.mappings[domain]
	if !ok {
		return nil, fmt.Errorf("no mappable domain %q", domain)
	}
	return m, nil
}

func (r *Run) buildMappings() error {
	mappings := make(map[string]*DomainMapping, len(r.reg.Domains()))
	for _, domain := range r.reg.Domains() {
		spec, _ := r.reg.Get(domain)
		m, err := r.scanDomain(spec)
		if err != nil {
			return fmt.Errorf("build %s mapping: %w", domain, err)
		}
		r.log.Info("domain mapping built",
			"domain", domain,
			"rows", m.Rows(),
			"distinct_ids", m.Distinct(),
		)
		mappings[domain] = m
	}
	r.mappings = mappings
	return nil
}

// scanDomain reads only the natural-id column of the domain's file and
// assigns surrogate keys by row ordinal. Duplicate natural ids keep
// their first surrogate so lookups stay deterministic.
func (r *Run) scanDomain(spec TableSpec) (*DomainMapping, error) {
	path := filepath.Join(r.dataDir, spec.FileName)

	header, err := HeaderColumns(path)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, col := range header {
		if col == spec.DomainIDColumn.FileColumn {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &DriftError{
			Table:   spec.Name,
			Missing: []string{spec.DomainIDColumn.FileColumn},
			Actual:  header,
		}
	}

	cr, err := NewChunkReader(path, r.chunkSize)
	if err != nil {
		return nil, err
	}
	defer cr.Close()

	m := &DomainMapping{keys: make(map[string]int64)}
	for {
		chunk, err := cr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		for i, rec := range chunk.Rows {
			var id string
			if idx < len(rec) {
				id = strings.TrimSpace(rec[idx])
			}
			if norm := spec.DomainIDColumn.Normalizer; norm != nil {
				id = norm(id)
			}
			if id == "" {
				continue
			}
			if _, seen := m.keys[id]; !seen {
				m.keys[id] = chunk.Start + int64(i) + 1
			}
		}
		m.rows = chunk.Start + int64(len(chunk.Rows))
	}
	return m, nil
}
