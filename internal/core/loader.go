package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

// Loader streams source files into their destination tables. It only
// ever appends: the orchestrator has already dropped and recreated the
// schema before any Load call.
type Loader struct {
	Writer    RowWriter
	Run       *Run
	DataDir   string
	Prefix    string
	ChunkSize int
	Policy    DriftPolicy
	Log       *slog.Logger
}

// colPlan is the per-column execution plan for one table load.
type colPlan struct {
	idx       int
	db        string
	typ       FieldType
	normalize func(string) string
	// mapping is non-nil when the column is a <domain>_id reference
	// that must be substituted by the domain's surrogate key.
	mapping *DomainMapping
}

// Load reconciles the table's declared columns with its file header and
// appends the file's rows to the destination table in chunks. Every row
// gets the surrogate key 1 + its ordinal within the file; schema drift
// is handled according to the configured policy.
func (l *Loader) Load(ctx context.Context, spec TableSpec) error {
	log := l.logger().With("table", spec.Name, "file", spec.FileName)
	path := filepath.Join(l.DataDir, spec.FileName)

	header, err := HeaderColumns(path)
	if err != nil {
		return err
	}

	plan, err := Reconcile(spec.ExpectedColumns(), spec.RenameMap(), header)
	if err != nil {
		var drift *DriftError
		if !errors.As(err, &drift) {
			return err
		}
		drift.Table = spec.Name
		switch l.Policy {
		case DriftSkip:
			log.Error("schema drift, skipping table", "missing", drift.Missing)
			return nil
		case DriftWarn:
			log.Warn("schema drift, loading remaining columns", "missing", drift.Missing)
		default:
			return drift
		}
	}

	cols, outCols, err := l.planColumns(spec, plan)
	if err != nil {
		return err
	}
	table := l.Prefix + spec.Name

	cr, err := NewChunkReader(path, l.ChunkSize)
	if err != nil {
		return err
	}
	defer cr.Close()

	var total int64
	for {
		chunk, err := cr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if err := l.loadChunk(ctx, table, cols, outCols, chunk); err != nil {
			return fmt.Errorf("load %s: %w", table, err)
		}
		total = chunk.Start + int64(len(chunk.Rows))
	}
	log.Info("table loaded", "rows", total)
	return nil
}

// planColumns resolves each planned column to its conversion and, for
// non-domain tables, attaches the surrogate-key mapping of every
// <domain>_id column. Domain tables never substitute; their own natural
// id is payload, not a reference.
func (l *Loader) planColumns(spec TableSpec, plan ReadPlan) ([]colPlan, []string, error) {
	mappable := l.Run.IsDomain(spec.Name)

	cols := make([]colPlan, 0, len(plan.Indices))
	outCols := make([]string, 0, len(plan.Indices)+1)
	outCols = append(outCols, "id")

	for j, idx := range plan.Indices {
		c := colPlan{idx: idx, db: plan.DBColumns[j]}
		if cs, ok := spec.columnByFile(plan.FileColumns[j]); ok {
			c.typ = cs.Type
			c.normalize = cs.Normalizer
		}
		if !mappable {
			if domain, ok := l.Run.reg.domainForColumn(c.db); ok {
				m, err := l.Run.Mapping(domain)
				if err != nil {
					return nil, nil, err
				}
				c.mapping = m
				c.db = domain + "__id"
			}
		}
		cols = append(cols, c)
		outCols = append(outCols, c.db)
	}
	return cols, outCols, nil
}

func (l *Loader) loadChunk(ctx context.Context, table string, cols []colPlan, outCols []string, chunk Chunk) error {
	rows := make([][]any, len(chunk.Rows))
	for i, rec := range chunk.Rows {
		id := chunk.Start + int64(i) + 1
		out := make([]any, 0, len(cols)+1)
		out = append(out, id)
		for _, c := range cols {
			var v string
			if c.idx < len(rec) {
				v = rec[c.idx]
			}
			if c.normalize != nil {
				v = c.normalize(v)
			}
			if c.mapping != nil {
				out = append(out, c.mapping.PgID(strings.TrimSpace(v)))
				continue
			}
			val, err := convertField(v, c.typ)
			if err != nil {
				return fmt.Errorf("row %d, column %s: %w", id, c.db, err)
			}
			out = append(out, val)
		}
		rows[i] = out
	}
	return l.Writer.WriteRows(ctx, table, outCols, rows)
}

func (l *Loader) logger() *slog.Logger {
	if l.Log != nil {
		return l.Log
	}
	return slog.Default()
}
