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

// Expander explodes a pipe-delimited source column into a one-to-many
// side table. It re-reads the parent's source file with the same chunk
// size and ordinal scheme as the Loader, so child rows always reference
// already-loaded parent surrogate keys.
type Expander struct {
	Writer    RowWriter
	DataDir   string
	Prefix    string
	ChunkSize int
	Policy    DriftPolicy
	Log       *slog.Logger
}

// Expand reads the single o2m column of spec's file and appends one
// (parent key, value) row per pipe-separated piece to the side table
// <prefix><parent>__<child>. Rows with an empty value contribute no
// children.
func (e *Expander) Expand(ctx context.Context, spec TableSpec, o2m OneToManySpec) error {
	log := e.logger().With("table", spec.Name, "child", o2m.ChildColumn)
	path := filepath.Join(e.DataDir, spec.FileName)

	header, err := HeaderColumns(path)
	if err != nil {
		return err
	}
	idx := -1
	for i, col := range header {
		if col == o2m.FileColumn {
			idx = i
			break
		}
	}
	if idx < 0 {
		drift := &DriftError{Table: spec.Name, Missing: []string{o2m.FileColumn}, Actual: header}
		if e.Policy == DriftAbort {
			return drift
		}
		log.Error("schema drift, skipping one-to-many column", "missing", o2m.FileColumn)
		return nil
	}

	table := e.Prefix + spec.Name + "__" + o2m.ChildColumn
	columns := []string{spec.Name + "__id", o2m.ChildColumn}

	cr, err := NewChunkReader(path, e.ChunkSize)
	if err != nil {
		return err
	}
	defer cr.Close()

	var children int64
	for {
		chunk, err := cr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		rows := make([][]any, 0, len(chunk.Rows))
		for i, rec := range chunk.Rows {
			parent := chunk.Start + int64(i) + 1
			var v string
			if idx < len(rec) {
				v = rec[idx]
			}
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			for _, piece := range strings.Split(v, "|") {
				rows = append(rows, []any{parent, ToPgText(piece)})
			}
		}
		if len(rows) == 0 {
			continue
		}
		if err := e.Writer.WriteRows(ctx, table, columns, rows); err != nil {
			return fmt.Errorf("load %s: %w", table, err)
		}
		children += int64(len(rows))
	}
	log.Info("one-to-many column expanded", "children", children)
	return nil
}

func (e *Expander) logger() *slog.Logger {
	if e.Log != nil {
		return e.Log
	}
	return slog.Default()
}
