package core

import (
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeSource writes a CTD-style export into dir, gzip-compressed when
// the name ends in .gz.
func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	data := []byte(content)
	if strings.HasSuffix(name, ".gz") {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			t.Fatalf("gzip write: %v", err)
		}
		if err := zw.Close(); err != nil {
			t.Fatalf("gzip close: %v", err)
		}
		data = buf.Bytes()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// header builds the comment block CTD exports carry before their data.
func header(cols ...string) string {
	return "# Test export\n#\n# Fields:\n# " + strings.Join(cols, "\t") + "\n#\n"
}

// row joins values into one tab-separated data line.
func row(values ...string) string {
	return strings.Join(values, "\t") + "\n"
}

func stripMesh(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "MESH:"))
}

// testRegistry declares a small registry with two mappable domains and
// one referencing table, enough to exercise every pipeline component.
func testRegistry() *Registry {
	reg := NewRegistry()
	reg.Register(TableSpec{
		Name:     "chemical",
		FileName: "chemicals.tsv.gz",
		Columns: []ColumnSpec{
			{FileColumn: "ChemicalName", DBColumn: "chemical_name"},
			{FileColumn: "ChemicalID", DBColumn: "chemical_id"},
		},
		OneToMany: []OneToManySpec{
			{FileColumn: "Synonyms", ChildColumn: "synonym"},
		},
		DomainIDColumn: &ColumnSpec{
			FileColumn: "ChemicalID",
			DBColumn:   "chemical_id",
			Normalizer: stripMesh,
		},
	})
	reg.Register(TableSpec{
		Name:     "disease",
		FileName: "diseases.tsv",
		Columns: []ColumnSpec{
			{FileColumn: "DiseaseName", DBColumn: "disease_name"},
			{FileColumn: "DiseaseID", DBColumn: "disease_id"},
		},
		DomainIDColumn: &ColumnSpec{
			FileColumn: "DiseaseID",
			DBColumn:   "disease_id",
		},
	})
	reg.Register(TableSpec{
		Name:     "chem_disease",
		FileName: "chem_disease.tsv",
		Columns: []ColumnSpec{
			{FileColumn: "ChemicalID", DBColumn: "chemical_id"},
			{FileColumn: "DiseaseID", DBColumn: "disease_id"},
			{FileColumn: "Score", DBColumn: "score", Type: FieldNumeric},
		},
		OneToMany: []OneToManySpec{
			{FileColumn: "PubMedIDs", ChildColumn: "pubmed_id"},
		},
	})
	return reg
}

// writeDomainFiles writes the two domain files of testRegistry:
// chemicals rows get surrogates 1..2, diseases 1..2.
func writeDomainFiles(t *testing.T, dir string) {
	t.Helper()
	writeSource(t, dir, "chemicals.tsv.gz",
		header("ChemicalName", "ChemicalID", "Synonyms")+
			row("caffeine", "MESH:D002110", "guaranine|theine")+
			row("phenol", "MESH:D019800", ""))
	writeSource(t, dir, "diseases.tsv",
		header("DiseaseName", "DiseaseID")+
			row("headache", "MESH:D006261")+
			row("fever", "MESH:D005334"))
}

// write captures one RowWriter call.
type write struct {
	table   string
	columns []string
	rows    [][]any
}

// memWriter collects written rows for assertions.
type memWriter struct {
	writes []write
}

func (w *memWriter) WriteRows(_ context.Context, table string, columns []string, rows [][]any) error {
	cp := make([][]any, len(rows))
	copy(cp, rows)
	w.writes = append(w.writes, write{table: table, columns: append([]string(nil), columns...), rows: cp})
	return nil
}

// rowsFor concatenates all rows written to one table.
func (w *memWriter) rowsFor(table string) [][]any {
	var out [][]any
	for _, wr := range w.writes {
		if wr.table == table {
			out = append(out, wr.rows...)
		}
	}
	return out
}

// columnsFor returns the column list of the first write to a table.
func (w *memWriter) columnsFor(table string) []string {
	for _, wr := range w.writes {
		if wr.table == table {
			return wr.columns
		}
	}
	return nil
}
