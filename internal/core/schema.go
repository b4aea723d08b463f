package core

// schema.go derives the destination DDL from the table registry. The
// pipeline only supports full replacement: DropAll then CreateAll before
// every import run, no migrations.

import (
	"context"
	"fmt"
	"strings"
)

// CreateAll creates every destination table the registry declares,
// parents before their one-to-many side tables, domains before the
// tables that reference them.
func CreateAll(ctx context.Context, db DBTX, reg *Registry, prefix string) error {
	for _, spec := range reg.All() {
		for _, stmt := range createStatements(spec, reg, prefix) {
			if _, err := db.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("create tables for %s: %w", spec.Name, err)
			}
		}
	}
	return nil
}

// DropAll drops every destination table, side tables first.
func DropAll(ctx context.Context, db DBTX, reg *Registry, prefix string) error {
	specs := reg.All()
	for i := len(specs) - 1; i >= 0; i-- {
		spec := specs[i]
		for _, table := range dropOrder(spec, prefix) {
			if _, err := db.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
				return fmt.Errorf("drop %s: %w", table, err)
			}
		}
	}
	return nil
}

func createStatements(spec TableSpec, reg *Registry, prefix string) []string {
	parent := prefix + spec.Name

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n    id BIGINT PRIMARY KEY", parent)
	for _, c := range spec.Columns {
		if !spec.Mappable() {
			if domain, ok := reg.domainForColumn(c.DBColumn); ok {
				fmt.Fprintf(&b, ",\n    %s__id BIGINT REFERENCES %s%s (id)", domain, prefix, domain)
				continue
			}
		}
		fmt.Fprintf(&b, ",\n    %s %s", c.DBColumn, sqlType(c.Type))
	}
	b.WriteString("\n)")

	stmts := []string{b.String()}
	for _, o2m := range spec.OneToMany {
		stmts = append(stmts, fmt.Sprintf(
			"CREATE TABLE %s__%s (\n    %s__id BIGINT NOT NULL REFERENCES %s (id),\n    %s TEXT\n)",
			parent, o2m.ChildColumn, spec.Name, parent, o2m.ChildColumn))
	}
	return stmts
}

func dropOrder(spec TableSpec, prefix string) []string {
	tables := make([]string, 0, len(spec.OneToMany)+1)
	for _, o2m := range spec.OneToMany {
		tables = append(tables, prefix+spec.Name+"__"+o2m.ChildColumn)
	}
	return append(tables, prefix+spec.Name)
}

func sqlType(t FieldType) string {
	switch t {
	case FieldInt:
		return "BIGINT"
	case FieldNumeric:
		return "DOUBLE PRECISION"
	default:
		return "TEXT"
	}
}
