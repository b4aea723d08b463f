package core

import (
	"fmt"
	"strings"
)

// Registry holds the declarative table specs for one import configuration.
// It is read-only after construction; iteration order is registration
// order, which also fixes the load order (mappable domains register
// first so that foreign-key references always point at loaded tables).
type Registry struct {
	specs   []TableSpec
	byName  map[string]int
	domains []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register adds a table spec.
// Panics if a table with the same name is already registered.
func (r *Registry) Register(spec TableSpec) {
	if _, exists := r.byName[spec.Name]; exists {
		panic(fmt.Sprintf("table already registered: %s", spec.Name))
	}
	r.byName[spec.Name] = len(r.specs)
	r.specs = append(r.specs, spec)
	if spec.Mappable() {
		r.domains = append(r.domains, spec.Name)
	}
}

// Get returns a table spec by name.
func (r *Registry) Get(name string) (TableSpec, bool) {
	i, ok := r.byName[name]
	if !ok {
		return TableSpec{}, false
	}
	return r.specs[i], true
}

// All returns every registered table spec in registration order.
func (r *Registry) All() []TableSpec {
	out := make([]TableSpec, len(r.specs))
	copy(out, r.specs)
	return out
}

// Domains returns the names of the mappable domain tables.
func (r *Registry) Domains() []string {
	out := make([]string, len(r.domains))
	copy(out, r.domains)
	return out
}

// IsDomain reports whether name is a mappable domain table.
func (r *Registry) IsDomain(name string) bool {
	i, ok := r.byName[name]
	return ok && r.specs[i].Mappable()
}

// domainForColumn maps a db column following the <domain>_id convention
// to its domain name, if one is registered.
func (r *Registry) domainForColumn(dbColumn string) (string, bool) {
	name, ok := strings.CutSuffix(dbColumn, "_id")
	if !ok || !r.IsDomain(name) {
		return "", false
	}
	return name, true
}

// Validate checks the registry for internal consistency at startup, so
// that a misdeclared spec fails before any table is dropped or loaded.
func (r *Registry) Validate() error {
	for _, spec := range r.specs {
		if spec.FileName == "" {
			return fmt.Errorf("table %s: no file name", spec.Name)
		}
		seenFile := make(map[string]bool, len(spec.Columns))
		for _, c := range spec.Columns {
			if c.FileColumn == "" || c.DBColumn == "" {
				return fmt.Errorf("table %s: column with empty name", spec.Name)
			}
			if seenFile[c.FileColumn] {
				return fmt.Errorf("table %s: duplicate file column %s", spec.Name, c.FileColumn)
			}
			seenFile[c.FileColumn] = true
		}
		seenChild := make(map[string]bool, len(spec.OneToMany))
		for _, o2m := range spec.OneToMany {
			if o2m.FileColumn == "" || o2m.ChildColumn == "" {
				return fmt.Errorf("table %s: one-to-many spec with empty name", spec.Name)
			}
			if seenChild[o2m.ChildColumn] {
				return fmt.Errorf("table %s: duplicate one-to-many child %s", spec.Name, o2m.ChildColumn)
			}
			seenChild[o2m.ChildColumn] = true
		}
		if spec.Mappable() {
			if spec.DomainIDColumn.FileColumn == "" || spec.DomainIDColumn.DBColumn == "" {
				return fmt.Errorf("table %s: incomplete domain id column", spec.Name)
			}
			// A domain table must not reference other domains; the
			// mapper would otherwise need mappings of mappings.
			for _, c := range spec.Columns {
				if d, ok := r.domainForColumn(c.DBColumn); ok && d != spec.Name {
					return fmt.Errorf("table %s: domain table references domain %s", spec.Name, d)
				}
			}
		}
	}
	return nil
}
