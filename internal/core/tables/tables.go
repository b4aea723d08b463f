// Package tables declares the CTD source tables: which export file feeds
// each destination table, the file-column to db-column renames, the
// pipe-delimited columns that fan out into one-to-many side tables, and
// which tables act as mappable domains for surrogate-key substitution.
package tables

import (
	"strings"

	"ctdload/internal/core"
)

// Default builds the registry of all CTD tables. Mappable domains are
// registered first so they are created and loaded before any table that
// references them.
func Default() *core.Registry {
	reg := core.NewRegistry()
	registerChemical(reg)
	registerDisease(reg)
	registerGene(reg)
	registerPathway(reg)
	registerChemGeneIxn(reg)
	registerChemicalDisease(reg)
	registerGeneDisease(reg)
	registerChemGoEnriched(reg)
	registerChemPathwayEnriched(reg)
	registerGenePathway(reg)
	registerDiseasePathway(reg)
	registerExposureEvent(reg)
	registerAction(reg)
	return reg
}

// stripMeshPrefix normalizes chemical identifiers for surrogate-key
// mapping: the chemicals file prefixes ids with "MESH:" while every
// referencing file carries the bare accession.
func stripMeshPrefix(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "MESH:"))
}

// ensureMeshPrefix restores the "MESH:" prefix on disease identifiers in
// the exposure events file, which is the only export that omits it.
// Empty values stay empty so they still become NULL foreign keys.
func ensureMeshPrefix(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return "MESH:" + s
}
