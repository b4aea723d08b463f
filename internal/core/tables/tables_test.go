package tables

import (
	"reflect"
	"testing"
)

func TestDefaultRegistryIsValid(t *testing.T) {
	reg := Default()
	if err := reg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := reg.Domains(); !reflect.DeepEqual(got, []string{"chemical", "disease", "gene", "pathway"}) {
		t.Errorf("Domains() = %v", got)
	}
}

func TestDefaultRegistersDomainsBeforeReferencingTables(t *testing.T) {
	reg := Default()
	pos := make(map[string]int)
	for i, spec := range reg.All() {
		pos[spec.Name] = i
	}
	for _, name := range []string{"chem_gene_ixn", "chemical_disease", "exposure_event"} {
		if _, ok := pos[name]; !ok {
			t.Fatalf("table %s not registered", name)
		}
		for _, domain := range reg.Domains() {
			if pos[domain] > pos[name] {
				t.Errorf("domain %s registered after %s", domain, name)
			}
		}
	}
}

func TestChemicalDomainStripsMeshPrefix(t *testing.T) {
	reg := Default()
	spec, ok := reg.Get("chemical")
	if !ok || !spec.Mappable() {
		t.Fatal("chemical is not a mappable domain")
	}
	n := spec.DomainIDColumn.Normalizer
	if n == nil {
		t.Fatal("chemical domain id has no normalizer")
	}
	for in, want := range map[string]string{
		"MESH:D002110": "D002110",
		"D002110":      "D002110",
		" MESH:D002110 ": "D002110",
	} {
		if got := n(in); got != want {
			t.Errorf("normalizer(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExposureEventRestoresMeshPrefix(t *testing.T) {
	reg := Default()
	spec, ok := reg.Get("exposure_event")
	if !ok {
		t.Fatal("exposure_event not registered")
	}
	var n func(string) string
	for _, c := range spec.Columns {
		if c.FileColumn == "diseaseid" {
			n = c.Normalizer
		}
	}
	if n == nil {
		t.Fatal("diseaseid column has no normalizer")
	}
	if got := n("D006261"); got != "MESH:D006261" {
		t.Errorf("normalizer(D006261) = %q", got)
	}
	if got := n(""); got != "" {
		t.Errorf("normalizer(\"\") = %q, want empty so the key stays NULL", got)
	}
}

func TestEveryTableHasASourceFile(t *testing.T) {
	for _, spec := range Default().All() {
		if spec.FileName == "" {
			t.Errorf("table %s has no source file", spec.Name)
		}
	}
}
