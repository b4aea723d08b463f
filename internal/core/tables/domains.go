package tables

import "ctdload/internal/core"

// The four mappable domains. Their row ordinals become the surrogate
// keys every other table joins against, so their specs must stay in
// lockstep with the loader's ordinal scheme: the mapper scans the same
// files the loader loads.

func registerChemical(reg *core.Registry) {
	reg.Register(core.TableSpec{
		Name:     "chemical",
		FileName: "CTD_chemicals.tsv.gz",
		Columns: []core.ColumnSpec{
			{FileColumn: "ChemicalName", DBColumn: "chemical_name"},
			{FileColumn: "ChemicalID", DBColumn: "chemical_id"},
			{FileColumn: "CasRN", DBColumn: "cas_rn"},
			{FileColumn: "Definition", DBColumn: "definition"},
		},
		OneToMany: []core.OneToManySpec{
			{FileColumn: "ParentIDs", ChildColumn: "parent_id"},
			{FileColumn: "TreeNumbers", ChildColumn: "tree_number"},
			{FileColumn: "ParentTreeNumbers", ChildColumn: "parent_tree_number"},
			{FileColumn: "Synonyms", ChildColumn: "synonym"},
			{FileColumn: "DrugBankIDs", ChildColumn: "drugbank_id"},
		},
		DomainIDColumn: &core.ColumnSpec{
			FileColumn: "ChemicalID",
			DBColumn:   "chemical_id",
			Normalizer: stripMeshPrefix,
		},
	})
}

func registerDisease(reg *core.Registry) {
	reg.Register(core.TableSpec{
		Name:     "disease",
		FileName: "CTD_diseases.tsv.gz",
		Columns: []core.ColumnSpec{
			{FileColumn: "DiseaseName", DBColumn: "disease_name"},
			{FileColumn: "DiseaseID", DBColumn: "disease_id"},
			{FileColumn: "Definition", DBColumn: "definition"},
		},
		OneToMany: []core.OneToManySpec{
			{FileColumn: "AltDiseaseIDs", ChildColumn: "alt_disease_id"},
			{FileColumn: "ParentIDs", ChildColumn: "parent_id"},
			{FileColumn: "TreeNumbers", ChildColumn: "tree_number"},
			{FileColumn: "ParentTreeNumbers", ChildColumn: "parent_tree_number"},
			{FileColumn: "Synonyms", ChildColumn: "synonym"},
			{FileColumn: "SlimMappings", ChildColumn: "slim_mapping"},
		},
		DomainIDColumn: &core.ColumnSpec{
			FileColumn: "DiseaseID",
			DBColumn:   "disease_id",
		},
	})
}

func registerGene(reg *core.Registry) {
	reg.Register(core.TableSpec{
		Name:     "gene",
		FileName: "CTD_genes.tsv.gz",
		Columns: []core.ColumnSpec{
			{FileColumn: "GeneSymbol", DBColumn: "gene_symbol"},
			{FileColumn: "GeneName", DBColumn: "gene_name"},
			{FileColumn: "GeneID", DBColumn: "gene_id", Type: core.FieldInt},
		},
		OneToMany: []core.OneToManySpec{
			{FileColumn: "AltGeneIDs", ChildColumn: "alt_gene_id"},
			{FileColumn: "Synonyms", ChildColumn: "synonym"},
			{FileColumn: "BioGRIDIDs", ChildColumn: "biogrid_id"},
			{FileColumn: "PharmGKBIDs", ChildColumn: "pharmgkb_id"},
			{FileColumn: "UniProtIDs", ChildColumn: "uniprot_id"},
		},
		DomainIDColumn: &core.ColumnSpec{
			FileColumn: "GeneID",
			DBColumn:   "gene_id",
		},
	})
}

func registerPathway(reg *core.Registry) {
	reg.Register(core.TableSpec{
		Name:     "pathway",
		FileName: "CTD_pathways.tsv.gz",
		Columns: []core.ColumnSpec{
			{FileColumn: "PathwayName", DBColumn: "pathway_name"},
			{FileColumn: "PathwayID", DBColumn: "pathway_id"},
		},
		DomainIDColumn: &core.ColumnSpec{
			FileColumn: "PathwayID",
			DBColumn:   "pathway_id",
		},
	})
}
