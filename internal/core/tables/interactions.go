package tables

import "ctdload/internal/core"

// Curated association tables. Their <domain>_id columns are natural
// identifiers in the files and are substituted with surrogate keys from
// the domain mappings during load.

func registerChemGeneIxn(reg *core.Registry) {
	reg.Register(core.TableSpec{
		Name:     "chem_gene_ixn",
		FileName: "CTD_chem_gene_ixns.tsv.gz",
		Columns: []core.ColumnSpec{
			{FileColumn: "ChemicalID", DBColumn: "chemical_id"},
			{FileColumn: "GeneID", DBColumn: "gene_id"},
			{FileColumn: "GeneForms", DBColumn: "gene_forms"},
			{FileColumn: "Organism", DBColumn: "organism"},
			{FileColumn: "OrganismID", DBColumn: "organism_id", Type: core.FieldInt},
			{FileColumn: "Interaction", DBColumn: "interaction"},
		},
		OneToMany: []core.OneToManySpec{
			{FileColumn: "InteractionActions", ChildColumn: "interaction_action"},
			{FileColumn: "PubMedIDs", ChildColumn: "pubmed_id"},
		},
	})
}

func registerChemicalDisease(reg *core.Registry) {
	reg.Register(core.TableSpec{
		Name:     "chemical_disease",
		FileName: "CTD_chemicals_diseases.tsv.gz",
		Columns: []core.ColumnSpec{
			{FileColumn: "ChemicalID", DBColumn: "chemical_id"},
			{FileColumn: "DiseaseID", DBColumn: "disease_id"},
			{FileColumn: "DirectEvidence", DBColumn: "direct_evidence"},
			{FileColumn: "InferenceGeneSymbol", DBColumn: "inference_gene_symbol"},
			{FileColumn: "InferenceScore", DBColumn: "inference_score", Type: core.FieldNumeric},
		},
		OneToMany: []core.OneToManySpec{
			{FileColumn: "OmimIDs", ChildColumn: "omim_id"},
			{FileColumn: "PubMedIDs", ChildColumn: "pubmed_id"},
		},
	})
}

func registerGeneDisease(reg *core.Registry) {
	reg.Register(core.TableSpec{
		Name:     "gene_disease",
		FileName: "CTD_genes_diseases.tsv.gz",
		Columns: []core.ColumnSpec{
			{FileColumn: "GeneID", DBColumn: "gene_id"},
			{FileColumn: "DiseaseID", DBColumn: "disease_id"},
			{FileColumn: "DirectEvidence", DBColumn: "direct_evidence"},
			{FileColumn: "InferenceChemicalName", DBColumn: "inference_chemical_name"},
			{FileColumn: "InferenceScore", DBColumn: "inference_score", Type: core.FieldNumeric},
		},
		OneToMany: []core.OneToManySpec{
			{FileColumn: "OmimIDs", ChildColumn: "omim_id"},
			{FileColumn: "PubMedIDs", ChildColumn: "pubmed_id"},
		},
	})
}

func registerChemGoEnriched(reg *core.Registry) {
	reg.Register(core.TableSpec{
		Name:     "chem_go_enriched",
		FileName: "CTD_chem_go_enriched.tsv.gz",
		Columns: []core.ColumnSpec{
			{FileColumn: "ChemicalID", DBColumn: "chemical_id"},
			{FileColumn: "Ontology", DBColumn: "ontology"},
			{FileColumn: "GOTermName", DBColumn: "go_term_name"},
			{FileColumn: "GOTermID", DBColumn: "go_term_id"},
			{FileColumn: "HighestGOLevel", DBColumn: "highest_go_level", Type: core.FieldInt},
			{FileColumn: "PValue", DBColumn: "p_value", Type: core.FieldNumeric},
			{FileColumn: "CorrectedPValue", DBColumn: "corrected_p_value", Type: core.FieldNumeric},
			{FileColumn: "TargetMatchQty", DBColumn: "target_match_qty", Type: core.FieldInt},
			{FileColumn: "TargetTotalQty", DBColumn: "target_total_qty", Type: core.FieldInt},
			{FileColumn: "BackgroundMatchQty", DBColumn: "background_match_qty", Type: core.FieldInt},
			{FileColumn: "BackgroundTotalQty", DBColumn: "background_total_qty", Type: core.FieldInt},
		},
	})
}

func registerChemPathwayEnriched(reg *core.Registry) {
	reg.Register(core.TableSpec{
		Name:     "chem_pathway_enriched",
		FileName: "CTD_chem_pathways_enriched.tsv.gz",
		Columns: []core.ColumnSpec{
			{FileColumn: "ChemicalID", DBColumn: "chemical_id"},
			{FileColumn: "PathwayID", DBColumn: "pathway_id"},
			{FileColumn: "PValue", DBColumn: "p_value", Type: core.FieldNumeric},
			{FileColumn: "CorrectedPValue", DBColumn: "corrected_p_value", Type: core.FieldNumeric},
			{FileColumn: "TargetMatchQty", DBColumn: "target_match_qty", Type: core.FieldInt},
			{FileColumn: "TargetTotalQty", DBColumn: "target_total_qty", Type: core.FieldInt},
			{FileColumn: "BackgroundTotalQty", DBColumn: "background_total_qty", Type: core.FieldInt},
		},
	})
}

func registerGenePathway(reg *core.Registry) {
	reg.Register(core.TableSpec{
		Name:     "gene_pathway",
		FileName: "CTD_genes_pathways.tsv.gz",
		Columns: []core.ColumnSpec{
			{FileColumn: "GeneID", DBColumn: "gene_id"},
			{FileColumn: "PathwayID", DBColumn: "pathway_id"},
		},
	})
}

func registerDiseasePathway(reg *core.Registry) {
	reg.Register(core.TableSpec{
		Name:     "disease_pathway",
		FileName: "CTD_diseases_pathways.tsv.gz",
		Columns: []core.ColumnSpec{
			{FileColumn: "DiseaseID", DBColumn: "disease_id"},
			{FileColumn: "PathwayID", DBColumn: "pathway_id"},
			{FileColumn: "InferenceGeneSymbol", DBColumn: "inference_gene_symbol"},
		},
	})
}

func registerAction(reg *core.Registry) {
	reg.Register(core.TableSpec{
		Name:     "action",
		FileName: "CTD_chem_gene_ixn_types.tsv",
		Columns: []core.ColumnSpec{
			{FileColumn: "TypeName", DBColumn: "type_name"},
			{FileColumn: "Code", DBColumn: "code"},
			{FileColumn: "Description", DBColumn: "description"},
			{FileColumn: "ParentCode", DBColumn: "parent_code"},
		},
	})
}
