package tables

import "ctdload/internal/core"

// registerExposureEvent declares the exposure studies table. Its column
// names are lowercase in the export, unlike every other CTD file, and
// its diseaseid values lack the MESH: prefix the diseases file uses, so
// the column carries a normalizer that restores it before the
// foreign-key join.
func registerExposureEvent(reg *core.Registry) {
	reg.Register(core.TableSpec{
		Name:     "exposure_event",
		FileName: "CTD_exposure_events.tsv.gz",
		Columns: []core.ColumnSpec{
			{FileColumn: "exposurestressorname", DBColumn: "exposure_stressor_name"},
			{FileColumn: "exposurestressorid", DBColumn: "exposure_stressor_id"},
			{FileColumn: "stressorsourcecategory", DBColumn: "stressor_source_category"},
			{FileColumn: "stressorsourcedetails", DBColumn: "stressor_source_details"},
			{FileColumn: "numberofstressorsamples", DBColumn: "number_of_stressor_samples", Type: core.FieldInt},
			{FileColumn: "stressornotes", DBColumn: "stressor_notes"},
			{FileColumn: "numberofreceptors", DBColumn: "number_of_receptors", Type: core.FieldInt},
			{FileColumn: "receptors", DBColumn: "receptors"},
			{FileColumn: "receptornotes", DBColumn: "receptor_notes"},
			{FileColumn: "smokingstatus", DBColumn: "smoking_status"},
			{FileColumn: "age", DBColumn: "age"},
			{FileColumn: "ageunitsofmeasurement", DBColumn: "age_units_of_measurement"},
			{FileColumn: "agequalifier", DBColumn: "age_qualifier"},
			{FileColumn: "sex", DBColumn: "sex"},
			{FileColumn: "race", DBColumn: "race"},
			{FileColumn: "methods", DBColumn: "methods"},
			{FileColumn: "detectionlimit", DBColumn: "detection_limit"},
			{FileColumn: "detectionlimituom", DBColumn: "detection_limit_uom"},
			{FileColumn: "detectionfrequency", DBColumn: "detection_frequency"},
			{FileColumn: "medium", DBColumn: "medium"},
			{FileColumn: "exposuremarker", DBColumn: "exposure_marker"},
			{FileColumn: "exposuremarkerid", DBColumn: "exposure_marker_id"},
			{FileColumn: "markerlevel", DBColumn: "marker_level"},
			{FileColumn: "markerunitsofmeasurement", DBColumn: "marker_units_of_measurement"},
			{FileColumn: "markermeasurementstatistic", DBColumn: "marker_measurement_statistic"},
			{FileColumn: "assaynotes", DBColumn: "assay_notes"},
			{FileColumn: "studycountries", DBColumn: "study_countries"},
			{FileColumn: "stateorprovince", DBColumn: "state_or_province"},
			{FileColumn: "citytownregionarea", DBColumn: "city_town_region_area"},
			{FileColumn: "exposureeventnotes", DBColumn: "exposure_event_notes"},
			{FileColumn: "outcomerelationship", DBColumn: "outcome_relationship"},
			{FileColumn: "diseasename", DBColumn: "disease_name"},
			{FileColumn: "diseaseid", DBColumn: "disease_id", Normalizer: ensureMeshPrefix},
			{FileColumn: "phenotypename", DBColumn: "phenotype_name"},
			{FileColumn: "phenotypeid", DBColumn: "phenotype_id"},
			{FileColumn: "phenotypeactiondegreetype", DBColumn: "phenotype_action_degree_type"},
			{FileColumn: "anatomy", DBColumn: "anatomy"},
			{FileColumn: "exposureoutcomenotes", DBColumn: "exposure_outcome_notes"},
			{FileColumn: "reference", DBColumn: "reference"},
			{FileColumn: "associatedstudytitles", DBColumn: "associated_study_titles"},
			{FileColumn: "enrollmentstartyear", DBColumn: "enrollment_start_year", Type: core.FieldInt},
			{FileColumn: "enrollmentendyear", DBColumn: "enrollment_end_year", Type: core.FieldInt},
			{FileColumn: "studyfactors", DBColumn: "study_factors"},
		},
	})
}
