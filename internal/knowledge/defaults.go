package knowledge

// Default returns the built-in knowledge tables: gnomAD v3.1.2 frequencies
// for a handful of well-known variants, constraint scores for high-constraint
// genes, and FDA-level pharmacogenomics for the common cancer and
// rare-disease genes.
func Default() *Tables {
	return &Tables{
		ConsequenceSeverity: map[string]int{
			"frameshift_variant":  10,
			"nonsense_variant":    9,
			"splice_site_variant": 8,
			"missense_variant":    6,
			"inframe_deletion":    5,
			"inframe_insertion":   5,
			"synonymous_variant":  2,
			"intron_variant":      1,
			"Unknown":             3,
		},
		GeneConstraint: map[string]float64{
			"BRCA1": 0.95, "BRCA2": 0.92, "TP53": 0.98, "EGFR": 0.85,
			"KRAS": 0.88, "PTEN": 0.90, "ATM": 0.87, "MLH1": 0.93,
			"MSH2": 0.91, "APC": 0.89, "CDKN2A": 0.84, "STK11": 0.90,
			"CFTR": 0.86, "HBB": 0.82, "HEXA": 0.83, "PKD1": 0.88,
			"DMD": 0.92,
		},
		Pharmacogenomics: map[string]DrugRecommendation{
			"BRCA1": {
				Drugs:         []string{"Olaparib", "Talazoparib", "Rucaparib"},
				Indication:    "PARP inhibitors for BRCA-mutated cancers",
				EvidenceLevel: "FDA Approved",
			},
			"BRCA2": {
				Drugs:         []string{"Olaparib", "Talazoparib"},
				Indication:    "PARP inhibitors for BRCA-mutated cancers",
				EvidenceLevel: "FDA Approved",
			},
			"EGFR": {
				Drugs:         []string{"Osimertinib", "Gefitinib", "Erlotinib"},
				Indication:    "EGFR-mutated NSCLC",
				EvidenceLevel: "FDA Approved",
			},
			"TP53": {
				Drugs:         []string{"Clinical trial consideration"},
				Indication:    "Li-Fraumeni syndrome",
				EvidenceLevel: "Clinical Guidelines",
			},
			"CFTR": {
				Drugs:         []string{"Ivacaftor", "Lumacaftor", "Tezacaftor"},
				Indication:    "Cystic fibrosis with specific mutations",
				EvidenceLevel: "FDA Approved",
			},
			"HBB": {
				Drugs:         []string{"Hydroxyurea", "Voxelotor", "Crizanlizumab"},
				Indication:    "Sickle cell disease",
				EvidenceLevel: "FDA Approved",
			},
			"F8": {
				Drugs:         []string{"Factor VIII replacement"},
				Indication:    "Hemophilia A",
				EvidenceLevel: "Standard of Care",
			},
			"GBA": {
				Drugs:         []string{"Eliglustat", "Imiglucerase"},
				Indication:    "Gaucher disease",
				EvidenceLevel: "FDA Approved",
			},
		},
		DiseaseAssociations: map[string]DiseaseAssociation{
			"BRCA1": {
				Diseases:    []string{"Hereditary Breast and Ovarian Cancer"},
				Inheritance: "Autosomal Dominant",
				Prevalence:  "1 in 400",
				Category:    "Cancer Predisposition",
			},
			"BRCA2": {
				Diseases:    []string{"Hereditary Breast and Ovarian Cancer"},
				Inheritance: "Autosomal Dominant",
				Prevalence:  "1 in 400",
				Category:    "Cancer Predisposition",
			},
			"TP53": {
				Diseases:    []string{"Li-Fraumeni Syndrome"},
				Inheritance: "Autosomal Dominant",
				Prevalence:  "Rare",
				Category:    "Cancer Predisposition",
			},
			"EGFR": {
				Diseases:    []string{"Non-Small Cell Lung Cancer (somatic)"},
				Inheritance: "Somatic",
				Prevalence:  "15% of NSCLC",
				Category:    "Oncology",
			},
			"MLH1": {
				Diseases:    []string{"Lynch Syndrome"},
				Inheritance: "Autosomal Dominant",
				Prevalence:  "1 in 300",
				Category:    "Cancer Predisposition",
			},
			"MSH2": {
				Diseases:    []string{"Lynch Syndrome"},
				Inheritance: "Autosomal Dominant",
				Prevalence:  "1 in 300",
				Category:    "Cancer Predisposition",
			},
			"CFTR": {
				Diseases:    []string{"Cystic Fibrosis"},
				Inheritance: "Autosomal Recessive",
				Prevalence:  "1 in 3,500 (European)",
				Category:    "Rare Disease",
			},
			"HBB": {
				Diseases:    []string{"Sickle Cell Disease", "Beta-Thalassemia"},
				Inheritance: "Autosomal Recessive",
				Prevalence:  "1 in 365 (African American)",
				Category:    "Rare Disease",
			},
			"HEXA": {
				Diseases:    []string{"Tay-Sachs Disease"},
				Inheritance: "Autosomal Recessive",
				Prevalence:  "1 in 3,600 (Ashkenazi Jewish)",
				Category:    "Rare Disease",
			},
			"PKD1": {
				Diseases:    []string{"Polycystic Kidney Disease"},
				Inheritance: "Autosomal Dominant",
				Prevalence:  "1 in 1,000",
				Category:    "Rare Disease",
			},
			"DMD": {
				Diseases:    []string{"Duchenne Muscular Dystrophy"},
				Inheritance: "X-linked Recessive",
				Prevalence:  "1 in 5,000 males",
				Category:    "Rare Disease",
			},
			"FMR1": {
				Diseases:    []string{"Fragile X Syndrome"},
				Inheritance: "X-linked Dominant",
				Prevalence:  "1 in 4,000 males",
				Category:    "Rare Disease",
			},
			"GBA": {
				Diseases:    []string{"Gaucher Disease"},
				Inheritance: "Autosomal Recessive",
				Prevalence:  "1 in 40,000",
				Category:    "Rare Disease",
			},
			"F8": {
				Diseases:    []string{"Hemophilia A"},
				Inheritance: "X-linked Recessive",
				Prevalence:  "1 in 5,000 males",
				Category:    "Rare Disease",
			},
			"PAH": {
				Diseases:    []string{"Phenylketonuria (PKU)"},
				Inheritance: "Autosomal Recessive",
				Prevalence:  "1 in 10,000",
				Category:    "Rare Disease",
			},
			"SMN1": {
				Diseases:    []string{"Spinal Muscular Atrophy"},
				Inheritance: "Autosomal Recessive",
				Prevalence:  "1 in 10,000",
				Category:    "Rare Disease",
			},
		},
		ActionableGenes: map[string]bool{
			"BRCA1": true, "BRCA2": true, "TP53": true, "EGFR": true,
			"CFTR": true, "HBB": true, "F8": true, "GBA": true,
		},
		AncestryPopulations: map[string]string{
			"African American": "African",
			"East Asian":       "East_Asian",
			"European":         "Non_Finnish_European",
			"Hispanic/Latinx":  "Latino",
			"South Asian":      "South_Asian",
			"Middle Eastern":   "Middle_Eastern",
		},
		PopulationFrequencies: map[string]map[string]float64{
			"chr17:43044295:T>C": {
				"African": 0.00015, "Amish": 0.0, "Ashkenazi_Jewish": 0.00012,
				"East_Asian": 0.00008, "Finnish": 0.00009,
				"Non_Finnish_European": 0.0001, "Latino": 0.00013,
				"Middle_Eastern": 0.00011, "South_Asian": 0.00014, "Other": 0.00012,
			},
			"chr13:32315474:G>T": {
				"African": 0.00018, "Amish": 0.0, "Ashkenazi_Jewish": 0.00025,
				"East_Asian": 0.00006, "Finnish": 0.00008,
				"Non_Finnish_European": 0.0001, "Latino": 0.00011,
				"Middle_Eastern": 0.00009, "South_Asian": 0.00012, "Other": 0.0001,
			},
			"chr7:55242464:G>A": {
				"African": 0.0012, "Amish": 0.0, "Ashkenazi_Jewish": 0.0009,
				"East_Asian": 0.0015, "Finnish": 0.0008,
				"Non_Finnish_European": 0.001, "Latino": 0.0011,
				"Middle_Eastern": 0.001, "South_Asian": 0.0013, "Other": 0.001,
			},
			"chr2:67890:C>T": {
				"African": 0.00022, "Amish": 0.0, "Ashkenazi_Jewish": 0.00015,
				"East_Asian": 0.00018, "Finnish": 0.00016,
				"Non_Finnish_European": 0.0002, "Latino": 0.00019,
				"Middle_Eastern": 0.00017, "South_Asian": 0.00021, "Other": 0.0002,
			},
			"chr12:25398285:C>G": {
				"African": 0.00045, "Amish": 0.0, "Ashkenazi_Jewish": 0.0004,
				"East_Asian": 0.0006, "Finnish": 0.00042,
				"Non_Finnish_European": 0.0005, "Latino": 0.00048,
				"Middle_Eastern": 0.00046, "South_Asian": 0.00052, "Other": 0.0005,
			},
			"chr10:89624227:T>A": {
				"African": 0.00019, "Amish": 0.0, "Ashkenazi_Jewish": 0.00016,
				"East_Asian": 0.00014, "Finnish": 0.00015,
				"Non_Finnish_European": 0.0002, "Latino": 0.00018,
				"Middle_Eastern": 0.00017, "South_Asian": 0.00021, "Other": 0.0002,
			},
		},
	}
}
