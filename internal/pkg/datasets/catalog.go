package datasets

import (
	"regexp"

	"github.com/ougirez/territory-stats/internal/pkg/table"
)

// Dataset names. They double as Postgres table names.
const (
	Geography = "geography"

	Population = "population"
	Births     = "births"

	RevenueCommune    = "revenue_commune"
	RevenueEPCI       = "revenue_epci"
	RevenueDepartment = "revenue_department"
	RevenueRegion     = "revenue_region"
	RevenueFrance     = "revenue_france"

	ChildcareCommune    = "childcare_commune"
	ChildcareEPCI       = "childcare_epci"
	ChildcareDepartment = "childcare_department"
	ChildcareRegion     = "childcare_region"
	ChildcareFrance     = "childcare_france"
	ChildcareHistory    = "childcare_history"

	Families         = "families"
	FamilyEmployment = "family_employment"
	Schooling        = "schooling"

	EmploymentActivity        = "employment_activity"
	EmploymentCharacteristics = "employment_characteristics"

	SafetyCommune    = "safety_commune"
	SafetyDepartment = "safety_department"
	SafetyRegion     = "safety_region"

	History = "history"
)

// Dataset couples a source schema with its default file name under data.dir.
type Dataset struct {
	Schema table.Schema
	File   string
}

func (d Dataset) Name() string {
	return d.Schema.Name
}

var (
	revenueColumns   = []string{"MED", "D1", "D9", "TP60"}
	childcareColumns = []string{"TAUX_GLOBAL", "TAUX_EAJE", "TAUX_AM", "TAUX_PRESCO", "TAUX_GARDE_DOM"}
	safetyColumns    = []string{"FAITS", "TAUX_POUR_MILLE"}

	censusColumn = regexp.MustCompile(`^P(MUN|SDC|TOT)\d{4}$`)
)

func communeSchema(name, codeColumn, yearColumn string, numeric ...string) table.Schema {
	return table.Schema{
		Name:       name,
		CodeColumn: codeColumn,
		CodeWidth:  table.CommuneCodeWidth,
		YearColumn: yearColumn,
		Numeric:    numeric,
	}
}

func levelSchema(name string, width int, numeric []string) table.Schema {
	s := table.Schema{Name: name, YearColumn: "ANNEE", Numeric: numeric}
	if width > 0 {
		s.CodeColumn = "CODGEO"
		s.CodeWidth = width
	}
	return s
}

// Catalog lists every source, geography first.
var Catalog = []Dataset{
	{Schema: communeSchema(Geography, "CODGEO", ""), File: "communes.csv"},

	{Schema: communeSchema(Population, "CODGEO", "ANNEE", "AGED100", "NB"), File: "population_age.csv"},
	{Schema: communeSchema(Births, "GEO", "TIME_PERIOD", "OBS_VALUE"), File: "naissances.csv"},

	{Schema: levelSchema(RevenueCommune, table.CommuneCodeWidth, revenueColumns), File: "revenus_commune.csv"},
	{Schema: levelSchema(RevenueEPCI, table.EPCICodeWidth, revenueColumns), File: "revenus_epci.csv"},
	{Schema: levelSchema(RevenueDepartment, table.DepartmentCodeWidth, revenueColumns), File: "revenus_departement.csv"},
	{Schema: levelSchema(RevenueRegion, table.RegionCodeWidth, revenueColumns), File: "revenus_region.csv"},
	{Schema: levelSchema(RevenueFrance, 0, revenueColumns), File: "revenus_france.csv"},

	{Schema: levelSchema(ChildcareCommune, table.CommuneCodeWidth, childcareColumns), File: "accueil_commune.parquet"},
	{Schema: levelSchema(ChildcareEPCI, table.EPCICodeWidth, childcareColumns), File: "accueil_epci.parquet"},
	{Schema: levelSchema(ChildcareDepartment, table.DepartmentCodeWidth, childcareColumns), File: "accueil_departement.parquet"},
	{Schema: levelSchema(ChildcareRegion, table.RegionCodeWidth, childcareColumns), File: "accueil_region.parquet"},
	{Schema: levelSchema(ChildcareFrance, 0, childcareColumns), File: "accueil_france.parquet"},
	{
		Schema: communeSchema(ChildcareHistory, "NUM_COM", "ANNEE",
			"TAUX_COUV_GLOBAL", "TAUX_COUV_EAJE", "TAUX_COUV_AM", "TAUX_COUV_PRESCO", "TAUX_COUV_GARDE_DOM"),
		File: "accueil_commune_historique.csv",
	},

	{
		Schema: communeSchema(Families, "CODGEO", "ANNEE",
			"C_MEN", "C_COUPAENF", "C_FAMMONO", "C_HMONO", "C_FMONO", "C_COUPSENF"),
		File: "familles.csv",
	},
	{Schema: communeSchema(FamilyEmployment, "CODGEO", "ANNEE", "NB"), File: "familles_tf12.csv"},
	{Schema: communeSchema(Schooling, "CODGEO", "ANNEE", "AGEREV", "NB"), File: "scolarisation.csv"},

	{
		Schema: communeSchema(EmploymentActivity, "CODGEO", "ANNEE",
			"P_POP1564", "P_ACT1564", "P_ACTOCC1564", "P_CHOM1564"),
		File: "emploi_activite.csv",
	},
	{Schema: communeSchema(EmploymentCharacteristics, "CODGEO", "ANNEE", "P_F2554", "P_F2554_ACT"), File: "emploi_caracteristiques.csv"},

	{Schema: levelSchema(SafetyCommune, table.CommuneCodeWidth, safetyColumns), File: "delinquance_commune.csv"},
	{Schema: levelSchema(SafetyDepartment, table.DepartmentCodeWidth, safetyColumns), File: "delinquance_departement.csv"},
	{Schema: levelSchema(SafetyRegion, table.RegionCodeWidth, safetyColumns), File: "delinquance_region.csv"},

	{
		Schema: table.Schema{
			Name:           History,
			CodeColumn:     "CODGEO",
			CodeWidth:      table.CommuneCodeWidth,
			NumericPattern: censusColumn,
		},
		File: "population_historique.csv",
	},
}

func ByName(name string) (Dataset, bool) {
	for _, d := range Catalog {
		if d.Name() == name {
			return d, true
		}
	}
	return Dataset{}, false
}
