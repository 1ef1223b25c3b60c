package domain

type Year = int

type PopulationRecord struct {
	TotalPopulation float64 `json:"total_population"`
	Under3          float64 `json:"under_3"`
	ThreeToFive     float64 `json:"three_to_five"`
	Under3Rate      float64 `json:"under_3_rate"`
	ThreeToFiveRate float64 `json:"three_to_five_rate"`
}

type BirthsRecord struct {
	Births float64 `json:"births"`
}

// RevenueRecord values come precomputed from the source for the requested level.
type RevenueRecord struct {
	MedianIncome float64 `json:"median_income"`
	FirstDecile  float64 `json:"first_decile"`
	NinthDecile  float64 `json:"ninth_decile"`
	PovertyRate  float64 `json:"poverty_rate"`
}

type ChildcareSource string

const (
	ChildcareSourcePrimary ChildcareSource = "primary"
	ChildcareSourceHistory ChildcareSource = "history"
)

type ChildcareRecord struct {
	GlobalRate      float64         `json:"global_rate"`
	CollectiveRate  float64         `json:"collective_rate"`
	ChildminderRate float64         `json:"childminder_rate"`
	PreschoolRate   float64         `json:"preschool_rate"`
	HomeCareRate    float64         `json:"home_care_rate"`
	Source          ChildcareSource `json:"source"`
}

type FamilyShares struct {
	CouplesWithChildren    float64 `json:"couples_with_children"`
	SingleParents          float64 `json:"single_parents"`
	SingleFathers          float64 `json:"single_fathers"`
	SingleMothers          float64 `json:"single_mothers"`
	CouplesWithoutChildren float64 `json:"couples_without_children"`
}

type FamilyRecord struct {
	TotalHouseholds        float64      `json:"total_households"`
	CouplesWithChildren    float64      `json:"couples_with_children"`
	SingleParents          float64      `json:"single_parents"`
	SingleFathers          float64      `json:"single_fathers"`
	SingleMothers          float64      `json:"single_mothers"`
	CouplesWithoutChildren float64      `json:"couples_without_children"`
	Percentages            FamilyShares `json:"percentages"`
}

type CategoryShare struct {
	Code       string  `json:"code"`
	Label      string  `json:"label"`
	Count      float64 `json:"count"`
	Percentage float64 `json:"percentage"`
}

type CohortBreakdown struct {
	Total      float64         `json:"total"`
	Categories []CategoryShare `json:"categories"`
}

type FamilyEmploymentRecord struct {
	Under3      CohortBreakdown `json:"under_3"`
	ThreeToFive CohortBreakdown `json:"three_to_five"`
}

type SchoolingRecord struct {
	Age2Total       float64 `json:"age_2_total"`
	Age2Enrolled    float64 `json:"age_2_enrolled"`
	Age2Rate        float64 `json:"age_2_rate"`
	Age3To5Total    float64 `json:"age_3_to_5_total"`
	Age3To5Enrolled float64 `json:"age_3_to_5_enrolled"`
	Age3To5Rate     float64 `json:"age_3_to_5_rate"`
}

type EmploymentRecord struct {
	Population1564    float64 `json:"population_15_64"`
	Active1564        float64 `json:"active_15_64"`
	Employed1564      float64 `json:"employed_15_64"`
	Unemployed1564    float64 `json:"unemployed_15_64"`
	Women2554         float64 `json:"women_25_54"`
	ActiveWomen2554   float64 `json:"active_women_25_54"`
	ActivityRate      float64 `json:"activity_rate"`
	EmploymentRate    float64 `json:"employment_rate"`
	UnemploymentRate  float64 `json:"unemployment_rate"`
	WomenActivityRate float64 `json:"women_25_54_activity_rate"`
}

// SafetyIndicator is passed through from the source; the rate is never recomputed.
type SafetyIndicator struct {
	Class        string  `json:"class"`
	Unit         string  `json:"unit,omitempty"`
	Facts        float64 `json:"facts"`
	RatePerMille float64 `json:"rate_per_mille"`
}

type HistoryRecord struct {
	Population float64 `json:"population"`
	Column     string  `json:"column"`
}
