package model

// IncidentRecord is one row of the incident sheet as read from the workbook.
// Numeric fields stay as source text until the metrics stage coerces them;
// the source uses locale-variant decimal separators and blank cells.
type IncidentRecord struct {
	Site       string `json:"site"`
	YearWeek   string `json:"year_week"`
	Priority   string `json:"priority,omitempty"`    // Incident MSDP Priority
	SLA        string `json:"sla,omitempty"`         // IN or OUT SLA
	MTTRHours  string `json:"mttr_hours,omitempty"`  // MTTR (Hours), numeric-as-text
	MTTRTarget string `json:"mttr_target,omitempty"` // MTTR Target, numeric-as-text
	SiteRank   string `json:"site_rank,omitempty"`   // Site Rank, numeric-as-text
	Summary    string `json:"summary,omitempty"`
	Cause      string `json:"cause,omitempty"`
	CauseTier2 string `json:"cause_tier2,omitempty"`
}

// SiteAttributes carries the enrichment columns projected from the site
// inventory sheet. Every field is optional: a nil field means the column was
// absent from the source or the cell was blank.
type SiteAttributes struct {
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	DistrictCouncil   *string  `json:"district_council,omitempty"`
	MunicipalDistrict *string  `json:"municipal_district,omitempty"`
	County            *string  `json:"county,omitempty"`
	Technology        *string  `json:"technology,omitempty"`
	SiteOwner         *string  `json:"site_owner,omitempty"`
	GreenZone         *string  `json:"green_zone,omitempty"`
	Modernisation     *string  `json:"modernisation,omitempty"` // Modernisation (1800/21)
}

// MasterRecord is an incident enriched with at most one site's attributes
// plus the derived triage metrics.
type MasterRecord struct {
	Incident IncidentRecord  `json:"incident"`
	JoinKey  string          `json:"join_key"`
	Site     *SiteAttributes `json:"site,omitempty"` // nil when the incident matched no inventory row

	// Coerced numeric fields. Malformed or missing source values are 0.
	MTTRHours  float64 `json:"mttr_hours"`
	MTTRTarget float64 `json:"mttr_target"`
	SiteRank   float64 `json:"site_rank"`

	// Derived metrics.
	Variance  float64 `json:"variance"`
	Frequency int     `json:"frequency"`
	RiskScore float64 `json:"risk_score"`
}

// County returns the enrichment county, or "" when the record is unmatched
// or the column was absent.
func (m *MasterRecord) County() string {
	if m.Site == nil || m.Site.County == nil {
		return ""
	}
	return *m.Site.County
}
