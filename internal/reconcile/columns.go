package reconcile

// Incident sheet column names, as exported by the reporting tool.
const (
	colSite       = "Site"
	colYearWeek   = "Year Week"
	colPriority   = "Incident MSDP Priority"
	colSLA        = "IN or OUT SLA"
	colMTTRHours  = "MTTR (Hours)"
	colMTTRTarget = "MTTR Target"
	colSiteRank   = "Site Rank"
	colSummary    = "Summary"
	colCause      = "Cause"
	colCauseTier2 = "Cause Tier 2"
)

// Site inventory column names.
const (
	colSiteName          = "SiteName"
	colLatitude          = "Latitude"
	colLongitude         = "Longitude"
	colDistrictCouncil   = "DISTRICT_COUNCIL"
	colMunicipalDistrict = "MUNICIPAL_DISTRICT"
	colCounty            = "County"
	colTechnology        = "Technology"
	colSiteOwner         = "SiteOwner"
	colGreenZone         = "GreenZone"
	colModernisation     = "Modernisation (1800/21)"
)

// enrichmentColumns is the allow-list of inventory columns carried onto
// matched incidents. Projection intersects it with the columns actually
// present in the source; absent columns are omitted, never synthesized.
var enrichmentColumns = []string{
	colLatitude,
	colLongitude,
	colDistrictCouncil,
	colMunicipalDistrict,
	colCounty,
	colTechnology,
	colSiteOwner,
	colGreenZone,
	colModernisation,
}
