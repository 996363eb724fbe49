package reconcile

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/opsvantage/triage-cli/internal/model"
	"github.com/opsvantage/triage-cli/internal/workbook"
)

// siteIndex is the deduplicated, projected site inventory keyed by join key.
type siteIndex struct {
	attrs      map[string]*model.SiteAttributes
	columns    []string // enrichment columns actually present in the source
	collisions int
}

// buildSiteIndex deduplicates the site table by join key, keeping the first
// occurrence in source order, and projects each surviving row down to the
// enrichment allow-list. Collisions between distinct sites whose names
// normalize identically are counted but not resolved; first-in wins.
func buildSiteIndex(sites *workbook.Table) *siteIndex {
	idx := &siteIndex{attrs: make(map[string]*model.SiteAttributes)}

	for _, col := range enrichmentColumns {
		if sites.HasColumn(col) {
			idx.columns = append(idx.columns, col)
		}
	}

	nameCol := siteNameColumn(sites)

	for _, row := range sites.Rows {
		var name string
		if nameCol != "" {
			name, _ = row.Get(nameCol)
		}
		key := NormalizeKey(name)

		if _, seen := idx.attrs[key]; seen {
			idx.collisions++
			continue
		}
		idx.attrs[key] = projectSiteRow(row, idx.columns)
	}

	if idx.collisions > 0 {
		zap.L().Warn("reconcile: site inventory join-key collisions, keeping first occurrence",
			zap.Int("collisions", idx.collisions),
		)
	}

	return idx
}

// projectSiteRow copies the present enrichment columns of a site row into
// explicit optional fields. Blank cells stay nil.
func projectSiteRow(row workbook.Row, columns []string) *model.SiteAttributes {
	attrs := &model.SiteAttributes{}
	for _, col := range columns {
		v, ok := row.Get(col)
		if !ok {
			continue
		}
		switch col {
		case colLatitude:
			attrs.Latitude = parseCoord(v)
		case colLongitude:
			attrs.Longitude = parseCoord(v)
		case colDistrictCouncil:
			attrs.DistrictCouncil = &v
		case colMunicipalDistrict:
			attrs.MunicipalDistrict = &v
		case colCounty:
			attrs.County = &v
		case colTechnology:
			attrs.Technology = &v
		case colSiteOwner:
			attrs.SiteOwner = &v
		case colGreenZone:
			attrs.GreenZone = &v
		case colModernisation:
			attrs.Modernisation = &v
		}
	}
	return attrs
}

func parseCoord(s string) *float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// leftJoin enriches every incident row with at most one site's attributes.
// Every incident survives regardless of match, so the output length always
// equals the incident table's row count.
func leftJoin(incidents *workbook.Table, idx *siteIndex) []model.MasterRecord {
	records := make([]model.MasterRecord, 0, incidents.Len())

	for _, row := range incidents.Rows {
		inc := incidentFromRow(row)
		rec := model.MasterRecord{
			Incident: inc,
			JoinKey:  NormalizeKey(inc.Site),
		}
		if attrs, ok := idx.attrs[rec.JoinKey]; ok {
			rec.Site = attrs
		}
		records = append(records, rec)
	}

	return records
}

func incidentFromRow(row workbook.Row) model.IncidentRecord {
	get := func(col string) string {
		v, _ := row.Get(col)
		return v
	}
	return model.IncidentRecord{
		Site:       get(colSite),
		YearWeek:   get(colYearWeek),
		Priority:   get(colPriority),
		SLA:        get(colSLA),
		MTTRHours:  get(colMTTRHours),
		MTTRTarget: get(colMTTRTarget),
		SiteRank:   get(colSiteRank),
		Summary:    get(colSummary),
		Cause:      get(colCause),
		CauseTier2: get(colCauseTier2),
	}
}
