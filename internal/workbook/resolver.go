package workbook

import (
	"strings"

	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/opsvantage/triage-cli/internal/model"
)

// IncidentSheetName is the required name of the incident sheet.
const IncidentSheetName = "AnalysisSheet"

// sonarNameFragment is the substring used for the site-sheet fallback scan.
// The match is case-sensitive on purpose: that is how the operators name the
// inventory tabs.
const sonarNameFragment = "Sonar"

// canonicalSiteColumns is the minimal shape the site table degrades to when
// no Sonar sheet can be located, so downstream stages see a well-formed but
// empty table instead of failing.
var canonicalSiteColumns = []string{"Site", "Latitude", "Longitude", "County"}

// Sheets holds the two resolved tables of a source workbook.
type Sheets struct {
	Incidents *Table
	Sites     *Table
}

// Resolve locates the incident and site tables in a parsed workbook.
//
// The incident sheet is looked up by its exact name and is the only fatal
// path: its absence returns a DataLoadError. The site sheet is looked up by
// the region's exact Sonar name first, then by scanning the workbook's sheet
// list in file order for the first name containing "Sonar". Ties between
// equally-plausible Sonar sheets are resolved by that file order alone. When
// nothing matches, an empty canonically-shaped site table is substituted.
func Resolve(f *xlsx.File, region model.Region) (Sheets, error) {
	incidents, ok := f.Sheet[IncidentSheetName]
	if !ok {
		return Sheets{}, &DataLoadError{Reason: "incident sheet " + IncidentSheetName + " not found"}
	}

	sheets := Sheets{
		Incidents: tableFromSheet(incidents),
		Sites:     resolveSiteSheet(f, region),
	}

	zap.L().Debug("workbook: sheets resolved",
		zap.String("region", region.String()),
		zap.Int("incident_rows", sheets.Incidents.Len()),
		zap.String("site_sheet", sheets.Sites.Name),
		zap.Int("site_rows", sheets.Sites.Len()),
	)

	return sheets, nil
}

func resolveSiteSheet(f *xlsx.File, region model.Region) *Table {
	if sheet, ok := f.Sheet[region.SonarSheet()]; ok {
		return tableFromSheet(sheet)
	}

	for _, sheet := range f.Sheets {
		if strings.Contains(sheet.Name, sonarNameFragment) {
			zap.L().Debug("workbook: site sheet fallback",
				zap.String("wanted", region.SonarSheet()),
				zap.String("using", sheet.Name),
			)
			return tableFromSheet(sheet)
		}
	}

	zap.L().Info("workbook: no Sonar sheet found, continuing with empty site table",
		zap.String("region", region.String()),
	)
	return emptyTable(region.SonarSheet(), canonicalSiteColumns)
}
