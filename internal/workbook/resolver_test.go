package workbook

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/opsvantage/triage-cli/internal/model"
)

// sheetFixture is one sheet of a test workbook; fixtures are ordered so
// fallback-order tests are deterministic.
type sheetFixture struct {
	name string
	rows [][]string
}

func workbookBytes(t *testing.T, sheets []sheetFixture) []byte {
	t.Helper()
	f := xlsx.NewFile()
	for _, s := range sheets {
		sheet, err := f.AddSheet(s.name)
		require.NoError(t, err)
		for _, rowData := range s.rows {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				row.AddCell().SetString(cellData)
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func openFixture(t *testing.T, sheets []sheetFixture) *xlsx.File {
	t.Helper()
	f, err := Open(workbookBytes(t, sheets))
	require.NoError(t, err)
	return f
}

func TestResolve_ExactSonarSheet(t *testing.T) {
	f := openFixture(t, []sheetFixture{
		{IncidentSheetName, [][]string{{"Site", "Year Week"}, {"KZN_001_SiteA", "202433"}}},
		{"Sonar_KZN", [][]string{{"SiteName", "Latitude"}, {"SiteA", "1.0"}}},
		{"Sonar_WES", [][]string{{"SiteName"}, {"Other"}}},
	})

	sheets, err := Resolve(f, model.RegionKZN)
	require.NoError(t, err)
	assert.Equal(t, "Sonar_KZN", sheets.Sites.Name)
	assert.Equal(t, 1, sheets.Sites.Len())
	assert.Equal(t, 1, sheets.Incidents.Len())
}

func TestResolve_FallbackFirstSonarInFileOrder(t *testing.T) {
	f := openFixture(t, []sheetFixture{
		{IncidentSheetName, [][]string{{"Site"}}},
		{"Old Sonar Export", [][]string{{"Site"}, {"First"}}},
		{"Sonar_WES", [][]string{{"Site"}, {"Second"}}},
	})

	sheets, err := Resolve(f, model.RegionKZN)
	require.NoError(t, err)
	assert.Equal(t, "Old Sonar Export", sheets.Sites.Name)
}

func TestResolve_FallbackIsCaseSensitive(t *testing.T) {
	f := openFixture(t, []sheetFixture{
		{IncidentSheetName, [][]string{{"Site"}}},
		{"sonar_kzn", [][]string{{"Site"}, {"lowercase"}}},
	})

	sheets, err := Resolve(f, model.RegionKZN)
	require.NoError(t, err)
	// "sonar_kzn" does not contain "Sonar"; the canonical empty table wins.
	assert.Equal(t, 0, sheets.Sites.Len())
	assert.Equal(t, []string{"Site", "Latitude", "Longitude", "County"}, sheets.Sites.Columns)
}

func TestResolve_NoSonarSheetYieldsEmptyCanonicalTable(t *testing.T) {
	f := openFixture(t, []sheetFixture{
		{IncidentSheetName, [][]string{{"Site", "Year Week"}, {"A", "202401"}}},
	})

	sheets, err := Resolve(f, model.RegionLIM)
	require.NoError(t, err)
	assert.Equal(t, 0, sheets.Sites.Len())
	assert.Equal(t, []string{"Site", "Latitude", "Longitude", "County"}, sheets.Sites.Columns)
	assert.Equal(t, 1, sheets.Incidents.Len())
}

func TestResolve_MissingIncidentSheetIsFatal(t *testing.T) {
	f := openFixture(t, []sheetFixture{
		{"Sonar_KZN", [][]string{{"SiteName"}}},
	})

	_, err := Resolve(f, model.RegionKZN)
	require.Error(t, err)
	assert.True(t, IsDataLoadError(err))
	assert.Contains(t, err.Error(), IncidentSheetName)
}

func TestOpen_CorruptWorkbook(t *testing.T) {
	_, err := Open([]byte("not an xlsx file"))
	require.Error(t, err)
}

func TestTable_PreservesFormattedText(t *testing.T) {
	f := openFixture(t, []sheetFixture{
		{IncidentSheetName, [][]string{
			{"Site", "Year Week"},
			{"A", "0205"}, // leading zero must survive
		}},
	})

	sheets, err := Resolve(f, model.RegionKZN)
	require.NoError(t, err)
	week, ok := sheets.Incidents.Rows[0].Get("Year Week")
	require.True(t, ok)
	assert.Equal(t, "0205", week)
}

func TestRowGet_BlankCellReadsAsMissing(t *testing.T) {
	row := Row{"County": "  ", "Site": "A"}

	_, ok := row.Get("County")
	assert.False(t, ok)

	v, ok := row.Get("Site")
	assert.True(t, ok)
	assert.Equal(t, "A", v)

	_, ok = row.Get("Missing")
	assert.False(t, ok)
}

func TestTable_ShortAndLongRows(t *testing.T) {
	f := openFixture(t, []sheetFixture{
		{IncidentSheetName, [][]string{
			{"Site", "Year Week"},
			{"OnlySite"},                      // short row: Year Week absent
			{"Full", "202433", "spill-over"},  // long row: extra cell dropped
		}},
	})

	sheets, err := Resolve(f, model.RegionKZN)
	require.NoError(t, err)
	require.Equal(t, 2, sheets.Incidents.Len())

	_, ok := sheets.Incidents.Rows[0].Get("Year Week")
	assert.False(t, ok)

	week, ok := sheets.Incidents.Rows[1].Get("Year Week")
	assert.True(t, ok)
	assert.Equal(t, "202433", week)
	assert.Len(t, sheets.Incidents.Columns, 2)
}
