package reconcile

import (
	"regexp"
	"strings"

	"github.com/opsvantage/triage-cli/internal/workbook"
)

// Site identifiers embed planning prefixes like "KZN_001_" ahead of the real
// site name. Only the matched span is removed so names like "KZN_001_SiteA"
// reduce to "sitea" after the character strip.
var (
	sitePrefixPattern = regexp.MustCompile(`kzn_\d+`)
	nonAlnumPattern   = regexp.MustCompile(`[^a-z0-9]`)
)

// NormalizeKey canonicalizes a free-text site identifier into a join key.
// Missing input yields "". The function is idempotent and locale-independent.
func NormalizeKey(s string) string {
	s = strings.ToLower(s)
	s = sitePrefixPattern.ReplaceAllString(s, "")
	s = nonAlnumPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// NormalizeSLA canonicalizes an SLA outcome for reliable IN/OUT comparisons.
func NormalizeSLA(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// siteNameColumn picks the site-name column of an inventory table. The
// column name varies between exports: SiteName is preferred, Site accepted.
// Neither being present means every key comes out empty.
func siteNameColumn(t *workbook.Table) string {
	for _, name := range []string{colSiteName, colSite} {
		if t.HasColumn(name) {
			return name
		}
	}
	return ""
}
