package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Region is an operational region code. It selects which Sonar inventory
// sheet is resolved from the source workbook.
type Region string

const (
	RegionKZN Region = "KZN"
	RegionWES Region = "WES"
	RegionCEN Region = "CEN"
	RegionEAS Region = "EAS"
	RegionLIM Region = "LIM"
	RegionMPU Region = "MPU"
)

// Regions returns all known region codes in display order.
func Regions() []Region {
	return []Region{RegionKZN, RegionWES, RegionCEN, RegionEAS, RegionLIM, RegionMPU}
}

// ParseRegion validates a region code, accepting any casing.
func ParseRegion(s string) (Region, error) {
	code := Region(strings.ToUpper(strings.TrimSpace(s)))
	for _, r := range Regions() {
		if code == r {
			return r, nil
		}
	}
	return "", eris.Errorf("model: unknown region %q", s)
}

// SonarSheet returns the name of the region's site inventory sheet.
func (r Region) SonarSheet() string {
	return "Sonar_" + string(r)
}

func (r Region) String() string {
	return string(r)
}
