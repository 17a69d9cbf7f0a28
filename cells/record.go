// Package cells turns 4G/5G engineering tables into canonical cell records.
package cells

import (
	"strconv"
	"strings"
)

// SiteType is the closed set of site categories the renderer understands.
type SiteType int

const (
	SiteOther SiteType = iota
	SiteMacro
	SiteMicro
	SiteIBS
)

func (s SiteType) String() string {
	switch s {
	case SiteMacro:
		return "Macro"
	case SiteMicro:
		return "Micro"
	case SiteIBS:
		return "IBS"
	}
	return "Other"
}

// ParseSiteType matches the "Site Type" column value exactly.
func ParseSiteType(s string) SiteType {
	switch strings.TrimSpace(s) {
	case "Macro":
		return SiteMacro
	case "Micro":
		return SiteMicro
	case "IBS":
		return SiteIBS
	}
	return SiteOther
}

// Record is one cell/sector row in canonical form.
type Record struct {
	SiteName string
	SiteID   string
	CellID   string
	CellName string

	Longitude float64
	Latitude  float64

	PCI      string
	EARFCN   int
	FreqBand string

	HeightM           float64
	AzimuthDeg        float64 // [0, 360)
	MechanicalTiltDeg float64
	ElectricalTiltDeg float64

	OAMIP    string
	SiteType SiteType

	// Derived from EARFCN and SiteType. nil / "" when no rule applies.
	RadiusM   *float64
	ColorName string

	// Source text of numeric cells that did not parse, keyed by field. The
	// matching typed field reads as 0. Only fields the site type does not
	// need end up here.
	Unparsed map[Field]string

	Source string // table the row came from, e.g. "4G"
	Row    int    // 1-based data row within Source
}

// RawValue returns the source text of field f when it did not parse.
func (r Record) RawValue(f Field) (string, bool) {
	v, ok := r.Unparsed[f]
	return v, ok
}

// HasSector reports whether the record carries a drawable radius.
func (r Record) HasSector() bool { return r.RadiusM != nil }

// NumberText formats a numeric field for display. A cell that did not parse
// shows its source text instead of 0.
func (r Record) NumberText(f Field) string {
	if v, ok := r.Unparsed[f]; ok {
		return v
	}
	switch f {
	case FieldEARFCN:
		return strconv.Itoa(r.EARFCN)
	case FieldLongitude:
		return formatFloat(r.Longitude)
	case FieldLatitude:
		return formatFloat(r.Latitude)
	case FieldHeight:
		return formatFloat(r.HeightM)
	case FieldAzimuth:
		return formatFloat(r.AzimuthDeg)
	case FieldMechanicalTilt:
		return formatFloat(r.MechanicalTiltDeg)
	case FieldElectricalTilt:
		return formatFloat(r.ElectricalTiltDeg)
	}
	return ""
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
