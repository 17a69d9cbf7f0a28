package cells

import (
	"math"
	"strconv"
	"strings"

	"github.com/jalad-shrimali/sector-kml/geodesy"
)

// Table is a raw sheet: a header row and the data rows below it.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Field names a canonical record attribute.
type Field int

const (
	FieldSiteName Field = iota
	FieldSiteID
	FieldCellID
	FieldCellName
	FieldLongitude
	FieldLatitude
	FieldPCI
	FieldEARFCN
	FieldFreqBand
	FieldHeight
	FieldAzimuth
	FieldMechanicalTilt
	FieldElectricalTilt
	FieldSiteType
	FieldOAMIP
)

// Column binds a canonical field to the source column that feeds it.
type Column struct {
	Field  Field
	Source string
}

// Schema is the column layout of one vendor export.
type Schema struct {
	Name    string
	Columns []Column
}

// Schema4G is the LTE engineering database layout.
var Schema4G = Schema{
	Name: "4G",
	Columns: []Column{
		{FieldSiteName, "Physical Site ID"},
		{FieldSiteID, "EnodeB ID"},
		{FieldCellID, "Cell ID"},
		{FieldCellName, "Cell Name"},
		{FieldLongitude, "Cell Longitude"},
		{FieldLatitude, "Cell Latitude"},
		{FieldPCI, "PCI(Physical Cell Identifier)"},
		{FieldEARFCN, "Downlink Frequency"},
		{FieldFreqBand, "Frequency Band"},
		{FieldHeight, "Antenna Height"},
		{FieldAzimuth, "Azimuth Angle"},
		{FieldMechanicalTilt, "Mechanical Downtilt"},
		{FieldElectricalTilt, "Electrical Downtilt"},
		{FieldSiteType, "Site Type"},
		{FieldOAMIP, "Oam IP"},
	},
}

// Schema5G is the NR engineering database layout.
var Schema5G = Schema{
	Name: "5G",
	Columns: []Column{
		{FieldSiteName, "Physical Site ID"},
		{FieldSiteID, "GnodeB ID"},
		{FieldCellID, "Cell ID"},
		{FieldCellName, "Cell Name"},
		{FieldLongitude, "Cell Longitude"},
		{FieldLatitude, "Cell Latitude"},
		{FieldPCI, "Physical Cell ID"},
		{FieldEARFCN, "Downlink Frequency"},
		{FieldFreqBand, "Frequency Band"},
		{FieldHeight, "Antenna Height"},
		{FieldAzimuth, "Azimuth Angle"},
		{FieldMechanicalTilt, "Mechanical Downtilt"},
		{FieldElectricalTilt, "Electrical Downtilt"},
		{FieldSiteType, "Site Type"},
		{FieldOAMIP, "OAM IP"},
	},
}

func colIdx(header []string, key string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == key {
			return i
		}
	}
	return -1
}

// rowReader pulls typed values out of one data row. Numeric text that does
// not parse reads as 0 and is kept in bad until the row decides whether it
// needed the field.
type rowReader struct {
	idx map[Field]int
	rec []string
	bad map[Field]error
	raw map[Field]string
}

func (r *rowReader) str(f Field) string {
	i := r.idx[f]
	if i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

func (r *rowReader) fail(f Field, v string, err error) {
	if r.bad == nil {
		r.bad = make(map[Field]error)
		r.raw = make(map[Field]string)
	}
	r.bad[f] = err
	r.raw[f] = v
}

func (r *rowReader) float(f Field) float64 {
	v := r.str(f)
	if v == "" {
		return 0
	}
	x, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(f, v, err)
		return 0
	}
	return x
}

// integer accepts integral float text such as "9610.0", which spreadsheets
// produce for numeric cells.
func (r *rowReader) integer(f Field) int {
	v := r.str(f)
	if v == "" {
		return 0
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	x, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(f, v, err)
		return 0
	}
	if x != math.Trunc(x) {
		r.fail(f, v, strconv.ErrSyntax)
		return 0
	}
	return int(x)
}

// requiredFields lists the numeric fields a site type cannot do without:
// IBS rows place a label, Macro and Micro rows also aim a wedge.
func requiredFields(st SiteType) []Field {
	switch st {
	case SiteMacro, SiteMicro:
		return []Field{FieldLongitude, FieldLatitude, FieldAzimuth}
	case SiteIBS:
		return []Field{FieldLongitude, FieldLatitude}
	}
	return nil
}

func (s Schema) source(f Field) string {
	for _, c := range s.Columns {
		if c.Field == f {
			return c.Source
		}
	}
	return ""
}

func blankRow(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Records maps every data row of t onto canonical records. Radius and
// colour are not derived here and no site-type filtering happens.
//
// Unreadable numbers only fail the run when the row's site type needs them
// (see requiredFields). Elsewhere they read as 0 and keep their text in
// Record.Unparsed.
func (s Schema) Records(t *Table) ([]Record, error) {
	idx := make(map[Field]int, len(s.Columns))
	for _, c := range s.Columns {
		i := colIdx(t.Header, c.Source)
		if i < 0 {
			return nil, &MissingFieldError{Table: s.Name, Column: c.Source}
		}
		idx[c.Field] = i
	}

	out := make([]Record, 0, len(t.Rows))
	for n, rec := range t.Rows {
		if blankRow(rec) {
			continue
		}
		r := &rowReader{idx: idx, rec: rec}
		cell := Record{
			SiteName:          r.str(FieldSiteName),
			SiteID:            r.str(FieldSiteID),
			CellID:            r.str(FieldCellID),
			CellName:          r.str(FieldCellName),
			Longitude:         r.float(FieldLongitude),
			Latitude:          r.float(FieldLatitude),
			PCI:               r.str(FieldPCI),
			EARFCN:            r.integer(FieldEARFCN),
			FreqBand:          r.str(FieldFreqBand),
			HeightM:           r.float(FieldHeight),
			AzimuthDeg:        geodesy.NormalizeBearing(r.float(FieldAzimuth)),
			MechanicalTiltDeg: r.float(FieldMechanicalTilt),
			ElectricalTiltDeg: r.float(FieldElectricalTilt),
			OAMIP:             r.str(FieldOAMIP),
			SiteType:          ParseSiteType(r.str(FieldSiteType)),
			Source:            s.Name,
			Row:               n + 1,
		}
		for _, f := range requiredFields(cell.SiteType) {
			if err, ok := r.bad[f]; ok {
				return nil, &ValueError{Table: s.Name, Row: n + 1, Column: s.source(f), Value: r.raw[f], Err: err}
			}
		}
		cell.Unparsed = r.raw
		out = append(out, cell)
	}
	return out, nil
}
