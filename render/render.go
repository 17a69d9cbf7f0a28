package render

import (
	"strings"

	"github.com/jalad-shrimali/sector-kml/cells"
	"github.com/jalad-shrimali/sector-kml/geodesy"
	"github.com/jalad-shrimali/sector-kml/sector"
)

// IBSFolder is the fixed folder holding in-building sites.
const IBSFolder = "IBS"

const (
	DefaultLineWidth  = 2
	DefaultLabelScale = 0.8
	DefaultName       = "Sectors"
)

// Renderer turns records into a Document.
type Renderer struct {
	Sectors      *sector.Builder
	LineWidth    float64
	LabelScale   float64
	DocumentName string
}

// NewRenderer returns a Renderer with the standard styling and the given
// sector builder (nil means the default beamwidth).
func NewRenderer(b *sector.Builder) *Renderer {
	if b == nil {
		b = sector.New(sector.DefaultBeamwidthDeg)
	}
	return &Renderer{
		Sectors:      b,
		LineWidth:    DefaultLineWidth,
		LabelScale:   DefaultLabelScale,
		DocumentName: DefaultName,
	}
}

// pass holds the state of one Render call.
type pass struct {
	r        *Renderer
	doc      *Document
	ibs      *Folder
	bands    map[string]*Folder
	ibsSites map[string]struct{}
	labelled map[string]struct{}
}

// Render builds the document. IBS records become labels in the IBS folder,
// one per site name. Every other record with a radius becomes a wedge in its
// band's folder; a site gets one label the first time any of its cells is
// drawn, across all bands.
func (r *Renderer) Render(records []cells.Record) *Document {
	p := &pass{
		r:        r,
		doc:      &Document{Name: r.DocumentName},
		bands:    map[string]*Folder{},
		ibsSites: map[string]struct{}{},
		labelled: map[string]struct{}{},
	}
	p.ibs = p.folder(IBSFolder)

	for i := range records {
		rec := &records[i]
		if rec.SiteType == cells.SiteIBS {
			p.addIBS(rec)
			continue
		}
		p.addSector(rec)
	}
	return p.doc
}

func (p *pass) folder(name string) *Folder {
	f := &Folder{Name: name}
	p.doc.Folders = append(p.doc.Folders, f)
	return f
}

func (p *pass) band(name string) *Folder {
	if f, ok := p.bands[name]; ok {
		return f
	}
	f := p.folder(name)
	p.bands[name] = f
	return f
}

func (p *pass) addIBS(rec *cells.Record) {
	if _, seen := p.ibsSites[rec.SiteName]; seen {
		return
	}
	p.ibsSites[rec.SiteName] = struct{}{}
	p.ibs.Labels = append(p.ibs.Labels, Label{
		Name:  rec.SiteName,
		Point: geodesy.Point{Lon: rec.Longitude, Lat: rec.Latitude},
		Style: LabelStyle{LabelScale: p.r.LabelScale, IconHidden: true},
	})
}

func (p *pass) addSector(rec *cells.Record) {
	f := p.band(rec.FreqBand)

	ring := p.r.Sectors.Build(rec.Longitude, rec.Latitude, rec.AzimuthDeg, rec.RadiusM)
	if ring == nil {
		return
	}
	f.Polygons = append(f.Polygons, Polygon{
		Name:        rec.CellName,
		Description: Description(rec),
		Ring:        ring,
		Style: PolyStyle{
			LineColor: ColorHex(rec.ColorName),
			LineWidth: p.r.LineWidth,
			FillColor: ColorClear,
		},
	})

	if _, seen := p.labelled[rec.SiteName]; seen {
		return
	}
	p.labelled[rec.SiteName] = struct{}{}
	f.Labels = append(f.Labels, Label{
		Name:  rec.SiteName,
		Point: geodesy.Point{Lon: rec.Longitude, Lat: rec.Latitude},
		Style: LabelStyle{LabelColor: ColorWhite, LabelScale: p.r.LabelScale, IconHidden: true},
	})
}

// Description is the HTML balloon text attached to a cell's wedge.
func Description(rec *cells.Record) string {
	lines := []struct{ k, v string }{
		{"Cell Name", rec.CellName},
		{"Frequency", rec.FreqBand},
		{"Site_ID", rec.SiteID},
		{"Cell ID", rec.CellID},
		{"PCI", rec.PCI},
		{"EARFCN", rec.NumberText(cells.FieldEARFCN)},
		{"Height", rec.NumberText(cells.FieldHeight)},
		{"Azimuth", rec.NumberText(cells.FieldAzimuth)},
		{"Mechanical Tilt", rec.NumberText(cells.FieldMechanicalTilt)},
		{"Remote Electrical Tilt", rec.NumberText(cells.FieldElectricalTilt)},
		{"OAM IP", rec.OAMIP},
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.k)
		b.WriteString(": ")
		b.WriteString(l.v)
		b.WriteString("<br>")
	}
	return b.String()
}
