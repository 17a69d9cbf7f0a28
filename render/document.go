// Package render lays canonical cell records out as folders of sector
// polygons and site labels.
package render

import "github.com/jalad-shrimali/sector-kml/geodesy"

// Document is the logical content of a generated map.
type Document struct {
	Name    string
	Folders []*Folder
}

// Folder groups the shapes of one frequency band, or of the IBS sites.
type Folder struct {
	Name     string
	Polygons []Polygon
	Labels   []Label
}

// Polygon is one cell's coverage wedge.
type Polygon struct {
	Name        string
	Description string
	Ring        []geodesy.Point
	Style       PolyStyle
}

// PolyStyle colours are KML aabbggrr hex strings.
type PolyStyle struct {
	LineColor string
	LineWidth float64
	FillColor string
}

// Label is an icon-less placemark naming a site.
type Label struct {
	Name  string
	Point geodesy.Point
	Style LabelStyle
}

// LabelStyle describes a site label. An empty LabelColor leaves the viewer
// default in place.
type LabelStyle struct {
	LabelColor string
	LabelScale float64
	IconScale  float64
	IconHidden bool
}

// FolderStats counts what a folder holds.
type FolderStats struct {
	Name     string
	Polygons int
	Labels   int
}

// Stats summarises every folder in document order.
func (d *Document) Stats() []FolderStats {
	out := make([]FolderStats, 0, len(d.Folders))
	for _, f := range d.Folders {
		out = append(out, FolderStats{Name: f.Name, Polygons: len(f.Polygons), Labels: len(f.Labels)})
	}
	return out
}

// Folder returns the folder with the given name, or nil.
func (d *Document) Folder(name string) *Folder {
	for _, f := range d.Folders {
		if f.Name == name {
			return f
		}
	}
	return nil
}
