// Package kmlout encodes a rendered document as KML.
package kmlout

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/twpayne/go-kml/v3"

	"github.com/jalad-shrimali/sector-kml/geodesy"
	"github.com/jalad-shrimali/sector-kml/render"
)

// Write encodes doc to w.
func Write(w io.Writer, doc *render.Document) error {
	children := []kml.Element{kml.Name(doc.Name)}
	for _, f := range doc.Folders {
		children = append(children, folder(f))
	}
	return kml.KML(kml.Document(children...)).WriteIndent(w, "", "  ")
}

// WriteFile encodes doc into path, creating parent directories.
func WriteFile(path string, doc *render.Document) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func folder(f *render.Folder) kml.Element {
	children := []kml.Element{kml.Name(f.Name)}
	for _, p := range f.Polygons {
		children = append(children, polygon(p))
	}
	for _, l := range f.Labels {
		children = append(children, label(l))
	}
	return kml.Folder(children...)
}

func polygon(p render.Polygon) kml.Element {
	return kml.Placemark(
		kml.Name(p.Name),
		kml.Description(p.Description),
		kml.Style(
			kml.LineStyle(
				colorElement(p.Style.LineColor),
				kml.Width(p.Style.LineWidth),
			),
			kml.PolyStyle(
				colorElement(p.Style.FillColor),
			),
		),
		kml.Polygon(
			kml.OuterBoundaryIs(
				kml.LinearRing(
					kml.Coordinates(coordinates(p.Ring)...),
				),
			),
		),
	)
}

func label(l render.Label) kml.Element {
	labelStyle := []kml.Element{kml.Scale(l.Style.LabelScale)}
	if l.Style.LabelColor != "" {
		labelStyle = append([]kml.Element{colorElement(l.Style.LabelColor)}, labelStyle...)
	}
	iconStyle := []kml.Element{kml.Scale(l.Style.IconScale)}
	if l.Style.IconHidden {
		iconStyle = append(iconStyle, kml.Icon())
	}
	return kml.Placemark(
		kml.Name(l.Name),
		kml.Style(
			kml.IconStyle(iconStyle...),
			kml.LabelStyle(labelStyle...),
		),
		kml.Point(
			kml.Coordinates(kml.Coordinate{Lon: l.Point.Lon, Lat: l.Point.Lat}),
		),
	)
}

func coordinates(ring []geodesy.Point) []kml.Coordinate {
	out := make([]kml.Coordinate, len(ring))
	for i, p := range ring {
		out[i] = kml.Coordinate{Lon: p.Lon, Lat: p.Lat}
	}
	return out
}

// hexColor is a <color> element written verbatim. kml.Color goes through
// premultiplied RGBA, which zeroes the colour channels of transparent
// values such as render.ColorClear.
type hexColor string

// MarshalXML implements encoding/xml.Marshaler.MarshalXML.
func (c hexColor) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return e.EncodeElement(string(c), xml.StartElement{Name: xml.Name{Local: "color"}})
}

// colorElement validates a KML aabbggrr string. Malformed input is opaque
// white.
func colorElement(s string) kml.Element {
	if len(s) != 8 {
		return hexColor(render.ColorWhite)
	}
	if _, err := strconv.ParseUint(s, 16, 32); err != nil {
		return hexColor(render.ColorWhite)
	}
	return hexColor(strings.ToLower(s))
}
