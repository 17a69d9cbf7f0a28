// Package report writes a summary workbook for a generated map.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jalad-shrimali/sector-kml/cells"
	"github.com/jalad-shrimali/sector-kml/render"
)

var cellHeader = []string{
	"Source", "Row", "SiteName", "SiteID", "CellID", "CellName",
	"Longitude", "Latitude", "PCI", "EARFCN", "Freq", "HT", "Azimuth",
	"MTILT", "ETILT", "OAM IP", "Site Type", "Radius", "Color",
}

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func cellRows(records []cells.Record) [][]string {
	rows := [][]string{cellHeader}
	for _, r := range records {
		radius := ""
		if r.RadiusM != nil {
			radius = num(*r.RadiusM)
		}
		rows = append(rows, []string{
			r.Source, strconv.Itoa(r.Row), r.SiteName, r.SiteID, r.CellID, r.CellName,
			r.NumberText(cells.FieldLongitude), r.NumberText(cells.FieldLatitude), r.PCI,
			r.NumberText(cells.FieldEARFCN), r.FreqBand, r.NumberText(cells.FieldHeight),
			r.NumberText(cells.FieldAzimuth), r.NumberText(cells.FieldMechanicalTilt),
			r.NumberText(cells.FieldElectricalTilt),
			r.OAMIP, r.SiteType.String(), radius, r.ColorName,
		})
	}
	return rows
}

func folderRows(doc *render.Document) [][]string {
	rows := [][]string{{"Folder", "Polygons", "Labels"}}
	for _, s := range doc.Stats() {
		rows = append(rows, []string{s.Name, strconv.Itoa(s.Polygons), strconv.Itoa(s.Labels)})
	}
	return rows
}

type site struct {
	name  string
	typ   string
	cells int
	bands []string
}

// siteRows lists sites in first-seen order.
func siteRows(records []cells.Record) [][]string {
	var order []string
	sites := map[string]*site{}
	for _, r := range records {
		s := sites[r.SiteName]
		if s == nil {
			s = &site{name: r.SiteName, typ: r.SiteType.String()}
			sites[r.SiteName] = s
			order = append(order, r.SiteName)
		}
		s.cells++
		if r.FreqBand != "" && !contains(s.bands, r.FreqBand) {
			s.bands = append(s.bands, r.FreqBand)
		}
	}

	rows := [][]string{{"SiteName", "Site Type", "Cells", "Bands"}}
	for _, name := range order {
		s := sites[name]
		bands := append([]string(nil), s.bands...)
		sort.Strings(bands)
		rows = append(rows, []string{s.name, s.typ, strconv.Itoa(s.cells), strings.Join(bands, ", ")})
	}
	return rows
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// Build assembles the workbook in memory.
func Build(records []cells.Record, doc *render.Document) (*excelize.File, error) {
	x := excelize.NewFile()
	add := func(name string, rows [][]string) error {
		idx, err := x.NewSheet(name)
		if err != nil {
			return err
		}
		for r, row := range rows {
			for c, v := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return err
				}
				if err := x.SetCellStr(name, cell, v); err != nil {
					return err
				}
			}
		}
		if name == "cells" {
			x.SetActiveSheet(idx)
		}
		return nil
	}
	for _, s := range []struct {
		name string
		rows [][]string
	}{
		{"cells", cellRows(records)},
		{"folders", folderRows(doc)},
		{"sites", siteRows(records)},
	} {
		if err := add(s.name, s.rows); err != nil {
			x.Close()
			return nil, fmt.Errorf("sheet %s: %w", s.name, err)
		}
	}
	if err := x.DeleteSheet("Sheet1"); err != nil {
		x.Close()
		return nil, err
	}
	return x, nil
}

// Write saves the summary workbook to path.
func Write(path string, records []cells.Record, doc *render.Document) error {
	x, err := Build(records, doc)
	if err != nil {
		return err
	}
	defer x.Close()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return x.SaveAs(path)
}
