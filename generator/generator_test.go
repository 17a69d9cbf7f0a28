package generator

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalad-shrimali/sector-kml/celldb"
	"github.com/jalad-shrimali/sector-kml/cells"
	"github.com/jalad-shrimali/sector-kml/config"
	"github.com/jalad-shrimali/sector-kml/logging"
	"github.com/jalad-shrimali/sector-kml/render"
)

func header(s cells.Schema) []string {
	h := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		h[i] = c.Source
	}
	return h
}

func row(s cells.Schema, vals map[cells.Field]string) []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = vals[c.Field]
	}
	return out
}

func cell(site, earfcn, band string) map[cells.Field]string {
	return map[cells.Field]string{
		cells.FieldSiteName:  site,
		cells.FieldCellName:  site + "_1",
		cells.FieldCellID:    "1",
		cells.FieldLongitude: "0",
		cells.FieldLatitude:  "0",
		cells.FieldEARFCN:    earfcn,
		cells.FieldFreqBand:  band,
		cells.FieldAzimuth:   "0",
		cells.FieldSiteType:  "Macro",
	}
}

func tables() (*cells.Table, *cells.Table) {
	lte := &cells.Table{Name: "4G", Header: header(cells.Schema4G), Rows: [][]string{
		row(cells.Schema4G, cell("S1", "9610", "L2100")),
	}}
	nr := &cells.Table{Name: "5G", Header: header(cells.Schema5G), Rows: [][]string{
		row(cells.Schema5G, cell("N1", "633334", "N78")),
	}}
	return lte, nr
}

func TestGenerateEndToEnd(t *testing.T) {
	t.Parallel()

	lte, nr := tables()
	doc, records, err := Generate(lte, nr, Renderer(config.Default()))
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.Len(t, doc.Folders, 3)
	assert.Equal(t, render.IBSFolder, doc.Folders[0].Name)
	for _, f := range doc.Folders[1:] {
		assert.Len(t, f.Polygons, 1, f.Name)
		assert.Len(t, f.Labels, 1, f.Name)
	}
	assert.Equal(t, "L2100", doc.Folders[1].Name)
	assert.Equal(t, "ffff0000", doc.Folders[1].Polygons[0].Style.LineColor)
	assert.Equal(t, "N78", doc.Folders[2].Name)
	assert.Equal(t, render.ColorHex("orange"), doc.Folders[2].Polygons[0].Style.LineColor)
}

func TestGenerateSharedBand(t *testing.T) {
	t.Parallel()

	lte, nr := tables()
	nr.Rows[0] = row(cells.Schema5G, cell("N1", "9610", "L2100"))
	doc, _, err := Generate(lte, nr, Renderer(config.Default()))
	require.NoError(t, err)
	require.Len(t, doc.Folders, 2)
	assert.Len(t, doc.Folders[1].Polygons, 2)
	assert.Len(t, doc.Folders[1].Labels, 2)
}

func TestRendererFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.BeamwidthDeg = 60
	cfg.DocumentName = "Metro"
	cfg.LineWidth = 3
	r := Renderer(cfg)
	assert.Equal(t, 60.0, r.Sectors.BeamwidthDeg)
	assert.Equal(t, "Metro", r.DocumentName)
	assert.Equal(t, 3.0, r.LineWidth)
	assert.Len(t, r.Sectors.Bearings(0), 61)
}

func writeCSV(t *testing.T, dir, name string, tbl *cells.Table) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.Write(tbl.Header))
	require.NoError(t, w.WriteAll(tbl.Rows))
	require.NoError(t, f.Close())
	return path
}

func TestRunWritesOutputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lte, nr := tables()
	opts := Options{
		Path4G:   writeCSV(t, dir, "lte.csv", lte),
		Path5G:   writeCSV(t, dir, "nr.csv", nr),
		Output:   filepath.Join(dir, "out", "sites.kml"),
		Report:   filepath.Join(dir, "out", "sites.xlsx"),
		Database: filepath.Join(dir, "runs.db"),
		Config:   config.Default(),
		Log:      logging.Discard(),
	}

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Records)
	assert.Len(t, res.Folders, 3)
	assert.FileExists(t, opts.Output)
	assert.FileExists(t, opts.Report)

	store, err := celldb.Open(opts.Database)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.Runs(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, res.RunID, runs[0].ID)
	assert.Equal(t, 2, runs[0].Cells)
}

func TestRunMissingColumn(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lte, nr := tables()
	lte.Header[2] = "CellID"
	_, err := Run(context.Background(), Options{
		Path4G: writeCSV(t, dir, "lte.csv", lte),
		Path5G: writeCSV(t, dir, "nr.csv", nr),
		Output: filepath.Join(dir, "sites.kml"),
		Config: config.Default(),
		Log:    logging.Discard(),
	})

	var mfe *cells.MissingFieldError
	require.True(t, errors.As(err, &mfe))
	assert.Equal(t, "4G", mfe.Table)
	assert.Equal(t, "Cell ID", mfe.Column)
	assert.NoFileExists(t, filepath.Join(dir, "sites.kml"))
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
