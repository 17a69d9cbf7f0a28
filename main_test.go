package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalad-shrimali/sector-kml/cells"
)

func writeDB(t *testing.T, dir, name string, s cells.Schema, cellID string) string {
	t.Helper()
	h := make([]string, len(s.Columns))
	r := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		h[i] = c.Source
		switch c.Field {
		case cells.FieldSiteName:
			r[i] = "SITE_" + s.Name
		case cells.FieldCellID:
			r[i] = cellID
		case cells.FieldEARFCN:
			r[i] = "9610"
		case cells.FieldFreqBand:
			r[i] = "L2100"
		case cells.FieldSiteType:
			r[i] = "Macro"
		}
	}
	path := filepath.Join(dir, name)
	body := strings.Join(h, ",") + "\n" + strings.Join(r, ",") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateAndLookup(t *testing.T) {
	dir := t.TempDir()
	lte := writeDB(t, dir, "lte.csv", cells.Schema4G, "10-1")
	nr := writeDB(t, dir, "nr.csv", cells.Schema5G, "20-1")
	kml := filepath.Join(dir, "out.kml")
	db := filepath.Join(dir, "runs.db")

	out, err := run(t, "generate", "--4g", lte, "--5g", nr, "-o", kml, "--db", db, "--beamwidth", "45")
	require.NoError(t, err, out)
	assert.Contains(t, out, "KML file created successfully at: "+kml)
	assert.FileExists(t, kml)

	out, err = run(t, "lookup", "--db", db, "201")
	require.NoError(t, err, out)
	var rec cells.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "SITE_5G", rec.SiteName)
	assert.Equal(t, "20-1", rec.CellID)
}

func TestGenerateRequiresInputs(t *testing.T) {
	_, err := run(t, "generate", "--4g", "a.xlsx")
	assert.Error(t, err)
}

func TestGenerateRejectsBadBeamwidth(t *testing.T) {
	dir := t.TempDir()
	lte := writeDB(t, dir, "lte.csv", cells.Schema4G, "1")
	nr := writeDB(t, dir, "nr.csv", cells.Schema5G, "2")
	_, err := run(t, "generate", "--4g", lte, "--5g", nr, "-o", filepath.Join(dir, "x.kml"), "--beamwidth", "0")
	assert.ErrorContains(t, err, "beamwidth_deg")
}

func TestLookupNeedsDatabase(t *testing.T) {
	_, err := run(t, "lookup", "123")
	assert.ErrorContains(t, err, "no database")
}
