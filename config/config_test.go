package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmptyPathIsDefault(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, `{"beamwidth_deg": 65, "document_name": "Metro", "sheet_5g": "NR Cells"}`))
	require.NoError(t, err)
	assert.Equal(t, 65.0, cfg.BeamwidthDeg)
	assert.Equal(t, "Metro", cfg.DocumentName)
	assert.Equal(t, "NR Cells", cfg.Sheet5G)
	assert.Equal(t, 0.8, cfg.LabelScale)
	assert.Equal(t, "generated", cfg.OutputDir)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, `{"beamwidth_deg": 0}`))
	assert.ErrorContains(t, err, "beamwidth_deg")

	_, err = Load(writeConfig(t, `{"label_scale": -1}`))
	assert.ErrorContains(t, err, "label_scale")

	_, err = Load(writeConfig(t, `{not json`))
	assert.ErrorContains(t, err, "parsing config")

	_, err = Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorContains(t, err, "reading config")
}
