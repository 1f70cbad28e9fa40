package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sells-group/bridge-cli/internal/assign"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "bridge_data.csv", cfg.Data.Path)
	assert.Equal(t, 2, cfg.Data.HeaderRows)
	assert.Equal(t, 0, cfg.Data.SheetIndex)
	assert.True(t, cfg.Data.TrimSpace)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 5, cfg.Assign.MaxPerInspector)
	assert.Equal(t, assign.DefaultTiers(), cfg.Assign.Tiers)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
data:
  path: /srv/bridges.xlsx
  header_rows: 1
log:
  level: debug
  format: console
assign:
  max_per_inspector: 3
  tiers:
    - name: critical
      radius_km: 50
      max_bci: 40
    - name: routine
      radius_km: 25
      max_bci: 100
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/bridges.xlsx", cfg.Data.Path)
	assert.Equal(t, 1, cfg.Data.HeaderRows)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 3, cfg.Assign.MaxPerInspector)
	assert.Equal(t, []assign.Tier{
		{Name: "critical", RadiusKM: 50, MaxBCI: 40},
		{Name: "routine", RadiusKM: 25, MaxBCI: 100},
	}, cfg.Assign.Tiers)
	// Defaults still apply for unset values
	assert.Equal(t, 0, cfg.Data.SheetIndex)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
data:
  path: from-file.csv
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("BRIDGE_DATA_PATH", "from-env.csv")
	t.Setenv("BRIDGE_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "from-env.csv", cfg.Data.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("BRIDGE_ASSIGN_MAX_PER_INSPECTOR", "9")
	t.Setenv("BRIDGE_DATA_HEADER_ROWS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Assign.MaxPerInspector)
	assert.Equal(t, 0, cfg.Data.HeaderRows)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("data: [\n"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Data.Path = "bridge_data.csv"
	cfg.Data.HeaderRows = 2
	cfg.Assign.MaxPerInspector = 5
	cfg.Assign.Tiers = assign.DefaultTiers()
	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, validDefaults().Validate())
}

func TestValidate_CollectsProblems(t *testing.T) {
	cfg := validDefaults()
	cfg.Data.Path = ""
	cfg.Data.HeaderRows = -1
	cfg.Assign.MaxPerInspector = -2

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data.path is required")
	assert.Contains(t, err.Error(), "data.header_rows must be >= 0")
	assert.Contains(t, err.Error(), "assign.max_per_inspector must be >= 0")
}

func TestValidate_Tiers(t *testing.T) {
	tests := []struct {
		name  string
		tiers []assign.Tier
		want  string
	}{
		{name: "none", tiers: nil, want: "assign.tiers: at least one tier is required"},
		{name: "unnamed", tiers: []assign.Tier{{RadiusKM: 10}}, want: "assign.tiers: tier 0 has no name"},
		{name: "negative radius", tiers: []assign.Tier{{Name: "x", RadiusKM: -1}}, want: "radius must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validDefaults()
			cfg.Assign.Tiers = tt.tiers

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_SheetIndex(t *testing.T) {
	cfg := validDefaults()
	cfg.Data.SheetIndex = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data.sheet_index must be >= 0")
}
