// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/skydata/fits"
	"github.com/katalvlaran/skydata/internal/config"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every override so the host environment cannot leak in;
// t.Setenv restores the previous values afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SKYDATA_LOG_LEVEL", "SKYDATA_LOG_FORMAT",
		"SKYDATA_EXPORT_DATA_TYPE", "SKYDATA_EXPORT_PRECISION",
		"SKYDATA_INTERP_STRICT", "SKYDATA_MATCH_RADIUS_ARCSEC",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "console", cfg.Log.Format)
	require.Equal(t, "float32", cfg.Export.DataType)
	require.Zero(t, cfg.Export.Precision)
	require.False(t, cfg.Interp.Strict)
	require.Equal(t, 1.0, cfg.Match.RadiusArcsec)

	dt, err := cfg.DataType()
	require.NoError(t, err)
	require.Equal(t, fits.Float32, dt)
}

func TestLoadConfig_FileEnvAndDotenv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yaml := "log:\n  level: debug\nexport:\n  data_type: int16\n  precision: 0.5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skydata.yaml"), []byte(yaml), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SKYDATA_INTERP_STRICT=true\n"), 0o600))
	t.Setenv("SKYDATA_MATCH_RADIUS_ARCSEC", "2.5")

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "int16", cfg.Export.DataType)
	require.Equal(t, 0.5, cfg.Export.Precision)
	require.True(t, cfg.Interp.Strict)
	require.Equal(t, 2.5, cfg.Match.RadiusArcsec)

	// Environment beats the file.
	t.Setenv("SKYDATA_EXPORT_DATA_TYPE", "-64")
	cfg, err = config.LoadConfig(dir)
	require.NoError(t, err)
	dt, err := cfg.DataType()
	require.NoError(t, err)
	require.Equal(t, fits.Float64, dt)
}

func TestLoadConfig_Invalid(t *testing.T) {
	clearEnv(t)

	t.Setenv("SKYDATA_EXPORT_DATA_TYPE", "complex128")
	_, err := config.LoadConfig(t.TempDir())
	require.ErrorIs(t, err, fits.ErrBadDataType)

	t.Setenv("SKYDATA_EXPORT_DATA_TYPE", "float64")
	t.Setenv("SKYDATA_EXPORT_PRECISION", "-1")
	_, err = config.LoadConfig(t.TempDir())
	require.Error(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skydata.yaml"), []byte("log: [unclosed\n"), 0o600))
	t.Setenv("SKYDATA_EXPORT_PRECISION", "")
	_, err = config.LoadConfig(dir)
	require.Error(t, err)
}
