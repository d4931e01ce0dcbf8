package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), dataDir)
	require.NoError(t, err)

	assert.Equal(t, BackendCSV, cfg.Storage.Backend)
	assert.Equal(t, "02/01/2006", cfg.DateFormat)
	assert.True(t, cfg.RequirePositiveDuration())
	assert.Equal(t, []string{"running", "yoga", "cycling"}, cfg.Records.Activities)
	assert.Equal(t, []string{"cardio", "flexibility"}, cfg.Records.Types)
	assert.Equal(t, filepath.Join(dataDir, "fitness_journal.csv"), cfg.JournalFile())
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: sqlite
date_format: "2006-01-02"
records:
  require_positive_duration: false
  activities: [swimming]
`)
	dataDir := t.TempDir()

	cfg, err := Load(path, dataDir)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "2006-01-02", cfg.DateFormat)
	assert.False(t, cfg.RequirePositiveDuration())
	assert.Equal(t, []string{"swimming"}, cfg.Records.Activities)
	assert.Equal(t, []string{"cardio", "flexibility"}, cfg.Records.Types, "unset lists keep defaults")
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dataDir, "fitness_journal.db"), cfg.JournalFile())
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: postgres
date_format: "15:04"
`)

	_, err := Load(path, t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 2)
	assert.Equal(t, "storage.backend", fieldErrs[0].Field)
	assert.Equal(t, "date_format", fieldErrs[1].Field)
}

func TestRead_SkipsValidation(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: postgres
`)

	cfg, err := Read(path, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Storage.Backend)
	assert.Error(t, cfg.Validate())
}

func TestLoad_ParseError(t *testing.T) {
	path := writeConfig(t, "storage: [not, a, map")

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestValidate_EmptyDataDir(t *testing.T) {
	cfg := DefaultConfig()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, cfg.Validate(), &fieldErrs)
	assert.Equal(t, "data_dir", fieldErrs[0].Field)
}

func TestValidateDeep(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DataDir = t.TempDir()
		assert.NoError(t, cfg.ValidateDeep(""))
	})

	t.Run("data dir is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "data")
		require.NoError(t, os.WriteFile(file, nil, 0o644))

		cfg := DefaultConfig()
		cfg.DataDir = file

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, cfg.ValidateDeep(""), &fieldErrs)
		assert.Equal(t, "data_dir", fieldErrs[0].Field)
	})

	t.Run("config path is a directory", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DataDir = t.TempDir()

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, cfg.ValidateDeep(t.TempDir()), &fieldErrs)
		assert.Equal(t, "config", fieldErrs[0].Field)
	})
}

func TestWarnings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	assert.Empty(t, cfg.Warnings())

	cfg.DateFormat = "2006-01-02"
	cfg.Records.Activities = []string{"running", "Running"}
	cfg.Storage.File = "journal.csv"
	cfg.Storage.Backend = BackendJSON

	warnings := cfg.Warnings()
	require.Len(t, warnings, 3)
	assert.Equal(t, "date_format", warnings[0].Item)
	assert.Equal(t, "activities", warnings[1].Item)
	assert.Equal(t, "file", warnings[2].Item)
}
