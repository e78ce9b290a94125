package config

import (
	"testing"

	"github.com/skessler/dbmask/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReader_FullConfig(t *testing.T) {
	content := `
database:
  engine: mysql
  host: 1.2.3.4
  port: "3306"
  user: db_user
  password: db_password
  name: db_name
  dump_opts: "--quick --single-transaction"
  cmd_opts: "--quick"
`

	parser := NewParser()
	cfg, err := parser.LoadReader(content)

	require.NoError(t, err)
	assert.Equal(t, models.EngineMySQL, cfg.Engine)
	assert.Equal(t, "1.2.3.4", cfg.Host)
	assert.Equal(t, "3306", cfg.Port)
	assert.Equal(t, "db_user", cfg.User)
	assert.Equal(t, "db_password", cfg.Password)
	assert.Equal(t, "db_name", cfg.Name)
	assert.Equal(t, "--quick --single-transaction", cfg.DumpOpts)
	assert.Equal(t, "--quick", cfg.CmdOpts)
}

func TestLoadReader_MinimalConfig(t *testing.T) {
	content := `
database:
  engine: postgres
  name: db_name
`

	parser := NewParser()
	cfg, err := parser.LoadReader(content)

	require.NoError(t, err)
	assert.Equal(t, models.EnginePostgres, cfg.Engine)
	assert.Equal(t, "db_name", cfg.Name)
	assert.Empty(t, cfg.Host)
	assert.Empty(t, cfg.Port)
	assert.Empty(t, cfg.User)
	assert.Empty(t, cfg.Password)
}

func TestLoadReader_PasswordEnvExpansion(t *testing.T) {
	t.Setenv("DBMASK_TEST_PASSWORD", "secret-from-env")

	content := `
database:
  engine: postgres
  name: db_name
  password: ${DBMASK_TEST_PASSWORD}
`

	parser := NewParser()
	cfg, err := parser.LoadReader(content)

	require.NoError(t, err)
	assert.Equal(t, "secret-from-env", cfg.Password)
}

func TestLoadReader_MissingEngine(t *testing.T) {
	content := `
database:
  name: db_name
`

	parser := NewParser()
	_, err := parser.LoadReader(content)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.engine is required")
}

func TestLoadReader_UnknownEngine(t *testing.T) {
	content := `
database:
  engine: oracle
  name: db_name
`

	parser := NewParser()
	_, err := parser.LoadReader(content)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of")
}

func TestLoadReader_MissingName(t *testing.T) {
	content := `
database:
  engine: mysql
`

	parser := NewParser()
	_, err := parser.LoadReader(content)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.name is required")
}

func TestValidate_NilConfig(t *testing.T) {
	err := Validate(nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration is nil")
}

func TestConfig_SpecsCarryPerClientOpts(t *testing.T) {
	cfg := models.Config{
		Engine:   models.EngineMySQL,
		Host:     "1.2.3.4",
		Name:     "db_name",
		DumpOpts: "--single-transaction",
		CmdOpts:  "--quick",
	}

	dump := cfg.DumpSpec()
	assert.Equal(t, "--single-transaction", dump.AdditionalOpts)
	assert.Equal(t, "db_name", dump.Name)

	cmd := cfg.CmdSpec()
	assert.Equal(t, "--quick", cmd.AdditionalOpts)
	assert.Equal(t, "1.2.3.4", cmd.Host)
}
