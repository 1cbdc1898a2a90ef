package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() *Settings {
	s := &Settings{}
	s.WebServer.Enabled = true
	s.WebServer.Port = "8080"
	s.Output.SQLite.Enabled = true
	s.Output.SQLite.Path = "riskradar.db"
	s.Import.MaxReportedErrors = 10
	return s
}

func TestValidateSettingsValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateSettings(validSettings()))
}

func TestValidateSettingsInvalidPort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		port string
	}{
		{"not a number", "eighty"},
		{"zero", "0"},
		{"too large", "70000"},
		{"empty", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := validSettings()
			s.WebServer.Port = tt.port
			err := ValidateSettings(s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "port")
		})
	}
}

func TestValidateSettingsPortIgnoredWhenDisabled(t *testing.T) {
	t.Parallel()

	s := validSettings()
	s.WebServer.Enabled = false
	s.WebServer.Port = "invalid"
	require.NoError(t, ValidateSettings(s))
}

func TestValidateSettingsNoDatabase(t *testing.T) {
	t.Parallel()

	s := validSettings()
	s.Output.SQLite.Enabled = false
	err := ValidateSettings(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no database backend enabled")
}

func TestValidateSettingsSQLitePathRequired(t *testing.T) {
	t.Parallel()

	s := validSettings()
	s.Output.SQLite.Path = ""
	require.Error(t, ValidateSettings(s))
}

func TestValidateSettingsMySQLRequiresHostAndDatabase(t *testing.T) {
	t.Parallel()

	s := validSettings()
	s.Output.SQLite.Enabled = false
	s.Output.MySQL.Enabled = true
	s.Output.MySQL.Host = "localhost"
	s.Output.MySQL.Database = ""
	require.Error(t, ValidateSettings(s))

	s.Output.MySQL.Database = "riskradar"
	require.NoError(t, ValidateSettings(s))
}

func TestValidateSettingsNegativeErrorCap(t *testing.T) {
	t.Parallel()

	s := validSettings()
	s.Import.MaxReportedErrors = -1
	require.Error(t, ValidateSettings(s))
}
