package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("REPORT_RESTOCK_TOTAL_POLICY", "")
	t.Setenv("APP_TIMEZONE", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 14, cfg.Report.LeadTimeDays)
	assert.Equal(t, 30, cfg.Report.UsageWindowDays)
	assert.Equal(t, 70, cfg.Report.DefaultSafetyStock)
	assert.Equal(t, 8080, cfg.HTTP.Port)

	loc, err := cfg.App.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("REPORT_LEAD_TIME_DAYS", "7")
	t.Setenv("REPORT_RESTOCK_TOTAL_POLICY", "Selected")
	t.Setenv("APP_TIMEZONE", "America/Bogota")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Report.LeadTimeDays)
	assert.Equal(t, "selected", cfg.Report.RestockTotalPolicy)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.False(t, cfg.DB.AutoMigrate)

	loc, err := cfg.App.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Bogota", loc.String())
}

func TestLoad_PoliticaInvalida(t *testing.T) {
	t.Setenv("REPORT_RESTOCK_TOTAL_POLICY", "sometimes")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "ledger", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/ledger?sslmode=disable", c.DSN())
	assert.True(t, c.Enabled())
	assert.False(t, config.DBConfig{}.Enabled())
}
