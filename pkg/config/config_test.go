package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.True(t, cfg.Payments.FeeCredit.Equal(decimal.RequireFromString("4.99")))
	assert.True(t, cfg.Payments.FeeCash.IsZero())
	assert.Equal(t, "0 7 * * *", cfg.Scheduler.LowStockCron)
	assert.Equal(t, "55 23 * * *", cfg.Scheduler.FinanceReportCron)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "POSTGRES")
	v.Set("HTTP_PORT", "9090")
	v.Set("FEE_DEBIT", "2.5")
	v.Set("FINANCE_FIXED_COSTS", "1500")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Payments.FeeDebit.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, cfg.Finance.FixedCosts.Equal(decimal.NewFromInt(1500)))
}

func TestFromViper_Invalidos(t *testing.T) {
	v := viper.New()
	v.Set("FEE_CREDIT", "abc")
	_, err := fromViper(v)
	assert.Error(t, err, "una comisión no numérica debe fallar")

	v = viper.New()
	v.Set("FINANCE_FIXED_COSTS", "-10")
	_, err = fromViper(v)
	assert.Error(t, err, "costos fijos negativos deben fallar")

	v = viper.New()
	v.Set("STORAGE_DRIVER", "mongo")
	_, err = fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "pdv", Password: "p@ss", DBName: "pdv", SSLMode: "disable"}
	assert.Equal(t, "postgres://pdv:p%40ss@db:5432/pdv?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
