package config

import (
	"os"
	"path/filepath"
	"testing"

	"homefix/internal/services/commission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTiers = `
tiers:
  - name: Starter
    min_volume: 0
    max_volume: 100000
    fee_percentage: "0.30"
    description: Up to $1,000
  - name: Enterprise
    min_volume: 100001
    fee_percentage: "0.10"
`

func TestParseTiers(t *testing.T) {
	tiers, err := ParseTiers([]byte(sampleTiers))
	require.NoError(t, err)
	require.Len(t, tiers, 2)

	assert.Equal(t, "Starter", tiers[0].Name)
	assert.Equal(t, int64(100000), tiers[0].MonthlyVolumeMax)
	assert.Equal(t, "0.3", tiers[0].FeePercentage.String())
	assert.True(t, tiers[1].IsUnbounded())

	_, err = commission.NewCalculator(tiers)
	assert.NoError(t, err)
}

func TestParseTiers_InvalidRate(t *testing.T) {
	_, err := ParseTiers([]byte("tiers:\n  - name: Bad\n    fee_percentage: thirty\n"))
	assert.Error(t, err)
}

func TestLoadTierFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTiers), 0o600))

	tiers, err := LoadTierFile(path)
	require.NoError(t, err)
	assert.Len(t, tiers, 2)

	_, err = LoadTierFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestShippedTierFileMatchesDefaults(t *testing.T) {
	tiers, err := LoadTierFile(filepath.Join("..", "..", "configs", "commission_tiers.yaml"))
	require.NoError(t, err)

	defaults := commission.DefaultTiers()
	require.Len(t, tiers, len(defaults))
	for i := range defaults {
		assert.Equal(t, defaults[i].Name, tiers[i].Name)
		assert.Equal(t, defaults[i].MonthlyVolumeMin, tiers[i].MonthlyVolumeMin)
		assert.Equal(t, defaults[i].MonthlyVolumeMax, tiers[i].MonthlyVolumeMax)
		assert.True(t, defaults[i].FeePercentage.Equal(tiers[i].FeePercentage))
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("HOMEFIX_TEST_INT", "42")
	t.Setenv("HOMEFIX_TEST_DURATION", "90s")
	t.Setenv("HOMEFIX_TEST_BAD", "nope")

	assert.Equal(t, 42, GetIntEnv("HOMEFIX_TEST_INT", 1))
	assert.Equal(t, int64(42), GetInt64Env("HOMEFIX_TEST_INT", 1))
	assert.Equal(t, 1, GetIntEnv("HOMEFIX_TEST_BAD", 1))
	assert.Equal(t, "90s", GetDurationEnv("HOMEFIX_TEST_DURATION", 0).String())
	assert.Equal(t, "fallback", GetEnv("HOMEFIX_TEST_UNSET", "fallback"))
}
