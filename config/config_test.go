package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarketProfiles(t *testing.T) {
	data := []byte(`
markets:
  "46901":
    labor_cost_index: 1.2
    vacancy_rate: 0.10
  default:
    labor_cost_index: 1.0
    vacancy_rate: 0.05
`)
	profiles, err := ParseMarketProfiles(data)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, 1.2, profiles["46901"].LaborCostIndex)
	assert.Equal(t, 0.10, profiles["46901"].VacancyRate)
	assert.Equal(t, 0.05, profiles[DefaultMarketKey].VacancyRate)
}

func TestParseMarketProfilesUnquotedZip(t *testing.T) {
	data := []byte(`
markets:
  46901: {labor_cost_index: 1.2, vacancy_rate: 0.1}
  default: {labor_cost_index: 1.0, vacancy_rate: 0.05}
`)
	profiles, err := ParseMarketProfiles(data)
	require.NoError(t, err)
	assert.Contains(t, profiles, "46901")
}

func TestParseMarketProfilesErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantKey string
	}{
		{
			name:    "no default entry",
			yaml:    "markets:\n  \"46901\": {labor_cost_index: 1.2, vacancy_rate: 0.1}\n",
			wantKey: "markets.default",
		},
		{
			name:    "no markets section",
			yaml:    "other: 1\n",
			wantKey: "markets",
		},
		{
			name:    "default without vacancy rate",
			yaml:    "markets:\n  default: {labor_cost_index: 1.0}\n",
			wantKey: "markets.default.vacancy_rate",
		},
		{
			name:    "empty default entry",
			yaml:    "markets:\n  default:\n",
			wantKey: "markets.default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMarketProfiles([]byte(tt.yaml))
			require.Error(t, err)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "want ConfigError, got %T", err)
			assert.Equal(t, tt.wantKey, cfgErr.Key)
			assert.Contains(t, err.Error(), tt.wantKey)
		})
	}
}

func TestParseMarketProfilesPermissiveValues(t *testing.T) {
	// Range checks belong to ingestion, so odd values load as-is.
	data := []byte("markets:\n  default: {labor_cost_index: -1, vacancy_rate: 1.5}\n")
	profiles, err := ParseMarketProfiles(data)
	require.NoError(t, err)
	assert.Equal(t, 1.5, profiles[DefaultMarketKey].VacancyRate)
}

func TestParseScoringConfig(t *testing.T) {
	data := []byte(`
weights:
  rent_to_cost: 0.5
  maintenance_risk: 0.2
  vacancy_adjusted: 0.3
scaling:
  target_yield: 0.015
  max_risk_score: 300
`)
	cfg, err := ParseScoringConfig(data)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Weights.RentToCost)
	assert.Equal(t, 0.2, cfg.Weights.MaintenanceRisk)
	assert.Equal(t, 0.3, cfg.Weights.VacancyAdjusted)
	assert.Equal(t, 0.015, cfg.Scaling.TargetYield)
	assert.Equal(t, 300.0, cfg.Scaling.MaxRiskScore)
}

func TestParseScoringConfigZeroWeightAllowed(t *testing.T) {
	data := []byte(`
weights: {rent_to_cost: 1, maintenance_risk: 0, vacancy_adjusted: 0}
scaling: {target_yield: 0.01, max_risk_score: 100}
`)
	cfg, err := ParseScoringConfig(data)
	require.NoError(t, err)
	assert.Zero(t, cfg.Weights.MaintenanceRisk)
}

func TestParseScoringConfigErrors(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		wantKey     string
		wantMissing bool
	}{
		{
			name:        "missing weights",
			yaml:        "scaling: {target_yield: 0.01, max_risk_score: 100}\n",
			wantKey:     "weights",
			wantMissing: true,
		},
		{
			name:        "missing one weight",
			yaml:        "weights: {rent_to_cost: 0.5, maintenance_risk: 0.5}\nscaling: {target_yield: 0.01, max_risk_score: 100}\n",
			wantKey:     "weights.vacancy_adjusted",
			wantMissing: true,
		},
		{
			name:        "missing max risk",
			yaml:        "weights: {rent_to_cost: 0.5, maintenance_risk: 0.2, vacancy_adjusted: 0.3}\nscaling: {target_yield: 0.01}\n",
			wantKey:     "scaling.max_risk_score",
			wantMissing: true,
		},
		{
			name:    "zero target yield",
			yaml:    "weights: {rent_to_cost: 0.5, maintenance_risk: 0.2, vacancy_adjusted: 0.3}\nscaling: {target_yield: 0, max_risk_score: 100}\n",
			wantKey: "scaling.target_yield",
		},
		{
			name:    "negative weight",
			yaml:    "weights: {rent_to_cost: -0.5, maintenance_risk: 0.2, vacancy_adjusted: 0.3}\nscaling: {target_yield: 0.01, max_risk_score: 100}\n",
			wantKey: "weights.rent_to_cost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScoringConfig([]byte(tt.yaml))
			require.Error(t, err)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "want ConfigError, got %T", err)
			assert.Equal(t, tt.wantKey, cfgErr.Key)
			assert.Equal(t, tt.wantMissing, cfgErr.Reason == "")
		})
	}
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	marketPath := filepath.Join(dir, "market_data.yaml")
	modelPath := filepath.Join(dir, "model_params.yaml")

	require.NoError(t, os.WriteFile(marketPath,
		[]byte("markets:\n  default: {labor_cost_index: 1.0, vacancy_rate: 0.05}\n"), 0o644))
	require.NoError(t, os.WriteFile(modelPath,
		[]byte("weights: {rent_to_cost: 0.4, maintenance_risk: 0.3, vacancy_adjusted: 0.3}\nscaling: {target_yield: 0.012, max_risk_score: 250}\n"), 0o644))

	profiles, err := LoadMarketProfiles(marketPath)
	require.NoError(t, err)
	assert.Len(t, profiles, 1)

	cfg, err := LoadScoringConfig(modelPath)
	require.NoError(t, err)
	assert.Equal(t, 250.0, cfg.Scaling.MaxRiskScore)

	_, err = LoadMarketProfiles(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestShippedConfigFilesLoad(t *testing.T) {
	profiles, err := LoadMarketProfiles("market_data.yaml")
	require.NoError(t, err)
	assert.Contains(t, profiles, DefaultMarketKey)

	cfg, err := LoadScoringConfig("model_params.yaml")
	require.NoError(t, err)
	sum := cfg.Weights.RentToCost + cfg.Weights.MaintenanceRisk + cfg.Weights.VacancyAdjusted
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestConfigErrorMessage(t *testing.T) {
	assert.Equal(t, `config: missing required key "markets.default"`, missingKey("markets.default").Error())
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("YO_TEST_BOOL", "true")
	assert.True(t, getEnvBool("YO_TEST_BOOL", false))
	t.Setenv("YO_TEST_BOOL", "nope")
	assert.False(t, getEnvBool("YO_TEST_BOOL", false))
}
