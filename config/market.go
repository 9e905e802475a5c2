package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"yield-optimizer/models"
)

// DefaultMarketKey is the mandatory fallback entry of the market mapping.
const DefaultMarketKey = "default"

type marketFile struct {
	Markets map[string]*marketEntry `yaml:"markets" validate:"required,dive,required"`
}

type marketEntry struct {
	LaborCostIndex *float64 `yaml:"labor_cost_index" validate:"required"`
	VacancyRate    *float64 `yaml:"vacancy_rate" validate:"required"`
}

// LoadMarketProfiles reads the market-data YAML file at path.
func LoadMarketProfiles(path string) (map[string]models.MarketProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read market data %q: %w", path, err)
	}
	return ParseMarketProfiles(data)
}

// ParseMarketProfiles decodes a market mapping of the form
//
//	markets:
//	  "46901": {labor_cost_index: 1.2, vacancy_rate: 0.08}
//	  default: {labor_cost_index: 1.0, vacancy_rate: 0.05}
//
// A mapping without a default entry is rejected with a ConfigError.
func ParseMarketProfiles(data []byte) (map[string]models.MarketProfile, error) {
	var f marketFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: decode market data: %w", err)
	}
	if err := validateFile(&f); err != nil {
		return nil, err
	}
	if _, ok := f.Markets[DefaultMarketKey]; !ok {
		return nil, missingKey("markets." + DefaultMarketKey)
	}

	profiles := make(map[string]models.MarketProfile, len(f.Markets))
	for zip, e := range f.Markets {
		profiles[zip] = models.MarketProfile{
			LaborCostIndex: *e.LaborCostIndex,
			VacancyRate:    *e.VacancyRate,
		}
	}
	return profiles, nil
}
