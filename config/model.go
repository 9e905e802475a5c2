package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"yield-optimizer/models"
)

type modelFile struct {
	Weights *weightsEntry `yaml:"weights" validate:"required"`
	Scaling *scalingEntry `yaml:"scaling" validate:"required"`
}

type weightsEntry struct {
	RentToCost      *float64 `yaml:"rent_to_cost" validate:"required,gte=0"`
	MaintenanceRisk *float64 `yaml:"maintenance_risk" validate:"required,gte=0"`
	VacancyAdjusted *float64 `yaml:"vacancy_adjusted" validate:"required,gte=0"`
}

type scalingEntry struct {
	TargetYield  *float64 `yaml:"target_yield" validate:"required,gt=0"`
	MaxRiskScore *float64 `yaml:"max_risk_score" validate:"required,gt=0"`
}

// LoadScoringConfig reads the model-parameters YAML file at path.
func LoadScoringConfig(path string) (models.ScoringConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.ScoringConfig{}, fmt.Errorf("config: read model params %q: %w", path, err)
	}
	return ParseScoringConfig(data)
}

// ParseScoringConfig decodes weights and scaling limits. Every key is required;
// a zero weight must be written out explicitly.
func ParseScoringConfig(data []byte) (models.ScoringConfig, error) {
	var f modelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return models.ScoringConfig{}, fmt.Errorf("config: decode model params: %w", err)
	}
	if err := validateFile(&f); err != nil {
		return models.ScoringConfig{}, err
	}

	return models.ScoringConfig{
		Weights: models.Weights{
			RentToCost:      *f.Weights.RentToCost,
			MaintenanceRisk: *f.Weights.MaintenanceRisk,
			VacancyAdjusted: *f.Weights.VacancyAdjusted,
		},
		Scaling: models.Scaling{
			TargetYield:  *f.Scaling.TargetYield,
			MaxRiskScore: *f.Scaling.MaxRiskScore,
		},
	}, nil
}
