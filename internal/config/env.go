package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rgehrsitz/fireplan/internal/domain"
)

// EnvPrefix prefixes every environment override, e.g. FIREPLAN_HORIZON_AGE.
const EnvPrefix = "FIREPLAN_"

// ParseEnv loads FIREPLAN_* environment variables into target.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// DefaultAssumptionsFromEnv returns the built-in defaults with any
// environment overrides applied.
func DefaultAssumptionsFromEnv() (domain.GlobalAssumptions, error) {
	assumptions := domain.DefaultAssumptions()
	if err := ParseEnv(&assumptions); err != nil {
		return domain.GlobalAssumptions{}, err
	}
	return assumptions, nil
}
