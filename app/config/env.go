package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
