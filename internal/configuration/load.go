package configuration

import (
	"fmt"
	"log/slog"

	"recordstore/internal/configuration/util"

	"gopkg.in/yaml.v3"
)

const DefaultDir = "internal/static"

// Load reads application.yml from dir and overlays application-<profile>.yml
// when a profile is set.
func Load(dir string) (*Properties, error) {
	cfg, err := loadBaseConfig(dir)
	if err != nil {
		return nil, err
	}

	if cfg.App.Profile != "" {
		if err := loadProfileConfig(dir, cfg); err != nil {
			return nil, err
		}
	}

	applyDefaults(cfg)
	return cfg, nil
}

func loadBaseConfig(dir string) (*Properties, error) {
	baseConfig, err := util.LoadAndExpandYaml(dir, "application")
	if err != nil {
		slog.Error("Error loading base config", "error", err)
		return nil, err
	}

	cfg := Properties{}
	if err := yaml.Unmarshal([]byte(baseConfig), &cfg); err != nil {
		slog.Error("Error parsing base config", "error", err)
		return nil, fmt.Errorf("parse base config: %w", err)
	}

	return &cfg, nil
}

func loadProfileConfig(dir string, cfg *Properties) error {
	profileConfig, err := util.LoadAndExpandYaml(dir, fmt.Sprintf("application-%s", cfg.App.Profile))
	if err != nil {
		slog.Error("Error loading profile config", "profile", cfg.App.Profile, "error", err)
		return fmt.Errorf("profile %s: %w", cfg.App.Profile, err)
	}

	if err := yaml.Unmarshal([]byte(profileConfig), cfg); err != nil {
		slog.Error("Error parsing profile config", "profile", cfg.App.Profile, "error", err)
		return fmt.Errorf("parse profile %s config: %w", cfg.App.Profile, err)
	}

	return nil
}

func applyDefaults(cfg *Properties) {
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = "info"
	}
	if cfg.Transport.Network == "" {
		cfg.Transport.Network = "tcp"
	}
	if cfg.Transport.Port == "" {
		cfg.Transport.Port = "7070"
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9090"
	}
}
