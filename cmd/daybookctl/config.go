package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// cliConfig is the optional ~/.daybookctl.yaml file. Flags win over the
// file, the file wins over defaults.
type cliConfig struct {
	API string `yaml:"api"`
	Key string `yaml:"key"`
}

func loadConfig(path string) (cliConfig, error) {
	cfg := cliConfig{}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".daybookctl.yaml")
		if _, err := os.Stat(path); err != nil {
			return cfg, nil
		}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
