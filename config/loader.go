package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath overrides the default config file location.
	EnvConfigPath = "APPROVAL_SERVICE_CONFIG"

	defaultPort    = "8560"
	defaultBackend = "memory"
)

// Load reads approval-service.json from the path in APPROVAL_SERVICE_CONFIG,
// falling back to the working directory. A missing file is not an error;
// defaults are returned so the service can run with the in-memory store.
func Load() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = filepath.Join(".", "approval-service.json")
	}

	cfg := &Config{
		Port:         defaultPort,
		StoreBackend: defaultBackend,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("could not read config at %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal %s: %w", path, err)
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	switch cfg.StoreBackend {
	case "":
		cfg.StoreBackend = defaultBackend
	case "memory", "redis":
	default:
		return nil, fmt.Errorf("unknown store_backend %q (want \"memory\" or \"redis\")", cfg.StoreBackend)
	}
	if cfg.StoreBackend == "redis" && (cfg.Redis == nil || cfg.Redis.Address == "") {
		return nil, fmt.Errorf("store_backend is \"redis\" but no redis.address configured")
	}

	return cfg, nil
}
