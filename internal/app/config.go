package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DocPaths []string // .hcl files or directories

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	ServePort       int

	// Sets are "component[.prop]=value" assignments applied after loading.
	Sets []string
	// Actions are "component:action[:json]" requests applied after Sets.
	Actions []string

	// WatchURL switches the app to watch mode: follow the server at this URL
	// instead of loading a document.
	WatchURL string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.WatchURL != "" {
		if len(cfg.DocPaths) > 0 || cfg.ServePort != 0 || len(cfg.Sets) > 0 || len(cfg.Actions) > 0 {
			return nil, errors.New("watch mode cannot be combined with a document, --serve-port, --set or --action")
		}
		return &cfg, nil
	}

	if len(cfg.DocPaths) == 0 {
		return nil, errors.New("DocPaths is a required configuration field and cannot be empty")
	}
	for name, port := range map[string]int{"serve-port": cfg.ServePort, "healthcheck-port": cfg.HealthcheckPort} {
		if port < 0 || port > 65535 {
			return nil, fmt.Errorf("invalid %s %d: must be between 0 and 65535", name, port)
		}
	}
	if cfg.ServePort != 0 && cfg.ServePort == cfg.HealthcheckPort {
		return nil, fmt.Errorf("serve-port and healthcheck-port must differ, both are %d", cfg.ServePort)
	}

	return &cfg, nil
}
