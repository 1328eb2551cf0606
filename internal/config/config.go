package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v3"
)

// DevPort is the port the profile service listens on in development.
const DevPort = 6201

// Environments.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// Environment variables that override the config file.
const (
	EnvBaseURL = "PROFILECTL_BASE_URL"
	EnvMode    = "PROFILECTL_ENV"
	EnvHost    = "PROFILECTL_HOST"
	EnvPort    = "PROFILECTL_PORT"
)

// Config represents ~/.profilectl/config.yaml.
type Config struct {
	// BaseURL, when set, is used verbatim and skips host-based resolution.
	BaseURL         string        `yaml:"base_url,omitempty"`
	Environment     string        `yaml:"environment,omitempty"`
	Protocol        string        `yaml:"protocol,omitempty"`
	Host            string        `yaml:"host,omitempty"`
	Port            string        `yaml:"port,omitempty"`
	SelectedProfile string        `yaml:"selected_profile,omitempty"`
	Timeout         time.Duration `yaml:"timeout,omitempty"`
}

// Default returns a development config pointed at localhost.
func Default() Config {
	return Config{
		Environment: EnvDevelopment,
		Protocol:    "http:",
		Host:        "localhost",
	}
}

// Parse parses config.yaml bytes into a Config, filling unset fields from Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Marshal serializes a Config to YAML bytes.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Load reads the config file at path (a missing file yields Default), loads
// envFile into the process environment when it exists, and applies
// environment overrides.
func Load(path, envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg, err = Parse(data)
		if err != nil {
			return Config{}, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvMode); v != "" {
		c.Environment = v
	}
	if v := os.Getenv(EnvHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		c.Port = v
	}
}

// Save writes cfg to path, creating the parent directory.
func Save(path string, cfg Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Production reports whether the config targets a packaged deployment.
func (c Config) Production() bool {
	return strings.EqualFold(c.Environment, EnvProduction)
}

// ResolveBaseURL returns the service origin for c.
func (c Config) ResolveBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return ResolveBaseURL(Location{Protocol: c.Protocol, Hostname: c.Host, Port: c.Port}, c.Production())
}

// Location is the origin the client was started against.
type Location struct {
	Protocol string // "http:" or "https:"
	Hostname string
	Port     string
}

var ipv4Re = regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+$`)

// ResolveBaseURL applies the deployment heuristic: production reuses the
// origin; localhost maps to the fixed dev port; a numeric host keeps its
// protocol with the dev port; anything else goes through a relative /api prefix.
func ResolveBaseURL(loc Location, production bool) string {
	protocol := loc.Protocol
	if protocol == "" {
		protocol = "http:"
	}
	if !strings.HasSuffix(protocol, ":") {
		protocol += ":"
	}
	dev := strconv.Itoa(DevPort)

	if production {
		portPart := ""
		if loc.Port != "" {
			portPart = ":" + loc.Port
		}
		return protocol + "//" + loc.Hostname + portPart
	}

	switch {
	case loc.Hostname == "localhost":
		return "http://localhost:" + dev
	case ipv4Re.MatchString(loc.Hostname):
		return protocol + "//" + loc.Hostname + ":" + dev
	default:
		return protocol + "//" + loc.Hostname + "/api"
	}
}
