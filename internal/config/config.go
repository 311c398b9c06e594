// Package config loads service settings from an optional TOML file, then
// applies HEXPLANNER_* environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Planner  PlannerConfig  `toml:"planner"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr              string   `toml:"addr"`
	CORSOrigins       []string `toml:"cors_origins"`
	LayoutRatePerHour int      `toml:"layout_rate_per_hour"` // 0 disables the limiter
	TrustedProxies    []string `toml:"trusted_proxies"`      // IPs or CIDRs allowed to set X-Forwarded-For
}

// DatabaseConfig locates the shape catalog.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// PlannerConfig bounds layout searches.
type PlannerConfig struct {
	MaxNodes   int `toml:"max_nodes"`   // 0 = unbounded
	MaxAnchors int `toml:"max_anchors"` // Largest n the HTTP API accepts. 0 = unbounded.
}

// LogConfig selects log verbosity and output format.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // auto, text, json
}

// Default returns the configuration used when no file or env is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:              ":8080",
			LayoutRatePerHour: 120,
		},
		Database: DatabaseConfig{
			Path: "data/shapes.db",
		},
		Planner: PlannerConfig{
			MaxNodes:   2_000_000,
			MaxAnchors: 8,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load reads path (if non-empty) over the defaults, then applies the
// environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, fmt.Errorf("config %s: unknown key %s", path, undecoded[0])
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.Server.Addr = envOrDefault("HEXPLANNER_ADDR", c.Server.Addr)
	c.Server.LayoutRatePerHour = envIntOrDefault("HEXPLANNER_LAYOUT_RATE", c.Server.LayoutRatePerHour)
	if v := os.Getenv("HEXPLANNER_CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("HEXPLANNER_TRUSTED_PROXIES"); v != "" {
		c.Server.TrustedProxies = splitList(v)
	}
	c.Database.Path = envOrDefault("HEXPLANNER_DB", c.Database.Path)
	c.Planner.MaxNodes = envIntOrDefault("HEXPLANNER_MAX_NODES", c.Planner.MaxNodes)
	c.Planner.MaxAnchors = envIntOrDefault("HEXPLANNER_MAX_ANCHORS", c.Planner.MaxAnchors)
	c.Log.Level = envOrDefault("HEXPLANNER_LOG_LEVEL", c.Log.Level)
	c.Log.Format = envOrDefault("HEXPLANNER_LOG_FORMAT", c.Log.Format)
}

// Validate rejects settings the service cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if c.Server.LayoutRatePerHour < 0 {
		errs = append(errs, fmt.Errorf("server.layout_rate_per_hour must not be negative, got %d", c.Server.LayoutRatePerHour))
	}
	for _, p := range c.Server.TrustedProxies {
		if _, err := netip.ParsePrefix(p); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(p); err != nil {
			errs = append(errs, fmt.Errorf("server.trusted_proxies: %q is not an IP or CIDR", p))
		}
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is empty"))
	}
	if c.Planner.MaxNodes < 0 {
		errs = append(errs, fmt.Errorf("planner.max_nodes must not be negative, got %d", c.Planner.MaxNodes))
	}
	if c.Planner.MaxAnchors < 0 {
		errs = append(errs, fmt.Errorf("planner.max_anchors must not be negative, got %d", c.Planner.MaxAnchors))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch c.Log.Format {
	case "auto", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of auto, text, json", c.Log.Format))
	}
	return errors.Join(errs...)
}

// splitList splits a comma-separated env value, dropping blanks.
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOrDefault(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}
