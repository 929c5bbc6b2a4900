// Package config handles loading and validating missioncontrol configuration.
// Supports YAML config files and MISSIONCONTROL_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/marcus/missioncontrol/internal/filter"
	"github.com/marcus/missioncontrol/internal/scheduler"
	"github.com/marcus/missioncontrol/internal/tasks"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// EnvPrefix is the prefix for environment overrides, e.g.
// MISSIONCONTROL_DASHBOARD_TASK_COUNT=20.
const EnvPrefix = "MISSIONCONTROL"

// ProjectConfigName is the config file looked up in the working directory.
const ProjectConfigName = "missioncontrol.yaml"

// Config holds all missioncontrol configuration.
type Config struct {
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// DashboardConfig controls data generation and presentation.
type DashboardConfig struct {
	Title     string   `mapstructure:"title"`
	Caption   string   `mapstructure:"caption"`
	TaskCount int      `mapstructure:"task_count"`
	Seed      uint64   `mapstructure:"seed"` // 0 = time-based
	Owners    []string `mapstructure:"owners"`
	Timezone  string   `mapstructure:"timezone"`
	// Refresh is a cron expression ("@every 30s", "*/5 * * * *"); empty disables auto refresh.
	Refresh         string   `mapstructure:"refresh"`
	Theme           string   `mapstructure:"theme"` // light, dark
	DefaultOwner    string   `mapstructure:"default_owner"`
	DefaultStatuses []string `mapstructure:"default_statuses"`
}

// ServerConfig controls the HTTP dashboard.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level         string `mapstructure:"level"`
	Path          string `mapstructure:"path"`
	Format        string `mapstructure:"format"`
	RetentionDays int    `mapstructure:"retention_days"`
}

// Theme names.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Dashboard: DashboardConfig{
			Title:     "Mission Control",
			Caption:   "Team Manager Dashboard",
			TaskCount: 12,
			Owners:    append([]string(nil), tasks.DefaultOwners...),
			Refresh:   "@every 30s",
			Theme:     ThemeLight,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Level:         "info",
			Path:          DefaultLogPath(),
			Format:        "json",
			RetentionDays: 7,
		},
	}
}

// GlobalConfigPath returns the per-user config file location.
func GlobalConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "missioncontrol", "config.yaml")
}

// DefaultLogPath returns the default log directory.
func DefaultLogPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "missioncontrol", "logs")
}

// Load reads configuration. An explicit path must exist; otherwise the global
// config and ./missioncontrol.yaml are merged when present.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return LoadFromPaths(cwd, GlobalConfigPath())
}

// LoadFile reads a single config file. Environment variables still apply.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return decode(v)
}

// LoadFromPaths merges globalPath and then projectDir/missioncontrol.yaml over
// the defaults. Missing files are skipped; environment variables win over both.
func LoadFromPaths(projectDir, globalPath string) (*Config, error) {
	v := newViper()
	for _, candidate := range []string{globalPath, filepath.Join(projectDir, ProjectConfigName)} {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		v.SetConfigFile(candidate)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", candidate, err)
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Dashboard.Theme = strings.ToLower(strings.TrimSpace(cfg.Dashboard.Theme))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("dashboard.title", d.Dashboard.Title)
	v.SetDefault("dashboard.caption", d.Dashboard.Caption)
	v.SetDefault("dashboard.task_count", d.Dashboard.TaskCount)
	v.SetDefault("dashboard.seed", d.Dashboard.Seed)
	v.SetDefault("dashboard.owners", d.Dashboard.Owners)
	v.SetDefault("dashboard.timezone", d.Dashboard.Timezone)
	v.SetDefault("dashboard.refresh", d.Dashboard.Refresh)
	v.SetDefault("dashboard.theme", d.Dashboard.Theme)
	v.SetDefault("dashboard.default_owner", d.Dashboard.DefaultOwner)
	v.SetDefault("dashboard.default_statuses", d.Dashboard.DefaultStatuses)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.path", d.Logging.Path)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.retention_days", d.Logging.RetentionDays)
	return v
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	d := c.Dashboard
	if d.TaskCount <= 0 {
		problems = append(problems, fmt.Sprintf("dashboard.task_count must be positive, got %d", d.TaskCount))
	}
	if len(d.Owners) == 0 {
		problems = append(problems, "dashboard.owners must not be empty")
	}
	for _, o := range d.Owners {
		if strings.TrimSpace(o) == "" {
			problems = append(problems, "dashboard.owners contains an empty name")
			break
		}
	}
	if _, err := time.LoadLocation(d.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("dashboard.timezone: %v", err))
	}
	if _, err := scheduler.ParseRefresh(d.Refresh); err != nil {
		problems = append(problems, fmt.Sprintf("dashboard.refresh: %v", err))
	}
	switch strings.ToLower(d.Theme) {
	case "", ThemeLight, ThemeDark:
	default:
		problems = append(problems, fmt.Sprintf("dashboard.theme must be %q or %q, got %q", ThemeLight, ThemeDark, d.Theme))
	}
	if sel, err := c.DefaultSelection(); err != nil {
		problems = append(problems, fmt.Sprintf("dashboard.default_statuses: %v", err))
	} else if sel.OwnerFiltered() && !contains(d.Owners, sel.Owner) {
		problems = append(problems, fmt.Sprintf("dashboard.default_owner %q is not in dashboard.owners", sel.Owner))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		problems = append(problems, fmt.Sprintf("logging.format must be json or text, got %q", c.Logging.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// DefaultSelection returns the filter selection the dashboards start with.
func (c *Config) DefaultSelection() (filter.Selection, error) {
	sel, err := filter.ParseSelection(c.Dashboard.DefaultOwner, c.Dashboard.DefaultStatuses)
	if err != nil {
		return filter.Selection{}, err
	}
	if len(sel.Statuses) == 0 {
		return filter.AllStatuses().WithOwner(sel.Owner), nil
	}
	return sel, nil
}

// Location returns the configured timezone, falling back to local time.
func (c *Config) Location() *time.Location {
	if c.Dashboard.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Dashboard.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// ExpandedLogPath returns the log directory with ~ expanded.
func (c *Config) ExpandedLogPath() string {
	return expandPath(c.Logging.Path)
}

// Write saves cfg as YAML at path, creating parent directories. Keys already
// present in an existing file but unknown to Config are preserved.
func Write(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	v.Set("dashboard.title", cfg.Dashboard.Title)
	v.Set("dashboard.caption", cfg.Dashboard.Caption)
	v.Set("dashboard.task_count", cfg.Dashboard.TaskCount)
	v.Set("dashboard.seed", cfg.Dashboard.Seed)
	v.Set("dashboard.owners", cfg.Dashboard.Owners)
	v.Set("dashboard.timezone", cfg.Dashboard.Timezone)
	v.Set("dashboard.refresh", cfg.Dashboard.Refresh)
	v.Set("dashboard.theme", cfg.Dashboard.Theme)
	v.Set("dashboard.default_owner", cfg.Dashboard.DefaultOwner)
	v.Set("dashboard.default_statuses", cfg.Dashboard.DefaultStatuses)
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.path", cfg.Logging.Path)
	v.Set("logging.format", cfg.Logging.Format)
	v.Set("logging.retention_days", cfg.Logging.RetentionDays)

	if err := v.WriteConfig(); err != nil {
		if os.IsNotExist(err) {
			return v.SafeWriteConfig()
		}
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
