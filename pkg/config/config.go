/*
Author: Amjad Yaseen
Email: ayaseen@redhat.com
Date: 2025-06-02

This file provides the configuration layer for the monitor web service. It:

- Defines typed configuration sections for the HTTP server, script execution and logging
- Loads settings from an optional YAML file with sensible defaults
- Supports MONITOR_* environment variable overrides for container deployments
- Resolves relative paths against the script directory

The defaults mirror the constants the monitoring script installation has always used.
*/

package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all monitor web service configuration
type Config struct {
	// Server configures the HTTP listener
	Server ServerConfig `mapstructure:"server"`

	// Execution configures the monitoring script invocation
	Execution ExecutionConfig `mapstructure:"execution"`

	// Logging configures service logging
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig configures the HTTP listener and static serving
type ServerConfig struct {
	// Listen is the address the HTTP server binds to
	Listen string `mapstructure:"listen"`

	// WebDir is an optional directory with the static UI bundle
	WebDir string `mapstructure:"web_dir"`
}

// ExecutionConfig configures the monitoring script subprocess
type ExecutionConfig struct {
	// ScriptDir is the monitoring script's home directory
	ScriptDir string `mapstructure:"script_dir"`

	// ScriptName is the monitoring script file name
	ScriptName string `mapstructure:"script_name"`

	// CommandsFile is the master command manifest file name
	CommandsFile string `mapstructure:"commands_file"`

	// ReportsDir is the directory the script writes HTML reports into
	ReportsDir string `mapstructure:"reports_dir"`

	// ScratchDir is where filtered manifests are written; defaults to ScriptDir
	ScratchDir string `mapstructure:"scratch_dir"`

	// Timeout is the wall-clock limit for a single script run
	Timeout time.Duration `mapstructure:"timeout"`

	// MaxOutputBytes caps the captured script output
	MaxOutputBytes int64 `mapstructure:"max_output_bytes"`

	// MaxReports limits how many reports a listing returns
	MaxReports int `mapstructure:"max_reports"`

	// SerialRuns rejects a run while another one is still executing
	SerialRuns bool `mapstructure:"serial_runs"`
}

// LoggingConfig configures service logging
type LoggingConfig struct {
	// Debug switches the logger to the development encoder
	Debug bool `mapstructure:"debug"`
}

// Default returns the configuration with all defaults applied
func Default() Config {
	return Config{
		Server: ServerConfig{
			Listen: ":8080",
		},
		Execution: ExecutionConfig{
			ScriptDir:      ".",
			ScriptName:     "openshift_intelligent_monitor_v8.sh",
			CommandsFile:   "monitoring_commands_v8.list",
			ReportsDir:     "reports",
			Timeout:        15 * time.Minute,
			MaxOutputBytes: 10 * 1024 * 1024,
			MaxReports:     50,
		},
	}
}

// Load reads configuration from the given file path. An empty path loads
// defaults plus environment overrides only.
func Load(path string) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("server.listen", def.Server.Listen)
	v.SetDefault("server.web_dir", def.Server.WebDir)
	v.SetDefault("execution.script_dir", def.Execution.ScriptDir)
	v.SetDefault("execution.script_name", def.Execution.ScriptName)
	v.SetDefault("execution.commands_file", def.Execution.CommandsFile)
	v.SetDefault("execution.reports_dir", def.Execution.ReportsDir)
	v.SetDefault("execution.scratch_dir", def.Execution.ScratchDir)
	v.SetDefault("execution.timeout", def.Execution.Timeout)
	v.SetDefault("execution.max_output_bytes", def.Execution.MaxOutputBytes)
	v.SetDefault("execution.max_reports", def.Execution.MaxReports)
	v.SetDefault("execution.serial_runs", def.Execution.SerialRuns)
	v.SetDefault("logging.debug", def.Logging.Debug)

	// Environment overrides, e.g. MONITOR_EXECUTION_SCRIPT_DIR
	v.SetEnvPrefix("MONITOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// normalize resolves derived and relative settings
func (c *Config) normalize() {
	if c.Execution.ScratchDir == "" {
		c.Execution.ScratchDir = c.Execution.ScriptDir
	}
	if !filepath.IsAbs(c.Execution.ReportsDir) {
		c.Execution.ReportsDir = filepath.Join(c.Execution.ScriptDir, c.Execution.ReportsDir)
	}
}

// Validate checks the configuration for values that cannot work
func (c *Config) Validate() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen cannot be empty")
	}
	if c.Execution.ScriptDir == "" {
		return fmt.Errorf("execution.script_dir cannot be empty")
	}
	if c.Execution.ScriptName == "" {
		return fmt.Errorf("execution.script_name cannot be empty")
	}
	if c.Execution.CommandsFile == "" {
		return fmt.Errorf("execution.commands_file cannot be empty")
	}
	if c.Execution.Timeout <= 0 {
		return fmt.Errorf("execution.timeout must be greater than zero")
	}
	if c.Execution.MaxOutputBytes <= 0 {
		return fmt.Errorf("execution.max_output_bytes must be greater than zero")
	}
	if c.Execution.MaxReports <= 0 {
		return fmt.Errorf("execution.max_reports must be greater than zero")
	}
	return nil
}

// CommandsFilePath returns the absolute path of the master manifest
func (c *Config) CommandsFilePath() string {
	if filepath.IsAbs(c.Execution.CommandsFile) {
		return c.Execution.CommandsFile
	}
	return filepath.Join(c.Execution.ScriptDir, c.Execution.CommandsFile)
}

// ScriptPath returns the absolute path of the monitoring script
func (c *Config) ScriptPath() string {
	if filepath.IsAbs(c.Execution.ScriptName) {
		return c.Execution.ScriptName
	}
	return filepath.Join(c.Execution.ScriptDir, c.Execution.ScriptName)
}
