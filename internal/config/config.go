package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

/*
Config System Design:
This configuration system implements a hierarchical config with the following precedence
(highest to lowest priority):

1. Runtime overrides (CLI flags)
2. Environment variables (RENDERTOOLS_LOG_LEVEL, RENDERTOOLS_HISTORY_DBPATH, ...)
3. Local project config (.rendertools/*.rendertools.{yaml,json})
4. Global user config ($XDG_CONFIG_HOME/rendertools/*.rendertools.{yaml,json})
5. Default values (from defaults.rendertools.yaml)

Multiple config files in one directory are merged alphabetically. Maps merge
deeply and scalars override.

Example:
If you have these files:
~/.config/rendertools/log.rendertools.yaml:  { log: { level: DEBUG, file: /tmp/rt.log } }
./.rendertools/log.rendertools.yaml:         { log: { level: WARN } }
The result will be: { log: { level: WARN, file: /tmp/rt.log } }
*/

const (
	appName   = "rendertools"
	envPrefix = "RENDERTOOLS"
)

//go:embed defaults.rendertools.yaml
var defaultsYAML []byte

// Config holds the configuration and internal viper instance
type Config struct {
	v       *viper.Viper
	mu      sync.RWMutex
	sources map[string][]configSource
	unknown []string
}

type configSource struct {
	value  interface{}
	source string
}

// New loads, overrides and validates the configuration
func New(overrides *RuntimeOverrides) (*ConfigSchema, error) {
	c, err := Load(configDirs()...)
	if err != nil {
		return nil, err
	}
	for _, key := range c.unknown {
		slog.Warn("unknown configuration key", "key", key)
	}

	cfg, err := c.GetConfig()
	if err != nil {
		return nil, err
	}
	overrides.apply(cfg)

	if cfg.History.DBPath == "" {
		cfg.History.DBPath, err = defaultDBPath()
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the defaults, then every config file in dirs in order, then
// the environment.
func Load(dirs ...string) (*Config, error) {
	c := &Config{
		v:       viper.New(),
		sources: make(map[string][]configSource),
	}

	if err := c.loadDefaults(); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.v.AutomaticEnv()

	if err := c.loadConfigs(dirs); err != nil {
		return nil, err
	}
	c.trackEnv()

	return c, nil
}

// loadDefaults registers the embedded defaults as viper defaults, so files
// and the environment both take precedence over them
func (c *Config) loadDefaults() error {
	d := viper.New()
	d.SetConfigType("yaml")
	if err := d.ReadConfig(bytes.NewReader(defaultsYAML)); err != nil {
		return fmt.Errorf("could not read defaults: %w", err)
	}
	for key, value := range flatten("", d.AllSettings()) {
		c.v.SetDefault(key, value)
	}
	return nil
}

// configDirs returns the global then the local config directory
func configDirs() []string {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		if home, err := os.UserHomeDir(); err == nil {
			xdgConfig = filepath.Join(home, ".config")
		}
	}
	var dirs []string
	if xdgConfig != "" {
		dirs = append(dirs, filepath.Join(xdgConfig, appName))
	}
	return append(dirs, "."+appName)
}

func defaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine history location: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appName, "history.db"), nil
}

// findConfigFiles returns all *.rendertools.{yaml,json} files in a directory
func findConfigFiles(dir string) ([]string, error) {
	var files []string
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, "."+appName+".yaml") ||
			strings.HasSuffix(name, "."+appName+".json") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

func (c *Config) loadConfigs(dirs []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	known := GetKnownKeys()
	for _, dir := range dirs {
		files, err := findConfigFiles(dir)
		if err != nil && !os.IsNotExist(err) {
			return err
		}

		for _, f := range files {
			v := viper.New()
			v.SetConfigFile(f)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("error reading config file %s: %w", f, err)
			}

			settings := v.AllSettings()
			for key, value := range flatten("", settings) {
				c.sources[key] = append(c.sources[key], configSource{value: value, source: f})
				if !known[key] {
					c.unknown = append(c.unknown, key)
				}
			}

			if err := c.v.MergeConfigMap(settings); err != nil {
				return fmt.Errorf("error merging config from %s: %w", f, err)
			}
		}
	}
	sort.Strings(c.unknown)
	return nil
}

func (c *Config) trackEnv() {
	for key := range GetKnownKeys() {
		envVar := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if val, ok := os.LookupEnv(envVar); ok {
			c.sources[key] = append(c.sources[key], configSource{
				value:  val,
				source: fmt.Sprintf("%s environment variable", envVar),
			})
		}
	}
}

// flatten turns nested settings into dotted keys
func flatten(prefix string, settings map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for key, value := range settings {
		full := strings.ToLower(key)
		if prefix != "" {
			full = prefix + "." + full
		}
		if nested, ok := value.(map[string]interface{}); ok {
			for k, v := range flatten(full, nested) {
				out[k] = v
			}
			continue
		}
		out[full] = value
	}
	return out
}

// Unknown returns config file keys that no setting uses
func (c *Config) Unknown() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.unknown...)
}

// Getter methods that delegate to the internal viper instance
func (c *Config) Get(key string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v.Get(key)
}

func (c *Config) GetString(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v.GetString(key)
}

func (c *Config) GetBool(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v.GetBool(key)
}

// Get typed config
func (c *Config) GetConfig() (*ConfigSchema, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var cfg ConfigSchema
	if err := c.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.sources = make(map[string][]configSource, len(c.sources))
	for k, v := range c.sources {
		cfg.sources[k] = append([]configSource(nil), v...)
	}
	return &cfg, nil
}

// Validate validates the configuration against the schema
func (s *ConfigSchema) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	return nil
}
