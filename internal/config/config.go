// Package config loads menudesk settings from defaults, an optional YAML
// file and MENUDESK_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/menudesk/internal/tree"
)

type Config struct {
	DBPath          string   `yaml:"db_path"`
	DefaultLanguage string   `yaml:"default_language"`
	Languages       []string `yaml:"languages"`
	LogUseCases     bool     `yaml:"log_use_cases"`
	MetricsFile     string   `yaml:"metrics_file"`
}

// Dir is the per-user directory holding the database and config file.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".menudesk"
	}
	return filepath.Join(home, ".menudesk")
}

// DefaultConfig returns a Config with sensible defaults: an English menu
// stored under ~/.menudesk.
func DefaultConfig() Config {
	return Config{
		DBPath:          filepath.Join(Dir(), "menudesk.db"),
		DefaultLanguage: "en",
		Languages:       []string{"en"},
	}
}

// Load reads the config file named by MENUDESK_CONFIG, or
// ~/.menudesk/config.yaml when that exists, then applies environment
// overrides and validates the result.
func Load() (Config, error) {
	cfg := DefaultConfig()

	path := os.Getenv("MENUDESK_CONFIG")
	explicit := path != ""
	if !explicit {
		path = filepath.Join(Dir(), "config.yaml")
	}
	if err := cfg.mergeFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeFile overlays the keys present in the YAML file at path.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("MENUDESK_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("MENUDESK_DEFAULT_LANGUAGE"); v != "" {
		c.DefaultLanguage = v
	}
	if v := os.Getenv("MENUDESK_LANGUAGES"); v != "" {
		c.Languages = splitList(v)
	}
	if v := os.Getenv("MENUDESK_LOG_USE_CASES"); v != "" {
		c.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("MENUDESK_METRICS_FILE"); v != "" {
		c.MetricsFile = v
	}
}

// Validate canonicalizes every language code and makes sure the default
// language is tracked, prepending it to Languages when missing.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	def, err := CanonicalLanguage(c.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("default_language: %w", err)
	}

	langs := []string{def}
	seen := map[string]bool{def: true}
	for _, l := range c.Languages {
		canon, err := CanonicalLanguage(l)
		if err != nil {
			return fmt.Errorf("languages: %w", err)
		}
		if seen[canon] {
			continue
		}
		seen[canon] = true
		langs = append(langs, canon)
	}

	c.DefaultLanguage = def
	c.Languages = langs
	return nil
}

// TreeConfig is the language setup every loaded menu tree uses.
func (c Config) TreeConfig() tree.Config {
	return tree.Config{
		DefaultLanguage: c.DefaultLanguage,
		Languages:       append([]string(nil), c.Languages...),
	}
}

// CanonicalLanguage parses a BCP 47 code and returns its canonical form,
// e.g. "EN" -> "en", "pt_br" -> "pt-BR".
func CanonicalLanguage(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("language code is required")
	}
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return "", fmt.Errorf("invalid language code %q", code)
	}
	return tag.String(), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
