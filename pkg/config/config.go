package config

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/sql-formatter/pkg/advisor"
	"github.com/nsxbet/sql-formatter/pkg/formatter"
	"github.com/nsxbet/sql-formatter/pkg/types"
)

// Config is the file-level configuration: formatting overrides and check rules.
type Config struct {
	ID     string                 `yaml:"id"               json:"id"`
	Format *FormatConfig          `yaml:"format,omitempty" json:"format,omitempty"`
	Rules  []*types.SQLReviewRule `yaml:"rules"            json:"rules"`
}

// FormatConfig holds formatter overrides. Unset fields keep the defaults.
type FormatConfig struct {
	Style             *types.FormatStyle `yaml:"style,omitempty"             json:"style,omitempty"`
	UppercaseKeywords *bool              `yaml:"uppercaseKeywords,omitempty" json:"uppercaseKeywords,omitempty"`
	AddSemicolon      *bool              `yaml:"addSemicolon,omitempty"      json:"addSemicolon,omitempty"`
	IndentCTE         *bool              `yaml:"indentCte,omitempty"         json:"indentCte,omitempty"`
	AlignAliases      *bool              `yaml:"alignAliases,omitempty"      json:"alignAliases,omitempty"`
}

// LoadFromFile loads configuration from a YAML or JSON file and validates it.
func LoadFromFile(filename string) (*Config, error) {
	slog.Debug("Loading config from file", "filename", filename)
	data, err := os.ReadFile(filename)
	if err != nil {
		slog.Debug("Failed to read file", "error", err)
		return nil, errors.Wrapf(err, "failed to read config file: %s", filename)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file: %s", filename)
	}

	slog.Debug("Loaded config", "id", cfg.ID, "rules_count", len(cfg.Rules))
	return cfg, nil
}

// Parse decodes YAML, falling back to JSON, then validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	// Try YAML first, then JSON
	slog.Debug("Attempting YAML unmarshal")
	if yamlErr := yaml.Unmarshal(data, &cfg); yamlErr != nil {
		slog.Debug("YAML unmarshal failed", "error", yamlErr)
		cfg = Config{}
		if err := json.Unmarshal(data, &cfg); err != nil {
			slog.Debug("JSON unmarshal failed", "error", err)
			return nil, yamlErr
		}
		slog.Debug("JSON unmarshal succeeded")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects rules for unknown check types and rules without a level.
func (c *Config) Validate() error {
	known := make(map[string]bool)
	for _, rule := range Schema() {
		known[rule.Type] = true
	}
	seen := make(map[string]bool)
	for i, rule := range c.Rules {
		if rule == nil {
			return errors.Errorf("rule %d is empty", i)
		}
		if !known[rule.Type] {
			return errors.Errorf("unknown rule type: %q", rule.Type)
		}
		if rule.Level == types.SQLReviewRuleLevel_LEVEL_UNSPECIFIED {
			return errors.Errorf("rule %q has no level", rule.Type)
		}
		if seen[rule.Type] {
			return errors.Errorf("duplicate rule type: %q", rule.Type)
		}
		seen[rule.Type] = true
	}
	return nil
}

// DefaultConfig returns a configuration with no overrides.
func DefaultConfig(id string) *Config {
	return &Config{
		ID:    id,
		Rules: []*types.SQLReviewRule{},
	}
}

// GetRule returns the rule configured for a check type, or nil.
func (c *Config) GetRule(ruleType advisor.Type) *types.SQLReviewRule {
	for _, rule := range c.Rules {
		if rule != nil && rule.Type == string(ruleType) {
			return rule
		}
	}
	return nil
}

// NewFormatConfig spells out every field of opts as an override.
func NewFormatConfig(opts formatter.Options) *FormatConfig {
	return &FormatConfig{
		Style:             &opts.Style,
		UppercaseKeywords: &opts.UppercaseKeywords,
		AddSemicolon:      &opts.AddSemicolon,
		IndentCTE:         &opts.IndentCTE,
		AlignAliases:      &opts.AlignAliases,
	}
}

// FormatOptions applies the configured overrides to the formatter defaults.
func (c *Config) FormatOptions() formatter.Options {
	opts := formatter.DefaultOptions()
	if c == nil || c.Format == nil {
		return opts
	}
	f := c.Format
	if f.Style != nil {
		opts.Style = *f.Style
	}
	if f.UppercaseKeywords != nil {
		opts.UppercaseKeywords = *f.UppercaseKeywords
	}
	if f.AddSemicolon != nil {
		opts.AddSemicolon = *f.AddSemicolon
	}
	if f.IndentCTE != nil {
		opts.IndentCTE = *f.IndentCTE
	}
	if f.AlignAliases != nil {
		opts.AlignAliases = *f.AlignAliases
	}
	return opts
}
