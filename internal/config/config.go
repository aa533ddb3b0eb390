package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/raywall/apigw-report/internal/export"
	"github.com/raywall/apigw-report/internal/flatten"
	"github.com/raywall/apigw-report/internal/reporterr"
)

const (
	DefaultRegion    = "us-east-2"
	DefaultOutputDir = "output"
)

// Config is everything one report run needs. It carries no credential
// defaults: empty identity fields defer to the AWS SDK default chain.
type Config struct {
	Profile      string   `yaml:"profile"`
	AccessKey    string   `yaml:"access_key"`
	SecretKey    string   `yaml:"secret_key"`
	Region       string   `yaml:"region"`
	Methods      []string `yaml:"methods"`
	Output       string   `yaml:"output"`
	OutputDir    string   `yaml:"output_dir"`
	EmbedMethods bool     `yaml:"embed_methods"`
	AllowEmpty   bool     `yaml:"allow_empty"`
}

// Default returns a Config with the built-in defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Region) == "" {
		c.Region = DefaultRegion
	}
	if strings.TrimSpace(c.Output) == "" {
		c.Output = string(export.FormatCSV)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		c.OutputDir = DefaultOutputDir
	}
}

// Validate checks the settings that can be checked offline. Region validity
// needs the EC2 API and is checked by the report service.
func (c *Config) Validate() error {
	if _, err := export.ParseFormat(c.Output); err != nil {
		return &reporterr.ConfigurationError{Field: "output", Value: c.Output, Valid: export.Formats()}
	}
	for _, m := range c.Methods {
		if !flatten.IsKnownMethod(m) {
			return &reporterr.ConfigurationError{Field: "method", Value: m, Valid: flatten.KnownMethods()}
		}
	}
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return &reporterr.ConfigurationError{
			Field: "credentials",
			Value: "access_key/secret_key",
			Err:   fmt.Errorf("both access_key and secret_key must be provided if one is set"),
		}
	}
	if strings.TrimSpace(c.Region) == "" {
		return &reporterr.ConfigurationError{Field: "region", Value: c.Region}
	}
	return nil
}

// Format returns the parsed output format. Call Validate first.
func (c *Config) Format() export.Format {
	f, err := export.ParseFormat(c.Output)
	if err != nil {
		return export.FormatCSV
	}
	return f
}

// MethodFilter returns the normalized method filter.
func (c *Config) MethodFilter() flatten.MethodFilter {
	return flatten.NewMethodFilter(c.Methods...)
}

// IdentityLabel names the credential identity in output file names.
func (c *Config) IdentityLabel() string {
	return c.Profile
}
