package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/commit"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/model"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/scenario"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/search"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Premium is the on-demand multiplier applied above the commitment.
	Premium float64 `yaml:"premium"`

	// NormalizeCeiling rescales the aggregated series so its peak equals
	// this value. 0 disables normalization.
	NormalizeCeiling float64 `yaml:"normalize_ceiling"`

	Search   SearchConfig   `yaml:"search"`
	Scenario ScenarioConfig `yaml:"scenario"`
	Ladder   LadderConfig   `yaml:"ladder"`
}

type SearchConfig struct {
	Method    string  `yaml:"method"`
	Steps     int     `yaml:"steps"`
	Tolerance float64 `yaml:"tolerance"`
	MaxIter   int     `yaml:"max_iter"`
	Workers   int     `yaml:"workers"`
}

type ScenarioConfig struct {
	Weeks       int     `yaml:"weeks"`
	AnnualTrend float64 `yaml:"annual_trend"`
}

type LadderConfig struct {
	PeriodHours int `yaml:"period_hours"`
}

// Load reads, defaults, and validates a config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads the config without defaults or validation.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Premium == 0 {
		c.Premium = commit.DefaultPremium
	}
	if c.Search.Method == "" {
		c.Search.Method = string(search.MethodGrid)
	}
	if c.Search.Steps == 0 {
		c.Search.Steps = 100
	}
	if c.Search.Tolerance == 0 {
		c.Search.Tolerance = 1e-3
	}
	if c.Scenario.Weeks == 0 {
		c.Scenario.Weeks = 4
	}
	if c.Ladder.PeriodHours == 0 {
		c.Ladder.PeriodHours = scenario.HoursPerWeek
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := model.ValidatePremium(c.Premium); err != nil {
		return fmt.Errorf("premium invalid: %w", err)
	}
	switch search.Method(c.Search.Method) {
	case search.MethodGrid, search.MethodBounded, search.MethodNumeric:
	default:
		return fmt.Errorf("search.method must be one of grid, bounded, numeric; got %q", c.Search.Method)
	}
	if c.Search.Steps < 1 {
		return errors.New("search.steps must be >= 1")
	}
	if c.Search.Tolerance <= 0 {
		return errors.New("search.tolerance must be > 0")
	}
	if c.NormalizeCeiling < 0 {
		return errors.New("normalize_ceiling must be >= 0")
	}
	if c.Scenario.Weeks < 1 {
		return errors.New("scenario.weeks must be >= 1")
	}
	if c.Scenario.AnnualTrend <= -1 {
		return errors.New("scenario.annual_trend must be > -1")
	}
	if c.Ladder.PeriodHours < 2 {
		return errors.New("ladder.period_hours must be >= 2")
	}
	return nil
}

// Method returns the configured search strategy tag.
func (c *Config) Method() search.Method {
	return search.Method(c.Search.Method)
}

// SearchOptions maps the config onto the search package's option set.
func (c *Config) SearchOptions() search.Options {
	return search.Options{
		Premium:   c.Premium,
		Steps:     c.Search.Steps,
		Tolerance: c.Search.Tolerance,
		MaxIter:   c.Search.MaxIter,
		Workers:   c.Search.Workers,
	}
}
