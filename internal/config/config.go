package config

import (
	"fmt"
	"os"

	"contractlens/internal/diagram"
	"gopkg.in/yaml.v3"
)

type OutputConfig struct {
	Format  string `yaml:"format"`  // text, json or mermaid
	Color   *bool  `yaml:"color"`   // nil means auto
	Mermaid string `yaml:"mermaid"` // raw or markdown
}

type DiagramConfig struct {
	Mode string `yaml:"mode"`
}

type AnalysisConfig struct {
	MaxInputBytes int `yaml:"max_input_bytes"`
	Concurrency   int `yaml:"concurrency"`
}

type LogConfig struct {
	Verbosity int    `yaml:"verbosity"`
	File      string `yaml:"file"`
}

type AppConfig struct {
	Output   OutputConfig   `yaml:"output"`
	Diagram  DiagramConfig  `yaml:"diagram"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Log      LogConfig      `yaml:"log"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-"`
}

// Default returns the configuration used when no file is found.
func Default() *AppConfig {
	return &AppConfig{
		Output:   OutputConfig{Format: "text", Mermaid: "raw"},
		Diagram:  DiagramConfig{Mode: "flow"},
		Analysis: AnalysisConfig{MaxInputBytes: 1 << 20, Concurrency: 4},
		Log:      LogConfig{Verbosity: 0},
	}
}

// Load reads the configuration. An explicit path must exist; otherwise the
// search paths are tried and defaults are used when none exists. Values
// missing from the file keep their defaults.
func Load(path string) (*AppConfig, error) {
	if path == "" {
		path = findConfigFile()
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %s: %w", path, err)
	}
	config.Path = path

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration file %s: %w", path, err)
	}
	return config, nil
}

// Validate checks enumerated values and limits.
func (c *AppConfig) Validate() error {
	switch c.Output.Format {
	case "text", "json", "mermaid":
	default:
		return fmt.Errorf("output.format must be text, json or mermaid, got %q", c.Output.Format)
	}
	switch c.Output.Mermaid {
	case "raw", "markdown":
	default:
		return fmt.Errorf("output.mermaid must be raw or markdown, got %q", c.Output.Mermaid)
	}
	if _, err := diagram.ParseMode(c.Diagram.Mode); err != nil {
		return fmt.Errorf("diagram.mode: %w", err)
	}
	if c.Analysis.MaxInputBytes < 0 {
		return fmt.Errorf("analysis.max_input_bytes must not be negative")
	}
	if c.Analysis.Concurrency < 0 {
		return fmt.Errorf("analysis.concurrency must not be negative")
	}
	return nil
}

// UseColor resolves the color setting; auto defers to the terminal.
func (c *AppConfig) UseColor(terminal bool) bool {
	if c.Output.Color == nil {
		return terminal
	}
	return *c.Output.Color
}

func findConfigFile() string {
	possiblePaths := []string{
		"contractlens.yaml",
		"config/contractlens.yaml",
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
