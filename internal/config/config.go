// internal/config/config.go
//
// This package handles the orgexport configuration file. A project keeps an
// orgexport.yaml next to its roster describing where the roster lives and
// which header names carry each employee field.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the config file looked up in the working directory.
	FileName = "orgexport.yaml"

	// StateDir holds run artifacts such as the journal.
	StateDir = ".orgexport"

	defaultInput     = "sample.csv"
	defaultDelimiter = ","
)

const defaultConfigYAML = `# orgexport configuration
version: 1

# Roster to load. Relative paths resolve against this file's directory.
input: sample.csv

# Where exported subordinate files are written.
output_dir: .

# Field separator for both the roster and the exports.
delimiter: ","

# Header names for each employee field. Use full_name, or first_name and
# last_name when the roster splits names across two columns.
columns:
  full_name: Full Name
  email: Company email
  reports_to: Reports To Email
  title: Job Title
  department: Departments

log_file: .orgexport/logs/journal.log
`

// Columns maps employee roles onto roster header names.
type Columns struct {
	FullName   string `yaml:"full_name,omitempty"`
	FirstName  string `yaml:"first_name,omitempty"`
	LastName   string `yaml:"last_name,omitempty"`
	Email      string `yaml:"email"`
	ReportsTo  string `yaml:"reports_to"`
	Title      string `yaml:"title,omitempty"`
	Department string `yaml:"department,omitempty"`
}

// SplitName reports whether the full name is assembled from two columns.
func (c Columns) SplitName() bool {
	return c.FullName == "" && c.FirstName != "" && c.LastName != ""
}

// Required returns the header names that must be present in the roster.
func (c Columns) Required() []string {
	out := []string{c.Email, c.ReportsTo}
	if c.SplitName() {
		out = append(out, c.FirstName, c.LastName)
	} else {
		out = append(out, c.FullName)
	}
	if c.Title != "" {
		out = append(out, c.Title)
	}
	if c.Department != "" {
		out = append(out, c.Department)
	}
	return out
}

// FileConfig models orgexport.yaml.
type FileConfig struct {
	Version   int     `yaml:"version"`
	Input     string  `yaml:"input"`
	OutputDir string  `yaml:"output_dir"`
	Delimiter string  `yaml:"delimiter"`
	Columns   Columns `yaml:"columns"`
	LogFile   string  `yaml:"log_file"`
}

// Config holds the runtime configuration for a run.
type Config struct {
	// BaseDir is the directory relative paths are resolved against
	BaseDir string

	// Path is where the config was (or would be) loaded from
	Path string

	File FileConfig
}

// Default returns the built-in configuration rooted at baseDir.
func Default(baseDir string) *Config {
	cfg := &Config{
		BaseDir: baseDir,
		Path:    filepath.Join(baseDir, FileName),
		File:    defaultFileConfig(),
	}
	cfg.File.normalize(baseDir)
	return cfg
}

// Load reads the config at path. A missing file yields the defaults rooted at
// the file's directory.
func Load(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	cfg := Default(filepath.Dir(abs))
	cfg.Path = abs

	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", abs, err)
	}
	var parsed FileConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	parsed.applyDefaults()
	parsed.normalize(cfg.BaseDir)
	if err := parsed.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.File = parsed
	return cfg, nil
}

// Init writes the commented default config into dir unless one exists.
// It reports whether a new file was created.
func Init(dir string) (string, bool, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return path, false, err
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0644); err != nil {
		return path, false, fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, true, nil
}

// InputPath returns the absolute roster path.
func (c *Config) InputPath() string {
	return c.File.Input
}

// OutputDir returns the directory exports are written to.
func (c *Config) OutputDir() string {
	return c.File.OutputDir
}

// LogPath returns the journal location.
func (c *Config) LogPath() string {
	return c.File.LogFile
}

// Columns returns the header mapping.
func (c *Config) Columns() Columns {
	return c.File.Columns
}

// Delimiter returns the field separator rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.File.Delimiter)
	return r
}

// Override applies command-line values on top of the file config. Empty
// values leave the current setting untouched.
func (c *Config) Override(input, outputDir, delimiter string) error {
	if v := strings.TrimSpace(input); v != "" {
		c.File.Input = resolvePath(c.BaseDir, v)
	}
	if v := strings.TrimSpace(outputDir); v != "" {
		c.File.OutputDir = resolvePath(c.BaseDir, v)
	}
	if delimiter != "" {
		c.File.Delimiter = delimiter
	}
	if err := c.File.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func defaultFileConfig() FileConfig {
	return FileConfig{
		Version:   1,
		Input:     defaultInput,
		OutputDir: ".",
		Delimiter: defaultDelimiter,
		Columns:   defaultColumns(),
		LogFile:   filepath.Join(StateDir, "logs", "journal.log"),
	}
}

func defaultColumns() Columns {
	return Columns{
		FullName:   "Full Name",
		Email:      "Company email",
		ReportsTo:  "Reports To Email",
		Title:      "Job Title",
		Department: "Departments",
	}
}

func (fc *FileConfig) applyDefaults() {
	def := defaultFileConfig()
	if fc.Version == 0 {
		fc.Version = def.Version
	}
	if strings.TrimSpace(fc.Input) == "" {
		fc.Input = def.Input
	}
	if strings.TrimSpace(fc.OutputDir) == "" {
		fc.OutputDir = def.OutputDir
	}
	if fc.Delimiter == "" {
		fc.Delimiter = def.Delimiter
	}
	if strings.TrimSpace(fc.LogFile) == "" {
		fc.LogFile = def.LogFile
	}
	if fc.Columns == (Columns{}) {
		fc.Columns = def.Columns
	}
}

func (fc *FileConfig) normalize(base string) {
	fc.Input = resolvePath(base, fc.Input)
	fc.OutputDir = resolvePath(base, fc.OutputDir)
	fc.LogFile = resolvePath(base, fc.LogFile)
	fc.Columns.normalize()
}

func (fc *FileConfig) validate() error {
	if fc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if utf8.RuneCountInString(fc.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", fc.Delimiter)
	}
	switch fc.Delimiter {
	case "\"", "\r", "\n":
		return fmt.Errorf("delimiter %q is not allowed", fc.Delimiter)
	}
	if err := fc.Columns.validate(); err != nil {
		return fmt.Errorf("columns: %w", err)
	}
	return nil
}

func (c *Columns) normalize() {
	c.FullName = strings.TrimSpace(c.FullName)
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Email = strings.TrimSpace(c.Email)
	c.ReportsTo = strings.TrimSpace(c.ReportsTo)
	c.Title = strings.TrimSpace(c.Title)
	c.Department = strings.TrimSpace(c.Department)
}

func (c Columns) validate() error {
	if c.Email == "" {
		return fmt.Errorf("email is required")
	}
	if c.ReportsTo == "" {
		return fmt.Errorf("reports_to is required")
	}
	if c.FullName == "" && (c.FirstName == "" || c.LastName == "") {
		return fmt.Errorf("full_name or both first_name and last_name are required")
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}
