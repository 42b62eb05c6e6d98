package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdconv"
	"github.com/alnah/go-mdconv/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxPathLength      = 4096 // PATH_MAX on Linux
	MaxStyleLength     = 100  // style name or short path
	MaxDirectionLength = 10   // "html2md", "md2html"
	MaxLineBreakLength = 10   // "  \n", "\\\n"
	MaxPreserveTags    = 64   // above the number of known elements
	MaxWorkers         = mdconv.MaxPoolSize
	MaxTimeoutLength   = 20 // "1h30m", "90s"
)

// configDirName is the directory searched under os.UserConfigDir.
const configDirName = "go-mdconv"

// Config holds the settings a config file can provide. Zero values mean
// "not set": the CLI falls back to flags and library defaults.
type Config struct {
	Direction string         `yaml:"direction"` // "html2md" or "md2html" (empty = from extension)
	Input     InputConfig    `yaml:"input"`
	Output    OutputConfig   `yaml:"output"`
	HTML      HTMLConfig     `yaml:"html"`
	Markdown  MarkdownConfig `yaml:"markdown"`
	Style     string         `yaml:"style"` // name, path, or CSS for standalone output
	CSS       CSSConfig      `yaml:"css"`
	Preview   PreviewConfig  `yaml:"preview"`
	Assets    AssetsConfig   `yaml:"assets"`
	Workers   int            `yaml:"workers"` // 0 = auto
	Timeout   string         `yaml:"timeout"` // Go duration, per file
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Used when no input argument is given
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source
}

// HTMLConfig mirrors mdconv.HTMLOptions for html2md.
type HTMLConfig struct {
	HeadingStyle       string   `yaml:"headingStyle"`
	CodeBlockStyle     string   `yaml:"codeBlockStyle"`
	EmDelimiter        string   `yaml:"emDelimiter"`
	StrongDelimiter    string   `yaml:"strongDelimiter"`
	BulletListMarker   string   `yaml:"bulletListMarker"`
	LinkStyle          string   `yaml:"linkStyle"`
	LinkReferenceStyle string   `yaml:"linkReferenceStyle"`
	LineBreak          string   `yaml:"lineBreak"`
	Preserve           []string `yaml:"preserve"` // Empty = library default
}

// MarkdownConfig defines md2html options. Pointers distinguish "unset"
// from an explicit false for options that default to on.
type MarkdownConfig struct {
	Standalone     bool   `yaml:"standalone"`
	HardWraps      bool   `yaml:"hardWraps"`
	Highlight      *bool  `yaml:"highlight"`      // default true
	HighlightStyle string `yaml:"highlightStyle"` // chroma style name
	SpecialBlocks  *bool  `yaml:"specialBlocks"`  // default true
	AllowRawHTML   bool   `yaml:"allowRawHTML"`
}

// CSSConfig defines extra CSS appended after the stylesheet.
type CSSConfig struct {
	File string `yaml:"file"`
}

// PreviewConfig defines md2html PNG preview options.
type PreviewConfig struct {
	Enabled  bool `yaml:"enabled"`
	Width    int  `yaml:"width"`  // 0 = default
	Height   int  `yaml:"height"` // 0 = default
	FullPage bool `yaml:"fullPage"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = embedded styles only
}

// HTMLOptions converts the section to library options.
func (h HTMLConfig) HTMLOptions() mdconv.HTMLOptions {
	return mdconv.HTMLOptions{
		HeadingStyle:       h.HeadingStyle,
		CodeBlockStyle:     h.CodeBlockStyle,
		EmDelimiter:        h.EmDelimiter,
		StrongDelimiter:    h.StrongDelimiter,
		BulletListMarker:   h.BulletListMarker,
		LinkStyle:          h.LinkStyle,
		LinkReferenceStyle: h.LinkReferenceStyle,
		LineBreak:          h.LineBreak,
		Preserve:           h.Preserve,
	}
}

// MarkdownOptions converts the section to library options, applying the
// library defaults for unset fields.
func (m MarkdownConfig) MarkdownOptions() mdconv.MarkdownOptions {
	opts := *mdconv.DefaultMarkdownOptions()
	opts.HardWraps = m.HardWraps
	opts.AllowRawHTML = m.AllowRawHTML
	if m.Highlight != nil {
		opts.Highlight = *m.Highlight
	}
	if m.SpecialBlocks != nil {
		opts.SpecialBlocks = *m.SpecialBlocks
	}
	if m.HighlightStyle != "" {
		opts.HighlightStyle = m.HighlightStyle
	}
	return opts
}

// PreviewSettings converts the section to library settings, applying the
// default viewport for unset dimensions.
func (p PreviewConfig) PreviewSettings() mdconv.PreviewSettings {
	s := *mdconv.DefaultPreviewSettings()
	if p.Width != 0 {
		s.Width = p.Width
	}
	if p.Height != 0 {
		s.Height = p.Height
	}
	s.FullPage = p.FullPage
	return s
}

// TimeoutDuration parses Timeout. An empty value returns 0.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidValue, c.Timeout)
	}
	return d, nil
}

// Validate checks field lengths and option values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"direction", c.Direction, MaxDirectionLength},
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"html.lineBreak", c.HTML.LineBreak, MaxLineBreakLength},
		{"css.file", c.CSS.File, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"timeout", c.Timeout, MaxTimeoutLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	// Inline CSS is allowed as a style, so only names and paths are capped.
	switch fileutil.ClassifyStyle(c.Style) {
	case fileutil.StyleName:
		if err := validateFieldLength("style", c.Style, MaxStyleLength); err != nil {
			return err
		}
	case fileutil.StyleFile:
		if err := validateFieldLength("style", c.Style, MaxPathLength); err != nil {
			return err
		}
	}

	if c.Direction != "" {
		if _, err := mdconv.ParseDirection(c.Direction); err != nil {
			return fmt.Errorf("direction: %w", err)
		}
	}

	if len(c.HTML.Preserve) > MaxPreserveTags {
		return fmt.Errorf("%w: html.preserve has %d tags (max %d)", ErrInvalidValue, len(c.HTML.Preserve), MaxPreserveTags)
	}
	htmlOpts := c.HTML.HTMLOptions()
	if err := htmlOpts.Validate(); err != nil {
		return fmt.Errorf("html: %w", err)
	}

	mdOpts := c.Markdown.MarkdownOptions()
	if err := mdOpts.Validate(); err != nil {
		return fmt.Errorf("markdown: %w", err)
	}

	preview := c.Preview.PreviewSettings()
	if err := preview.Validate(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration with nothing set.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := decodeStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// .yaml then .yml, in the current directory then <user config dir>/go-mdconv/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	dirs := []string{""}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userConfigDir, configDirName))
	}

	paths := make([]string, 0, len(extensions)*len(dirs))
	for _, dir := range dirs {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, path := range tried {
		if fileutil.FileExists(path) {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
