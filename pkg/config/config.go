package config

import (
	"fmt"
	"strings"
)

type Feature int

const (
	FeatColor Feature = iota
	FeatCaret
	FeatPositions
	FeatCount
)

type Warning int

const (
	WarnOctal Warning = iota
	WarnDollar
	WarnOverflow
	WarnErrorLimit
	WarnCount
)

type Info struct {
	Name        string
	Enabled     bool
	Description string
}

type Config struct {
	Features   map[Feature]Info
	Warnings   map[Warning]Info
	FeatureMap map[string]Feature
	WarningMap map[string]Warning

	Format    string
	Output    string
	MaxErrors int
}

var Formats = []string{"text", "json"}

func NewConfig() *Config {
	cfg := &Config{
		Features:   make(map[Feature]Info),
		Warnings:   make(map[Warning]Info),
		FeatureMap: make(map[string]Feature),
		WarningMap: make(map[string]Warning),
		Format:     "text",
		Output:     "-",
	}

	features := map[Feature]Info{
		FeatColor:     {"color", false, "Colorize diagnostics."},
		FeatCaret:     {"caret", true, "Print the source line and a caret under each diagnostic."},
		FeatPositions: {"positions", true, "Print token positions in text dumps."},
	}

	warnings := map[Warning]Info{
		WarnOctal:      {"octal", false, "Warn on octal literals other than '0'."},
		WarnDollar:     {"dollar", true, "Warn on '$' in identifiers."},
		WarnOverflow:   {"overflow", true, "Warn when an integer literal does not fit in 64 bits."},
		WarnErrorLimit: {"error-limit", true, "Note when scanning stops at the error limit."},
	}

	cfg.Features, cfg.Warnings = features, warnings
	for ft, info := range features {
		cfg.FeatureMap[info.Name] = ft
	}
	for wt, info := range warnings {
		cfg.WarningMap[info.Name] = wt
	}
	return cfg
}

func (c *Config) SetFeature(ft Feature, enabled bool) {
	if info, ok := c.Features[ft]; ok {
		info.Enabled = enabled
		c.Features[ft] = info
	}
}

func (c *Config) IsFeatureEnabled(ft Feature) bool { return c.Features[ft].Enabled }

func (c *Config) SetWarning(wt Warning, enabled bool) {
	if info, ok := c.Warnings[wt]; ok {
		info.Enabled = enabled
		c.Warnings[wt] = info
	}
}

func (c *Config) IsWarningEnabled(wt Warning) bool { return c.Warnings[wt].Enabled }

// WarningName returns the -W name of wt.
func (c *Config) WarningName(wt Warning) string { return c.Warnings[wt].Name }

// ApplyFlag applies a single -W or -F flag such as "-Wno-octal", "-Wall" or
// "-Fno-caret".
func (c *Config) ApplyFlag(flag string) error {
	trimmed := strings.TrimPrefix(flag, "-")
	var isWarning bool
	switch {
	case strings.HasPrefix(trimmed, "W"):
		isWarning = true
	case strings.HasPrefix(trimmed, "F"):
	default:
		return fmt.Errorf("unrecognized flag '%s'", flag)
	}

	name := trimmed[1:]
	enable := !strings.HasPrefix(name, "no-")
	name = strings.TrimPrefix(name, "no-")

	if isWarning {
		if name == "all" {
			for i := Warning(0); i < WarnCount; i++ {
				c.SetWarning(i, enable)
			}
			return nil
		}
		w, ok := c.WarningMap[name]
		if !ok {
			return fmt.Errorf("unknown warning '%s'", name)
		}
		c.SetWarning(w, enable)
		return nil
	}

	f, ok := c.FeatureMap[name]
	if !ok {
		return fmt.Errorf("unknown feature '%s'", name)
	}
	c.SetFeature(f, enable)
	return nil
}

func (c *Config) Validate() error {
	if c.MaxErrors < 0 {
		return fmt.Errorf("error limit must not be negative, got %d", c.MaxErrors)
	}
	for _, f := range Formats {
		if c.Format == f {
			return nil
		}
	}
	return fmt.Errorf("unsupported format '%s'. Supported: %s", c.Format, strings.Join(Formats, ", "))
}
