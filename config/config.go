// Package config resolves generator settings from defaults,
// an optional workflowgen.yaml file, WORKFLOWGEN_*
// environment variables and command-line flags, in
// increasing order of precedence. It uses spf13/viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/byte4ever/workflowgen/layout"
	"github.com/byte4ever/workflowgen/logging"
	"github.com/byte4ever/workflowgen/templating"
)

// Setting keys.
const (
	KeyTemplateDir   = "template_dir"
	KeyDefinitions   = "definitions"
	KeyOutputPattern = "output_pattern"
	KeyMaxPasses     = "max_passes"
	KeyLogLevel      = "log_level"
	KeyReport        = "report"
)

const (
	// EnvPrefix prefixes environment overrides, e.g.
	// WORKFLOWGEN_TEMPLATE_DIR.
	EnvPrefix = "WORKFLOWGEN"

	// FileName is the config file looked up in the working
	// directory when no explicit file is given.
	FileName = "workflowgen"

	// DefaultTemplateDir matches the usual repository
	// layout.
	DefaultTemplateDir = ".github/workflows_templates"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the resolved settings of one run.
type Config struct {
	// TemplateDir holds the "<id>.template" files.
	TemplateDir string

	// Definitions lists the catalogue files forming the
	// shared definition table.
	Definitions []string

	// OutputPattern locates generated files, see
	// layout.OutputPath.
	OutputPattern string

	// MaxPasses bounds substitution passes per template.
	MaxPasses int

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// Report is a path for the JSON run report, "-" for
	// stdout, empty for none.
	Report string

	// File is the config file used, if any.
	File string
}

// New returns a viper instance with defaults and
// environment overrides installed.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyTemplateDir, DefaultTemplateDir)
	v.SetDefault(KeyDefinitions, []string{})
	v.SetDefault(KeyOutputPattern, layout.DefaultOutputPattern)
	v.SetDefault(KeyMaxPasses, templating.DefaultMaxPasses)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyReport, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// RegisterFlags declares the setting flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default ./workflowgen.yaml if present)")
	fs.String("template-dir", DefaultTemplateDir, "directory holding *.template files")
	fs.StringSlice("definitions", nil, "catalogue YAML file (repeatable)")
	fs.String("output-pattern", layout.DefaultOutputPattern, "output path pattern ({dir}, {name}, {stem})")
	fs.Int("max-passes", templating.DefaultMaxPasses, "maximum substitution passes per template")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.String("report", "", "write a JSON run report to this file (- for stdout)")
}

// BindFlags binds the flags declared by RegisterFlags to
// their settings.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	const errCtx = "binding flags"

	for key, flag := range map[string]string{
		KeyTemplateDir:   "template-dir",
		KeyDefinitions:   "definitions",
		KeyOutputPattern: "output-pattern",
		KeyMaxPasses:     "max-passes",
		KeyLogLevel:      "log-level",
		KeyReport:        "report",
	} {
		fl := fs.Lookup(flag)
		if fl == nil {
			return fmt.Errorf("%s: flag --%s not declared", errCtx, flag)
		}

		if err := v.BindPFlag(key, fl); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	return nil
}

// Load reads the config file, if any, and returns the
// validated settings. An explicit file must exist; the
// implicit ./workflowgen.yaml is optional.
func Load(v *viper.Viper, file string) (*Config, error) {
	const errCtx = "loading configuration"

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	cfg := &Config{
		TemplateDir:   v.GetString(KeyTemplateDir),
		Definitions:   v.GetStringSlice(KeyDefinitions),
		OutputPattern: v.GetString(KeyOutputPattern),
		MaxPasses:     v.GetInt(KeyMaxPasses),
		LogLevel:      v.GetString(KeyLogLevel),
		Report:        v.GetString(KeyReport),
		File:          v.ConfigFileUsed(),
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return cfg, nil
}

// Validate checks cfg for values the generator cannot use.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.TemplateDir) == "" {
		return fmt.Errorf("%w: template_dir is empty", ErrInvalid)
	}

	if strings.TrimSpace(cfg.OutputPattern) == "" {
		return fmt.Errorf("%w: output_pattern is empty", ErrInvalid)
	}

	if cfg.MaxPasses < 0 {
		return fmt.Errorf(
			"%w: max_passes must not be negative, got %d",
			ErrInvalid, cfg.MaxPasses,
		)
	}

	for _, de := range cfg.Definitions {
		if strings.TrimSpace(de) == "" {
			return fmt.Errorf("%w: empty definitions path", ErrInvalid)
		}
	}

	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}
