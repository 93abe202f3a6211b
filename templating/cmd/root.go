package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/byte4ever/workflowgen/catalog"
	"github.com/byte4ever/workflowgen/config"
	"github.com/byte4ever/workflowgen/layout"
	"github.com/byte4ever/workflowgen/logging"
	"github.com/byte4ever/workflowgen/report"
	"github.com/byte4ever/workflowgen/templating"
)

const (
	modeGenerate = "generate"
	modeCheck    = "check"
)

// errFailed is returned when at least one template failed;
// the failures themselves are already logged.
var errFailed = errors.New("templating failed")

func newRootCmd() *cobra.Command {
	v := config.New()

	root := &cobra.Command{
		Use:   "workflowgen",
		Short: "Generate workflow files from <<name>> templates",
		Long: `workflowgen expands "<<name>>" placeholders in *.template files
against a YAML catalogue of shared definitions and per-template
"# Arguments:" headers, and writes the results with a
"DO NOT EDIT" banner.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	config.RegisterFlags(root.PersistentFlags())

	root.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		return config.BindFlags(v, root.PersistentFlags())
	}

	root.AddCommand(
		newModeCmd(v, modeGenerate,
			"Generate the listed templates, or all of them",
		),
		newModeCmd(v, modeCheck,
			"Fail if generated files differ from their templates",
		),
	)

	return root
}

func newModeCmd(v *viper.Viper, mode, short string) *cobra.Command {
	return &cobra.Command{
		Use:   mode + " [template...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}

			cfg, err := config.Load(v, file)
			if err != nil {
				return err
			}

			return run(cfg, mode, args, cmd.ErrOrStderr())
		},
	}
}

// run processes every requested template, or every
// template of the configured directory when ids is empty.
// Each template is attempted even when an earlier one
// failed.
func run(
	cfg *config.Config,
	mode string,
	ids []string,
	logOut io.Writer,
) error {
	const errCtx = "running"

	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	lo := logging.NewWithWriter(logOut, lvl)

	if cfg.File != "" {
		lo.Debug("using config file", "path", cfg.File)
	}

	defs, err := catalog.Load(cfg.Definitions...)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	lo.Debug("loaded definitions", "count", defs.Len())

	if len(ids) == 0 {
		ids, err = layout.Discover(cfg.TemplateDir)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	en := &templating.Engine{
		Definitions:   defs,
		TemplateDir:   cfg.TemplateDir,
		OutputPattern: cfg.OutputPattern,
		MaxPasses:     cfg.MaxPasses,
		Logger:        lo,
	}

	process := en.Generate
	if mode == modeCheck {
		process = en.Check
	}

	rep := report.New(mode)

	for _, id := range ids {
		res, err := process(id)
		if res.Template == "" {
			res.Template = id
		}

		rep.Add(res, err)

		if err != nil {
			lo.Error("template failed", "template", id, "error", err)
		}
	}

	if cfg.Report != "" {
		if err := rep.WriteFile(cfg.Report); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	lo.Info(
		"done",
		"mode", mode,
		"templates", len(ids),
		"written", rep.Count(templating.StatusWritten),
		"unchanged", rep.Count(templating.StatusUnchanged),
		"failed", len(rep.Failures),
	)

	if rep.Failed() {
		return fmt.Errorf(
			"%w: %d of %d templates",
			errFailed, len(rep.Failures), len(ids),
		)
	}

	return nil
}
