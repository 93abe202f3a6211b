package templating

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/byte4ever/workflowgen/digester"
	"github.com/byte4ever/workflowgen/layout"
)

// Banner heads every generated document.
const Banner = "################################################\n" +
	"###                                          ###\n" +
	"### THIS FILE IS AUTOGENERATED. DO NOT EDIT. ###\n" +
	"###                                          ###\n" +
	"################################################\n"

// Status describes what happened to a generated file.
type Status string

// Result statuses.
const (
	StatusWritten   Status = "written"
	StatusUnchanged Status = "unchanged"
	StatusUpToDate  Status = "up-to-date"
	StatusDrifted   Status = "drifted"
)

// Expansion is a fully expanded and validated template.
type Expansion struct {
	Text      string
	Arguments []Definition
	Passes    int
}

// Result describes one processed template.
type Result struct {
	Template  string   `json:"template"`
	Output    string   `json:"output"`
	Arguments []string `json:"arguments,omitempty"`
	Passes    int      `json:"passes"`
	Digest    string   `json:"digest"`
	Status    Status   `json:"status"`
}

// Engine expands the templates of a directory against a
// shared definition table. Definitions is only read; each
// template works on its own copy extended with the
// arguments the template declares.
type Engine struct {
	// Definitions holds the definitions shared by all
	// templates. Nil means none.
	Definitions *Definitions

	// TemplateDir holds the "<id>.template" files.
	TemplateDir string

	// OutputPattern locates generated files, see
	// layout.OutputPath. Empty means
	// layout.DefaultOutputPattern.
	OutputPattern string

	// MaxPasses bounds substitution passes. Zero or less
	// means DefaultMaxPasses.
	MaxPasses int

	// Logger receives progress messages. Nil means
	// slog.Default().
	Logger *slog.Logger
}

func (en *Engine) logger() *slog.Logger {
	if en.Logger == nil {
		return slog.Default()
	}

	return en.Logger
}

// Expand expands text, the body of template id. Arguments
// declared in its header are added to a copy of the shared
// definitions before substitution.
func (en *Engine) Expand(id string, text string) (Expansion, error) {
	const errCtx = "expanding template"

	lo := en.logger().With("template", id)

	args, err := ExtractArguments(id, text, en.Definitions)
	if err != nil {
		return Expansion{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	defs := en.Definitions.Clone()

	for _, arg := range args {
		lo.Debug("found argument", "name", arg.Name, "value", arg.Value)

		if err := defs.Add(arg.Name, arg.Value); err != nil {
			return Expansion{}, fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	out, passes, err := Substitute(id, text, defs, en.MaxPasses)
	if err != nil {
		return Expansion{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := ValidateExpanded(id, out); err != nil {
		return Expansion{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	lo.Debug("expanded", "passes", passes)

	return Expansion{Text: out, Arguments: args, Passes: passes}, nil
}

// Render prefixes expanded text with the banner and an
// empty line.
func Render(expanded string) string {
	return Banner + "\n" + expanded
}

// Generate expands template id and writes the rendered
// document to its output path. The file is left untouched
// when it already holds the same bytes.
func (en *Engine) Generate(id string) (Result, error) {
	const errCtx = "generating"

	lo := en.logger().With("template", id)
	lo.Info("started templating")

	res, doc, err := en.render(id)
	if err != nil {
		return res, fmt.Errorf("%s %s: %w", errCtx, id, err)
	}

	same, err := digester.Matches(res.Output, doc)
	if err != nil {
		return res, fmt.Errorf("%s %s: %w", errCtx, id, err)
	}

	if same {
		res.Status = StatusUnchanged
		lo.Info("finished templating", "output", res.Output, "status", res.Status)

		return res, nil
	}

	//nolint:gosec // repository directories
	if err := os.MkdirAll(filepath.Dir(res.Output), 0o755); err != nil {
		return res, fmt.Errorf("%s %s: %w", errCtx, id, err)
	}

	//nolint:gosec // generated files are committed sources
	if err := os.WriteFile(res.Output, doc, 0o644); err != nil {
		return res, fmt.Errorf("%s %s: %w", errCtx, id, err)
	}

	res.Status = StatusWritten
	lo.Info("finished templating", "output", res.Output, "status", res.Status)

	return res, nil
}

// Check expands template id and compares the rendering
// with the file at its output path without writing. It
// returns an error wrapping ErrDrift when they differ.
func (en *Engine) Check(id string) (Result, error) {
	const errCtx = "checking"

	res, doc, err := en.render(id)
	if err != nil {
		return res, fmt.Errorf("%s %s: %w", errCtx, id, err)
	}

	same, err := digester.Matches(res.Output, doc)
	if err != nil {
		return res, fmt.Errorf("%s %s: %w", errCtx, id, err)
	}

	if !same {
		res.Status = StatusDrifted

		return res, fmt.Errorf(
			"%s %s: %w: %s", errCtx, id, ErrDrift, res.Output,
		)
	}

	res.Status = StatusUpToDate
	en.logger().Info("up to date", "template", id, "output", res.Output)

	return res, nil
}

// render loads, expands and renders template id.
func (en *Engine) render(id string) (Result, []byte, error) {
	res := Result{Template: id}

	out, err := layout.OutputPath(en.OutputPattern, en.TemplateDir, id)
	if err != nil {
		return res, nil, err
	}

	res.Output = out

	text, err := en.readTemplate(id)
	if err != nil {
		return res, nil, err
	}

	ex, err := en.Expand(id, text)
	if err != nil {
		return res, nil, err
	}

	doc := []byte(Render(ex.Text))

	for _, arg := range ex.Arguments {
		res.Arguments = append(res.Arguments, arg.Name)
	}

	res.Passes = ex.Passes
	res.Digest = digester.Sum(doc)

	return res, doc, nil
}

// readTemplate reads the template file of id with line
// endings normalized to "\n".
func (en *Engine) readTemplate(id string) (string, error) {
	const errCtx = "reading template"

	content, err := os.ReadFile( //nolint:gosec // paths from configuration
		layout.TemplatePath(en.TemplateDir, id),
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return normalizeNewlines(string(content)), nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	return strings.ReplaceAll(s, "\r", "\n")
}

// ExpandString expands a template body against defs with
// the default settings and returns the expanded text,
// without banner.
func ExpandString(id string, text string, defs *Definitions) (string, error) {
	en := Engine{Definitions: defs}

	ex, err := en.Expand(id, text)
	if err != nil {
		return "", err
	}

	return ex.Text, nil
}
