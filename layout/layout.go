package layout

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/valyala/fasttemplate"
)

const (
	// TemplateExt is the suffix of template files.
	TemplateExt = ".template"

	// DefaultOutputPattern writes generated files to the
	// workflows directory next to the template directory.
	DefaultOutputPattern = "{dir}/../workflows/{name}"
)

// ErrUnknownTag is returned for output patterns using a
// tag other than {dir}, {name} or {stem}.
var ErrUnknownTag = errors.New("unknown output pattern tag")

// ErrBadIdentifier is returned for template identifiers
// that are empty or not plain file names.
var ErrBadIdentifier = errors.New("bad template identifier")

// CheckIdentifier validates a template identifier. An
// identifier is a plain file name such as "build.yml".
func CheckIdentifier(id string) error {
	if id == "" || id == "." || id == ".." ||
		filepath.Base(id) != id ||
		strings.ContainsRune(id, '/') {
		return fmt.Errorf("%w: %q", ErrBadIdentifier, id)
	}

	return nil
}

// TemplatePath returns the template file of id in dir.
func TemplatePath(dir, id string) string {
	return filepath.Join(dir, id+TemplateExt)
}

// Discover lists the identifiers of all template files in
// dir, sorted.
func Discover(dir string) ([]string, error) {
	const errCtx = "discovering templates"

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var ids []string

	for _, en := range entries {
		name := en.Name()
		if en.IsDir() || !strings.HasSuffix(name, TemplateExt) {
			continue
		}

		id := strings.TrimSuffix(name, TemplateExt)
		if id == "" {
			continue
		}

		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids, nil
}

// OutputPath expands pattern for template id found in dir.
// The pattern uses single-brace tags:
//
//	{dir}   the template directory
//	{name}  the identifier, e.g. "build.yml"
//	{stem}  the identifier without extension, e.g. "build"
//
// The result is cleaned with filepath.Clean.
func OutputPath(pattern, dir, id string) (string, error) {
	const errCtx = "building output path"

	if err := CheckIdentifier(id); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	if pattern == "" {
		pattern = DefaultOutputPattern
	}

	vars := map[string]string{
		"dir":  dir,
		"name": id,
		"stem": strings.TrimSuffix(id, filepath.Ext(id)),
	}

	out, err := fasttemplate.ExecuteFuncStringWithErr(
		pattern, "{", "}",
		func(w io.Writer, tag string) (int, error) {
			val, ok := vars[tag]
			if !ok {
				return 0, fmt.Errorf("%w: {%s}", ErrUnknownTag, tag)
			}

			return io.WriteString(w, val)
		},
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return filepath.Clean(out), nil
}
