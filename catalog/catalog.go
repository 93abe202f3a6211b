package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/byte4ever/workflowgen/templating"
)

// ErrValueType is returned for catalogue entries whose
// key or value is not a plain scalar.
var ErrValueType = errors.New("unsupported catalogue entry")

// Load reads the catalogue files at paths, in order, into
// a single definition table.
func Load(paths ...string) (*templating.Definitions, error) {
	const errCtx = "loading catalogue"

	defs := &templating.Definitions{}

	for _, pa := range paths {
		if err := loadFile(pa, defs); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	return defs, nil
}

func loadFile(path string, defs *templating.Definitions) error {
	fi, err := os.Open(path) //nolint:gosec // paths from configuration
	if err != nil {
		return err
	}

	//nolint:errcheck // read-only file
	defer fi.Close()

	return Decode(fi, path, defs)
}

// Decode reads every YAML document of r and adds its
// top-level entries to defs in document order. source names
// r in error messages. A key already present in defs fails
// with a templating.DuplicateDefinitionError.
//
// Scalars keep the text they are written with, so "0755",
// "3.10" and "True" reach the table unchanged; null is the
// empty string.
func Decode(
	r io.Reader,
	source string,
	defs *templating.Definitions,
) error {
	const errCtx = "decoding catalogue"

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%s %s: %w", errCtx, source, err)
	}

	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return fmt.Errorf("%s %s: %w", errCtx, source, err)
	}

	for _, doc := range file.Docs {
		if err := decodeDocument(doc, source, defs); err != nil {
			return fmt.Errorf("%s %s: %w", errCtx, source, err)
		}
	}

	return nil
}

func decodeDocument(
	doc *ast.DocumentNode,
	source string,
	defs *templating.Definitions,
) error {
	var entries []*ast.MappingValueNode

	switch body := doc.Body.(type) {
	case nil:
		return nil
	case *ast.MappingNode:
		entries = body.Values
	case *ast.MappingValueNode:
		entries = []*ast.MappingValueNode{body}
	default:
		return fmt.Errorf(
			"%w: top level is a %s, not a mapping",
			ErrValueType, doc.Body.Type(),
		)
	}

	// Anchors are scoped to their document.
	anchors := make(map[string]ast.Node)

	for _, entry := range entries {
		if err := addEntry(entry, source, anchors, defs); err != nil {
			return err
		}
	}

	return nil
}

func addEntry(
	entry *ast.MappingValueNode,
	source string,
	anchors map[string]ast.Node,
	defs *templating.Definitions,
) error {
	key, ok := entry.Key.(*ast.StringNode)
	if !ok {
		return fmt.Errorf(
			"%w: key %s is a %s, quote it",
			ErrValueType, entry.Key.String(), entry.Key.Type(),
		)
	}

	name := key.Value

	value, err := scalarText(name, entry.Value, anchors)
	if err != nil {
		return err
	}

	err = defs.Add(name, value)

	var de *templating.DuplicateDefinitionError
	if errors.As(err, &de) {
		de.Template = source
	}

	return err
}

// scalarText returns the definition text of node. Numbers
// and booleans are taken from their source token; tags are
// ignored.
func scalarText(
	name string,
	node ast.Node,
	anchors map[string]ast.Node,
) (string, error) {
	switch no := node.(type) {
	case nil, *ast.NullNode:
		return "", nil
	case *ast.StringNode:
		return no.Value, nil
	case *ast.LiteralNode:
		return no.Value.Value, nil
	case *ast.IntegerNode, *ast.FloatNode, *ast.BoolNode,
		*ast.InfinityNode, *ast.NanNode:
		return no.GetToken().Value, nil
	case *ast.TagNode:
		return scalarText(name, no.Value, anchors)
	case *ast.AnchorNode:
		text, err := scalarText(name, no.Value, anchors)
		if err != nil {
			return "", err
		}

		anchors[no.Name.GetToken().Value] = no.Value

		return text, nil
	case *ast.AliasNode:
		alias := no.Value.GetToken().Value

		target, ok := anchors[alias]
		if !ok {
			return "", fmt.Errorf(
				"%w: %q refers to unknown anchor %q",
				ErrValueType, name, alias,
			)
		}

		return scalarText(name, target, anchors)
	default:
		return "", fmt.Errorf(
			"%w: %q is a %s, only scalars are allowed",
			ErrValueType, name, node.Type(),
		)
	}
}
