package templating

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxPasses bounds the number of substitution
// passes when no explicit limit is configured.
const DefaultMaxPasses = 10000

func placeholder(name string) string {
	return "<<" + name + ">>"
}

// Substitute replaces every <<name>> placeholder bound in
// defs until a full pass over the table changes nothing. It
// returns the expanded text and the number of passes run,
// the last one being the pass that found nothing to do.
//
// Each pass replaces the first occurrence of every
// definition's placeholder, in table order. A multi-line
// value keeps the text that preceded the placeholder on its
// first line; following lines are padded with spaces up to
// the placeholder column.
//
// Definitions reachable from text must not reference each
// other in a cycle, and the loop gives up after maxPasses
// passes (DefaultMaxPasses when maxPasses <= 0); both cases
// fail with an UnresolvedPlaceholderError.
func Substitute(
	template string,
	text string,
	defs *Definitions,
	maxPasses int,
) (string, int, error) {
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}

	if cycle := findCycle(text, defs); cycle != nil {
		return "", 0, &UnresolvedPlaceholderError{
			Template: template,
			Token:    placeholder(cycle[0]),
			Cycle:    cycle,
		}
	}

	names := defs.Names()
	values := make([]string, len(names))

	for i, name := range names {
		values[i], _ = defs.Lookup(name)
	}

	for pass := 1; ; pass++ {
		replaced := false

		for i, name := range names {
			var ok bool

			text, ok = substituteFirst(text, name, values[i])
			replaced = replaced || ok
		}

		if !replaced {
			return text, pass, nil
		}

		if pass >= maxPasses {
			token := firstPlaceholder(text)

			return "", pass, &UnresolvedPlaceholderError{
				Template: template,
				Token:    token,
			}
		}
	}
}

// substituteFirst expands the first <<name>> in text with
// value and reports whether a placeholder was found.
func substituteFirst(
	text string,
	name string,
	value string,
) (string, bool) {
	token := placeholder(name)

	at := strings.Index(text, token)
	if at < 0 {
		return text, false
	}

	lineStart := strings.LastIndexByte(text[:at], '\n') + 1

	var sb strings.Builder

	sb.Grow(len(text) + len(value))
	sb.WriteString(text[:lineStart])
	writeIndented(&sb, text[lineStart:at], value)
	sb.WriteString(text[at+len(token):])

	return sb.String(), true
}

// writeIndented writes prefix followed by value, aligning
// every line of value after the first under the column
// where value starts.
func writeIndented(
	sb *strings.Builder,
	prefix string,
	value string,
) {
	pad := strings.Repeat(" ", utf8.RuneCountInString(prefix))

	for i, line := range strings.Split(value, "\n") {
		if i == 0 {
			sb.WriteString(prefix)
		} else {
			sb.WriteByte('\n')
			sb.WriteString(pad)
		}

		sb.WriteString(line)
	}
}
