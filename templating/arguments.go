package templating

import (
	"regexp"
	"strings"
)

var (
	argumentHeader = regexp.MustCompile(`^ *# *Arguments: *$`)
	argumentLine   = regexp.MustCompile(
		`^ *# *([-\w]+): *([-.\w]+) *(#.*)?$`,
	)
)

// ExtractArguments collects the per-template arguments
// declared in text. The declaration block starts after the
// first "# Arguments:" line and holds "# name: value" lines,
// each optionally followed by a "# comment". A repeated
// "# Arguments:" line is skipped and the block goes on.
// Collection stops at the first other line that does not
// match; that line and everything after it are not
// arguments.
//
// A declared name that already exists in known, or that is
// declared twice, fails with a DuplicateDefinitionError
// naming template. The declaration lines stay in the
// template body.
func ExtractArguments(
	template string,
	text string,
	known *Definitions,
) ([]Definition, error) {
	var (
		found  []Definition
		seen   = make(map[string]struct{})
		inside bool
	)

	for _, line := range strings.Split(text, "\n") {
		if argumentHeader.MatchString(line) {
			inside = true

			continue
		}

		if !inside {
			continue
		}

		ma := argumentLine.FindStringSubmatch(line)
		if ma == nil {
			break
		}

		name, value := ma[1], ma[2]

		_, dup := seen[name]
		if dup || known.Has(name) {
			return nil, &DuplicateDefinitionError{
				Template: template,
				Name:     name,
			}
		}

		seen[name] = struct{}{}
		found = append(found, Definition{Name: name, Value: value})
	}

	return found, nil
}
