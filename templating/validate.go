package templating

import (
	"regexp"
)

var (
	leftoverPattern  = regexp.MustCompile(`<<[-\w]*>>`)
	referencePattern = regexp.MustCompile(`<<([-\w]+)>>`)
)

// ValidateExpanded fails with an UnresolvedPlaceholderError
// if text still holds anything shaped like a placeholder.
func ValidateExpanded(template string, text string) error {
	if token := firstPlaceholder(text); token != "" {
		return &UnresolvedPlaceholderError{
			Template: template,
			Token:    token,
		}
	}

	return nil
}

func firstPlaceholder(text string) string {
	return leftoverPattern.FindString(text)
}

// references lists the defined names mentioned as
// placeholders in text, in order of first appearance.
func references(text string, defs *Definitions) []string {
	var (
		out  []string
		seen = make(map[string]struct{})
	)

	for _, ma := range referencePattern.FindAllStringSubmatch(text, -1) {
		name := ma[1]
		if _, ok := seen[name]; ok || !defs.Has(name) {
			continue
		}

		seen[name] = struct{}{}
		out = append(out, name)
	}

	return out
}

// findCycle walks the definitions reachable from text and
// returns the first reference cycle found, as a chain that
// starts and ends with the same name. It returns nil when
// the reachable graph is acyclic.
func findCycle(text string, defs *Definitions) []string {
	const (
		unvisited = iota
		visiting
		done
	)

	state := make(map[string]int)

	var (
		stack []string
		walk  func(name string) []string
	)

	walk = func(name string) []string {
		switch state[name] {
		case done:
			return nil
		case visiting:
			for i, na := range stack {
				if na == name {
					chain := append([]string(nil), stack[i:]...)

					return append(chain, name)
				}
			}
		}

		state[name] = visiting
		stack = append(stack, name)

		value, _ := defs.Lookup(name)
		for _, ref := range references(value, defs) {
			if cycle := walk(ref); cycle != nil {
				return cycle
			}
		}

		stack = stack[:len(stack)-1]
		state[name] = done

		return nil
	}

	for _, name := range references(text, defs) {
		if cycle := walk(name); cycle != nil {
			return cycle
		}
	}

	return nil
}
