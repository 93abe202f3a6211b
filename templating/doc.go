// Package templating expands "<<name>>" placeholders in text templates
// against a table of named definitions and writes the results as generated
// files.
//
// A definition value may itself contain placeholders; substitution repeats
// until a full pass over the table changes nothing. Multi-line values are
// aligned under the column where their placeholder stood, so the same
// fragment can be reused at any nesting depth of an indentation-sensitive
// format such as YAML.
//
// A template may declare its own arguments in a header:
//
//	# Arguments:
//	# event_name: push
//	# trigger: test-build  # used by repository_dispatch
//
// Declared names must not collide with the shared definitions. Any
// placeholder left after expansion, including those caught in a reference
// cycle, is an error. Generated documents start with a fixed
// "THIS FILE IS AUTOGENERATED. DO NOT EDIT." banner.
package templating
