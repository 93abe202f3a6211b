// Package layout maps template identifiers to files. A template "build.yml"
// lives in "<dir>/build.yml.template"; its output path comes from a
// single-brace pattern such as "{dir}/../workflows/{name}", expanded with
// valyala/fasttemplate.
package layout
