// Package catalog loads the shared definition table from YAML files. Each
// file holds one or more documents whose top level maps definition names to
// scalar values:
//
//	linux: ubuntu-16.04
//	py37: "3.7.0"
//	upload_unix: &upload_unix |-
//	  pip install twine
//	  twine upload dist/*
//	upload_linux: *upload_unix
//	upload_mac: *upload_unix
//
// Entries keep file and key order. Scalars keep the text they are written
// with, so "mode: 0755" defines "0755". Anchors and aliases give one value
// several names. Redefining a name, across documents or files, is an error.
// Use "|-" block scalars for multi-line values unless a trailing newline is
// wanted in every expansion.
package catalog
