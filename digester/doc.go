// Package digester calculates SHA256 digests of generated files and of
// freshly rendered content. Comparing the two lets the generator skip
// rewriting files that are already up to date and report drift between a
// committed file and its template.
package digester
