// Package tscheck verifies that generated TypeScript parses, using the
// tree-sitter TypeScript grammar. It checks syntax only; no type checking
// is done.
package tscheck
