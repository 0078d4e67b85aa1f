// Package rules implements the ordered rule engine that maps a field
// descriptor to a generated value. Rules are evaluated most-specific-first:
// custom rules (newest first), then the built-in chain. The first matching
// rule wins; a field no rule matches is a hard failure, never a skipped
// field.
package rules
