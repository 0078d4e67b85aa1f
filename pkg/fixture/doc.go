// Package fixture assembles fully populated record instances for tests. A
// Generator walks a registered record's fields in declared order, resolves
// each through the rule engine (recursing into nested records against the
// same shared counter), invokes the canonical constructor, and applies any
// caller overrides afterward. Generation either completes or fails
// synchronously with the dotted path of the offending field; a partial
// instance is never returned.
package fixture
