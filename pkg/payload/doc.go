// Package payload derives fixture descriptors from OpenAPI request-body
// schemas and generates JSON fixture payloads for API tests. Derived records
// construct map[string]any instances, so the same rule engine and sequence
// counter that populate registered Go records also populate wire payloads.
package payload
