// Package openapi exposes the document, source, and operation wrappers used
// to derive fixture descriptors from OpenAPI schemas, keeping kin-openapi
// dependencies hidden from consumers.
package openapi
