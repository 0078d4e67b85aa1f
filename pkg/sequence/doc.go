// Package sequence provides the shared monotonic counter behind every unique
// fixture value. A counter is created per generation context rather than as a
// hidden global, so test suites can pin or isolate counters when they need
// reproducible values.
package sequence
