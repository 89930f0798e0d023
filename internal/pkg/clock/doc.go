// Package clock hides the wall clock behind a one-method interface.
//
// Use cases take a Clocker instead of calling time.Now directly, so tests
// can pin "now" to a fixed instant and assert on derived timestamps.
package clock
