// Package dsl provides the fluent builders that define modeltree types:
// record models, scalar wrappers and discriminated unions. Builders collect
// declarations, surface definition errors from Build (or panic from
// MustBuild), and hand back immutable types ready for data processing.
package dsl
