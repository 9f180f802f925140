// Package filter implements the percent-change filter engine.
//
// Every function in this package is pure: it takes already loaded tables and
// returns new derived tables, never mutating its input and never failing.
// Malformed numeric input has already been turned into the missing marker by
// Normalize, and every range predicate treats missing values as non-matching.
//
// Typical flow:
//
//	first := filter.Normalize(rawFirst, domain.DefaultColumns())
//	second := filter.Normalize(rawSecond, domain.DefaultColumns())
//
//	split := filter.SplitBySign(first, -0.71, 0.71)
//	hl := filter.CrossHighlight(first, second, -0.71, 0.71)
package filter
