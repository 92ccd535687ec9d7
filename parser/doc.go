// Package parser reads composition files.
//
// What:
//
//	Parse runs a line-oriented state machine over a composition file and
//	returns a flat stream of typed events: method declarations, change
//	counts, headers, rows, footnotes and the boundaries of each composition.
//	Three consumers work from the same stream:
//
//	  - Build turns the events into composition.Composition values.
//	  - Rewrite reproduces the file with proved change counts, first changes
//	    and course ends filled in or checked.
//	  - Strip reduces the file to method titles, descriptions and the
//	    composition text, dropping comment sections marked with "!".
//
// File layout:
//
//	[P=Plain Bob,6]          method declarations, optional label before "="
//	720                      optional change count
//	\t23456                  header: first change and/or first method label
//	-\t23564\t3              rows
//	3 part.                  footnotes
//	                         a blank line ends the composition
//
// The first line after the method list decides the row shape: "$" starts a
// one-line shorthand, a call or single upper-case letter a simple
// composition, a header of lead numbers and S/L/Q/H a lead-count table, and
// anything else a calling-position table.
//
// Complexity:
//
//	Parse is O(L) regular-expression matches for L lines.
//
// Usage:
//
//	events, err := parser.Parse(r, library)
//	if err != nil { ... }
//	for _, e := range parser.Build(events) { ... }
package parser
