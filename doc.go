// Package changering proves, completes and generates change-ringing
// compositions.
//
// What is in here?
//
//	A pure-Go toolkit for the arithmetic of method ringing:
//		• Permutation engine: rows, place notation, truth checks
//		• Methods: lead notations for plain, bob and single leads
//		• Compositions: shorthand, lead-count and calling-position tables,
//		  footnotes, parts, splicing
//		• Composition files: parse, prove, rewrite and strip
//		• Search: breadth-first generation of true touches
//
// Packages, bottom up:
//
//	stage/       - number of bells, bell labels, rounds, extent
//	notation/    - place-notation parsing and symmetric expansion
//	grid/        - the growing block of rows and its truth
//	method/      - methods, call types, lead notations, descriptions
//	composition/ - the three composition shapes and proving
//	parser/      - composition-file events, builder, rewriter, stripper
//	generator/   - parallel breadth-first touch search
//	library/     - text and XML method libraries
//	artifact/    - description and plain-course files per method
//	prover/      - batch proving over files and directories
//
// Three bobs at Home in Plain Bob Minor:
//
//	[Plain Bob,6]
//	36
//		23456
//	-	23564	1
//	-	23645	1
//	-	23456	1
//
// The ringer command (cmd/ringer) puts all of it behind a CLI.
//
//	go install github.com/katalvlaran/changering/cmd/ringer@latest
package changering
