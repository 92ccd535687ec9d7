// Package prover proves every composition in a composition file or a
// directory tree of them.
//
// What:
//
//   - ProveFile parses one file against a method library, proves each
//     composition and reports how many came out true. Failures are
//     logged as "Composition #n: <reason>" followed by a
//     "<p> of <t> composition(s) proved." or
//     "All <t> composition(s) proved." summary.
//   - With rewriting enabled the file is replaced by its rewritten form:
//     change counts, first changes and course ends filled in. Mismatches
//     between the file and the proof are logged, not fixed.
//   - With an output directory the stripped listing of the file is
//     written there under the same name, appended to unless overwriting.
//   - Run walks a directory in lexical order and proves every regular
//     file it finds. A file that cannot be parsed is reported and the
//     walk continues; all such failures are returned together.
//
// Usage:
//
//	reports, err := prover.Run("compositions/", methods,
//	    prover.WithRewrite(true),
//	    prover.WithOutputDir("book"),
//	    prover.WithLogger(log),
//	)
package prover
