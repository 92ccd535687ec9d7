// Package grid is the permutation engine: it replays place notation against
// a seed row and checks the resulting sequence of rows for truth.
//
// What:
//
//   - A Grid is an ordered list of rows on one stage. Row 0 is the seed;
//     every later row is produced by exactly one Cross step from its
//     predecessor.
//   - Each row carries two flags: lead-end (the last token of a lead was
//     applied) and label (the row starts a fresh repetition of the notation).
//   - Cross is the fundamental change: positions listed in the place token
//     stay put, all others swap in adjacent pairs.
//   - IsTrue reports whether the grid returns to its seed and no row appears
//     more often than the number of extents it spans permits.
//
// Truth failures are returned as *FalseError, which matches ErrFalse and
// the concrete kind (ErrDoesNotEndInRounds, ErrRepeatedChange) via errors.Is.
//
// Complexity:
//
//   - Cross: O(N) for N bells.
//   - Apply: O(T·N) for T tokens.
//   - IsTrue: O(R log R · N) for R rows (sort dominated).
package grid
