// Package composition holds a ringing composition: a first method, an
// optional first change, and rows of calls in one of three shapes. Proving a
// composition rings it into a grid.Grid, records the course ends and checks
// the result for truth.
//
// What:
//
//   - Shorthand: each row is a call and a number of leads ("-", 3). The
//     compact form "pp-pps" is accepted by AddRows.
//   - CallingPositions: table columns are calling positions (W, M, H, B,
//     I, O, or a bell label). A call is placed on the first lead where the
//     tracked bell reaches that position.
//   - LeadCounts: table columns are lead numbers (or S/H/L/Q twin-bob
//     headings). A call is placed on that lead of the course.
//   - Footnotes drive multi-part repetition ("3 part."), call
//     substitution ("-* = s in part 2"), selective omission, call
//     overrides ("- = 16") and footnote row references ("a = 2,5,s7").
//
// Why:
//
//	A composition file is written for ringers, not machines. The model keeps
//	the rows exactly as written so they can be rendered back unchanged, and
//	performs every expansion (parts, references, numeric cells, multi-call
//	cells) on copies at proof time.
//
// Complexity:
//
//   - Prove is O(R·L·N) for R rows, L leads per row and N bells, plus the
//     O(C·N) truth check over C changes.
//   - IsTrue memoises the last proof until the composition is mutated.
//
// Usage:
//
//	c := composition.New(composition.Shorthand, map[string]*method.Method{"": pb}, 0)
//	c.SetFirstMethod(pb)
//	if err := c.AddRows("---"); err != nil { ... }
//	if err := c.IsTrue(); err != nil { ... }
//	fmt.Print(c)
package composition
