// Package stage models the number of bells in a change-ringing method and
// the fixed label alphabet used to write rows.
//
// What:
//
//   - Stage is a closed set of bell counts, Unus (1) through Sixteen (16).
//   - Positions are 1-based. Position p is written with Labels[p-1]:
//     "1234567890ET" followed by "ABCD...".
//   - Rounds is the identity row ("123456" on six bells).
//   - Extent is the number of distinct rows, N!, read from a precomputed table.
//
// Why:
//
//	Every other package in this module speaks in rows (strings over the
//	label alphabet). Keeping label<->position arithmetic in one place means
//	a row is always a plain string and comparisons stay byte-wise.
//
// Complexity:
//
//   - Label and position conversions are O(1) (table lookups).
//   - Rounds is O(N).
//
// Usage:
//
//	st, err := stage.Parse("8")
//	if err != nil { ... }
//	fmt.Println(st, st.Rounds(), st.Extent()) // Major 12345678 40320
package stage
