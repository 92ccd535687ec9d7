// Package artifact writes plain-text files describing the methods of a
// library, one file per method named after its file identifier.
//
//   - Description ("<id>.desc.txt"): the upper-cased method title and its
//     lead-end description.
//   - Grid ("<id>.grid.txt"): the plain course, one change per line,
//     starting StartOffset changes into the lead and running until rounds.
//
// Existing files are left alone unless overwriting is requested. Methods
// are rendered in parallel; a failure for one method is collected and the
// rest are still written.
package artifact
