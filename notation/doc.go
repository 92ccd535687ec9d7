// Package notation parses and represents change-ringing place notation.
//
// A Notation is an ordered list of place tokens. Each token either lists the
// positions that stay put ("14", "1.6" style runs of labels) or is a cross,
// in which every adjacent pair swaps. A cross is stored as the empty string.
//
// Syntax accepted by Parse:
//
//	[&|+]<tokens>
//
//	&   symmetric: the tokens are mirrored, the middle token is not repeated
//	+   explicitly non-symmetric (the default)
//	x   a cross
//	.   separates two consecutive place tokens
//
// Examples:
//
//	Parse("&x16x16x16") // x 16 x 16 x 16 x 16 x 16 x
//	Parse("+5.1.5.1.5") // 5 1 5 1 5
//
// Only a lower-case x is a cross; upper-case letters are bell labels.
package notation
