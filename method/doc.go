// Package method describes change-ringing methods and the calls that can be
// made at their lead ends.
//
// A Method is identified by name, stage and Type. Its place notation may be
// split into several comma-separated segments (optionally labelled, as in
// "a=&x3x4,b=&x5x6"), each paired with plain, bob and single lead-end
// notation. The full lead notation for every call and segment is built once
// in New: the segment's notation with the lead-end tokens laid over its tail.
//
// Call is the closed set of lead types (plain, bob, twin bob, single) and
// Type the closed set of method classes (Surprise, Delight, Bob, ...).
//
// Methods are immutable after construction and safe to share between
// goroutines.
package method
