// Package library reads method libraries: the pipe-delimited text format
// and the XML collections published for ringers. It can also write a
// library back out in the text format.
//
// What:
//
//   - ReadText parses one method per line:
//     name|type|stage|notation|plainLE[|bobLE[|singleLE[|startBell[|startOffset[|amendments]]]]]
//     Blank lines and lines starting with "#" are skipped.
//   - ReadXML reads <methodSet> elements. The set's properties give the
//     stage and default classification; each <method> gives its name,
//     optional classification and "notation,leadEnd" place notation.
//   - Load picks the reader from the format or the file extension.
//   - WriteText and GroupByStage produce text libraries, one section (or
//     file) per stage.
//
// Problems with individual methods are reported to a Diagnostics sink and
// the method is skipped; only unreadable input and a non-numeric start
// bell stop a read.
//
// Usage:
//
//	var diags library.Collector
//	methods, err := library.Load("methods.txt", library.Auto, &diags)
package library
