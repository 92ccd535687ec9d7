// Package generator searches for true plain/bob/single compositions of a
// single method by breadth-first enumeration of call strings.
//
// What
//
//   - The work list starts as the allowed calls ("p", "-" and, when the
//     method has a single, "s"). Each round every entry is extended by
//     every call and the candidate is proved as a fresh shorthand
//     composition that never pads with plain leads.
//   - True candidates are numbered and reported; they are not extended.
//   - Candidates that do not end in rounds carry into the next round
//     unless they already exceed the change ceiling (default 5300).
//   - False candidates are dropped: no extension of a false prefix can be
//     true.
//
// Determinism
//
//	Candidates of a round are proved in parallel (errgroup with a worker
//	limit) but their outcomes are collected by index and handled in
//	work-list order, so numbering, hooks and the next work list do not
//	depend on scheduling. The ceiling is counted in changes, so a run is
//	reproducible.
//
// Complexity
//
//   - Each round proves at most |work list|·|calls| candidates, each
//     O(C·N) for C changes and N bells.
//   - The search ends when the work list is empty; every surviving branch
//     grows by one lead per round, so the ceiling bounds the depth.
//
// Usage
//
//	e := generator.NewEmitter(out, generator.Plain, m)
//	if err := e.Begin(); err != nil { ... }
//	res, err := generator.Generate(m,
//	    generator.WithMaxChanges(1000),
//	    generator.WithWorkers(8),
//	    generator.WithLogger(log),
//	    generator.WithOnFound(e.Emit),
//	)
//	if err != nil { ... }
//	_ = e.End()
//
// Errors
//
//   - ErrNilMethod        if the method is nil.
//   - ErrOptionViolation  for invalid options (negative ceiling, unknown call).
//   - ErrUnknownCall      when a candidate uses a call the method lacks.
//   - Context errors and wrapped OnFound errors abort the search.
package generator
