package method

import "fmt"

// Option configures optional Method attributes.
// Invalid values are recorded and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// Options holds the optional attributes of a Method.
type Options struct {
	// StartBell is the bell whose line is traced; 0 derives it from the
	// last token of the plain lead.
	StartBell int

	// StartOffset is the number of changes rung before the first full lead.
	StartOffset int

	// Amendments renames calling positions for this method ("B" -> "W").
	Amendments map[string]string

	err error
}

// DefaultOptions returns options with a derived start bell, no offset and
// no amendments.
func DefaultOptions() Options {
	return Options{Amendments: map[string]string{}}
}

// WithStartBell fixes the traced bell. 0 restores the derived default.
func WithStartBell(bell int) Option {
	return func(o *Options) {
		if bell < 0 {
			o.err = fmt.Errorf("%w: StartBell cannot be negative (%d)", ErrOptionViolation, bell)
			return
		}
		o.StartBell = bell
	}
}

// WithStartOffset sets the number of changes rung before the first lead.
func WithStartOffset(offset int) Option {
	return func(o *Options) {
		if offset < 0 {
			o.err = fmt.Errorf("%w: StartOffset cannot be negative (%d)", ErrOptionViolation, offset)
			return
		}
		o.StartOffset = offset
	}
}

// WithAmendment renames calling position normal to amended.
func WithAmendment(normal, amended string) Option {
	return func(o *Options) {
		if normal == "" {
			o.err = fmt.Errorf("%w: empty calling position", ErrOptionViolation)
			return
		}
		o.Amendments[normal] = amended
	}
}
