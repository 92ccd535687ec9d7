package notation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/katalvlaran/changering/stage"
)

var validNotation = regexp.MustCompile(`^[&+]?[\dETA-ZXx.]+$`)

// Valid reports whether s is syntactically valid place notation.
func Valid(s string) bool { return validNotation.MatchString(s) }

// Parse validates s and expands it into a Notation.
func Parse(s string) (Notation, error) {
	if !Valid(s) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlaceNotation, s)
	}

	symmetric := false
	body := s
	switch s[0] {
	case Symmetric:
		symmetric = true
		body = s[1:]
	case NonSymmetric:
		body = s[1:]
	}

	n := Tokens(body)
	if len(n) == 0 {
		return nil, fmt.Errorf("%w: %q has no place tokens", ErrInvalidPlaceNotation, s)
	}
	if symmetric && len(n) > 1 {
		for i := len(n) - 2; i >= 0; i-- {
			n = append(n, n[i])
		}
	}

	return n, nil
}

// MustParse is like Parse but panics on error. Intended for tests and tables.
func MustParse(s string) Notation {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return n
}

// Tokens splits raw notation (no prefix, no validation) into tokens.
// Runs of labels form one token, 'x' is a cross, anything else separates.
func Tokens(s string) Notation {
	var (
		out Notation
		cur strings.Builder
		in  bool
	)
	flush := func() {
		if in {
			out = append(out, cur.String())
			cur.Reset()
			in = false
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if stage.IsLabel(c) {
			cur.WriteByte(c)
			in = true
			continue
		}
		flush()
		if c == 'x' {
			out = append(out, Cross)
		}
	}
	flush()

	return out
}

// IsCross reports whether token i is an all-change.
func (n Notation) IsCross(i int) bool { return n[i] == Cross }

// Last returns the final token. It panics on an empty Notation.
func (n Notation) Last() string { return n[len(n)-1] }

// Clone returns an independent copy.
func (n Notation) Clone() Notation {
	if n == nil {
		return nil
	}
	out := make(Notation, len(n))
	copy(out, n)

	return out
}

// Concat returns n followed by the tokens of others, leaving n untouched.
func (n Notation) Concat(others ...Notation) Notation {
	size := len(n)
	for _, o := range others {
		size += len(o)
	}
	out := make(Notation, 0, size)
	out = append(out, n...)
	for _, o := range others {
		out = append(out, o...)
	}

	return out
}

// String renders the notation compactly: x for a cross, '.' between
// consecutive place tokens.
func (n Notation) String() string {
	var b strings.Builder
	prevPlace := false
	for _, t := range n {
		if t == Cross {
			b.WriteByte('x')
			prevPlace = false
			continue
		}
		if prevPlace {
			b.WriteByte('.')
		}
		b.WriteString(t)
		prevPlace = true
	}

	return b.String()
}
