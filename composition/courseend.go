package composition

import (
	"sort"
	"strings"

	"github.com/katalvlaran/changering/method"
	"github.com/katalvlaran/changering/stage"
)

// simplifyCourseEnds pads the first change and every course end to a common
// width, then trims the leading hunt bell and the trailing positions that
// never move, keeping at least five bells (or the whole row on small
// stages).
func (c *Composition) simplifyCourseEnds(m *method.Method) {
	all := make([]string, 0, len(c.courseEnds)+1)
	all = append(all, c.firstChange)
	for _, ce := range c.courseEnds {
		all = append(all, ce.Row)
	}

	width := m.Stage().Bells()
	for _, s := range all {
		width = max(width, len(s))
	}
	for i, s := range all {
		all[i] = padCourseEnd(s, width)
	}

	fixed := make([]bool, width)
	for j := range fixed {
		fixed[j] = true
	}
	for i := 0; i+1 < len(all); i++ {
		for j := 0; j < width; j++ {
			if !fixed[j] {
				continue
			}
			if j >= len(all[i]) || j >= len(all[i+1]) || all[i][j] != all[i+1][j] {
				fixed[j] = false
			}
		}
	}

	bells := m.Stage().Bells()
	principle := m.Type() == method.Principle
	minLen, start := bells-1, 1
	switch {
	case bells > int(stage.Doubles):
		minLen = 5
	case principle:
		minLen = bells
	}
	if principle {
		start = 0
	}
	end := width - 1
	for end-start >= minLen && fixed[end] {
		end--
	}

	trim := func(s string) string {
		if start >= len(s) {
			return ""
		}
		return s[start:min(end+1, len(s))]
	}
	c.firstChange = trim(all[0])
	for i := range c.courseEnds {
		c.courseEnds[i].Row = trim(all[i+1])
	}
}

// padCourseEnd restores the labels a simplified course end leaves out:
// missing labels below the first one present go in front, the rest behind.
func padCourseEnd(s string, width int) string {
	if len(s) >= width {
		return s
	}
	var prefix, suffix strings.Builder
	inPrefix := true
	for p := 1; p <= width; p++ {
		l := stage.LabelAt(p)
		present := strings.IndexByte(s, l) >= 0
		switch {
		case inPrefix && !present:
			prefix.WriteByte(l)
		case inPrefix:
			inPrefix = false
		case !present:
			suffix.WriteByte(l)
		}
	}

	return prefix.String() + s + suffix.String()
}

// DoCourseEndsMatch reports whether two course ends, possibly written to
// different lengths, name the same valid row. The shorter one is extended
// with the tail of the longer.
func DoCourseEndsMatch(a, b string) bool {
	switch {
	case len(b) > len(a):
		a += b[len(a):]
	case len(a) > len(b):
		b += a[len(b):]
	}

	return a == b && IsValidCourseEnd(a)
}

// IsValidCourseEnd reports whether s is made of distinct labels forming a
// consecutive run of positions, such as "23456" or "156342".
func IsValidCourseEnd(s string) bool {
	if s == "" {
		return false
	}
	pos := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		pos[i] = stage.PositionOf(s[i])
		if pos[i] == 0 {
			return false
		}
	}
	sort.Ints(pos)
	for i := 0; i+1 < len(pos); i++ {
		if pos[i]+1 != pos[i+1] {
			return false
		}
	}

	return true
}
