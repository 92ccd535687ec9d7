package composition

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/katalvlaran/changering/method"
)

const partList = `([0-9]{1,2}(?:(?:,| and) [0-9]{1,2})*)`

var (
	// "3 part.", "3 parts"
	multiPartPattern = regexp.MustCompile(`^([0-9]+) [Pp]arts?\.?$`)
	// "-* = s in parts 2 and 3 only"
	substitutionPattern = regexp.MustCompile(`^([s\-0-9ETA-Z][*+])\s*=\s*([\-s]+)(?: in parts? ` + partList + `(?: only)?)?.*$`)
	// "- = 16"
	overridePattern = regexp.MustCompile(`^([s\-])\s*=\s*([0-9.]+).*$`)
	// "Omit -* in part 2", "s* in parts 1 and 3 only"
	selectivePattern = regexp.MustCompile(`^(Omit )?([-s0-9]*[*+]?)(?: in parts? ` + partList + `(?: only)?)?.*$`)
	// "a = 2,5,s7"
	referencePattern = regexp.MustCompile(`^([a-rt-z]) ?= ?([0-9,s]+)\.?$`)

	partSeparator = regexp.MustCompile(`( )?(,|and) `)
	decorations   = strings.NewReplacer("*", "", "+", "")
	tableCell     = strings.NewReplacer("(", "", ")", "", "*", "", "+", "")
)

// AddFootnote records a footnote line and applies it when it is a
// directive. Prose footnotes are kept for rendering only.
func (c *Composition) AddFootnote(line string) {
	c.footnotes = append(c.footnotes, line)
	c.touch()

	if m := multiPartPattern.FindStringSubmatch(line); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return
		}
		first := c.parts[0]
		c.parts = make([]map[string]string, n)
		for i := range c.parts {
			c.parts[i] = copyTable(first)
		}

		return
	}

	if m := substitutionPattern.FindStringSubmatch(line); m != nil {
		if m[3] == "" {
			c.global[m[1]] = m[2]
			return
		}
		for _, p := range c.listedParts(m[3]) {
			c.parts[p-1][m[1]] = m[2]
		}

		return
	}

	if m := overridePattern.FindStringSubmatch(line); m != nil {
		call, err := method.ParseCall(m[1])
		if err == nil {
			c.overrides[call] = m[2]
		}

		return
	}

	if m := selectivePattern.FindStringSubmatch(line); m != nil && m[2] != "" {
		omit := m[1] != ""
		pattern, stripped := m[2], decorations.Replace(m[2])
		if m[3] == "" {
			if omit {
				c.global[pattern] = ""
			} else {
				c.global[pattern] = stripped
			}

			return
		}
		listed := map[int]bool{}
		for _, p := range c.listedParts(m[3]) {
			listed[p] = true
		}
		for p := 1; p <= len(c.parts); p++ {
			keep := listed[p] != omit
			if keep {
				c.parts[p-1][pattern] = stripped
			} else {
				c.parts[p-1][pattern] = ""
			}
		}
	}
}

// IsFootnote reports whether line reads as a footnote: a part count, a
// substitution, a call override or a footnote reference, or prose naming
// omissions or parts.
func IsFootnote(line string) bool {
	switch {
	case multiPartPattern.MatchString(line),
		substitutionPattern.MatchString(line),
		overridePattern.MatchString(line),
		referencePattern.MatchString(line):
		return true
	}
	for _, word := range footnoteWords {
		if strings.Contains(line, word) {
			return true
		}
	}

	return false
}

// selectivePattern matches almost anything, so prose is recognised by these.
var footnoteWords = []string{"Omit", "part", "and", "only"}

// listedParts parses "2, 3 and 5" into the part numbers that exist.
func (c *Composition) listedParts(list string) []int {
	var out []int
	for _, s := range partSeparator.Split(strings.TrimSpace(list), -1) {
		p, err := strconv.Atoi(strings.TrimSpace(s))
		if err == nil && p >= 1 && p <= len(c.parts) {
			out = append(out, p)
		}
	}

	return out
}

// resolve returns the call rung for call in part: the part table first,
// then the global table, then the call with its decorations removed.
func (c *Composition) resolve(call string, part int) string {
	if part >= 1 && part <= len(c.parts) {
		if v, ok := c.parts[part-1][call]; ok {
			return v
		}
	}
	if v, ok := c.global[call]; ok {
		return v
	}

	return decorations.Replace(call)
}

// Overrides returns the call overrides set by footnotes such as "- = 16".
func (c *Composition) Overrides() map[method.Call]string {
	out := make(map[method.Call]string, len(c.overrides))
	for k, v := range c.overrides {
		out[k] = v
	}

	return out
}

func copyTable(t map[string]string) map[string]string {
	out := make(map[string]string, len(t))
	for k, v := range t {
		out[k] = v
	}

	return out
}
