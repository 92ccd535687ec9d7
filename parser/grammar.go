package parser

import (
	"regexp"
	"strings"
)

const (
	courseEnd  = `\(?[0-9ETA-Z]{3,}\)?`
	methodList = `\(?[A-Z][a-z]?\*?\)?`
	cellEnd    = `(?:\t+|$)`
	callCell   = `\(?(?:[1-9\-sx]|ss)?[*+)]?` + cellEnd
	lastCell   = `\(?(?:[1-9\-sx]|ss)[*+)]?` + cellEnd
)

var (
	// "[P=Plain Bob,6]"
	methodLine = regexp.MustCompile(`^\[(?:((?:[A-Za-z]{1,2})?)=)?([\w\s')(.]+),\s*([0-9]+)\]$`)
	// "5040" or "5040 (3-part)"
	changesLine = regexp.MustCompile(`^([0-9]+)( \([0-9\w\-]+\))?$`)

	// "\t23456\tP"
	simpleHeader = regexp.MustCompile(`^(?:\t(` + courseEnd + `))?\t*((?:` + methodList + `)+)?$`)
	// "-\t23564\t3", "s*\t(35264)\tC"
	simpleRow = regexp.MustCompile(`^([\-s][*+]?)?(?:\t(` + courseEnd + `))?\t*([0-9]{1,2}|(?:` + methodList + `)+)?$`)
	// calls, or a part or footnote reference, then methods, course end,
	// "[n]" and ":A" part labels.
	tableRow = regexp.MustCompile(`^((?:` + callCell + `)+(?:` + lastCell + `)?|[1-9]?[A-Z]` + cellEnd + `|[a-rt-z]` + cellEnd + `)` +
		`(?:((?:` + methodList + `)+)` + cellEnd + `)?` +
		`(?:(` + courseEnd + `)` + cellEnd + `)?` +
		`(?:\[([0-9]+)\](?:\t|$))?` +
		`((?::[A-Z]` + cellEnd + `)*)$`)

	leadCountHeader   = regexp.MustCompile(`^[0-9ETSLQ\t][0-9ETSLQH\t]*$`)
	firstChangeCell   = regexp.MustCompile(`^\(?([0-9ETA-Z]{3,})\)?$`)
	headerLabel       = regexp.MustCompile(`^[A-Za-z]{1,2}\*?$`)
	rowLabel          = regexp.MustCompile(`^[A-Za-z]{1,2}$`)
	digits            = regexp.MustCompile(`^[0-9]+$`)
	partReference     = regexp.MustCompile(`^([1-9])?([A-Z])$`)
	footnoteReference = regexp.MustCompile(`^[a-rt-wyz]$`)

	parens = strings.NewReplacer("(", "", ")", "", "|", "")
)

// splitTabs splits on tabs and drops trailing empty fields.
func splitTabs(s string) []string {
	out := strings.Split(s, "\t")
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}

	return out
}

// courseEndCell splits "(23564)" into "23564" and false.
func courseEndCell(s string) (string, bool) {
	if strings.HasPrefix(s, "(") {
		return strings.Trim(s, "()"), false
	}

	return s, true
}
