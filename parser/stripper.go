package parser

import "strings"

// Strip reduces a parsed file to a tidy listing: method lines become the
// method title and its description, comments lose their "#", and comment
// sections opened and closed by a comment ending in "!" are dropped along
// with everything between them. Table headers and rows are indented by a
// tab so they line up under the simple rows. Blank lines are dropped.
func Strip(events []Event) string {
	var (
		b        strings.Builder
		ignoring bool
		cur      string
	)
	for _, ev := range events {
		src := ev.Source()
		if src.Number == 0 {
			continue
		}

		cur = src.Text
		if isComment(src.Text) {
			if !ignoring {
				cur = strings.TrimLeft(src.Text[1:], " ")
			}
			if strings.HasSuffix(src.Text, "!") {
				ignoring = !ignoring
				cur = ""
			}
		}

		switch e := ev.(type) {
		case MethodFound:
			cur = e.Method.String() + "\n" + e.Method.Description()
		case TableHeader, TableRow:
			cur = "\t" + cur
		}

		if !ignoring && cur != "" {
			b.WriteString(cur)
			b.WriteByte('\n')
		}
	}

	return b.String()
}
