package parser_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/changering/method"
	"github.com/katalvlaran/changering/parser"
	"github.com/katalvlaran/changering/stage"
)

func library(t *testing.T) []*method.Method {
	t.Helper()
	pb, err := method.New("Plain Bob", method.BobMethod, stage.Minor, "&x16x16x16", "12", "14", "1234")
	require.NoError(t, err)
	sc, err := method.New("St Clement's", method.BobMethod, stage.Minor, "&x36x36x36", "12", "14", "")
	require.NoError(t, err)
	cam, err := method.New("Cambridge", method.Surprise, stage.Minor, "&x3x4x2x3x4x5", "2", "4", "234")
	require.NoError(t, err)

	return []*method.Method{pb, sc, cam}
}

func kinds(events []parser.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = fmt.Sprintf("%T", e)
	}

	return out
}

// ---------------------------------------------------------------------------
// State machine
// ---------------------------------------------------------------------------

func TestParseSimple(t *testing.T) {
	events, err := parser.ParseString("[Plain Bob,6]\n\n-\n-\t23645\n-\n", library(t))
	require.NoError(t, err)

	want := []string{
		"parser.MethodFound", "parser.Passthrough", "parser.Started",
		"parser.SimpleRow", "parser.SimpleRow", "parser.SimpleRow", "parser.Finished",
	}
	assert.Equal(t, want, kinds(events))

	started := events[2].(parser.Started)
	assert.Equal(t, parser.Simple, started.Form)
	assert.Zero(t, started.Source().Number)

	row := events[4].(parser.SimpleRow)
	assert.Equal(t, 4, row.Number)
	assert.Equal(t, 1, row.Row)
	assert.Equal(t, "-", row.Call)
	assert.Equal(t, "23645", row.CourseEnd)
	assert.True(t, row.Complete)
	assert.Equal(t, 1, row.Count)
	assert.Equal(t, "Plain Bob", row.Method.Name())
}

func TestParseMethodLines(t *testing.T) {
	lib := library(t)
	events, err := parser.ParseString("[P=Plain Bob,6]\n[Cm=Cambridge Surprise, 6]\n[St Clement's,6]\n", lib)
	require.NoError(t, err)
	require.Len(t, events, 3)

	for i, want := range []struct {
		label string
		m     *method.Method
	}{{"P", lib[0]}, {"Cm", lib[2]}, {"", lib[1]}} {
		got := events[i].(parser.MethodFound)
		assert.Equal(t, want.label, got.Label)
		assert.Same(t, want.m, got.Method)
	}

	// Surprise is displayed, so the type must be written.
	_, err = parser.ParseString("[Cambridge,6]\n", lib)
	require.ErrorIs(t, err, parser.ErrUnknownMethod)
}

func TestParseHeaders(t *testing.T) {
	cases := []struct {
		name  string
		input string
		form  parser.Form
	}{
		{"simple call", "-\n", parser.Simple},
		{"simple tab", "\t23456\n-\n", parser.Simple},
		{"simple label", "P\n-\n", parser.Simple},
		{"calling positions", "W\tM\tH\n-\t-\t-\n", parser.CallingPositionTable},
		{"lead counts", "5\tS\tH\n-\n", parser.LeadCountTable},
		{"shorthand", "$pp-pp-\n", parser.ShortHand},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			events, err := parser.ParseString("[P=Plain Bob,6]\n"+tc.input, library(t))
			require.NoError(t, err)
			started, ok := events[1].(parser.Started)
			require.True(t, ok)
			assert.Equal(t, tc.form, started.Form)
		})
	}
}

func TestParseSimpleHeader(t *testing.T) {
	events, err := parser.ParseString("[P=Plain Bob,6]\n[C=St Clement's,6]\n\t(123456)\tC*\n-\n", library(t))
	require.NoError(t, err)

	h := events[3].(parser.SimpleHeader)
	assert.Equal(t, "123456", h.FirstChange)
	assert.Equal(t, "St Clement's", h.Method.Name())
}

func TestParseTable(t *testing.T) {
	input := "[P=Plain Bob,6]\n" +
		"240\n" +
		"W\tM\tH\t(23456)\n" +
		"-\t\ts\t23564\t:A\n" +
		"2A\t\t\t23456\n" +
		"a\t[4]\n" +
		"-\tPP(P)\t(34256)\n" +
		"2 part.\n"
	events, err := parser.ParseString(input, library(t))
	require.NoError(t, err)

	want := []string{
		"parser.MethodFound", "parser.ChangesFound", "parser.Started", "parser.TableHeader",
		"parser.TableRow", "parser.TableRow", "parser.TableRow", "parser.TableRow",
		"parser.Footnote", "parser.Finished",
	}
	require.Equal(t, want, kinds(events))

	assert.Equal(t, 240, events[2].(parser.Started).Changes)
	h := events[3].(parser.TableHeader)
	assert.Equal(t, []string{"W", "M", "H"}, h.Headers)
	assert.Equal(t, "23456", h.FirstChange)

	ignore := cmpopts.IgnoreFields(parser.TableRow{}, "Methods", "Line")
	rows := []parser.TableRow{
		{Row: 0, Calls: []string{"-", "", "s"}, CourseEnd: "23564", Complete: true, PartLabels: []string{"A"}, NumLeads: -1},
		{Row: 1, Ref: "2A", Part: "A", Repetitions: 2, CourseEnd: "23456", Complete: true, NumLeads: -1},
		{Row: 2, Ref: "a", Footnote: "a", Complete: true, NumLeads: 4},
		{Row: 3, Calls: []string{"-", "", ""}, Labels: []string{"P", "P", "P"}, CourseEnd: "34256", NumLeads: -1},
	}
	for i, want := range rows {
		got := events[4+i].(parser.TableRow)
		if diff := cmp.Diff(want, got, ignore); diff != "" {
			t.Errorf("row %d mismatch (-want +got):\n%s", i, diff)
		}
		assert.NotEmpty(t, got.Methods)
	}
	assert.Equal(t, "2 part.", events[8].Source().Text)
}

func TestParseShorthand(t *testing.T) {
	events, err := parser.ParseString("[Plain Bob,6]\n$pp-pp-\n3 part.\n\n$W M H\n", library(t))
	require.NoError(t, err)

	want := []string{
		"parser.MethodFound",
		"parser.Started", "parser.ShorthandRow", "parser.Footnote", "parser.Finished",
		"parser.Started", "parser.ShorthandRow", "parser.Finished",
	}
	require.Equal(t, want, kinds(events))
	assert.Equal(t, "pp-pp-", events[2].(parser.ShorthandRow).Text)
	assert.Equal(t, "W M H", events[6].(parser.ShorthandRow).Text)
}

func TestParseComments(t *testing.T) {
	input := "# methods\n[Plain Bob,6]\n# header\n-\n# between rows\n-\n-\n# notes\n3 part.\n"
	events, err := parser.ParseString(input, library(t))
	require.NoError(t, err)

	var comments []int
	for _, e := range events {
		if p, ok := e.(parser.Passthrough); ok {
			comments = append(comments, p.Number)
		}
	}
	assert.Equal(t, []int{1, 3, 5, 8}, comments)
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  error
		line  int
	}{
		{"unknown method", "[Grandsire,6]\n", parser.ErrUnknownMethod, 1},
		{"unknown stage", "[Plain Bob,20]\n", parser.ErrUnknownMethod, 1},
		{"no methods", "-\n-\n", parser.ErrNoMethods, 1},
		{"blank after changes", "[Plain Bob,6]\n36\n\n", parser.ErrBlankLine, 3},
		{"no rows", "[Plain Bob,6]\nW\tM\tH\n\n", parser.ErrNoRows, 3},
		{"bad footnote", "[Plain Bob,6]\n-\nnonsense\n", parser.ErrFootnote, 3},
		{"undefined row label", "[P=Plain Bob,6]\n-\t\tC\n", parser.ErrUndefinedLabel, 2},
		{"undefined header label", "[P=Plain Bob,6]\n\tC\n-\n", parser.ErrUndefinedLabel, 2},
		{"undefined table label", "[P=Plain Bob,6]\nW\tM\tH\n-\tPC\n", parser.ErrUndefinedLabel, 3},
		{"bad lead count", "[P=Plain Bob,6]\n-\t\t(P)(C)\n", parser.ErrLeadCount, 2},
		{"too many calls", "[Plain Bob,6]\nW\tH\n-\t-\n-\t-\t-\n", parser.ErrCalls, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parser.ParseString(tc.input, library(t))
			require.ErrorIs(t, err, tc.want)

			var perr *parser.Error
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tc.line, perr.Line)
			assert.Contains(t, err.Error(), fmt.Sprintf("line %d: ", tc.line))
		})
	}
}
