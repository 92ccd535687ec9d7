package composition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/changering/method"
	"github.com/katalvlaran/changering/stage"
)

func plainBob(t *testing.T) *method.Method {
	t.Helper()
	m, err := method.New("Plain", method.BobMethod, stage.Minor, "&x16x16x16", "12", "14", "1234")
	require.NoError(t, err)

	return m
}

// ---------------------------------------------------------------------------
// Substitution precedence
// ---------------------------------------------------------------------------

func TestResolvePrecedence(t *testing.T) {
	c := New(Shorthand, nil, 0)
	c.AddFootnote("3 part.")
	assert.Equal(t, "-", c.resolve("-*", 2), "undecorated by default")

	c.AddFootnote("-* = --")
	c.AddFootnote("-* = s in part 2")
	assert.Equal(t, "--", c.resolve("-*", 1))
	assert.Equal(t, "s", c.resolve("-*", 2))
	assert.Equal(t, "--", c.resolve("-*", 3))
	assert.Equal(t, "s", c.resolve("s+", 1))
	assert.Equal(t, "-", c.resolve("-", 2))
}

func TestSelectiveFootnotes(t *testing.T) {
	c := New(Shorthand, nil, 0)
	c.AddFootnote("3 part.")
	c.AddFootnote("Omit -* in parts 2 and 3")
	assert.Equal(t, "-", c.resolve("-*", 1))
	assert.Equal(t, "", c.resolve("-*", 2))
	assert.Equal(t, "", c.resolve("-*", 3))

	c.AddFootnote("s* in part 1 only")
	assert.Equal(t, "s", c.resolve("s*", 1))
	assert.Equal(t, "", c.resolve("s*", 2))

	c = New(Shorthand, nil, 0)
	c.AddFootnote("Omit s+")
	assert.Equal(t, "", c.resolve("s+", 1))
}

func TestSubstitutionListedPartsOutOfRange(t *testing.T) {
	c := New(Shorthand, nil, 0)
	c.AddFootnote("-* = s in part 2")
	assert.Equal(t, "-", c.resolve("-*", 1))
	assert.Len(t, c.parts, 1)
}

func TestExpandCalls(t *testing.T) {
	pb := plainBob(t)
	c := New(Shorthand, nil, 0)
	c.SetFirstMethod(pb)
	c.AddCall("-*", 3)
	c.AddMethodChange(nil)
	c.AddCall("", 2)
	c.AddMethodChange(nil)
	c.AddFootnote("2 part.")
	c.AddFootnote("-* = s- in part 2")

	calls, counts, methods, err := c.expandCalls()
	require.NoError(t, err)
	assert.Equal(t, []method.Call{method.Bob, method.Plain, method.Single, method.Bob, method.Plain}, calls)
	assert.Equal(t, []int{3, 2, 3, 1, 2}, counts)
	assert.Len(t, methods, 5)
}

// ---------------------------------------------------------------------------
// Course ends
// ---------------------------------------------------------------------------

func TestSimplifyCourseEndsIsIdempotent(t *testing.T) {
	pb := plainBob(t)
	c := New(Shorthand, nil, 0)
	c.firstChange = "123456"
	c.courseEnds = []CourseEnd{{"142356", true}, {"134256", true}, {"123456", true}}

	c.simplifyCourseEnds(pb)
	first := c.firstChange
	ends := c.CourseEnds()
	assert.Equal(t, "23456", first)
	assert.Equal(t, "42356", ends[0].Row)

	c.simplifyCourseEnds(pb)
	assert.Equal(t, first, c.firstChange)
	assert.Equal(t, ends, c.CourseEnds())
}

func TestSimplifyTrimsFixedTail(t *testing.T) {
	m, err := method.New("Plain", method.BobMethod, stage.Major, "&x18x18x18x18", "12", "14", "")
	require.NoError(t, err)

	c := New(Shorthand, nil, 0)
	c.firstChange = "12345678"
	c.courseEnds = []CourseEnd{{"13526478", true}, {"12345678", true}}
	c.simplifyCourseEnds(m)
	assert.Equal(t, "23456", c.firstChange)
	assert.Equal(t, "35264", c.courseEnds[0].Row)

	c.simplifyCourseEnds(m)
	assert.Equal(t, "23456", c.firstChange)
	assert.Equal(t, "35264", c.courseEnds[0].Row)
}

func TestPadCourseEnd(t *testing.T) {
	assert.Equal(t, "123456", padCourseEnd("23456", 6))
	assert.Equal(t, "13526478", padCourseEnd("352647", 8))
	assert.Equal(t, "123456", padCourseEnd("123456", 6))
}

// ---------------------------------------------------------------------------
// Lead-count headers
// ---------------------------------------------------------------------------

func TestTwinBobLeadNumbers(t *testing.T) {
	c := New(LeadCounts, nil, 0)
	c.SetHeaders([]string{"s", "H", "5"})
	require.True(t, c.twinBob)

	rows := []Row{NewCallsRow([]string{"-", "", "-"})}
	leads, rows, err := c.leadNumbers(c.headers, rows)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4, 5, 6, 9}, leads)
	assert.Equal(t, []string{"-", "-", "", "", "-"}, rows[0].Calls)

	c.SetHeaders([]string{"S", "9"})
	_, _, err = c.leadNumbers(c.headers, nil)
	require.ErrorIs(t, err, ErrDefinition)
}
