package composition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/changering/composition"
	"github.com/katalvlaran/changering/grid"
	"github.com/katalvlaran/changering/method"
	"github.com/katalvlaran/changering/stage"
)

func plainBobMinor(t *testing.T, opts ...method.Option) *method.Method {
	t.Helper()
	m, err := method.New("Plain", method.BobMethod, stage.Minor, "&x16x16x16", "12", "14", "1234", opts...)
	require.NoError(t, err)

	return m
}

func shorthand(t *testing.T, m *method.Method, rows string, footnotes ...string) *composition.Composition {
	t.Helper()
	c := composition.New(composition.Shorthand, map[string]*method.Method{"": m}, 0)
	c.SetFirstMethod(m)
	require.NoError(t, c.AddRows(rows))
	for _, f := range footnotes {
		c.AddFootnote(f)
	}

	return c
}

// courseEnds builds the expected course ends; "(x)" is incomplete.
func courseEnds(ces ...string) []composition.CourseEnd {
	out := make([]composition.CourseEnd, len(ces))
	for i, ce := range ces {
		complete := true
		if ce[0] == '(' {
			ce, complete = ce[1:len(ce)-1], false
		}
		out[i] = composition.CourseEnd{Row: ce, Complete: complete}
	}

	return out
}

// ---------------------------------------------------------------------------
// Shorthand rows
// ---------------------------------------------------------------------------

func TestAddRows(t *testing.T) {
	c := shorthand(t, plainBobMinor(t), "pp-ps-ppp")
	assert.Equal(t, []string{"-", "s", "-", ""}, c.Calls())
	assert.Equal(t, []int{3, 2, 1, 3}, c.Counts())
	assert.Equal(t, 4, c.NumRows())
	assert.False(t, c.IsSpliced())
}

func TestProveShorthand(t *testing.T) {
	cases := []struct {
		rows    string
		changes int
		ends    []composition.CourseEnd
	}{
		{"---", 36, courseEnds("23564", "23645", "23456")},
		{"pp-pp-", 72, courseEnds("56423", "23456")},
		{"pppp-pppp-pppp-", 180, courseEnds("42356", "34256", "23456")},
		// Plain leads are added until rounds.
		{"pppp", 60, courseEnds("42635", "23456")},
		// Rows after rounds are dropped and the last course end is incomplete.
		{"-----", 36, courseEnds("23564", "23645", "23456", "23564", "(23645)")},
	}
	for _, tc := range cases {
		t.Run(tc.rows, func(t *testing.T) {
			c := shorthand(t, plainBobMinor(t), tc.rows)
			g, err := c.Prove()
			require.NoError(t, err)
			assert.Equal(t, tc.changes, g.Len()-1)
			assert.Equal(t, tc.changes, c.Changes())
			assert.Equal(t, "23456", c.FirstChange())
			assert.Equal(t, tc.ends, c.CourseEnds())
			assert.NoError(t, c.IsTrue())
		})
	}
}

func TestProveShorthandFalse(t *testing.T) {
	c := shorthand(t, plainBobMinor(t), "pp-")
	c.SetPadPlainLeads(false)
	err := c.IsTrue()
	require.ErrorIs(t, err, grid.ErrDoesNotEndInRounds)
	assert.True(t, composition.IsFalse(err))
	assert.EqualError(t, err, "Does not end in rounds. (Last change 156423.)")
	assert.Equal(t, 36, c.Changes())

	c = shorthand(t, plainBobMinor(t), "pppppppppp")
	err = c.IsTrue()
	require.ErrorIs(t, err, grid.ErrRepeatedChange)
	assert.Equal(t, 120, c.Changes())
}

func TestPaddingThatNeverComesRound(t *testing.T) {
	// One bob leaves the plain course; six plain leads never reach rounds.
	c := shorthand(t, plainBobMinor(t), "-")
	err := c.IsTrue()
	require.ErrorIs(t, err, grid.ErrDoesNotEndInRounds)
	assert.Equal(t, 84, c.Changes())
}

func TestProveWithoutPadding(t *testing.T) {
	c := shorthand(t, plainBobMinor(t), "pp-pp-")
	c.SetPadPlainLeads(false)
	require.NoError(t, c.IsTrue())
	assert.Equal(t, 72, c.Changes())
}

func TestUndefinedCall(t *testing.T) {
	m, err := method.New("Plain", method.BobMethod, stage.Minor, "&x16x16x16", "12", "14", "")
	require.NoError(t, err)

	c := shorthand(t, m, "pp-ps")
	_, err = c.Prove()
	require.ErrorIs(t, err, composition.ErrDefinition)
	assert.EqualError(t, err, "Call is undefined: s")
	assert.False(t, composition.IsFalse(err))

	c = shorthand(t, m, "pp?")
	require.ErrorIs(t, c.IsTrue(), composition.ErrDefinition)
}

func TestNoMethod(t *testing.T) {
	c := composition.New(composition.Shorthand, nil, 0)
	require.NoError(t, c.AddRows("---"))
	_, err := c.Prove()
	require.ErrorIs(t, err, composition.ErrNoMethod)
}

func TestTruthIsMemoised(t *testing.T) {
	c := shorthand(t, plainBobMinor(t), "---")
	require.NoError(t, c.IsTrue())
	require.NoError(t, c.IsTrue())
	assert.Len(t, c.CourseEnds(), 3)

	c.AddCall("-", 1)
	c.AddMethodChange(nil)
	require.NoError(t, c.IsTrue())
	assert.Len(t, c.CourseEnds(), 4)
}

func TestSetChangesClearsTruth(t *testing.T) {
	c := shorthand(t, plainBobMinor(t), "---")
	require.NoError(t, c.IsTrue())

	c.SetChanges(0)
	assert.Equal(t, 0, c.Changes())
	require.NoError(t, c.IsTrue())
	assert.Equal(t, 36, c.Changes())
}

// ---------------------------------------------------------------------------
// Footnotes
// ---------------------------------------------------------------------------

func TestMultiPart(t *testing.T) {
	c := shorthand(t, plainBobMinor(t), "pppp-", "3 part.")
	assert.Equal(t, 3, c.NumParts())
	require.NoError(t, c.IsTrue())
	assert.Equal(t, 180, c.Changes())
	assert.Equal(t, courseEnds("42356"), c.CourseEnds())

	for _, note := range []string{"3 parts.", "3 Parts", "3 Part"} {
		c := shorthand(t, plainBobMinor(t), "pppp-", note)
		assert.Equal(t, 3, c.NumParts(), note)
		require.NoError(t, c.IsTrue(), note)
		assert.Equal(t, 180, c.Changes(), note)
	}
}

func TestCallOverride(t *testing.T) {
	c := shorthand(t, plainBobMinor(t), "---", "- = 14")
	assert.Equal(t, map[method.Call]string{method.Bob: "14"}, c.Overrides())
	require.NoError(t, c.IsTrue())
	assert.Equal(t, 36, c.Changes())

	c = shorthand(t, plainBobMinor(t), "---", "- = 1234")
	require.Error(t, c.IsTrue())
}

func TestSubstitutionSplitsRows(t *testing.T) {
	// Each "-*" becomes "--": pp-- pp-- rings like pp-p-pp-p-.
	c := composition.New(composition.Shorthand, nil, 0)
	c.SetFirstMethod(plainBobMinor(t))
	c.AddCall("-*", 3)
	c.AddMethodChange(nil)
	c.AddFootnote("-* = --")
	_, err := c.Prove()
	require.ErrorIs(t, err, grid.ErrFalse)

	d := shorthand(t, plainBobMinor(t), "pp--")
	_, want := d.Prove()
	assert.Equal(t, want.Error(), err.Error())
}

func TestIsFootnote(t *testing.T) {
	for _, line := range []string{
		"3 part.", "-* = s in parts 2 and 3 only", "- = 16", "a = 2,5,s7",
		"Omit -* in part 2", "s* in parts 1 and 3 only",
	} {
		assert.True(t, composition.IsFootnote(line), line)
	}
	for _, line := range []string{"nonsense", "23456", "W M H"} {
		assert.False(t, composition.IsFootnote(line), line)
	}
}

// ---------------------------------------------------------------------------
// Course ends and rendering
// ---------------------------------------------------------------------------

func TestCourseEndMatching(t *testing.T) {
	assert.True(t, composition.IsValidCourseEnd("23456"))
	assert.True(t, composition.IsValidCourseEnd("156342"))
	assert.True(t, composition.IsValidCourseEnd("90ET"))
	assert.False(t, composition.IsValidCourseEnd("2346"))
	assert.False(t, composition.IsValidCourseEnd("2245"))
	assert.False(t, composition.IsValidCourseEnd("23x"))
	assert.False(t, composition.IsValidCourseEnd(""))

	assert.True(t, composition.DoCourseEndsMatch("23456", "23456"))
	assert.True(t, composition.DoCourseEndsMatch("2345", "23456"))
	assert.True(t, composition.DoCourseEndsMatch("234567", "23456"))
	assert.False(t, composition.DoCourseEndsMatch("24356", "23456"))
	assert.False(t, composition.DoCourseEndsMatch("2235", "2235"))
}

func TestString(t *testing.T) {
	c := shorthand(t, plainBobMinor(t), "---", "Bob course.")
	want := "\t\n-\t1\n-\t1\n-\t1\nBob course.\n"
	assert.Equal(t, want, c.String())

	require.NoError(t, c.IsTrue())
	want = "36\n\t23456\t\n-\t23564\t1\n-\t23645\t1\n-\t23456\t1\nBob course.\n"
	assert.Equal(t, want, c.String())
}

func TestSplicedRendering(t *testing.T) {
	pb := plainBobMinor(t)
	sc, err := method.New("St Clement's", method.BobMethod, stage.Minor, "&x36x36x36", "12", "14", "")
	require.NoError(t, err)

	c := composition.New(composition.Shorthand, map[string]*method.Method{"P": pb, "C": sc}, 0)
	c.SetFirstMethod(pb)
	c.AddCall("-", 1)
	c.AddMethodChange(sc)
	c.AddCall("-", 2)
	c.AddMethodChange(pb)
	assert.True(t, c.IsSpliced())
	assert.Equal(t, "C", c.MethodLabel(sc))
	assert.Equal(t, "?", c.MethodLabel(plainBobMinor(t)))
	assert.Equal(t, "\tP\n-\tC\n-\tP\n", c.String())
}
