package method_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/changering/method"
	"github.com/katalvlaran/changering/notation"
	"github.com/katalvlaran/changering/stage"
)

func plainBobMinor(t *testing.T, opts ...method.Option) *method.Method {
	t.Helper()
	m, err := method.New("Plain", method.BobMethod, stage.Minor, "&x16x16x16", "12", "14", "1234", opts...)
	require.NoError(t, err)

	return m
}

// ---------------------------------------------------------------------------
// Call and Type
// ---------------------------------------------------------------------------

func TestParseCall(t *testing.T) {
	for code, want := range map[string]method.Call{
		"": method.Plain, "p": method.Plain, "-": method.Bob, "x": method.TwinBob, "s": method.Single,
	} {
		got, err := method.ParseCall(code)
		require.NoError(t, err, code)
		assert.Equal(t, want, got, code)
	}
	_, err := method.ParseCall("q")
	require.ErrorIs(t, err, method.ErrUnknownCall)
	assert.Equal(t, "-", method.Bob.String())
	assert.Equal(t, "", method.Plain.String())
}

func TestParseType(t *testing.T) {
	cases := map[string]method.Type{
		"S": method.Surprise, "SC": method.SlowCourse, "TP": method.TreblePlace, "T": method.TrebleBob,
		"LS": method.LittleSurprise, "LA": method.LittleAlliance, "L": method.Place, "A": method.Alliance,
		"D": method.Delight, "H": method.Hybrid, "I": method.Differential, "O": method.Principle,
		"P": method.BobMethod, "Surprise": method.Surprise,
	}
	for code, want := range cases {
		got, err := method.ParseType(code)
		require.NoError(t, err, code)
		assert.Equal(t, want, got, code)
	}
	for _, bad := range []string{"", "Z", "x"} {
		_, err := method.ParseType(bad)
		require.ErrorIs(t, err, method.ErrUnknownType, bad)
	}
}

func TestTypeAttributes(t *testing.T) {
	assert.Equal(t, "Treble Bob", method.TrebleBob.String())
	assert.Equal(t, "TP", method.TreblePlace.Code())
	assert.False(t, method.Principle.Displayed())
	assert.False(t, method.BobMethod.Displayed())
	assert.True(t, method.Surprise.Displayed())

	typ, ok := method.TypeByName("little surprise")
	assert.True(t, ok)
	assert.Equal(t, method.LittleSurprise, typ)
	_, ok = method.TypeByName("Nonsense")
	assert.False(t, ok)
}

// ---------------------------------------------------------------------------
// Construction and lead notation
// ---------------------------------------------------------------------------

func TestLeadNotation(t *testing.T) {
	m := plainBobMinor(t)

	plain := m.LeadNotation(method.Plain, 0)
	require.Len(t, plain, 12)
	assert.Equal(t, "x16x16x16x16x16x12", plain.String())
	assert.Equal(t, "x16x16x16x16x16x14", m.LeadNotation(method.Bob, 0).String())
	assert.Equal(t, m.LeadNotation(method.Bob, 0), m.LeadNotation(method.TwinBob, 0))
	assert.Equal(t, "x16x16x16x16x16x1234", m.LeadNotation(method.Single, 0).String())
	assert.Nil(t, m.LeadNotation(method.Plain, 1))
	assert.True(t, m.HasCall(method.Single))
}

func TestLeadEndOverlay(t *testing.T) {
	m, err := method.New("Test", method.BobMethod, stage.Minor, "&x16x16x16", "3.12", "", "")
	require.NoError(t, err)
	n := m.LeadNotation(method.Plain, 0)
	assert.Equal(t, notation.Notation{"", "16", "", "16", "", "16", "", "16", "", "16", "3", "12"}, n)
	assert.Nil(t, m.LeadNotation(method.Bob, 0))
	assert.False(t, m.HasCall(method.Bob))
	assert.False(t, m.HasCall(method.Single))

	custom, err := m.CreateLeadNotation("16")
	require.NoError(t, err)
	assert.Equal(t, "x16x16x16x16x16x16", custom.String())
}

func TestNewErrors(t *testing.T) {
	_, err := method.New("Bad", method.BobMethod, stage.Minor, "&x1-6", "12", "", "")
	require.ErrorIs(t, err, method.ErrInvalidPlaceNotation)

	_, err = method.New("Bad", method.BobMethod, stage.Minor, "&x16,&x16", "12,12", "14", "")
	require.ErrorIs(t, err, method.ErrSegmentMismatch)

	_, err = method.New("Bad", method.BobMethod, stage.Minor, "&x16,&x16", "12", "", "")
	require.ErrorIs(t, err, method.ErrSegmentMismatch)

	_, err = method.New("Bad", method.BobMethod, stage.Minor, "x", "1.2.3", "", "")
	require.ErrorIs(t, err, method.ErrInvalidPlaceNotation)

	_, err = method.New("Bad", method.BobMethod, stage.Stage(0), "x", "12", "", "")
	require.ErrorIs(t, err, stage.ErrInvalidStage)

	_, err = method.New("Bad", method.BobMethod, stage.Minor, "&x16x16x16", "12", "", "", method.WithStartOffset(-1))
	require.ErrorIs(t, err, method.ErrOptionViolation)
}

func TestSegments(t *testing.T) {
	m, err := method.New("Spliced", method.Surprise, stage.Minor, "a=&x16x16x16,b=&x14x16x16", "12,12", "14,14", "")
	require.NoError(t, err)
	require.Equal(t, 2, m.NumSegments())
	segs := m.Segments()
	assert.Equal(t, "a", segs[0].Label)
	assert.Equal(t, "&x16x16x16", segs[0].PlaceNotation)
	assert.Equal(t, "b", segs[1].Label)
	assert.Equal(t, "14", segs[1].BobLeadEnd)
	assert.Equal(t, "", segs[1].SingleLeadEnd)
	assert.NotNil(t, m.LeadNotation(method.Bob, 1))
}

// ---------------------------------------------------------------------------
// Attributes
// ---------------------------------------------------------------------------

func TestStartBell(t *testing.T) {
	assert.Equal(t, 2, plainBobMinor(t).StartBell())
	assert.Equal(t, 4, plainBobMinor(t, method.WithStartBell(4)).StartBell())

	m, err := method.New("Stedman", method.Principle, stage.Triples, "+3.1.7.3.1.3", "1", "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, m.StartBell())

	m, err = method.New("Crossed", method.BobMethod, stage.Minor, "&x16x16x16", "x", "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, m.StartBell())
}

func TestNamesAndOrdering(t *testing.T) {
	pb := plainBobMinor(t)
	assert.Equal(t, "Plain Minor", pb.String())
	assert.Equal(t, "6_P_Plain", pb.FileIdentifier())

	sm, err := method.New("St Mary's", method.Surprise, stage.Minor, "&x3x4x2x3x4x5", "2", "4", "234")
	require.NoError(t, err)
	assert.Equal(t, "St Mary's Surprise Minor", sm.String())
	assert.Equal(t, "6_S_StMarys", sm.FileIdentifier())
	assert.Equal(t, "St Mary's Surprise", sm.Title())

	assert.True(t, pb.Equal(plainBobMinor(t)))
	assert.False(t, pb.Equal(sm))
	assert.Equal(t, -1, pb.Compare(sm))
	assert.Equal(t, 1, sm.Compare(pb))
	assert.Equal(t, 0, pb.Compare(plainBobMinor(t)))
}

func TestAmendments(t *testing.T) {
	m := plainBobMinor(t, method.WithAmendment("B", "W"))
	assert.Equal(t, "W", m.AmendedCallingPosition("B"))
	assert.Equal(t, "H", m.AmendedCallingPosition("H"))
	assert.Equal(t, map[string]string{"B": "W"}, m.Amendments())
}

func TestDescription(t *testing.T) {
	want := "&x16x16x16 plh\u00a012 (35264)," +
		" blh\u00a014 (23564) 2:2 3:3 5:4," +
		" slh\u00a01234 (32564) 2:3 5:4"
	assert.Equal(t, want, plainBobMinor(t).Description())
}
