package stage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/changering/stage"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		want    stage.Stage
		wantErr bool
	}{
		{"1", stage.Unus, false},
		{"6", stage.Minor, false},
		{" 12 ", stage.Maximus, false},
		{"16", stage.Sixteen, false},
		{"0", 0, true},
		{"17", 0, true},
		{"six", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := stage.Parse(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, stage.ErrInvalidStage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStageAccessors(t *testing.T) {
	assert.Equal(t, "Minor", stage.Minor.String())
	assert.Equal(t, "Sixteen", stage.Sixteen.String())
	assert.Equal(t, "123456", stage.Minor.Rounds())
	assert.Equal(t, "1234567890ET", stage.Maximus.Rounds())
	assert.Equal(t, byte('6'), stage.Minor.Label())
	assert.Equal(t, byte('0'), stage.Royal.Label())
	assert.Equal(t, byte('T'), stage.Maximus.Label())
	assert.Equal(t, byte('D'), stage.Sixteen.Label())
}

func TestExtent(t *testing.T) {
	assert.Equal(t, 1, stage.Unus.Extent())
	assert.Equal(t, 24, stage.Minimus.Extent())
	assert.Equal(t, 720, stage.Minor.Extent())
	assert.Equal(t, 40320, stage.Major.Extent())
	assert.Equal(t, 20922789888000, stage.Sixteen.Extent())
	assert.Equal(t, 0, stage.Stage(40).Extent())
}

func TestLabels(t *testing.T) {
	for p := 1; p <= stage.MaxBells; p++ {
		c := stage.LabelAt(p)
		assert.True(t, stage.IsLabel(c))
		assert.Equal(t, p, stage.PositionOf(c))
	}
	for p := stage.MaxBells + 1; p <= len(stage.Labels); p++ {
		assert.True(t, stage.IsLabel(stage.LabelAt(p)))
	}
	// E and T recur past the sixteenth place; the first one wins.
	assert.Equal(t, 11, stage.PositionOf('E'))
	assert.Equal(t, 12, stage.PositionOf('T'))
	assert.False(t, stage.IsLabel('x'))
	assert.False(t, stage.IsLabel('.'))
	assert.Equal(t, 0, stage.PositionOf('-'))
}
