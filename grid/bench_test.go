package grid_test

import (
	"testing"

	"github.com/katalvlaran/changering/grid"
	"github.com/katalvlaran/changering/notation"
	"github.com/katalvlaran/changering/stage"
)

func BenchmarkCross(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = grid.Cross("1234567890ET", "14", stage.Maximus)
	}
}

func BenchmarkPlainCourseIsTrue(b *testing.B) {
	plain := notation.MustParse("&x16x16x16").Concat(notation.Notation{"12"})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		g := grid.New(stage.Minor)
		for j := 0; j < 5; j++ {
			g.ApplyAll(plain)
		}
		if err := g.IsTrue(); err != nil {
			b.Fatal(err)
		}
	}
}
