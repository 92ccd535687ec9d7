package generator_test

import (
	"strconv"
	"testing"

	"github.com/katalvlaran/changering/generator"
)

func BenchmarkGenerate(b *testing.B) {
	m := plainBob(b)
	for _, workers := range []int{1, 4} {
		b.Run("workers="+strconv.Itoa(workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := generator.Generate(m, generator.WithMaxChanges(80), generator.WithWorkers(workers)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
