package grid_test

import (
	"fmt"

	"github.com/katalvlaran/changering/grid"
	"github.com/katalvlaran/changering/notation"
	"github.com/katalvlaran/changering/stage"
)

// ExampleGrid_IsTrue rings a bobbed course of Plain Bob Minor.
func ExampleGrid_IsTrue() {
	bob := notation.MustParse("&x16x16x16").Concat(notation.Notation{"14"})

	g := grid.New(stage.Minor)
	for i := 0; i < 3; i++ {
		fmt.Println(g.ApplyAll(bob))
	}
	fmt.Println(g.Len()-1, g.IsTrue())
	// Output:
	// 123564
	// 123645
	// 123456
	// 36 <nil>
}

// ExampleCross shows the basic all-change and a place held at the front.
func ExampleCross() {
	fmt.Println(grid.Cross("123456", notation.Cross, stage.Minor))
	fmt.Println(grid.Cross("123456", "12", stage.Minor))
	// Output:
	// 214365
	// 124365
}
