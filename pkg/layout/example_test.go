package layout_test

import (
	"fmt"

	"github.com/collagely/collagely/pkg/layout"
)

func ExampleComputeGrid() {
	// An A4 page at 96 DPI with nine photos, the first one being the main
	// photo.
	res, err := layout.ComputeGrid(layout.Request{
		PageWidth:  794,
		PageHeight: 1123,
		Gap:        5,
		PhotoCount: 9,
		MainIndex:  0,
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("side photos:", len(res.Side))
	fmt.Printf("edges: top=%d bottom=%d left=%d right=%d\n",
		res.Config.Edges.Top, res.Config.Edges.Bottom,
		res.Config.Edges.Left, res.Config.Edges.Right)
	fmt.Println("degraded:", res.Degraded)
	// Output:
	// side photos: 8
	// edges: top=2 bottom=2 left=2 right=2
	// degraded: false
}

func ExampleDistribute() {
	e := layout.Distribute(9)
	fmt.Printf("top=%d bottom=%d left=%d right=%d\n", e.Top, e.Bottom, e.Left, e.Right)
	// Output:
	// top=3 bottom=2 left=2 right=2
}
