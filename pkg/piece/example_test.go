package piece_test

import (
	"fmt"

	"github.com/stevenrrose/Shim-Index/pkg/piece"
)

func ExampleBuild() {
	p := piece.Build("+CB", piece.Options{})

	fmt.Println("slots:", len(p.Slots))
	for i, slot := range p.Slots {
		dir := "down"
		if slot.Up {
			dir = "up"
		}
		fmt.Printf("slot %d: %d shims, %s\n", i, len(slot.Shims), dir)
	}
	fmt.Printf("height: %.0f\n", p.Height)
	// Output:
	// slots: 2
	// slot 0: 3 shims, up
	// slot 1: 2 shims, down
	// height: 50
}

func ExampleBuild_malformed() {
	p := piece.Build("C", piece.Options{})
	fmt.Println("empty:", p.Empty())
	// Output:
	// empty: true
}
