//go:build zvector_debug

package zvector

import "fmt"

func assertInRange[T any](z *ZVector[T], i int) {
	if i < z.min || i > z.max {
		panic(fmt.Sprintf("zvector: index %d out of range [%d, %d]", i, z.min, z.max))
	}
}
