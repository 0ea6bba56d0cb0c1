package physics2d

import (
	"fmt"
	"math"
)

// INFINITY is the mass of an immovable body.
var INFINITY = math.Inf(1)

func check(truth bool, msg ...interface{}) {
	if !truth {
		panic(fmt.Sprint("Assertion failed: ", fmt.Sprint(msg...)))
	}
}
