package haunted

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GhostPath maps elapsed seconds to a world position.
type GhostPath func(t float64) mgl32.Vec3

// Ghost paths are evaluated in float64 so long sessions keep their shape.
var GhostPaths = [3]GhostPath{GhostOne, GhostTwo, GhostThree}

// GhostOne circles the house at radius 4, bobbing three times per lap.
func GhostOne(t float64) mgl32.Vec3 {
	a := t * 0.5
	return vec(math.Cos(a)*4, math.Sin(a*3), math.Sin(a)*4)
}

// GhostTwo circles the other way at radius 7.
func GhostTwo(t float64) mgl32.Vec3 {
	a := -t * 0.25
	return vec(math.Cos(a)*7, math.Sin(t*2.5)+math.Sin(t*4.5), math.Sin(a)*7)
}

// GhostThree follows a slowly wobbling ellipse around radius 7.
func GhostThree(t float64) mgl32.Vec3 {
	a := -t * 0.15
	return vec(
		math.Cos(a)*(7+math.Sin(t*0.32)),
		math.Sin(t*2.5)+math.Sin(t*4.5),
		math.Sin(a)*(7+math.Sin(t*0.5)),
	)
}

func vec(x, y, z float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}
