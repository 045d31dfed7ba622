//go:build ignore

// This file documents a compile-time guarantee (spec §8's coordinate-
// space type-safety property) that has no runtime assertion: Transform's
// space parameters are phantom generic tags, so the Go compiler itself
// rejects composing two transforms that don't share a hop space. It
// carries `go:build ignore` because its entire content is code that must
// NOT compile; `go build`/`go test` never touch this file. A reader
// confirms the guarantee by deleting the build tag and watching
// compilation fail on the marked line.
package math

func doesNotCompile() {
	var m [4][4]float64
	localToWorld := FromMatrix[Local, World](m, m)
	worldToRender := FromMatrix[World, Render](m, m)

	// worldToRender.ApplyPoint expects a Point3[World]; localToWorld
	// produces a Point3[World] from a Point3[Local], so this much type-
	// checks. Applying worldToRender a second time to its own *output*
	// (a Point3[Render]) does not, because ApplyPoint's argument type is
	// fixed to Point3[World] by worldToRender's own type parameters:
	p := worldToRender.ApplyPoint(localToWorld.ApplyPoint(Point3[Local]{}))
	_ = worldToRender.ApplyPoint(p) // does not compile: p is Point3[Render], not Point3[World]
}
