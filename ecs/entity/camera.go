package entity

import (
	"github.com/milk9111/orbitdemo/ecs"
	"github.com/milk9111/orbitdemo/ecs/component"
	"github.com/milk9111/orbitdemo/orbit"
)

// ResetCamera puts the camera back on the orbit it spawned with, keeping the
// current target.
func ResetCamera(w *ecs.World, cam ecs.Entity) bool {
	oc, ok := ecs.Get(w, cam, component.OrbitCameraComponent)
	if !ok {
		return false
	}
	target := oc.State.Target
	oc.State = oc.Spawn
	oc.State.Target = target
	if in, ok := ecs.Get(w, cam, component.OrbitInputComponent); ok {
		in.Sample = orbit.InputSample{}
	}
	return true
}
