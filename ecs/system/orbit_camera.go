package system

import (
	"github.com/milk9111/orbitdemo/ecs"
	"github.com/milk9111/orbitdemo/ecs/component"
	"github.com/milk9111/orbitdemo/ecs/entity"
	"github.com/milk9111/orbitdemo/orbit"
)

// OrbitCameraSystem turns the camera's pending input into rotation and zoom.
// It runs before CameraFollowSystem so the position is recomputed from the
// updated orbit in the same frame.
type OrbitCameraSystem struct {
	camera ecs.Entity
	dt     float64
}

func NewOrbitCameraSystem(camera ecs.Entity, dt float64) *OrbitCameraSystem {
	return &OrbitCameraSystem{camera: camera, dt: dt}
}

func (s *OrbitCameraSystem) Update(w *ecs.World) {
	if s == nil || !w.IsAlive(s.camera) {
		return
	}

	if len(w.Events().Of(ecs.EventCameraReset)) > 0 {
		entity.ResetCamera(w, s.camera)
	}

	oc, ok := ecs.Get(w, s.camera, component.OrbitCameraComponent)
	if !ok {
		return
	}
	in, ok := ecs.Get(w, s.camera, component.OrbitInputComponent)
	if !ok {
		return
	}

	// The target is re-snapped to the tracked entity by CameraFollowSystem.
	oc.State.Step(in.Sample, oc.State.Target, in.Viewport, oc.Tuning, s.dt)
	in.Sample = orbit.InputSample{}
}
