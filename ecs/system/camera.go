package system

import (
	"github.com/milk9111/orbitdemo/ecs"
	"github.com/milk9111/orbitdemo/ecs/component"
)

// CameraFollowSystem snaps the camera's orbit target onto the tracked entity
// and writes the resulting pose into the camera transform.
type CameraFollowSystem struct {
	camera ecs.Entity
	target ecs.Entity
}

func NewCameraFollowSystem(camera, target ecs.Entity) *CameraFollowSystem {
	return &CameraFollowSystem{camera: camera, target: target}
}

func (cs *CameraFollowSystem) Update(w *ecs.World) {
	if cs == nil || !w.IsAlive(cs.camera) {
		return
	}
	oc, ok := ecs.Get(w, cs.camera, component.OrbitCameraComponent)
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camera, component.TransformComponent)
	if !ok {
		return
	}

	pos := oc.State.Position()
	if targetTransform, ok := ecs.Get(w, cs.target, component.TransformComponent); ok && w.IsAlive(cs.target) {
		pos = oc.State.Follow(targetTransform.Position)
	}

	camTransform.Position = pos
	camTransform.Rotation = oc.State.Orientation
}
