package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orbitdemo/ecs"
	"github.com/milk9111/orbitdemo/ecs/component"
)

// PlayerControllerSystem moves players relative to where the camera looks.
type PlayerControllerSystem struct {
	camera ecs.Entity
	dt     float64
}

func NewPlayerControllerSystem(camera ecs.Entity, dt float64) *PlayerControllerSystem {
	return &PlayerControllerSystem{camera: camera, dt: dt}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if p == nil || !w.IsAlive(p.camera) {
		return
	}
	camTransform, ok := ecs.Get(w, p.camera, component.TransformComponent)
	if !ok {
		return
	}

	for _, e := range w.Query(component.PlayerTagComponent.Kind(), component.InputComponent.Kind(), component.PlayerComponent.Kind()) {
		input, _ := ecs.Get(w, e, component.InputComponent)
		player, _ := ecs.Get(w, e, component.PlayerComponent)
		dir := MoveDirection(*camTransform, *input)
		velocity := dir.Mul(player.MoveSpeed)

		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok && body.Body != nil {
			body.Body.SetVelocity(velocity.X(), velocity.Z())
			continue
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
			t.Position = t.Position.Add(velocity.Mul(p.dt))
		}
	}
}

// MoveDirection flattens the camera's forward and right axes onto the ground
// plane and combines them with the input. The result is unit length or zero.
func MoveDirection(camera component.Transform, input component.Input) mgl64.Vec3 {
	dir := camera.Forward().Mul(input.Forward).Add(camera.Right().Mul(input.Strafe))
	dir[1] = 0
	if dir.Len() < 1e-9 {
		return mgl64.Vec3{}
	}
	return dir.Normalize()
}
