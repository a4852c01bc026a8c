package system

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/orbitdemo/ecs"
	"github.com/milk9111/orbitdemo/ecs/component"
	"github.com/milk9111/orbitdemo/orbit"
)

const testDT = 1.0 / 60.0

type fakeInput struct {
	keys    map[ebiten.Key]bool
	just    map[ebiten.Key]bool
	buttons map[ebiten.MouseButton]bool
	x, y    int
	wheel   float64
}

func newFakeInput() *fakeInput {
	return &fakeInput{
		keys:    make(map[ebiten.Key]bool),
		just:    make(map[ebiten.Key]bool),
		buttons: make(map[ebiten.MouseButton]bool),
	}
}

func (f *fakeInput) IsKeyPressed(key ebiten.Key) bool                   { return f.keys[key] }
func (f *fakeInput) IsKeyJustPressed(key ebiten.Key) bool               { return f.just[key] }
func (f *fakeInput) IsMouseButtonPressed(button ebiten.MouseButton) bool { return f.buttons[button] }
func (f *fakeInput) CursorPosition() (int, int)                         { return f.x, f.y }
func (f *fakeInput) Wheel() (float64, float64)                          { return 0, f.wheel }

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func addTestCamera(t *testing.T, w *ecs.World, target mgl64.Vec3, yaw, pitch, radius float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	state := orbit.New(target, yaw, pitch, radius, 2, 20)
	mustAdd(t, ecs.Add(w, e, component.OrbitCameraComponent, &component.OrbitCamera{
		State:  state,
		Spawn:  state,
		Tuning: orbit.Tuning{Sensitivity: 1, ScrollSensitivity: 1},
		Button: component.OrbitButtonRight,
		FovY:   mgl64.DegToRad(60),
		Near:   0.1,
		Far:    100,
	}))
	mustAdd(t, ecs.Add(w, e, component.OrbitInputComponent, &component.OrbitInput{
		Viewport: orbit.Viewport{Width: 800, Height: 600},
	}))
	mustAdd(t, ecs.Add(w, e, component.TransformComponent, &component.Transform{
		Position: state.Position(),
		Rotation: state.Orientation,
		Scale:    mgl64.Vec3{1, 1, 1},
	}))
	return e
}

func addTestCube(t *testing.T, w *ecs.World, pos mgl64.Vec3, size float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, ecs.Add(w, e, component.TransformComponent, &component.Transform{
		Position: pos,
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}))
	mustAdd(t, ecs.Add(w, e, component.MeshComponent, &component.Mesh{
		Shape: component.MeshCube,
		Size:  size,
		Color: color.NRGBA{B: 0xff, A: 0xff},
	}))
	return e
}

func addTestPlayer(t *testing.T, w *ecs.World, pos mgl64.Vec3, speed float64) ecs.Entity {
	t.Helper()
	e := addTestCube(t, w, pos, 1)
	mustAdd(t, ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{}))
	mustAdd(t, ecs.Add(w, e, component.PlayerComponent, &component.Player{MoveSpeed: speed}))
	mustAdd(t, ecs.Add(w, e, component.InputComponent, &component.Input{}))
	return e
}
