package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orbitdemo/ecs"
	"github.com/milk9111/orbitdemo/ecs/component"
)

func addTestBody(t *testing.T, w *ecs.World, e ecs.Entity, static bool) {
	t.Helper()
	mustAdd(t, ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
		Width:  1,
		Depth:  1,
		Mass:   1,
		Static: static,
	}))
}

func pushFor(t *testing.T, w *ecs.World, ps *PhysicsSystem, e ecs.Entity, vx, vz float64, frames int) *component.Transform {
	t.Helper()
	ps.Update(w)
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
	if !ok || body.Body == nil {
		t.Fatal("expected physics body to be created")
	}
	for i := 0; i < frames; i++ {
		body.Body.SetVelocity(vx, vz)
		ps.Update(w)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent)
	return tr
}

func TestPhysicsWallsKeepPlayerInside(t *testing.T) {
	w := ecs.NewWorld()
	floor := w.CreateEntity()
	mustAdd(t, ecs.Add(w, floor, component.TransformComponent, &component.Transform{Rotation: mgl64.QuatIdent()}))
	mustAdd(t, ecs.Add(w, floor, component.WorldBoundsComponent, &component.WorldBounds{Width: 4, Depth: 4}))
	player := addTestPlayer(t, w, mgl64.Vec3{0, 0.5, 0}, 3)
	addTestBody(t, w, player, false)

	tr := pushFor(t, w, NewPhysicsSystem(testDT), player, 5, 0, 120)

	if x := tr.Position.X(); x < 1 || x > 1.6 {
		t.Fatalf("expected player stopped at the +X wall, got x=%v", x)
	}
	if tr.Position.Y() != 0.5 {
		t.Fatalf("expected height to be left alone, got %v", tr.Position.Y())
	}
}

func TestPhysicsStaticPropBlocks(t *testing.T) {
	w := ecs.NewWorld()
	prop := addTestCube(t, w, mgl64.Vec3{2, 0.5, 0}, 1)
	addTestBody(t, w, prop, true)
	player := addTestPlayer(t, w, mgl64.Vec3{0, 0.5, 0}, 3)
	addTestBody(t, w, player, false)

	tr := pushFor(t, w, NewPhysicsSystem(testDT), player, 3, 0, 120)

	if x := tr.Position.X(); x < 0.5 || x > 1.1 {
		t.Fatalf("expected player stopped by the prop, got x=%v", x)
	}
	propT, _ := ecs.Get(w, prop, component.TransformComponent)
	if propT.Position != (mgl64.Vec3{2, 0.5, 0}) {
		t.Fatalf("static prop moved to %v", propT.Position)
	}
}

func TestPhysicsCleansUpDestroyedEntities(t *testing.T) {
	w := ecs.NewWorld()
	player := addTestPlayer(t, w, mgl64.Vec3{}, 3)
	addTestBody(t, w, player, false)
	ps := NewPhysicsSystem(testDT)
	ps.Update(w)
	if len(ps.entities) != 1 {
		t.Fatalf("expected one tracked body, got %d", len(ps.entities))
	}

	w.DestroyEntity(player)
	ps.Update(w)
	if len(ps.entities) != 0 {
		t.Fatalf("expected body to be removed, got %d", len(ps.entities))
	}
}
