package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/orbitdemo/ecs"
	"github.com/milk9111/orbitdemo/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeDynamic
)

const wallThickness = 0.05

// PhysicsSystem simulates the ground plane in 2D: Chipmunk X/Y are world
// X/Z. Height is left to the transform.
type PhysicsSystem struct {
	space *cp.Space
	dt    float64

	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

func NewPhysicsSystem(dt float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		space:    space,
		dt:       dt,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.cleanupEntities(w)
	ps.syncWorldBounds(w)
	ps.syncEntities(w)
	ps.space.Step(ps.dt)
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent, component.TransformComponent, func(e ecs.Entity, bodyComp *component.PhysicsBody, t *component.Transform) {
		if _, exists := ps.entities[e]; exists {
			return
		}
		info := ps.createBodyInfo(*t, *bodyComp)
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
	})
}

func (ps *PhysicsSystem) createBodyInfo(t component.Transform, bodyComp component.PhysicsBody) *bodyInfo {
	width, depth := bodyComp.Width, bodyComp.Depth
	if width <= 0 || depth <= 0 {
		width, depth = 1, 1
	}
	x, z := t.Position.X(), t.Position.Z()

	if bodyComp.Static {
		bb := cp.BB{L: x - width/2, B: z - depth/2, R: x + width/2, T: z + depth/2}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	// Cubes slide; they never spin on the ground.
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: x, Y: z})

	shape := cp.NewBox(body, width, depth, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeDynamic)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shapes: []*cp.Shape{shape}}
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	ecs.ForEach2(w, component.WorldBoundsComponent, component.TransformComponent, func(e ecs.Entity, bounds *component.WorldBounds, t *component.Transform) {
		if _, exists := ps.entities[e]; exists {
			return
		}
		cx, cz := t.Position.X(), t.Position.Z()
		hw, hd := bounds.Width/2, bounds.Depth/2
		corners := [4]cp.Vector{
			{X: cx - hw, Y: cz - hd},
			{X: cx + hw, Y: cz - hd},
			{X: cx + hw, Y: cz + hd},
			{X: cx - hw, Y: cz + hd},
		}

		info := &bodyInfo{static: true, body: ps.space.StaticBody}
		for i := range corners {
			shape := cp.NewSegment(ps.space.StaticBody, corners[i], corners[(i+1)%len(corners)], wallThickness)
			shape.SetFriction(0)
			shape.SetCollisionType(collisionTypeSolid)
			ps.space.AddShape(shape)
			info.shapes = append(info.shapes, shape)
		}
		ps.entities[e] = info
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent, component.TransformComponent, func(_ ecs.Entity, bodyComp *component.PhysicsBody, t *component.Transform) {
		if bodyComp.Static || bodyComp.Body == nil {
			return
		}
		pos := bodyComp.Body.Position()
		t.Position = mgl64.Vec3{pos.X, t.Position.Y(), pos.Y}
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && (ecs.Has(w, e, component.PhysicsBodyComponent) || ecs.Has(w, e, component.WorldBoundsComponent)) {
			continue
		}
		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
