package system

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/orbitdemo/ecs"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 0.1
	// Outlines float just above the floor so they are not hidden by it.
	debugOutlineHeight = 0.01
)

// DrawPhysicsDebug outlines every collider on the floor plane as seen by the
// camera.
func DrawPhysicsDebug(space *cp.Space, w *ecs.World, camera ecs.Entity, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}
	rs := RenderSystem{camera: camera}
	proj, ok := rs.projector(w, float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy()))
	if !ok {
		return
	}
	cp.DrawSpace(space, &physicsDebugDrawer{screen: screen, proj: proj})
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	proj   Projector
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	half := debugDotSize / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 1, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 1, G: 0.8, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	pa, _, okA := d.proj.Project(floorPoint(a))
	pb, _, okB := d.proj.Project(floorPoint(b))
	if !okA || !okB {
		return
	}
	vector.StrokeLine(d.screen, float32(pa.X()), float32(pa.Y()), float32(pb.X()), float32(pb.Y()), 1, toNRGBA(c), true)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

// floorPoint lifts a Chipmunk (x, y) onto the world XZ plane.
func floorPoint(v cp.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, debugOutlineHeight, v.Y}
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(mgl64.Clamp(float64(c.R), 0, 1) * 255),
		G: uint8(mgl64.Clamp(float64(c.G), 0, 1) * 255),
		B: uint8(mgl64.Clamp(float64(c.B), 0, 1) * 255),
		A: uint8(mgl64.Clamp(float64(c.A), 0, 1) * 255),
	}
}
