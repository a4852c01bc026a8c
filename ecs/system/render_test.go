package system

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orbitdemo/ecs"
	"github.com/milk9111/orbitdemo/ecs/component"
)

func collectForTest(t *testing.T, w *ecs.World, cam ecs.Entity) []triangle {
	t.Helper()
	rs := NewRenderSystem(cam, false)
	proj, ok := rs.projector(w, 800, 600)
	if !ok {
		t.Fatal("expected a projector for the camera")
	}
	return rs.collectTriangles(w, proj, nil)
}

func TestRenderCollectsVisibleFaces(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, w *ecs.World)
		want  int
	}{
		{
			name: "cube_front_and_top",
			setup: func(t *testing.T, w *ecs.World) {
				addTestCube(t, w, mgl64.Vec3{}, 1)
			},
			want: 4,
		},
		{
			name: "plane_tiles",
			setup: func(t *testing.T, w *ecs.World) {
				e := w.CreateEntity()
				mustAdd(t, ecs.Add(w, e, component.TransformComponent, &component.Transform{Rotation: mgl64.QuatIdent()}))
				mustAdd(t, ecs.Add(w, e, component.MeshComponent, &component.Mesh{Shape: component.MeshPlane, Size: 2, Subdivisions: 2}))
			},
			want: 8,
		},
		{
			name: "behind_camera",
			setup: func(t *testing.T, w *ecs.World) {
				addTestCube(t, w, mgl64.Vec3{0, 0, 12}, 1)
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			cam := addTestCamera(t, w, mgl64.Vec3{}, 0, -0.3, 5)
			tt.setup(t, w)
			if got := len(collectForTest(t, w, cam)); got != tt.want {
				t.Fatalf("expected %d triangles, got %d", tt.want, got)
			}
		})
	}
}

func TestRenderSortsBackToFront(t *testing.T) {
	w := ecs.NewWorld()
	cam := addTestCamera(t, w, mgl64.Vec3{}, 0.3, -0.4, 8)
	addTestCube(t, w, mgl64.Vec3{}, 1)
	addTestCube(t, w, mgl64.Vec3{-1, 0, -3}, 1)
	addTestCube(t, w, mgl64.Vec3{1, 0, 2}, 1)

	tris := collectForTest(t, w, cam)
	if len(tris) == 0 {
		t.Fatal("expected triangles")
	}
	for i := 1; i < len(tris); i++ {
		if tris[i].depth > tris[i-1].depth {
			t.Fatalf("triangle %d is farther than %d: %v > %v", i, i-1, tris[i].depth, tris[i-1].depth)
		}
	}
}

func TestProjectorCentersTarget(t *testing.T) {
	w := ecs.NewWorld()
	target := mgl64.Vec3{1, 0.5, -2}
	cam := addTestCamera(t, w, target, 0.7, -0.5, 6)
	rs := NewRenderSystem(cam, false)
	proj, ok := rs.projector(w, 800, 600)
	if !ok {
		t.Fatal("expected a projector")
	}

	p, depth, ok := proj.Project(target)
	if !ok {
		t.Fatal("expected target in front of the camera")
	}
	if !p.ApproxEqualThreshold(mgl64.Vec2{400, 300}, 1e-6) {
		t.Fatalf("expected target at screen center, got %v", p)
	}
	if !mgl64.FloatEqualThreshold(depth, 6, 1e-9) {
		t.Fatalf("expected depth 6, got %v", depth)
	}
}

func TestShade(t *testing.T) {
	base := color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	overhead := []lightSource{{
		position: mgl64.Vec3{0, 1, 0},
		light:    component.PointLight{Intensity: 1000, Range: 1e9, Ambient: 0.1},
	}}

	tests := []struct {
		name   string
		normal mgl64.Vec3
		lights []lightSource
		minR   uint8
		maxR   uint8
	}{
		{name: "no_lights_ambient", normal: mgl64.Vec3{0, 1, 0}, minR: 39, maxR: 40},
		{name: "facing_light", normal: mgl64.Vec3{0, 1, 0}, lights: overhead, minR: 199, maxR: 200},
		{name: "facing_away", normal: mgl64.Vec3{0, -1, 0}, lights: overhead, minR: 19, maxR: 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shade(base, tt.normal, mgl64.Vec3{}, tt.lights)
			if got.R < tt.minR || got.R > tt.maxR || got.A != 255 {
				t.Fatalf("expected R in [%d, %d], got %+v", tt.minR, tt.maxR, got)
			}
		})
	}
}
