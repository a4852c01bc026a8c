package system

import (
	"image"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/orbitdemo/common"
	"github.com/milk9111/orbitdemo/ecs"
	"github.com/milk9111/orbitdemo/ecs/component"
)

const (
	maxBatchVertices = 65535 - 65535%3
	defaultAmbient   = 0.2
	lightScale       = 1000.0
)

var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

// RenderSystem draws meshes as flat-shaded triangles seen from the orbit
// camera, sorted back to front.
type RenderSystem struct {
	camera ecs.Entity
	debug  bool

	tris     []triangle
	vertices []ebiten.Vertex
	indices  []uint16
}

type triangle struct {
	pts   [3]mgl64.Vec2
	depth float64
	color color.NRGBA
}

type face struct {
	corners [4]mgl64.Vec3
	normal  mgl64.Vec3
}

type lightSource struct {
	position mgl64.Vec3
	light    component.PointLight
}

func NewRenderSystem(camera ecs.Entity, debug bool) *RenderSystem {
	return &RenderSystem{camera: camera, debug: debug}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	proj, ok := r.projector(w, width, height)
	if !ok {
		return
	}
	r.tris = r.collectTriangles(w, proj, r.tris[:0])
	r.drawTriangles(screen, r.tris)

	if r.debug {
		r.drawTargetMarker(w, screen, proj)
	}
}

func (r *RenderSystem) projector(w *ecs.World, width, height float64) (Projector, bool) {
	if !w.IsAlive(r.camera) {
		return Projector{}, false
	}
	camTransform, ok := ecs.Get(w, r.camera, component.TransformComponent)
	if !ok {
		return Projector{}, false
	}
	oc, ok := ecs.Get(w, r.camera, component.OrbitCameraComponent)
	if !ok {
		return Projector{}, false
	}
	return NewProjector(*camTransform, *oc, width, height), true
}

func (r *RenderSystem) collectTriangles(w *ecs.World, proj Projector, out []triangle) []triangle {
	lights := collectLights(w)

	ecs.ForEach2(w, component.MeshComponent, component.TransformComponent, func(e ecs.Entity, mesh *component.Mesh, t *component.Transform) {
		if e == r.camera {
			return
		}
		model := t.Matrix()
		for _, f := range meshFaces(*mesh) {
			var world [4]mgl64.Vec3
			var center mgl64.Vec3
			for i, c := range f.corners {
				world[i] = model.Mul4x1(c.Vec4(1)).Vec3()
				center = center.Add(world[i])
			}
			center = center.Mul(0.25)

			normal := t.Rotation.Rotate(f.normal)
			if normal.Dot(proj.Eye().Sub(center)) <= 0 {
				continue
			}

			var screenPts [4]mgl64.Vec2
			depth := 0.0
			visible := true
			for i := range world {
				p, d, ok := proj.Project(world[i])
				if !ok {
					visible = false
					break
				}
				screenPts[i] = p
				depth += d
			}
			if !visible {
				continue
			}
			depth /= 4

			shaded := shade(mesh.Color, normal, center, lights)
			out = append(out,
				triangle{pts: [3]mgl64.Vec2{screenPts[0], screenPts[1], screenPts[2]}, depth: depth, color: shaded},
				triangle{pts: [3]mgl64.Vec2{screenPts[0], screenPts[2], screenPts[3]}, depth: depth, color: shaded},
			)
		}
	})

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].depth > out[j].depth
	})
	return out
}

func (r *RenderSystem) drawTriangles(screen *ebiten.Image, tris []triangle) {
	if len(tris) == 0 {
		return
	}
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for _, tri := range tris {
		if len(r.vertices)+3 > maxBatchVertices {
			screen.DrawTriangles(r.vertices, r.indices, whiteSubImage, op)
			r.vertices = r.vertices[:0]
			r.indices = r.indices[:0]
		}
		cr := float32(tri.color.R) / 0xff
		cg := float32(tri.color.G) / 0xff
		cb := float32(tri.color.B) / 0xff
		ca := float32(tri.color.A) / 0xff
		for _, p := range tri.pts {
			r.indices = append(r.indices, uint16(len(r.vertices)))
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX: float32(p.X()), DstY: float32(p.Y()),
				SrcX: 1, SrcY: 1,
				ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
			})
		}
	}
	screen.DrawTriangles(r.vertices, r.indices, whiteSubImage, op)
}

func (r *RenderSystem) drawTargetMarker(w *ecs.World, screen *ebiten.Image, proj Projector) {
	oc, ok := ecs.Get(w, r.camera, component.OrbitCameraComponent)
	if !ok {
		return
	}
	p, _, ok := proj.Project(oc.State.Target)
	if !ok {
		return
	}
	x, y := float32(p.X()), float32(p.Y())
	red := color.NRGBA{R: 0xff, A: 0xff}
	vector.StrokeLine(screen, x-6, y, x+6, y, 1, red, true)
	vector.StrokeLine(screen, x, y-6, x, y+6, 1, red, true)
}

func collectLights(w *ecs.World) []lightSource {
	var lights []lightSource
	ecs.ForEach2(w, component.PointLightComponent, component.TransformComponent, func(_ ecs.Entity, l *component.PointLight, t *component.Transform) {
		lights = append(lights, lightSource{position: t.Position, light: *l})
	})
	return lights
}

// shade applies Lambert lighting with distance falloff on top of the
// strongest ambient term among the lights.
func shade(base color.NRGBA, normal, p mgl64.Vec3, lights []lightSource) color.NRGBA {
	ambient := defaultAmbient
	if len(lights) > 0 {
		ambient = 0
	}
	diffuse := 0.0
	for _, ls := range lights {
		ambient = max(ambient, ls.light.Ambient)
		toLight := ls.position.Sub(p)
		d := toLight.Len()
		if d < 1e-9 {
			diffuse += ls.light.Intensity / lightScale
			continue
		}
		lambert := max(0, normal.Dot(toLight.Mul(1/d)))
		falloff := 1 + (d/ls.light.Range)*(d/ls.light.Range)
		diffuse += lambert * (ls.light.Intensity / lightScale) / falloff
	}
	b := common.Lerp(ambient, 1, mgl64.Clamp(diffuse, 0, 1))
	return color.NRGBA{
		R: uint8(float64(base.R) * b),
		G: uint8(float64(base.G) * b),
		B: uint8(float64(base.B) * b),
		A: base.A,
	}
}

func meshFaces(mesh component.Mesh) []face {
	h := mesh.Size / 2
	switch mesh.Shape {
	case component.MeshPlane:
		n := max(mesh.Subdivisions, 1)
		step := mesh.Size / float64(n)
		faces := make([]face, 0, n*n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				x0 := -h + float64(i)*step
				z0 := -h + float64(j)*step
				faces = append(faces, face{
					corners: [4]mgl64.Vec3{{x0, 0, z0}, {x0, 0, z0 + step}, {x0 + step, 0, z0 + step}, {x0 + step, 0, z0}},
					normal:  mgl64.Vec3{0, 1, 0},
				})
			}
		}
		return faces
	default:
		return []face{
			{corners: [4]mgl64.Vec3{{h, -h, -h}, {h, h, -h}, {h, h, h}, {h, -h, h}}, normal: mgl64.Vec3{1, 0, 0}},
			{corners: [4]mgl64.Vec3{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}, normal: mgl64.Vec3{-1, 0, 0}},
			{corners: [4]mgl64.Vec3{{-h, h, -h}, {-h, h, h}, {h, h, h}, {h, h, -h}}, normal: mgl64.Vec3{0, 1, 0}},
			{corners: [4]mgl64.Vec3{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}, normal: mgl64.Vec3{0, -1, 0}},
			{corners: [4]mgl64.Vec3{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}, normal: mgl64.Vec3{0, 0, 1}},
			{corners: [4]mgl64.Vec3{{-h, -h, -h}, {-h, h, -h}, {h, h, -h}, {h, -h, -h}}, normal: mgl64.Vec3{0, 0, -1}},
		}
	}
}

// Projector maps world points to screen pixels for one camera pose.
type Projector struct {
	viewProj mgl64.Mat4
	eye      mgl64.Vec3
	near     float64
	width    float64
	height   float64
}

func NewProjector(cam component.Transform, oc component.OrbitCamera, width, height float64) Projector {
	aspect := 1.0
	if height > 0 {
		aspect = width / height
	}
	up := cam.Rotation.Rotate(mgl64.Vec3{0, 1, 0})
	view := mgl64.LookAtV(cam.Position, cam.Position.Add(cam.Forward()), up)
	proj := mgl64.Perspective(oc.FovY, aspect, oc.Near, oc.Far)
	return Projector{
		viewProj: proj.Mul4(view),
		eye:      cam.Position,
		near:     oc.Near,
		width:    width,
		height:   height,
	}
}

func (p Projector) Eye() mgl64.Vec3 {
	return p.eye
}

// Project returns the screen position of v and its distance along the view
// direction. ok is false for points in front of the near plane.
func (p Projector) Project(v mgl64.Vec3) (screen mgl64.Vec2, depth float64, ok bool) {
	clip := p.viewProj.Mul4x1(v.Vec4(1))
	depth = clip.W()
	if depth < p.near {
		return mgl64.Vec2{}, depth, false
	}
	ndcX := clip.X() / depth
	ndcY := clip.Y() / depth
	return mgl64.Vec2{(ndcX + 1) / 2 * p.width, (1 - ndcY) / 2 * p.height}, depth, true
}
