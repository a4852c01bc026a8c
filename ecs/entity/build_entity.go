package entity

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orbitdemo/ecs"
	"github.com/milk9111/orbitdemo/ecs/component"
	"github.com/milk9111/orbitdemo/orbit"
	"github.com/milk9111/orbitdemo/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"name":         addName,
	"player_tag":   addPlayerTag,
	"camera_tag":   addCameraTag,
	"prop_tag":     addPropTag,
	"player":       addPlayer,
	"input":        addInput,
	"orbit_input":  addOrbitInput,
	"transform":    addTransform,
	"mesh":         addMesh,
	"orbit_camera": addOrbitCamera,
	"point_light":  addPointLight,
	"world_bounds": addWorldBounds,
	"physics_body": addPhysicsBody,
}

var componentBuildOrder = []string{
	"name",
	"player_tag",
	"camera_tag",
	"prop_tag",
	"player",
	"input",
	"orbit_input",
	"transform",
	"mesh",
	"orbit_camera",
	"point_light",
	"world_bounds",
	"physics_body",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, prefabPath, spec)
}

func buildFromSpec(w *ecs.World, prefabPath string, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, names)
	}

	return e, nil
}

// SetEntityPosition moves an entity, adding a transform if it has none.
func SetEntityPosition(w *ecs.World, e ecs.Entity, pos mgl64.Vec3) error {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		t = &component.Transform{Rotation: mgl64.QuatIdent(), Scale: mgl64.Vec3{1, 1, 1}}
	}
	t.Position = pos
	return ecs.Add(w, e, component.TransformComponent, t)
}

func addName(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	name, ok := raw.(string)
	if !ok || name == "" {
		return fmt.Errorf("name must be a non-empty string")
	}
	return ecs.Add(w, e, component.NameComponent, &component.Name{Value: name})
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent, &component.CameraTag{})
}

func addPropTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PropTagComponent, &component.PropTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent, &component.Input{})
}

func addOrbitInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.OrbitInputComponent, &component.OrbitInput{})
}

type playerSpec = prefabs.PlayerComponentSpec

func playerFromSpec(spec playerSpec) component.Player {
	speed := spec.MoveSpeed
	if speed <= 0 {
		speed = 3
	}
	return component.Player{MoveSpeed: speed}
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	player := playerFromSpec(spec)
	return ecs.Add(w, e, component.PlayerComponent, &player)
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	scale := 1.0
	if spec.Scale != nil {
		scale = *spec.Scale
	}
	return ecs.Add(w, e, component.TransformComponent, &component.Transform{
		Position: mgl64.Vec3{spec.X, spec.Y, spec.Z},
		Rotation: mgl64.QuatRotate(mgl64.DegToRad(spec.YawDegrees), mgl64.Vec3{0, 1, 0}),
		Scale:    mgl64.Vec3{scale, scale, scale},
	})
}

type meshSpec = prefabs.MeshComponentSpec

func meshFromSpec(spec meshSpec) (component.Mesh, error) {
	mesh := component.Mesh{
		Shape:        component.MeshShape(spec.Shape),
		Size:         spec.Size,
		Color:        spec.Color.NRGBA,
		Subdivisions: spec.Subdivisions,
	}
	switch mesh.Shape {
	case "":
		mesh.Shape = component.MeshCube
	case component.MeshCube, component.MeshPlane:
	default:
		return component.Mesh{}, fmt.Errorf("unknown mesh shape %q", spec.Shape)
	}
	if mesh.Size <= 0 {
		mesh.Size = 1
	}
	if mesh.Subdivisions <= 0 {
		mesh.Subdivisions = 1
	}
	if mesh.Color == (color.NRGBA{}) {
		mesh.Color = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return mesh, nil
}

func addMesh(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[meshSpec](raw)
	if err != nil {
		return fmt.Errorf("decode mesh spec: %w", err)
	}
	mesh, err := meshFromSpec(spec)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.MeshComponent, &mesh)
}

type orbitCameraSpec = prefabs.OrbitCameraComponentSpec

const (
	defaultMinRadius         = 2.0
	defaultMaxRadius         = 20.0
	defaultRadius            = 6.0
	defaultScrollSensitivity = 60.0
	defaultFovDegrees        = 60.0
	defaultNear              = 0.1
	defaultFar               = 100.0
)

// orbitCameraFromSpec builds the camera around a target at the origin; the
// scene moves the target once the tracked entity is known.
func orbitCameraFromSpec(spec orbitCameraSpec) component.OrbitCamera {
	minR, maxR := spec.MinRadius, spec.MaxRadius
	if minR <= 0 {
		minR = defaultMinRadius
	}
	if maxR <= 0 {
		maxR = defaultMaxRadius
	}

	yaw := mgl64.DegToRad(spec.YawDegrees)
	pitch := mgl64.DegToRad(spec.PitchDegrees)
	radius := spec.Radius
	if spec.Eye != nil {
		yaw, pitch, radius = orbit.LookingAt(mgl64.Vec3{spec.Eye.X, spec.Eye.Y, spec.Eye.Z}, mgl64.Vec3{})
	}
	if radius <= 0 {
		radius = defaultRadius
	}

	sensitivity := spec.Sensitivity
	if sensitivity <= 0 {
		sensitivity = 1
	}
	scroll := spec.ScrollSensitivity
	if scroll <= 0 {
		scroll = defaultScrollSensitivity
	}
	button := component.OrbitButton(spec.Button)
	if button == "" {
		button = component.OrbitButtonRight
	}
	fov := spec.FovDegrees
	if fov <= 0 || fov >= 180 {
		fov = defaultFovDegrees
	}
	near, far := spec.Near, spec.Far
	if near <= 0 {
		near = defaultNear
	}
	if far <= near {
		far = math.Max(defaultFar, near*10)
	}

	state := orbit.New(mgl64.Vec3{}, yaw, pitch, radius, minR, maxR)
	return component.OrbitCamera{
		TargetName: spec.Target,
		State:      state,
		Spawn:      state,
		Tuning:     orbit.Tuning{Sensitivity: sensitivity, ScrollSensitivity: scroll},
		Button:     button,
		FovY:       mgl64.DegToRad(fov),
		Near:       near,
		Far:        far,
	}
}

// validateOrbitCameraSpec rejects values that would poison the orbit state.
func validateOrbitCameraSpec(spec orbitCameraSpec) error {
	fields := map[string]float64{
		"yaw_degrees":        spec.YawDegrees,
		"pitch_degrees":      spec.PitchDegrees,
		"radius":             spec.Radius,
		"min_radius":         spec.MinRadius,
		"max_radius":         spec.MaxRadius,
		"sensitivity":        spec.Sensitivity,
		"scroll_sensitivity": spec.ScrollSensitivity,
		"fov_degrees":        spec.FovDegrees,
		"near":               spec.Near,
		"far":                spec.Far,
	}
	if spec.Eye != nil {
		fields["eye.x"], fields["eye.y"], fields["eye.z"] = spec.Eye.X, spec.Eye.Y, spec.Eye.Z
	}
	names := make([]string, 0, len(fields))
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		sort.Strings(names)
		return fmt.Errorf("orbit camera: non-finite %v", names)
	}

	switch component.OrbitButton(spec.Button) {
	case "", component.OrbitButtonRight, component.OrbitButtonMiddle, component.OrbitButtonLeft, component.OrbitButtonAlways:
	default:
		return fmt.Errorf("unknown orbit button %q", spec.Button)
	}
	return nil
}

func addOrbitCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[orbitCameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode orbit camera spec: %w", err)
	}
	if err := validateOrbitCameraSpec(spec); err != nil {
		return err
	}
	cam := orbitCameraFromSpec(spec)
	if err := ecs.Add(w, e, component.OrbitCameraComponent, &cam); err != nil {
		return err
	}
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		t = &component.Transform{Scale: mgl64.Vec3{1, 1, 1}}
	}
	t.Position = cam.State.Position()
	t.Rotation = cam.State.Orientation
	return ecs.Add(w, e, component.TransformComponent, t)
}

type pointLightSpec = prefabs.PointLightComponentSpec

func pointLightFromSpec(spec pointLightSpec) component.PointLight {
	light := component.PointLight{Intensity: spec.Intensity, Range: spec.Range, Ambient: spec.Ambient}
	if light.Range <= 0 {
		light.Range = 20
	}
	light.Ambient = mgl64.Clamp(light.Ambient, 0, 1)
	return light
}

func addPointLight(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[pointLightSpec](raw)
	if err != nil {
		return fmt.Errorf("decode point light spec: %w", err)
	}
	light := pointLightFromSpec(spec)
	return ecs.Add(w, e, component.PointLightComponent, &light)
}

type worldBoundsSpec = prefabs.WorldBoundsComponentSpec

func addWorldBounds(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[worldBoundsSpec](raw)
	if err != nil {
		return fmt.Errorf("decode world bounds spec: %w", err)
	}
	if spec.Width <= 0 || spec.Depth <= 0 {
		return fmt.Errorf("world bounds must be positive, got %vx%v", spec.Width, spec.Depth)
	}
	return ecs.Add(w, e, component.WorldBoundsComponent, &component.WorldBounds{Width: spec.Width, Depth: spec.Depth})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Width <= 0 {
		spec.Width = 1
	}
	if spec.Depth <= 0 {
		spec.Depth = 1
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
		Width:      spec.Width,
		Depth:      spec.Depth,
		Mass:       spec.Mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
		Static:     spec.Static,
	})
}
