package entity

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orbitdemo/ecs"
	"github.com/milk9111/orbitdemo/ecs/component"
	"github.com/milk9111/orbitdemo/prefabs"
)

const defaultFloorSize = 15.0

// Scene is the set of entities spawned from a scene prefab. Camera and Player
// are resolved once here so systems never have to search for them.
type Scene struct {
	Name    string
	Camera  ecs.Entity
	Player  ecs.Entity
	Prefabs map[string]ecs.Entity
	Props   []ecs.Entity

	props prefabs.PropsSpec
}

// LoadScene spawns every entity listed by the scene prefab, lays out props
// from the scene's script and points the camera at its target.
func LoadScene(w *ecs.World, scenePath string) (*Scene, error) {
	spec, err := prefabs.LoadSceneSpec(scenePath)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	scene := &Scene{Name: spec.Name, Prefabs: make(map[string]ecs.Entity, len(spec.Entities)), props: spec.Props}
	for _, prefab := range spec.Entities {
		e, err := BuildEntity(w, prefab)
		if err != nil {
			return nil, fmt.Errorf("scene %q: %w", spec.Name, err)
		}
		scene.Prefabs[prefab] = e
	}

	if spec.Props.Script != "" {
		props, err := spawnProps(w, spec.Props, floorSize(w))
		if err != nil {
			return nil, fmt.Errorf("scene %q: props: %w", spec.Name, err)
		}
		scene.Props = props
	}

	if cam, ok := w.First(component.CameraTagComponent.Kind()); ok {
		scene.Camera = cam
	}
	if player, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		scene.Player = player
	}
	if target, ok := resolveCameraTarget(w, scene.Camera); ok {
		scene.Player = target
	}
	return scene, nil
}

// Reload applies a changed prefab or script to the live scene. Prefabs
// listed by the scene are re-tuned in place; the props script and prop
// prefab respawn every prop. It reports whether name belonged to the scene.
func (s *Scene) Reload(w *ecs.World, name string) (bool, error) {
	if e, ok := s.Prefabs[name]; ok {
		return true, Reload(w, e, name)
	}
	if s.props.Script == "" {
		return false, nil
	}
	prefab := s.props.Prefab
	if prefab == "" {
		prefab = "prop.yaml"
	}
	if name != s.props.Script && name != prefab {
		return false, nil
	}
	return true, s.RespawnProps(w)
}

// RespawnProps destroys the current props and lays them out again from the
// props script. The old props are kept if the script fails.
func (s *Scene) RespawnProps(w *ecs.World) error {
	if s.props.Script == "" {
		return nil
	}
	scratch := ecs.NewWorld()
	if _, err := spawnProps(scratch, s.props, floorSize(w)); err != nil {
		return fmt.Errorf("scene %q: props: %w", s.Name, err)
	}
	for _, e := range s.Props {
		w.DestroyEntity(e)
	}
	props, err := spawnProps(w, s.props, floorSize(w))
	if err != nil {
		return fmt.Errorf("scene %q: props: %w", s.Name, err)
	}
	s.Props = props
	return nil
}

// FindByName returns the first live entity whose Name matches.
func FindByName(w *ecs.World, name string) (ecs.Entity, bool) {
	if name == "" {
		return 0, false
	}
	for _, e := range w.Query(component.NameComponent.Kind()) {
		if n, ok := ecs.Get(w, e, component.NameComponent); ok && n.Value == name {
			return e, true
		}
	}
	return 0, false
}

// resolveCameraTarget snaps the camera's orbit onto its named target and
// returns the target entity.
func resolveCameraTarget(w *ecs.World, cam ecs.Entity) (ecs.Entity, bool) {
	oc, ok := ecs.Get(w, cam, component.OrbitCameraComponent)
	if !ok {
		return 0, false
	}
	target, ok := FindByName(w, oc.TargetName)
	if !ok {
		log.Printf("scene: camera target %q not found, orbiting the origin", oc.TargetName)
		return 0, false
	}
	if t, ok := ecs.Get(w, target, component.TransformComponent); ok {
		oc.State.Follow(t.Position)
		oc.Spawn.Follow(t.Position)
		if camT, ok := ecs.Get(w, cam, component.TransformComponent); ok {
			camT.Position = oc.State.Position()
			camT.Rotation = oc.State.Orientation
		}
	}
	return target, true
}

func floorSize(w *ecs.World) float64 {
	if e, ok := w.First(component.WorldBoundsComponent.Kind()); ok {
		if b, ok := ecs.Get(w, e, component.WorldBoundsComponent); ok {
			return min(b.Width, b.Depth)
		}
	}
	return defaultFloorSize
}

// PropPlacement is one prop produced by a layout script.
type PropPlacement struct {
	X     float64
	Z     float64
	Size  float64
	Color string
}

// RunPropsScript evaluates a tengo layout script. The script sees
// floor_size and must leave an array of {x, z, size, color} maps in `props`.
func RunPropsScript(src []byte, floor float64) ([]PropPlacement, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math"))
	if err := script.Add("floor_size", floor); err != nil {
		return nil, err
	}

	compiled, err := script.Run()
	if err != nil {
		return nil, err
	}
	if !compiled.IsDefined("props") {
		return nil, fmt.Errorf("script does not define props")
	}

	raw := compiled.Get("props").Array()
	out := make([]PropPlacement, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("props[%d]: expected map, got %T", i, item)
		}
		p := PropPlacement{
			X:    toFloat(m["x"]),
			Z:    toFloat(m["z"]),
			Size: toFloat(m["size"]),
		}
		if c, ok := m["color"].(string); ok {
			p.Color = c
		}
		if p.Size <= 0 {
			p.Size = 1
		}
		out = append(out, p)
	}
	return out, nil
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

func spawnProps(w *ecs.World, spec prefabs.PropsSpec, floor float64) ([]ecs.Entity, error) {
	src, err := prefabs.LoadScript(spec.Script)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", spec.Script, err)
	}
	placements, err := RunPropsScript(src, floor)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", spec.Script, err)
	}

	prefab := spec.Prefab
	if prefab == "" {
		prefab = "prop.yaml"
	}
	template, err := prefabs.LoadEntityBuildSpec(prefab)
	if err != nil {
		return nil, err
	}

	props := make([]ecs.Entity, 0, len(placements))
	for i, p := range placements {
		e, err := buildFromSpec(w, prefab, template)
		if err != nil {
			return nil, err
		}
		if err := placeProp(w, e, p); err != nil {
			return nil, fmt.Errorf("prop %d: %w", i, err)
		}
		props = append(props, e)
	}
	return props, nil
}

func placeProp(w *ecs.World, e ecs.Entity, p PropPlacement) error {
	if err := SetEntityPosition(w, e, mgl64.Vec3{p.X, p.Size / 2, p.Z}); err != nil {
		return err
	}
	if mesh, ok := ecs.Get(w, e, component.MeshComponent); ok {
		mesh.Size = p.Size
		if p.Color != "" {
			c, err := prefabs.ParseColor(p.Color)
			if err != nil {
				return err
			}
			mesh.Color = c
		}
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok {
		body.Width = p.Size
		body.Depth = p.Size
	}
	return nil
}
