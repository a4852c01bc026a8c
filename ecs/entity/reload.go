package entity

import (
	"fmt"

	"github.com/milk9111/orbitdemo/ecs"
	"github.com/milk9111/orbitdemo/ecs/component"
	"github.com/milk9111/orbitdemo/prefabs"
)

type componentReloadFn func(w *ecs.World, e ecs.Entity, raw any) error

// reloadRegistry lists the components whose tuning can change while the game
// runs. Components that carry runtime state (transforms, bodies, tags) are
// left alone.
var reloadRegistry = map[string]componentReloadFn{
	"player":       reloadPlayer,
	"mesh":         reloadMesh,
	"orbit_camera": reloadOrbitCamera,
	"point_light":  reloadPointLight,
}

// Reload re-reads prefabPath and applies its tunable components to e.
func Reload(w *ecs.World, e ecs.Entity, prefabPath string) error {
	if !w.IsAlive(e) {
		return fmt.Errorf("reload %q: %w", prefabPath, component.ErrEntityNotAlive)
	}
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return fmt.Errorf("reload %q: %w", prefabPath, err)
	}
	for name, raw := range spec.Components {
		fn, ok := reloadRegistry[name]
		if !ok {
			continue
		}
		if err := fn(w, e, raw); err != nil {
			return fmt.Errorf("reload %q: %s: %w", prefabPath, name, err)
		}
	}
	return nil
}

func reloadPlayer(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return err
	}
	player, ok := ecs.Get(w, e, component.PlayerComponent)
	if !ok {
		return nil
	}
	*player = playerFromSpec(spec)
	return nil
}

func reloadMesh(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[meshSpec](raw)
	if err != nil {
		return err
	}
	mesh, err := meshFromSpec(spec)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.MeshComponent, &mesh)
}

func reloadPointLight(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[pointLightSpec](raw)
	if err != nil {
		return err
	}
	light := pointLightFromSpec(spec)
	return ecs.Add(w, e, component.PointLightComponent, &light)
}

// reloadOrbitCamera swaps tuning, bounds and projection while keeping the
// live orientation and target. The radius is re-clamped to the new bounds.
func reloadOrbitCamera(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[orbitCameraSpec](raw)
	if err != nil {
		return err
	}
	if err := validateOrbitCameraSpec(spec); err != nil {
		return err
	}
	oc, ok := ecs.Get(w, e, component.OrbitCameraComponent)
	if !ok {
		return nil
	}
	next := orbitCameraFromSpec(spec)

	state := oc.State
	state.MinRadius = next.State.MinRadius
	state.MaxRadius = next.State.MaxRadius
	state.Zoom(0, 0, 0)

	next.Spawn.Target = oc.Spawn.Target
	next.TargetName = oc.TargetName
	next.State = state
	*oc = next
	return nil
}
