package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X          float64  `yaml:"x"`
	Y          float64  `yaml:"y"`
	Z          float64  `yaml:"z"`
	YawDegrees float64  `yaml:"yaw_degrees"`
	Scale      *float64 `yaml:"scale"`
}

type MeshComponentSpec struct {
	Shape        string    `yaml:"shape"`
	Size         float64   `yaml:"size"`
	Color        YAMLColor `yaml:"color"`
	Subdivisions int       `yaml:"subdivisions"`
}

type PlayerComponentSpec struct {
	MoveSpeed float64 `yaml:"move_speed"`
}

type PhysicsBodyComponentSpec struct {
	Width      float64 `yaml:"width"`
	Depth      float64 `yaml:"depth"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	Static     bool    `yaml:"static"`
}

type PointLightComponentSpec struct {
	Intensity float64 `yaml:"intensity"`
	Range     float64 `yaml:"range"`
	Ambient   float64 `yaml:"ambient"`
}

type WorldBoundsComponentSpec struct {
	Width float64 `yaml:"width"`
	Depth float64 `yaml:"depth"`
}

// OrbitCameraComponentSpec describes the spawn orbit either with angles or
// with an Eye position relative to the target. Eye wins when both are set.
type OrbitCameraComponentSpec struct {
	Target            string    `yaml:"target"`
	Eye               *Vec3Spec `yaml:"eye"`
	YawDegrees        float64   `yaml:"yaw_degrees"`
	PitchDegrees      float64   `yaml:"pitch_degrees"`
	Radius            float64   `yaml:"radius"`
	MinRadius         float64   `yaml:"min_radius"`
	MaxRadius         float64   `yaml:"max_radius"`
	Sensitivity       float64   `yaml:"sensitivity"`
	ScrollSensitivity float64   `yaml:"scroll_sensitivity"`
	Button            string    `yaml:"button"`
	FovDegrees        float64   `yaml:"fov_degrees"`
	Near              float64   `yaml:"near"`
	Far               float64   `yaml:"far"`
}
