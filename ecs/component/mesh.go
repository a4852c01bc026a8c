package component

import "image/color"

type MeshShape string

const (
	MeshCube  MeshShape = "cube"
	MeshPlane MeshShape = "plane"
)

// Mesh is a primitive drawn at the entity's transform. Size is the cube edge
// or the plane side. Plane meshes are split into Subdivisions² tiles.
type Mesh struct {
	Shape        MeshShape
	Size         float64
	Color        color.NRGBA
	Subdivisions int
}

var MeshComponent = NewComponent[Mesh]()
