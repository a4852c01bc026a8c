package component

import "github.com/jakecoffman/cp"

// PhysicsBody is a box in the ground plane. Chipmunk's X/Y map to world X/Z.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Width      float64
	Depth      float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
