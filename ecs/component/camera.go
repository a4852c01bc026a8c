package component

import "github.com/milk9111/orbitdemo/orbit"

// OrbitButton selects when pointer motion turns the camera.
type OrbitButton string

const (
	OrbitButtonRight  OrbitButton = "right"
	OrbitButtonMiddle OrbitButton = "middle"
	OrbitButtonLeft   OrbitButton = "left"
	OrbitButtonAlways OrbitButton = "always"
)

// OrbitCamera is the orbit of a camera around the entity named by TargetName.
// Spawn holds the orbit the camera was built with, used by camera resets.
type OrbitCamera struct {
	TargetName string
	State      orbit.State
	Spawn      orbit.State
	Tuning     orbit.Tuning
	Button     OrbitButton
	FovY       float64
	Near       float64
	Far        float64
}

// OrbitInput is the input sample waiting to be applied to an OrbitCamera.
// It is zeroed once consumed.
type OrbitInput struct {
	Sample   orbit.InputSample
	Viewport orbit.Viewport
}

var OrbitCameraComponent = NewComponent[OrbitCamera]()
var OrbitInputComponent = NewComponent[OrbitInput]()
