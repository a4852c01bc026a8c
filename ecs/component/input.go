package component

// Input stores per-frame movement intent for an entity. Forward and Strafe
// are in [-1, 1] and relative to the camera.
type Input struct {
	Forward float64
	Strafe  float64
}

var InputComponent = NewComponent[Input]()
