package component

// WorldBounds walls off a rectangle of the ground plane centered on the
// entity's transform.
type WorldBounds struct {
	Width float64
	Depth float64
}

var WorldBoundsComponent = NewComponent[WorldBounds]()
