package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

type PropTag struct{}

var PropTagComponent = NewComponent[PropTag]()

// Name lets prefabs refer to each other, e.g. a camera's target.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
