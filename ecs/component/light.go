package component

type PointLight struct {
	Intensity float64
	Range     float64
	Ambient   float64
}

var PointLightComponent = NewComponent[PointLight]()
