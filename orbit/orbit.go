// Package orbit holds the math for a camera that circles a target point.
//
// The functions here are pure: callers pass the current state plus one frame's
// input and get the next state back. Nothing in this package knows about
// entities, windows or the input devices that produced the deltas.
package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	worldUp    = mgl64.Vec3{0, 1, 0}
	localRight = mgl64.Vec3{1, 0, 0}
	localBack  = mgl64.Vec3{0, 0, 1}
)

// maxPitch keeps constructed orientations strictly off the pole.
const maxPitch = math.Pi/2 - 1e-3

// InputSample is the pointer and wheel motion collected over a single frame.
type InputSample struct {
	PointerDX float64
	PointerDY float64
	Scroll    float64
}

// Add sums two samples. Events arriving within one frame are folded together
// before the state is stepped.
func (s InputSample) Add(o InputSample) InputSample {
	return InputSample{
		PointerDX: s.PointerDX + o.PointerDX,
		PointerDY: s.PointerDY + o.PointerDY,
		Scroll:    s.Scroll + o.Scroll,
	}
}

func (s InputSample) IsZero() bool {
	return s.PointerDX == 0 && s.PointerDY == 0 && s.Scroll == 0
}

// Viewport is the extent used to turn pixel deltas into angles.
type Viewport struct {
	Width  float64
	Height float64
}

// Tuning scales raw input before it reaches the state.
type Tuning struct {
	Sensitivity       float64
	ScrollSensitivity float64
}

// State is the orbit of one camera around its target.
type State struct {
	Target      mgl64.Vec3
	Radius      float64
	MinRadius   float64
	MaxRadius   float64
	Orientation mgl64.Quat
}

// New builds a state from yaw (around world up) and pitch (around the local
// right axis), both in radians. Negative pitch puts the camera above the
// target. Pitch is clamped off the pole and radius into [minRadius, maxRadius].
func New(target mgl64.Vec3, yaw, pitch, radius, minRadius, maxRadius float64) State {
	if minRadius > maxRadius {
		minRadius, maxRadius = maxRadius, minRadius
	}
	pitch = mgl64.Clamp(pitch, -maxPitch, maxPitch)
	q := mgl64.QuatRotate(yaw, worldUp).Mul(mgl64.QuatRotate(pitch, localRight)).Normalize()
	return State{
		Target:      target,
		Radius:      mgl64.Clamp(radius, minRadius, maxRadius),
		MinRadius:   minRadius,
		MaxRadius:   maxRadius,
		Orientation: q,
	}
}

// Up returns the camera up vector for orientation q.
func Up(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(worldUp)
}

// Rotate applies one frame of pointer motion to q. Horizontal motion spins
// around world up, vertical motion tilts around the camera's own right axis.
// Yaw is always applied. The pitch part is dropped when it would push the up
// vector to or below the horizon.
func Rotate(q mgl64.Quat, dx, dy float64, vp Viewport, sensitivity float64) mgl64.Quat {
	var yawDelta, pitchDelta float64
	if vp.Width > 0 {
		yawDelta = dx / vp.Width * 2 * math.Pi * sensitivity
	}
	if vp.Height > 0 {
		pitchDelta = dy / vp.Height * math.Pi * sensitivity
	}
	if yawDelta == 0 && pitchDelta == 0 || !finite(yawDelta) || !finite(pitchDelta) {
		return q
	}

	yawed := mgl64.QuatRotate(-yawDelta, worldUp).Mul(q)
	if pitchDelta != 0 {
		candidate := yawed.Mul(mgl64.QuatRotate(-pitchDelta, localRight)).Normalize()
		if Up(candidate).Y() > 0 {
			return candidate
		}
	}
	return yawed.Normalize()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Zoom moves radius by the frame's scroll and clamps it into [minRadius,
// maxRadius]. Positive scroll pulls the camera in.
func Zoom(radius, scroll, scrollSensitivity, dt, minRadius, maxRadius float64) float64 {
	if minRadius > maxRadius {
		minRadius, maxRadius = maxRadius, minRadius
	}
	next := radius - scroll*scrollSensitivity*dt
	if math.IsNaN(next) {
		next = radius
	}
	return mgl64.Clamp(next, minRadius, maxRadius)
}

// Offset is the camera position relative to the target.
func Offset(q mgl64.Quat, radius float64) mgl64.Vec3 {
	return q.Rotate(localBack.Mul(radius))
}

// Position is the camera's world position.
func (s State) Position() mgl64.Vec3 {
	return s.Target.Add(Offset(s.Orientation, s.Radius))
}

// Rotate applies pointer motion to the orientation.
func (s *State) Rotate(in InputSample, vp Viewport, sensitivity float64) {
	s.Orientation = Rotate(s.Orientation, in.PointerDX, in.PointerDY, vp, sensitivity)
}

// Zoom applies wheel motion to the radius.
func (s *State) Zoom(scroll, scrollSensitivity, dt float64) {
	s.Radius = Zoom(s.Radius, scroll, scrollSensitivity, dt, s.MinRadius, s.MaxRadius)
}

// Follow snaps the target to p and returns the recomputed camera position.
func (s *State) Follow(p mgl64.Vec3) mgl64.Vec3 {
	s.Target = p
	return s.Position()
}

// Step runs one frame: rotation, then zoom, then follow. It returns the
// camera's world position and orientation.
func (s *State) Step(in InputSample, target mgl64.Vec3, vp Viewport, t Tuning, dt float64) (mgl64.Vec3, mgl64.Quat) {
	s.Rotate(in, vp, t.Sensitivity)
	s.Zoom(in.Scroll, t.ScrollSensitivity, dt)
	return s.Follow(target), s.Orientation
}

// YawPitch reports the orbit angles in radians. Pitch is the elevation of the
// camera above the target's horizontal plane.
func (s State) YawPitch() (yaw, pitch float64) {
	d := Offset(s.Orientation, 1)
	yaw = math.Atan2(d.X(), d.Z())
	pitch = math.Asin(mgl64.Clamp(d.Y(), -1, 1))
	return yaw, pitch
}

// LookingAt returns the yaw, pitch and radius that place a camera at eye
// looking at target, in the convention New expects.
func LookingAt(eye, target mgl64.Vec3) (yaw, pitch, radius float64) {
	d := eye.Sub(target)
	radius = d.Len()
	if radius == 0 {
		return 0, 0, 0
	}
	yaw = math.Atan2(d.X(), d.Z())
	pitch = -math.Asin(mgl64.Clamp(d.Y()/radius, -1, 1))
	return yaw, pitch, radius
}
