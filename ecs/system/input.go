package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/orbitdemo/ecs"
	"github.com/milk9111/orbitdemo/ecs/component"
	"github.com/milk9111/orbitdemo/orbit"
)

// InputSource is the slice of ebiten's input API the game reads.
type InputSource interface {
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
	IsMouseButtonPressed(button ebiten.MouseButton) bool
	CursorPosition() (x, y int)
	Wheel() (xoff, yoff float64)
}

// EbitenInput reads the live devices.
type EbitenInput struct{}

func (EbitenInput) IsKeyPressed(key ebiten.Key) bool { return ebiten.IsKeyPressed(key) }

func (EbitenInput) IsKeyJustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }

func (EbitenInput) IsMouseButtonPressed(button ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(button)
}

func (EbitenInput) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (EbitenInput) Wheel() (float64, float64) { return ebiten.Wheel() }

type InputSystem struct {
	source   InputSource
	viewport orbit.Viewport

	lastX, lastY int
	hasLast      bool
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

// SetViewport sets the extent used to normalize pointer deltas.
func (i *InputSystem) SetViewport(width, height float64) {
	i.viewport = orbit.Viewport{Width: width, Height: height}
}

// Resync forgets the last cursor position, so motion made while the world
// was not updating is not replayed as one orbit delta.
func (i *InputSystem) Resync() {
	if i == nil {
		return
	}
	i.hasLast = false
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || i.source == nil || w == nil {
		return
	}
	src := i.source

	var forward, strafe float64
	if src.IsKeyPressed(ebiten.KeyW) || src.IsKeyPressed(ebiten.KeyArrowUp) {
		forward += 1
	}
	if src.IsKeyPressed(ebiten.KeyS) || src.IsKeyPressed(ebiten.KeyArrowDown) {
		forward -= 1
	}
	if src.IsKeyPressed(ebiten.KeyD) || src.IsKeyPressed(ebiten.KeyArrowRight) {
		strafe += 1
	}
	if src.IsKeyPressed(ebiten.KeyA) || src.IsKeyPressed(ebiten.KeyArrowLeft) {
		strafe -= 1
	}

	ecs.ForEach(w, component.InputComponent, func(_ ecs.Entity, input *component.Input) {
		input.Forward = forward
		input.Strafe = strafe
	})

	if src.IsKeyJustPressed(ebiten.KeyR) {
		w.Events().Push(ecs.Event{Type: ecs.EventCameraReset})
	}

	cx, cy := src.CursorPosition()
	var dx, dy float64
	if i.hasLast {
		dx = float64(cx - i.lastX)
		dy = float64(cy - i.lastY)
	}
	i.lastX, i.lastY, i.hasLast = cx, cy, true
	_, scroll := src.Wheel()

	ecs.ForEach2(w, component.OrbitCameraComponent, component.OrbitInputComponent, func(_ ecs.Entity, oc *component.OrbitCamera, in *component.OrbitInput) {
		sample := orbit.InputSample{Scroll: scroll}
		if orbitHeld(src, oc.Button) {
			sample.PointerDX = dx
			sample.PointerDY = dy
		}
		in.Sample = in.Sample.Add(sample)
		in.Viewport = i.viewport
	})
}

func orbitHeld(src InputSource, button component.OrbitButton) bool {
	switch button {
	case component.OrbitButtonAlways:
		return true
	case component.OrbitButtonLeft:
		return src.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	case component.OrbitButtonMiddle:
		return src.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	default:
		return src.IsMouseButtonPressed(ebiten.MouseButtonRight)
	}
}
