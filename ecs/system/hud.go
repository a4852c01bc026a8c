package system

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/orbitdemo/ecs"
	"github.com/milk9111/orbitdemo/ecs/component"
)

const (
	controlsText = "WASD move  RMB drag orbit  wheel zoom  R reset  Esc pause"
	// noticeFrames is how long a reload notice stays up, in ticks.
	noticeFrames = 120
)

// HUDSystem prints the control hints and, in debug mode, the live camera and
// player numbers.
type HUDSystem struct {
	camera ecs.Entity
	player ecs.Entity
	debug  bool

	notice      string
	noticeTicks int
}

func NewHUDSystem(camera, player ecs.Entity, debug bool) *HUDSystem {
	return &HUDSystem{camera: camera, player: player, debug: debug}
}

// Update picks up reload events so the HUD can report them.
func (h *HUDSystem) Update(w *ecs.World) {
	if h == nil || w == nil {
		return
	}
	if h.noticeTicks > 0 {
		h.noticeTicks--
	}
	for _, evt := range w.Events().Of(ecs.EventPrefabReloaded) {
		h.notice = fmt.Sprintf("Reloaded %v", evt.Data)
		h.noticeTicks = noticeFrames
	}
}

// Notice returns the reload message while it is still showing.
func (h *HUDSystem) Notice() string {
	if h == nil || h.noticeTicks <= 0 {
		return ""
	}
	return h.notice
}

func (h *HUDSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if h == nil || w == nil || screen == nil {
		return
	}
	ebitenutil.DebugPrintAt(screen, controlsText, 10, screen.Bounds().Dy()-20)
	if notice := h.Notice(); notice != "" {
		ebitenutil.DebugPrintAt(screen, notice, 10, screen.Bounds().Dy()-36)
	}
	if !h.debug {
		return
	}
	ebitenutil.DebugPrintAt(screen, h.Text(w, ebiten.ActualFPS()), 10, 10)
}

// Text formats the debug readout.
func (h *HUDSystem) Text(w *ecs.World, fps float64) string {
	text := fmt.Sprintf("FPS: %.1f", fps)
	if oc, ok := ecs.Get(w, h.camera, component.OrbitCameraComponent); ok && w.IsAlive(h.camera) {
		yaw, pitch := oc.State.YawPitch()
		text += fmt.Sprintf("\nRadius: %.2f [%.1f, %.1f]\nYaw: %.1f  Pitch: %.1f",
			oc.State.Radius, oc.State.MinRadius, oc.State.MaxRadius,
			mgl64.RadToDeg(yaw), mgl64.RadToDeg(pitch))
	}
	if t, ok := ecs.Get(w, h.player, component.TransformComponent); ok && w.IsAlive(h.player) {
		text += fmt.Sprintf("\nPlayer: (%.2f, %.2f, %.2f)", t.Position.X(), t.Position.Y(), t.Position.Z())
	}
	return text
}
