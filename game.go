package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/orbitdemo/common"
	"github.com/milk9111/orbitdemo/ecs"
	"github.com/milk9111/orbitdemo/ecs/entity"
	"github.com/milk9111/orbitdemo/ecs/system"
	"github.com/milk9111/orbitdemo/prefabs"
)

type Game struct {
	world     *ecs.World
	scene     *entity.Scene
	scheduler *ecs.Scheduler
	input     *system.InputSystem
	physics   *system.PhysicsSystem
	render    *system.RenderSystem
	hud       *system.HUDSystem

	pauseUI *ebitenui.UI
	paused  bool
	quit    bool
	debug   bool

	watcher *prefabs.Watcher
}

func NewGame(scenePath string, debug, watch bool) (*Game, error) {
	world := ecs.NewWorld()
	scene, err := entity.LoadScene(world, scenePath)
	if err != nil {
		return nil, fmt.Errorf("load scene %q: %w", scenePath, err)
	}
	if debug {
		log.Printf("scene %q: camera=%s player=%s props=%d", scene.Name, scene.Camera, scene.Player, len(scene.Props))
	}

	dt := 1.0 / float64(ebiten.TPS())
	input := system.NewInputSystem(system.EbitenInput{})
	input.SetViewport(common.BaseWidth, common.BaseHeight)
	physics := system.NewPhysicsSystem(dt)
	hud := system.NewHUDSystem(scene.Camera, scene.Player, debug)

	g := &Game{
		world: world,
		scene: scene,
		scheduler: ecs.NewScheduler(
			input,
			system.NewPlayerControllerSystem(scene.Camera, dt),
			physics,
			system.NewOrbitCameraSystem(scene.Camera, dt),
			system.NewCameraFollowSystem(scene.Camera, scene.Player),
			hud,
		),
		input:   input,
		physics: physics,
		render:  system.NewRenderSystem(scene.Camera, debug),
		hud:     hud,
		debug:   debug,
	}
	g.pauseUI = NewPauseUI(g)

	if watch {
		w, err := prefabs.NewWatcher(prefabs.Dir(), filepath.Join(prefabs.Dir(), "scripts"))
		if err != nil {
			log.Printf("prefab watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		g.Close()
		return ebiten.Termination
	}

	g.drainReloads()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if g.paused {
			g.resume()
		} else {
			g.paused = true
		}
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			handled, err := g.scene.Reload(g.world, name)
			if err != nil {
				log.Printf("hot reload %s: %v", name, err)
				continue
			}
			if handled {
				g.world.Events().Push(ecs.Event{Type: ecs.EventPrefabReloaded, Data: name})
				if g.debug {
					log.Printf("reloaded %s", name)
				}
			}
		case err := <-g.watcher.Errors:
			if err != nil {
				log.Printf("prefab watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) resume() {
	g.paused = false
	g.input.Resync()
}

// ResetCamera queues a camera reset for the next unpaused frame.
func (g *Game) ResetCamera() {
	g.world.Events().Push(ecs.Event{Type: ecs.EventCameraReset})
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("close prefab watcher: %v", err)
		}
		g.watcher = nil
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	if g.debug {
		system.DrawPhysicsDebug(g.physics.Space(), g.world, g.scene.Camera, screen)
	}
	g.hud.Draw(g.world, screen)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
