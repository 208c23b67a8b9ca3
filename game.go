package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/blobcaller/ecs"
	"github.com/milk9111/blobcaller/ecs/entity"
	"github.com/milk9111/blobcaller/ecs/system"
	"github.com/milk9111/blobcaller/levels"
	"github.com/milk9111/blobcaller/observer"
	"github.com/milk9111/blobcaller/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	// tubeReach is how close the actor must stand to a tube to send followers in.
	tubeReach = 3.0

	// snapshotEvery is the tick interval between published observer snapshots.
	snapshotEvery = 30
)

type Game struct {
	frames int
	tick   uint64

	levelName string
	debug     bool

	world      *ecs.World
	level      *entity.Level
	controller *system.ActionControllerSystem

	actorSpec    *prefabs.ActorSpec
	followerSpec *prefabs.FollowerSpec

	watcher  *prefabs.Watcher
	mods     *prefabs.ModTracker
	observer *observer.Server

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI

	status string
}

func NewGame(levelName string, debug bool) (*Game, error) {
	actorSpec, err := prefabs.LoadActorSpec()
	if err != nil {
		return nil, err
	}
	followerSpec, err := prefabs.LoadFollowerSpec()
	if err != nil {
		return nil, err
	}

	g := &Game{
		levelName:    levelName,
		debug:        debug,
		actorSpec:    actorSpec,
		followerSpec: followerSpec,
		mods:         prefabs.NewModTracker(),
	}
	if err := g.loadLevel(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

// loadLevel builds a fresh world for the current level name.
func (g *Game) loadLevel() error {
	lvl, err := levels.Load(g.levelName)
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	built, err := entity.BuildLevel(w, lvl, g.actorSpec, g.followerSpec, baseWidth, baseHeight)
	if err != nil {
		return err
	}

	controller := system.NewActionControllerSystem(nil)
	w.AddSystem(controller)
	w.AddSystem(system.NewFollowerSystem())
	w.AddSystem(system.NewNavigationSystem())
	w.AddSystem(system.NewCarrySystem())
	w.AddSystem(system.NewTurretSystem())
	w.AddSystem(system.NewBulletSystem())
	w.AddSystem(system.NewCameraSystem(built.Actor))

	g.world = w
	g.level = built
	g.controller = controller
	if g.paused {
		controller.SetPaused(w, built.Actor, true)
	}
	log.Printf("loaded level %s: %d entities", built.Name, w.EntityCount())
	return nil
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	if g.world != nil && g.level != nil {
		g.controller.SetPaused(g.world, g.level.Actor, paused)
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	g.applyChanges()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.frames++
	g.tick++

	g.pollInput()
	g.world.Update(1.0 / float64(ebiten.TPS()))
	g.flushEvents()
	if g.observer != nil && g.tick%snapshotEvery == 0 {
		g.observer.Publish(observer.TakeSnapshot(g.world, g.tick))
	}
	return nil
}

// flushEvents drains the tick's world events to the log and any observers.
func (g *Game) flushEvents() {
	events := g.world.Events().Drain()
	if len(events) == 0 {
		return
	}
	if g.debug {
		for _, evt := range events {
			log.Printf("tick %d: %s subject=%s other=%s %s", g.tick, evt.Kind, evt.Subject, evt.Other, evt.Detail)
		}
	}
	last := events[len(events)-1]
	g.status = fmt.Sprintf("%s %s", last.Kind, last.Detail)
	if g.observer != nil {
		g.observer.Broadcast(g.tick, events)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawWorld(screen, g.world)
	drawHUD(screen, g)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
