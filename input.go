package main

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs"
	"github.com/milk9111/blobcaller/ecs/component"
	"github.com/milk9111/blobcaller/ecs/system"
)

const stickDeadzone = 0.2

// pollInput turns keyboard, mouse and gamepad state into controller intents.
func (g *Game) pollInput() {
	w, actor := g.world, g.level.Actor

	moveX, moveY := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		moveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		moveY += 1
	}
	if l := math.Hypot(moveX, moveY); l > 1 {
		moveX, moveY = moveX/l, moveY/l
	}

	start := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	cancel := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	sendAll := inpututil.IsKeyJustPressed(ebiten.KeyE)

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			moveX, moveY = lx, ly
		}
		start = start || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		cancel = cancel || inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonRightBottom)
		sendAll = sendAll || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
	}

	cx, cy := ebiten.CursorPosition()
	pointer := common.Vec2{X: float64(cx), Y: float64(cy)}

	g.controller.OnMovement(w, actor, moveX, moveY)
	g.controller.OnPointer(w, actor, pointer)
	if start {
		g.controller.OnTargetedAction(w, actor, component.PhaseStarted, pointer)
	}
	if cancel {
		g.controller.OnTargetedAction(w, actor, component.PhaseCanceled, pointer)
	}
	if sendAll {
		g.sendToNearestTube()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.copySnapshot()
	}
}

// sendToNearestTube empties the roster into a tube within reach.
func (g *Game) sendToNearestTube() {
	w := g.world
	tr, ok := ecs.Get(w, g.level.Actor, component.TransformComponent)
	if !ok {
		return
	}
	best, bestDist := ecs.Entity(0), math.Inf(1)
	for _, tube := range g.level.Tubes {
		tubeTr, ok := ecs.Get(w, tube, component.TransformComponent)
		if !ok {
			continue
		}
		if d := common.Distance(tr.Position, tubeTr.Position); d <= tubeReach && d < bestDist {
			best, bestDist = tube, d
		}
	}
	if !best.Valid() {
		return
	}
	if n := system.SendAllToTube(w, g.level.Actor, best); n > 0 && g.debug {
		log.Printf("sent %d followers to tube %s", n, best)
	}
}
