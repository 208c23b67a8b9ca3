package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs"
	"github.com/milk9111/blobcaller/ecs/component"
)

var (
	groundColor    = colornames.Darkolivegreen
	targetColor    = colornames.Gold
	callRangeColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x90}
	liftColor      = colornames.White

	healthColor     = colornames.Limegreen
	healthBackColor = colornames.Black
)

func drawWorld(screen *ebiten.Image, w *ecs.World) {
	screen.Fill(groundColor)
	if w == nil {
		return
	}
	var cam *component.Camera
	ecs.Each(w, component.CameraComponent, func(_ ecs.Entity, c *component.Camera) {
		if cam == nil {
			cam = c
		}
	})
	if cam == nil {
		return
	}

	ecs.Each(w, component.AppearanceComponent, func(e ecs.Entity, a *component.Appearance) {
		tr, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		p := cam.WorldToScreen(tr.Position)
		r := float32(a.Radius * cam.Zoom)
		vector.FillCircle(screen, float32(p.X), float32(p.Y), r, a.Color, true)

		if site, ok := ecs.Get(w, e, component.SiteComponent); ok {
			drawSite(screen, w, e, site, p, r)
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent); ok {
			drawHealth(screen, h, p, r)
		}
	})

	ecs.Each(w, component.ActorComponent, func(_ ecs.Entity, actor *component.Actor) {
		drawIndicators(screen, w, cam, actor)
	})
}

func drawSite(screen *ebiten.Image, w *ecs.World, e ecs.Entity, site *component.Site, p common.Vec2, r float32) {
	if carry, ok := ecs.Get(w, e, component.CarryComponent); ok && carry.Lifted {
		vector.StrokeCircle(screen, float32(p.X), float32(p.Y), r+3, 2, liftColor, true)
	}
	if site.Disabled || !site.PromptVisible {
		return
	}
	label := fmt.Sprintf("%s %d/%d", site.Name, site.AssignedCount(), site.Required)
	ebitenutil.DebugPrintAt(screen, label, int(p.X)-len(label)*3, int(p.Y)-int(r)-16)
}

func drawHealth(screen *ebiten.Image, h *component.Health, p common.Vec2, r float32) {
	x, y := float32(p.X)-r, float32(p.Y)+r+4
	vector.FillRect(screen, x, y, 2*r, 4, healthBackColor, false)
	vector.FillRect(screen, x, y, 2*r*float32(h.Fraction()), 4, healthColor, false)
}

func drawIndicators(screen *ebiten.Image, w *ecs.World, cam *component.Camera, actor *component.Actor) {
	if ind, ok := ecs.Get(w, actor.TargetIndicator, component.IndicatorComponent); ok && ind.Active {
		p := cam.WorldToScreen(ind.Position)
		vector.StrokeCircle(screen, float32(p.X), float32(p.Y), float32(0.5*cam.Zoom), 2, targetColor, true)
	}
	if ind, ok := ecs.Get(w, actor.CallIndicator, component.IndicatorComponent); ok && ind.Active {
		radius := ind.Scale.X
		if actor.Tuning.IndicatorScale != component.IndicatorRadius {
			radius /= 2
		}
		p := cam.WorldToScreen(ind.Position)
		vector.StrokeCircle(screen, float32(p.X), float32(p.Y), float32(radius*cam.Zoom), 2, callRangeColor, true)
	}
}

func drawHUD(screen *ebiten.Image, g *Game) {
	followers := 0
	state := component.ActionNone
	if actor, ok := ecs.Get(g.world, g.level.Actor, component.ActorComponent); ok {
		followers = actor.CurrentFollowerAmount()
		state = actor.State
	}
	msg := fmt.Sprintf("Level: %s    FPS: %.2f\nFollowers: %d    Action: %s", g.level.Name, ebiten.ActualFPS(), followers, state)
	if g.debug {
		msg += fmt.Sprintf("\nTick: %d    Entities: %d    %s", g.tick, g.world.EntityCount(), g.status)
		if g.observer != nil {
			msg += fmt.Sprintf("    Observers: %d", g.observer.ClientCount())
		}
	}
	ebitenutil.DebugPrint(screen, msg)
}
