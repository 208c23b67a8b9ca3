package entity

import (
	"fmt"
	"math"

	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs"
	"github.com/milk9111/blobcaller/ecs/component"
	"github.com/milk9111/blobcaller/levels"
	"github.com/milk9111/blobcaller/prefabs"
)

const (
	defaultCameraHeight = 30.0
	defaultCameraZoom   = 24.0
)

// Level holds the handles a host needs after building a level.
type Level struct {
	Name   string
	Actor  ecs.Entity
	Camera ecs.Entity
	Tubes  map[string]ecs.Entity
	Sites  map[string]ecs.Entity

	Destructables map[string]ecs.Entity
	Turrets       map[string]ecs.Entity
}

// BuildLevel populates w from a level description. The world gets a fresh
// physics world for its queries.
func BuildLevel(w *ecs.World, lvl *levels.Level, actorSpec *prefabs.ActorSpec, followerSpec *prefabs.FollowerSpec, screenW, screenH float64) (*Level, error) {
	if lvl == nil {
		return nil, fmt.Errorf("level: nil level")
	}
	pw := ecs.NewPhysicsWorld()
	w.SetPhysicsWorld(pw)

	out := &Level{
		Name:  lvl.Name,
		Tubes: make(map[string]ecs.Entity, len(lvl.Tubes)),
		Sites: make(map[string]ecs.Entity, len(lvl.Sites)),

		Destructables: make(map[string]ecs.Entity, len(lvl.Destructables)),
		Turrets:       make(map[string]ecs.Entity, len(lvl.Turrets)),
	}

	for _, r := range lvl.Ground {
		e := w.CreateEntity()
		pw.AddGroundRegion(e, ecs.LayerGround, common.Vec3{X: r.MinX, Z: r.MinZ}, common.Vec3{X: r.MaxX, Z: r.MaxZ})
	}

	height, zoom := lvl.Camera.Height, lvl.Camera.Zoom
	if height <= 0 {
		height = defaultCameraHeight
	}
	if zoom <= 0 {
		zoom = defaultCameraZoom
	}
	out.Camera = w.CreateEntity()
	if err := ecs.Add(w, out.Camera, component.CameraComponent, &component.Camera{
		Position:     common.Vec3{X: lvl.Actor.X, Y: height, Z: lvl.Actor.Z},
		Zoom:         zoom,
		ScreenWidth:  screenW,
		ScreenHeight: screenH,
	}); err != nil {
		return nil, fmt.Errorf("level %s: add camera: %w", lvl.Name, err)
	}

	actor, err := NewActor(w, actorSpec, common.Vec3{X: lvl.Actor.X, Z: lvl.Actor.Z})
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", lvl.Name, err)
	}
	out.Actor = actor

	for _, spec := range lvl.Tubes {
		e, err := NewTube(w, spec)
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", lvl.Name, err)
		}
		out.Tubes[spec.Name] = e
	}

	for _, spec := range lvl.Sites {
		e, err := NewSite(w, spec, out.Tubes)
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", lvl.Name, err)
		}
		out.Sites[spec.Name] = e
	}

	for _, spec := range lvl.Destructables {
		e, err := NewDestructable(w, spec)
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", lvl.Name, err)
		}
		out.Destructables[spec.Name] = e
	}

	for _, spec := range lvl.Turrets {
		e, err := NewTurret(w, spec)
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", lvl.Name, err)
		}
		out.Turrets[spec.Name] = e
	}

	for _, group := range lvl.Followers {
		count := group.Count
		if count <= 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			angle := float64(i) * 2 * math.Pi / float64(count)
			pos := common.Vec3{
				X: group.X + math.Cos(angle)*group.Spread,
				Z: group.Z + math.Sin(angle)*group.Spread,
			}
			if _, err := NewFollower(w, followerSpec, pos); err != nil {
				return nil, fmt.Errorf("level %s: %w", lvl.Name, err)
			}
		}
	}

	return out, nil
}
