package entity

import (
	"fmt"

	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs"
	"github.com/milk9111/blobcaller/ecs/component"
	"github.com/milk9111/blobcaller/prefabs"
	"golang.org/x/image/colornames"
)

// NewFollower creates an idle follower and registers it on the follower layer.
func NewFollower(w *ecs.World, spec *prefabs.FollowerSpec, pos common.Vec3) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("follower: nil spec")
	}

	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{Position: pos}); err != nil {
		return 0, fmt.Errorf("follower: add transform: %w", err)
	}
	follower := &component.Follower{State: component.FollowerIdle}
	ApplyFollowerSpec(follower, spec)
	if err := ecs.Add(w, e, component.FollowerComponent, follower); err != nil {
		return 0, fmt.Errorf("follower: add follower: %w", err)
	}
	if err := ecs.Add(w, e, component.AppearanceComponent, &component.Appearance{
		Radius: spec.Radius,
		Color:  spec.Color.Or(colornames.Chartreuse),
	}); err != nil {
		return 0, fmt.Errorf("follower: add appearance: %w", err)
	}

	if pw := w.PhysicsWorld(); pw != nil {
		pw.AddCircle(e, ecs.LayerFollower, pos, spec.Radius)
	}
	return e, nil
}

// ApplyFollowerSpec copies the tunable movement values onto a follower,
// leaving its state and ownership alone.
func ApplyFollowerSpec(f *component.Follower, spec *prefabs.FollowerSpec) {
	if f == nil || spec == nil {
		return
	}
	f.Speed = spec.Speed
	f.FollowDistance = spec.FollowDistance
	f.FlightTime = spec.FlightTime
	f.ArcHeight = spec.ArcHeight
	f.LandingReach = spec.LandingReach
}
