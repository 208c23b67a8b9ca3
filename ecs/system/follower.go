package system

import (
	"math"

	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs"
	"github.com/milk9111/blobcaller/ecs/component"
)

// ClaimFollower moves a follower into the actor's roster and starts it
// following. It fails when the roster is full.
func ClaimFollower(w *ecs.World, actorEnt, followerEnt ecs.Entity) bool {
	actor, ok := ecs.Get(w, actorEnt, component.ActorComponent)
	if !ok || !actor.HasRoom() {
		return false
	}
	follower, ok := ecs.Get(w, followerEnt, component.FollowerComponent)
	if !ok {
		return false
	}
	releaseFollower(w, followerEnt, follower)
	if !actor.AddFollower(followerEnt) {
		return false
	}
	follower.Owner = component.Owner{Kind: component.OwnerActor, Entity: actorEnt}
	follower.StartFollowing(actorEnt)
	w.Events().Push(ecs.Event{Kind: ecs.EventFollowerClaimed, Subject: followerEnt, Other: actorEnt})
	return true
}

// ThrowFollower hands a follower from the actor to the world as a projectile.
func ThrowFollower(w *ecs.World, actorEnt, followerEnt ecs.Entity, from, to common.Vec3) {
	follower, ok := ecs.Get(w, followerEnt, component.FollowerComponent)
	if !ok {
		return
	}
	if actor, ok := ecs.Get(w, actorEnt, component.ActorComponent); ok {
		actor.RemoveFollower(followerEnt)
	}
	follower.GetThrown(from, to)
	w.Events().Push(ecs.Event{Kind: ecs.EventFollowerThrown, Subject: followerEnt, Other: actorEnt})
}

// SendOneToTube sends the actor's oldest follower to a tube.
func SendOneToTube(w *ecs.World, actorEnt, tubeEnt ecs.Entity) bool {
	actor, ok := ecs.Get(w, actorEnt, component.ActorComponent)
	if !ok {
		return false
	}
	if !ecs.Has(w, tubeEnt, component.TubeComponent) {
		return false
	}
	e, ok := actor.PopFollower()
	if !ok {
		return false
	}
	if follower, ok := ecs.Get(w, e, component.FollowerComponent); ok {
		follower.StartFollowing(tubeEnt)
		follower.State = component.FollowerInTransitToSite
		follower.Owner = component.Owner{Kind: component.OwnerTube, Entity: tubeEnt}
	}
	return true
}

// SendAllToTube empties the actor's roster into a tube.
func SendAllToTube(w *ecs.World, actorEnt, tubeEnt ecs.Entity) int {
	n := 0
	for SendOneToTube(w, actorEnt, tubeEnt) {
		n++
	}
	return n
}

// FollowerSystem moves followers according to their state: trailing their
// anchor, flying after a throw, sitting at their site slot, or heading into a
// tube.
type FollowerSystem struct{}

func NewFollowerSystem() *FollowerSystem {
	return &FollowerSystem{}
}

func (s *FollowerSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	ecs.Each(w, component.FollowerComponent, func(e ecs.Entity, f *component.Follower) {
		tr, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		switch f.State {
		case component.FollowerFollowing:
			if anchor, ok := ecs.Get(w, f.Anchor, component.TransformComponent); ok {
				tr.Position = approach(tr.Position, anchor.Position, f.FollowDistance, f.Speed*dt)
			}
		case component.FollowerThrown:
			if s.fly(f, tr, dt) {
				s.land(w, e, f, tr)
			}
		case component.FollowerInTransitToSite:
			anchor, ok := ecs.Get(w, f.Anchor, component.TransformComponent)
			if !ok {
				f.State = component.FollowerIdle
				f.Owner = component.Owner{}
				break
			}
			tr.Position = common.MoveTowards(tr.Position, anchor.Position, f.Speed*dt)
			if tube, ok := ecs.Get(w, f.Anchor, component.TubeComponent); ok && common.Distance(tr.Position, anchor.Position) <= tube.Radius {
				tubeEnt := f.Anchor
				w.DestroyEntity(e)
				w.Events().Push(ecs.Event{Kind: ecs.EventFollowerConsumed, Subject: e, Other: tubeEnt})
				return
			}
		default:
			if f.Owner.Kind == component.OwnerSite {
				if siteTr, ok := ecs.Get(w, f.Owner.Entity, component.TransformComponent); ok {
					tr.Position = siteTr.Position.Add(f.SlotOffset)
				}
			}
		}
		if pw := w.PhysicsWorld(); pw != nil {
			pw.SetPosition(e, tr.Position)
		}
	})
}

// fly advances a thrown follower along its arc and reports landing.
func (s *FollowerSystem) fly(f *component.Follower, tr *component.Transform, dt float64) bool {
	f.Elapsed += dt
	t := 1.0
	if f.FlightTime > 0 {
		t = common.Clamp(f.Elapsed/f.FlightTime, 0, 1)
	}
	pos := common.LerpVec3(f.From, f.To, t)
	pos.Y += 4 * f.ArcHeight * t * (1 - t)
	tr.Position = pos
	return t >= 1
}

// land joins the first nearby site that admits the follower, or leaves it idle.
func (s *FollowerSystem) land(w *ecs.World, e ecs.Entity, f *component.Follower, tr *component.Transform) {
	tr.Position = f.To
	f.State = component.FollowerIdle
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	for _, site := range pw.SphereCastAll(f.To, f.LandingReach, ecs.LayerSite) {
		if !CanAssign(w, site, e) {
			continue
		}
		f.State = Assign(w, site, e)
		return
	}
}

// approach moves from toward target but stops keep units short of it.
func approach(from, target common.Vec3, keep, maxDelta float64) common.Vec3 {
	d := common.Distance(from, target)
	if d <= keep {
		return from
	}
	return common.MoveTowards(from, target, math.Min(maxDelta, d-keep))
}
