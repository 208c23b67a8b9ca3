package system

import (
	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs"
	"github.com/milk9111/blobcaller/ecs/component"
)

// carrySpeedPerExtra is the speed bonus per follower beyond the quota, as a
// fraction of the base carry speed.
const carrySpeedPerExtra = 0.2

// siteHooks holds the kind-specific behavior of a site. Nil hooks are skipped.
type siteHooks struct {
	start   func(w *ecs.World, e ecs.Entity, site *component.Site)
	stop    func(w *ecs.World, e ecs.Entity, site *component.Site)
	changed func(w *ecs.World, e ecs.Entity, site *component.Site)
}

var siteKinds = map[component.SiteKind]siteHooks{
	component.SiteGeneric: {},
	component.SiteCarry: {
		start:   carryStart,
		stop:    carryStop,
		changed: updateCarrySpeed,
	},
}

func hooksFor(site *component.Site) siteHooks {
	if site == nil {
		return siteHooks{}
	}
	return siteKinds[site.Kind]
}

// CanAssign reports whether the site at siteEnt accepts the follower.
func CanAssign(w *ecs.World, siteEnt, followerEnt ecs.Entity) bool {
	site, ok := ecs.Get(w, siteEnt, component.SiteComponent)
	if !ok || site.Disabled {
		return false
	}
	follower, ok := ecs.Get(w, followerEnt, component.FollowerComponent)
	if !ok {
		return false
	}
	if site.IndexOf(followerEnt) >= 0 {
		return false
	}
	if site.Admission == nil {
		return true
	}
	return site.Admission.Admit(site, follower)
}

// Assign moves the follower into the site's roster, places it at the next
// slot, and fires the start transition when the quota is reached. It returns
// the state the caller should apply to the follower.
func Assign(w *ecs.World, siteEnt, followerEnt ecs.Entity) component.FollowerState {
	site, ok := ecs.Get(w, siteEnt, component.SiteComponent)
	if !ok {
		return component.FollowerIdle
	}
	if site.IndexOf(followerEnt) >= 0 {
		return site.InteractorState
	}
	if follower, ok := ecs.Get(w, followerEnt, component.FollowerComponent); ok {
		releaseFollower(w, followerEnt, follower)
		follower.Owner = component.Owner{Kind: component.OwnerSite, Entity: siteEnt}
		follower.Anchor = 0
		follower.SlotOffset = site.PlacementOffset()
		if tr, ok := ecs.Get(w, followerEnt, component.TransformComponent); ok {
			if siteTr, ok := ecs.Get(w, siteEnt, component.TransformComponent); ok {
				tr.Position = siteTr.Position.Add(follower.SlotOffset)
			}
		}
	}

	site.Assigned = append(site.Assigned, followerEnt)
	if len(site.Assigned) >= site.Required && !site.Started {
		startSite(w, siteEnt, site)
	}
	if h := hooksFor(site); h.changed != nil {
		h.changed(w, siteEnt, site)
	}

	w.Events().Push(ecs.Event{Kind: ecs.EventFollowerAssigned, Subject: followerEnt, Other: siteEnt})
	return site.InteractorState
}

// RemoveFromSite drops the follower from the roster, resets it to Idle, and
// fires the stop transition when the count falls below the quota. Followers
// that are not assigned to the site are ignored.
func RemoveFromSite(w *ecs.World, siteEnt, followerEnt ecs.Entity) {
	site, ok := ecs.Get(w, siteEnt, component.SiteComponent)
	if !ok {
		return
	}
	idx := site.IndexOf(followerEnt)
	if idx < 0 {
		return
	}
	site.Assigned = append(site.Assigned[:idx], site.Assigned[idx+1:]...)

	if follower, ok := ecs.Get(w, followerEnt, component.FollowerComponent); ok {
		follower.State = component.FollowerIdle
		follower.Owner = component.Owner{}
		follower.SlotOffset = common.Vec3{}
	}

	if len(site.Assigned) < site.Required && site.Started {
		stopSite(w, siteEnt, site)
	}
	if h := hooksFor(site); h.changed != nil {
		h.changed(w, siteEnt, site)
	}
}

// EvictSite disables the site, force-removes every assigned follower, hides
// its prompt, and announces completion.
func EvictSite(w *ecs.World, siteEnt ecs.Entity) {
	site, ok := ecs.Get(w, siteEnt, component.SiteComponent)
	if !ok || site.Disabled {
		return
	}
	site.Disabled = true
	if pw := w.PhysicsWorld(); pw != nil {
		pw.RemoveEntity(siteEnt)
	}
	for _, f := range append([]ecs.Entity(nil), site.Assigned...) {
		RemoveFromSite(w, siteEnt, f)
	}
	site.PromptVisible = false
	w.Events().Push(ecs.Event{Kind: ecs.EventSiteCompleted, Subject: siteEnt, Detail: site.Name})
}

func startSite(w *ecs.World, e ecs.Entity, site *component.Site) {
	site.Started = true
	if h := hooksFor(site); h.start != nil {
		h.start(w, e, site)
	}
	w.Events().Push(ecs.Event{Kind: ecs.EventSiteStarted, Subject: e, Detail: site.Name})
}

func stopSite(w *ecs.World, e ecs.Entity, site *component.Site) {
	site.Started = false
	if h := hooksFor(site); h.stop != nil {
		h.stop(w, e, site)
	}
	w.Events().Push(ecs.Event{Kind: ecs.EventSiteStopped, Subject: e, Detail: site.Name})
}

func carryStart(w *ecs.World, e ecs.Entity, site *component.Site) {
	carry, ok := ecs.Get(w, e, component.CarryComponent)
	if !ok {
		return
	}
	carry.Lifted = true
	if tr, ok := ecs.Get(w, e, component.TransformComponent); ok {
		tr.Position = tr.Position.Add(carry.LiftOffset)
	}
	if agent, ok := ecs.Get(w, e, component.NavAgentComponent); ok {
		if tubeTr, ok := ecs.Get(w, carry.Tube, component.TransformComponent); ok {
			agent.SetDestination(tubeTr.Position)
		}
	}
	site.PromptVisible = false
}

func carryStop(w *ecs.World, e ecs.Entity, site *component.Site) {
	carry, ok := ecs.Get(w, e, component.CarryComponent)
	if !ok {
		return
	}
	carry.Lifted = false
	if tr, ok := ecs.Get(w, e, component.TransformComponent); ok {
		tr.Position = tr.Position.Sub(carry.LiftOffset)
		if agent, ok := ecs.Get(w, e, component.NavAgentComponent); ok {
			agent.SetDestination(tr.Position)
		}
	}
	site.PromptVisible = true
}

// updateCarrySpeed scales the payload speed with the followers beyond quota.
func updateCarrySpeed(w *ecs.World, e ecs.Entity, site *component.Site) {
	carry, ok := ecs.Get(w, e, component.CarryComponent)
	if !ok {
		return
	}
	agent, ok := ecs.Get(w, e, component.NavAgentComponent)
	if !ok {
		return
	}
	agent.Speed = CarrySpeed(carry.BaseSpeed, len(site.Assigned), site.Required)
}

// CarrySpeed is base + extra*0.2*base for extra followers beyond required,
// or 0 below the quota.
func CarrySpeed(base float64, assigned, required int) float64 {
	if assigned < required {
		return 0
	}
	return base + float64(assigned-required)*carrySpeedPerExtra*base
}

// releaseFollower detaches a follower from whatever owns it now, so a move
// never leaves two rosters holding the same entity.
func releaseFollower(w *ecs.World, e ecs.Entity, f *component.Follower) {
	switch f.Owner.Kind {
	case component.OwnerActor:
		if actor, ok := ecs.Get(w, f.Owner.Entity, component.ActorComponent); ok {
			actor.RemoveFollower(e)
		}
	case component.OwnerSite:
		RemoveFromSite(w, f.Owner.Entity, e)
	}
	f.Owner = component.Owner{}
}
