package system

import (
	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs"
	"github.com/milk9111/blobcaller/ecs/component"
)

// NavigationSystem moves nav agents straight toward their destination on the
// ground plane. Pathfinding around obstacles is left to the host.
type NavigationSystem struct{}

func NewNavigationSystem() *NavigationSystem {
	return &NavigationSystem{}
}

func (s *NavigationSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	ecs.Each(w, component.NavAgentComponent, func(e ecs.Entity, agent *component.NavAgent) {
		if !agent.Moving || agent.Speed <= 0 {
			return
		}
		tr, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		dest := agent.Destination
		dest.Y = tr.Position.Y
		tr.Position = common.MoveTowards(tr.Position, dest, agent.Speed*dt)
		if tr.Position == dest {
			agent.Moving = false
		}
		if pw := w.PhysicsWorld(); pw != nil {
			pw.SetPosition(e, tr.Position)
		}
	})
}

// CarrySystem evicts carried payloads once they reach their tube.
type CarrySystem struct{}

func NewCarrySystem() *CarrySystem {
	return &CarrySystem{}
}

func (s *CarrySystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	ecs.Each(w, component.CarryComponent, func(e ecs.Entity, carry *component.Carry) {
		site, ok := ecs.Get(w, e, component.SiteComponent)
		if !ok || site.Disabled || !site.Started {
			return
		}
		tr, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		tube, ok := ecs.Get(w, carry.Tube, component.TubeComponent)
		if !ok {
			return
		}
		tubeTr, ok := ecs.Get(w, carry.Tube, component.TransformComponent)
		if !ok {
			return
		}
		flat := tubeTr.Position
		flat.Y = tr.Position.Y
		if common.Distance(tr.Position, flat) <= tube.Radius {
			EvictSite(w, e)
		}
	})
}
