package observer

import (
	"sort"

	"github.com/milk9111/blobcaller/ecs"
	"github.com/milk9111/blobcaller/ecs/component"
)

// Snapshot is a point-in-time summary of actors and sites.
type Snapshot struct {
	Tick      uint64         `json:"tick" yaml:"tick"`
	Actors    []ActorStatus  `json:"actors" yaml:"actors"`
	Sites     []SiteStatus   `json:"sites" yaml:"sites"`
	Followers map[string]int `json:"followers" yaml:"followers"`
}

type ActorStatus struct {
	Entity    uint64 `json:"entity" yaml:"entity"`
	Action    string `json:"action" yaml:"action"`
	Followers int    `json:"followers" yaml:"followers"`
	Max       int    `json:"max" yaml:"max"`
}

type SiteStatus struct {
	Name     string `json:"name" yaml:"name"`
	Kind     string `json:"kind" yaml:"kind"`
	Assigned int    `json:"assigned" yaml:"assigned"`
	Required int    `json:"required" yaml:"required"`
	Started  bool   `json:"started" yaml:"started"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// TakeSnapshot reads the world. It must run on the tick goroutine.
func TakeSnapshot(w *ecs.World, tick uint64) Snapshot {
	snap := Snapshot{Tick: tick, Followers: map[string]int{}}
	if w == nil {
		return snap
	}
	ecs.Each(w, component.ActorComponent, func(e ecs.Entity, a *component.Actor) {
		snap.Actors = append(snap.Actors, ActorStatus{
			Entity:    uint64(e),
			Action:    a.State.String(),
			Followers: a.CurrentFollowerAmount(),
			Max:       a.MaxFollowers(),
		})
	})
	ecs.Each(w, component.SiteComponent, func(_ ecs.Entity, s *component.Site) {
		snap.Sites = append(snap.Sites, SiteStatus{
			Name:     s.Name,
			Kind:     string(s.Kind),
			Assigned: s.AssignedCount(),
			Required: s.Required,
			Started:  s.Started,
			Disabled: s.Disabled,
		})
	})
	ecs.Each(w, component.FollowerComponent, func(_ ecs.Entity, f *component.Follower) {
		snap.Followers[f.State.String()]++
	})
	sort.Slice(snap.Sites, func(i, j int) bool { return snap.Sites[i].Name < snap.Sites[j].Name })
	return snap
}
