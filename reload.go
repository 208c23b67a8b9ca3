package main

import (
	"log"
	"path"
	"path/filepath"

	"github.com/milk9111/blobcaller/ecs"
	"github.com/milk9111/blobcaller/ecs/component"
	"github.com/milk9111/blobcaller/ecs/entity"
	"github.com/milk9111/blobcaller/ecs/system"
	"github.com/milk9111/blobcaller/prefabs"
)

// applyChanges handles every pending hot-reload notification without
// blocking the tick.
func (g *Game) applyChanges() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyChange(change)
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) applyChange(change prefabs.Change) {
	switch change.Kind {
	case prefabs.ChangeSpec:
		if !g.mods.Changed(change.Name()) {
			return
		}
		g.reloadSpec(change.Name())
	case prefabs.ChangeScript:
		if !g.mods.Changed(path.Join("scripts", change.Name())) {
			return
		}
		g.reloadScript(change.Name())
	case prefabs.ChangeLevel:
		if stripExt(change.Name()) != stripExt(g.levelName) {
			return
		}
		g.restart()
	}
}

func (g *Game) reloadSpec(name string) {
	switch name {
	case "actor.yaml":
		spec, err := prefabs.LoadActorSpec()
		if err != nil {
			log.Printf("reload %s: %v", name, err)
			return
		}
		g.actorSpec = spec
		tuning := entity.ActorTuning(spec)
		ecs.Each(g.world, component.ActorComponent, func(_ ecs.Entity, actor *component.Actor) {
			actor.Tuning = tuning
		})
	case "follower.yaml":
		spec, err := prefabs.LoadFollowerSpec()
		if err != nil {
			log.Printf("reload %s: %v", name, err)
			return
		}
		g.followerSpec = spec
		ecs.Each(g.world, component.FollowerComponent, func(_ ecs.Entity, f *component.Follower) {
			entity.ApplyFollowerSpec(f, spec)
		})
	default:
		return
	}
	log.Printf("reloaded %s", name)
}

func (g *Game) reloadScript(name string) {
	var policy *system.ScriptAdmission
	ecs.Each(g.world, component.SiteComponent, func(_ ecs.Entity, site *component.Site) {
		current, ok := site.Admission.(*system.ScriptAdmission)
		if !ok || filepath.Base(current.Path()) != name {
			return
		}
		if policy == nil {
			p, err := system.LoadScriptAdmission(current.Path())
			if err != nil {
				log.Printf("reload %s: %v", name, err)
				return
			}
			policy = p
		}
		site.Admission = policy
	})
	if policy != nil {
		log.Printf("reloaded %s", name)
	}
}

// restart rebuilds the current level. A level that fails to load leaves
// the running world in place.
func (g *Game) restart() {
	if err := g.loadLevel(); err != nil {
		log.Printf("reload level %s: %v", g.levelName, err)
		return
	}
	g.tick = 0
}

func stripExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
