package entity

import (
	"testing"

	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs"
	"github.com/milk9111/blobcaller/ecs/component"
	"github.com/milk9111/blobcaller/ecs/system"
	"github.com/milk9111/blobcaller/levels"
	"github.com/milk9111/blobcaller/prefabs"
)

func loadSpecs(t *testing.T) (*prefabs.ActorSpec, *prefabs.FollowerSpec) {
	t.Helper()
	actor, err := prefabs.LoadActorSpec()
	if err != nil {
		t.Fatalf("actor spec: %v", err)
	}
	follower, err := prefabs.LoadFollowerSpec()
	if err != nil {
		t.Fatalf("follower spec: %v", err)
	}
	return actor, follower
}

func TestBuildLevel(t *testing.T) {
	actorSpec, followerSpec := loadSpecs(t)
	lvl, err := levels.Load("meadow")
	if err != nil {
		t.Fatalf("level: %v", err)
	}

	w := ecs.NewWorld()
	built, err := BuildLevel(w, lvl, actorSpec, followerSpec, 1280, 720)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	actor, ok := ecs.Get(w, built.Actor, component.ActorComponent)
	if !ok {
		t.Fatalf("actor missing")
	}
	if actor.Tuning.MaxFollowers != actorSpec.MaxFollowers || actor.Tuning.ThrowRange != component.ThrowRangeClamp {
		t.Fatalf("tuning not applied: %+v", actor.Tuning)
	}
	if !ecs.Has(w, actor.TargetIndicator, component.IndicatorComponent) || !ecs.Has(w, actor.CallIndicator, component.IndicatorComponent) {
		t.Fatalf("actor indicators missing")
	}
	cam, ok := ecs.Get(w, built.Camera, component.CameraComponent)
	if !ok || cam.Position.Y != 30 || cam.Zoom != 24 || cam.ScreenWidth != 1280 {
		t.Fatalf("unexpected camera %+v", cam)
	}

	followers := 0
	ecs.Each(w, component.FollowerComponent, func(_ ecs.Entity, f *component.Follower) {
		followers++
		if f.State != component.FollowerIdle || f.Speed != followerSpec.Speed {
			t.Fatalf("unexpected follower %+v", f)
		}
	})
	if followers != 14 {
		t.Fatalf("expected 14 followers, got %d", followers)
	}

	crate, ok := built.Sites["crate"]
	if !ok {
		t.Fatalf("crate site missing")
	}
	site, _ := ecs.Get(w, crate, component.SiteComponent)
	if site.Kind != component.SiteCarry || site.InteractorState != component.FollowerCarrying {
		t.Fatalf("unexpected crate %+v", site)
	}
	if p, ok := site.Admission.(*system.ScriptAdmission); !ok || p.Path() != "crowd_cap.tengo" {
		t.Fatalf("crate admission not loaded: %#v", site.Admission)
	}
	carry, ok := ecs.Get(w, crate, component.CarryComponent)
	if !ok || carry.Tube != built.Tubes["north_tube"] || carry.LiftOffset.Y != 0.5 {
		t.Fatalf("unexpected carry %+v", carry)
	}
	if !ecs.Has(w, crate, component.NavAgentComponent) {
		t.Fatalf("carry site needs a nav agent")
	}

	pw := w.PhysicsWorld()
	if hits := pw.SphereCastAll(common.Vec3{X: -6, Z: 4}, 2, ecs.LayerFollower); len(hits) != 8 {
		t.Fatalf("expected the 8-follower ring near (-6,4), got %d", len(hits))
	}
	if hits := pw.SphereCastAll(common.Vec3{X: 10, Z: 6}, 0.1, ecs.LayerSite); len(hits) != 1 || hits[0] != crate {
		t.Fatalf("crate not on the site layer: %v", hits)
	}
	if _, ok := pw.Raycast(common.Vec3{Y: 30}, common.Vec3{Y: -1}, 100, ecs.LayerGround); !ok {
		t.Fatalf("ground missing under the actor")
	}
}

func TestNewSiteErrors(t *testing.T) {
	tubes := map[string]ecs.Entity{}
	cases := []struct {
		name string
		spec levels.SiteSpec
	}{
		{"unknown_kind", levels.SiteSpec{Name: "a", Kind: "lever", Required: 1}},
		{"bad_state", levels.SiteSpec{Name: "b", Kind: "generic", Required: 1, InteractorState: "dancing"}},
		{"carry_without_block", levels.SiteSpec{Name: "c", Kind: "carry", Required: 1}},
		{"carry_unknown_tube", levels.SiteSpec{Name: "d", Kind: "carry", Required: 1, Carry: &levels.CarrySpec{Tube: "x"}}},
		{"missing_script", levels.SiteSpec{Name: "e", Kind: "generic", Required: 1, Admission: "absent.tengo"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			w.SetPhysicsWorld(ecs.NewPhysicsWorld())
			if _, err := NewSite(w, c.spec, tubes); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestActorTuningDefaults(t *testing.T) {
	tuning := ActorTuning(&prefabs.ActorSpec{MaxFollowers: 3})
	if tuning.ThrowRange != component.ThrowRangeClamp ||
		tuning.CallEligibility != component.CallCallable ||
		tuning.IndicatorScale != component.IndicatorDiameter {
		t.Fatalf("policy defaults not filled: %+v", tuning)
	}
	if ActorTuning(nil) != (component.ActorTuning{}) {
		t.Fatalf("nil spec should give zero tuning")
	}
}

func TestApplyFollowerSpecKeepsState(t *testing.T) {
	f := &component.Follower{State: component.FollowerWorking, Owner: component.Owner{Kind: component.OwnerSite, Entity: 4}}
	ApplyFollowerSpec(f, &prefabs.FollowerSpec{Speed: 9, FollowDistance: 2, FlightTime: 1, ArcHeight: 3, LandingReach: 4})
	if f.Speed != 9 || f.LandingReach != 4 || f.State != component.FollowerWorking || f.Owner.Entity != 4 {
		t.Fatalf("unexpected follower %+v", f)
	}
}

func TestBuildLevelCombat(t *testing.T) {
	actorSpec, followerSpec := loadSpecs(t)
	lvl, err := levels.Load("meadow")
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	w := ecs.NewWorld()
	built, err := BuildLevel(w, lvl, actorSpec, followerSpec, 1280, 720)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	bramble, ok := built.Destructables["bramble"]
	if !ok {
		t.Fatalf("bramble missing")
	}
	if h, ok := ecs.Get(w, bramble, component.HealthComponent); !ok || h.Current != 3 || h.Max != 3 {
		t.Fatalf("unexpected health %+v", h)
	}
	if hits := w.PhysicsWorld().SphereCastAll(common.Vec3{X: -10, Z: 10}, 0.1, ecs.LayerDestructable); len(hits) != 1 || hits[0] != bramble {
		t.Fatalf("bramble not on the destructable layer: %v", hits)
	}

	turretEnt, ok := built.Turrets["thorn_turret"]
	if !ok {
		t.Fatalf("turret missing")
	}
	if !ecs.Has(w, turretEnt, component.EnemyTagComponent) {
		t.Fatalf("turret should be tagged as an enemy")
	}
	turret, _ := ecs.Get(w, turretEnt, component.TurretComponent)
	if turret.Direction != (common.Vec3{X: 1}) || turret.Cooldown != 2 || turret.Bullet.Speed != 8 || turret.Bullet.Lifetime != 4 {
		t.Fatalf("unexpected turret %+v", turret)
	}
	if hits := w.PhysicsWorld().SphereCastAll(common.Vec3{X: -20, Z: 10}, 0.1, ecs.LayerEnemy); len(hits) != 1 || hits[0] != turretEnt {
		t.Fatalf("turret not on the enemy layer: %v", hits)
	}
}

func TestCombatBuilderErrors(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := NewDestructable(w, levels.DestructableSpec{Name: "husk"}); err == nil {
		t.Fatalf("expected error for zero health")
	}
	if _, err := NewTurret(w, levels.TurretSpec{Name: "blind", Interval: 1}); err == nil {
		t.Fatalf("expected error for zero aim")
	}
	e, err := NewTurret(w, levels.TurretSpec{Name: "plain", AimZ: -1, Interval: 1, Bullet: levels.BulletSpec{Speed: 3, Damage: 1}})
	if err != nil {
		t.Fatalf("turret: %v", err)
	}
	if turret, _ := ecs.Get(w, e, component.TurretComponent); turret.Bullet.Radius != defaultBulletRadius {
		t.Fatalf("expected default bullet radius, got %+v", turret.Bullet)
	}
}
