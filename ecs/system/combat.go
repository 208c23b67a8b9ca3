package system

import (
	"fmt"

	"golang.org/x/image/colornames"

	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs"
	"github.com/milk9111/blobcaller/ecs/component"
)

const defaultBulletLifetime = 5.0

// FireBullet spawns a bullet at from. A zero Direction or Speed yields a
// bullet that sits still until its lifetime ends.
func FireBullet(w *ecs.World, from common.Vec3, b component.Bullet) (ecs.Entity, error) {
	if w == nil {
		return 0, ecs.ErrEntityNotAlive
	}
	b.Direction = b.Direction.Normalized()
	if b.Lifetime <= 0 {
		b.Lifetime = defaultBulletLifetime
	}
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{Position: from}); err != nil {
		return 0, fmt.Errorf("bullet: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.BulletComponent, &b); err != nil {
		return 0, fmt.Errorf("bullet: add bullet: %w", err)
	}
	if err := ecs.Add(w, e, component.AppearanceComponent, &component.Appearance{
		Radius: b.Radius,
		Color:  colornames.Orangered,
	}); err != nil {
		return 0, fmt.Errorf("bullet: add appearance: %w", err)
	}
	return e, nil
}

// TurretSystem fires bullets from every turret on its interval.
type TurretSystem struct{}

func NewTurretSystem() *TurretSystem {
	return &TurretSystem{}
}

func (s *TurretSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	for _, e := range ecs.Query(w, component.TurretComponent, component.TransformComponent) {
		turret, _ := ecs.Get(w, e, component.TurretComponent)
		tr, _ := ecs.Get(w, e, component.TransformComponent)
		if turret.Interval <= 0 {
			continue
		}
		turret.Cooldown -= dt
		if turret.Cooldown > 0 {
			continue
		}
		turret.Cooldown += turret.Interval
		b := turret.Bullet
		b.Direction = turret.Direction
		bullet, err := FireBullet(w, tr.Position, b)
		if err != nil {
			fmt.Printf("system: turret %v: %v\n", e, err)
			continue
		}
		w.Events().Push(ecs.Event{Kind: ecs.EventBulletFired, Subject: bullet, Other: e})
	}
}

// BulletSystem moves bullets and resolves their first hit. Enemy-tagged
// shapes are passed through; anything else on HitMask stops the bullet.
type BulletSystem struct {
	HitMask ecs.Layer
}

func NewBulletSystem() *BulletSystem {
	return &BulletSystem{
		HitMask: ecs.LayerDestructable | ecs.LayerEnemy | ecs.LayerSite | ecs.LayerTube,
	}
}

func (s *BulletSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	for _, e := range ecs.Query(w, component.BulletComponent, component.TransformComponent) {
		b, _ := ecs.Get(w, e, component.BulletComponent)
		tr, _ := ecs.Get(w, e, component.TransformComponent)

		tr.Position = tr.Position.Add(b.Direction.Scale(b.Speed * dt))
		b.Lifetime -= dt

		if target, ok := s.firstHit(w, pw, tr.Position, b.Radius); ok {
			w.Events().Push(ecs.Event{Kind: ecs.EventBulletImpact, Subject: e, Other: target})
			Damage(w, target, b.Damage)
			w.DestroyEntity(e)
			continue
		}
		if b.Lifetime <= 0 {
			w.DestroyEntity(e)
		}
	}
}

func (s *BulletSystem) firstHit(w *ecs.World, pw *ecs.PhysicsWorld, pos common.Vec3, radius float64) (ecs.Entity, bool) {
	for _, hit := range pw.SphereCastAll(pos, radius, s.HitMask) {
		if ecs.Has(w, hit, component.EnemyTagComponent) {
			continue
		}
		return hit, true
	}
	return 0, false
}

// Damage takes amount off target's health and reports whether target is
// destructable. A target at zero health is turned into a corpse.
func Damage(w *ecs.World, target ecs.Entity, amount float64) bool {
	h, ok := ecs.Get(w, target, component.HealthComponent)
	if !ok {
		return false
	}
	h.Current -= amount
	if h.Current <= 0 {
		h.Current = 0
		leaveCorpse(w, target)
	}
	return true
}

// leaveCorpse strips what made target destructable and leaves its remains
// where it stood.
func leaveCorpse(w *ecs.World, target ecs.Entity) {
	ecs.Remove(w, target, component.HealthComponent)
	if pw := w.PhysicsWorld(); pw != nil {
		pw.RemoveEntity(target)
	}
	name := ""
	if a, ok := ecs.Get(w, target, component.AppearanceComponent); ok {
		name = a.Label
		a.Color = colornames.Dimgray
	}
	_ = ecs.Add(w, target, component.CorpseComponent, &component.Corpse{Name: name})
	w.Events().Push(ecs.Event{Kind: ecs.EventDestroyed, Subject: target, Detail: name})
}
