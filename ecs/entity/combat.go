package entity

import (
	"fmt"

	"golang.org/x/image/colornames"

	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs"
	"github.com/milk9111/blobcaller/ecs/component"
	"github.com/milk9111/blobcaller/levels"
)

const (
	defaultDestructableRadius = 1.0
	defaultTurretRadius       = 0.8
	defaultBulletRadius       = 0.2
)

// NewDestructable creates an obstacle that bullets wear down into a corpse.
func NewDestructable(w *ecs.World, spec levels.DestructableSpec) (ecs.Entity, error) {
	radius := spec.Radius
	if radius <= 0 {
		radius = defaultDestructableRadius
	}
	if spec.Health <= 0 {
		return 0, fmt.Errorf("destructable %s: health must be positive", spec.Name)
	}
	pos := common.Vec3{X: spec.X, Z: spec.Z}

	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{Position: pos}); err != nil {
		return 0, fmt.Errorf("destructable %s: add transform: %w", spec.Name, err)
	}
	if err := ecs.Add(w, e, component.HealthComponent, &component.Health{Current: spec.Health, Max: spec.Health}); err != nil {
		return 0, fmt.Errorf("destructable %s: add health: %w", spec.Name, err)
	}
	if err := ecs.Add(w, e, component.AppearanceComponent, &component.Appearance{
		Radius: radius,
		Color:  spec.Color.Or(colornames.Darkgreen),
		Label:  spec.Name,
	}); err != nil {
		return 0, fmt.Errorf("destructable %s: add appearance: %w", spec.Name, err)
	}
	if pw := w.PhysicsWorld(); pw != nil {
		pw.AddCircle(e, ecs.LayerDestructable, pos, radius)
	}
	return e, nil
}

// NewTurret creates an enemy emplacement. Its first shot leaves after one
// interval.
func NewTurret(w *ecs.World, spec levels.TurretSpec) (ecs.Entity, error) {
	radius := spec.Radius
	if radius <= 0 {
		radius = defaultTurretRadius
	}
	aim := common.Vec3{X: spec.AimX, Z: spec.AimZ}
	if aim.Len() == 0 {
		return 0, fmt.Errorf("turret %s: zero aim", spec.Name)
	}
	bulletRadius := spec.Bullet.Radius
	if bulletRadius <= 0 {
		bulletRadius = defaultBulletRadius
	}
	pos := common.Vec3{X: spec.X, Z: spec.Z}

	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{Position: pos}); err != nil {
		return 0, fmt.Errorf("turret %s: add transform: %w", spec.Name, err)
	}
	if err := ecs.Add(w, e, component.EnemyTagComponent, &component.EnemyTag{}); err != nil {
		return 0, fmt.Errorf("turret %s: add tag: %w", spec.Name, err)
	}
	if err := ecs.Add(w, e, component.TurretComponent, &component.Turret{
		Direction: aim.Normalized(),
		Interval:  spec.Interval,
		Cooldown:  spec.Interval,
		Bullet: component.Bullet{
			Speed:    spec.Bullet.Speed,
			Damage:   spec.Bullet.Damage,
			Radius:   bulletRadius,
			Lifetime: spec.Bullet.Lifetime,
		},
	}); err != nil {
		return 0, fmt.Errorf("turret %s: add turret: %w", spec.Name, err)
	}
	if err := ecs.Add(w, e, component.AppearanceComponent, &component.Appearance{
		Radius: radius,
		Color:  colornames.Darkred,
		Label:  spec.Name,
	}); err != nil {
		return 0, fmt.Errorf("turret %s: add appearance: %w", spec.Name, err)
	}
	if pw := w.PhysicsWorld(); pw != nil {
		pw.AddCircle(e, ecs.LayerEnemy, pos, radius)
	}
	return e, nil
}
