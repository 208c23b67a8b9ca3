package component

import "github.com/milk9111/blobcaller/common"

// Bullet flies along Direction until it hits something or Lifetime runs out.
type Bullet struct {
	Direction common.Vec3
	Speed     float64
	Damage    float64
	Radius    float64
	Lifetime  float64
}

var BulletComponent = NewComponent[Bullet]()

// Health makes an entity destructable.
type Health struct {
	Current float64
	Max     float64
}

// Fraction returns the remaining share of Max in [0, 1].
func (h *Health) Fraction() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return common.Clamp(h.Current/h.Max, 0, 1)
}

var HealthComponent = NewComponent[Health]()

// EnemyTag marks entities that bullets pass through.
type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()

// Turret fires a copy of Bullet along Direction every Interval seconds.
type Turret struct {
	Direction common.Vec3
	Interval  float64
	Cooldown  float64
	Bullet    Bullet
}

var TurretComponent = NewComponent[Turret]()

// Corpse is what a destructable leaves behind.
type Corpse struct {
	Name string
}

var CorpseComponent = NewComponent[Corpse]()
