package system

import (
	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs"
	"github.com/milk9111/blobcaller/ecs/component"
)

const defaultCameraFollow = 6.0

// CameraSystem keeps the first camera centered over a target entity.
type CameraSystem struct {
	Target ecs.Entity
	// Follow is the catch-up rate per second; zero or less snaps.
	Follow float64
}

func NewCameraSystem(target ecs.Entity) *CameraSystem {
	return &CameraSystem{Target: target, Follow: defaultCameraFollow}
}

// Update moves the camera over the target on the XZ plane. Height is kept.
func (cs *CameraSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	target, ok := ecs.Get(w, cs.Target, component.TransformComponent)
	if !ok {
		return
	}
	cam := firstCamera(w)
	if cam == nil {
		return
	}
	goal := common.Vec3{X: target.Position.X, Y: cam.Position.Y, Z: target.Position.Z}
	if cs.Follow <= 0 {
		cam.Position = goal
		return
	}
	cam.Position = common.LerpVec3(cam.Position, goal, common.Clamp(cs.Follow*dt, 0, 1))
}
