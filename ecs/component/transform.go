package component

import "github.com/milk9111/blobcaller/common"

type Transform struct {
	Position common.Vec3
	// Yaw is the heading about the vertical axis, in degrees.
	Yaw float64
}

var TransformComponent = NewComponent[Transform]()
