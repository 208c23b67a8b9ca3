package component

import "github.com/milk9111/blobcaller/common"

// Camera is a top-down orthographic view. Position is the eye; screen
// coordinates map onto the XZ plane at Zoom pixels per world unit.
type Camera struct {
	Position     common.Vec3
	Zoom         float64
	ScreenWidth  float64
	ScreenHeight float64
}

// ScreenPointToRay returns the world ray through a screen point.
func (c *Camera) ScreenPointToRay(p common.Vec2) (origin, dir common.Vec3) {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	origin = common.Vec3{
		X: c.Position.X + (p.X-c.ScreenWidth/2)/zoom,
		Y: c.Position.Y,
		Z: c.Position.Z + (p.Y-c.ScreenHeight/2)/zoom,
	}
	return origin, common.Vec3{Y: -1}
}

// WorldToScreen projects a world point onto the screen.
func (c *Camera) WorldToScreen(p common.Vec3) common.Vec2 {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return common.Vec2{
		X: (p.X-c.Position.X)*zoom + c.ScreenWidth/2,
		Y: (p.Z-c.Position.Z)*zoom + c.ScreenHeight/2,
	}
}

var CameraComponent = NewComponent[Camera]()
