package component

import "github.com/milk9111/blobcaller/common"

// Indicator is a purely visual marker (target reticle, call range).
type Indicator struct {
	Active   bool
	Scale    common.Vec3
	Position common.Vec3
}

func (i *Indicator) SetActive(active bool) {
	if i == nil {
		return
	}
	i.Active = active
}

func (i *Indicator) SetScale(scale common.Vec3) {
	if i == nil {
		return
	}
	i.Scale = scale
}

func (i *Indicator) SetPosition(pos common.Vec3) {
	if i == nil {
		return
	}
	i.Position = pos
}

var IndicatorComponent = NewComponent[Indicator]()
