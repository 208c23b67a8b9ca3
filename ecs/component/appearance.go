package component

import "image/color"

// Appearance is what the host draws for an entity.
type Appearance struct {
	Radius float64
	Color  color.Color
	Label  string
}

var AppearanceComponent = NewComponent[Appearance]()
