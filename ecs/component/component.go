package component

import "github.com/milk9111/blobcaller/ecs"

// NewComponent registers a component kind stored as *T in the world.
func NewComponent[T any]() ecs.ComponentHandle[T] {
	return ecs.NewComponent[T]()
}
