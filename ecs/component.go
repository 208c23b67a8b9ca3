package ecs

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentID uint32

var nextComponentID atomic.Uint32

type ComponentHandle[T any] struct {
	id ComponentID
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (h ComponentHandle[T]) ID() ComponentID {
	return h.id
}

func (h ComponentHandle[T]) Valid() bool {
	return h.id != 0
}

func Add[T any](w *World, e Entity, handle ComponentHandle[T], value *T) error {
	if !handle.Valid() {
		return ErrInvalidComponentKind
	}
	if value == nil {
		return ErrNilComponent
	}
	if w == nil || !w.IsAlive(e) {
		return ErrEntityNotAlive
	}
	w.store(handle.id).Set(e, value)
	return nil
}

func Get[T any](w *World, e Entity, handle ComponentHandle[T]) (*T, bool) {
	if w == nil || !handle.Valid() {
		return nil, false
	}
	set, ok := w.stores[handle.id]
	if !ok {
		return nil, false
	}
	v, ok := set.Get(e).(*T)
	return v, ok
}

func Has[T any](w *World, e Entity, handle ComponentHandle[T]) bool {
	_, ok := Get(w, e, handle)
	return ok
}

func Remove[T any](w *World, e Entity, handle ComponentHandle[T]) bool {
	if w == nil || !handle.Valid() {
		return false
	}
	set, ok := w.stores[handle.id]
	if !ok {
		return false
	}
	return set.Remove(e)
}

// Each visits every entity carrying the component. The callback must not add
// or remove components of the same kind.
func Each[T any](w *World, handle ComponentHandle[T], fn func(e Entity, v *T)) {
	if w == nil || fn == nil {
		return
	}
	set, ok := w.stores[handle.id]
	if !ok {
		return
	}
	ents := append([]Entity(nil), set.Entities()...)
	for _, e := range ents {
		if v, ok := set.Get(e).(*T); ok {
			fn(e, v)
		}
	}
}

// Query returns entities that carry both components.
func Query[A, B any](w *World, a ComponentHandle[A], b ComponentHandle[B]) []Entity {
	if w == nil {
		return nil
	}
	sa, ok := w.stores[a.id]
	if !ok {
		return nil
	}
	sb, ok := w.stores[b.id]
	if !ok {
		return nil
	}
	return IntersectEntities(sa, sb)
}

// IntersectEntities returns entities present in both sets.
func IntersectEntities(a, b *SparseSet) []Entity {
	if a == nil || b == nil {
		return nil
	}
	// iterate smaller set
	if len(a.denseEntities) > len(b.denseEntities) {
		a, b = b, a
	}
	out := make([]Entity, 0, len(a.denseEntities))
	for _, e := range a.denseEntities {
		if b.Has(e) {
			out = append(out, e)
		}
	}
	return out
}
