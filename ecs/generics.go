package ecs

import (
	"fmt"

	"github.com/milk9111/orbitdemo/ecs/component"
)

// KindOf is satisfied by both component.ComponentKind and
// component.ComponentHandle.
type KindOf[T any] interface {
	Kind() component.ComponentKind[T]
}

func Add[T any](w *World, e Entity, k KindOf[T], value *T) error {
	kind := k.Kind()
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return fmt.Errorf("add %T to %s: %w", value, e, component.ErrEntityNotAlive)
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, k KindOf[T]) bool {
	if w == nil {
		return false
	}
	return w.store(k.Kind().ID(), false).Remove(e)
}

func Has[T any](w *World, e Entity, k KindOf[T]) bool {
	if w == nil {
		return false
	}
	return w.store(k.Kind().ID(), false).Has(e)
}

func Get[T any](w *World, e Entity, k KindOf[T]) (*T, bool) {
	if w == nil {
		return nil, false
	}
	v, ok := w.store(k.Kind().ID(), false).Get(e).(*T)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// ForEach calls fn for every entity carrying k. Entities created or destroyed
// by fn do not affect the current iteration.
func ForEach[T any](w *World, k KindOf[T], fn func(Entity, *T)) {
	if w == nil {
		return
	}
	s := w.store(k.Kind().ID(), false)
	for _, e := range snapshot(s) {
		if v, ok := Get(w, e, k); ok {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ka KindOf[A], kb KindOf[B], fn func(Entity, *A, *B)) {
	if w == nil {
		return
	}
	for _, e := range w.Query(ka.Kind(), kb.Kind()) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

func ForEach3[A, B, C any](w *World, ka KindOf[A], kb KindOf[B], kc KindOf[C], fn func(Entity, *A, *B, *C)) {
	if w == nil {
		return
	}
	for _, e := range w.Query(ka.Kind(), kb.Kind(), kc.Kind()) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}
