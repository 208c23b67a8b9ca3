package ecs

import (
	"testing"
)

func TestSparseWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			if w.EntityCount() != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, w.EntityCount())
			}
			if c.destroyIndex >= 0 {
				if !w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return false the second time")
				}
			}
		})
	}
}

func TestRecycledEntityIsNotAliasOfOld(t *testing.T) {
	w := NewWorld()
	h := NewComponent[int]()

	old := w.CreateEntity()
	if err := Add(w, old, h, intPtr(1)); err != nil {
		t.Fatalf("add: %v", err)
	}
	w.DestroyEntity(old)

	fresh := w.CreateEntity()
	if fresh == old {
		t.Fatalf("recycled entity should carry a new generation")
	}
	if fresh.id() != old.id() {
		t.Fatalf("expected id reuse, got %d and %d", fresh.id(), old.id())
	}
	if _, ok := Get(w, fresh, h); ok {
		t.Fatalf("fresh entity must not see the destroyed entity's component")
	}
	if err := Add(w, old, h, intPtr(2)); err != ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}

func TestSparseWorldComponentsAndQueries(t *testing.T) {
	t.Run("component_table", func(t *testing.T) {
		w := NewWorld()

		h1 := NewComponent[int]()
		h2 := NewComponent[string]()
		h3 := NewComponent[float64]()

		e1 := w.CreateEntity()
		e2 := w.CreateEntity()

		tests := []struct {
			name     string
			setup    func() error
			check    func(t *testing.T)
			teardown func() bool
		}{
			{
				name:  "add_int_to_e1",
				setup: func() error { return Add(w, e1, h1, intPtr(10)) },
				check: func(t *testing.T) {
					v, ok := Get(w, e1, h1)
					if !ok || *v != 10 {
						t.Fatalf("expected 10, got %v ok=%v", v, ok)
					}
				},
				teardown: func() bool { return Remove(w, e1, h1) },
			},
			{
				name: "add_str_to_e1_and_e2",
				setup: func() error {
					if err := Add(w, e1, h2, stringPtr("a")); err != nil {
						return err
					}
					return Add(w, e2, h2, stringPtr("b"))
				},
				check: func(t *testing.T) {
					if !Has(w, e1, h2) || !Has(w, e2, h2) {
						t.Fatalf("expected both entities to have string component")
					}
				},
				teardown: func() bool { return Remove(w, e1, h2) },
			},
			{
				name:  "add_float_and_remove",
				setup: func() error { return Add(w, e1, h3, float64Ptr(1.23)) },
				check: func(t *testing.T) {
					if _, ok := Get(w, e1, h3); !ok {
						t.Fatalf("expected float present")
					}
				},
				teardown: func() bool { return Remove(w, e1, h3) },
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				if err := tc.setup(); err != nil {
					t.Fatalf("setup failed: %v", err)
				}
				tc.check(t)
				if !tc.teardown() {
					t.Fatalf("teardown failed for %s", tc.name)
				}
			})
		}
	})

	t.Run("query_intersection", func(t *testing.T) {
		w := NewWorld()
		hi := NewComponent[int]()
		hs := NewComponent[string]()

		both := w.CreateEntity()
		onlyInt := w.CreateEntity()
		onlyStr := w.CreateEntity()
		_ = Add(w, both, hi, intPtr(1))
		_ = Add(w, both, hs, stringPtr("x"))
		_ = Add(w, onlyInt, hi, intPtr(2))
		_ = Add(w, onlyStr, hs, stringPtr("y"))

		got := toSet(Query(w, hi, hs))
		if len(got) != 1 {
			t.Fatalf("expected one entity, got %v", got)
		}
		if _, ok := got[both]; !ok {
			t.Fatalf("expected %v in query result", both)
		}
	})

	t.Run("add_errors", func(t *testing.T) {
		w := NewWorld()
		h := NewComponent[int]()
		e := w.CreateEntity()
		if err := Add(w, e, h, nil); err != ErrNilComponent {
			t.Fatalf("expected ErrNilComponent, got %v", err)
		}
		if err := Add(w, e, ComponentHandle[int]{}, intPtr(1)); err != ErrInvalidComponentKind {
			t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
		}
	})
}

func TestEach(t *testing.T) {
	w := NewWorld()
	h := NewComponent[int]()
	want := map[Entity]int{}
	for i := 0; i < 4; i++ {
		e := w.CreateEntity()
		_ = Add(w, e, h, intPtr(i))
		want[e] = i
	}

	t.Run("visits_all", func(t *testing.T) {
		seen := map[Entity]int{}
		Each(w, h, func(e Entity, v *int) {
			seen[e] = *v
		})
		if len(seen) != len(want) {
			t.Fatalf("expected %d visits, got %d", len(want), len(seen))
		}
		for e, v := range want {
			if seen[e] != v {
				t.Fatalf("entity %v: expected %d, got %d", e, v, seen[e])
			}
		}
	})

	t.Run("destroy_during_iteration", func(t *testing.T) {
		visits := 0
		Each(w, h, func(e Entity, v *int) {
			visits++
			w.DestroyEntity(e)
		})
		if visits != len(want) {
			t.Fatalf("expected %d visits, got %d", len(want), visits)
		}
		if w.EntityCount() != 0 {
			t.Fatalf("expected empty world, got %d entities", w.EntityCount())
		}
	})
}

type countingSystem struct {
	order *[]string
	name  string
	dt    float64
}

func (s *countingSystem) Update(w *World, dt float64) {
	*s.order = append(*s.order, s.name)
	s.dt = dt
}

func TestSchedulerOrderAndEvents(t *testing.T) {
	w := NewWorld()
	var order []string
	a := &countingSystem{order: &order, name: "a"}
	b := &countingSystem{order: &order, name: "b"}
	w.AddSystem(a)
	w.AddSystem(b)
	w.AddSystem(nil)

	w.Update(0.25)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("unexpected order %v", order)
	}
	if a.dt != 0.25 || b.dt != 0.25 {
		t.Fatalf("dt not forwarded: %v %v", a.dt, b.dt)
	}

	w.Events().Push(Event{Kind: EventSiteStarted})
	w.Events().Push(Event{Kind: EventSiteStopped})
	if w.Events().Len() != 2 {
		t.Fatalf("expected 2 events, got %d", w.Events().Len())
	}
	got := w.Events().Drain()
	if len(got) != 2 || got[0].Kind != EventSiteStarted || got[1].Kind != EventSiteStopped {
		t.Fatalf("unexpected drain %v", got)
	}
	if w.Events().Drain() != nil {
		t.Fatalf("expected empty queue after drain")
	}
}
