package ecs

// intersect returns the entities present in every set, in the order of the
// smallest set.
func intersect(sets ...*SparseSet) []Entity {
	if len(sets) == 0 {
		return nil
	}
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	out := make([]Entity, 0, smallest.Len())
outer:
	for _, e := range smallest.Entities() {
		for _, s := range sets {
			if s != smallest && !s.Has(e) {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}

func snapshot(s *SparseSet) []Entity {
	if s.Len() == 0 {
		return nil
	}
	return append([]Entity(nil), s.Entities()...)
}
