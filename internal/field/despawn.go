package field

// Sweep removes every ring whose anchor has passed the camera plane (Z > 0)
// and returns how many were removed.
func (s *State) Sweep() int {
	kept := s.Rings[:0] // reuse backing array
	for _, r := range s.Rings {
		if r.Position.Z() <= 0 {
			kept = append(kept, r)
		}
	}
	removed := len(s.Rings) - len(kept)

	// Drop references held past the new length.
	for i := len(kept); i < len(s.Rings); i++ {
		s.Rings[i] = nil
	}
	s.Rings = kept
	return removed
}
