package analytics

// objectiveKey identifies an objective within a course. Groups are
// keyed by the pair because an objective identifier could in principle
// be reused across unrelated courses.
type objectiveKey struct {
	CourseID    uint
	ObjectiveID string
}

// answerTally accumulates correct/total counters for one group
type answerTally struct {
	Correct int
	Total   int
}

// tallySet is a keyed group-by accumulator that remembers first-seen
// key order, so that finalizing produces deterministic output for a
// given store snapshot.
type tallySet struct {
	order   []objectiveKey
	tallies map[objectiveKey]*answerTally
}

func newTallySet() *tallySet {
	return &tallySet{tallies: make(map[objectiveKey]*answerTally)}
}

// Add counts one answer into the key's tally
func (s *tallySet) Add(key objectiveKey, correct bool) {
	t, ok := s.tallies[key]
	if !ok {
		t = &answerTally{}
		s.tallies[key] = t
		s.order = append(s.order, key)
	}
	t.Total++
	if correct {
		t.Correct++
	}
}

// Keys returns the keys in first-seen order
func (s *tallySet) Keys() []objectiveKey {
	return s.order
}

// Get returns the tally for key, or nil when the key was never added
func (s *tallySet) Get(key objectiveKey) *answerTally {
	return s.tallies[key]
}
