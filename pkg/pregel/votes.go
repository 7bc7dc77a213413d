package pregel

// voteTracker holds the per-node activity flags. Slot n is written only by
// the worker processing node n during a superstep and read by the driver
// between barriers, so the barrier is the only synchronization required.
type voteTracker struct {
	active []bool
}

func newVoteTracker(nodeCount int64) *voteTracker {
	t := &voteTracker{active: make([]bool, nodeCount)}
	for i := range t.active {
		t.active[i] = true
	}
	return t
}

func (t *voteTracker) halt(id int64) {
	t.active[id] = false
}

func (t *voteTracker) reactivate(id int64) {
	t.active[id] = true
}

func (t *voteTracker) isActive(id int64) bool {
	return t.active[id]
}

// anyActive is called by the driver between barriers.
func (t *voteTracker) anyActive() bool {
	for _, a := range t.active {
		if a {
			return true
		}
	}
	return false
}

func (t *voteTracker) sizeBytes() int64 {
	return int64(len(t.active))
}
