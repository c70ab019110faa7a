package engine

// Trail is a chronological log of variable bindings.
// Its length is a checkpoint that Unwind can return to.
type Trail struct {
	vars  []Term
	limit int
}

// NewTrail creates a trail that records at most limit bindings at a time.
// If limit is 0, the trail grows without bound.
func NewTrail(limit int) Trail {
	return Trail{limit: limit}
}

// Checkpoint returns the current length of the trail.
func (t *Trail) Checkpoint() int {
	return len(t.vars)
}

// Unwind unbinds every variable recorded after the checkpoint, latest first, and truncates the trail to it.
// Unwinding to the current length or beyond is a no-op.
func (t *Trail) Unwind(h *Heap, checkpoint int) {
	if checkpoint < 0 {
		checkpoint = 0
	}
	for len(t.vars) > checkpoint {
		v := t.vars[len(t.vars)-1]
		h.unbind(v)
		t.vars = t.vars[:len(t.vars)-1]
	}
}

func (t *Trail) record(v Term) error {
	if t.limit > 0 && len(t.vars) >= t.limit {
		return &ResourceError{Resource: ResourceTrail}
	}
	t.vars = append(t.vars, v)
	return nil
}
