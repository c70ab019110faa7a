package engine

import "context"

// Solutions is the result of a query. Everytime the Next method is called, it searches for the next solution.
// While a solution is current, the variables of the query are bound to its values.
type Solutions struct {
	vm   *VM
	ctx  context.Context
	goal Term

	// checkpoint is the trail length before the query started.
	checkpoint int

	started bool
	redo    Retry
	done    bool
	err     error
}

// Query prepares a search for the solutions of goal. The search doesn't start until Next is called.
func (vm *VM) Query(ctx context.Context, goal Term) *Solutions {
	return &Solutions{
		vm:         vm,
		ctx:        ctx,
		goal:       goal,
		checkpoint: vm.Trail.Checkpoint(),
	}
}

// Next prepares the next solution. It returns true if it finds another solution,
// or false if there's no further solutions or if there's an error.
func (s *Solutions) Next() bool {
	if s.done {
		return false
	}

	var p Promise
	if !s.started {
		s.started = true
		p = s.vm.Solve(s.goal, s.yield, exhausted)
	} else {
		redo := s.redo
		s.redo = nil
		p = Delay(redo)
	}

	ok, err := p.Force(s.ctx)
	switch {
	case err != nil:
		s.err = err
		s.done = true
		return false
	case !ok:
		s.done = true
		return false
	default:
		return true
	}
}

// Err returns the error if exists.
func (s *Solutions) Err() error {
	return s.err
}

// Close terminates the search and undoes the bindings made by the query.
func (s *Solutions) Close() error {
	s.done = true
	s.redo = nil
	s.vm.Trail.Unwind(&s.vm.Terms, s.checkpoint)
	return nil
}

// yield suspends the search by stopping the trampoline. The retry is kept for the next call of Next.
func (s *Solutions) yield(r Retry) Promise {
	s.redo = r
	return Bool(true)
}

func exhausted() Promise {
	return Bool(false)
}
