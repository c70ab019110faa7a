package engine

// Predicate is a procedure written in continuation-passing style.
// It gets the arguments of a call and must end in either k for a solution or r for no (more) solutions.
// The retry it passes to k must resume the search for the next solution.
type Predicate func(vm *VM, args []Term, k Cont, r Retry) Promise

// Clauses makes a predicate out of alternative clauses tried in order.
// Before each clause, it takes a checkpoint. If the clause fails or is retried after a solution,
// the bindings since the checkpoint are undone and the next clause is tried.
// Once all the clauses are exhausted, it calls the caller's retry.
func Clauses(cs ...Predicate) Predicate {
	return func(vm *VM, args []Term, k Cont, r Retry) Promise {
		return vm.tryClauses(cs, args, k, r)
	}
}

func (vm *VM) tryClauses(cs []Predicate, args []Term, k Cont, r Retry) Promise {
	if len(cs) == 0 {
		return Delay(r)
	}
	c, rest := cs[0], cs[1:]
	next := vm.ChoicePoint(func() Promise {
		return vm.tryClauses(rest, args, k, r)
	})
	return Delay(func() Promise {
		return c(vm, args, k, next)
	})
}

// fresh creates n unbound variables.
func (vm *VM) fresh(n int) ([]Term, error) {
	vs := make([]Term, n)
	for i := range vs {
		v, err := vm.Terms.NewVariable()
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	return vs, nil
}
