package engine

import "fmt"

// Retry is a failure continuation. It resumes the search at the latest untried alternative.
type Retry func() Promise

// Cont is a success continuation. It receives the retry that yields further alternatives.
type Cont func(Retry) Promise

// Unknown is the behavior of a call to an unknown procedure.
type Unknown int8

const (
	// UnknownError raises an ExistenceError.
	UnknownError Unknown = iota
	// UnknownFail fails silently.
	UnknownFail
	// UnknownWarning calls OnUnknown and fails.
	UnknownWarning
)

// VM is the execution context of one query. It owns the terms of the query and the trail of their bindings.
// The zero value for VM is a valid VM without any procedures.
type VM struct {
	Terms Heap
	Trail Trail

	// Unknown is the behavior of a call to an unknown procedure.
	Unknown Unknown

	// OnCall, OnExit, OnFail, and OnRedo are called when a procedure is entered, succeeds, fails, and is retried.
	OnCall, OnExit, OnFail, OnRedo func(f Functor, args []Term)

	// OnUnknown is called when the VM reaches an unknown procedure while Unknown is UnknownWarning.
	OnUnknown func(f Functor, args []Term)

	procedures map[Functor]Predicate
}

// Option configures a VM.
type Option func(*VM)

// WithHeapLimit limits the number of cells in the heap.
func WithHeapLimit(n int) Option {
	return func(vm *VM) {
		vm.Terms.limit = n
	}
}

// WithTrailLimit limits the number of bindings on the trail.
func WithTrailLimit(n int) Option {
	return func(vm *VM) {
		vm.Trail.limit = n
	}
}

// WithUnknown sets the behavior of a call to an unknown procedure.
func WithUnknown(u Unknown) Option {
	return func(vm *VM) {
		vm.Unknown = u
	}
}

// New creates a VM with the library predicates.
func New(opts ...Option) *VM {
	var vm VM
	for _, o := range opts {
		o(&vm)
	}
	vm.Register("true", 0, True)
	vm.Register("fail", 0, Fail)
	vm.Register("false", 0, Fail)
	vm.Register("=", 2, Equal)
	vm.Register(",", 2, Conjunction)
	vm.Register(";", 2, Disjunction)
	vm.Register("call", 1, Call)
	vm.Register("member", 2, Member)
	vm.Register("append", 3, Append)
	return &vm
}

// Register registers a predicate of the given name and arity. It replaces any predicate already registered.
func (vm *VM) Register(name string, arity int, p Predicate) {
	if vm.procedures == nil {
		vm.procedures = map[Functor]Predicate{}
	}
	vm.procedures[Functor{Name: NewAtom(name), Arity: arity}] = p
}

// Reset unbinds every variable and reclaims all the terms so that the VM can run another query.
func (vm *VM) Reset() {
	vm.Trail.Unwind(&vm.Terms, 0)
	vm.Terms.Reset()
}

// Bind binds the unbound variable v to t and records it on the trail.
// The binding is not undone automatically. Take a checkpoint beforehand if it has to be.
func (vm *VM) Bind(v, t Term) error {
	h := &vm.Terms
	if h.Kind(v) != KindVariable || h.cells[v].bound {
		return &RebindingError{Variable: v, Kind: h.Kind(v)}
	}
	if !h.valid(t) || h.Deref(t) == v {
		return &MalformedTermError{Culprit: t}
	}
	if err := vm.Trail.record(v); err != nil {
		return err
	}
	h.bind(v, t)
	return nil
}

// ChoicePoint takes a checkpoint and returns a retry that unwinds the trail to it and then tries alt.
func (vm *VM) ChoicePoint(alt Retry) Retry {
	checkpoint := vm.Trail.Checkpoint()
	return func() Promise {
		vm.Trail.Unwind(&vm.Terms, checkpoint)
		return Delay(alt)
	}
}

// Unify unifies x and y. On success, it calls k with r. On failure, it calls r.
// The bindings it made before failing are undone only by a retry that took a checkpoint earlier.
func (vm *VM) Unify(x, y Term, k Cont, r Retry) Promise {
	return Delay(func() Promise {
		return vm.unify(x, y, k, r)
	})
}

func (vm *VM) unify(x, y Term, k Cont, r Retry) Promise {
	h := &vm.Terms
	x, y = h.Deref(x), h.Deref(y)
	if x == y {
		return k(r)
	}

	// The left operand is bound first when both are variables.
	switch h.Kind(x) {
	case KindVariable:
		if err := vm.Bind(x, y); err != nil {
			return Error(err)
		}
		return k(r)
	case KindCompound:
		break
	default:
		return Error(&MalformedTermError{Culprit: x})
	}

	switch h.Kind(y) {
	case KindVariable:
		if err := vm.Bind(y, x); err != nil {
			return Error(err)
		}
		return k(r)
	case KindCompound:
		break
	default:
		return Error(&MalformedTermError{Culprit: y})
	}

	fx, _ := h.Functor(x)
	fy, _ := h.Functor(y)
	if fx != fy {
		return r()
	}
	return vm.unifyArgs(h.Args(x), h.Args(y), k, r)
}

// UnifyArgs unifies xs and ys pairwise from left to right. All the pairs have to unify.
// A failure on any pair undoes the bindings of the preceding pairs and calls r.
func (vm *VM) UnifyArgs(xs, ys []Term, k Cont, r Retry) Promise {
	if len(xs) != len(ys) {
		return Error(fmt.Errorf("%w: %d and %d arguments", ErrMalformedTerm, len(xs), len(ys)))
	}
	return Delay(func() Promise {
		return vm.unifyArgs(xs, ys, k, r)
	})
}

func (vm *VM) unifyArgs(xs, ys []Term, k Cont, r Retry) Promise {
	if len(xs) == 0 {
		return k(r)
	}
	retry := vm.ChoicePoint(r)
	return vm.Unify(xs[0], ys[0], func(Retry) Promise {
		return Delay(func() Promise {
			return vm.unifyArgs(xs[1:], ys[1:], k, retry)
		})
	}, retry)
}

// Solve calls the procedure for goal. Every solution is passed to k along with a retry that yields the next one.
// When there are no more solutions, it calls r.
func (vm *VM) Solve(goal Term, k Cont, r Retry) Promise {
	return Delay(func() Promise {
		h := &vm.Terms
		goal := h.Deref(goal)
		switch h.Kind(goal) {
		case KindVariable:
			return Error(ErrInstantiation)
		case KindCompound:
			f, _ := h.Functor(goal)
			return vm.Call(f, h.Args(goal), k, r)
		default:
			return Error(&TypeError{Culprit: goal})
		}
	})
}

// Call calls the procedure f with args.
func (vm *VM) Call(f Functor, args []Term, k Cont, r Retry) Promise {
	p, ok := vm.procedures[f]
	if !ok {
		return vm.unknown(f, args, r)
	}
	if vm.OnCall != nil {
		vm.OnCall(f, args)
	}
	return Delay(func() Promise {
		return p(vm, args, vm.exit(f, args, k), vm.fail(f, args, r))
	})
}

func (vm *VM) unknown(f Functor, args []Term, r Retry) Promise {
	switch vm.Unknown {
	case UnknownFail:
		return Delay(r)
	case UnknownWarning:
		if vm.OnUnknown != nil {
			vm.OnUnknown(f, args)
		}
		return Delay(r)
	default:
		return Error(&ExistenceError{Procedure: f})
	}
}

func (vm *VM) exit(f Functor, args []Term, k Cont) Cont {
	if vm.OnExit == nil && vm.OnRedo == nil {
		return k
	}
	return func(r Retry) Promise {
		if vm.OnExit != nil {
			vm.OnExit(f, args)
		}
		return k(func() Promise {
			if vm.OnRedo != nil {
				vm.OnRedo(f, args)
			}
			return r()
		})
	}
}

func (vm *VM) fail(f Functor, args []Term, r Retry) Retry {
	if vm.OnFail == nil {
		return r
	}
	return func() Promise {
		vm.OnFail(f, args)
		return r()
	}
}
