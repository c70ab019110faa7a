package engine

// True always succeeds once.
func True(_ *VM, _ []Term, k Cont, r Retry) Promise {
	return k(r)
}

// Fail never succeeds.
func Fail(_ *VM, _ []Term, _ Cont, r Retry) Promise {
	return r()
}

// Equal unifies the two arguments. Unlike ISO Prolog's =/2, it doesn't check if the result is cyclic.
func Equal(vm *VM, args []Term, k Cont, r Retry) Promise {
	return vm.Unify(args[0], args[1], k, r)
}

// Conjunction solves the first argument and, for each of its solutions, the second one.
func Conjunction(vm *VM, args []Term, k Cont, r Retry) Promise {
	second := args[1]
	return vm.Solve(args[0], func(r Retry) Promise {
		return vm.Solve(second, k, r)
	}, r)
}

// Disjunction yields the solutions of the first argument and then those of the second one.
var Disjunction = Clauses(
	func(vm *VM, args []Term, k Cont, r Retry) Promise {
		return vm.Solve(args[0], k, r)
	},
	func(vm *VM, args []Term, k Cont, r Retry) Promise {
		return vm.Solve(args[1], k, r)
	},
)

// Call solves the argument as a goal.
func Call(vm *VM, args []Term, k Cont, r Retry) Promise {
	return vm.Solve(args[0], k, r)
}

var functorMember = Functor{Name: atomMember, Arity: 2}

// Member succeeds if the first argument is an element of the list in the second argument.
// Retrying yields the following elements in order.
//
//	member(X, [X|_]).
//	member(X, [_|T]) :- member(X, T).
func Member(vm *VM, args []Term, k Cont, r Retry) Promise {
	return memberClauses(vm, args, k, r)
}

var memberClauses = Clauses(memberHead, memberTail)

func memberHead(vm *VM, args []Term, k Cont, r Retry) Promise {
	vs, err := vm.fresh(1)
	if err != nil {
		return Error(err)
	}
	list, err := vm.Terms.NewPartialList(vs[0], args[0])
	if err != nil {
		return Error(err)
	}
	return vm.Unify(args[1], list, k, r)
}

func memberTail(vm *VM, args []Term, k Cont, r Retry) Promise {
	vs, err := vm.fresh(2)
	if err != nil {
		return Error(err)
	}
	head, tail := vs[0], vs[1]
	list, err := vm.Terms.NewPartialList(tail, head)
	if err != nil {
		return Error(err)
	}
	elem := args[0]
	return vm.Unify(args[1], list, func(r Retry) Promise {
		return vm.Call(functorMember, []Term{elem, tail}, k, r)
	}, r)
}

var functorAppend = Functor{Name: atomAppend, Arity: 3}

// Append succeeds if the third argument is the concatenation of the first two lists.
// With an unbound first and second argument, retrying yields every split of the third one.
//
//	append([], L, L).
//	append([H|T], L, [H|R]) :- append(T, L, R).
func Append(vm *VM, args []Term, k Cont, r Retry) Promise {
	return appendClauses(vm, args, k, r)
}

var appendClauses = Clauses(appendEmpty, appendCons)

func appendEmpty(vm *VM, args []Term, k Cont, r Retry) Promise {
	vs, err := vm.fresh(1)
	if err != nil {
		return Error(err)
	}
	empty, err := vm.Terms.NewList()
	if err != nil {
		return Error(err)
	}
	l := vs[0]
	return vm.UnifyArgs(args, []Term{empty, l, l}, k, r)
}

func appendCons(vm *VM, args []Term, k Cont, r Retry) Promise {
	vs, err := vm.fresh(4)
	if err != nil {
		return Error(err)
	}
	h, t, l, rest := vs[0], vs[1], vs[2], vs[3]
	x, err := vm.Terms.NewPartialList(t, h)
	if err != nil {
		return Error(err)
	}
	z, err := vm.Terms.NewPartialList(rest, h)
	if err != nil {
		return Error(err)
	}
	return vm.UnifyArgs(args, []Term{x, l, z}, func(r Retry) Promise {
		return vm.Call(functorAppend, []Term{t, l, rest}, k, r)
	}, r)
}
