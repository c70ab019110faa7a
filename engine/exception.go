package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTerm is a structural error in term construction.
	ErrMalformedTerm = errors.New("malformed term")

	// ErrRebinding is an attempt to bind something other than an unbound variable.
	ErrRebinding = errors.New("rebinding violation")

	// ErrInstantiation is an attempt to call an unbound variable.
	ErrInstantiation = errors.New("instantiation error")

	// ErrResourceExhausted is a failure to allocate heap cells or trail entries.
	ErrResourceExhausted = errors.New("resource exhausted")
)

// MalformedTermError is a compound whose declared arity doesn't match its arguments,
// or whose argument isn't a term of the heap.
type MalformedTermError struct {
	Functor Functor
	Args    int
	Culprit Term
}

func (e *MalformedTermError) Error() string {
	return fmt.Sprintf("malformed term: functor=%s, args=%d, culprit=%d", e.Functor, e.Args, e.Culprit)
}

func (e *MalformedTermError) Is(target error) bool {
	return target == ErrMalformedTerm
}

// RebindingError is an attempt to bind a term that isn't an unbound variable.
type RebindingError struct {
	Variable Term
	Kind     Kind
}

func (e *RebindingError) Error() string {
	if e.Kind == KindVariable {
		return fmt.Sprintf("rebinding violation: _%d is already bound", e.Variable)
	}
	return fmt.Sprintf("rebinding violation: %d is a %s", e.Variable, e.Kind)
}

func (e *RebindingError) Is(target error) bool {
	return target == ErrRebinding
}

// TypeError is a goal that isn't callable.
type TypeError struct {
	Culprit Term
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error: callable expected, culprit=%d", e.Culprit)
}

// ExistenceError is a call to an unknown procedure.
type ExistenceError struct {
	Procedure Functor
}

func (e *ExistenceError) Error() string {
	return fmt.Sprintf("existence error: unknown procedure %s", e.Procedure)
}

// Resource is what a query ran out of.
type Resource string

const (
	ResourceHeap  Resource = "heap"
	ResourceTrail Resource = "trail"
)

// ResourceError is a failure to allocate in the heap or on the trail. It is fatal for the query.
type ResourceError struct {
	Resource Resource
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource error: %s", e.Resource)
}

func (e *ResourceError) Is(target error) bool {
	return target == ErrResourceExhausted
}
