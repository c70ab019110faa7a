package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// succeed is a continuation that stops the search with a success.
func succeed(Retry) Promise {
	return Bool(true)
}

// failure is a retry that stops the search with a failure.
func failure() Promise {
	return Bool(false)
}

func TestVM_Bind(t *testing.T) {
	var vm VM
	must := mustFunc(t)
	h := &vm.Terms

	a := must(h.NewAtom("a"))
	x := must(h.NewVariable())
	y := must(h.NewVariable())

	require.NoError(t, vm.Bind(x, a))
	assert.Equal(t, 1, vm.Trail.Checkpoint())

	t.Run("bound variable", func(t *testing.T) {
		err := vm.Bind(x, a)
		assert.True(t, errors.Is(err, ErrRebinding))
		var re *RebindingError
		require.True(t, errors.As(err, &re))
		assert.Equal(t, x, re.Variable)
		assert.Equal(t, KindVariable, re.Kind)
	})

	t.Run("compound", func(t *testing.T) {
		err := vm.Bind(a, y)
		assert.True(t, errors.Is(err, ErrRebinding))
		var re *RebindingError
		require.True(t, errors.As(err, &re))
		assert.Equal(t, KindCompound, re.Kind)
	})

	t.Run("itself", func(t *testing.T) {
		assert.True(t, errors.Is(vm.Bind(y, y), ErrMalformedTerm))
	})

	t.Run("not a term", func(t *testing.T) {
		assert.True(t, errors.Is(vm.Bind(y, 0), ErrMalformedTerm))
	})

	assert.Equal(t, 1, vm.Trail.Checkpoint())
}

func TestVM_Unify(t *testing.T) {
	t.Run("reflexivity", func(t *testing.T) {
		var vm VM
		must := mustFunc(t)
		h := &vm.Terms

		x := must(h.NewVariable())
		f := must(h.NewCompound("f", x, must(h.NewAtom("a")), must(h.NewCompound("g", x))))

		for _, term := range []Term{x, f} {
			ok, err := vm.Unify(term, term, succeed, failure).Force(context.Background())
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, 0, vm.Trail.Checkpoint())
		}

		// A bound variable against the term it's bound to.
		y := must(h.NewVariable())
		require.NoError(t, vm.Bind(y, f))
		ok, err := vm.Unify(y, f, succeed, failure).Force(context.Background())
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 1, vm.Trail.Checkpoint())
	})

	t.Run("structural equivalence of ground terms", func(t *testing.T) {
		var vm VM
		must := mustFunc(t)
		h := &vm.Terms

		a := must(h.NewAtom("a"))
		b := must(h.NewAtom("b"))
		ground := []Term{
			a,
			b,
			must(h.NewCompound("f", a)),
			must(h.NewCompound("f", b)),
			must(h.NewCompound("f", a, b)),
			must(h.NewCompound("f", must(h.NewCompound("g", a)), b)),
			must(h.NewCompound("f", must(h.NewCompound("g", a)), b)),
			must(h.NewCompound("g", a, b)),
			must(h.NewList(a, b)),
			must(h.NewList(a, b)),
		}

		for _, x := range ground {
			for _, y := range ground {
				ok, err := vm.Unify(x, y, succeed, failure).Force(context.Background())
				assert.NoError(t, err)
				assert.Equal(t, h.Equal(x, y), ok, "%s = %s", h.Format(x), h.Format(y))
				assert.Equal(t, 0, vm.Trail.Checkpoint())
			}
		}
	})

	t.Run("arity mismatch", func(t *testing.T) {
		var vm VM
		must := mustFunc(t)
		h := &vm.Terms

		x := must(h.NewVariable())
		y := must(h.NewVariable())
		ok, err := vm.Unify(must(h.NewCompound("f", x)), must(h.NewCompound("f", x, y)), succeed, failure).Force(context.Background())
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 0, vm.Trail.Checkpoint())
	})

	t.Run("functor mismatch", func(t *testing.T) {
		var vm VM
		must := mustFunc(t)
		h := &vm.Terms

		x := must(h.NewVariable())
		ok, err := vm.Unify(must(h.NewCompound("f", x)), must(h.NewCompound("g", x)), succeed, failure).Force(context.Background())
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 0, vm.Trail.Checkpoint())
	})

	t.Run("variable binding", func(t *testing.T) {
		var vm VM
		must := mustFunc(t)
		h := &vm.Terms

		x := must(h.NewVariable())
		y := must(h.NewVariable())
		a := must(h.NewAtom("a"))
		f := must(h.NewCompound("f", x, a))
		g := must(h.NewCompound("f", a, y))

		ok, err := vm.Unify(f, g, succeed, failure).Force(context.Background())
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, a, h.Deref(x))
		assert.Equal(t, a, h.Deref(y))
		assert.Equal(t, []Term{x, y}, vm.Trail.vars)
	})

	t.Run("the left variable is bound", func(t *testing.T) {
		var vm VM
		must := mustFunc(t)
		h := &vm.Terms

		x := must(h.NewVariable())
		y := must(h.NewVariable())

		ok, err := vm.Unify(x, y, succeed, failure).Force(context.Background())
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, h.IsBound(x))
		assert.False(t, h.IsBound(y))
		assert.Equal(t, []Term{x}, vm.Trail.vars)
	})

	t.Run("the retry is passed on", func(t *testing.T) {
		var vm VM
		must := mustFunc(t)
		h := &vm.Terms

		x := must(h.NewVariable())
		f := must(h.NewCompound("f", x, x))
		called := false
		r := func() Promise {
			called = true
			return Bool(false)
		}

		ok, err := vm.Unify(f, must(h.NewCompound("f", must(h.NewAtom("a")), must(h.NewAtom("a")))), func(got Retry) Promise {
			return got()
		}, r).Force(context.Background())
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.True(t, called)
		assert.False(t, h.IsBound(x))
		assert.Equal(t, 0, vm.Trail.Checkpoint())
	})

	t.Run("invalid term", func(t *testing.T) {
		var vm VM
		must := mustFunc(t)
		h := &vm.Terms

		a := must(h.NewAtom("a"))
		_, err := vm.Unify(a, 100, succeed, failure).Force(context.Background())
		assert.True(t, errors.Is(err, ErrMalformedTerm))
	})
}

func TestVM_Unify_trailRestoration(t *testing.T) {
	var vm VM
	must := mustFunc(t)
	h := &vm.Terms

	a := must(h.NewAtom("a"))
	b := must(h.NewAtom("b"))
	c := must(h.NewAtom("c"))
	x := must(h.NewVariable())
	y := must(h.NewVariable())
	z := must(h.NewVariable())
	w := must(h.NewVariable())

	// A binding made before the choice point survives it.
	require.NoError(t, vm.Bind(w, a))
	checkpoint := vm.Trail.Checkpoint()

	// f(X, Y, Z, c) = f(a, b, c, a) binds X, Y, and Z before it fails on the last pair.
	var trailAtFailure int
	r := vm.ChoicePoint(func() Promise {
		trailAtFailure = vm.Trail.Checkpoint()
		return Bool(false)
	})
	ok, err := vm.Unify(
		must(h.NewCompound("f", x, y, z, c)),
		must(h.NewCompound("f", a, b, c, a)),
		succeed, r,
	).Force(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, checkpoint, trailAtFailure)
	assert.Equal(t, checkpoint, vm.Trail.Checkpoint())
	for _, v := range []Term{x, y, z} {
		assert.False(t, h.IsBound(v))
	}
	assert.True(t, h.IsBound(w))
}

func TestVM_UnifyArgs(t *testing.T) {
	var vm VM
	must := mustFunc(t)
	h := &vm.Terms

	a := must(h.NewAtom("a"))
	x := must(h.NewVariable())

	ok, err := vm.UnifyArgs(nil, nil, succeed, failure).Force(context.Background())
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = vm.UnifyArgs([]Term{x}, []Term{a}, succeed, failure).Force(context.Background())
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, a, h.Deref(x))

	_, err = vm.UnifyArgs([]Term{x}, nil, succeed, failure).Force(context.Background())
	assert.True(t, errors.Is(err, ErrMalformedTerm))
}

func TestVM_Unify_deep(t *testing.T) {
	var vm VM
	must := mustFunc(t)
	h := &vm.Terms

	const n = 100000
	elems := make([]Term, n)
	vars := make([]Term, n)
	for i := range elems {
		elems[i] = must(h.NewAtom("a"))
		vars[i] = must(h.NewVariable())
	}

	ok, err := vm.Unify(must(h.NewList(elems...)), must(h.NewList(vars...)), succeed, failure).Force(context.Background())
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, n, vm.Trail.Checkpoint())
}

func TestVM_Reset(t *testing.T) {
	var vm VM
	must := mustFunc(t)
	h := &vm.Terms

	x := must(h.NewVariable())
	require.NoError(t, vm.Bind(x, must(h.NewAtom("a"))))

	vm.Reset()
	assert.Equal(t, 0, vm.Trail.Checkpoint())
	assert.Equal(t, 0, h.Len())
}
