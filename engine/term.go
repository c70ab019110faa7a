package engine

// Term refers to a term in a Heap. The zero value is not a term.
type Term int32

// Kind is the type of a term.
type Kind int8

const (
	KindInvalid Kind = iota
	KindVariable
	KindCompound
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindCompound:
		return "compound"
	default:
		return "invalid"
	}
}

// cell is a node of the term graph.
// For a variable, ref is the term it is bound to (0 while unbound).
// For a compound, args and arity locate its arguments in Heap.args.
type cell struct {
	kind  Kind
	bound bool
	ref   Term

	functor Atom
	args    int32
	arity   int32
}

// Heap is a memory region to store terms of a query.
// Terms are never freed one by one. Reset reclaims all of them at once.
type Heap struct {
	cells []cell
	args  []Term
	limit int
}

// NewHeap creates a heap that holds at most limit cells (terms and argument slots).
// If limit is 0, the heap grows without bound.
func NewHeap(limit int) Heap {
	return Heap{limit: limit}
}

// Len returns the number of terms in the heap.
func (h *Heap) Len() int {
	if len(h.cells) == 0 {
		return 0
	}
	return len(h.cells) - 1
}

// Reset drops every term in the heap.
func (h *Heap) Reset() {
	h.cells = h.cells[:0]
	h.args = h.args[:0]
}

// NewVariable creates a fresh unbound variable.
func (h *Heap) NewVariable() (Term, error) {
	return h.put(cell{kind: KindVariable})
}

// NewAtom creates a compound of arity 0.
func (h *Heap) NewAtom(name string) (Term, error) {
	return h.PutCompound(Functor{Name: NewAtom(name)})
}

// NewCompound creates a compound whose arity is the number of args.
func (h *Heap) NewCompound(name string, args ...Term) (Term, error) {
	return h.PutCompound(Functor{Name: NewAtom(name), Arity: len(args)}, args...)
}

// PutCompound creates a compound of the functor f. The arity of f must match the number of args.
func (h *Heap) PutCompound(f Functor, args ...Term) (Term, error) {
	if f.Arity != len(args) {
		return 0, &MalformedTermError{Functor: f, Args: len(args)}
	}
	for _, a := range args {
		if !h.valid(a) {
			return 0, &MalformedTermError{Functor: f, Args: len(args), Culprit: a}
		}
	}

	if err := h.grow(1 + len(args)); err != nil {
		return 0, err
	}
	offset := int32(len(h.args))
	h.args = append(h.args, args...)
	return h.put(cell{kind: KindCompound, functor: f.Name, args: offset, arity: int32(len(args))})
}

// NewList creates a list of elems terminated by [].
func (h *Heap) NewList(elems ...Term) (Term, error) {
	empty, err := h.PutCompound(Functor{Name: atomEmptyList})
	if err != nil {
		return 0, err
	}
	return h.NewPartialList(empty, elems...)
}

// NewPartialList creates a list of elems terminated by tail.
func (h *Heap) NewPartialList(tail Term, elems ...Term) (Term, error) {
	l := tail
	for i := len(elems) - 1; i >= 0; i-- {
		var err error
		l, err = h.PutCompound(Functor{Name: atomDot, Arity: 2}, elems[i], l)
		if err != nil {
			return 0, err
		}
	}
	return l, nil
}

// Kind returns the kind of t without dereferencing it.
func (h *Heap) Kind(t Term) Kind {
	if !h.valid(t) {
		return KindInvalid
	}
	return h.cells[t].kind
}

// IsVariable checks if t is an unbound variable after dereferencing.
func (h *Heap) IsVariable(t Term) bool {
	return h.Kind(h.Deref(t)) == KindVariable
}

// IsBound checks if t is a bound variable. It doesn't dereference t.
func (h *Heap) IsBound(t Term) bool {
	return h.Kind(t) == KindVariable && h.cells[t].bound
}

// Deref follows the variable chain and returns the first compound or the last unbound variable.
func (h *Heap) Deref(t Term) Term {
	for h.valid(t) {
		c := &h.cells[t]
		if c.kind != KindVariable || !c.bound {
			break
		}
		t = c.ref
	}
	return t
}

// Functor returns the functor of t after dereferencing.
func (h *Heap) Functor(t Term) (Functor, bool) {
	t = h.Deref(t)
	if h.Kind(t) != KindCompound {
		return Functor{}, false
	}
	c := h.cells[t]
	return Functor{Name: c.functor, Arity: int(c.arity)}, true
}

// Arity returns the number of arguments of t. It is 0 for variables.
func (h *Heap) Arity(t Term) int {
	f, _ := h.Functor(t)
	return f.Arity
}

// Arg returns the n-th argument of t, counting from 0.
func (h *Heap) Arg(t Term, n int) (Term, bool) {
	args := h.Args(t)
	if n < 0 || n >= len(args) {
		return 0, false
	}
	return args[n], true
}

// Args returns the arguments of t after dereferencing. The returned slice must not be modified.
func (h *Heap) Args(t Term) []Term {
	t = h.Deref(t)
	if h.Kind(t) != KindCompound {
		return nil
	}
	c := h.cells[t]
	return h.args[c.args : c.args+c.arity : c.args+c.arity]
}

// Ground checks if t contains no unbound variables.
func (h *Heap) Ground(t Term) bool {
	for terms := []Term{t}; len(terms) > 0; {
		t, terms = h.Deref(terms[len(terms)-1]), terms[:len(terms)-1]
		switch h.Kind(t) {
		case KindVariable:
			return false
		case KindCompound:
			terms = append(terms, h.Args(t)...)
		}
	}
	return true
}

// Equal checks if x and y are structurally equal without binding anything.
func (h *Heap) Equal(x, y Term) bool {
	type pair struct{ x, y Term }
	for pairs := []pair{{x: x, y: y}}; len(pairs) > 0; {
		p := pairs[len(pairs)-1]
		pairs = pairs[:len(pairs)-1]

		x, y := h.Deref(p.x), h.Deref(p.y)
		if x == y {
			continue
		}
		if h.Kind(x) != KindCompound || h.Kind(y) != KindCompound {
			return false
		}
		fx, _ := h.Functor(x)
		fy, _ := h.Functor(y)
		if fx != fy {
			return false
		}
		xs, ys := h.Args(x), h.Args(y)
		for i := len(xs) - 1; i >= 0; i-- {
			pairs = append(pairs, pair{x: xs[i], y: ys[i]})
		}
	}
	return true
}

func (h *Heap) valid(t Term) bool {
	return t > 0 && int(t) < len(h.cells)
}

func (h *Heap) bind(v, t Term) {
	c := &h.cells[v]
	c.bound = true
	c.ref = t
}

func (h *Heap) unbind(v Term) {
	c := &h.cells[v]
	c.bound = false
	c.ref = 0
}

func (h *Heap) put(c cell) (Term, error) {
	if len(h.cells) == 0 {
		// Cell 0 is reserved so that the zero Term never refers to a term.
		h.cells = append(h.cells, cell{})
	}
	if err := h.grow(1); err != nil {
		return 0, err
	}
	h.cells = append(h.cells, c)
	return Term(len(h.cells) - 1), nil
}

// grow checks if n more cells fit in the heap.
func (h *Heap) grow(n int) error {
	if h.limit == 0 {
		return nil
	}
	if h.Len()+len(h.args)+n > h.limit {
		return &ResourceError{Resource: ResourceHeap}
	}
	return nil
}
