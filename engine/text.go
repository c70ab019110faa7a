package engine

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	unquotedAtomPattern     = regexp.MustCompile(`\A[a-z]\w*\z`)
	graphicalAtomPattern    = regexp.MustCompile(`\A[#$&*+\-./:<=>?@^~\\]+\z`)
	quotedAtomEscapePattern = regexp.MustCompile("[[:cntrl:]]|\\\\|'|\"|`")
)

type writeOptions struct {
	quoted        bool
	listNotation  bool
	variableNames map[Term]string
}

var defaultWriteOptions = writeOptions{
	quoted: true,
}

// WriteOption specifies how a term is written.
type WriteOption func(*writeOptions)

// WithQuoted specifies if atoms are quoted when they aren't plain identifiers. It's true by default.
func WithQuoted(quoted bool) WriteOption {
	return func(o *writeOptions) {
		o.quoted = quoted
	}
}

// WithListNotation specifies if '.'/2 chains are written as [a, b|T] instead of '.'(a, '.'(b, T)).
func WithListNotation(listNotation bool) WriteOption {
	return func(o *writeOptions) {
		o.listNotation = listNotation
	}
}

// WithVariableNames gives names to unbound variables. Other variables are written as _N.
func WithVariableNames(names map[Term]string) WriteOption {
	return func(o *writeOptions) {
		o.variableNames = names
	}
}

// WriteTerm writes t in prefix functional notation, dereferencing bound variables on the way.
// It's meant for diagnostics, not as a serialization format.
func (h *Heap) WriteTerm(w io.Writer, t Term, opts ...WriteOption) error {
	o := defaultWriteOptions
	for _, opt := range opts {
		opt(&o)
	}
	tw := termWriter{w: w, heap: h, opts: &o}
	tw.term(t)
	return tw.err
}

// Format returns the text of t written by WriteTerm.
func (h *Heap) Format(t Term, opts ...WriteOption) string {
	var sb strings.Builder
	_ = h.WriteTerm(&sb, t, opts...)
	return sb.String()
}

// termWriter keeps the first error and ignores the writes after it.
type termWriter struct {
	w    io.Writer
	heap *Heap
	opts *writeOptions
	err  error
}

func (tw *termWriter) write(s string) {
	if tw.err != nil {
		return
	}
	_, tw.err = io.WriteString(tw.w, s)
}

func (tw *termWriter) term(t Term) {
	h := tw.heap
	t = h.Deref(t)
	switch h.Kind(t) {
	case KindVariable:
		tw.variable(t)
	case KindCompound:
		f, _ := h.Functor(t)
		if tw.opts.listNotation && f == (Functor{Name: atomDot, Arity: 2}) {
			tw.list(t)
			return
		}
		tw.atom(f.Name)
		args := h.Args(t)
		if len(args) == 0 {
			return
		}
		tw.write("(")
		for i, a := range args {
			if i > 0 {
				tw.write(", ")
			}
			tw.term(a)
		}
		tw.write(")")
	default:
		tw.write(fmt.Sprintf("<invalid term %d>", t))
	}
}

func (tw *termWriter) variable(v Term) {
	if n, ok := tw.opts.variableNames[v]; ok {
		tw.write(n)
		return
	}
	tw.write(fmt.Sprintf("_%d", v))
}

func (tw *termWriter) list(l Term) {
	h := tw.heap
	tw.write("[")
	for i := 0; ; i++ {
		args := h.Args(l)
		if i > 0 {
			tw.write(", ")
		}
		tw.term(args[0])

		l = h.Deref(args[1])
		f, ok := h.Functor(l)
		switch {
		case ok && f == (Functor{Name: atomDot, Arity: 2}):
			continue
		case ok && f == (Functor{Name: atomEmptyList}):
			tw.write("]")
			return
		default:
			tw.write("|")
			tw.term(l)
			tw.write("]")
			return
		}
	}
}

func (tw *termWriter) atom(a Atom) {
	s := a.String()
	switch {
	case !tw.opts.quoted:
		tw.write(s)
	case a == atomEmptyList, s == "{}":
		tw.write(s)
	case a == atomDot, a == atomComma:
		tw.write(quote(s))
	case graphicalAtomPattern.MatchString(s):
		tw.write(s)
	case s == ";", s == "!":
		tw.write(s)
	case !unquotedAtomPattern.MatchString(s):
		tw.write(quote(s))
	default:
		tw.write(s)
	}
}

func quote(s string) string {
	return fmt.Sprintf("'%s'", quotedAtomEscapePattern.ReplaceAllStringFunc(s, quotedIdentEscape))
}

func quotedIdentEscape(s string) string {
	switch s {
	case "\a":
		return `\a`
	case "\b":
		return `\b`
	case "\f":
		return `\f`
	case "\n":
		return `\n`
	case "\r":
		return `\r`
	case "\t":
		return `\t`
	case "\v":
		return `\v`
	case `\`:
		return `\\`
	case `'`:
		return `\'`
	case `"`:
		return `\"`
	case "`":
		return "\\`"
	default:
		var ret []string
		for _, r := range s {
			ret = append(ret, fmt.Sprintf(`\x%x\`, r))
		}
		return strings.Join(ret, "")
	}
}
