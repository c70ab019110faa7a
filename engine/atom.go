package engine

import (
	"strconv"
	"sync"
	"unicode/utf8"
)

var atomTable = struct {
	sync.RWMutex
	names []string
	atoms map[string]Atom
}{
	atoms: map[string]Atom{},
}

// Atom is either a rune or an ID for an interned string.
type Atom int

// NewAtom interns the given string and returns an Atom.
func NewAtom(name string) Atom {
	// A one-char atom is just a rune.
	if r, n := utf8.DecodeLastRuneInString(name); r != utf8.RuneError && n == len(name) {
		return Atom(r)
	}

	atomTable.RLock()
	a, ok := atomTable.atoms[name]
	atomTable.RUnlock()
	if ok {
		return a
	}

	atomTable.Lock()
	defer atomTable.Unlock()

	if a, ok := atomTable.atoms[name]; ok {
		return a
	}

	a = Atom(len(atomTable.names) + (utf8.MaxRune + 1))
	atomTable.atoms[name] = a
	atomTable.names = append(atomTable.names, name)
	return a
}

func (a Atom) String() string {
	if a <= utf8.MaxRune {
		return string(rune(a))
	}
	atomTable.RLock()
	defer atomTable.RUnlock()
	return atomTable.names[a-(utf8.MaxRune+1)]
}

var (
	atomEmptyList = NewAtom("[]")
	atomDot       = NewAtom(".")
	atomComma     = NewAtom(",")
	atomSemicolon = NewAtom(";")
	atomEqual     = NewAtom("=")
	atomTrue      = NewAtom("true")
	atomFail      = NewAtom("fail")
	atomFalse     = NewAtom("false")
	atomMember    = NewAtom("member")
	atomAppend    = NewAtom("append")
	atomCall      = NewAtom("call")
)

// Functor is a pair of a name and an arity. It identifies a procedure.
type Functor struct {
	Name  Atom
	Arity int
}

func (f Functor) String() string {
	return f.Name.String() + "/" + strconv.Itoa(f.Arity)
}
