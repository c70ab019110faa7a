package engine

import "context"

var (
	truePromise  = Promise{ok: true}
	falsePromise = Promise{ok: false}
)

// Promise is a delayed execution that results in (bool, error). The zero value for Promise is equivalent to Bool(false).
type Promise struct {
	delayed func() Promise

	ok  bool
	err error
}

// Delay delays an execution of k.
func Delay(k func() Promise) Promise {
	return Promise{delayed: k}
}

// Bool returns a promise that simply returns (ok, nil).
func Bool(ok bool) Promise {
	if ok {
		return truePromise
	}
	return falsePromise
}

// Error returns a promise that simply returns (false, err).
func Error(err error) Promise {
	return Promise{err: err}
}

// checkInterval is the number of steps between checks of the context.
const checkInterval = 1024

// Force enforces the delayed execution and returns the result. (i.e. trampoline)
// Each step returns the next one instead of calling it, so the Go stack stays flat however deep the search goes.
func (p Promise) Force(ctx context.Context) (bool, error) {
	for n := 0; p.delayed != nil; n++ {
		if n%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return false, err
			}
		}
		p = p.delayed()
	}
	return p.ok, p.err
}
