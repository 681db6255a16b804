package impdouble_test

import (
	"fmt"

	"github.com/toejough/impdouble"
)

// fakeReporter records failures and cleanups instead of stopping the test.
type fakeReporter struct {
	failures []string
	cleanups []func()
}

func (r *fakeReporter) Cleanup(cleanupFunc func()) {
	r.cleanups = append(r.cleanups, cleanupFunc)
}

func (r *fakeReporter) Fatalf(format string, args ...any) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func (r *fakeReporter) Helper() {}

// finish runs the registered cleanups the way testing does: last in, first out.
func (r *fakeReporter) finish() {
	for i := len(r.cleanups) - 1; i >= 0; i-- {
		r.cleanups[i]()
	}

	r.cleanups = nil
}

// calculator is a subject with real Add and Sub methods.
type calculator struct {
	impdouble.Methods
}

func (c *calculator) Add(a, b int) int {
	return impdouble.Result[int](c.Invoke("Add", a, b), 0)
}

func newCalculator() *calculator {
	c := &calculator{}
	c.Define("Add", func(args ...any) []any {
		return []any{impdouble.Arg[int](args, 0) + impdouble.Arg[int](args, 1)}
	})
	c.Define("Sub", func(args ...any) []any {
		return []any{impdouble.Arg[int](args, 0) - impdouble.Arg[int](args, 1)}
	})

	return c
}

// calculators builds calculators through New, the way a class subject would.
type calculators struct {
	impdouble.Methods
}

func newCalculators() *calculators {
	c := &calculators{}
	c.Define("New", func(...any) []any {
		return []any{newCalculator()}
	})

	return c
}

func (c *calculators) New() *calculator {
	return impdouble.Result[*calculator](c.Invoke("New"), 0)
}
