package core

import "fmt"

// Definition describes what a double accepts, what it does, and how often it
// expects to be called. Strategies populate it during a build; callers may keep
// configuring it afterwards, and every double sharing it sees the change.
type Definition struct {
	arguments             ArgumentExpectation
	times                 TimesExpectation
	implementation        Handler
	implementedByOriginal bool
	afterCall             Handler
}

// NewDefinition returns a definition that accepts no arguments, any number of times.
func NewDefinition() *Definition {
	return &Definition{
		arguments: ArgumentEquality{},
		times:     AnyNumberOfTimes(),
	}
}

// AfterCall sets a handler that receives the implementation's results and
// returns the call's final results.
func (d *Definition) AfterCall(handler Handler) *Definition {
	d.afterCall = handler

	return d
}

// AnyNumberOfTimes allows any number of calls, including none.
func (d *Definition) AnyNumberOfTimes() *Definition {
	d.times = AnyNumberOfTimes()

	return d
}

// Arguments returns the current argument expectation.
func (d *Definition) Arguments() ArgumentExpectation {
	return d.arguments
}

// AtLeast expects n or more calls.
func (d *Definition) AtLeast(n int) *Definition {
	d.times = AtLeast(n)

	return d
}

// Implemented makes handler the double's implementation.
func (d *Definition) Implemented(handler Handler) *Definition {
	d.implementation = handler
	d.implementedByOriginal = false

	return d
}

// ImplementedByOriginal makes the subject's original method the double's implementation.
func (d *Definition) ImplementedByOriginal() *Definition {
	d.implementation = nil
	d.implementedByOriginal = true

	return d
}

// IsImplementedByOriginal reports whether calls are delegated to the original method.
func (d *Definition) IsImplementedByOriginal() bool {
	return d.implementedByOriginal
}

// Never expects no calls; a matching call fails immediately.
func (d *Definition) Never() *Definition {
	d.times = Never()

	return d
}

// Once expects exactly one call.
func (d *Definition) Once() *Definition {
	return d.Times(1)
}

// Returns makes the double return values.
func (d *Definition) Returns(values ...any) *Definition {
	return d.Implemented(Returns(values...))
}

// Times expects exactly n calls.
func (d *Definition) Times(n int) *Definition {
	d.times = Exactly(n)

	return d
}

// TimesExpected returns the current times expectation.
func (d *Definition) TimesExpected() TimesExpectation {
	return d.times
}

// Twice expects exactly two calls.
func (d *Definition) Twice() *Definition {
	return d.Times(2) //nolint:mnd // twice is two
}

// WithAnyArgs accepts any argument list, at wildcard precedence.
func (d *Definition) WithAnyArgs() *Definition {
	d.arguments = AnyArguments{}

	return d
}

// WithArgs accepts exactly args.
func (d *Definition) WithArgs(args ...any) *Definition {
	d.arguments = ArgumentEquality{Expected: args}

	return d
}

// WithNoArgs accepts only calls without arguments.
func (d *Definition) WithNoArgs() *Definition {
	return d.WithArgs()
}

// call runs the implementation chain for a matched call. original is nil when
// the subject had no method before it was intercepted.
func (d *Definition) call(method string, args []any, original Method) ([]any, error) {
	var results []any

	switch {
	case d.implementedByOriginal:
		if original == nil {
			return nil, &DispatchError{Err: ErrNoOriginalMethod, Method: method, Args: args}
		}

		results = original(args...)
	case d.implementation != nil:
		results = d.implementation(args...)
	}

	if d.afterCall != nil {
		results = d.afterCall(results...)
	}

	return results, nil
}

// TimesExpectation bounds how many calls a double expects.
// A negative max means unbounded.
type TimesExpectation struct {
	min, max int
}

// AnyNumberOfTimes allows any number of calls.
func AnyNumberOfTimes() TimesExpectation {
	return TimesExpectation{min: 0, max: -1}
}

// AtLeast expects n or more calls.
func AtLeast(n int) TimesExpectation {
	return TimesExpectation{min: n, max: -1}
}

// Exactly expects n calls.
func Exactly(n int) TimesExpectation {
	return TimesExpectation{min: n, max: n}
}

// Never expects no calls.
func Never() TimesExpectation {
	return TimesExpectation{min: 0, max: 0}
}

// Accepts reports whether one more call, after count calls, stays within bounds.
func (t TimesExpectation) Accepts(count int) bool {
	return t.max < 0 || count < t.max
}

// Forbidden reports whether no call is ever allowed.
func (t TimesExpectation) Forbidden() bool {
	return t.max == 0
}

// SatisfiedBy reports whether count calls meet the expectation.
func (t TimesExpectation) SatisfiedBy(count int) bool {
	return count >= t.min && (t.max < 0 || count <= t.max)
}

func (t TimesExpectation) String() string {
	switch {
	case t.max < 0 && t.min == 0:
		return "any number of times"
	case t.max < 0:
		return fmt.Sprintf("at least %d time(s)", t.min)
	case t.max == 0:
		return "never"
	default:
		return fmt.Sprintf("exactly %d time(s)", t.max)
	}
}
