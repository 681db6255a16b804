package core

// Double is one registered expectation on an injection. Several doubles may
// share a definition (instance-of doubles do); call bookkeeping is per double.
type Double struct {
	injection  *Injection
	definition *Definition
	calls      [][]any
}

// NewDouble creates a double for definition and attaches it to injection.
func NewDouble(injection *Injection, definition *Definition) *Double {
	double := &Double{
		injection:  injection,
		definition: definition,
	}
	injection.AddDouble(double)

	return double
}

// Calls returns the argument lists of every recorded call, oldest first.
func (d *Double) Calls() [][]any {
	calls := make([][]any, len(d.calls))
	copy(calls, d.calls)

	return calls
}

// Definition returns the double's definition.
func (d *Double) Definition() *Definition {
	return d.definition
}

// ExactMatch reports whether args match the double's argument list exactly.
func (d *Double) ExactMatch(args []any) bool {
	return d.definition.arguments.ExactMatch(args)
}

// Matches reports whether the double accepts args at either precedence.
func (d *Double) Matches(args []any) bool {
	return d.ExactMatch(args) || d.WildcardMatch(args)
}

// MethodName returns the name of the intercepted method.
func (d *Double) MethodName() string {
	return d.injection.method
}

// RecordCall counts a call made with args.
func (d *Double) RecordCall(args []any) {
	d.calls = append(d.calls, args)
}

// Satisfied reports whether the call count meets the definition's times expectation.
func (d *Double) Satisfied() bool {
	return d.definition.times.SatisfiedBy(d.TimesCalled())
}

// TimesCalled returns the number of recorded calls.
func (d *Double) TimesCalled() int {
	return len(d.calls)
}

// Verify returns a *VerificationError if the double is not satisfied.
func (d *Double) Verify() error {
	if d.Satisfied() {
		return nil
	}

	return &VerificationError{Failures: []Unsatisfied{d.unsatisfied()}}
}

// WildcardMatch reports whether args match the double at wildcard precedence.
func (d *Double) WildcardMatch(args []any) bool {
	return d.definition.arguments.WildcardMatch(args)
}

func (d *Double) unsatisfied() Unsatisfied {
	return Unsatisfied{
		Method:   d.injection.method,
		Args:     d.definition.arguments.String(),
		Expected: d.definition.times.String(),
		Calls:    d.TimesCalled(),
	}
}
