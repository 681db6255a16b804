package core

import (
	"fmt"
	"strings"

	"github.com/akedrou/textdiff"
	"go.uber.org/zap"
)

// Injection is the interception point for one (subject, method) pair. While
// installed, the subject's method table routes the method through Dispatch.
type Injection struct {
	space    *Space
	subject  Subject
	method   string
	original Method
	doubles  []*Double
}

// newInjection records the subject's current method, if any, and installs the intercept.
func newInjection(space *Space, subject Subject, method string) *Injection {
	injection := &Injection{
		space:   space,
		subject: subject,
		method:  method,
	}

	if original, ok := subject.MethodTable().Lookup(method); ok {
		injection.original = original
	}

	subject.MethodTable().Define(method, injection.intercept)

	return injection
}

// AddDouble appends double; registration order is dispatch order within a precedence.
func (i *Injection) AddDouble(double *Double) {
	i.doubles = append(i.doubles, double)

	i.space.logger.Debug("double added",
		zap.String("method", i.method),
		zap.Stringer("args", double.definition.arguments),
		zap.Stringer("times", double.definition.times),
		zap.Int("doubles", len(i.doubles)),
	)
}

// Dispatch answers a call to the intercepted method.
//
// Exact matches win over wildcard matches regardless of registration order.
// Within a precedence, the first matching double in registration order takes
// the call, even once its times expectation is exceeded; verification reports
// the overcount.
func (i *Injection) Dispatch(args []any) ([]any, error) {
	double := i.findDouble(args)
	if double == nil {
		if i.original != nil && i.hasProxy() {
			i.space.logger.Debug("falling back to original", zap.String("method", i.method), zap.Any("args", args))

			return i.original(args...), nil
		}

		i.space.logger.Debug("no matching double", zap.String("method", i.method), zap.Any("args", args))

		return nil, &DispatchError{Err: ErrNoMatchingDouble, Method: i.method, Args: args, Detail: i.closestDiff(args)}
	}

	double.RecordCall(args)

	i.space.logger.Debug("double selected",
		zap.String("method", i.method),
		zap.Any("args", args),
		zap.Stringer("expected", double.definition.arguments),
		zap.Int("calls", double.TimesCalled()),
	)

	if double.definition.times.Forbidden() {
		return nil, &DispatchError{
			Err:    ErrUnexpectedCall,
			Method: i.method,
			Args:   args,
			Detail: "the double for this call does not allow it to be called",
		}
	}

	return double.definition.call(i.method, args, i.original)
}

// Doubles returns the injection's doubles in registration order.
func (i *Injection) Doubles() []*Double {
	doubles := make([]*Double, len(i.doubles))
	copy(doubles, i.doubles)

	return doubles
}

// Method returns the intercepted method's name.
func (i *Injection) Method() string {
	return i.method
}

// Original returns the method the subject had before interception, or nil.
func (i *Injection) Original() Method {
	return i.original
}

// Restore returns the subject to its pre-interception state and drops all doubles.
func (i *Injection) Restore() {
	table := i.subject.MethodTable()

	if i.original != nil {
		table.Define(i.method, i.original)
	} else {
		table.Remove(i.method)
	}

	i.doubles = nil
}

// Subject returns the intercepted subject.
func (i *Injection) Subject() Subject {
	return i.subject
}

// closestDiff renders a diff between the registered argument list closest to
// args and args themselves, or "" when no fixed argument list is registered.
func (i *Injection) closestDiff(args []any) string {
	var closest *ArgumentEquality

	for _, double := range i.doubles {
		equality, ok := double.definition.arguments.(ArgumentEquality)
		if !ok {
			continue
		}

		if closest == nil || len(equality.Expected) == len(args) {
			closest = &equality
		}

		if len(equality.Expected) == len(args) {
			break
		}
	}

	if closest == nil {
		return ""
	}

	return textdiff.Unified(
		i.method+" (registered)",
		i.method+" (called)",
		argLines(closest.Expected),
		argLines(args),
	)
}

func (i *Injection) findDouble(args []any) *Double {
	if double := selectDouble(i.doubles, args, (*Double).ExactMatch); double != nil {
		return double
	}

	return selectDouble(i.doubles, args, (*Double).WildcardMatch)
}

func (i *Injection) hasProxy() bool {
	for _, double := range i.doubles {
		if double.definition.implementedByOriginal {
			return true
		}
	}

	return false
}

// intercept is the Method installed in the subject's method table.
func (i *Injection) intercept(args ...any) []any {
	results, err := i.Dispatch(args)
	if err != nil {
		panic(err)
	}

	return results
}

// argLines renders one argument per line, for diffing.
func argLines(args []any) string {
	var builder strings.Builder

	for _, arg := range args {
		fmt.Fprintf(&builder, "%#v\n", arg)
	}

	return builder.String()
}

func selectDouble(doubles []*Double, args []any, matches func(*Double, []any) bool) *Double {
	for _, double := range doubles {
		if matches(double, args) {
			return double
		}
	}

	return nil
}
