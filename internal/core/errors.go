package core

import (
	"errors"
	"fmt"
	"strings"
)

// Exported variables.
var (
	// ErrStrategyAlreadyDefined is returned when a builder is given a second verification strategy.
	ErrStrategyAlreadyDefined = errors.New("verification strategy already defined")
	// ErrNoStrategyDefined is returned when a builder builds without a verification strategy.
	ErrNoStrategyDefined = errors.New("no verification strategy defined")
	// ErrIllegalStrategyCombination is returned when dont-allow verification meets a proxy implementation.
	ErrIllegalStrategyCombination = errors.New("illegal strategy combination")
	// ErrUnexpectedCall is returned when a call matches a double that forbids calls.
	ErrUnexpectedCall = errors.New("unexpected call")
	// ErrNoMatchingDouble is returned when a call matches no double and cannot fall back to the original.
	ErrNoMatchingDouble = errors.New("no matching double")
	// ErrNoOriginalMethod is returned when a proxy double has no original method to delegate to.
	ErrNoOriginalMethod = errors.New("no original method")
	// ErrUndefinedMethod is returned when a subject is called with a method it does not define.
	ErrUndefinedMethod = errors.New("undefined method")
	// ErrUnsatisfied is returned when verification finds doubles whose expectations were not met.
	ErrUnsatisfied = errors.New("unsatisfied double")
)

// DefinitionError reports a double that could not be built.
type DefinitionError struct {
	Err    error
	Detail string
}

func (e *DefinitionError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}

	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// DispatchError reports a call to an intercepted method that no double could answer.
type DispatchError struct {
	Err    error
	Method string
	Args   []any
	Detail string
}

func (e *DispatchError) Error() string {
	msg := fmt.Sprintf("%v: %s(%s)", e.Err, e.Method, formatArgs(e.Args))
	if e.Detail != "" {
		msg += "\n" + e.Detail
	}

	return msg
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// Unsatisfied describes one double whose call count did not meet its expectation.
type Unsatisfied struct {
	Method   string
	Args     string
	Expected string
	Calls    int
}

func (u Unsatisfied) String() string {
	return fmt.Sprintf("%s(%s): expected to be called %s, was called %d time(s)", u.Method, u.Args, u.Expected, u.Calls)
}

// VerificationError aggregates every unsatisfied double found by a verification pass.
type VerificationError struct {
	Failures []Unsatisfied
}

func (e *VerificationError) Error() string {
	lines := make([]string, 0, len(e.Failures)+1)
	lines = append(lines, fmt.Sprintf("%v: %d double(s) not satisfied", ErrUnsatisfied, len(e.Failures)))

	for _, failure := range e.Failures {
		lines = append(lines, "  "+failure.String())
	}

	return strings.Join(lines, "\n")
}

func (e *VerificationError) Unwrap() error {
	return ErrUnsatisfied
}

func definitionError(err error, format string, args ...any) *DefinitionError {
	return &DefinitionError{Err: err, Detail: fmt.Sprintf(format, args...)}
}

// formatArgs renders an argument list the way it would appear at a call site.
func formatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprintf("%#v", arg)
	}

	return strings.Join(parts, ", ")
}
