package core

import (
	"fmt"
	"reflect"
)

// ArgumentExpectation decides which argument lists a double accepts.
// Exact matches are always preferred to wildcard matches.
type ArgumentExpectation interface {
	ExactMatch(args []any) bool
	WildcardMatch(args []any) bool
	String() string
}

// AnyArguments accepts every argument list, as a wildcard only.
type AnyArguments struct{}

// ExactMatch never matches: AnyArguments is the lowest-precedence expectation.
func (AnyArguments) ExactMatch([]any) bool {
	return false
}

func (AnyArguments) String() string {
	return "any args"
}

// WildcardMatch always matches.
func (AnyArguments) WildcardMatch([]any) bool {
	return true
}

// ArgumentEquality accepts a fixed argument list.
type ArgumentEquality struct {
	Expected []any
}

// ExactMatch reports whether args equal the expected list element by element.
// Matchers in the expected list are compared as values, not applied.
func (e ArgumentEquality) ExactMatch(args []any) bool {
	if len(args) != len(e.Expected) {
		return false
	}

	for i, expected := range e.Expected {
		if !reflect.DeepEqual(args[i], expected) {
			return false
		}
	}

	return true
}

func (e ArgumentEquality) String() string {
	return formatArgs(e.Expected)
}

// WildcardMatch reports whether args satisfy the expected list, applying any
// Matcher it contains.
func (e ArgumentEquality) WildcardMatch(args []any) bool {
	if len(args) != len(e.Expected) {
		return false
	}

	for i, expected := range e.Expected {
		if ok, _ := MatchValue(args[i], expected); !ok {
			return false
		}
	}

	return true
}

// Matcher defines the interface for flexible value matching.
// Compatible with gomega.GomegaMatcher via duck typing.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// MatchValue checks if actual matches expected.
// If expected implements the Matcher interface, uses its Match method.
// Otherwise, uses reflect.DeepEqual for comparison.
// Returns (success, errorMessage). If success is true, errorMessage is empty.
func MatchValue(actual, expected any) (bool, string) {
	if matcher, ok := expected.(Matcher); ok {
		success, err := matcher.Match(actual)
		if err != nil {
			return false, err.Error()
		}

		if !success {
			return false, matcher.FailureMessage(actual)
		}

		return true, ""
	}

	if reflect.DeepEqual(actual, expected) {
		return true, ""
	}

	return false, fmt.Sprintf("expected %v, got %v", expected, actual)
}
