// Package match provides argument matchers for impdouble doubles.
// An argument list containing a matcher is matched at wildcard precedence:
// a double registered with plain values always wins over one using matchers.
// This package is designed to be dot-imported alongside gomega matchers:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    . "github.com/toejough/impdouble/match"
//	)
//
//	impdouble.Stub(space, subject).On("Add", BeNumeric, BeNumerically(">", 0)).Returns(42)
package match

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/toejough/impdouble/internal/core"
)

// Exported variables.
var (
	// BeAny is a matcher that matches any value.
	//
	//nolint:gochecknoglobals // Intentional exported constant-like value
	BeAny Matcher = anyMatcher{}
	// BeBoolean matches bool values.
	//
	//nolint:gochecknoglobals // Intentional exported constant-like value
	BeBoolean Matcher = kindMatcher{name: "a boolean", kinds: []reflect.Kind{reflect.Bool}}
	// BeNumeric matches values of any integer, float or complex kind.
	//
	//nolint:gochecknoglobals // Intentional exported constant-like value
	BeNumeric Matcher = kindMatcher{name: "numeric", kinds: []reflect.Kind{
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
	}}
)

// Matcher is the argument matcher doubles recognize.
// Compatible with gomega.GomegaMatcher via duck typing - any type
// implementing Match and FailureMessage will work.
type Matcher = core.Matcher

// BeA returns a matcher for values whose dynamic type is T, or implements T
// when T is an interface.
func BeA[T any]() Matcher {
	return typeMatcher[T]{}
}

// RespondTo matches subjects whose method table defines every named method.
func RespondTo(methods ...string) Matcher {
	return respondToMatcher{methods: methods}
}

// Satisfy returns a matcher that uses a predicate function to check for a match.
// The predicate should return nil if the value matches, or an error describing
// the mismatch if it does not.
//
// Example:
//
//	creator.On("Add", Satisfy(func(x int) error {
//	    if x < 0 { return fmt.Errorf("expected positive, got %d", x) }
//	    return nil
//	})).Returns(1)
func Satisfy[T any](predicate func(T) error) Matcher {
	return &satisfyMatcher[T]{predicate: predicate}
}

// unexported variables.
var (
	errTypeMismatch = errors.New("type mismatch")
)

// anyMatcher is the implementation of the BeAny matcher.
type anyMatcher struct{}

// FailureMessage returns an empty string since BeAny always matches.
func (anyMatcher) FailureMessage(any) string {
	return ""
}

// Match always returns true - matches any value.
func (anyMatcher) Match(any) (bool, error) {
	return true, nil
}

type kindMatcher struct {
	name  string
	kinds []reflect.Kind
}

func (m kindMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("expected %v (%T) to be %s", actual, actual, m.name)
}

func (m kindMatcher) Match(actual any) (bool, error) {
	if actual == nil {
		return false, nil
	}

	kind := reflect.TypeOf(actual).Kind()
	for _, candidate := range m.kinds {
		if kind == candidate {
			return true, nil
		}
	}

	return false, nil
}

type respondToMatcher struct {
	methods []string
}

func (m respondToMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("expected %T to respond to %s", actual, strings.Join(m.methods, ", "))
}

func (m respondToMatcher) Match(actual any) (bool, error) {
	subject, ok := actual.(core.Subject)
	if !ok {
		return false, nil
	}

	table := subject.MethodTable()
	for _, method := range m.methods {
		if _, defined := table.Lookup(method); !defined {
			return false, nil
		}
	}

	return true, nil
}

type satisfyMatcher[T any] struct {
	predicate func(T) error
	lastErr   error
}

func (m *satisfyMatcher[T]) FailureMessage(actual any) string {
	if m.lastErr != nil {
		return fmt.Sprintf("value %v does not satisfy predicate: %v", actual, m.lastErr)
	}

	return fmt.Sprintf("value %v does not satisfy predicate", actual)
}

func (m *satisfyMatcher[T]) Match(actual any) (bool, error) {
	val, ok := actual.(T)

	if !ok {
		return false, fmt.Errorf("%w: expected %T, got %T", errTypeMismatch, *new(T), actual)
	}

	m.lastErr = m.predicate(val)

	return m.lastErr == nil, nil
}

type typeMatcher[T any] struct{}

func (typeMatcher[T]) FailureMessage(actual any) string {
	return fmt.Sprintf("expected %T to be a %s", actual, reflect.TypeFor[T]())
}

func (typeMatcher[T]) Match(actual any) (bool, error) {
	_, ok := actual.(T)

	return ok, nil
}
