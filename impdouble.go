// Package impdouble provides test doubles for Go: stubs, mocks, proxies and
// "don't allow" guards on the methods of live subjects.
//
// A subject is any type that embeds Methods (generate one for an interface with
// doublegen). Doubles are registered in a Space, which routes each call of an
// intercepted method to the most specific matching double, verifies call counts
// with VerifyAll and puts the original methods back with ResetAll.
//
// This is the public API entry point. Implementation lives in internal/core.
package impdouble

import (
	"github.com/toejough/impdouble/internal/core"
	"go.uber.org/zap"
)

// DefaultConstructorName is the method instance-of doubles intercept on a class subject.
const DefaultConstructorName = core.DefaultConstructorName

// Errors re-exported from internal/core.
//
//nolint:gochecknoglobals // re-exported sentinels
var (
	ErrStrategyAlreadyDefined     = core.ErrStrategyAlreadyDefined
	ErrNoStrategyDefined          = core.ErrNoStrategyDefined
	ErrIllegalStrategyCombination = core.ErrIllegalStrategyCombination
	ErrUnexpectedCall             = core.ErrUnexpectedCall
	ErrNoMatchingDouble           = core.ErrNoMatchingDouble
	ErrNoOriginalMethod           = core.ErrNoOriginalMethod
	ErrUndefinedMethod            = core.ErrUndefinedMethod
	ErrUnsatisfied                = core.ErrUnsatisfied
)

// Builder turns a call description plus a strategy pair into a double.
type Builder = core.Builder

// NewBuilder returns a builder with the reimplementation strategy and no verification strategy.
func NewBuilder(space *Space) *Builder {
	return core.NewBuilder(space)
}

// Definition describes what a double accepts, what it does, and how often it expects to be called.
type Definition = core.Definition

// DefinitionError reports a double that could not be built.
type DefinitionError = core.DefinitionError

// DispatchError reports a call no double could answer.
type DispatchError = core.DispatchError

// Double is one registered expectation.
type Double = core.Double

// Handler computes a double's results.
type Handler = core.Handler

// Returns is a Handler that returns values.
func Returns(values ...any) Handler {
	return core.Returns(values...)
}

// Injection is the interception point for one subject method.
type Injection = core.Injection

// Matcher defines the interface for flexible argument matching.
type Matcher = core.Matcher

// Method is the dynamic form of a subject's method.
type Method = core.Method

// Methods is an embeddable method table.
type Methods = core.Methods

// Option configures a Space.
type Option = core.Option

// WithConstructorName sets the method instance-of doubles intercept on class subjects.
func WithConstructorName(name string) Option {
	return core.WithConstructorName(name)
}

// WithLogger sets the logger for injection and dispatch events.
func WithLogger(logger *zap.Logger) Option {
	return core.WithLogger(logger)
}

// WithReporter sets the test reporter that front-ends report definition failures to.
func WithReporter(reporter TestReporter) Option {
	return core.WithReporter(reporter)
}

// Space owns every injection for one test.
type Space = core.Space

// NewSpace creates an empty space.
func NewSpace(opts ...Option) *Space {
	return core.NewSpace(opts...)
}

// Subject is anything with a method table.
type Subject = core.Subject

// TestReporter is the minimal interface impdouble needs from test frameworks.
type TestReporter = core.TestReporter

// Unsatisfied describes one double whose call count did not meet its expectation.
type Unsatisfied = core.Unsatisfied

// VerificationError aggregates every unsatisfied double.
type VerificationError = core.VerificationError

// Strategies re-exported from internal/core.

// VerificationStrategy decides what "satisfied" means for a double.
type VerificationStrategy = core.VerificationStrategy

// ImplementationStrategy decides what a matching call does.
type ImplementationStrategy = core.ImplementationStrategy

type (
	// StubStrategy is satisfied by any number of calls.
	StubStrategy = core.Stub
	// MockStrategy is satisfied by at least one call.
	MockStrategy = core.Mock
	// ExactCountStrategy is satisfied by exactly N calls.
	ExactCountStrategy = core.ExactCount
	// DontAllowStrategy is satisfied only by no calls.
	DontAllowStrategy = core.DontAllow
	// ReimplementationStrategy runs the handler with the call's arguments.
	ReimplementationStrategy = core.Reimplementation
	// ProxyStrategy runs the original method and passes its results through the handler.
	ProxyStrategy = core.Proxy
	// InstanceOfStrategy targets instances the subject constructs.
	InstanceOfStrategy = core.InstanceOf
)

// Arg returns args[index] as a T, or T's zero value.
func Arg[T any](args []any, index int) T {
	return core.Arg[T](args, index)
}

// Result returns results[index] as a T, or T's zero value.
func Result[T any](results []any, index int) T {
	return core.Result[T](results, index)
}

// Rest returns args[from:] as a []T; values that are not a T become T's zero value.
func Rest[T any](args []any, from int) []T {
	return core.Rest[T](args, from)
}

// Values converts values to a []any, for flattening a variadic argument.
func Values[T any](values []T) []any {
	return core.Values(values)
}
