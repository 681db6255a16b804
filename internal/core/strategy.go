package core

import "fmt"

// VerificationStrategy decides what "satisfied" means for a double.
type VerificationStrategy interface {
	Name() string
	Apply(definition *Definition, args []any, handler Handler)
}

// ImplementationStrategy decides what a matching call does.
type ImplementationStrategy interface {
	Name() string
	Apply(definition *Definition, args []any, handler Handler)
}

// Stub is satisfied by any number of calls, including none.
type Stub struct{}

// Apply matches args any number of times.
func (Stub) Apply(definition *Definition, args []any, _ Handler) {
	definition.WithArgs(args...).AnyNumberOfTimes()
}

// Name returns "stub".
func (Stub) Name() string {
	return "stub"
}

// Mock is satisfied by at least one call.
type Mock struct{}

// Apply matches args and expects at least one call.
func (Mock) Apply(definition *Definition, args []any, _ Handler) {
	definition.WithArgs(args...).AtLeast(1)
}

// Name returns "mock".
func (Mock) Name() string {
	return "mock"
}

// ExactCount is satisfied by exactly N calls.
type ExactCount struct {
	N int
}

// Apply matches args and expects exactly N calls.
func (e ExactCount) Apply(definition *Definition, args []any, _ Handler) {
	definition.WithArgs(args...).Times(e.N)
}

// Name returns "exact count (N)".
func (e ExactCount) Name() string {
	return fmt.Sprintf("exact count (%d)", e.N)
}

// DontAllow is satisfied only if the double is never called; a matching call
// fails at the call site.
type DontAllow struct{}

// Apply matches args and expects no calls.
func (DontAllow) Apply(definition *Definition, args []any, _ Handler) {
	definition.WithArgs(args...).Never()
}

// Name returns "dont allow".
func (DontAllow) Name() string {
	return "dont allow"
}

// Reimplementation runs the handler with the call's arguments.
type Reimplementation struct{}

// Apply installs handler as the implementation.
func (Reimplementation) Apply(definition *Definition, _ []any, handler Handler) {
	definition.Implemented(handler)
}

// Name returns "reimplementation".
func (Reimplementation) Name() string {
	return "reimplementation"
}

// Proxy runs the subject's original method, passing its results through the
// handler when one is given.
type Proxy struct{}

// Apply calls through to the original, then to handler if set.
func (Proxy) Apply(definition *Definition, _ []any, handler Handler) {
	definition.ImplementedByOriginal()

	if handler != nil {
		definition.AfterCall(handler)
	}
}

// Name returns "proxy".
func (Proxy) Name() string {
	return "proxy"
}

// InstanceOf redirects a build from the subject to every instance the subject
// constructs afterwards. Setting it on a builder is the same as calling
// UseInstanceOfStrategy; the builder keeps its current implementation strategy.
type InstanceOf struct{}

// Apply does nothing: the builder handles instance-of before strategies run.
func (InstanceOf) Apply(*Definition, []any, Handler) {}

// Name returns "instance of".
func (InstanceOf) Name() string {
	return "instance of"
}

func isDontAllow(strategy VerificationStrategy) bool {
	_, ok := strategy.(DontAllow)

	return ok
}

func isProxy(strategy ImplementationStrategy) bool {
	_, ok := strategy.(Proxy)

	return ok
}
