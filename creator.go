package impdouble

import "github.com/toejough/impdouble/internal/core"

// Call declares one double for a creator batch.
type Call struct {
	Method  string
	Args    []any
	AnyArgs bool
	Handler Handler
}

// On declares a call to method with exactly args.
func On(method string, args ...any) Call {
	return Call{Method: method, Args: args}
}

// Do sets the call's handler.
func (c Call) Do(handler Handler) Call {
	c.Handler = handler

	return c
}

// Return sets a handler returning values.
func (c Call) Return(values ...any) Call {
	return c.Do(Returns(values...))
}

// WithAnyArgs makes the call match any arguments, at wildcard precedence.
func (c Call) WithAnyArgs() Call {
	c.AnyArgs = true

	return c
}

// Creator registers doubles on one subject, all with the same strategies.
// Every On or Handle builds a fresh double through a Builder.
type Creator struct {
	space          *Space
	subject        Subject
	verification   func() VerificationStrategy
	implementation ImplementationStrategy
	instanceOf     bool
}

// DontAllow returns a creator whose doubles fail any matching call.
func DontAllow(space *Space, subject Subject, calls ...Call) *Creator {
	return newCreator(space, subject, func() VerificationStrategy { return DontAllowStrategy{} }).Calls(calls...)
}

// Mock returns a creator whose doubles must be called at least once.
func Mock(space *Space, subject Subject, calls ...Call) *Creator {
	return newCreator(space, subject, func() VerificationStrategy { return MockStrategy{} }).Calls(calls...)
}

// Stub returns a creator whose doubles may be called any number of times.
func Stub(space *Space, subject Subject, calls ...Call) *Creator {
	return newCreator(space, subject, func() VerificationStrategy { return StubStrategy{} }).Calls(calls...)
}

// Times returns a creator whose doubles must be called exactly n times.
func Times(space *Space, subject Subject, n int, calls ...Call) *Creator {
	return newCreator(space, subject, func() VerificationStrategy { return ExactCountStrategy{N: n} }).Calls(calls...)
}

// Calls registers a double for each call.
func (c *Creator) Calls(calls ...Call) *Creator {
	for _, call := range calls {
		definition, err := c.Handle(call.Method, call.Args, call.Handler)
		if err != nil {
			c.fail(err)

			continue
		}

		if call.AnyArgs {
			definition.WithAnyArgs()
		}
	}

	return c
}

// Handle builds a double for method with args and handler.
func (c *Creator) Handle(method string, args []any, handler Handler) (*Definition, error) {
	builder := NewBuilder(c.space)

	err := builder.SetVerificationStrategy(c.verification())
	if err != nil {
		return nil, err
	}

	err = builder.SetImplementationStrategy(c.implementation)
	if err != nil {
		return nil, err
	}

	if c.instanceOf {
		builder.UseInstanceOfStrategy()
	}

	return builder.Build(c.subject, method, args, handler)
}

// InstanceOf makes later doubles apply to every instance the subject
// constructs instead of the subject itself.
func (c *Creator) InstanceOf() *Creator {
	c.instanceOf = true

	return c
}

// On builds a double for method with exactly args and returns its definition
// for further configuration. Definition failures are reported to the space's
// test reporter, or panic when it has none.
func (c *Creator) On(method string, args ...any) *Definition {
	definition, err := c.Handle(method, args, nil)
	if err != nil {
		c.fail(err)

		return NewDefinition()
	}

	return definition
}

// Proxy makes later doubles delegate to the subject's original methods.
func (c *Creator) Proxy() *Creator {
	c.implementation = ProxyStrategy{}

	return c
}

func (c *Creator) fail(err error) {
	reporter := c.space.Reporter()
	if reporter == nil {
		panic(err)
	}

	reporter.Helper()
	reporter.Fatalf("%v", err)
}

// NewDefinition returns a definition that is not attached to any double.
func NewDefinition() *Definition {
	return core.NewDefinition()
}

func newCreator(space *Space, subject Subject, verification func() VerificationStrategy) *Creator {
	return &Creator{
		space:          space,
		subject:        subject,
		verification:   verification,
		implementation: ReimplementationStrategy{},
	}
}
