package core

// Builder turns a call description plus a strategy pair into a double.
// A builder is meant for one Build.
type Builder struct {
	space           *Space
	verification    VerificationStrategy
	implementation  ImplementationStrategy
	usingInstanceOf bool
}

// NewBuilder returns a builder for space with the reimplementation strategy and
// no verification strategy.
func NewBuilder(space *Space) *Builder {
	return &Builder{
		space:          space,
		implementation: Reimplementation{},
	}
}

// Build registers a double for subject's method and returns its definition.
//
// No interception is installed unless the build succeeds.
func (b *Builder) Build(subject Subject, method string, args []any, handler Handler) (*Definition, error) {
	if b.verification == nil {
		return nil, definitionError(ErrNoStrategyDefined, "this double has no strategy")
	}

	definition := NewDefinition()
	b.verification.Apply(definition, args, handler)
	b.implementation.Apply(definition, args, handler)

	if b.usingInstanceOf {
		err := b.buildForInstancesOf(subject, method, definition)
		if err != nil {
			return nil, err
		}

		return definition, nil
	}

	NewDouble(b.space.Injection(subject, method), definition)

	return definition, nil
}

// ImplementationStrategy returns the current implementation strategy.
func (b *Builder) ImplementationStrategy() ImplementationStrategy {
	return b.implementation
}

// SetImplementationStrategy replaces the implementation strategy.
func (b *Builder) SetImplementationStrategy(strategy ImplementationStrategy) error {
	if _, ok := strategy.(InstanceOf); ok {
		b.UseInstanceOfStrategy()

		return nil
	}

	err := checkCombination(b.verification, strategy)
	if err != nil {
		return err
	}

	b.implementation = strategy

	return nil
}

// SetVerificationStrategy sets the verification strategy. It can be set once.
func (b *Builder) SetVerificationStrategy(strategy VerificationStrategy) error {
	if b.verification != nil {
		return definitionError(ErrStrategyAlreadyDefined, "this double already has a %s strategy", b.verification.Name())
	}

	err := checkCombination(strategy, b.implementation)
	if err != nil {
		return err
	}

	b.verification = strategy

	return nil
}

// UseInstanceOfStrategy makes Build target instances the subject constructs
// instead of the subject itself.
func (b *Builder) UseInstanceOfStrategy() {
	b.usingInstanceOf = true
}

// UsingInstanceOfStrategy reports whether UseInstanceOfStrategy was called.
func (b *Builder) UsingInstanceOfStrategy() bool {
	return b.usingInstanceOf
}

// VerificationStrategy returns the verification strategy, or nil.
func (b *Builder) VerificationStrategy() VerificationStrategy {
	return b.verification
}

// buildForInstancesOf makes every Subject class constructs from now on get a
// double for instanceMethod sharing definition. The constructor is proxied
// once per class; later instance-of builds on the same class add to the
// doubles that proxy attaches.
func (b *Builder) buildForInstancesOf(class Subject, instanceMethod string, definition *Definition) error {
	space := b.space
	constructor := space.Injection(class, space.constructorName)
	attachment := instanceAttachment{method: instanceMethod, definition: definition}

	if attachments, ok := space.instanceOf[constructor]; ok {
		space.instanceOf[constructor] = append(attachments, attachment)

		return nil
	}

	attach := func(values ...any) []any {
		for _, value := range values {
			instance, ok := value.(Subject)
			if !ok {
				continue
			}

			for _, each := range space.instanceOf[constructor] {
				NewDouble(space.Injection(instance, each.method), each.definition)
			}
		}

		return values
	}

	nested := NewBuilder(space)

	err := nested.SetVerificationStrategy(Stub{})
	if err != nil {
		return err
	}

	err = nested.SetImplementationStrategy(Proxy{})
	if err != nil {
		return err
	}

	constructorDefinition, err := nested.Build(class, space.constructorName, nil, attach)
	if err != nil {
		return err
	}

	constructorDefinition.WithAnyArgs()
	space.instanceOf[constructor] = []instanceAttachment{attachment}

	return nil
}

func checkCombination(verification VerificationStrategy, implementation ImplementationStrategy) error {
	if isDontAllow(verification) && isProxy(implementation) {
		return definitionError(ErrIllegalStrategyCombination, "doubles cannot be proxied when using the dont allow strategy")
	}

	return nil
}
