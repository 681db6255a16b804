package core_test

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/impdouble/internal/core"
)

func TestBuilder_SecondVerificationStrategyIsRejected(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	builder := core.NewBuilder(core.NewSpace())

	g.Expect(builder.SetVerificationStrategy(core.Mock{})).To(Succeed())

	err := builder.SetVerificationStrategy(core.Stub{})
	g.Expect(err).To(MatchError(core.ErrStrategyAlreadyDefined))
	g.Expect(err.Error()).To(ContainSubstring("already has a mock strategy"))
	g.Expect(builder.VerificationStrategy()).To(Equal(core.Mock{}))
}

func TestBuilder_DontAllowThenProxyIsRejected(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	space := core.NewSpace()
	subject := newWidget("gadget")
	builder := core.NewBuilder(space)

	g.Expect(builder.SetVerificationStrategy(core.DontAllow{})).To(Succeed())
	g.Expect(builder.SetImplementationStrategy(core.Proxy{})).To(MatchError(core.ErrIllegalStrategyCombination))
	g.Expect(builder.ImplementationStrategy()).To(Equal(core.Reimplementation{}))
	g.Expect(space.Doubles()).To(BeEmpty())
	g.Expect(subject.Describe("a ")).To(Equal("a gadget"))
}

func TestBuilder_ProxyThenDontAllowIsRejected(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	space := core.NewSpace()
	builder := core.NewBuilder(space)

	g.Expect(builder.SetImplementationStrategy(core.Proxy{})).To(Succeed())
	g.Expect(builder.SetVerificationStrategy(core.DontAllow{})).To(MatchError(core.ErrIllegalStrategyCombination))
	g.Expect(builder.VerificationStrategy()).To(BeNil())
	g.Expect(space.Doubles()).To(BeEmpty())
}

func TestBuilder_BuildWithoutStrategyInstallsNothing(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	space := core.NewSpace()
	subject := newWidget("gadget")

	definition, err := core.NewBuilder(space).Build(subject, "Describe", []any{"a "}, core.Returns("stubbed"))
	g.Expect(err).To(MatchError(core.ErrNoStrategyDefined))
	g.Expect(definition).To(BeNil())
	g.Expect(space.Doubles()).To(BeEmpty())
	g.Expect(subject.Describe("a ")).To(Equal("a gadget"))
}

func TestBuilder_StrategiesPopulateDefinition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		verification core.VerificationStrategy
		times        string
	}{
		{"stub", core.Stub{}, "any number of times"},
		{"mock", core.Mock{}, "at least 1 time(s)"},
		{"exact count", core.ExactCount{N: 3}, "exactly 3 time(s)"},
		{"dont allow", core.DontAllow{}, "never"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			definition, err := build(core.NewSpace(), tt.verification, &widget{}, "Foobar", []any{1, "two"}, nil)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(definition.Arguments()).To(Equal(core.ArgumentEquality{Expected: []any{1, "two"}}))
			g.Expect(definition.TimesExpected().String()).To(Equal(tt.times))
			g.Expect(definition.IsImplementedByOriginal()).To(BeFalse())
		})
	}
}

func TestBuilder_DefinitionChangesAfterBuildApplyToDouble(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	space := core.NewSpace()
	subject := &widget{}

	definition := mustStub(space, subject, "Foobar", []any{1}, nil)
	definition.WithAnyArgs().Returns("anything")

	g.Expect(subject.Invoke("Foobar", "x", "y")).To(Equal([]any{"anything"}))
}

func TestBuilder_InstanceOfDoublesEveryConstructedInstance(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	space := core.NewSpace()
	class := newFactory()

	builder := core.NewBuilder(space)
	g.Expect(builder.SetVerificationStrategy(core.Mock{})).To(Succeed())
	builder.UseInstanceOfStrategy()
	g.Expect(builder.UsingInstanceOfStrategy()).To(BeTrue())

	_, err := builder.Build(class, "Describe", []any{"a "}, core.Returns("doubled"))
	g.Expect(err).NotTo(HaveOccurred())

	first := core.Result[*widget](class.Invoke("New", "one"), 0)
	second := core.Result[*widget](class.Invoke("New", "two"), 0)

	g.Expect(class.built).To(Equal([]*widget{first, second}), "constructor results are returned unchanged")
	g.Expect(first.Describe("a ")).To(Equal("doubled"))

	err = space.VerifyAll()
	g.Expect(err).To(MatchError(core.ErrUnsatisfied), "the second instance was never described")

	g.Expect(second.Describe("a ")).To(Equal("doubled"))
	g.Expect(space.VerifyAll()).To(Succeed())
}

func TestBuilder_InstanceOfKeepsEveryMethodRegisteredOnAClass(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	space := core.NewSpace()
	class := newFactory()

	for _, method := range []string{"Describe", "Foobar"} {
		builder := core.NewBuilder(space)
		g.Expect(builder.SetVerificationStrategy(core.Stub{})).To(Succeed())
		builder.UseInstanceOfStrategy()

		_, err := builder.Build(class, method, nil, core.Returns(method+" doubled"))
		g.Expect(err).NotTo(HaveOccurred())
	}

	g.Expect(space.Injection(class, "New").Doubles()).To(HaveLen(1), "the constructor is intercepted once")

	instance := core.Result[*widget](class.Invoke("New", "w"), 0)

	g.Expect(instance.Invoke("Describe")).To(Equal([]any{"Describe doubled"}))
	g.Expect(instance.Invoke("Foobar")).To(Equal([]any{"Foobar doubled"}))
	g.Expect(space.VerifyAll()).To(Succeed())

	space.ResetAll()

	fresh := core.Result[*widget](class.Invoke("New", "x"), 0)
	g.Expect(fresh.Describe("a ")).To(Equal("a x"), "reset drops instance doubles")
}

func TestBuilder_InstanceOfStrategyValueSelectsInstanceOf(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	builder := core.NewBuilder(core.NewSpace())

	g.Expect(builder.SetImplementationStrategy(core.InstanceOf{})).To(Succeed())
	g.Expect(builder.UsingInstanceOfStrategy()).To(BeTrue())
	g.Expect(builder.ImplementationStrategy()).To(Equal(core.Reimplementation{}))
}

func TestBuilder_InstanceOfUsesConfiguredConstructor(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	space := core.NewSpace(core.WithConstructorName("Make"))
	class := &factory{}
	class.Define("Make", func(...any) []any { return []any{newWidget("made")} })

	builder := core.NewBuilder(space)
	g.Expect(builder.SetVerificationStrategy(core.Stub{})).To(Succeed())
	g.Expect(builder.SetImplementationStrategy(core.Proxy{})).To(Succeed())
	builder.UseInstanceOfStrategy()

	_, err := builder.Build(class, "Describe", []any{"a "}, func(values ...any) []any {
		return []any{core.Arg[string](values, 0) + "?"}
	})
	g.Expect(err).NotTo(HaveOccurred())

	instance := core.Result[*widget](class.Invoke("Make"), 0)
	g.Expect(instance.Describe("a ")).To(Equal("a made?"))
}

func TestStrategies_Names(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(core.Stub{}.Name()).To(Equal("stub"))
	g.Expect(core.Mock{}.Name()).To(Equal("mock"))
	g.Expect(core.ExactCount{N: 3}.Name()).To(Equal("exact count (3)"))
	g.Expect(core.DontAllow{}.Name()).To(Equal("dont allow"))
	g.Expect(core.Reimplementation{}.Name()).To(Equal("reimplementation"))
	g.Expect(core.Proxy{}.Name()).To(Equal("proxy"))
	g.Expect(core.InstanceOf{}.Name()).To(Equal("instance of"))
}
