package core_test

import (
	"github.com/toejough/impdouble/internal/core"
)

// widget is a subject with one real method, Describe, and no Foobar.
type widget struct {
	core.Methods

	name string
}

func (w *widget) Describe(prefix string) string {
	return core.Result[string](w.Invoke("Describe", prefix), 0)
}

// factory is a class-like subject whose New constructs widgets.
type factory struct {
	core.Methods

	built []*widget
}

func newFactory() *factory {
	f := &factory{}
	f.Define("New", func(args ...any) []any {
		built := newWidget(core.Arg[string](args, 0))
		f.built = append(f.built, built)

		return []any{built}
	})

	return f
}

func newWidget(name string) *widget {
	w := &widget{name: name}
	w.Define("Describe", func(args ...any) []any {
		return []any{core.Arg[string](args, 0) + w.name}
	})

	return w
}

func build(
	space *core.Space,
	verification core.VerificationStrategy,
	subject core.Subject,
	method string,
	args []any,
	handler core.Handler,
) (*core.Definition, error) {
	builder := core.NewBuilder(space)

	err := builder.SetVerificationStrategy(verification)
	if err != nil {
		return nil, err
	}

	return builder.Build(subject, method, args, handler)
}

func mustStub(space *core.Space, subject core.Subject, method string, args []any, handler core.Handler) *core.Definition {
	definition, err := build(space, core.Stub{}, subject, method, args, handler)
	if err != nil {
		panic(err)
	}

	return definition
}
