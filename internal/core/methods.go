package core

import (
	"errors"
	"sort"
)

// Method is the dynamic form of a subject's method: it receives the call's
// arguments and returns the call's results in declaration order.
type Method func(args ...any) []any

// Handler computes a double's results. Reimplementations receive the call's
// arguments; proxies receive the original method's results.
type Handler func(values ...any) []any

// Methods is a table of named methods. Embedding it makes a type a Subject
// whose methods a Space can intercept.
type Methods struct {
	table map[string]Method
}

// Call invokes the named method and returns its results. A call that an
// intercepted method rejects is returned as a *DispatchError instead of panicking.
func (m *Methods) Call(name string, args ...any) (results []any, err error) {
	method, ok := m.Lookup(name)
	if !ok {
		return nil, &DispatchError{Err: ErrUndefinedMethod, Method: name, Args: args}
	}

	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}

		var dispatchErr *DispatchError

		recoveredErr, isErr := recovered.(error)
		if !isErr || !errors.As(recoveredErr, &dispatchErr) {
			panic(recovered)
		}

		results, err = nil, dispatchErr
	}()

	return method(args...), nil
}

// Define sets the named method, replacing any previous definition.
func (m *Methods) Define(name string, method Method) {
	if m.table == nil {
		m.table = make(map[string]Method)
	}

	m.table[name] = method
}

// Invoke calls the named method and returns its results.
// It panics with a *DispatchError when the call cannot be answered.
func (m *Methods) Invoke(name string, args ...any) []any {
	results, err := m.Call(name, args...)
	if err != nil {
		panic(err)
	}

	return results
}

// Lookup returns the named method, if defined.
func (m *Methods) Lookup(name string) (Method, bool) {
	method, ok := m.table[name]

	return method, ok
}

// MethodTable returns m, making any type that embeds Methods a Subject.
func (m *Methods) MethodTable() *Methods {
	return m
}

// Names returns the defined method names, sorted.
func (m *Methods) Names() []string {
	names := make([]string, 0, len(m.table))
	for name := range m.table {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Remove deletes the named method.
func (m *Methods) Remove(name string) {
	delete(m.table, name)
}

// Subject is anything with a method table.
type Subject interface {
	MethodTable() *Methods
}

// Arg returns args[index] as a T, or T's zero value when the index is out of
// range or the value is not a T.
func Arg[T any](args []any, index int) T {
	return Result[T](args, index)
}

// Result returns results[index] as a T, or T's zero value when the index is
// out of range or the value is not a T.
func Result[T any](results []any, index int) T {
	var zero T

	if index < 0 || index >= len(results) {
		return zero
	}

	value, ok := results[index].(T)
	if !ok {
		return zero
	}

	return value
}

// Rest returns args[from:] as a []T; values that are not a T become T's zero
// value. It collects the variadic tail of a flattened argument list.
func Rest[T any](args []any, from int) []T {
	if from < 0 || from >= len(args) {
		return nil
	}

	rest := make([]T, len(args)-from)
	for i := range rest {
		rest[i] = Arg[T](args, from+i)
	}

	return rest
}

// Returns is a Handler that ignores its input and returns values.
func Returns(values ...any) Handler {
	return func(...any) []any {
		return values
	}
}

// Values converts values to a []any, for flattening a variadic argument.
func Values[T any](values []T) []any {
	converted := make([]any, len(values))
	for i, value := range values {
		converted[i] = value
	}

	return converted
}
