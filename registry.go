package impdouble

import (
	"sync"
)

// ForTest returns the Space for the given test, creating one if needed.
// Multiple calls with the same TestReporter return the same Space, so helpers
// can register doubles without passing the space around.
//
// If the TestReporter supports Cleanup (like *testing.T), the space is verified
// and reset when the test completes: unsatisfied doubles fail the test, and the
// original methods are restored either way.
//
// A Space is not safe for concurrent use; doubles for one test must be
// registered and called from one goroutine at a time.
func ForTest(t TestReporter, opts ...Option) *Space {
	registryMu.Lock()
	defer registryMu.Unlock()

	if space, ok := registry[t]; ok {
		return space
	}

	space := NewSpace(append([]Option{WithReporter(t)}, opts...)...)
	registry[t] = space

	if cr, ok := t.(cleanupRegistrar); ok {
		cr.Cleanup(func() {
			registryMu.Lock()
			delete(registry, t)
			registryMu.Unlock()

			defer space.ResetAll()

			err := space.VerifyAll()
			if err != nil {
				t.Helper()
				t.Fatalf("%v", err)
			}
		})
	}

	return space
}

// Reset restores every method intercepted for t, without verifying.
// If no Space has been created for t yet, Reset does nothing.
func Reset(t TestReporter) {
	registryMu.Lock()

	space, ok := registry[t]

	registryMu.Unlock()

	if !ok {
		return
	}

	space.ResetAll()
}

// Verify checks every double registered for t and fails the test through its
// reporter if any is unsatisfied.
// If no Space has been created for t yet, Verify returns immediately.
func Verify(t TestReporter) {
	registryMu.Lock()

	space, ok := registry[t]

	registryMu.Unlock()

	if !ok {
		return
	}

	err := space.VerifyAll()
	if err != nil {
		t.Helper()
		t.Fatalf("%v", err)
	}
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level registry is intentional for test coordination
	registry = make(map[TestReporter]*Space)
	//nolint:gochecknoglobals // Mutex for registry
	registryMu sync.Mutex
)

// cleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}
