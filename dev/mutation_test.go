//go:build mutation

package dev

import (
	"testing"

	"github.com/gtramontina/ooze"
)

// TestMutation mutates the library and generator sources and requires every
// mutant to be caught by the unit tests.
func TestMutation(t *testing.T) {
	ooze.Release(
		t,
		ooze.WithTestCommand("go test -buildvcs=false -failfast ./..."),
		ooze.Parallel(),
		ooze.IgnoreSourceFiles("^dev/.*|^doublegen/main.go|generated_.*|.*_test.go"),
		ooze.WithMinimumThreshold(0.90),
		ooze.WithRepositoryRoot(".."),
		ooze.ForceColors(),
	)
}
