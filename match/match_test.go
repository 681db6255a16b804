package match_test

import (
	"fmt"
	"io"
	"strings"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/impdouble/internal/core"
	"github.com/toejough/impdouble/match"
	"pgregory.net/rapid"
)

func TestBeAny_MatchesEverything(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		value := rapid.OneOf(
			rapid.Int().AsAny(),
			rapid.String().AsAny(),
			rapid.Bool().AsAny(),
			rapid.Just[any](nil),
		).Draw(rt, "value")

		ok, err := match.BeAny.Match(value)
		if !ok || err != nil {
			rt.Fatalf("BeAny rejected %#v: %v", value, err)
		}
	})
}

func TestBeNumeric(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	for _, value := range []any{1, int8(2), uint64(3), 4.5, float32(6), complex(1, 2)} {
		g.Expect(match.BeNumeric.Match(value)).To(BeTrue(), "%T", value)
	}

	for _, value := range []any{"1", true, nil, []int{1}} {
		g.Expect(match.BeNumeric.Match(value)).To(BeFalse(), "%T", value)
	}

	g.Expect(match.BeNumeric.FailureMessage("1")).To(Equal("expected 1 (string) to be numeric"))
}

func TestBeBoolean(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(match.BeBoolean.Match(false)).To(BeTrue())
	g.Expect(match.BeBoolean.Match(0)).To(BeFalse())
}

func TestBeA(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(match.BeA[string]().Match("x")).To(BeTrue())
	g.Expect(match.BeA[string]().Match(1)).To(BeFalse())
	g.Expect(match.BeA[io.Reader]().Match(strings.NewReader("x"))).To(BeTrue())
	g.Expect(match.BeA[io.Reader]().FailureMessage(1)).To(Equal("expected int to be a io.Reader"))
}

func TestRespondTo(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var subject core.Methods

	subject.Define("Read", func(...any) []any { return nil })
	subject.Define("Close", func(...any) []any { return nil })

	g.Expect(match.RespondTo("Read", "Close").Match(&subject)).To(BeTrue())
	g.Expect(match.RespondTo("Read", "Write").Match(&subject)).To(BeFalse())
	g.Expect(match.RespondTo("Read").Match("not a subject")).To(BeFalse())
}

func TestSatisfy(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	positive := match.Satisfy(func(x int) error {
		if x <= 0 {
			return fmt.Errorf("expected positive, got %d", x)
		}

		return nil
	})

	g.Expect(positive.Match(3)).To(BeTrue())
	g.Expect(positive.Match(-1)).To(BeFalse())
	g.Expect(positive.FailureMessage(-1)).To(ContainSubstring("expected positive, got -1"))

	_, err := positive.Match("3")
	g.Expect(err).To(MatchError(ContainSubstring("type mismatch")))
}

func TestMatcher_IsTheMatcherDoublesRecognize(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	matchers := []core.Matcher{match.BeAny, match.BeA[int](), match.RespondTo("Add")}
	g.Expect(matchers).To(HaveLen(3))

	ok, _ := core.MatchValue(3, match.Matcher(match.BeNumeric))
	g.Expect(ok).To(BeTrue())
}
