package core

import (
	"go.uber.org/zap"
)

// DefaultConstructorName is the method instance-of doubles intercept on a class subject.
const DefaultConstructorName = "New"

// Option configures a Space.
type Option func(*Space)

// Space owns every injection for one test. It is not safe for concurrent use:
// tests sharing a Space must not run in parallel.
type Space struct {
	logger          *zap.Logger
	reporter        TestReporter
	constructorName string
	injections      map[injectionKey]*Injection
	order           []*Injection
	// instanceOf holds, per intercepted constructor, the doubles every new instance receives.
	instanceOf map[*Injection][]instanceAttachment
}

// NewSpace creates an empty space.
func NewSpace(opts ...Option) *Space {
	space := &Space{
		logger:          zap.NewNop(),
		constructorName: DefaultConstructorName,
		injections:      make(map[injectionKey]*Injection),
		instanceOf:      make(map[*Injection][]instanceAttachment),
	}

	for _, opt := range opts {
		opt(space)
	}

	return space
}

// WithConstructorName sets the method instance-of doubles intercept on class subjects.
func WithConstructorName(name string) Option {
	return func(s *Space) {
		s.constructorName = name
	}
}

// WithLogger sets the logger for injection and dispatch events.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Space) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithReporter sets the test reporter front-ends report definition failures to.
func WithReporter(reporter TestReporter) Option {
	return func(s *Space) {
		s.reporter = reporter
	}
}

// ConstructorName returns the method instance-of doubles intercept on class subjects.
func (s *Space) ConstructorName() string {
	return s.constructorName
}

// Doubles returns every registered double, grouped by injection in creation order.
func (s *Space) Doubles() []*Double {
	var doubles []*Double
	for _, injection := range s.order {
		doubles = append(doubles, injection.doubles...)
	}

	return doubles
}

// Injection returns the injection for subject's method, installing one if needed.
func (s *Space) Injection(subject Subject, method string) *Injection {
	key := injectionKey{table: subject.MethodTable(), method: method}

	if injection, ok := s.injections[key]; ok {
		return injection
	}

	injection := newInjection(s, subject, method)
	s.injections[key] = injection
	s.order = append(s.order, injection)

	s.logger.Debug("injection installed",
		zap.String("method", method),
		zap.Bool("original", injection.original != nil),
	)

	return injection
}

// Logger returns the space's logger.
func (s *Space) Logger() *zap.Logger {
	return s.logger
}

// Reporter returns the space's test reporter, or nil.
func (s *Space) Reporter() TestReporter {
	return s.reporter
}

// ResetAll restores every intercepted method and forgets all doubles.
// Calling it on an empty space does nothing.
func (s *Space) ResetAll() {
	// Newest first.
	for idx := len(s.order) - 1; idx >= 0; idx-- {
		s.order[idx].Restore()
	}

	if len(s.order) > 0 {
		s.logger.Debug("space reset", zap.Int("injections", len(s.order)))
	}

	s.injections = make(map[injectionKey]*Injection)
	s.instanceOf = make(map[*Injection][]instanceAttachment)
	s.order = nil
}

// VerifyAll checks every double and returns a *VerificationError listing all
// unsatisfied ones, or nil.
func (s *Space) VerifyAll() error {
	var failures []Unsatisfied

	for _, double := range s.Doubles() {
		if double.Satisfied() {
			continue
		}

		failure := double.unsatisfied()
		failures = append(failures, failure)

		s.logger.Debug("double not satisfied", zap.Stringer("failure", failure))
	}

	if len(failures) == 0 {
		return nil
	}

	return &VerificationError{Failures: failures}
}

// TestReporter is the minimal interface impdouble needs from test frameworks.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// instanceAttachment is a double to add to every instance a class constructs.
type instanceAttachment struct {
	method     string
	definition *Definition
}

type injectionKey struct {
	table  *Methods
	method string
}
