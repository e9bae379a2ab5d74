package form

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-intake/pkg/validation"
	"github.com/goliatone/go-intake/pkg/visibility"
)

// DefaultSubmitDelay matches the simulated processing time of the intake form.
const DefaultSubmitDelay = 2 * time.Second

// Scheduler runs fn once after delay. It is called with the controller lock
// held, so fn must run on another goroutine or later. The default uses
// time.AfterFunc.
type Scheduler func(delay time.Duration, fn func())

// SubmitHook receives the values of every completed submission.
type SubmitHook func(id string, values map[string]string)

// Option customises the controller.
type Option func(*Controller)

// WithLogger sets the structured logger. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSurface attaches the adapter that draws state changes.
func WithSurface(surface Surface) Option {
	return func(c *Controller) {
		if surface != nil {
			c.surface = surface
		}
	}
}

// WithSubmitDelay overrides the simulated submission delay.
func WithSubmitDelay(delay time.Duration) Option {
	return func(c *Controller) {
		if delay >= 0 {
			c.delay = delay
		}
	}
}

// WithScheduler overrides how submission completions are scheduled.
func WithScheduler(schedule Scheduler) Option {
	return func(c *Controller) {
		if schedule != nil {
			c.schedule = schedule
		}
	}
}

// WithOnSubmit registers a hook invoked for each completed submission, outside
// the controller lock and before Wait returns.
func WithOnSubmit(hook SubmitHook) Option {
	return func(c *Controller) {
		c.onSubmit = hook
	}
}

// WithRules replaces the definition's validation rules, for example with rules
// imported from an OpenAPI document.
func WithRules(rules ...validation.Rule) Option {
	return func(c *Controller) {
		c.rules = append([]validation.Rule(nil), rules...)
		c.rulesSet = true
	}
}

// WithBindings replaces the definition's conditional bindings.
func WithBindings(bindings ...visibility.Binding) Option {
	return func(c *Controller) {
		c.bindings = append([]visibility.Binding(nil), bindings...)
		c.bindingsSet = true
	}
}

// WithIDGenerator overrides submission id generation.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

func timerScheduler(delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}

func newSubmissionID() string {
	return uuid.NewString()
}
