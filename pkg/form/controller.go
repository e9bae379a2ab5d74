package form

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-intake/pkg/navigator"
	"github.com/goliatone/go-intake/pkg/questionnaire"
	"github.com/goliatone/go-intake/pkg/render"
	"github.com/goliatone/go-intake/pkg/validation"
	"github.com/goliatone/go-intake/pkg/visibility"
)

// Controller owns the field values of one questionnaire and routes user
// interactions to the navigator, validator and revealer.
type Controller struct {
	mu sync.Mutex

	def       questionnaire.Definition
	nav       *navigator.Navigator
	validator *validation.Validator
	revealer  *visibility.Revealer

	values  map[string]string
	errors  []string
	success string
	pending *Submission

	surface  Surface
	logger   *zap.Logger
	delay    time.Duration
	schedule Scheduler
	onSubmit SubmitHook
	newID    func() string

	rules       []validation.Rule
	rulesSet    bool
	bindings    []visibility.Binding
	bindingsSet bool
}

// New builds a controller for def, positioned on the first section with
// default values and every conditional group hidden.
func New(def questionnaire.Definition, options ...Option) (*Controller, error) {
	c := &Controller{
		def:      def,
		surface:  NopSurface{},
		logger:   zap.NewNop(),
		delay:    DefaultSubmitDelay,
		schedule: timerScheduler,
		newID:    newSubmissionID,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	nav, err := navigator.New(def.NavigatorSections())
	if err != nil {
		return nil, fmt.Errorf("form: %q: %w", def.ID, err)
	}
	c.nav = nav

	if !c.rulesSet {
		c.rules = def.Rules
	}
	if !c.bindingsSet {
		c.bindings = def.Bindings
	}
	c.validator = validation.New(c.rules...)
	c.revealer = visibility.NewRevealer(c.bindings...)

	c.values = def.Defaults()
	c.applyTriggerValues()
	c.syncSurface()

	c.logger.Debug("form ready",
		zap.String("questionnaire", def.ID),
		zap.Int("sections", nav.Len()),
		zap.Int("fields", len(def.Fields)),
	)
	return c, nil
}

// Definition returns the questionnaire the controller was built from.
func (c *Controller) Definition() questionnaire.Definition {
	return c.def
}

// Activate shows the section at index. Out-of-range indexes are ignored.
func (c *Controller) Activate(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.navigate("activate", c.nav.Activate(index))
}

// ActivateID shows the section with id, the tab-click path.
func (c *Controller) ActivateID(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.navigate("activate", c.nav.ActivateID(id))
}

// Next shows the following section unless already on the last one.
func (c *Controller) Next() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.navigate("next", c.nav.Next())
}

// Previous shows the preceding section unless already on the first one.
func (c *Controller) Previous() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.navigate("previous", c.nav.Previous())
}

// CanGoNext reports whether a following section exists.
func (c *Controller) CanGoNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nav.CanGoNext()
}

// CanGoPrevious reports whether a preceding section exists.
func (c *Controller) CanGoPrevious() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nav.CanGoPrevious()
}

// Navigation returns the navigator state.
func (c *Controller) Navigation() navigator.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nav.State()
}

func (c *Controller) navigate(op string, moved bool) bool {
	if !moved {
		return false
	}
	c.syncNavigation()
	c.logger.Debug("section changed",
		zap.String("op", op),
		zap.Int("section", c.nav.ActiveIndex()),
		zap.String("id", c.nav.Active().ID),
	)
	return true
}

// SetValue records user input. When name is a trigger field the bound groups
// are shown or hidden accordingly.
func (c *Controller) SetValue(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[name] = value
	c.onTriggerChanged(name, value)
}

// Toggle is the yes/no button path.
func (c *Controller) Toggle(name string, yes bool) {
	value := questionnaire.ValueNo
	if yes {
		value = questionnaire.ValueYes
	}
	c.SetValue(name, value)
}

// OnTriggerChanged applies a trigger value to its conditional groups without
// recording it as a field value.
func (c *Controller) OnTriggerChanged(name, value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.onTriggerChanged(name, value)
}

func (c *Controller) onTriggerChanged(name, value string) bool {
	if !c.revealer.OnTriggerChanged(name, value) {
		return false
	}
	for _, group := range c.revealer.GroupsFor(name) {
		visible := c.revealer.Visible(group)
		c.surface.SetGroupVisible(group, visible)
		c.logger.Debug("group visibility changed",
			zap.String("trigger", name),
			zap.String("group", group),
			zap.Bool("visible", visible),
		)
	}
	return true
}

// GroupVisible reports whether a conditional group is shown.
func (c *Controller) GroupVisible(group string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revealer.Visible(group)
}

// Value returns the current value of a field.
func (c *Controller) Value(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[name]
}

// Values returns a copy of all field values.
func (c *Controller) Values() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneValues(c.values)
}

// Validate checks the current values and returns the messages without
// showing them.
func (c *Controller) Validate() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validator.Validate(c.values)
}

// Feedback returns live validation feedback for one field's current value.
func (c *Controller) Feedback(name string) validation.Feedback {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validator.Feedback(name, c.values[name])
}

// Submit validates the current values and starts a simulated submission.
// Validation failures are shown and returned as *ValidationError. While a
// submission is pending further calls fail with ErrSubmissionPending.
func (c *Controller) Submit() (*Submission, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		c.logger.Debug("submit ignored while pending", zap.String("submission", c.pending.ID()))
		return nil, ErrSubmissionPending
	}

	if errs := c.validator.Validate(c.values); len(errs) > 0 {
		c.errors = errs
		c.success = ""
		c.surface.ClearMessages()
		c.surface.ShowErrors(errs)
		c.logger.Info("submission rejected", zap.Strings("errors", errs))
		return nil, &ValidationError{Messages: append([]string(nil), errs...)}
	}

	sub := newSubmission(c.newID(), cloneValues(c.values))
	c.pending = sub
	c.errors = nil
	c.success = ""
	c.surface.ClearMessages()
	c.surface.SetSubmitting(true)
	c.logger.Info("submission started",
		zap.String("submission", sub.ID()),
		zap.Duration("delay", c.delay),
	)

	c.schedule(c.delay, func() { c.complete(sub) })
	return sub, nil
}

// Pending returns the in-flight submission, or nil.
func (c *Controller) Pending() *Submission {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

func (c *Controller) complete(sub *Submission) {
	c.mu.Lock()
	if c.pending != sub {
		c.mu.Unlock()
		c.logger.Debug("discarding stale submission", zap.String("submission", sub.ID()))
		sub.finish(OutcomeSuperseded)
		return
	}
	c.pending = nil
	c.success = SubmitSuccessMessage
	c.surface.SetSubmitting(false)
	c.surface.ShowSuccess(SubmitSuccessMessage)
	hook := c.onSubmit
	c.mu.Unlock()

	c.logger.Info("submission completed",
		zap.String("submission", sub.ID()),
		zap.Any("values", sub.values),
	)
	if hook != nil {
		hook(sub.ID(), sub.Values())
	}
	sub.finish(OutcomeCompleted)
}

// Reset returns to the first section, restores default values, hides the
// conditional groups and forgets any pending submission. The pending delay is
// not interrupted; its completion is discarded when it fires.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		c.pending.finish(OutcomeSuperseded)
		c.logger.Info("reset superseded pending submission", zap.String("submission", c.pending.ID()))
		c.pending = nil
	}

	c.nav.Reset()

	values := c.def.Defaults()
	for _, field := range c.def.Fields {
		if field.ResetExempt {
			if current, ok := c.values[field.Name]; ok {
				values[field.Name] = current
			}
		}
	}
	c.values = values

	c.revealer.Reset()
	c.applyTriggerValues()

	c.errors = nil
	c.success = ResetSuccessMessage
	c.syncSurface()
	c.surface.ShowSuccess(ResetSuccessMessage)
	c.logger.Info("form reset", zap.String("questionnaire", c.def.ID))
}

// applyTriggerValues pushes the recorded value of every trigger field through
// the revealer so group state matches the values.
func (c *Controller) applyTriggerValues() {
	for _, field := range c.def.Fields {
		if c.revealer.IsTrigger(field.Name) {
			c.revealer.OnTriggerChanged(field.Name, c.values[field.Name])
		}
	}
}

func (c *Controller) syncNavigation() {
	state := c.nav.State()
	c.surface.ActivateSection(state.SectionID, state.Index)
	c.surface.SetNavigation(state.CanGoPrevious, state.CanGoNext)
}

func (c *Controller) syncSurface() {
	c.surface.ClearMessages()
	c.surface.SetSubmitting(c.pending != nil)
	c.syncNavigation()
	for _, group := range c.revealer.GroupNames() {
		c.surface.SetGroupVisible(group, c.revealer.Visible(group))
	}
}

// Snapshot returns a render-ready copy of the whole form state.
func (c *Controller) Snapshot() render.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.nav.State()
	snap := render.Snapshot{
		Title:         c.def.Title,
		Subtitle:      c.def.Subtitle,
		ActiveIndex:   state.Index,
		CanGoPrevious: state.CanGoPrevious,
		CanGoNext:     state.CanGoNext,
		Groups:        c.revealer.Groups(),
		Values:        cloneValues(c.values),
		Errors:        render.NormalizeMessages(c.errors),
		Success:       c.success,
		Submitting:    c.pending != nil,
	}

	for idx, section := range c.def.Sections {
		view := render.SectionView{
			ID:          section.ID,
			Title:       section.Title,
			Description: section.Description,
			Active:      c.nav.IsActive(idx),
		}
		for _, field := range c.def.FieldsIn(section.ID) {
			value := c.values[field.Name]
			view.Fields = append(view.Fields, render.FieldView{
				Name:     field.Name,
				Label:    field.Label,
				Kind:     string(field.Kind),
				Group:    field.Group,
				Unit:     field.Unit,
				Help:     field.Help,
				Value:    value,
				Options:  append([]string(nil), field.Options...),
				Hidden:   field.Group != "" && !c.revealer.Visible(field.Group),
				Feedback: string(c.validator.Feedback(field.Name, value)),
			})
		}
		snap.Sections = append(snap.Sections, view)
	}
	return snap
}

func cloneValues(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
