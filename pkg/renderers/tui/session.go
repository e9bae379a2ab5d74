package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-intake/pkg/form"
	"github.com/goliatone/go-intake/pkg/questionnaire"
)

// Action labels offered after each section.
const (
	ActionNext     = "Next"
	ActionPrevious = "Previous"
	ActionGoTo     = "Go to section"
	ActionSubmit   = "Calculate"
	ActionReset    = "Reset"
	ActionQuit     = "Quit"
)

// Session walks a questionnaire in the terminal. Each turn prompts the visible
// fields of the active section, then asks for the next action.
type Session struct {
	driver      PromptDriver
	output      OutputFormat
	theme       Theme
	logger      *zap.Logger
	formOptions []form.Option

	def      questionnaire.Definition
	ctrl     *form.Controller
	surface  *bufferedSurface
	renderer *Renderer
}

// NewSession builds a session and its form controller.
func NewSession(def questionnaire.Definition, options ...Option) (*Session, error) {
	s := &Session{
		output: OutputFormatJSON,
		theme:  DefaultTheme,
		logger: zap.NewNop(),
		def:    def,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver()
	}

	s.surface = &bufferedSurface{}
	s.renderer = NewRenderer(s.theme)

	formOptions := append([]form.Option{
		form.WithLogger(s.logger),
		form.WithSurface(s.surface),
	}, s.formOptions...)
	ctrl, err := form.New(def, formOptions...)
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	s.ctrl = ctrl
	s.surface.drain()
	return s, nil
}

// Controller exposes the underlying form controller.
func (s *Session) Controller() *form.Controller {
	return s.ctrl
}

// ContentType reports the serialization format returned by Run.
func (s *Session) ContentType() string {
	switch s.output {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Run loops until a submission completes, returning the submitted values in
// the configured output format. Quitting returns ErrAborted.
func (s *Session) Run(ctx context.Context) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := s.renderer.Render(ctx, s.ctrl.Snapshot())
		if err != nil {
			return nil, err
		}
		if err := s.driver.Info(ctx, string(out)); err != nil {
			return nil, err
		}

		if err := s.promptSection(ctx); err != nil {
			return nil, err
		}

		action, err := s.chooseAction(ctx)
		if err != nil {
			return nil, err
		}

		switch action {
		case ActionNext:
			s.ctrl.Next()
		case ActionPrevious:
			s.ctrl.Previous()
		case ActionGoTo:
			if err := s.chooseSection(ctx); err != nil {
				return nil, err
			}
		case ActionReset:
			s.ctrl.Reset()
			if err := s.flush(ctx); err != nil {
				return nil, err
			}
		case ActionSubmit:
			values, done, err := s.submit(ctx)
			if err != nil {
				return nil, err
			}
			if done {
				return s.serialize(values)
			}
		case ActionQuit:
			return nil, ErrAborted
		}
	}
}

func (s *Session) promptSection(ctx context.Context) error {
	section := s.ctrl.Navigation().SectionID
	for _, field := range s.def.FieldsIn(section) {
		if field.Group != "" && !s.ctrl.GroupVisible(field.Group) {
			continue
		}
		if err := s.promptField(ctx, field); err != nil {
			return err
		}
		if err := s.flush(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) promptField(ctx context.Context, field questionnaire.Field) error {
	current := s.ctrl.Value(field.Name)
	message := field.Label
	if field.Unit != "" {
		message += " (" + field.Unit + ")"
	}

	switch field.Kind {
	case questionnaire.KindYesNo:
		yes, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Default: current == questionnaire.ValueYes,
			Help:    field.Help,
		})
		if err != nil {
			return err
		}
		s.ctrl.Toggle(field.Name, yes)
	case questionnaire.KindSelect:
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      field.Options,
			DefaultIndex: indexOf(field.Options, current),
			Help:         field.Help,
		})
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(field.Options) {
			s.ctrl.SetValue(field.Name, field.Options[idx])
		}
	default:
		value, err := s.driver.Input(ctx, InputConfig{
			Message: message,
			Default: current,
			Help:    field.Help,
		})
		if err != nil {
			return err
		}
		s.ctrl.SetValue(field.Name, strings.TrimSpace(value))
	}
	return nil
}

func (s *Session) chooseAction(ctx context.Context) (string, error) {
	state := s.ctrl.Navigation()
	var actions []string
	if state.CanGoNext {
		actions = append(actions, ActionNext)
	}
	if state.CanGoPrevious {
		actions = append(actions, ActionPrevious)
	}
	actions = append(actions, ActionGoTo, ActionSubmit, ActionReset, ActionQuit)

	idx, err := s.driver.Select(ctx, SelectConfig{Message: "What next?", Options: actions})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(actions) {
		return "", ErrNoAction
	}
	return actions[idx], nil
}

func (s *Session) chooseSection(ctx context.Context) error {
	titles := make([]string, 0, len(s.def.Sections))
	for _, section := range s.def.Sections {
		titles = append(titles, section.Title)
	}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      "Section",
		Options:      titles,
		DefaultIndex: s.ctrl.Navigation().Index,
	})
	if err != nil {
		return err
	}
	s.ctrl.Activate(idx)
	return nil
}

// submit reports done=true once the submission completed.
func (s *Session) submit(ctx context.Context) (map[string]string, bool, error) {
	sub, err := s.ctrl.Submit()
	var verr *form.ValidationError
	switch {
	case errors.As(err, &verr):
		return nil, false, s.flush(ctx)
	case errors.Is(err, form.ErrSubmissionPending):
		return nil, false, s.driver.Info(ctx, s.theme.InfoPrefix+"A calculation is already running.")
	case err != nil:
		return nil, false, err
	}

	if err := s.driver.Info(ctx, s.theme.InfoPrefix+"CALCULATING..."); err != nil {
		return nil, false, err
	}
	outcome, err := sub.Wait(ctx)
	if err != nil {
		return nil, false, err
	}
	if err := s.flush(ctx); err != nil {
		return nil, false, err
	}
	if outcome != form.OutcomeCompleted {
		return nil, false, nil
	}
	return sub.Values(), true, nil
}

// flush prints messages the controller pushed to the surface since the last
// flush.
func (s *Session) flush(ctx context.Context) error {
	for _, msg := range s.surface.drain() {
		var line string
		switch msg.kind {
		case messageError:
			line = s.theme.ErrorPrefix + msg.text
		case messageSuccess:
			line = s.theme.SuccessPrefix + msg.text
		default:
			line = s.theme.InfoPrefix + msg.text
		}
		if err := s.driver.Info(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) serialize(values map[string]string) ([]byte, error) {
	switch s.output {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for key, value := range values {
			encoded.Set(key, value)
		}
		return []byte(encoded.Encode()), nil
	case OutputFormatPrettyText:
		keys := make([]string, 0, len(values))
		for key := range values {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, key := range keys {
			fmt.Fprintf(&b, "%s: %s\n", key, values[key])
		}
		return []byte(b.String()), nil
	default:
		return json.MarshalIndent(values, "", "  ")
	}
}

type messageKind int

const (
	messageInfo messageKind = iota
	messageError
	messageSuccess
)

type message struct {
	kind messageKind
	text string
}

// bufferedSurface queues controller updates so the session can print them
// outside the controller lock.
type bufferedSurface struct {
	form.NopSurface
	mu      sync.Mutex
	pending []message
}

func (b *bufferedSurface) push(kind messageKind, text string) {
	b.mu.Lock()
	b.pending = append(b.pending, message{kind: kind, text: text})
	b.mu.Unlock()
}

func (b *bufferedSurface) SetGroupVisible(group string, visible bool) {
	if visible {
		b.push(messageInfo, "Showing "+group)
	}
}

func (b *bufferedSurface) ShowErrors(messages []string) {
	b.push(messageInfo, "Please correct the following errors:")
	for _, msg := range messages {
		b.push(messageError, msg)
	}
}

func (b *bufferedSurface) ShowSuccess(text string) {
	b.push(messageSuccess, text)
}

func (b *bufferedSurface) drain() []message {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.pending
	b.pending = nil
	return out
}
