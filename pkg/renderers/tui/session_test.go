package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-intake/pkg/form"
	"github.com/goliatone/go-intake/pkg/questionnaire"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	infoMessages []string
	selectMsgs   []string
	inputPos     int
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	s.selectMsgs = append(s.selectMsgs, cfg.Message)
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) saw(fragment string) bool {
	for _, msg := range s.infoMessages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

func newSession(t *testing.T, driver PromptDriver, opts ...Option) *Session {
	t.Helper()
	def, err := questionnaire.Default()
	if err != nil {
		t.Fatalf("load questionnaire: %v", err)
	}
	base := []Option{
		WithPromptDriver(driver),
		WithFormOptions(form.WithSubmitDelay(0)),
	}
	session, err := NewSession(def, append(base, opts...)...)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session
}

func TestSession_CompletesSubmission(t *testing.T) {
	driver := &stubDriver{
		inputs:  []string{"30", "22", "39", "2"},
		confirm: []bool{true},
		// parity "1", Next, fetus count, chorionicity, Calculate
		selectIdx: []int{1, 0, 0, 0, 3},
	}
	session := newSession(t, driver)

	out, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if session.ContentType() != "application/json" {
		t.Fatalf("unexpected content type %s", session.ContentType())
	}

	var values map[string]string
	if err := json.Unmarshal(out, &values); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	want := map[string]string{
		"maternal_age":       "30",
		"maternal_parity":    "1",
		"bmi":                "22",
		"gestation_weeks":    "39",
		"gestation_days":     "2",
		"multiple_pregnancy": "yes",
	}
	for key, value := range want {
		if values[key] != value {
			t.Fatalf("value %s: want %q, got %q", key, value, values[key])
		}
	}
	if !driver.saw("Showing multiplePregnancyDetails") {
		t.Fatalf("expected reveal notice, got %v", driver.infoMessages)
	}
	if !driver.saw(DefaultTheme.SuccessPrefix + form.SubmitSuccessMessage) {
		t.Fatalf("expected success message, got %v", driver.infoMessages)
	}
}

func TestSession_ShowsValidationErrorsThenQuits(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{"", "", "70", ""},
		// parity, Calculate, parity, Quit
		selectIdx: []int{0, 2, 0, 4},
	}
	session := newSession(t, driver)

	_, err := session.Run(context.Background())
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if !driver.saw("Please correct the following errors:") {
		t.Fatalf("expected errors heading, got %v", driver.infoMessages)
	}
	if !driver.saw(DefaultTheme.ErrorPrefix + "maternal age is required") {
		t.Fatalf("expected required message, got %v", driver.infoMessages)
	}
	if got := session.Controller().Value("maternal_age"); got != "70" {
		t.Fatalf("expected second pass value 70, got %q", got)
	}
}

func TestSession_ResetReturnsToFirstSection(t *testing.T) {
	driver := &stubDriver{
		inputs:  []string{"30", "22", "39", "", "30", "22"},
		confirm: []bool{false},
		// parity, Next, Reset (pregnancy: Next, Previous, GoTo, Calculate, Reset), parity, Quit
		selectIdx: []int{0, 0, 4, 0, 4},
	}
	session := newSession(t, driver, WithOutputFormat(OutputFormatPrettyText))

	_, err := session.Run(context.Background())
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if !driver.saw(form.ResetSuccessMessage) {
		t.Fatalf("expected reset message, got %v", driver.infoMessages)
	}
	if got := session.Controller().Navigation().Index; got != 0 {
		t.Fatalf("expected first section after reset, got %d", got)
	}
	if got := session.Controller().Value("gestation_weeks"); got != "" {
		t.Fatalf("expected reset to clear gestation weeks, got %q", got)
	}
}

func TestSession_GoToSection(t *testing.T) {
	driver := &stubDriver{
		inputs:  []string{"", "", "", "", ""},
		confirm: []bool{false},
		// parity, Go to section, pick history, Quit (history: Next, Previous, GoTo, Calculate, Reset, Quit)
		selectIdx: []int{0, 1, 2, 5},
	}
	session := newSession(t, driver)

	if _, err := session.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if got := session.Controller().Navigation().SectionID; got != "history" {
		t.Fatalf("expected history, got %s", got)
	}
	want := []string{"Parity", "What next?", "Section", "What next?"}
	if diff := cmp.Diff(want, driver.selectMsgs); diff != "" {
		t.Fatalf("prompt sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_DriverErrorStopsRun(t *testing.T) {
	session := newSession(t, &stubDriver{})
	if _, err := session.Run(context.Background()); err == nil {
		t.Fatalf("expected error when driver has nothing scripted")
	}
}

func TestSession_SerializeFormats(t *testing.T) {
	values := map[string]string{"b": "2", "a": "1"}

	s := &Session{output: OutputFormatFormURLEncoded}
	out, err := s.serialize(values)
	if err != nil || string(out) != "a=1&b=2" {
		t.Fatalf("form encoding: %q %v", out, err)
	}

	s.output = OutputFormatPrettyText
	out, _ = s.serialize(values)
	if string(out) != "a: 1\nb: 2\n" {
		t.Fatalf("pretty output: %q", out)
	}
}
