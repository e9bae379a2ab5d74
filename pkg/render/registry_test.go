package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-intake/pkg/render"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(_ context.Context, snap render.Snapshot) ([]byte, error) {
	return []byte(snap.Title), nil
}

func TestRegistry_RegisterAndRender(t *testing.T) {
	reg := render.NewRegistry(stubRenderer{name: "b"}, stubRenderer{name: "a"})

	if diff := cmp.Diff([]string{"a", "b"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	out, contentType, err := reg.Render(context.Background(), "a", render.Snapshot{Title: "Intake"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "Intake" || contentType != "text/plain" {
		t.Fatalf("unexpected output %q (%s)", out, contentType)
	}

	if _, _, err := reg.Render(context.Background(), "missing", render.Snapshot{}); err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	reg := render.NewRegistry(stubRenderer{name: "html"})
	if err := reg.Register(stubRenderer{name: "html"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
}

func TestNormalizeMessages(t *testing.T) {
	got := render.NormalizeMessages([]string{" bmi is required ", "", "bmi is required", "Maternal age should be between 10 and 60 years"})
	want := []string{"bmi is required", "Maternal age should be between 10 and 60 years"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if render.NormalizeMessages([]string{" "}) != nil {
		t.Fatalf("expected nil for blank input")
	}
}

func TestSnapshot_ActiveSectionAndVisibleFields(t *testing.T) {
	snap := render.Snapshot{
		ActiveIndex: 1,
		Sections: []render.SectionView{
			{ID: "maternal"},
			{ID: "history", Active: true, Fields: []render.FieldView{
				{Name: "pregnancy_loss"},
				{Name: "pregnancy_loss_count", Group: "pregnancyLossDetails", Hidden: true},
			}},
		},
	}

	section, ok := snap.ActiveSection()
	if !ok || section.ID != "history" {
		t.Fatalf("unexpected active section %+v", section)
	}
	if got := section.VisibleFields(); len(got) != 1 || got[0].Name != "pregnancy_loss" {
		t.Fatalf("unexpected visible fields %+v", got)
	}

	if _, ok := (render.Snapshot{ActiveIndex: 3}).ActiveSection(); ok {
		t.Fatalf("expected no active section when index out of range")
	}
}
