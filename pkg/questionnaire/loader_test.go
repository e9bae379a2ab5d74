package questionnaire_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-intake/pkg/questionnaire"
	"github.com/goliatone/go-intake/pkg/validation"
	"github.com/goliatone/go-intake/pkg/visibility"
)

func TestDefault_MatchesBuiltinTables(t *testing.T) {
	def, err := questionnaire.Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}

	var ids []string
	for _, section := range def.Sections {
		ids = append(ids, section.ID)
	}
	if diff := cmp.Diff([]string{"maternal", "pregnancy", "history", "newborn"}, ids); diff != "" {
		t.Fatalf("section order mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(validation.DefaultRules(), def.Rules); diff != "" {
		t.Fatalf("embedded rules drifted from DefaultRules (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(visibility.DefaultBindings(), def.Bindings); diff != "" {
		t.Fatalf("embedded bindings drifted from DefaultBindings (-want +got):\n%s", diff)
	}
}

func TestDefault_FieldDefaults(t *testing.T) {
	def, err := questionnaire.Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}

	defaults := def.Defaults()
	if defaults["pregnancy_loss"] != questionnaire.ValueNo {
		t.Fatalf("yes/no fields should default to no, got %q", defaults["pregnancy_loss"])
	}
	if defaults["maternal_age"] != "" {
		t.Fatalf("maternal_age should start empty, got %q", defaults["maternal_age"])
	}

	parity, ok := def.Field("maternal_parity")
	if !ok || !parity.ResetExempt {
		t.Fatalf("maternal_parity should be reset exempt: %+v", parity)
	}

	grouped := 0
	for _, field := range def.FieldsIn("history") {
		if field.Group == "pregnancyLossDetails" {
			grouped++
		}
	}
	if grouped != 2 {
		t.Fatalf("expected 2 pregnancy loss detail fields, got %d", grouped)
	}
}

func TestLoadFS_JSONWithSlugAndOrder(t *testing.T) {
	store, err := questionnaire.LoadFS(subDirFS(t, "custom"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	def, ok := store.Definition("antenatal-visit")
	if !ok {
		t.Fatalf("antenatal-visit not found in %v", store.IDs())
	}

	want := []string{"booking-details", "vital-signs"}
	var got []string
	for _, section := range def.NavigatorSections() {
		got = append(got, section.ID)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}

	smoker, _ := def.Field("smoker")
	if smoker.Default != questionnaire.ValueNo || smoker.Label != "smoker" {
		t.Fatalf("unexpected normalised field: %+v", smoker)
	}
	if len(def.Rules) != 1 || *def.Rules[0].Max != 250 {
		t.Fatalf("rules not parsed: %+v", def.Rules)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]string{
		"invalid_binding":   "unknown trigger",
		"duplicate_section": "duplicate section",
	}
	for dir, want := range cases {
		_, err := questionnaire.LoadFS(subDirFS(t, dir))
		if err == nil {
			t.Fatalf("%s: expected error", dir)
		}
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("%s: expected %q in %v", dir, want, err)
		}
	}
}

func TestParse_RejectsEmptyAndMalformed(t *testing.T) {
	if _, err := questionnaire.Parse([]byte("  "), "empty.yaml"); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := questionnaire.Parse([]byte("questionnaires: ["), "bad.yaml"); err == nil {
		t.Fatalf("expected error for malformed document")
	}

	doc := []byte(`
questionnaires:
  tiny:
    sections:
      - id: one
    fields:
      - name: colour
        section: one
        kind: select
`)
	if _, err := questionnaire.Parse(doc, "tiny.yaml"); err == nil || !strings.Contains(err.Error(), "needs options") {
		t.Fatalf("expected select options error, got %v", err)
	}
}

func TestLoadFS_NilIsEmpty(t *testing.T) {
	store, err := questionnaire.LoadFS(nil)
	if err != nil {
		t.Fatalf("load nil: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}

func subDirFS(t *testing.T, subdir string) fs.FS {
	t.Helper()
	base := os.DirFS(testdataRoot())
	fsys, err := fs.Sub(base, subdir)
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	return fsys
}

func testdataRoot() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "testdata"
	}
	return filepath.Join(filepath.Dir(filename), "testdata")
}
