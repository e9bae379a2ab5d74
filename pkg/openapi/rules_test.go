package openapi_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-intake/pkg/openapi"
	"github.com/goliatone/go-intake/pkg/testsupport"
	"github.com/goliatone/go-intake/pkg/validation"
)

func loadFixture(t *testing.T) openapi.Document {
	t.Helper()
	loader := openapi.NewLoader(openapi.WithFileSystem(os.DirFS("testdata")))
	doc, err := loader.Load(context.Background(), openapi.SourceFromFS("intake.openapi.yaml"))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return doc
}

func bound(v float64) *float64 { return &v }

func TestRules_FromComponentSchema(t *testing.T) {
	rules, err := openapi.Rules(context.Background(), loadFixture(t), "IntakeAssessment")
	if err != nil {
		t.Fatalf("rules: %v", err)
	}

	want := []validation.Rule{
		{Field: "maternal_age", Required: true, Numeric: true, Min: bound(10), Max: bound(60), RangeMessage: "Maternal age should be between 10 and 60 years"},
		{Field: "gestation_weeks", Required: true, Numeric: true, Min: bound(4), Max: bound(42), RangeMessage: "Gestational weeks should be between 4 and 42"},
		{Field: "gestation_days", Numeric: true, Min: bound(0), Max: bound(6)},
		{Field: "bmi", Label: "Body mass index", Required: true, Numeric: true},
		{Field: "apgar_1min", Numeric: true, Min: bound(0), Max: bound(10)},
		{Field: "apgar_5min", Numeric: true, Min: bound(0), Max: bound(10)},
	}
	if diff := cmp.Diff(want, rules); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
}

func TestRules_DriveValidator(t *testing.T) {
	rules, err := openapi.Rules(context.Background(), loadFixture(t), "IntakeAssessment")
	if err != nil {
		t.Fatalf("rules: %v", err)
	}

	got := validation.New(rules...).Validate(map[string]string{"maternal_age": "9"})
	want := []string{
		"gestation weeks is required",
		"Body mass index is required",
		"Maternal age should be between 10 and 60 years",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestRules_UnknownSchema(t *testing.T) {
	_, err := openapi.Rules(context.Background(), loadFixture(t), "Missing")
	if !errors.Is(err, openapi.ErrSchemaNotFound) {
		t.Fatalf("expected ErrSchemaNotFound, got %v", err)
	}
}

func TestRules_InvalidDocument(t *testing.T) {
	doc := openapi.MustNewDocument(openapi.SourceFromFile("inline.yaml"), []byte("openapi: [broken"))
	if _, err := openapi.Rules(context.Background(), doc, "IntakeAssessment"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoader_FileSource(t *testing.T) {
	path := filepath.Join("testdata", "intake.openapi.yaml")
	doc, err := openapi.NewLoader().Load(context.Background(), openapi.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Location() != path {
		t.Fatalf("expected location %s, got %s", path, doc.Location())
	}
	if doc.Source().Kind() != openapi.SourceKindFile {
		t.Fatalf("expected file source, got %s", doc.Source().Kind())
	}
}

func TestLoader_FSRequiresFileSystem(t *testing.T) {
	if _, err := openapi.NewLoader().Load(context.Background(), openapi.SourceFromFS("intake.openapi.yaml")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := openapi.NewLoader().Load(ctx, openapi.SourceFromFile("testdata/intake.openapi.yaml")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewDocument_RejectsEmpty(t *testing.T) {
	if _, err := openapi.NewDocument(openapi.SourceFromFile("x.yaml"), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
	if _, err := openapi.NewDocument(nil, []byte("x")); err == nil {
		t.Fatalf("expected error for nil source")
	}
}

func TestRules_FileSourceMatchesFS(t *testing.T) {
	doc := testsupport.LoadDocument(t, filepath.Join("testdata", "intake.openapi.yaml"))
	if doc.Location() == "" {
		t.Fatalf("expected file location on document")
	}

	fromFile, err := openapi.Rules(testsupport.Context(), doc, "IntakeAssessment")
	if err != nil {
		t.Fatalf("rules from file: %v", err)
	}
	fromFS, err := openapi.Rules(testsupport.Context(), loadFixture(t), "IntakeAssessment")
	if err != nil {
		t.Fatalf("rules from fs: %v", err)
	}
	if diff := cmp.Diff(fromFS, fromFile); diff != "" {
		t.Fatalf("rules differ by source (-fs +file):\n%s", diff)
	}
}
