package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/goliatone/go-intake/pkg/openapi"
	"github.com/goliatone/go-intake/pkg/questionnaire"
)

// Definition returns the built-in intake questionnaire, failing the test when
// the embedded tables do not load.
func Definition(t testing.TB) questionnaire.Definition {
	t.Helper()

	def, err := questionnaire.Default()
	if err != nil {
		t.Fatalf("load questionnaire: %v", err)
	}
	return def
}

// LoadDocument reads a fixture and builds an openapi.Document using a file
// source.
func LoadDocument(t testing.TB, path string) openapi.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (openapi.Document, error) {
	if path == "" {
		return openapi.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return openapi.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := openapi.NewDocument(openapi.SourceFromFile(path), data)
	if err != nil {
		return openapi.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
